package transport

import (
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drblury/frameflow/frame"
)

func TestFrameMetadataRoundTrip(t *testing.T) {
	in := &frame.Frame{
		Header: frame.Header{
			Stamp:   time.Unix(12, 345).UTC(),
			FrameID: "cam0_optical",
		},
		Height:    480,
		Width:     640,
		Encoding:  frame.EncodingYUV422,
		Step:      1280,
		BigEndian: true,
		Data:      []byte{9, 9, 9},
	}

	msg := message.NewMessage(watermill.NewUUID(), nil)
	SetFrameMetadata(msg, in)

	out, err := FrameFromMetadata(msg)
	require.NoError(t, err)

	assert.True(t, in.Header.Stamp.Equal(out.Header.Stamp))
	assert.Equal(t, in.Header.FrameID, out.Header.FrameID)
	assert.Equal(t, in.Height, out.Height)
	assert.Equal(t, in.Width, out.Width)
	assert.Equal(t, in.Encoding, out.Encoding)
	assert.Equal(t, in.Step, out.Step)
	assert.Equal(t, in.BigEndian, out.BigEndian)

	// The pixel buffer never travels in metadata.
	assert.Nil(t, out.Data)
}

func TestFrameFromMetadataRejectsMissingFields(t *testing.T) {
	msg := message.NewMessage(watermill.NewUUID(), nil)
	_, err := FrameFromMetadata(msg)
	require.Error(t, err)

	msg.Metadata.Set(MetadataKeyStamp, "not-a-number")
	_, err = FrameFromMetadata(msg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), MetadataKeyStamp)
}
