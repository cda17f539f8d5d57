package transport

import (
	"fmt"
	"strconv"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/drblury/frameflow/frame"
)

// Metadata keys shared by the built-in transports. Frame geometry and the
// header travel as message metadata so the payload can stay a bare pixel
// buffer.
const (
	MetadataKeyStamp     = "ff_stamp"
	MetadataKeyFrameID   = "ff_frame_id"
	MetadataKeyHeight    = "ff_height"
	MetadataKeyWidth     = "ff_width"
	MetadataKeyEncoding  = "ff_encoding"
	MetadataKeyStep      = "ff_step"
	MetadataKeyBigEndian = "ff_big_endian"
)

// SetFrameMetadata writes everything except the pixel buffer into msg.
func SetFrameMetadata(msg *message.Message, f *frame.Frame) {
	msg.Metadata.Set(MetadataKeyStamp, strconv.FormatInt(f.Header.Stamp.UnixNano(), 10))
	msg.Metadata.Set(MetadataKeyFrameID, f.Header.FrameID)
	msg.Metadata.Set(MetadataKeyHeight, strconv.Itoa(f.Height))
	msg.Metadata.Set(MetadataKeyWidth, strconv.Itoa(f.Width))
	msg.Metadata.Set(MetadataKeyEncoding, f.Encoding)
	msg.Metadata.Set(MetadataKeyStep, strconv.Itoa(f.Step))
	msg.Metadata.Set(MetadataKeyBigEndian, strconv.FormatBool(f.BigEndian))
}

// FrameFromMetadata rebuilds a frame from msg metadata, leaving Data nil for
// the caller to fill from the (possibly transformed) payload.
func FrameFromMetadata(msg *message.Message) (*frame.Frame, error) {
	stampNanos, err := strconv.ParseInt(msg.Metadata.Get(MetadataKeyStamp), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s metadata: %w", MetadataKeyStamp, err)
	}
	height, err := strconv.Atoi(msg.Metadata.Get(MetadataKeyHeight))
	if err != nil {
		return nil, fmt.Errorf("invalid %s metadata: %w", MetadataKeyHeight, err)
	}
	width, err := strconv.Atoi(msg.Metadata.Get(MetadataKeyWidth))
	if err != nil {
		return nil, fmt.Errorf("invalid %s metadata: %w", MetadataKeyWidth, err)
	}
	step, err := strconv.Atoi(msg.Metadata.Get(MetadataKeyStep))
	if err != nil {
		return nil, fmt.Errorf("invalid %s metadata: %w", MetadataKeyStep, err)
	}
	bigEndian, _ := strconv.ParseBool(msg.Metadata.Get(MetadataKeyBigEndian))

	return &frame.Frame{
		Header: frame.Header{
			Stamp:   time.Unix(0, stampNanos),
			FrameID: msg.Metadata.Get(MetadataKeyFrameID),
		},
		Height:    height,
		Width:     width,
		Encoding:  msg.Metadata.Get(MetadataKeyEncoding),
		Step:      step,
		BigEndian: bigEndian,
	}, nil
}
