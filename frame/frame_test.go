package frame

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFrame(t *testing.T) {
	before := time.Now()
	f := New(640, 480, EncodingMono8)

	assert.Equal(t, 640, f.Width)
	assert.Equal(t, 480, f.Height)
	assert.Equal(t, EncodingMono8, f.Encoding)
	assert.NotEmpty(t, f.Header.FrameID)
	assert.False(t, f.Header.Stamp.Before(before))
	assert.Nil(t, f.Data)
}

func TestNewFrameIDsAreUnique(t *testing.T) {
	assert.NotEqual(t, New(1, 1, EncodingMono8).Header.FrameID, New(1, 1, EncodingMono8).Header.FrameID)
}

func TestFrameClone(t *testing.T) {
	f := New(2, 2, EncodingRGB8)
	f.Data = []byte{1, 2, 3, 4}

	c := f.Clone()
	require.NotSame(t, f, c)
	assert.Equal(t, f.Header, c.Header)
	assert.Equal(t, f.Data, c.Data)

	c.Data[0] = 99
	assert.EqualValues(t, 1, f.Data[0])

	var nilFrame *Frame
	assert.Nil(t, nilFrame.Clone())
}

func TestTimeKeyMatchesStamp(t *testing.T) {
	stamp := time.Unix(12, 345)

	f := &Frame{Header: Header{Stamp: stamp}}
	c := &Calibration{Header: Header{Stamp: stamp}}
	assert.Equal(t, f.TimeKey(), c.TimeKey())
	assert.Equal(t, stamp.UnixNano(), f.TimeKey())

	c.Header.Stamp = stamp.Add(time.Nanosecond)
	assert.NotEqual(t, f.TimeKey(), c.TimeKey())
}

func TestCalibrationClone(t *testing.T) {
	c := &Calibration{
		Model: "plumb_bob",
		D:     []float64{0.1, 0.2},
	}
	c.K[0] = 500

	out := c.Clone()
	require.NotSame(t, c, out)
	assert.Equal(t, c.K, out.K)

	out.D[0] = 9.9
	assert.Equal(t, 0.1, c.D[0])

	var nilCalib *Calibration
	assert.Nil(t, nilCalib.Clone())
}
