// Package frame defines the canonical in-memory representation of a camera
// frame and its calibration record. Frame transports encode a Frame into a
// wire message on the publish side and decode it back on the subscribe side;
// calibration records always travel unencoded.
package frame

import (
	"slices"
	"time"

	"github.com/drblury/frameflow/internal/ids"
)

// Common pixel encodings. The Encoding field is an open tag, these are just
// the values frameflow's own tooling emits.
const (
	EncodingMono8  = "mono8"
	EncodingMono16 = "mono16"
	EncodingRGB8   = "rgb8"
	EncodingBGR8   = "bgr8"
	EncodingYUV422 = "yuv422"
)

// Header carries the capture timestamp and the frame identifier shared by a
// frame and its calibration record. Pairing in the synchronized subscriber is
// done on the timestamp.
type Header struct {
	Stamp   time.Time `json:"stamp"`
	FrameID string    `json:"frame_id"`
}

// Frame is the canonical image. It is immutable once handed to a publish
// call: use Clone for copy semantics, or hand the Frame to an owned publish
// to transfer the pixel buffer without copying.
type Frame struct {
	Header    Header `json:"header"`
	Height    int    `json:"height"`
	Width     int    `json:"width"`
	Encoding  string `json:"encoding"`
	Step      int    `json:"step"`
	BigEndian bool   `json:"big_endian"`
	Data      []byte `json:"data"`
}

// New returns a Frame with the stamp set to now and a fresh ULID frame id.
// The pixel buffer is left nil for the caller to fill.
func New(width, height int, encoding string) *Frame {
	return &Frame{
		Header: Header{
			Stamp:   time.Now(),
			FrameID: ids.CreateULID(),
		},
		Height:   height,
		Width:    width,
		Encoding: encoding,
		Step:     width,
	}
}

// Clone returns a deep copy of the frame, including the pixel buffer.
func (f *Frame) Clone() *Frame {
	if f == nil {
		return nil
	}
	c := *f
	c.Data = slices.Clone(f.Data)
	return &c
}

// TimeKey returns the pairing key used by the synchronized subscriber.
func (f *Frame) TimeKey() int64 {
	return f.Header.Stamp.UnixNano()
}
