package frame

import "slices"

// Calibration holds the intrinsic and extrinsic camera parameters published
// alongside a frame stream. K is the 3x3 intrinsic matrix, D the distortion
// coefficients, R the rectification matrix, and P the 3x4 projection matrix,
// all row-major.
type Calibration struct {
	Header Header      `json:"header"`
	Height int         `json:"height"`
	Width  int         `json:"width"`
	Model  string      `json:"distortion_model"`
	K      [9]float64  `json:"k"`
	D      []float64   `json:"d"`
	R      [9]float64  `json:"r"`
	P      [12]float64 `json:"p"`
}

// Clone returns a deep copy of the calibration record.
func (c *Calibration) Clone() *Calibration {
	if c == nil {
		return nil
	}
	out := *c
	out.D = slices.Clone(c.D)
	return &out
}

// TimeKey returns the pairing key used by the synchronized subscriber.
func (c *Calibration) TimeKey() int64 {
	return c.Header.Stamp.UnixNano()
}
