// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"encoding/json"
	"math"
)

// Dimensions is a logical width and height.
type Dimensions struct {
	Width  float64
	Height float64
}

// Empty reports whether either side is smaller than one unit.
func (d Dimensions) Empty() bool {
	return !(d.Width >= 1 && d.Height >= 1)
}

// scaled returns the pixel size of d at the given ratio.
func (d Dimensions) scaled(ratio float64) (int, int) {
	return pixels(d.Width * ratio), pixels(d.Height * ratio)
}

func pixels(v float64) int {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1<<15 {
		return 1 << 15
	}
	return int(math.Round(v))
}

// Constraints is the layout box delivered by the host.
// A field is nil when the host omitted it or sent a non-numeric value.
type Constraints struct {
	X, Y, W, H *float64
}

// Rect returns complete constraints for the given box.
func Rect(x, y, w, h float64) Constraints {
	return Constraints{X: &x, Y: &y, W: &w, H: &h}
}

// Valid reports whether all four fields are present and finite.
func (c Constraints) Valid() bool {
	for _, v := range []*float64{c.X, c.Y, c.W, c.H} {
		if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
			return false
		}
	}
	return true
}

// Size returns the width and height. Callers check Valid first.
func (c Constraints) Size() Dimensions {
	return Dimensions{Width: *c.W, Height: *c.H}
}

// UnmarshalJSON accepts {"x","y","w","h"} and leaves any field that is
// missing or not a number as nil.
func (c *Constraints) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	field := func(name string) *float64 {
		var v *float64
		if m, ok := raw[name]; ok && json.Unmarshal(m, &v) == nil {
			return v
		}
		return nil
	}
	*c = Constraints{X: field("x"), Y: field("y"), W: field("w"), H: field("h")}
	return nil
}

// NodeInfo is the answer to a handshake node query.
type NodeInfo struct {
	Width      float64
	Height     float64
	PixelRatio float64
}
