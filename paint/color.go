package paint

import (
	"encoding/json"
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Color is a 32-bit ARGB color, 0xAARRGGBB, as the host encodes it.
type Color uint32

// ARGB builds a Color from its components.
func ARGB(a, r, g, b uint8) Color {
	return Color(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

func (c Color) A() uint8 { return uint8(c >> 24) }
func (c Color) R() uint8 { return uint8(c >> 16) }
func (c Color) G() uint8 { return uint8(c >> 8) }
func (c Color) B() uint8 { return uint8(c) }

// NRGBA returns the color as a non-premultiplied standard color.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R(), G: c.G(), B: c.B(), A: c.A()}
}

// String formats the color as #AARRGGBB.
func (c Color) String() string {
	return fmt.Sprintf("#%08x", uint32(c))
}

// UnmarshalJSON accepts a JSON number or a string holding a decimal number
// or a hex value ("#AARRGGBB", "0xAARRGGBB", "#RRGGBB").
func (c *Color) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := parseColorString(s)
		if err != nil {
			return err
		}
		*c = v
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("paint: color %s: %w", data, err)
	}
	*c = Color(uint32(int64(f)))
	return nil
}

func parseColorString(s string) (Color, error) {
	s = strings.TrimSpace(s)
	hex := ""
	switch {
	case strings.HasPrefix(s, "#"):
		hex = s[1:]
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		hex = s[2:]
	}
	if hex == "" {
		v, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return 0, fmt.Errorf("paint: color %q: %w", s, err)
		}
		return Color(v), nil
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("paint: color %q: %w", s, err)
	}
	if len(hex) == 6 {
		v |= 0xff000000
	}
	return Color(v), nil
}
