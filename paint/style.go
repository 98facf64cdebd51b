package paint

import (
	"encoding/json"
	"strings"
)

// PaintingStyle selects between filling and stroking a shape.
type PaintingStyle uint8

const (
	// StyleFill paints the interior of a shape. It is the default.
	StyleFill PaintingStyle = iota
	// StyleStroke paints the outline of a shape.
	StyleStroke
)

// StrokeCap is the shape of open stroke endpoints.
type StrokeCap uint8

const (
	CapButt StrokeCap = iota
	CapRound
	CapSquare
)

// StrokeJoin is the shape of stroke corners.
type StrokeJoin uint8

const (
	JoinMiter StrokeJoin = iota
	JoinRound
	JoinBevel
)

// BlendMode is the host's blend mode vocabulary. Only BlendClear changes
// how drawColor behaves; the others paint with source-over.
type BlendMode uint8

const (
	BlendSrcOver BlendMode = iota
	BlendClear
	BlendSrc
	BlendDst
	BlendDstOver
	BlendSrcIn
	BlendDstIn
	BlendSrcOut
	BlendDstOut
	BlendSrcATop
	BlendDstATop
	BlendXor
	BlendPlus
	BlendModulate
	BlendScreen
	BlendOverlay
	BlendDarken
	BlendLighten
	BlendColorDodge
	BlendColorBurn
	BlendHardLight
	BlendSoftLight
	BlendDifference
	BlendExclusion
	BlendMultiply
	BlendHue
	BlendSaturation
	BlendColor
	BlendLuminosity
)

var styleNames = map[string]PaintingStyle{
	"fill":   StyleFill,
	"stroke": StyleStroke,
}

var capNames = map[string]StrokeCap{
	"butt":   CapButt,
	"round":  CapRound,
	"square": CapSquare,
}

var joinNames = map[string]StrokeJoin{
	"miter": JoinMiter,
	"round": JoinRound,
	"bevel": JoinBevel,
}

var blendNames = map[string]BlendMode{
	"srcOver":    BlendSrcOver,
	"clear":      BlendClear,
	"src":        BlendSrc,
	"dst":        BlendDst,
	"dstOver":    BlendDstOver,
	"srcIn":      BlendSrcIn,
	"dstIn":      BlendDstIn,
	"srcOut":     BlendSrcOut,
	"dstOut":     BlendDstOut,
	"srcATop":    BlendSrcATop,
	"dstATop":    BlendDstATop,
	"xor":        BlendXor,
	"plus":       BlendPlus,
	"modulate":   BlendModulate,
	"screen":     BlendScreen,
	"overlay":    BlendOverlay,
	"darken":     BlendDarken,
	"lighten":    BlendLighten,
	"colorDodge": BlendColorDodge,
	"colorBurn":  BlendColorBurn,
	"hardLight":  BlendHardLight,
	"softLight":  BlendSoftLight,
	"difference": BlendDifference,
	"exclusion":  BlendExclusion,
	"multiply":   BlendMultiply,
	"hue":        BlendHue,
	"saturation": BlendSaturation,
	"color":      BlendColor,
	"luminosity": BlendLuminosity,
}

// trimEnum strips the "Type." prefix the host puts in front of enum values.
func trimEnum(s, prefix string) string {
	return strings.TrimPrefix(s, prefix+".")
}

// enumString reads an enum value sent as a JSON string. null reads as "".
func enumString(data []byte) (string, error) {
	if string(data) == "null" {
		return "", nil
	}
	var s string
	err := json.Unmarshal(data, &s)
	return s, err
}

// ParsePaintingStyle decodes a style name with or without the
// "PaintingStyle." prefix. Unknown names yield StyleFill.
func ParsePaintingStyle(s string) PaintingStyle {
	if v, ok := styleNames[trimEnum(s, "PaintingStyle")]; ok {
		return v
	}
	return StyleFill
}

// ParseStrokeCap decodes a cap name with or without the "StrokeCap." prefix.
// Unknown names yield CapButt.
func ParseStrokeCap(s string) StrokeCap {
	if v, ok := capNames[trimEnum(s, "StrokeCap")]; ok {
		return v
	}
	return CapButt
}

// ParseStrokeJoin decodes a join name with or without the "StrokeJoin."
// prefix. Unknown names yield JoinMiter.
func ParseStrokeJoin(s string) StrokeJoin {
	if v, ok := joinNames[trimEnum(s, "StrokeJoin")]; ok {
		return v
	}
	return JoinMiter
}

// ParseBlendMode decodes a blend mode name with or without the "BlendMode."
// prefix. Unknown names yield BlendSrcOver.
func ParseBlendMode(s string) BlendMode {
	if v, ok := blendNames[trimEnum(s, "BlendMode")]; ok {
		return v
	}
	return BlendSrcOver
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *PaintingStyle) UnmarshalJSON(data []byte) error {
	name, err := enumString(data)
	*s = ParsePaintingStyle(name)
	return err
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *StrokeCap) UnmarshalJSON(data []byte) error {
	name, err := enumString(data)
	*c = ParseStrokeCap(name)
	return err
}

// UnmarshalJSON implements json.Unmarshaler.
func (j *StrokeJoin) UnmarshalJSON(data []byte) error {
	name, err := enumString(data)
	*j = ParseStrokeJoin(name)
	return err
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *BlendMode) UnmarshalJSON(data []byte) error {
	name, err := enumString(data)
	*m = ParseBlendMode(name)
	return err
}

func (s PaintingStyle) String() string {
	if s == StyleStroke {
		return "stroke"
	}
	return "fill"
}

func (c StrokeCap) String() string {
	switch c {
	case CapRound:
		return "round"
	case CapSquare:
		return "square"
	default:
		return "butt"
	}
}

func (j StrokeJoin) String() string {
	switch j {
	case JoinRound:
		return "round"
	case JoinBevel:
		return "bevel"
	default:
		return "miter"
	}
}

// String returns the unprefixed host name of the blend mode.
func (m BlendMode) String() string {
	for name, v := range blendNames {
		if v == m {
			return name
		}
	}
	return "srcOver"
}

// Paint carries the style of one drawing instruction.
type Paint struct {
	Style            PaintingStyle `json:"style"`
	Color            Color         `json:"color"`
	Alpha            *float64      `json:"alpha,omitempty"`
	StrokeWidth      float64       `json:"strokeWidth"`
	StrokeMiterLimit float64       `json:"strokeMiterLimit"`
	StrokeCap        StrokeCap     `json:"strokeCap"`
	StrokeJoin       StrokeJoin    `json:"strokeJoin"`
}

// GlobalAlpha returns the paint's alpha, or 1 when the host sent none.
func (p *Paint) GlobalAlpha() float64 {
	if p == nil || p.Alpha == nil {
		return 1
	}
	return *p.Alpha
}

// Filled reports whether the paint fills rather than strokes. A nil paint
// fills.
func (p *Paint) Filled() bool {
	return p == nil || p.Style == StyleFill
}
