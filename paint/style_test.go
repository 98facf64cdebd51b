package paint

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnumPrefixStripping(t *testing.T) {
	assert.Equal(t, CapRound, ParseStrokeCap("StrokeCap.round"))
	assert.Equal(t, CapSquare, ParseStrokeCap("square"))
	assert.Equal(t, CapButt, ParseStrokeCap("StrokeCap.zigzag"))

	assert.Equal(t, JoinBevel, ParseStrokeJoin("StrokeJoin.bevel"))
	assert.Equal(t, JoinMiter, ParseStrokeJoin(""))

	assert.Equal(t, BlendClear, ParseBlendMode("BlendMode.clear"))
	assert.Equal(t, BlendColorDodge, ParseBlendMode("BlendMode.colorDodge"))
	assert.Equal(t, BlendSrcOver, ParseBlendMode("BlendMode.unheard"))
}

func TestPaintDefaults(t *testing.T) {
	var p Paint
	require.NoError(t, json.Unmarshal([]byte(`{"style":"PaintingStyle.bogus","strokeCap":null}`), &p))
	assert.Equal(t, StyleFill, p.Style)
	assert.Equal(t, CapButt, p.StrokeCap)
	assert.Nil(t, p.Alpha)

	var nilPaint *Paint
	assert.True(t, nilPaint.Filled())
	assert.Equal(t, 1.0, nilPaint.GlobalAlpha())
}

func TestBlendModeJSON(t *testing.T) {
	var dc DrawColor
	require.NoError(t, json.Unmarshal([]byte(`{"color":0,"blendMode":"BlendMode.clear"}`), &dc))
	assert.Equal(t, BlendClear, dc.BlendMode)
	assert.Equal(t, "clear", dc.BlendMode.String())
}
