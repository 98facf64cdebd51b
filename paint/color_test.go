package paint

import (
	"encoding/json"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorJSON(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{`4294901760`, 0xffff0000},
		{`-16777216`, 0xff000000},
		{`"#80112233"`, 0x80112233},
		{`"0xff00ff00"`, 0xff00ff00},
		{`"#112233"`, 0xff112233},
		{`"4278190335"`, 0xff0000ff},
		{`null`, 0},
	}
	for _, tt := range tests {
		var c Color
		require.NoError(t, json.Unmarshal([]byte(tt.in), &c), tt.in)
		assert.Equal(t, tt.want, c, tt.in)
	}

	var c Color
	assert.Error(t, json.Unmarshal([]byte(`"teal"`), &c))
}

func TestColorComponents(t *testing.T) {
	c := ARGB(0x80, 0x10, 0x20, 0x30)
	assert.Equal(t, color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x80}, c.NRGBA())
	assert.Equal(t, "#80102030", c.String())
}
