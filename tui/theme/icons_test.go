package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIconLookup(t *testing.T) {
	icons := NewIconSet(IconsNerd, Dark)

	glyph, color := icons.Icon("main.go")
	assert.Equal(t, nerdIconGo, glyph)
	assert.Equal(t, "#519aba", color)

	glyph, _ = icons.Icon("cmd/app/Dockerfile")
	assert.Equal(t, nerdIconDocker, glyph, "exact names match on the base name, case-insensitively")

	glyph, color = icons.Icon("notes.unknownext")
	assert.Equal(t, defaultFileIcon.glyph, glyph)
	assert.Equal(t, defaultFileIcon.color, color)

	glyph, _ = icons.Icon("README.MD")
	assert.Equal(t, nerdIconMarkdown, glyph)
}

func TestIconStyles(t *testing.T) {
	glyph, color := NewIconSet(IconsNone, Dark).Icon("main.go")
	assert.Empty(t, glyph)
	assert.Empty(t, color)

	glyph, color = NewIconSet(IconsASCII, Dark).Icon("main.go")
	assert.Equal(t, "*", glyph)
	assert.Equal(t, "#519aba", color)
}

func TestIconLightModeDarkensColor(t *testing.T) {
	_, dark := NewIconSet(IconsNerd, Dark).Icon("main.rs")
	_, light := NewIconSet(IconsNerd, Light).Icon("main.rs")
	assert.Equal(t, FromHex(dark).Darken(lightDarken).Hex(), light)
	assert.NotEqual(t, dark, light)
}

func TestParseIconStyle(t *testing.T) {
	style, ok := ParseIconStyle("")
	assert.True(t, ok)
	assert.Equal(t, IconsNerd, style)

	style, ok = ParseIconStyle("ascii")
	assert.True(t, ok)
	assert.Equal(t, IconsASCII, style)

	_, ok = ParseIconStyle("emoji")
	assert.False(t, ok)
}
