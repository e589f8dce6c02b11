package window

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/vovakirdan/chainfall/internal/core"
)

// Glyph cell of basicfont.Face7x13 with line spacing.
const (
	charW = 7.0
	lineH = 16.0
)

var palette = map[core.Color]color.RGBA{
	core.ColorDefault:       {0x10, 0x10, 0x18, 0xff},
	core.ColorRed:           {0xcd, 0x31, 0x31, 0xff},
	core.ColorGreen:         {0x0d, 0xbc, 0x79, 0xff},
	core.ColorYellow:        {0xe5, 0xe5, 0x10, 0xff},
	core.ColorBlue:          {0x24, 0x72, 0xc8, 0xff},
	core.ColorMagenta:       {0xbc, 0x3f, 0xbc, 0xff},
	core.ColorCyan:          {0x11, 0xa8, 0xcd, 0xff},
	core.ColorWhite:         {0xe5, 0xe5, 0xe5, 0xff},
	core.ColorBrightRed:     {0xf1, 0x4c, 0x4c, 0xff},
	core.ColorBrightGreen:   {0x23, 0xd1, 0x8b, 0xff},
	core.ColorBrightYellow:  {0xf5, 0xf5, 0x43, 0xff},
	core.ColorBrightBlue:    {0x3b, 0x8e, 0xea, 0xff},
	core.ColorBrightMagenta: {0xd6, 0x70, 0xd6, 0xff},
	core.ColorBrightCyan:    {0x29, 0xb8, 0xdb, 0xff},
	core.ColorBrightWhite:   {0xff, 0xff, 0xff, 0xff},
	core.ColorOrange:        {0xff, 0x87, 0x00, 0xff},
	core.ColorGray:          {0x8a, 0x8a, 0x8a, 0xff},
}

// rgba maps a palette color. ColorDefault is the background for fills and
// white for text.
func rgba(c core.Color, forText bool) color.RGBA {
	if c == core.ColorDefault && forText {
		return palette[core.ColorWhite]
	}
	if v, ok := palette[c]; ok {
		return v
	}
	return palette[core.ColorWhite]
}

// canvas implements core.Canvas on an ebiten image. Coordinates are the
// image's logical pixels, which Layout makes equal to world units.
type canvas struct {
	dst *ebiten.Image
}

func (c *canvas) FillRect(x, y, w, h float64, col core.Color) {
	vector.DrawFilledRect(c.dst, float32(x), float32(y), float32(w), float32(h), rgba(col, false), false)
}

// Text draws s with its top-left corner at (x, y).
func (c *canvas) Text(x, y float64, s string, col core.Color) {
	face := basicfont.Face7x13
	text.Draw(c.dst, s, face, int(x), int(y)+face.Ascent, rgba(col, true))
}

var _ core.Canvas = (*canvas)(nil)
