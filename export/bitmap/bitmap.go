// Package bitmap renders the composed picture to an image
package bitmap

import (
	"image"
	"image/color"
	"image/png"
	"io"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/lixenwraith/bpe/canvas"
	"github.com/lixenwraith/bpe/cell"
	"github.com/lixenwraith/bpe/palette"
)

const (
	CellSize     = 8
	BorderWidth  = 32
	BorderHeight = 24
)

type Options struct {
	Palette *palette.Palette
	// Fallback replaces transparent colors
	Fallback cell.Color
	// Scale multiplies every pixel, values below 1 count as 1
	Scale int
	// Flashed draws flashing cells in their swapped phase
	Flashed bool
}

// Size is the unscaled image size for a canvas
func Size(preview canvas.Canvas) image.Point {
	return image.Pt(
		preview.Width()*CellSize+2*BorderWidth,
		preview.Height()*CellSize+2*BorderHeight,
	)
}

// Render draws the border and every character cell of preview
func Render(preview canvas.Canvas, border cell.Color, opts Options) *image.RGBA {
	pal := opts.Palette
	if pal == nil {
		pal = palette.Default()
	}

	size := Size(preview)
	img := image.NewRGBA(image.Rect(0, 0, size.X, size.Y))
	borderColor := pal.RGBA(palette.Resolve(border, opts.Fallback), false)
	draw.Draw(img, img.Bounds(), image.NewUniform(borderColor), image.Point{}, draw.Src)

	glyph := image.NewAlpha(image.Rect(0, 0, basicfont.Face7x13.Advance, basicfont.Face7x13.Height))
	for y := 0; y < preview.Height(); y++ {
		for x := 0; x < preview.Width(); x++ {
			r := image.Rect(0, 0, CellSize, CellSize).Add(image.Pt(BorderWidth+x*CellSize, BorderHeight+y*CellSize))
			drawCell(img, r, preview.CharCell(x, y), pal, opts, glyph)
		}
	}

	if opts.Scale <= 1 {
		return img
	}
	scaled := image.NewRGBA(image.Rect(0, 0, size.X*opts.Scale, size.Y*opts.Scale))
	draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), img, img.Bounds(), draw.Src, nil)
	return scaled
}

func drawCell(img *image.RGBA, r image.Rectangle, c cell.CharCell, pal *palette.Palette, opts Options, glyph *image.Alpha) {
	bright := c.Bright.On()
	ink := pal.RGBA(palette.Resolve(c.Ink, opts.Fallback), bright)
	paper := pal.RGBA(palette.Resolve(c.Paper, opts.Fallback), bright)
	if opts.Flashed && c.Flash.On() {
		ink, paper = paper, ink
	}

	draw.Draw(img, r, image.NewUniform(paper), image.Point{}, draw.Src)

	switch {
	case c.Char.IsBlock():
		drawQuadrants(img, r, c.Char.Bits(), ink)
	case c.Char != cell.CharSpace && !c.Char.IsTransparent():
		ch, ok := glyphRune(c.Char)
		if !ok {
			return
		}
		draw.Draw(glyph, glyph.Bounds(), image.Transparent, image.Point{}, draw.Src)
		d := font.Drawer{
			Dst:  glyph,
			Src:  image.Opaque,
			Face: basicfont.Face7x13,
			Dot:  fixed.P(0, basicfont.Face7x13.Ascent),
		}
		d.DrawString(string(ch))
		draw.NearestNeighbor.Scale(img, r, image.NewUniform(ink), glyph.Bounds(), draw.Over, &draw.Options{SrcMask: glyph})
	}
}

func drawQuadrants(img *image.RGBA, r image.Rectangle, bits int, ink color.RGBA) {
	half := CellSize / 2
	quads := []struct {
		bit  int
		x, y int
	}{
		{cell.BitTopLeft, 0, 0},
		{cell.BitTopRight, half, 0},
		{cell.BitBottomLeft, 0, half},
		{cell.BitBottomRight, half, half},
	}
	src := image.NewUniform(ink)
	for _, q := range quads {
		if bits&q.bit == 0 {
			continue
		}
		qr := image.Rect(0, 0, half, half).Add(r.Min).Add(image.Pt(q.x, q.y))
		draw.Draw(img, qr, src, image.Point{}, draw.Src)
	}
}

// glyphRune maps a character code to the rune drawn for it
func glyphRune(ch cell.Char) (rune, bool) {
	switch {
	case ch == 0x60:
		return '£', true
	case ch == 0x7F:
		return '©', true
	case ch > 0x20 && ch < 0x7F:
		return rune(ch), true
	}
	return 0, false
}

func WritePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}
