// Package palette maps cell colors to display colors
package palette

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/bpe/cell"
)

const (
	normalLevel = 0xD7
	brightLevel = 0xFF
)

// Palette holds the eight colors at both brightness levels
type Palette struct {
	normal [8]colorful.Color
	bright [8]colorful.Color
}

// Default builds the classic palette: blue, red and green bits of the color index
// switch their channel on at the normal or bright level
func Default() *Palette {
	p := &Palette{}
	for i := range 8 {
		p.normal[i] = channels(i, normalLevel)
		p.bright[i] = channels(i, brightLevel)
	}
	return p
}

func channels(i int, level uint8) colorful.Color {
	var r, g, b uint8
	if i&1 != 0 {
		b = level
	}
	if i&2 != 0 {
		r = level
	}
	if i&4 != 0 {
		g = level
	}
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// Color returns the display color; transparent and invalid colors read as black
func (p *Palette) Color(c cell.Color, bright bool) colorful.Color {
	if !c.Valid() || c.IsTransparent() {
		return p.normal[cell.ColorBlack]
	}
	if bright {
		return p.bright[c]
	}
	return p.normal[c]
}

// RGBA is Color as an opaque image color
func (p *Palette) RGBA(c cell.Color, bright bool) color.RGBA {
	r, g, b := p.Color(c, bright).RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}
}

// Set replaces one entry with a #rrggbb color
func (p *Palette) Set(c cell.Color, bright bool, hex string) error {
	if !c.Valid() || c.IsTransparent() {
		return fmt.Errorf("palette: cannot set %s", c)
	}
	v, err := colorful.Hex(hex)
	if err != nil {
		return fmt.Errorf("palette: %s: %w", c, err)
	}
	if bright {
		p.bright[c] = v
	} else {
		p.normal[c] = v
	}
	return nil
}

// Override applies entries keyed by color name, with a "bright_" prefix for the bright level
func (p *Palette) Override(entries map[string]string) error {
	for key, hex := range entries {
		name, bright := strings.CutPrefix(strings.ToLower(key), "bright_")
		c, err := cell.ParseColor(name)
		if err != nil {
			return fmt.Errorf("palette: %q: %w", key, err)
		}
		if err := p.Set(c, bright, hex); err != nil {
			return err
		}
	}
	return nil
}

// Resolve substitutes fallback for a transparent color
func Resolve(c, fallback cell.Color) cell.Color {
	if c.IsTransparent() || !c.Valid() {
		return fallback
	}
	return c
}
