// Package cell defines the color and attribute primitives of a character picture
// and the two cell kinds stored by canvases
package cell

import "fmt"

// Color is a palette index 0-7 or ColorTransparent
type Color int

const (
	ColorTransparent Color = -1
	ColorBlack       Color = 0
	ColorBlue        Color = 1
	ColorRed         Color = 2
	ColorMagenta     Color = 3
	ColorGreen       Color = 4
	ColorCyan        Color = 5
	ColorYellow      Color = 6
	ColorWhite       Color = 7
)

var colorNames = [8]string{"black", "blue", "red", "magenta", "green", "cyan", "yellow", "white"}

// IsTransparent reports whether c contributes nothing to a merge
func (c Color) IsTransparent() bool {
	return c == ColorTransparent
}

// Valid reports whether c is a palette index or transparent
func (c Color) Valid() bool {
	return c >= ColorTransparent && c <= ColorWhite
}

// Merge returns c unless it is transparent, in which case onto wins
func (c Color) Merge(onto Color) Color {
	if c == ColorTransparent {
		return onto
	}
	return c
}

func (c Color) String() string {
	if c == ColorTransparent {
		return "transparent"
	}
	if c >= 0 && int(c) < len(colorNames) {
		return colorNames[c]
	}
	return fmt.Sprintf("color(%d)", int(c))
}

// ParseColor resolves a color name or digit
func ParseColor(s string) (Color, error) {
	if s == "transparent" || s == "-1" {
		return ColorTransparent, nil
	}
	for i, name := range colorNames {
		if s == name || (len(s) == 1 && s[0] == byte('0'+i)) {
			return Color(i), nil
		}
	}
	return ColorTransparent, fmt.Errorf("unknown color %q", s)
}

// Light is the bright/flash attribute
type Light int

const (
	LightTransparent Light = -1
	LightOff         Light = 0
	LightOn          Light = 1
)

func (l Light) IsTransparent() bool {
	return l == LightTransparent
}

func (l Light) Valid() bool {
	return l >= LightTransparent && l <= LightOn
}

// Merge returns l unless it is transparent, in which case onto wins
func (l Light) Merge(onto Light) Light {
	if l == LightTransparent {
		return onto
	}
	return l
}

// On reports whether the light is explicitly on
func (l Light) On() bool {
	return l == LightOn
}

func (l Light) String() string {
	switch l {
	case LightTransparent:
		return "transparent"
	case LightOff:
		return "off"
	case LightOn:
		return "on"
	}
	return fmt.Sprintf("light(%d)", int(l))
}

// Char is a character code; 0x80-0x8F are block glyphs built from quadrant bits
type Char int

const (
	CharTransparent Char = -1
	CharSpace       Char = 32
)

// Block glyph quadrant bits
const (
	BitTopRight    = 0x01
	BitTopLeft     = 0x02
	BitBottomRight = 0x04
	BitBottomLeft  = 0x08
	BlockMask      = 0x0F
)

const (
	CharBlockSpace  Char = 0x80
	CharBlockTop    Char = CharBlockSpace | BitTopRight | BitTopLeft
	CharBlockBottom Char = CharBlockSpace | BitBottomRight | BitBottomLeft
	CharBlockLeft   Char = CharBlockSpace | BitTopLeft | BitBottomLeft
	CharBlockRight  Char = CharBlockSpace | BitTopRight | BitBottomRight
	CharBlockFull   Char = CharBlockSpace | BlockMask
)

func (c Char) IsTransparent() bool {
	return c == CharTransparent
}

// IsBlock reports whether c is one of the sixteen block glyphs
func (c Char) IsBlock() bool {
	return c >= CharBlockSpace && c <= CharBlockFull
}

// Bits returns the quadrant bits of a block glyph, zero otherwise
func (c Char) Bits() int {
	if !c.IsBlock() {
		return 0
	}
	return int(c) & BlockMask
}

// Merge returns c unless it is transparent, in which case onto wins
func (c Char) Merge(onto Char) Char {
	if c == CharTransparent {
		return onto
	}
	return c
}

// BlockChar builds the block glyph for the given quadrant bits
func BlockChar(bits int) Char {
	return CharBlockSpace | Char(bits&BlockMask)
}
