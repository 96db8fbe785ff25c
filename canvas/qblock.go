package canvas

import (
	"slices"

	"github.com/lixenwraith/bpe/cell"
)

// QBlockCanvas stores a 2x2 pixel grid per character cell and one shared attribute
type QBlockCanvas struct {
	base
	pixels []bool           // DrawingWidth x DrawingHeight
	attrs  []cell.BlockCell // Width x Height
}

func NewQBlock(width, height int) *QBlockCanvas {
	c := &QBlockCanvas{
		base:   base{width: width, height: height},
		pixels: make([]bool, width*2*height*2),
		attrs:  make([]cell.BlockCell, width*height),
	}
	fillBlock(c.attrs)
	return c
}

func (c *QBlockCanvas) Type() Type         { return TypeQBlock }
func (c *QBlockCanvas) DrawingWidth() int  { return c.width * 2 }
func (c *QBlockCanvas) DrawingHeight() int { return c.height * 2 }

func (c *QBlockCanvas) inDrawing(x, y int) bool {
	return x >= 0 && x < c.width*2 && y >= 0 && y < c.height*2
}

func (c *QBlockCanvas) pixel(x, y int) bool {
	return c.pixels[y*c.width*2+x]
}

// Pixel reports whether a drawing position is set; false out of range
func (c *QBlockCanvas) Pixel(x, y int) bool {
	return c.inDrawing(x, y) && c.pixel(x, y)
}

// Attr returns the shared attribute of a character cell
func (c *QBlockCanvas) Attr(x, y int) cell.BlockCell {
	if !c.inBounds(x, y) {
		return cell.TransparentBlock
	}
	return c.attrs[y*c.width+x]
}

func (c *QBlockCanvas) DrawingCell(x, y int) cell.Cell {
	if !c.inDrawing(x, y) || !c.pixel(x, y) {
		return cell.TransparentBlock
	}
	return c.attrs[(y/2)*c.width+x/2]
}

// bits collects the four pixels of a character cell as quadrant bits
func (c *QBlockCanvas) bits(x, y int) int {
	dx, dy := x*2, y*2
	bits := 0
	if c.pixel(dx+1, dy) {
		bits |= cell.BitTopRight
	}
	if c.pixel(dx, dy) {
		bits |= cell.BitTopLeft
	}
	if c.pixel(dx+1, dy+1) {
		bits |= cell.BitBottomRight
	}
	if c.pixel(dx, dy+1) {
		bits |= cell.BitBottomLeft
	}
	return bits
}

// CharCell encodes the pixels as a block glyph
// All four pixels set reads back as paper-only over the no-bits glyph
func (c *QBlockCanvas) CharCell(x, y int) cell.CharCell {
	if !c.inBounds(x, y) {
		return cell.TransparentChar
	}
	attr := c.attrs[y*c.width+x]
	switch bits := c.bits(x, y); bits {
	case 0:
		return cell.TransparentChar
	case cell.BlockMask:
		return cell.CharCell{
			Char:   cell.CharBlockSpace,
			Ink:    cell.ColorTransparent,
			Paper:  attr.Color,
			Bright: attr.Bright,
			Flash:  cell.LightTransparent,
		}
	default:
		return cell.CharCell{
			Char:   cell.BlockChar(bits),
			Ink:    attr.Color,
			Paper:  cell.ColorTransparent,
			Bright: attr.Bright,
			Flash:  cell.LightTransparent,
		}
	}
}

func (c *QBlockCanvas) Mutate(fn func(m Mutator)) {
	c.mutations++
	fn(qblockMutator{c})
}

func (c *QBlockCanvas) Clone() MutableCanvas {
	return &QBlockCanvas{
		base:   c.base,
		pixels: slices.Clone(c.pixels),
		attrs:  slices.Clone(c.attrs),
	}
}

type qblockMutator struct {
	c *QBlockCanvas
}

func (m qblockMutator) Clear() {
	clear(m.c.pixels)
	fillBlock(m.c.attrs)
}

func (m qblockMutator) MergeDrawingCell(x, y int, c cell.Cell) {
	if bc, ok := c.(cell.BlockCell); ok {
		m.putDrawing(x, y, bc, true)
	}
}

func (m qblockMutator) ReplaceDrawingCell(x, y int, c cell.Cell) {
	if bc, ok := c.(cell.BlockCell); ok {
		m.putDrawing(x, y, bc, false)
	}
}

// putDrawing sets or clears one pixel and refreshes the shared attribute
func (m qblockMutator) putDrawing(x, y int, bc cell.BlockCell, merge bool) {
	if !m.c.inDrawing(x, y) {
		return
	}
	pi := y*m.c.width*2 + x
	opaque := !bc.Color.IsTransparent()
	if merge {
		m.c.pixels[pi] = m.c.pixels[pi] || opaque
	} else {
		m.c.pixels[pi] = opaque
	}

	cx, cy := x/2, y/2
	ai := cy*m.c.width + cx
	if m.c.bits(cx, cy) == 0 {
		m.c.attrs[ai] = cell.TransparentBlock
		return
	}
	m.c.attrs[ai] = bc.Merge(m.c.attrs[ai])
}

// ReplaceCharCell turns a glyph into pixels and picks the attribute color from ink or paper
func (m qblockMutator) ReplaceCharCell(x, y int, c cell.CharCell) {
	if !m.c.inBounds(x, y) {
		return
	}
	bits := normalizedBits(c.Char)
	var color cell.Color
	switch {
	case c.Ink.IsTransparent() && c.Paper.IsTransparent():
		bits = 0
		color = cell.ColorTransparent
	case c.Ink.IsTransparent():
		bits ^= cell.BlockMask
		color = c.Paper
	case c.Paper.IsTransparent():
		color = c.Ink
	default:
		bits = cell.BlockMask
		color = c.Ink
	}

	dx, dy := x*2, y*2
	w := m.c.width * 2
	m.c.pixels[dy*w+dx+1] = bits&cell.BitTopRight != 0
	m.c.pixels[dy*w+dx] = bits&cell.BitTopLeft != 0
	m.c.pixels[(dy+1)*w+dx+1] = bits&cell.BitBottomRight != 0
	m.c.pixels[(dy+1)*w+dx] = bits&cell.BitBottomLeft != 0

	ai := y*m.c.width + x
	if bits == 0 {
		m.c.attrs[ai] = cell.TransparentBlock
		return
	}
	m.c.attrs[ai] = cell.BlockCell{Color: color, Bright: c.Bright}
}
