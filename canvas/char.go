package canvas

import (
	"slices"

	"github.com/lixenwraith/bpe/cell"
)

// CharCanvas stores one char cell per position; drawing and character resolution coincide
type CharCanvas struct {
	base
	cells []cell.CharCell
}

func NewChar(width, height int) *CharCanvas {
	c := &CharCanvas{
		base:  base{width: width, height: height},
		cells: make([]cell.CharCell, width*height),
	}
	c.clear()
	return c
}

func (c *CharCanvas) Type() Type         { return TypeChar }
func (c *CharCanvas) DrawingWidth() int  { return c.width }
func (c *CharCanvas) DrawingHeight() int { return c.height }

func (c *CharCanvas) DrawingCell(x, y int) cell.Cell {
	return c.CharCell(x, y)
}

func (c *CharCanvas) CharCell(x, y int) cell.CharCell {
	if !c.inBounds(x, y) {
		return cell.TransparentChar
	}
	return c.cells[y*c.width+x]
}

func (c *CharCanvas) Mutate(fn func(m Mutator)) {
	c.mutations++
	fn(charMutator{c})
}

func (c *CharCanvas) Clone() MutableCanvas {
	return &CharCanvas{base: c.base, cells: slices.Clone(c.cells)}
}

func (c *CharCanvas) clear() {
	for i := range c.cells {
		c.cells[i] = cell.TransparentChar
	}
}

type charMutator struct {
	c *CharCanvas
}

func (m charMutator) Clear() {
	m.c.clear()
}

func (m charMutator) MergeDrawingCell(x, y int, c cell.Cell) {
	cc, ok := c.(cell.CharCell)
	if !ok || !m.c.inBounds(x, y) {
		return
	}
	i := y*m.c.width + x
	m.c.cells[i] = cc.Merge(m.c.cells[i])
}

func (m charMutator) ReplaceDrawingCell(x, y int, c cell.Cell) {
	if cc, ok := c.(cell.CharCell); ok {
		m.ReplaceCharCell(x, y, cc)
	}
}

func (m charMutator) ReplaceCharCell(x, y int, c cell.CharCell) {
	if !m.c.inBounds(x, y) {
		return
	}
	m.c.cells[y*m.c.width+x] = c
}
