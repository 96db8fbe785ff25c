package canvas

import (
	"slices"

	"github.com/lixenwraith/bpe/cell"
)

// HBlockCanvas stores two stacked block cells per character cell
// Drawing row 2y is the top half of character row y, row 2y+1 the bottom
type HBlockCanvas struct {
	base
	cells []cell.BlockCell // DrawingWidth x DrawingHeight
}

// HBlockMutator adds whole-pair writes to Mutator
type HBlockMutator interface {
	Mutator
	ReplacePair(x, y int, p cell.HBlockPair)
}

func NewHBlock(width, height int) *HBlockCanvas {
	c := &HBlockCanvas{
		base:  base{width: width, height: height},
		cells: make([]cell.BlockCell, width*height*2),
	}
	fillBlock(c.cells)
	return c
}

func (c *HBlockCanvas) Type() Type         { return TypeHBlock }
func (c *HBlockCanvas) DrawingWidth() int  { return c.width }
func (c *HBlockCanvas) DrawingHeight() int { return c.height * 2 }

func (c *HBlockCanvas) inDrawing(x, y int) bool {
	return x >= 0 && x < c.width && y >= 0 && y < c.height*2
}

func (c *HBlockCanvas) DrawingCell(x, y int) cell.Cell {
	if !c.inDrawing(x, y) {
		return cell.TransparentBlock
	}
	return c.cells[y*c.width+x]
}

// Pair returns both halves of a character cell with their merged brightness
func (c *HBlockCanvas) Pair(x, y int) cell.HBlockPair {
	if !c.inBounds(x, y) {
		return cell.TransparentHBlockPair
	}
	top := c.cells[2*y*c.width+x]
	bottom := c.cells[(2*y+1)*c.width+x]
	return cell.HBlockPair{
		Top:    top.Color,
		Bottom: bottom.Color,
		Bright: top.Bright.Merge(bottom.Bright),
	}
}

func (c *HBlockCanvas) CharCell(x, y int) cell.CharCell {
	return c.Pair(x, y).CharCell()
}

func (c *HBlockCanvas) Mutate(fn func(m Mutator)) {
	c.mutations++
	fn(hblockMutator{c})
}

// MutatePairs opens a mutation scope that also allows whole-pair writes
func (c *HBlockCanvas) MutatePairs(fn func(m HBlockMutator)) {
	c.mutations++
	fn(hblockMutator{c})
}

func (c *HBlockCanvas) Clone() MutableCanvas {
	return &HBlockCanvas{base: c.base, cells: slices.Clone(c.cells)}
}

type hblockMutator struct {
	c *HBlockCanvas
}

func (m hblockMutator) Clear() {
	fillBlock(m.c.cells)
}

func (m hblockMutator) MergeDrawingCell(x, y int, c cell.Cell) {
	if bc, ok := c.(cell.BlockCell); ok {
		m.putDrawing(x, y, bc, true)
	}
}

func (m hblockMutator) ReplaceDrawingCell(x, y int, c cell.Cell) {
	if bc, ok := c.(cell.BlockCell); ok {
		m.putDrawing(x, y, bc, false)
	}
}

// putDrawing writes one half and keeps the brightness of both halves in sync
func (m hblockMutator) putDrawing(x, y int, bc cell.BlockCell, merge bool) {
	if !m.c.inDrawing(x, y) {
		return
	}
	w := m.c.width
	i := y*w + x
	pi := (y+1)*w + x
	if y%2 == 1 {
		pi = (y-1)*w + x
	}

	next := bc
	if merge {
		next = bc.Merge(m.c.cells[i])
	}
	paired := m.c.cells[pi]

	if next.Color.IsTransparent() && paired.Color.IsTransparent() {
		m.c.cells[i] = cell.TransparentBlock
		m.c.cells[pi] = cell.TransparentBlock
		return
	}
	bright := next.Bright.Merge(paired.Bright)
	m.c.cells[i] = cell.BlockCell{Color: next.Color, Bright: bright}
	m.c.cells[pi] = cell.BlockCell{Color: paired.Color, Bright: bright}
}

// ReplaceCharCell decodes a block glyph into top and bottom colors
// A transparent ink over an opaque paper is swapped so ink always marks the set bits
func (m hblockMutator) ReplaceCharCell(x, y int, c cell.CharCell) {
	if !m.c.inBounds(x, y) {
		return
	}
	bits := normalizedBits(c.Char)
	ink, paper := c.Ink, c.Paper
	if ink.IsTransparent() && !paper.IsTransparent() {
		ink, paper = paper, cell.ColorTransparent
		bits ^= cell.BlockMask
	}

	top := paper
	if bits&(cell.BitTopRight|cell.BitTopLeft) != 0 {
		top = ink
	}
	bottom := paper
	if bits&(cell.BitBottomRight|cell.BitBottomLeft) != 0 {
		bottom = ink
	}

	m.ReplacePair(x, y, cell.HBlockPair{Top: top, Bottom: bottom, Bright: c.Bright})
}

func (m hblockMutator) ReplacePair(x, y int, p cell.HBlockPair) {
	if !m.c.inBounds(x, y) {
		return
	}
	ti := 2*y*m.c.width + x
	bi := (2*y+1)*m.c.width + x
	if p.Top.IsTransparent() && p.Bottom.IsTransparent() {
		m.c.cells[ti] = cell.TransparentBlock
		m.c.cells[bi] = cell.TransparentBlock
		return
	}
	m.c.cells[ti] = cell.BlockCell{Color: p.Top, Bright: p.Bright}
	m.c.cells[bi] = cell.BlockCell{Color: p.Bottom, Bright: p.Bright}
}

// normalizedBits returns the quadrant bits of a block glyph; other chars count as no bits
func normalizedBits(ch cell.Char) int {
	if !ch.IsBlock() {
		return 0
	}
	return ch.Bits()
}
