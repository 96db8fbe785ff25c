package canvas

import (
	"slices"

	"github.com/lixenwraith/bpe/cell"
)

// VBlockCanvas stores two side-by-side block cells per character cell
// Drawing column 2x is the left half of character column x, 2x+1 the right
type VBlockCanvas struct {
	base
	cells []cell.BlockCell // DrawingWidth x DrawingHeight
}

// VBlockMutator adds whole-pair writes to Mutator
type VBlockMutator interface {
	Mutator
	ReplacePair(x, y int, p cell.VBlockPair)
}

func NewVBlock(width, height int) *VBlockCanvas {
	c := &VBlockCanvas{
		base:  base{width: width, height: height},
		cells: make([]cell.BlockCell, width*2*height),
	}
	fillBlock(c.cells)
	return c
}

func (c *VBlockCanvas) Type() Type         { return TypeVBlock }
func (c *VBlockCanvas) DrawingWidth() int  { return c.width * 2 }
func (c *VBlockCanvas) DrawingHeight() int { return c.height }

func (c *VBlockCanvas) inDrawing(x, y int) bool {
	return x >= 0 && x < c.width*2 && y >= 0 && y < c.height
}

func (c *VBlockCanvas) DrawingCell(x, y int) cell.Cell {
	if !c.inDrawing(x, y) {
		return cell.TransparentBlock
	}
	return c.cells[y*c.width*2+x]
}

// Pair returns both halves of a character cell with their merged brightness
func (c *VBlockCanvas) Pair(x, y int) cell.VBlockPair {
	if !c.inBounds(x, y) {
		return cell.TransparentVBlockPair
	}
	row := y * c.width * 2
	left := c.cells[row+2*x]
	right := c.cells[row+2*x+1]
	return cell.VBlockPair{
		Left:   left.Color,
		Right:  right.Color,
		Bright: left.Bright.Merge(right.Bright),
	}
}

func (c *VBlockCanvas) CharCell(x, y int) cell.CharCell {
	return c.Pair(x, y).CharCell()
}

func (c *VBlockCanvas) Mutate(fn func(m Mutator)) {
	c.mutations++
	fn(vblockMutator{c})
}

// MutatePairs opens a mutation scope that also allows whole-pair writes
func (c *VBlockCanvas) MutatePairs(fn func(m VBlockMutator)) {
	c.mutations++
	fn(vblockMutator{c})
}

func (c *VBlockCanvas) Clone() MutableCanvas {
	return &VBlockCanvas{base: c.base, cells: slices.Clone(c.cells)}
}

type vblockMutator struct {
	c *VBlockCanvas
}

func (m vblockMutator) Clear() {
	fillBlock(m.c.cells)
}

func (m vblockMutator) MergeDrawingCell(x, y int, c cell.Cell) {
	if bc, ok := c.(cell.BlockCell); ok {
		m.putDrawing(x, y, bc, true)
	}
}

func (m vblockMutator) ReplaceDrawingCell(x, y int, c cell.Cell) {
	if bc, ok := c.(cell.BlockCell); ok {
		m.putDrawing(x, y, bc, false)
	}
}

func (m vblockMutator) putDrawing(x, y int, bc cell.BlockCell, merge bool) {
	if !m.c.inDrawing(x, y) {
		return
	}
	row := y * m.c.width * 2
	i := row + x
	pi := row + x + 1
	if x%2 == 1 {
		pi = row + x - 1
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

func (m vblockMutator) ReplaceCharCell(x, y int, c cell.CharCell) {
	if !m.c.inBounds(x, y) {
		return
	}
	bits := normalizedBits(c.Char)
	ink, paper := c.Ink, c.Paper
	if ink.IsTransparent() && !paper.IsTransparent() {
		ink, paper = paper, cell.ColorTransparent
		bits ^= cell.BlockMask
	}

	left := paper
	if bits&(cell.BitTopLeft|cell.BitBottomLeft) != 0 {
		left = ink
	}
	right := paper
	if bits&(cell.BitTopRight|cell.BitBottomRight) != 0 {
		right = ink
	}

	m.ReplacePair(x, y, cell.VBlockPair{Left: left, Right: right, Bright: c.Bright})
}

func (m vblockMutator) ReplacePair(x, y int, p cell.VBlockPair) {
	if !m.c.inBounds(x, y) {
		return
	}
	li := y*m.c.width*2 + 2*x
	if p.Left.IsTransparent() && p.Right.IsTransparent() {
		m.c.cells[li] = cell.TransparentBlock
		m.c.cells[li+1] = cell.TransparentBlock
		return
	}
	m.c.cells[li] = cell.BlockCell{Color: p.Left, Bright: p.Bright}
	m.c.cells[li+1] = cell.BlockCell{Color: p.Right, Bright: p.Bright}
}
