// Package canvas stores cells at the four drawing resolutions and converts
// between drawing cells and character cells
package canvas

import "github.com/lixenwraith/bpe/cell"

// Canvas is a read-only view; out-of-range reads return the transparent sentinel
type Canvas interface {
	Type() Type
	// Width and Height are in character cells
	Width() int
	Height() int
	DrawingWidth() int
	DrawingHeight() int
	DrawingCell(x, y int) cell.Cell
	CharCell(x, y int) cell.CharCell
	// Mutations counts opened mutation scopes
	Mutations() int
}

// Mutator is only valid inside a Mutate scope
// Out-of-range writes and cells of the wrong kind are ignored
type Mutator interface {
	Clear()
	MergeDrawingCell(x, y int, c cell.Cell)
	ReplaceDrawingCell(x, y int, c cell.Cell)
	ReplaceCharCell(x, y int, c cell.CharCell)
}

// MutableCanvas owns its cells
type MutableCanvas interface {
	Canvas
	Mutate(fn func(m Mutator))
	Clone() MutableCanvas
}

// New creates a transparent canvas of the given type and character size
func New(t Type, width, height int) MutableCanvas {
	switch t {
	case TypeHBlock:
		return NewHBlock(width, height)
	case TypeVBlock:
		return NewVBlock(width, height)
	case TypeQBlock:
		return NewQBlock(width, height)
	}
	return NewChar(width, height)
}

// NewDocument creates a transparent canvas covering the whole picture
func NewDocument(t Type) MutableCanvas {
	return New(t, DocWidth, DocHeight)
}

// base carries the size and bookkeeping shared by every canvas
type base struct {
	width     int
	height    int
	mutations int
}

func (b *base) Width() int     { return b.width }
func (b *base) Height() int    { return b.height }
func (b *base) Mutations() int { return b.mutations }

func (b *base) setMutations(n int) { b.mutations = n }

func (b *base) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// mutationSetter lets conversions carry the counter of their source
type mutationSetter interface {
	setMutations(n int)
}

func fillBlock(cells []cell.BlockCell) {
	for i := range cells {
		cells[i] = cell.TransparentBlock
	}
}
