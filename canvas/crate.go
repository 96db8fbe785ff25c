package canvas

import (
	"slices"

	"github.com/lixenwraith/bpe/cell"
)

// Crate is a rectangular snapshot of cells, stored row-major
// Char crates (Type == TypeChar) hold character cells; other types hold drawing cells
type Crate struct {
	Type   Type
	Width  int
	Height int
	Cells  []cell.Cell
}

// NewCrate creates a transparent crate
func NewCrate(t Type, width, height int) Crate {
	width, height = max(width, 0), max(height, 0)
	cells := make([]cell.Cell, width*height)
	tc := t.Transparent()
	for i := range cells {
		cells[i] = tc
	}
	return Crate{Type: t, Width: width, Height: height, Cells: cells}
}

// CrateFromChars snapshots character cells; positions outside the canvas read transparent
func CrateFromChars(c Canvas, b Box) Crate {
	cr := NewCrate(TypeChar, b.Width, b.Height)
	for y := 0; y < cr.Height; y++ {
		for x := 0; x < cr.Width; x++ {
			cr.Cells[y*cr.Width+x] = c.CharCell(b.X+x, b.Y+y)
		}
	}
	return cr
}

// CrateFromDrawing snapshots drawing cells at the canvas' own resolution
func CrateFromDrawing(c Canvas, b Box) Crate {
	cr := NewCrate(c.Type(), b.Width, b.Height)
	for y := 0; y < cr.Height; y++ {
		for x := 0; x < cr.Width; x++ {
			cr.Cells[y*cr.Width+x] = c.DrawingCell(b.X+x, b.Y+y)
		}
	}
	return cr
}

// CellKind returns the kind of the cells the crate carries
func (c Crate) CellKind() cell.Kind {
	return c.Type.CellKind()
}

// Cell returns the cell at a crate position, transparent out of range
func (c Crate) Cell(x, y int) cell.Cell {
	if x < 0 || x >= c.Width || y < 0 || y >= c.Height {
		return c.Type.Transparent()
	}
	return c.Cells[y*c.Width+x]
}

func (c Crate) IsEmpty() bool {
	return c.Width <= 0 || c.Height <= 0
}

// Uniform reports whether every cell is a value of the crate's cell kind
func (c Crate) Uniform() bool {
	if len(c.Cells) != c.Width*c.Height {
		return false
	}
	kind := c.CellKind()
	for _, v := range c.Cells {
		switch v.(type) {
		case cell.CharCell:
			if kind != cell.KindChar {
				return false
			}
		case cell.BlockCell:
			if kind != cell.KindBlock {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func (c Crate) Equal(o Crate) bool {
	return c.Type == o.Type && c.Width == o.Width && c.Height == o.Height && slices.Equal(c.Cells, o.Cells)
}

// remap builds a crate of the given size where each cell comes from src(x, y)
func (c Crate) remap(width, height int, src func(x, y int) int) Crate {
	cells := make([]cell.Cell, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			cells[y*width+x] = c.Cells[src(x, y)]
		}
	}
	return Crate{Type: c.Type, Width: width, Height: height, Cells: cells}
}

// FlipHorizontal mirrors each row
func (c Crate) FlipHorizontal() Crate {
	return c.remap(c.Width, c.Height, func(x, y int) int {
		return y*c.Width + (c.Width - 1 - x)
	})
}

// FlipVertical reverses the row order
func (c Crate) FlipVertical() Crate {
	return c.remap(c.Width, c.Height, func(x, y int) int {
		return (c.Height-1-y)*c.Width + x
	})
}

// RotateCW turns the crate a quarter clockwise; width and height swap
func (c Crate) RotateCW() Crate {
	return c.remap(c.Height, c.Width, func(x, y int) int {
		return (c.Height-1-x)*c.Width + y
	})
}

// RotateCCW turns the crate a quarter counter-clockwise; width and height swap
func (c Crate) RotateCCW() Crate {
	return c.remap(c.Height, c.Width, func(x, y int) int {
		return x*c.Width + (c.Width - 1 - y)
	})
}
