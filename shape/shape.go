// Package shape rasterizes drawing primitives into drawing-resolution cell writes
package shape

import (
	"github.com/lixenwraith/bpe/canvas"
	"github.com/lixenwraith/bpe/cell"
)

// Pencil receives every cell a shape paints, in paint order
type Pencil func(x, y int, c cell.Cell)

// Shape is one of Point, Line, FillBox, StrokeBox, FillEllipse, StrokeEllipse, LinkedPoints or Cells
type Shape interface {
	// CellKind is the kind of cell the shape paints with
	CellKind() cell.Kind
	// BBox is the drawing-space extent; empty when nothing would be painted
	BBox() canvas.Box
	Paint(put Pencil)
	tag() Tag
}

// Tag discriminates shape variants; values are persisted
type Tag int

const (
	TagPoint Tag = iota + 1
	TagLine
	TagFillBox
	TagStrokeBox
	TagFillEllipse
	TagStrokeEllipse
	TagLinkedPoints
	TagCells
)

// Pos is a drawing-space coordinate
type Pos struct {
	X, Y int
}

type Point struct {
	X, Y int
	Cell cell.Cell
}

func (s Point) CellKind() cell.Kind { return kindOf(s.Cell) }
func (s Point) BBox() canvas.Box    { return canvas.Box{X: s.X, Y: s.Y, Width: 1, Height: 1} }
func (s Point) Paint(put Pencil)    { put(s.X, s.Y, s.Cell) }
func (Point) tag() Tag              { return TagPoint }

// Line runs from (SX, SY) to (EX, EY), both ends included
type Line struct {
	SX, SY, EX, EY int
	Cell           cell.Cell
}

func (s Line) CellKind() cell.Kind { return kindOf(s.Cell) }
func (s Line) BBox() canvas.Box    { return canvas.BoxFromCoords(s.SX, s.SY, s.EX, s.EY) }
func (Line) tag() Tag              { return TagLine }

func (s Line) Paint(put Pencil) {
	rasterLine(s.SX, s.SY, s.EX, s.EY, 0, func(x, y int) { put(x, y, s.Cell) })
}

// FillBox covers every cell between two corners
type FillBox struct {
	SX, SY, EX, EY int
	Cell           cell.Cell
}

func (s FillBox) CellKind() cell.Kind { return kindOf(s.Cell) }
func (s FillBox) BBox() canvas.Box    { return canvas.BoxFromCoords(s.SX, s.SY, s.EX, s.EY) }
func (FillBox) tag() Tag              { return TagFillBox }

func (s FillBox) Paint(put Pencil) {
	b := s.BBox()
	for y := b.Y; y <= b.Bottom(); y++ {
		for x := b.X; x <= b.Right(); x++ {
			put(x, y, s.Cell)
		}
	}
}

// StrokeBox outlines the box, painting each border cell once
type StrokeBox struct {
	SX, SY, EX, EY int
	Cell           cell.Cell
}

func (s StrokeBox) CellKind() cell.Kind { return kindOf(s.Cell) }
func (s StrokeBox) BBox() canvas.Box    { return canvas.BoxFromCoords(s.SX, s.SY, s.EX, s.EY) }
func (StrokeBox) tag() Tag              { return TagStrokeBox }

func (s StrokeBox) Paint(put Pencil) {
	b := s.BBox()
	sx, sy, ex, ey := b.X, b.Y, b.Right(), b.Bottom()
	for x := sx; x <= ex; x++ {
		put(x, sy, s.Cell)
	}
	if sy != ey {
		for x := sx; x <= ex; x++ {
			put(x, ey, s.Cell)
		}
	}
	for y := sy + 1; y < ey; y++ {
		put(sx, y, s.Cell)
		if sx != ex {
			put(ex, y, s.Cell)
		}
	}
}

// FillEllipse fills the ellipse inscribed in the box between two corners
type FillEllipse struct {
	SX, SY, EX, EY int
	Cell           cell.Cell
}

func (s FillEllipse) CellKind() cell.Kind { return kindOf(s.Cell) }
func (s FillEllipse) BBox() canvas.Box    { return canvas.BoxFromCoords(s.SX, s.SY, s.EX, s.EY) }
func (FillEllipse) tag() Tag              { return TagFillEllipse }

func (s FillEllipse) Paint(put Pencil) {
	fillEllipse(s.BBox(), func(x, y int) { put(x, y, s.Cell) })
}

// StrokeEllipse outlines the ellipse inscribed in the box between two corners
type StrokeEllipse struct {
	SX, SY, EX, EY int
	Cell           cell.Cell
}

func (s StrokeEllipse) CellKind() cell.Kind { return kindOf(s.Cell) }
func (s StrokeEllipse) BBox() canvas.Box    { return canvas.BoxFromCoords(s.SX, s.SY, s.EX, s.EY) }
func (StrokeEllipse) tag() Tag              { return TagStrokeEllipse }

func (s StrokeEllipse) Paint(put Pencil) {
	strokeEllipse(s.BBox(), func(x, y int) { put(x, y, s.Cell) })
}

// LinkedPoints is a freehand stroke; gaps between points are bridged with lines
type LinkedPoints struct {
	Points []Pos
	Cell   cell.Cell
}

func (s LinkedPoints) CellKind() cell.Kind { return kindOf(s.Cell) }
func (LinkedPoints) tag() Tag              { return TagLinkedPoints }

func (s LinkedPoints) BBox() canvas.Box {
	if len(s.Points) == 0 {
		return canvas.Box{}
	}
	minX, minY := s.Points[0].X, s.Points[0].Y
	maxX, maxY := minX, minY
	for _, p := range s.Points[1:] {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}
	return canvas.BoxFromCoords(minX, minY, maxX, maxY)
}

func (s LinkedPoints) Paint(put Pencil) {
	plot := func(x, y int) { put(x, y, s.Cell) }
	for i, p := range s.Points {
		if i == 0 {
			plot(p.X, p.Y)
			continue
		}
		last := s.Points[i-1]
		if abs(p.X-last.X) <= 1 && abs(p.Y-last.Y) <= 1 {
			plot(p.X, p.Y)
		} else {
			rasterLine(last.X, last.Y, p.X, p.Y, 1, plot)
		}
	}
}

// Cells stamps a crate with its top-left corner at (X, Y)
type Cells struct {
	X, Y  int
	Crate canvas.Crate
}

func (Cells) tag() Tag { return TagCells }

func (s Cells) CellKind() cell.Kind {
	if !s.Crate.Type.Valid() {
		return 0
	}
	return s.Crate.CellKind()
}

func (s Cells) BBox() canvas.Box {
	return canvas.Box{X: s.X, Y: s.Y, Width: s.Crate.Width, Height: s.Crate.Height}
}

func (s Cells) Paint(put Pencil) {
	for cy := 0; cy < s.Crate.Height; cy++ {
		for cx := 0; cx < s.Crate.Width; cx++ {
			put(s.X+cx, s.Y+cy, s.Crate.Cell(cx, cy))
		}
	}
}

// kindOf tolerates a missing cell; zero matches no canvas
func kindOf(c cell.Cell) cell.Kind {
	if c == nil {
		return 0
	}
	return c.Kind()
}
