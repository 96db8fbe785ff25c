package shape

import (
	"slices"
	"testing"

	"github.com/lixenwraith/bpe/bag"
	"github.com/lixenwraith/bpe/canvas"
	"github.com/lixenwraith/bpe/cell"
)

var ink = cell.BlockCell{Color: cell.ColorWhite, Bright: cell.LightOn}

func collect(s Shape) []Pos {
	var got []Pos
	s.Paint(func(x, y int, _ cell.Cell) {
		got = append(got, Pos{x, y})
	})
	return got
}

func sorted(ps []Pos) []Pos {
	out := slices.Clone(ps)
	slices.SortFunc(out, func(a, b Pos) int {
		if a.Y != b.Y {
			return a.Y - b.Y
		}
		return a.X - b.X
	})
	return out
}

func TestLine(t *testing.T) {
	tests := []struct {
		name string
		line Line
		want []Pos
	}{
		{
			name: "horizontal",
			line: Line{SX: 2, SY: 3, EX: 5, EY: 3, Cell: ink},
			want: []Pos{{2, 3}, {3, 3}, {4, 3}, {5, 3}},
		},
		{
			name: "shallow leftward",
			line: Line{SX: 8, SY: 1, EX: 2, EY: 5, Cell: ink},
			want: []Pos{{8, 1}, {7, 2}, {6, 2}, {5, 3}, {4, 4}, {3, 4}, {2, 5}},
		},
		{
			name: "steep",
			line: Line{SX: 0, SY: 0, EX: 1, EY: 3, Cell: ink},
			want: []Pos{{0, 0}, {0, 1}, {1, 2}, {1, 3}},
		},
		{
			name: "diagonal",
			line: Line{SX: 3, SY: 3, EX: 0, EY: 0, Cell: ink},
			want: []Pos{{3, 3}, {2, 2}, {1, 1}, {0, 0}},
		},
		{
			name: "single point",
			line: Line{SX: 4, SY: 4, EX: 4, EY: 4, Cell: ink},
			want: []Pos{{4, 4}},
		},
		{
			name: "half rounds away from zero",
			line: Line{SX: 0, SY: 0, EX: 4, EY: -2, Cell: ink},
			want: []Pos{{0, 0}, {1, -1}, {2, -1}, {3, -2}, {4, -2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := collect(tt.line); !slices.Equal(got, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestLineBBox(t *testing.T) {
	got := Line{SX: 5, SY: 2, EX: 1, EY: 8, Cell: ink}.BBox()
	if got != (canvas.Box{X: 1, Y: 2, Width: 5, Height: 7}) {
		t.Errorf("Unexpected bbox %+v", got)
	}
}

func TestBoxes(t *testing.T) {
	fill := collect(FillBox{SX: 2, SY: 1, EX: 0, EY: 0, Cell: ink})
	if len(fill) != 6 {
		t.Errorf("Expected 6 cells, got %d", len(fill))
	}

	stroke := collect(StrokeBox{SX: 0, SY: 0, EX: 3, EY: 2, Cell: ink})
	want := []Pos{{0, 0}, {1, 0}, {2, 0}, {3, 0}, {0, 2}, {1, 2}, {2, 2}, {3, 2}, {0, 1}, {3, 1}}
	if !slices.Equal(stroke, want) {
		t.Errorf("Expected %v, got %v", want, stroke)
	}

	// Degenerate boxes paint each cell once
	if got := collect(StrokeBox{SX: 1, SY: 1, EX: 1, EY: 1, Cell: ink}); len(got) != 1 {
		t.Errorf("Expected 1 cell, got %v", got)
	}
	if got := collect(StrokeBox{SX: 1, SY: 0, EX: 1, EY: 3, Cell: ink}); len(got) != 4 {
		t.Errorf("Expected 4 cells for a vertical stroke, got %v", got)
	}
}

func TestEllipses(t *testing.T) {
	fill := sorted(collect(FillEllipse{SX: 3, SY: 2, EX: 1, EY: 5, Cell: ink}))
	wantFill := []Pos{{2, 2}, {1, 3}, {2, 3}, {3, 3}, {1, 4}, {2, 4}, {3, 4}, {2, 5}}
	if !slices.Equal(fill, wantFill) {
		t.Errorf("Expected fill %v, got %v", wantFill, fill)
	}

	stroke := sorted(collect(StrokeEllipse{SX: 3, SY: 2, EX: 1, EY: 5, Cell: ink}))
	wantStroke := []Pos{{2, 2}, {1, 3}, {3, 3}, {1, 4}, {3, 4}, {2, 5}}
	if !slices.Equal(stroke, wantStroke) {
		t.Errorf("Expected stroke %v, got %v", wantStroke, stroke)
	}

	// Single cell ellipse
	if got := collect(FillEllipse{SX: 7, SY: 7, EX: 7, EY: 7, Cell: ink}); !slices.Equal(got, []Pos{{7, 7}}) {
		t.Errorf("Expected single cell, got %v", got)
	}
}

func TestStrokeEllipseNoDuplicates(t *testing.T) {
	got := collect(StrokeEllipse{SX: 0, SY: 0, EX: 15, EY: 9, Cell: ink})
	seen := make(map[Pos]bool)
	for _, p := range got {
		if seen[p] {
			t.Errorf("Cell %v painted twice", p)
		}
		seen[p] = true
	}
	for _, corner := range []Pos{{0, 0}, {15, 0}, {0, 9}, {15, 9}} {
		if seen[corner] {
			t.Errorf("Expected corner %v outside the ellipse", corner)
		}
	}
}

func TestLinkedPoints(t *testing.T) {
	s := LinkedPoints{Points: []Pos{{0, 0}, {1, 1}, {4, 1}}, Cell: ink}
	want := []Pos{{0, 0}, {1, 1}, {2, 1}, {3, 1}, {4, 1}}
	if got := collect(s); !slices.Equal(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
	if got := s.BBox(); got != (canvas.Box{X: 0, Y: 0, Width: 5, Height: 2}) {
		t.Errorf("Unexpected bbox %+v", got)
	}

	empty := LinkedPoints{Cell: ink}
	if !empty.BBox().IsEmpty() {
		t.Error("Expected empty bbox")
	}
	if got := collect(empty); len(got) != 0 {
		t.Errorf("Expected nothing painted, got %v", got)
	}
}

func TestCells(t *testing.T) {
	cr := canvas.NewCrate(canvas.TypeChar, 2, 1)
	red := cell.CharCell{Char: cell.CharSpace, Ink: cell.ColorRed, Paper: cell.ColorRed, Bright: cell.LightOff, Flash: cell.LightOff}
	cr.Cells[0] = red

	s := Cells{X: 5, Y: 6, Crate: cr}
	if s.CellKind() != cell.KindChar {
		t.Errorf("Expected char kind, got %s", s.CellKind())
	}
	var got []cell.Cell
	var pos []Pos
	s.Paint(func(x, y int, c cell.Cell) {
		pos = append(pos, Pos{x, y})
		got = append(got, c)
	})
	if !slices.Equal(pos, []Pos{{5, 6}, {6, 6}}) {
		t.Errorf("Unexpected positions %v", pos)
	}
	if got[0] != red || !got[1].IsTransparent() {
		t.Errorf("Unexpected cells %v", got)
	}
	if s.BBox() != (canvas.Box{X: 5, Y: 6, Width: 2, Height: 1}) {
		t.Errorf("Unexpected bbox %+v", s.BBox())
	}
}

func TestShapeCodec(t *testing.T) {
	cr := canvas.NewCrate(canvas.TypeQBlock, 1, 2)
	cr.Cells[1] = ink
	shapes := []Shape{
		Point{X: 1, Y: 2, Cell: ink},
		Line{SX: -1, SY: 2, EX: 30, EY: 4, Cell: cell.TransparentBlock},
		FillBox{SX: 0, SY: 0, EX: 3, EY: 3, Cell: cell.CharCell{Char: 'x', Ink: cell.ColorRed, Paper: cell.ColorTransparent, Bright: cell.LightTransparent, Flash: cell.LightTransparent}},
		StrokeBox{SX: 1, SY: 1, EX: 2, EY: 2, Cell: ink},
		FillEllipse{SX: 0, SY: 0, EX: 9, EY: 5, Cell: ink},
		StrokeEllipse{SX: 9, SY: 5, EX: 0, EY: 0, Cell: ink},
		LinkedPoints{Points: []Pos{{0, 0}, {5, 5}}, Cell: ink},
		Cells{X: 3, Y: 4, Crate: cr},
	}

	w := bag.NewWriter()
	for _, s := range shapes {
		PackShape(w, s)
	}
	r := bag.NewReader(w.Bytes())
	for i, want := range shapes {
		got, err := UnpackShape(r)
		if err != nil {
			t.Fatalf("shape %d: %v", i, err)
		}
		if got.tag() != want.tag() || got.BBox() != want.BBox() || !slices.Equal(collect(got), collect(want)) {
			t.Errorf("shape %d: expected %+v, got %+v", i, want, got)
		}
	}
	if err := r.Finish(); err != nil {
		t.Errorf("Expected stream fully consumed, got %v", err)
	}
}
