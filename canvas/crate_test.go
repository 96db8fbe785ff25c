package canvas

import (
	"errors"
	"testing"

	"github.com/lixenwraith/bpe/bag"
	"github.com/lixenwraith/bpe/cell"
)

func letter(ch rune) cell.CharCell {
	return cell.CharCell{Char: cell.Char(ch), Ink: cell.ColorWhite, Paper: cell.ColorBlack, Bright: cell.LightOff, Flash: cell.LightOff}
}

// abcCrate is 3 wide, 2 high:
//
//	a b c
//	d e f
func abcCrate() Crate {
	c := NewCrate(TypeChar, 3, 2)
	for i, ch := range "abcdef" {
		c.Cells[i] = letter(ch)
	}
	return c
}

func crateString(c Crate) string {
	s := make([]rune, 0, len(c.Cells)+c.Height)
	for y := 0; y < c.Height; y++ {
		if y > 0 {
			s = append(s, '/')
		}
		for x := 0; x < c.Width; x++ {
			s = append(s, rune(c.Cell(x, y).(cell.CharCell).Char))
		}
	}
	return string(s)
}

func TestCrateTransforms(t *testing.T) {
	tests := []struct {
		name  string
		apply func(Crate) Crate
		want  string
		w, h  int
	}{
		{"flip horizontal", Crate.FlipHorizontal, "cba/fed", 3, 2},
		{"flip vertical", Crate.FlipVertical, "def/abc", 3, 2},
		{"rotate cw", Crate.RotateCW, "da/eb/fc", 2, 3},
		{"rotate ccw", Crate.RotateCCW, "cf/be/ad", 2, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.apply(abcCrate())
			if got.Width != tt.w || got.Height != tt.h {
				t.Errorf("Expected %dx%d, got %dx%d", tt.w, tt.h, got.Width, got.Height)
			}
			if got.Type != TypeChar {
				t.Errorf("Expected type preserved, got %s", got.Type)
			}
			if s := crateString(got); s != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, s)
			}
		})
	}

	c := abcCrate()
	if !c.RotateCW().RotateCCW().Equal(c) {
		t.Error("Expected rotate cw then ccw to be identity")
	}
	if !c.RotateCW().RotateCW().Equal(c.FlipHorizontal().FlipVertical()) {
		t.Error("Expected two cw rotations to equal both flips")
	}
}

func TestCrateFromCanvas(t *testing.T) {
	c := NewDocument(TypeChar)
	c.Mutate(func(m Mutator) {
		m.ReplaceCharCell(DocWidth-1, 0, letter('z'))
	})

	cr := CrateFromChars(c, Box{X: DocWidth - 1, Y: 0, Width: 2, Height: 1})
	if got := cr.Cell(0, 0); got != letter('z') {
		t.Errorf("Expected z, got %v", got)
	}
	if !cr.Cell(1, 0).IsTransparent() {
		t.Errorf("Expected out-of-canvas cell transparent, got %v", cr.Cell(1, 0))
	}

	q := NewDocument(TypeQBlock)
	q.Mutate(func(m Mutator) {
		m.ReplaceDrawingCell(1, 1, cell.BlockCell{Color: cell.ColorCyan, Bright: cell.LightOn})
	})
	dc := CrateFromDrawing(q, Box{Width: 2, Height: 2})
	if dc.Type != TypeQBlock || dc.CellKind() != cell.KindBlock {
		t.Errorf("Expected qblock crate, got %s", dc.Type)
	}
	if got := dc.Cell(1, 1); got != (cell.BlockCell{Color: cell.ColorCyan, Bright: cell.LightOn}) {
		t.Errorf("Expected cyan pixel, got %v", got)
	}
	if !dc.Cell(0, 0).IsTransparent() {
		t.Errorf("Expected clear pixel, got %v", dc.Cell(0, 0))
	}
	if !dc.Uniform() {
		t.Error("Expected drawing crate to be uniform")
	}

	mixed := NewCrate(TypeChar, 1, 1)
	mixed.Cells[0] = cell.TransparentBlock
	if mixed.Uniform() {
		t.Error("Expected mixed crate to be reported")
	}
}

func TestBox(t *testing.T) {
	b := BoxFromCoords(5, 8, 1, 2)
	if b != (Box{X: 1, Y: 2, Width: 5, Height: 7}) {
		t.Errorf("Unexpected box %+v", b)
	}
	if b.Right() != 5 || b.Bottom() != 8 {
		t.Errorf("Expected right/bottom 5/8, got %d/%d", b.Right(), b.Bottom())
	}
	if !b.Contains(1, 2) || !b.Contains(5, 8) || b.Contains(6, 8) {
		t.Error("Unexpected containment")
	}

	got := b.Intersect(Box{X: 4, Y: 0, Width: 10, Height: 3})
	if got != (Box{X: 4, Y: 2, Width: 2, Height: 1}) {
		t.Errorf("Unexpected intersection %+v", got)
	}
	if !b.Intersect(Box{X: 20, Y: 20, Width: 1, Height: 1}).IsEmpty() {
		t.Error("Expected disjoint intersection to be empty")
	}

	cb := CharBox(TypeQBlock, Box{X: 1, Y: 1, Width: 4, Height: 2})
	if cb != (Box{X: 0, Y: 0, Width: 3, Height: 2}) {
		t.Errorf("Unexpected char box %+v", cb)
	}
}

func TestConvert(t *testing.T) {
	src := NewDocument(TypeHBlock)
	src.Mutate(func(m Mutator) {
		m.ReplaceCharCell(4, 4, cell.CharCell{Char: cell.CharBlockTop, Ink: cell.ColorRed, Paper: cell.ColorTransparent, Bright: cell.LightOn})
	})

	q := Convert(src, TypeQBlock)
	if q.Type() != TypeQBlock {
		t.Fatalf("Expected qblock, got %s", q.Type())
	}
	if q.Mutations() != src.Mutations() {
		t.Errorf("Expected mutation counter %d carried over, got %d", src.Mutations(), q.Mutations())
	}
	if got, want := q.CharCell(4, 4), src.CharCell(4, 4); got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}

	ch := Convert(q, TypeChar)
	if got := ch.CharCell(4, 4); got.Char != cell.CharBlockTop || got.Ink != cell.ColorRed {
		t.Errorf("Expected red top glyph on char canvas, got %s", got)
	}
}

func TestMergeOnto(t *testing.T) {
	onto := NewDocument(TypeHBlock)
	src := NewDocument(TypeHBlock)
	onto.Mutate(func(m Mutator) {
		m.ReplaceDrawingCell(0, 1, cell.BlockCell{Color: cell.ColorBlue, Bright: cell.LightOff})
	})
	src.Mutate(func(m Mutator) {
		m.ReplaceDrawingCell(0, 0, cell.BlockCell{Color: cell.ColorRed, Bright: cell.LightOff})
	})

	if !MergeOnto(onto, src) {
		t.Fatal("Expected merge to succeed")
	}
	if got := onto.DrawingCell(0, 0).(cell.BlockCell).Color; got != cell.ColorRed {
		t.Errorf("Expected red top from source, got %s", got)
	}
	if got := onto.DrawingCell(0, 1).(cell.BlockCell).Color; got != cell.ColorBlue {
		t.Errorf("Expected blue bottom kept, got %s", got)
	}

	if MergeOnto(NewDocument(TypeChar), src) {
		t.Error("Expected type mismatch to be refused")
	}
}

func TestCanvasCodec(t *testing.T) {
	for _, typ := range Types {
		t.Run(typ.String(), func(t *testing.T) {
			c := NewDocument(typ)
			c.Mutate(func(m Mutator) {
				m.ReplaceCharCell(0, 0, cell.CharCell{Char: cell.CharBlockTop, Ink: cell.ColorRed, Paper: cell.ColorBlue, Bright: cell.LightOn, Flash: cell.LightOff})
				m.ReplaceCharCell(31, 23, cell.CharCell{Char: cell.CharBlockRight, Ink: cell.ColorTransparent, Paper: cell.ColorGreen, Bright: cell.LightOff})
			})

			w := bag.NewWriter()
			PackCanvas(w, c)
			r := bag.NewReader(w.Bytes())
			got, err := UnpackCanvas(r)
			if err != nil {
				t.Fatalf("UnpackCanvas failed: %v", err)
			}
			if err := r.Finish(); err != nil {
				t.Errorf("Expected stream fully consumed, got %v", err)
			}
			if !Equal(c, got) {
				t.Error("Expected decoded canvas to equal the original")
			}
		})
	}
}

func TestCanvasCodecErrors(t *testing.T) {
	w := bag.NewWriter()
	w.PutStuff(1, func(p bag.Packer) {
		p.PutInt(9)
		p.PutInt(1)
		p.PutInt(1)
	})
	if _, err := UnpackCanvas(bag.NewReader(w.Bytes())); !errors.Is(err, bag.ErrUnknownType) {
		t.Errorf("Expected ErrUnknownType, got %v", err)
	}

	w = bag.NewWriter()
	w.PutStuff(2, func(p bag.Packer) {})
	if _, err := UnpackCanvas(bag.NewReader(w.Bytes())); !errors.Is(err, bag.ErrUnsupportedVersion) {
		t.Errorf("Expected ErrUnsupportedVersion, got %v", err)
	}

	w = bag.NewWriter()
	w.PutStuff(1, func(p bag.Packer) {
		p.PutInt(int(TypeChar))
		p.PutInt(1 << 20)
		p.PutInt(1)
	})
	if _, err := UnpackCanvas(bag.NewReader(w.Bytes())); !errors.Is(err, bag.ErrMalformed) {
		t.Errorf("Expected ErrMalformed for oversized canvas, got %v", err)
	}
}

func TestCrateCodec(t *testing.T) {
	c := abcCrate().RotateCW()
	w := bag.NewWriter()
	PackCrate(w, c)

	got, err := UnpackCrate(bag.NewReader(w.Bytes()))
	if err != nil {
		t.Fatalf("UnpackCrate failed: %v", err)
	}
	if !got.Equal(c) {
		t.Errorf("Expected %s, got %s", crateString(c), crateString(got))
	}
}

func TestCrateUniform(t *testing.T) {
	a := letter('a')
	tests := []struct {
		name  string
		crate Crate
		want  bool
	}{
		{"chars", abcCrate(), true},
		{"blocks", Crate{Type: TypeHBlock, Width: 1, Height: 1, Cells: []cell.Cell{cell.TransparentBlock}}, true},
		{"mixed kind", Crate{Type: TypeChar, Width: 2, Height: 1, Cells: []cell.Cell{a, cell.TransparentBlock}}, false},
		{"pointer cell", Crate{Type: TypeChar, Width: 1, Height: 1, Cells: []cell.Cell{&a}}, false},
		{"nil cell", Crate{Type: TypeChar, Width: 1, Height: 1, Cells: []cell.Cell{nil}}, false},
		{"short", Crate{Type: TypeChar, Width: 2, Height: 1, Cells: []cell.Cell{a}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.crate.Uniform(); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestCanvasValid(t *testing.T) {
	for _, typ := range []Type{TypeChar, TypeHBlock, TypeVBlock, TypeQBlock} {
		c := NewDocument(typ)
		if !Valid(c) {
			t.Errorf("Expected empty %s canvas to be valid", typ)
		}
	}

	c := NewChar(4, 4)
	c.Mutate(func(m Mutator) {
		m.ReplaceCharCell(1, 1, cell.CharCell{Char: 'x', Ink: 9, Paper: cell.ColorBlack})
	})
	if Valid(c) {
		t.Error("Expected out-of-palette ink to be invalid")
	}
}
