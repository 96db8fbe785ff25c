package bitmap

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/lixenwraith/bpe/canvas"
	"github.com/lixenwraith/bpe/cell"
	"github.com/lixenwraith/bpe/palette"
)

func at(img *image.RGBA, cx, cy, dx, dy int) color.RGBA {
	return img.RGBAAt(BorderWidth+cx*CellSize+dx, BorderHeight+cy*CellSize+dy)
}

func TestRenderBlocksAndBorder(t *testing.T) {
	pal := palette.Default()
	cv := canvas.NewChar(canvas.DocWidth, canvas.DocHeight)
	cv.Mutate(func(m canvas.Mutator) {
		m.ReplaceCharCell(1, 1, cell.CharCell{
			Char:   cell.BlockChar(cell.BitTopLeft | cell.BitBottomRight),
			Ink:    cell.ColorRed,
			Paper:  cell.ColorBlue,
			Bright: cell.LightOn,
			Flash:  cell.LightOff,
		})
	})

	img := Render(cv, cell.ColorGreen, Options{Palette: pal, Fallback: cell.ColorWhite})
	if img.Bounds().Size() != Size(cv) {
		t.Fatalf("Expected size %v, got %v", Size(cv), img.Bounds().Size())
	}
	if got := img.RGBAAt(0, 0); got != pal.RGBA(cell.ColorGreen, false) {
		t.Errorf("Expected green border, got %v", got)
	}

	red, blue := pal.RGBA(cell.ColorRed, true), pal.RGBA(cell.ColorBlue, true)
	tests := []struct {
		dx, dy int
		want   color.RGBA
	}{
		{1, 1, red},
		{6, 1, blue},
		{1, 6, blue},
		{6, 6, red},
	}
	for _, tt := range tests {
		if got := at(img, 1, 1, tt.dx, tt.dy); got != tt.want {
			t.Errorf("(%d,%d): expected %v, got %v", tt.dx, tt.dy, tt.want, got)
		}
	}

	// Transparent cells print as the fallback paper
	if got := at(img, 0, 0, 3, 3); got != pal.RGBA(cell.ColorWhite, false) {
		t.Errorf("Expected fallback paper, got %v", got)
	}
}

func TestRenderText(t *testing.T) {
	pal := palette.Default()
	cv := canvas.NewChar(canvas.DocWidth, canvas.DocHeight)
	cv.Mutate(func(m canvas.Mutator) {
		m.ReplaceCharCell(0, 0, cell.CharCell{Char: 'H', Ink: cell.ColorBlack, Paper: cell.ColorWhite, Bright: cell.LightOff, Flash: cell.LightOff})
	})
	img := Render(cv, cell.ColorBlack, Options{Palette: pal, Fallback: cell.ColorWhite})

	black := pal.RGBA(cell.ColorBlack, false)
	inked := 0
	for dy := 0; dy < CellSize; dy++ {
		for dx := 0; dx < CellSize; dx++ {
			if at(img, 0, 0, dx, dy) == black {
				inked++
			}
		}
	}
	if inked == 0 || inked == CellSize*CellSize {
		t.Errorf("Expected a partially inked glyph, got %d ink pixels", inked)
	}
}

func TestRenderFlashPhase(t *testing.T) {
	pal := palette.Default()
	cv := canvas.NewChar(canvas.DocWidth, canvas.DocHeight)
	cv.Mutate(func(m canvas.Mutator) {
		m.ReplaceCharCell(0, 0, cell.CharCell{Char: cell.CharSpace, Ink: cell.ColorRed, Paper: cell.ColorCyan, Bright: cell.LightOff, Flash: cell.LightOn})
	})
	steady := Render(cv, cell.ColorBlack, Options{Palette: pal})
	flashed := Render(cv, cell.ColorBlack, Options{Palette: pal, Flashed: true})
	if got := at(steady, 0, 0, 0, 0); got != pal.RGBA(cell.ColorCyan, false) {
		t.Errorf("Expected cyan paper, got %v", got)
	}
	if got := at(flashed, 0, 0, 0, 0); got != pal.RGBA(cell.ColorRed, false) {
		t.Errorf("Expected swapped paper, got %v", got)
	}
}

func TestScaleAndPNG(t *testing.T) {
	cv := canvas.NewChar(canvas.DocWidth, canvas.DocHeight)
	img := Render(cv, cell.ColorMagenta, Options{Scale: 3})
	want := Size(cv).Mul(3)
	if img.Bounds().Size() != want {
		t.Fatalf("Expected %v, got %v", want, img.Bounds().Size())
	}

	var buf bytes.Buffer
	if err := WritePNG(&buf, img); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if decoded.Bounds().Size() != want {
		t.Errorf("Expected decoded size %v, got %v", want, decoded.Bounds().Size())
	}
}
