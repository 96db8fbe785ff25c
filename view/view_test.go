package view

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/bpe/canvas"
	"github.com/lixenwraith/bpe/cell"
	"github.com/lixenwraith/bpe/graphics"
	"github.com/lixenwraith/bpe/layer"
	"github.com/lixenwraith/bpe/palette"
	"github.com/lixenwraith/bpe/shape"
)

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	screen.SetSize(80, 30)
	t.Cleanup(screen.Fini)
	return screen
}

func exec(t *testing.T, e *graphics.Engine, a graphics.Action) {
	t.Helper()
	if _, ok := e.Execute(a); !ok {
		t.Fatalf("Expected %s to execute", a.Tag())
	}
}

func rgb(r, g, b int32) tcell.Color {
	return tcell.NewRGBColor(r, g, b)
}

func readRow(screen tcell.Screen, x, y, n int) string {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		r, _, _, _ := screen.GetContent(x+i, y)
		sb.WriteRune(r)
	}
	return sb.String()
}

func TestGlyph(t *testing.T) {
	tests := []struct {
		name string
		ch   cell.Char
		want rune
	}{
		{"Block space", cell.CharBlockSpace, ' '},
		{"Top left", cell.BlockChar(cell.BitTopLeft), '▘'},
		{"Top right", cell.BlockChar(cell.BitTopRight), '▝'},
		{"Bottom left", cell.BlockChar(cell.BitBottomLeft), '▖'},
		{"Bottom right", cell.BlockChar(cell.BitBottomRight), '▗'},
		{"Top half", cell.CharBlockTop, '▀'},
		{"Left half", cell.CharBlockLeft, '▌'},
		{"Diagonal", cell.BlockChar(cell.BitTopRight | cell.BitBottomLeft), '▞'},
		{"Full", cell.CharBlockFull, '█'},
		{"Letter", 'A', 'A'},
		{"Pound", 0x60, '£'},
		{"Copyright", 0x7F, '©'},
		{"Transparent", cell.CharTransparent, ' '},
		{"Control", 0x05, ' '},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Glyph(tt.ch); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestDrawPictureAndBorder(t *testing.T) {
	screen := newScreen(t)
	e := graphics.New()
	exec(t, e, graphics.SetBackgroundBorder{Color: cell.ColorBlue})
	exec(t, e, graphics.CreateLayer{Type: canvas.TypeQBlock, UID: "dots", OnTopOf: layer.BackgroundUID})
	exec(t, e, graphics.MergeShape{UID: "dots", Shape: shape.Point{X: 0, Y: 0, Cell: cell.BlockCell{Color: cell.ColorCyan, Bright: cell.LightOn}}})

	v := New(screen, e, palette.Default(), cell.ColorWhite, false)
	v.Draw()

	_, _, st, _ := screen.GetContent(0, 0)
	if _, bg, _ := st.Decompose(); bg != rgb(0, 0, 0xD7) {
		t.Errorf("Expected blue border, got %v", bg)
	}

	r, _, st, _ := screen.GetContent(borderX, borderY)
	if r != '▘' {
		t.Errorf("Expected top-left quadrant, got %q", r)
	}
	fg, bg, _ := st.Decompose()
	if fg != rgb(0, 0xFF, 0xFF) {
		t.Errorf("Expected bright cyan ink, got %v", fg)
	}
	if bg != rgb(0xFF, 0xFF, 0xFF) {
		t.Errorf("Expected bright white paper, got %v", bg)
	}

	_, _, st, _ = screen.GetContent(borderX+1, borderY)
	if _, bg, _ := st.Decompose(); bg != rgb(0xD7, 0xD7, 0xD7) {
		t.Errorf("Expected normal white background, got %v", bg)
	}
}

func TestPanel(t *testing.T) {
	screen := newScreen(t)
	e := graphics.New()
	exec(t, e, graphics.CreateLayer{Type: canvas.TypeChar, UID: "L1", OnTopOf: layer.BackgroundUID})
	exec(t, e, graphics.CreateLayer{Type: canvas.TypeQBlock, UID: "L2", OnTopOf: "L1"})
	exec(t, e, graphics.SetLayerLocked{UID: "L1", Locked: true})
	exec(t, e, graphics.SetLayerVisible{UID: "L2", Visible: false})

	v := New(screen, e, nil, cell.ColorWhite, true)
	v.Draw()

	x := canvas.DocWidth + 2*borderX + panelGap
	want := []string{
		"LAYERS",
		"--- qblock L2",
		"VL- char   L1",
		"V-- back   white/white",
	}
	for i, line := range want {
		if got := readRow(screen, x, i, len(line)); got != line {
			t.Errorf("Row %d: expected %q, got %q", i, line, got)
		}
	}
}

func TestPanelTruncatesLongNames(t *testing.T) {
	screen := newScreen(t)
	e := graphics.New()
	long := layer.UID(strings.Repeat("x", 60))
	exec(t, e, graphics.CreateLayer{Type: canvas.TypeChar, UID: long, OnTopOf: layer.BackgroundUID})

	v := New(screen, e, nil, cell.ColorWhite, true)
	v.Draw()

	x := canvas.DocWidth + 2*borderX + panelGap
	if r, _, _, _ := screen.GetContent(x+panelWidth, 1); r != ' ' {
		t.Errorf("Expected panel clipped at %d columns, got %q", panelWidth, r)
	}
	if r, _, _, _ := screen.GetContent(x+panelWidth-1, 1); r != '…' {
		t.Errorf("Expected ellipsis at the panel edge, got %q", r)
	}
}

func TestHandleEvent(t *testing.T) {
	screen := newScreen(t)
	v := New(screen, graphics.New(), nil, cell.ColorWhite, true)
	v.Draw()

	if !v.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'b', tcell.ModNone)) {
		t.Fatal("Expected b to keep the view open")
	}
	if v.PanelVisible() {
		t.Error("Expected b to hide the panel")
	}
	x := canvas.DocWidth + 2*borderX + panelGap
	if got := readRow(screen, x, 0, 6); got != "      " {
		t.Errorf("Expected panel cleared, got %q", got)
	}

	v.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'b', tcell.ModNone))
	if !v.PanelVisible() {
		t.Error("Expected second b to show the panel")
	}

	tests := []struct {
		name string
		ev   *tcell.EventKey
		open bool
	}{
		{"Quit q", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), false},
		{"Escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), false},
		{"Ctrl-C", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), false},
		{"Other rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := v.HandleEvent(tt.ev); got != tt.open {
				t.Errorf("Expected open=%v, got %v", tt.open, got)
			}
		})
	}
}

func TestFlashPhase(t *testing.T) {
	screen := newScreen(t)
	e := graphics.New()
	exec(t, e, graphics.CreateLayer{Type: canvas.TypeChar, UID: "L1", OnTopOf: layer.BackgroundUID})
	flash := cell.CharCell{Char: 'F', Ink: cell.ColorRed, Paper: cell.ColorBlack, Bright: cell.LightOff, Flash: cell.LightOn}
	exec(t, e, graphics.MergeShape{UID: "L1", Shape: shape.Point{X: 3, Y: 4, Cell: flash}})

	v := New(screen, e, nil, cell.ColorWhite, false)
	v.Draw()

	_, _, st, _ := screen.GetContent(borderX+3, borderY+4)
	fg, bg, attrs := st.Decompose()
	if fg != rgb(0xD7, 0, 0) || bg != rgb(0, 0, 0) {
		t.Errorf("Expected red on black, got %v on %v", fg, bg)
	}
	if attrs&tcell.AttrBlink == 0 {
		t.Error("Expected flashing cell to blink")
	}

	v.Tick()
	_, _, st, _ = screen.GetContent(borderX+3, borderY+4)
	if fg, bg, _ := st.Decompose(); fg != rgb(0, 0, 0) || bg != rgb(0xD7, 0, 0) {
		t.Errorf("Expected swapped colors after tick, got %v on %v", fg, bg)
	}
}
