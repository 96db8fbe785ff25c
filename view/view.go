// Package view shows the composed picture and its layer stack on a terminal
package view

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/bpe/canvas"
	"github.com/lixenwraith/bpe/cell"
	"github.com/lixenwraith/bpe/layer"
	"github.com/lixenwraith/bpe/palette"
)

const (
	// Border frame thickness around the picture, in terminal cells
	borderX = 2
	borderY = 1

	panelGap   = 2
	panelWidth = 28

	flashPeriod = 320 * time.Millisecond
)

// Source is the read side of a document
type Source interface {
	Background() layer.Background
	Layers() []layer.View
	Preview() canvas.Canvas
}

// quadrantRunes is indexed upper-left=1, upper-right=2, lower-left=4, lower-right=8
var quadrantRunes = [16]rune{
	' ', '▘', '▝', '▀',
	'▖', '▌', '▞', '▛',
	'▗', '▚', '▐', '▜',
	'▄', '▙', '▟', '█',
}

// View draws a Source onto a screen
type View struct {
	screen    tcell.Screen
	src       Source
	pal       *palette.Palette
	fallback  cell.Color
	showPanel bool
	// flashOff is the second phase of the flash cycle, ink and paper swapped
	flashOff bool
}

func New(screen tcell.Screen, src Source, pal *palette.Palette, fallback cell.Color, showPanel bool) *View {
	if pal == nil {
		pal = palette.Default()
	}
	return &View{
		screen:    screen,
		src:       src,
		pal:       pal,
		fallback:  fallback,
		showPanel: showPanel,
	}
}

// PanelVisible reports whether the layer panel is drawn
func (v *View) PanelVisible() bool {
	return v.showPanel
}

// Draw repaints the whole screen
func (v *View) Draw() {
	v.screen.Clear()
	v.drawBorder()
	v.drawPicture()
	if v.showPanel {
		v.drawPanel()
	}
	v.screen.Show()
}

func (v *View) drawBorder() {
	bg := v.src.Background()
	st := tcell.StyleDefault.Background(v.color(bg.Border, false))
	w := canvas.DocWidth + 2*borderX
	h := canvas.DocHeight + 2*borderY
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x >= borderX && x < w-borderX && y >= borderY && y < h-borderY {
				continue
			}
			v.screen.SetContent(x, y, ' ', nil, st)
		}
	}
}

func (v *View) drawPicture() {
	preview := v.src.Preview()
	for y := 0; y < preview.Height(); y++ {
		for x := 0; x < preview.Width(); x++ {
			r, st := v.cellStyle(preview.CharCell(x, y))
			v.screen.SetContent(borderX+x, borderY+y, r, nil, st)
		}
	}
}

// cellStyle maps a character cell to the rune and style that display it
func (v *View) cellStyle(c cell.CharCell) (rune, tcell.Style) {
	bright := c.Bright.On()
	ink := v.color(c.Ink, bright)
	paper := v.color(c.Paper, bright)
	if c.Flash.On() && v.flashOff {
		ink, paper = paper, ink
	}
	st := tcell.StyleDefault.Foreground(ink).Background(paper)
	if c.Flash.On() {
		st = st.Blink(true)
	}
	return Glyph(c.Char), st
}

func (v *View) color(c cell.Color, bright bool) tcell.Color {
	r, g, b := v.pal.Color(palette.Resolve(c, v.fallback), bright).RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// Glyph returns the terminal rune for a character code
func Glyph(ch cell.Char) rune {
	switch {
	case ch.IsBlock():
		bits := ch.Bits()
		idx := 0
		if bits&cell.BitTopLeft != 0 {
			idx |= 1
		}
		if bits&cell.BitTopRight != 0 {
			idx |= 2
		}
		if bits&cell.BitBottomLeft != 0 {
			idx |= 4
		}
		if bits&cell.BitBottomRight != 0 {
			idx |= 8
		}
		return quadrantRunes[idx]
	case ch == 0x60:
		return '£'
	case ch == 0x7F:
		return '©'
	case ch >= 0x20 && ch < 0x7F:
		return rune(ch)
	}
	return ' '
}

func (v *View) drawPanel() {
	x := canvas.DocWidth + 2*borderX + panelGap
	st := tcell.StyleDefault
	dim := st.Dim(true)

	v.drawText(x, 0, "LAYERS", st.Bold(true))
	row := 1
	layers := v.src.Layers()
	for i := len(layers) - 1; i >= 0; i-- {
		l := layers[i]
		flags := marker(l.Visible(), 'V') + marker(l.Locked(), 'L') + marker(l.Masked(), 'M')
		text := fmt.Sprintf("%s %-6s %s", flags, l.Type(), l.UID())
		style := st
		if !l.Visible() {
			style = dim
		}
		v.drawText(x, row, runewidth.Truncate(text, panelWidth, "…"), style)
		row++
	}

	bg := v.src.Background()
	flags := marker(bg.Visible, 'V') + marker(bg.Locked, 'L') + "-"
	text := fmt.Sprintf("%s %-6s %s/%s", flags, "back", bg.Color, bg.Border)
	v.drawText(x, row, runewidth.Truncate(text, panelWidth, "…"), dim.Italic(true))
}

func marker(on bool, r rune) string {
	if on {
		return string(r)
	}
	return "-"
}

// drawText writes text from x, advancing by display width
func (v *View) drawText(x, y int, text string, st tcell.Style) {
	w, _ := v.screen.Size()
	for _, r := range text {
		if x >= w {
			return
		}
		v.screen.SetContent(x, y, r, nil, st)
		x += runewidth.RuneWidth(r)
	}
}

// HandleEvent applies one terminal event; it returns false when the view should close
func (v *View) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				return false
			case 'b', 'B':
				v.showPanel = !v.showPanel
				v.Draw()
			}
		}
	case *tcell.EventResize:
		v.screen.Sync()
		v.Draw()
	}
	return true
}

// Tick advances the flash phase and repaints
func (v *View) Tick() {
	v.flashOff = !v.flashOff
	v.Draw()
}

// Run draws the picture and serves events until the user quits
func (v *View) Run() {
	eventChan := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-quit:
				return
			}
		}
	}()

	ticker := time.NewTicker(flashPeriod)
	defer ticker.Stop()

	v.Draw()
	for {
		select {
		case ev := <-eventChan:
			if !v.HandleEvent(ev) {
				return
			}
		case <-ticker.C:
			v.Tick()
		}
	}
}
