// Package layer holds the background and the canvas layers stacked above it
package layer

import (
	"github.com/lixenwraith/bpe/canvas"
	"github.com/lixenwraith/bpe/cell"
)

// UID identifies a layer across the document and its history
type UID string

// BackgroundUID names the background; it anchors the bottom of the layer stack
const BackgroundUID UID = ""

// Background is the bottom-most layer: a flat paper color and the border
type Background struct {
	Visible bool
	Locked  bool
	Border  cell.Color
	Color   cell.Color
	Bright  cell.Light
}

// DefaultBackground is the state of a new document
func DefaultBackground() Background {
	return Background{
		Visible: true,
		Border:  cell.ColorWhite,
		Color:   cell.ColorWhite,
		Bright:  cell.LightOff,
	}
}

// CharCell is the cell the background contributes to every position
func (b Background) CharCell() cell.CharCell {
	ch := cell.CharSpace
	if b.Color.IsTransparent() {
		ch = cell.CharTransparent
	}
	return cell.CharCell{
		Char:   ch,
		Ink:    b.Color,
		Paper:  b.Color,
		Bright: b.Bright,
		Flash:  cell.LightOff,
	}
}

// View is the read-only face of a canvas layer handed out by the engine
type View interface {
	UID() UID
	Visible() bool
	Locked() bool
	Masked() bool
	Type() canvas.Type
	Canvas() canvas.Canvas
	IsOpaque(x, y int) bool
}

// CanvasLayer is a named canvas in the layer stack
type CanvasLayer struct {
	uid     UID
	visible bool
	locked  bool
	masked  bool
	canvas  canvas.MutableCanvas
	opaque  []bool // drawing-resolution snapshot, nil when unmasked
}

// New wraps a canvas into a visible, unlocked, unmasked layer
func New(uid UID, c canvas.MutableCanvas) *CanvasLayer {
	return &CanvasLayer{uid: uid, visible: true, canvas: c}
}

// NewDocument creates a layer with a transparent document-sized canvas
func NewDocument(uid UID, t canvas.Type) *CanvasLayer {
	return New(uid, canvas.NewDocument(t))
}

func (l *CanvasLayer) UID() UID     { return l.uid }
func (l *CanvasLayer) Visible() bool { return l.visible }
func (l *CanvasLayer) Locked() bool  { return l.locked }
func (l *CanvasLayer) Masked() bool  { return l.masked }

// Canvas returns a read-only view of the layer's cells
func (l *CanvasLayer) Canvas() canvas.Canvas {
	return l.canvas
}

// Type is the resolution of the layer's canvas
func (l *CanvasLayer) Type() canvas.Type {
	return l.canvas.Type()
}

func (l *CanvasLayer) SetVisible(v bool) {
	l.visible = v
}

func (l *CanvasLayer) SetLocked(v bool) {
	l.locked = v
}

// SetMasked toggles the mask and takes a fresh opaqueness snapshot
func (l *CanvasLayer) SetMasked(v bool) {
	l.masked = v
	l.snapshotOpaque()
}

// Mutate opens a mutation scope on the layer's canvas
func (l *CanvasLayer) Mutate(fn func(m canvas.Mutator)) {
	l.canvas.Mutate(fn)
}

// MutableCanvas exposes the owned canvas for whole-canvas operations such as merging
func (l *CanvasLayer) MutableCanvas() canvas.MutableCanvas {
	return l.canvas
}

// WithCanvas returns a copy of the layer's flags around another canvas
func (l *CanvasLayer) WithCanvas(c canvas.MutableCanvas) *CanvasLayer {
	n := &CanvasLayer{uid: l.uid, visible: l.visible, locked: l.locked, canvas: c}
	n.SetMasked(l.masked)
	return n
}

// IsOpaque reports whether a drawing cell counts as painted for hit-testing
// Unmasked layers are opaque everywhere inside the canvas
func (l *CanvasLayer) IsOpaque(x, y int) bool {
	w, h := l.canvas.DrawingWidth(), l.canvas.DrawingHeight()
	if x < 0 || x >= w || y < 0 || y >= h {
		return false
	}
	if !l.masked {
		return true
	}
	return l.opaque[y*w+x]
}

func (l *CanvasLayer) snapshotOpaque() {
	if !l.masked {
		l.opaque = nil
		return
	}
	w, h := l.canvas.DrawingWidth(), l.canvas.DrawingHeight()
	l.opaque = make([]bool, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			l.opaque[y*w+x] = !l.canvas.DrawingCell(x, y).IsTransparent()
		}
	}
}

// Clone deep-copies the layer including its canvas
func (l *CanvasLayer) Clone() *CanvasLayer {
	n := &CanvasLayer{
		uid:     l.uid,
		visible: l.visible,
		locked:  l.locked,
		masked:  l.masked,
		canvas:  l.canvas.Clone(),
	}
	if l.opaque != nil {
		n.opaque = make([]bool, len(l.opaque))
		copy(n.opaque, l.opaque)
	}
	return n
}

// Equal compares flags and every cell
func (l *CanvasLayer) Equal(o *CanvasLayer) bool {
	if l == nil || o == nil {
		return l == o
	}
	return l.uid == o.uid &&
		l.visible == o.visible &&
		l.locked == o.locked &&
		l.masked == o.masked &&
		canvas.Equal(l.canvas, o.canvas)
}
