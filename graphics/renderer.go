package graphics

import (
	"github.com/lixenwraith/bpe/canvas"
	"github.com/lixenwraith/bpe/cell"
)

// Renderer keeps a character-resolution composition of the document
type Renderer struct {
	preview *canvas.CharCanvas
}

func NewRenderer() *Renderer {
	return &Renderer{preview: canvas.NewChar(canvas.DocWidth, canvas.DocHeight)}
}

// Preview is the last composition; it stays valid until the next Render
func (r *Renderer) Preview() canvas.Canvas {
	return r.preview
}

// Render recomposes the cells of box, clipped to the preview
func (r *Renderer) Render(s *State, box canvas.Box) {
	box = box.Intersect(canvas.Bounds(r.preview))
	if box.IsEmpty() {
		return
	}
	r.preview.Mutate(func(m canvas.Mutator) {
		for y := box.Y; y <= box.Bottom(); y++ {
			for x := box.X; x <= box.Right(); x++ {
				m.ReplaceCharCell(x, y, Compose(s, x, y))
			}
		}
	})
}

// Compose merges every visible layer at a character position over the background
func Compose(s *State, x, y int) cell.CharCell {
	out := cell.TransparentChar
	if s.Background.Visible {
		out = s.Background.CharCell()
	}
	for _, l := range s.Layers {
		if !l.Visible() {
			continue
		}
		out = l.Canvas().CharCell(x, y).Merge(out)
	}
	return out
}

// fullBox covers the whole preview
var fullBox = canvas.Box{Width: canvas.DocWidth, Height: canvas.DocHeight}
