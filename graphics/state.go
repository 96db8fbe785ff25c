package graphics

import (
	"slices"

	"github.com/lixenwraith/bpe/layer"
)

// State is the whole document: the background and the canvas layers bottom to top
type State struct {
	Background layer.Background
	Layers     []*layer.CanvasLayer
}

// NewState returns an empty document with the default background
func NewState() State {
	return State{Background: layer.DefaultBackground()}
}

// Clone deep-copies every layer
func (s State) Clone() State {
	n := State{Background: s.Background, Layers: make([]*layer.CanvasLayer, len(s.Layers))}
	for i, l := range s.Layers {
		n.Layers[i] = l.Clone()
	}
	return n
}

func (s State) Equal(o State) bool {
	return s.Background == o.Background &&
		slices.EqualFunc(s.Layers, o.Layers, func(a, b *layer.CanvasLayer) bool { return a.Equal(b) })
}

// index returns the stack position of uid or -1
func (s *State) index(uid layer.UID) int {
	return slices.IndexFunc(s.Layers, func(l *layer.CanvasLayer) bool { return l.UID() == uid })
}

func (s *State) layer(uid layer.UID) *layer.CanvasLayer {
	if i := s.index(uid); i >= 0 {
		return s.Layers[i]
	}
	return nil
}

// anchorIndex resolves the layer a new layer goes on top of; the background sits at -1
func (s *State) anchorIndex(uid layer.UID) (int, bool) {
	if uid == layer.BackgroundUID {
		return -1, true
	}
	i := s.index(uid)
	return i, i >= 0
}

// uidBelow names what the layer at i currently rests on
func (s *State) uidBelow(i int) layer.UID {
	if i <= 0 {
		return layer.BackgroundUID
	}
	return s.Layers[i-1].UID()
}

func (s *State) insertAt(i int, l *layer.CanvasLayer) {
	s.Layers = slices.Insert(s.Layers, i, l)
}

func (s *State) removeAt(i int) {
	s.Layers = slices.Delete(s.Layers, i, i+1)
}
