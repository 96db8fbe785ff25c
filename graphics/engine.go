// Package graphics executes document actions into their inverses and keeps
// the composed preview in sync
package graphics

import (
	"go.uber.org/zap"

	"github.com/lixenwraith/bpe/canvas"
	"github.com/lixenwraith/bpe/cell"
	"github.com/lixenwraith/bpe/layer"
	"github.com/lixenwraith/bpe/shape"
)

// Engine owns the document state; it is not safe for concurrent use
type Engine struct {
	state    State
	renderer *Renderer
	log      *zap.Logger
}

type Option func(*Engine)

// WithLogger routes engine diagnostics to l
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// New creates an engine over an empty document
func New(opts ...Option) *Engine {
	e := &Engine{
		state:    NewState(),
		renderer: NewRenderer(),
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.renderer.Render(&e.state, fullBox)
	return e
}

// plan is a validated action waiting to be applied
type plan struct {
	apply func() Action
	dirty canvas.Box // char-space region to recompose, empty for none
}

// Execute applies a and returns the action that undoes it
// ok is false when a would not change the document; nothing is mutated then
func (e *Engine) Execute(a Action) (inverse Action, ok bool) {
	p, ok := e.plan(a)
	if !ok {
		e.log.Debug("action skipped", zap.Stringer("action", tagOf(a)))
		return nil, false
	}
	inverse = p.apply()
	e.renderer.Render(&e.state, p.dirty)
	e.log.Debug("action executed",
		zap.Stringer("action", tagOf(a)),
		zap.Stringer("inverse", inverse.Tag()),
		zap.Int("layers", len(e.state.Layers)),
	)
	return inverse, true
}

// CanExecute reports whether Execute would change the document
func (e *Engine) CanExecute(a Action) bool {
	_, ok := e.plan(a)
	return ok
}

func (e *Engine) Background() layer.Background {
	return e.state.Background
}

// Layers lists the canvas layers bottom to top
func (e *Engine) Layers() []layer.View {
	views := make([]layer.View, len(e.state.Layers))
	for i, l := range e.state.Layers {
		views[i] = l
	}
	return views
}

func (e *Engine) Layer(uid layer.UID) (layer.View, bool) {
	l := e.state.layer(uid)
	if l == nil {
		return nil, false
	}
	return l, true
}

// Preview is the composed picture at character resolution
func (e *Engine) Preview() canvas.Canvas {
	return e.renderer.Preview()
}

// Snapshot returns an independent copy of the document
func (e *Engine) Snapshot() State {
	return e.state.Clone()
}

// isPaint reports whether c is a real palette color; the border cannot be transparent
func isPaint(c cell.Color) bool {
	return c.Valid() && !c.IsTransparent()
}

func tagOf(a Action) Tag {
	if a == nil {
		return 0
	}
	return a.Tag()
}

func (e *Engine) plan(a Action) (plan, bool) {
	s := &e.state
	switch a := a.(type) {
	case SetBackgroundBorder:
		return e.planBackground(isPaint(a.Color) && a.Color != s.Background.Border, true, canvas.Box{},
			func(b *layer.Background) Action {
				old := b.Border
				b.Border = a.Color
				return SetBackgroundBorder{Color: old}
			})
	case SetBackgroundColor:
		return e.planBackground(a.Color.Valid() && a.Color != s.Background.Color, true, fullBox,
			func(b *layer.Background) Action {
				old := b.Color
				b.Color = a.Color
				return SetBackgroundColor{Color: old}
			})
	case SetBackgroundBright:
		return e.planBackground(a.Bright.Valid() && a.Bright != s.Background.Bright, true, fullBox,
			func(b *layer.Background) Action {
				old := b.Bright
				b.Bright = a.Bright
				return SetBackgroundBright{Bright: old}
			})
	case SetBackgroundVisible:
		return e.planBackground(a.Visible != s.Background.Visible, false, fullBox,
			func(b *layer.Background) Action {
				b.Visible = a.Visible
				return SetBackgroundVisible{Visible: !a.Visible}
			})
	case SetBackgroundLocked:
		return e.planBackground(a.Locked != s.Background.Locked, false, canvas.Box{},
			func(b *layer.Background) Action {
				b.Locked = a.Locked
				return SetBackgroundLocked{Locked: !a.Locked}
			})
	case CreateLayer:
		return e.planCreate(a)
	case ReplaceLayer:
		return e.planReplace(a)
	case InsertLayer:
		return e.planInsert(a)
	case DeleteLayer:
		return e.planDelete(a)
	case SetLayerVisible:
		return e.planFlag(a.UID, fullBox, (*layer.CanvasLayer).Visible, func(l *layer.CanvasLayer) Action {
			l.SetVisible(a.Visible)
			return SetLayerVisible{UID: a.UID, Visible: !a.Visible}
		}, a.Visible)
	case SetLayerLocked:
		return e.planFlag(a.UID, canvas.Box{}, (*layer.CanvasLayer).Locked, func(l *layer.CanvasLayer) Action {
			l.SetLocked(a.Locked)
			return SetLayerLocked{UID: a.UID, Locked: !a.Locked}
		}, a.Locked)
	case SetLayerMasked:
		return e.planFlag(a.UID, canvas.Box{}, (*layer.CanvasLayer).Masked, func(l *layer.CanvasLayer) Action {
			l.SetMasked(a.Masked)
			return SetLayerMasked{UID: a.UID, Masked: !a.Masked}
		}, a.Masked)
	case MoveLayer:
		return e.planMove(a)
	case MergeShape:
		return e.planShape(a.UID, a.Shape, true)
	case ReplaceShape:
		return e.planShape(a.UID, a.Shape, false)
	case ReplaceCells:
		return e.planCells(a)
	case MergeLayers:
		return e.planMerge(a)
	case UndoMergeLayers:
		return e.planUndoMerge(a)
	case ConvertLayer:
		return e.planConvert(a)
	}
	return plan{}, false
}

// planBackground applies set to the background when changed holds
// Paint-affecting setters also require the background to be unlocked
func (e *Engine) planBackground(changed, paint bool, dirty canvas.Box, set func(b *layer.Background) Action) (plan, bool) {
	if !changed || (paint && e.state.Background.Locked) {
		return plan{}, false
	}
	return plan{
		apply: func() Action { return set(&e.state.Background) },
		dirty: dirty,
	}, true
}

func (e *Engine) planCreate(a CreateLayer) (plan, bool) {
	s := &e.state
	if !a.Type.Valid() || a.UID == layer.BackgroundUID || s.index(a.UID) >= 0 {
		return plan{}, false
	}
	anchor, ok := s.anchorIndex(a.OnTopOf)
	if !ok {
		return plan{}, false
	}
	return plan{
		apply: func() Action {
			s.insertAt(anchor+1, layer.NewDocument(a.UID, a.Type))
			return DeleteLayer{UID: a.UID}
		},
		dirty: fullBox,
	}, true
}

// installable reports whether a caller-supplied layer may enter the stack: unlocked, 32x24, reloadable
func installable(l *layer.CanvasLayer) bool {
	if l == nil || l.Locked() || l.UID() == layer.BackgroundUID {
		return false
	}
	c := l.Canvas()
	return c.Type().Valid() && c.Width() == canvas.DocWidth && c.Height() == canvas.DocHeight && canvas.Valid(c)
}

func (e *Engine) planReplace(a ReplaceLayer) (plan, bool) {
	s := &e.state
	if !installable(a.Layer) {
		return plan{}, false
	}
	i := s.index(a.Layer.UID())
	if i < 0 || s.Layers[i].Locked() {
		return plan{}, false
	}
	return plan{
		apply: func() Action {
			old := s.Layers[i]
			s.Layers[i] = a.Layer.Clone()
			return ReplaceLayer{Layer: old}
		},
		dirty: fullBox,
	}, true
}

func (e *Engine) planInsert(a InsertLayer) (plan, bool) {
	s := &e.state
	if !installable(a.Layer) || s.index(a.Layer.UID()) >= 0 {
		return plan{}, false
	}
	anchor, ok := s.anchorIndex(a.OnTopOf)
	if !ok {
		return plan{}, false
	}
	return plan{
		apply: func() Action {
			s.insertAt(anchor+1, a.Layer.Clone())
			return DeleteLayer{UID: a.Layer.UID()}
		},
		dirty: fullBox,
	}, true
}

func (e *Engine) planDelete(a DeleteLayer) (plan, bool) {
	s := &e.state
	i := s.index(a.UID)
	if i < 0 || s.Layers[i].Locked() {
		return plan{}, false
	}
	return plan{
		apply: func() Action {
			old, below := s.Layers[i], s.uidBelow(i)
			s.removeAt(i)
			return InsertLayer{Layer: old, OnTopOf: below}
		},
		dirty: fullBox,
	}, true
}

// planFlag toggles one layer flag when it differs from want
func (e *Engine) planFlag(uid layer.UID, dirty canvas.Box, get func(*layer.CanvasLayer) bool, set func(l *layer.CanvasLayer) Action, want bool) (plan, bool) {
	l := e.state.layer(uid)
	if l == nil || get(l) == want {
		return plan{}, false
	}
	return plan{
		apply: func() Action { return set(l) },
		dirty: dirty,
	}, true
}

func (e *Engine) planMove(a MoveLayer) (plan, bool) {
	s := &e.state
	i := s.index(a.UID)
	if i < 0 || s.Layers[i].Locked() || a.OnTopOf == a.UID {
		return plan{}, false
	}
	if _, ok := s.anchorIndex(a.OnTopOf); !ok || s.uidBelow(i) == a.OnTopOf {
		return plan{}, false
	}
	return plan{
		apply: func() Action {
			l, below := s.Layers[i], s.uidBelow(i)
			s.removeAt(i)
			anchor, _ := s.anchorIndex(a.OnTopOf)
			s.insertAt(anchor+1, l)
			return MoveLayer{UID: a.UID, OnTopOf: below}
		},
		dirty: fullBox,
	}, true
}

func (e *Engine) planShape(uid layer.UID, sh shape.Shape, merge bool) (plan, bool) {
	l := e.state.layer(uid)
	if sh == nil || l == nil || l.Locked() || sh.CellKind() != l.Type().CellKind() {
		return plan{}, false
	}
	bbox := sh.BBox()
	if bbox.IsEmpty() {
		return plan{}, false
	}
	box := canvas.CharBox(l.Type(), bbox).Intersect(canvas.Bounds(l.Canvas()))
	if box.IsEmpty() || !paintsValid(sh) {
		return plan{}, false
	}
	return plan{
		apply: func() Action {
			snap := canvas.CrateFromChars(l.Canvas(), box)
			l.Mutate(func(m canvas.Mutator) {
				sh.Paint(func(x, y int, c cell.Cell) {
					if merge {
						m.MergeDrawingCell(x, y, c)
					} else {
						m.ReplaceDrawingCell(x, y, c)
					}
				})
			})
			return ReplaceCells{UID: uid, X: box.X, Y: box.Y, Crate: snap}
		},
		dirty: box,
	}, true
}

// paintsValid dry-runs sh and checks every cell it would write
func paintsValid(sh shape.Shape) bool {
	ok := true
	sh.Paint(func(_, _ int, c cell.Cell) {
		if ok && !cell.Valid(c) {
			ok = false
		}
	})
	return ok
}

func (e *Engine) planCells(a ReplaceCells) (plan, bool) {
	l := e.state.layer(a.UID)
	if l == nil || l.Locked() {
		return plan{}, false
	}
	cr := a.Crate
	if cr.IsEmpty() || cr.Type != canvas.TypeChar || !cr.Uniform() {
		return plan{}, false
	}
	for _, c := range cr.Cells {
		if !cell.Valid(c) {
			return plan{}, false
		}
	}
	target := canvas.Box{X: a.X, Y: a.Y, Width: cr.Width, Height: cr.Height}
	box := target.Intersect(canvas.Bounds(l.Canvas()))
	if box.IsEmpty() {
		return plan{}, false
	}
	return plan{
		apply: func() Action {
			snap := canvas.CrateFromChars(l.Canvas(), target)
			l.Mutate(func(m canvas.Mutator) {
				for y := 0; y < cr.Height; y++ {
					for x := 0; x < cr.Width; x++ {
						m.ReplaceCharCell(a.X+x, a.Y+y, cr.Cells[y*cr.Width+x].(cell.CharCell))
					}
				}
			})
			return ReplaceCells{UID: a.UID, X: a.X, Y: a.Y, Crate: snap}
		},
		dirty: box,
	}, true
}

func (e *Engine) planMerge(a MergeLayers) (plan, bool) {
	s := &e.state
	li, oi := s.index(a.UID), s.index(a.OntoUID)
	if li < 0 || oi < 0 || li == oi {
		return plan{}, false
	}
	src, onto := s.Layers[li], s.Layers[oi]
	if src.Locked() || onto.Locked() || src.Type() != onto.Type() {
		return plan{}, false
	}
	if min(src.Canvas().Width(), onto.Canvas().Width()) <= 0 || min(src.Canvas().Height(), onto.Canvas().Height()) <= 0 {
		return plan{}, false
	}
	return plan{
		apply: func() Action {
			below := s.uidBelow(li)
			merged := onto.Clone()
			canvas.MergeOnto(merged.MutableCanvas(), src.Canvas())
			s.Layers[oi] = merged
			s.removeAt(li)
			return UndoMergeLayers{InsertLayer: src, InsertOnTopOf: below, ReplaceLayer: onto}
		},
		dirty: fullBox,
	}, true
}

func (e *Engine) planUndoMerge(a UndoMergeLayers) (plan, bool) {
	s := &e.state
	if !installable(a.InsertLayer) || !installable(a.ReplaceLayer) || a.InsertLayer.Type() != a.ReplaceLayer.Type() {
		return plan{}, false
	}
	ins := a.InsertLayer.UID()
	ri := s.index(a.ReplaceLayer.UID())
	if ri < 0 || s.Layers[ri].Locked() || s.index(ins) >= 0 {
		return plan{}, false
	}
	if _, ok := s.anchorIndex(a.InsertOnTopOf); !ok {
		return plan{}, false
	}
	return plan{
		apply: func() Action {
			s.Layers[ri] = a.ReplaceLayer.Clone()
			anchor, _ := s.anchorIndex(a.InsertOnTopOf)
			s.insertAt(anchor+1, a.InsertLayer.Clone())
			return MergeLayers{UID: ins, OntoUID: a.ReplaceLayer.UID()}
		},
		dirty: fullBox,
	}, true
}

func (e *Engine) planConvert(a ConvertLayer) (plan, bool) {
	s := &e.state
	i := s.index(a.UID)
	if i < 0 || !a.Type.Valid() {
		return plan{}, false
	}
	old := s.Layers[i]
	if old.Locked() || old.Type() == a.Type {
		return plan{}, false
	}
	return plan{
		apply: func() Action {
			s.Layers[i] = old.WithCanvas(canvas.Convert(old.Canvas(), a.Type))
			return ReplaceLayer{Layer: old}
		},
		dirty: fullBox,
	}, true
}
