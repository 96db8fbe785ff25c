package graphics

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/lixenwraith/bpe/bag"
	"github.com/lixenwraith/bpe/canvas"
	"github.com/lixenwraith/bpe/cell"
	"github.com/lixenwraith/bpe/layer"
	"github.com/lixenwraith/bpe/shape"
)

const (
	stateVersion  = 1
	actionVersion = 1
	maxLayers     = 4096
)

// Pack writes the background followed by every canvas layer bottom to top
func (e *Engine) Pack(p bag.Packer) {
	PackState(p, e.state)
}

// Unpack replaces the document with one read from u
// On failure the current document is left untouched
func (e *Engine) Unpack(u bag.Unpacker) error {
	next, err := UnpackState(u)
	if err != nil {
		e.log.Warn("document load failed", zap.Error(err))
		return err
	}
	e.install(next)
	return nil
}

// MarshalText encodes the document in the bag text form
func (e *Engine) MarshalText() ([]byte, error) {
	w := bag.NewWriter()
	e.Pack(w)
	return []byte(w.String()), nil
}

// UnmarshalText loads a document produced by MarshalText
// Trailing data fails the load before anything is replaced
func (e *Engine) UnmarshalText(text []byte) error {
	r, err := bag.ParseString(string(text))
	if err != nil {
		e.log.Warn("document load failed", zap.Error(err))
		return err
	}
	next, err := UnpackState(r)
	if err == nil {
		err = r.Finish()
	}
	if err != nil {
		e.log.Warn("document load failed", zap.Error(err))
		return err
	}
	e.install(next)
	return nil
}

func (e *Engine) install(s State) {
	e.state = s
	e.renderer.Render(&e.state, fullBox)
	e.log.Debug("document loaded", zap.Int("layers", len(s.Layers)))
}

func PackState(p bag.Packer, s State) {
	p.PutStuff(stateVersion, func(p bag.Packer) {
		layer.PackBackground(p, s.Background)
		p.PutInt(len(s.Layers))
		for _, l := range s.Layers {
			layer.PackCanvasLayer(p, l)
		}
	})
}

// UnpackState reads a document and checks that it can be installed as is
func UnpackState(u bag.Unpacker) (State, error) {
	var s State
	u.GetStuff(func(version int) error {
		if err := bag.RequireVersion("document", version, stateVersion); err != nil {
			return err
		}
		bg, err := layer.UnpackBackground(u)
		if err != nil {
			return err
		}
		n := u.GetInt()
		if u.Err() != nil {
			return nil
		}
		if n < 0 || n > maxLayers {
			return fmt.Errorf("%w: %d layers", bag.ErrMalformed, n)
		}
		layers := make([]*layer.CanvasLayer, 0, n)
		seen := make(map[layer.UID]bool, n)
		for range n {
			l, err := layer.UnpackCanvasLayer(u)
			if err != nil {
				return err
			}
			if seen[l.UID()] {
				return fmt.Errorf("%w: duplicate layer %q", bag.ErrMalformed, l.UID())
			}
			if c := l.Canvas(); c.Width() != canvas.DocWidth || c.Height() != canvas.DocHeight {
				return fmt.Errorf("%w: layer %q is %dx%d", bag.ErrMalformed, l.UID(), c.Width(), c.Height())
			}
			seen[l.UID()] = true
			layers = append(layers, l)
		}
		s = State{Background: bg, Layers: layers}
		return nil
	})
	if err := u.Err(); err != nil {
		return State{}, err
	}
	return s, nil
}

// PackAction writes the action tag followed by its fields
func PackAction(p bag.Packer, a Action) {
	p.PutStuff(actionVersion, func(p bag.Packer) {
		p.PutInt(int(a.Tag()))
		switch a := a.(type) {
		case SetBackgroundBorder:
			p.PutInt(int(a.Color))
		case SetBackgroundColor:
			p.PutInt(int(a.Color))
		case SetBackgroundBright:
			p.PutInt(int(a.Bright))
		case SetBackgroundVisible:
			p.PutBool(a.Visible)
		case SetBackgroundLocked:
			p.PutBool(a.Locked)
		case CreateLayer:
			p.PutInt(int(a.Type))
			p.PutString(string(a.UID))
			p.PutString(string(a.OnTopOf))
		case ReplaceLayer:
			putLayer(p, a.Layer)
		case InsertLayer:
			putLayer(p, a.Layer)
			p.PutString(string(a.OnTopOf))
		case DeleteLayer:
			p.PutString(string(a.UID))
		case SetLayerVisible:
			p.PutString(string(a.UID))
			p.PutBool(a.Visible)
		case SetLayerLocked:
			p.PutString(string(a.UID))
			p.PutBool(a.Locked)
		case SetLayerMasked:
			p.PutString(string(a.UID))
			p.PutBool(a.Masked)
		case MoveLayer:
			p.PutString(string(a.UID))
			p.PutString(string(a.OnTopOf))
		case MergeShape:
			p.PutString(string(a.UID))
			shape.PackShape(p, a.Shape)
		case ReplaceShape:
			p.PutString(string(a.UID))
			shape.PackShape(p, a.Shape)
		case ReplaceCells:
			p.PutString(string(a.UID))
			p.PutInt(a.X)
			p.PutInt(a.Y)
			canvas.PackCrate(p, a.Crate)
		case MergeLayers:
			p.PutString(string(a.UID))
			p.PutString(string(a.OntoUID))
		case UndoMergeLayers:
			putLayer(p, a.InsertLayer)
			p.PutString(string(a.InsertOnTopOf))
			putLayer(p, a.ReplaceLayer)
		case ConvertLayer:
			p.PutString(string(a.UID))
			p.PutInt(int(a.Type))
		}
	})
}

func putLayer(p bag.Packer, l *layer.CanvasLayer) {
	if l == nil {
		p.PutNull()
		return
	}
	layer.PackCanvasLayer(p, l)
}

func getLayer(u bag.Unpacker) (*layer.CanvasLayer, error) {
	if u.GetNull() {
		return nil, u.Err()
	}
	return layer.UnpackCanvasLayer(u)
}

func getUID(u bag.Unpacker) layer.UID {
	return layer.UID(u.GetString())
}

func getType(u bag.Unpacker) canvas.Type {
	id := u.GetInt()
	if u.Err() != nil {
		return 0
	}
	t := canvas.Type(id)
	if !t.Valid() {
		u.Fail(bag.UnknownType("canvas type", id))
		return 0
	}
	return t
}

var actionDecoders = map[Tag]func(u bag.Unpacker) (Action, error){
	TagSetBackgroundBorder: func(u bag.Unpacker) (Action, error) {
		return SetBackgroundBorder{Color: cell.GetColor(u)}, nil
	},
	TagSetBackgroundColor: func(u bag.Unpacker) (Action, error) {
		return SetBackgroundColor{Color: cell.GetColor(u)}, nil
	},
	TagSetBackgroundBright: func(u bag.Unpacker) (Action, error) {
		return SetBackgroundBright{Bright: cell.GetLight(u)}, nil
	},
	TagSetBackgroundVisible: func(u bag.Unpacker) (Action, error) {
		return SetBackgroundVisible{Visible: u.GetBool()}, nil
	},
	TagSetBackgroundLocked: func(u bag.Unpacker) (Action, error) {
		return SetBackgroundLocked{Locked: u.GetBool()}, nil
	},
	TagCreateLayer: func(u bag.Unpacker) (Action, error) {
		t := getType(u)
		return CreateLayer{Type: t, UID: getUID(u), OnTopOf: getUID(u)}, nil
	},
	TagReplaceLayer: func(u bag.Unpacker) (Action, error) {
		l, err := getLayer(u)
		return ReplaceLayer{Layer: l}, err
	},
	TagInsertLayer: func(u bag.Unpacker) (Action, error) {
		l, err := getLayer(u)
		if err != nil {
			return nil, err
		}
		return InsertLayer{Layer: l, OnTopOf: getUID(u)}, nil
	},
	TagDeleteLayer: func(u bag.Unpacker) (Action, error) {
		return DeleteLayer{UID: getUID(u)}, nil
	},
	TagSetLayerVisible: func(u bag.Unpacker) (Action, error) {
		uid := getUID(u)
		return SetLayerVisible{UID: uid, Visible: u.GetBool()}, nil
	},
	TagSetLayerLocked: func(u bag.Unpacker) (Action, error) {
		uid := getUID(u)
		return SetLayerLocked{UID: uid, Locked: u.GetBool()}, nil
	},
	TagSetLayerMasked: func(u bag.Unpacker) (Action, error) {
		uid := getUID(u)
		return SetLayerMasked{UID: uid, Masked: u.GetBool()}, nil
	},
	TagMoveLayer: func(u bag.Unpacker) (Action, error) {
		uid := getUID(u)
		return MoveLayer{UID: uid, OnTopOf: getUID(u)}, nil
	},
	TagMergeShape: func(u bag.Unpacker) (Action, error) {
		uid := getUID(u)
		s, err := shape.UnpackShape(u)
		return MergeShape{UID: uid, Shape: s}, err
	},
	TagReplaceShape: func(u bag.Unpacker) (Action, error) {
		uid := getUID(u)
		s, err := shape.UnpackShape(u)
		return ReplaceShape{UID: uid, Shape: s}, err
	},
	TagReplaceCells: func(u bag.Unpacker) (Action, error) {
		uid := getUID(u)
		x, y := u.GetInt(), u.GetInt()
		cr, err := canvas.UnpackCrate(u)
		return ReplaceCells{UID: uid, X: x, Y: y, Crate: cr}, err
	},
	TagMergeLayers: func(u bag.Unpacker) (Action, error) {
		uid := getUID(u)
		return MergeLayers{UID: uid, OntoUID: getUID(u)}, nil
	},
	TagUndoMergeLayers: func(u bag.Unpacker) (Action, error) {
		ins, err := getLayer(u)
		if err != nil {
			return nil, err
		}
		anchor := getUID(u)
		repl, err := getLayer(u)
		return UndoMergeLayers{InsertLayer: ins, InsertOnTopOf: anchor, ReplaceLayer: repl}, err
	},
	TagConvertLayer: func(u bag.Unpacker) (Action, error) {
		uid := getUID(u)
		return ConvertLayer{UID: uid, Type: getType(u)}, nil
	},
}

// UnpackAction reads an action written by PackAction
func UnpackAction(u bag.Unpacker) (Action, error) {
	var a Action
	u.GetStuff(func(version int) error {
		if err := bag.RequireVersion("action", version, actionVersion); err != nil {
			return err
		}
		tag := Tag(u.GetInt())
		if u.Err() != nil {
			return nil
		}
		decode, ok := actionDecoders[tag]
		if !ok {
			return bag.UnknownType("action", int(tag))
		}
		v, err := decode(u)
		if err != nil {
			return err
		}
		a = v
		return nil
	})
	if err := u.Err(); err != nil {
		return nil, err
	}
	return a, nil
}
