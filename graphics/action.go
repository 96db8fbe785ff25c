package graphics

import (
	"fmt"

	"github.com/lixenwraith/bpe/canvas"
	"github.com/lixenwraith/bpe/cell"
	"github.com/lixenwraith/bpe/layer"
	"github.com/lixenwraith/bpe/shape"
)

// Action is one mutation of the document; executing it yields its inverse
type Action interface {
	Tag() Tag
}

// Tag discriminates action variants; values are persisted
type Tag int

const (
	TagSetBackgroundBorder Tag = iota + 1
	TagSetBackgroundColor
	TagSetBackgroundBright
	TagSetBackgroundVisible
	TagSetBackgroundLocked
	TagCreateLayer
	TagReplaceLayer
	TagInsertLayer
	TagDeleteLayer
	TagSetLayerVisible
	TagSetLayerLocked
	TagMoveLayer
	TagMergeShape
	TagReplaceShape
	TagReplaceCells
	TagMergeLayers
	TagUndoMergeLayers
	TagConvertLayer
	TagSetLayerMasked
)

var tagNames = map[Tag]string{
	TagSetBackgroundBorder:  "SetBackgroundBorder",
	TagSetBackgroundColor:   "SetBackgroundColor",
	TagSetBackgroundBright:  "SetBackgroundBright",
	TagSetBackgroundVisible: "SetBackgroundVisible",
	TagSetBackgroundLocked:  "SetBackgroundLocked",
	TagCreateLayer:          "CreateLayer",
	TagReplaceLayer:         "ReplaceLayer",
	TagInsertLayer:          "InsertLayer",
	TagDeleteLayer:          "DeleteLayer",
	TagSetLayerVisible:      "SetLayerVisible",
	TagSetLayerLocked:       "SetLayerLocked",
	TagMoveLayer:            "MoveLayer",
	TagMergeShape:           "MergeShape",
	TagReplaceShape:         "ReplaceShape",
	TagReplaceCells:         "ReplaceCells",
	TagMergeLayers:          "MergeLayers",
	TagUndoMergeLayers:      "UndoMergeLayers",
	TagConvertLayer:         "ConvertLayer",
	TagSetLayerMasked:       "SetLayerMasked",
}

func (t Tag) String() string {
	if name, ok := tagNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Action(%d)", int(t))
}

type SetBackgroundBorder struct {
	Color cell.Color
}

type SetBackgroundColor struct {
	Color cell.Color
}

type SetBackgroundBright struct {
	Bright cell.Light
}

type SetBackgroundVisible struct {
	Visible bool
}

type SetBackgroundLocked struct {
	Locked bool
}

// CreateLayer adds an empty layer right above OnTopOf; layer.BackgroundUID puts it at the bottom
type CreateLayer struct {
	Type    canvas.Type
	UID     layer.UID
	OnTopOf layer.UID
}

// ReplaceLayer swaps the layer with the same UID for a copy of Layer
type ReplaceLayer struct {
	Layer *layer.CanvasLayer
}

// InsertLayer restores a copy of a previously removed layer above OnTopOf
type InsertLayer struct {
	Layer   *layer.CanvasLayer
	OnTopOf layer.UID
}

type DeleteLayer struct {
	UID layer.UID
}

type SetLayerVisible struct {
	UID     layer.UID
	Visible bool
}

type SetLayerLocked struct {
	UID    layer.UID
	Locked bool
}

type SetLayerMasked struct {
	UID    layer.UID
	Masked bool
}

// MoveLayer re-stacks the layer right above OnTopOf
type MoveLayer struct {
	UID     layer.UID
	OnTopOf layer.UID
}

// MergeShape paints a shape, letting transparent fields keep what is underneath
type MergeShape struct {
	UID   layer.UID
	Shape shape.Shape
}

// ReplaceShape paints a shape, overwriting cells including their transparency
type ReplaceShape struct {
	UID   layer.UID
	Shape shape.Shape
}

// ReplaceCells writes a char crate verbatim with its top-left at character (X, Y)
type ReplaceCells struct {
	UID   layer.UID
	X, Y  int
	Crate canvas.Crate
}

// MergeLayers folds layer UID into OntoUID and removes UID
type MergeLayers struct {
	UID     layer.UID
	OntoUID layer.UID
}

// UndoMergeLayers restores both layers of a merge
type UndoMergeLayers struct {
	InsertLayer   *layer.CanvasLayer
	InsertOnTopOf layer.UID
	ReplaceLayer  *layer.CanvasLayer
}

// ConvertLayer repaints a layer onto a canvas of another type
type ConvertLayer struct {
	UID  layer.UID
	Type canvas.Type
}

func (SetBackgroundBorder) Tag() Tag  { return TagSetBackgroundBorder }
func (SetBackgroundColor) Tag() Tag   { return TagSetBackgroundColor }
func (SetBackgroundBright) Tag() Tag  { return TagSetBackgroundBright }
func (SetBackgroundVisible) Tag() Tag { return TagSetBackgroundVisible }
func (SetBackgroundLocked) Tag() Tag  { return TagSetBackgroundLocked }
func (CreateLayer) Tag() Tag          { return TagCreateLayer }
func (ReplaceLayer) Tag() Tag         { return TagReplaceLayer }
func (InsertLayer) Tag() Tag          { return TagInsertLayer }
func (DeleteLayer) Tag() Tag          { return TagDeleteLayer }
func (SetLayerVisible) Tag() Tag      { return TagSetLayerVisible }
func (SetLayerLocked) Tag() Tag       { return TagSetLayerLocked }
func (SetLayerMasked) Tag() Tag       { return TagSetLayerMasked }
func (MoveLayer) Tag() Tag            { return TagMoveLayer }
func (MergeShape) Tag() Tag           { return TagMergeShape }
func (ReplaceShape) Tag() Tag         { return TagReplaceShape }
func (ReplaceCells) Tag() Tag         { return TagReplaceCells }
func (MergeLayers) Tag() Tag          { return TagMergeLayers }
func (UndoMergeLayers) Tag() Tag      { return TagUndoMergeLayers }
func (ConvertLayer) Tag() Tag         { return TagConvertLayer }
