package cell

import "fmt"

// Kind discriminates the cell variants; values are persisted
type Kind int

const (
	KindChar  Kind = 1
	KindBlock Kind = 2
)

func (k Kind) String() string {
	switch k {
	case KindChar:
		return "char"
	case KindBlock:
		return "block"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Cell is either a CharCell or a BlockCell
type Cell interface {
	Kind() Kind
	IsTransparent() bool
	isCell()
}

// CharCell is one character position with its attributes
type CharCell struct {
	Char   Char
	Ink    Color
	Paper  Color
	Bright Light
	Flash  Light
}

// TransparentChar contributes nothing when merged
var TransparentChar = CharCell{
	Char:   CharTransparent,
	Ink:    ColorTransparent,
	Paper:  ColorTransparent,
	Bright: LightTransparent,
	Flash:  LightTransparent,
}

func (CharCell) Kind() Kind { return KindChar }
func (CharCell) isCell()    {}

func (c CharCell) IsTransparent() bool {
	return c == TransparentChar
}

// Merge lays c over onto field by field; two transparent characters collapse to TransparentChar
func (c CharCell) Merge(onto CharCell) CharCell {
	if c.Char == CharTransparent && onto.Char == CharTransparent {
		return TransparentChar
	}
	return CharCell{
		Char:   c.Char.Merge(onto.Char),
		Ink:    c.Ink.Merge(onto.Ink),
		Paper:  c.Paper.Merge(onto.Paper),
		Bright: c.Bright.Merge(onto.Bright),
		Flash:  c.Flash.Merge(onto.Flash),
	}
}

// Valid reports whether every field holds a value the codec accepts
func (c CharCell) Valid() bool {
	return c.Char >= CharTransparent && c.Ink.Valid() && c.Paper.Valid() && c.Bright.Valid() && c.Flash.Valid()
}

func (c CharCell) String() string {
	return fmt.Sprintf("char{%#x ink=%s paper=%s bright=%s flash=%s}", int(c.Char), c.Ink, c.Paper, c.Bright, c.Flash)
}

// BlockCell is one sub-cell pixel of a block canvas
type BlockCell struct {
	Color  Color
	Bright Light
}

// TransparentBlock contributes nothing when merged
var TransparentBlock = BlockCell{Color: ColorTransparent, Bright: LightTransparent}

func (BlockCell) Kind() Kind { return KindBlock }
func (BlockCell) isCell()    {}

func (c BlockCell) IsTransparent() bool {
	return c == TransparentBlock
}

// Merge lays c over onto field by field
func (c BlockCell) Merge(onto BlockCell) BlockCell {
	return BlockCell{
		Color:  c.Color.Merge(onto.Color),
		Bright: c.Bright.Merge(onto.Bright),
	}
}

func (c BlockCell) Valid() bool {
	return c.Color.Valid() && c.Bright.Valid()
}

func (c BlockCell) String() string {
	return fmt.Sprintf("block{%s bright=%s}", c.Color, c.Bright)
}

// Transparent returns the transparent sentinel of the given kind
func Transparent(k Kind) Cell {
	if k == KindBlock {
		return TransparentBlock
	}
	return TransparentChar
}

// Valid reports whether c is a CharCell or BlockCell value with valid fields
// Pointers and nil are rejected
func Valid(c Cell) bool {
	switch v := c.(type) {
	case CharCell:
		return v.Valid()
	case BlockCell:
		return v.Valid()
	}
	return false
}
