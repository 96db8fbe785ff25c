package canvas

import (
	"fmt"
	"strings"

	"github.com/lixenwraith/bpe/cell"
)

// Document size in character cells; fixed for every canvas of a picture
const (
	DocWidth  = 32
	DocHeight = 24
)

// Type selects the drawing resolution of a canvas relative to character cells
type Type int

const (
	TypeChar   Type = 1 // 1x1, stores char cells
	TypeHBlock Type = 2 // 1x2, two stacked sub-cells per char
	TypeVBlock Type = 3 // 2x1, two side-by-side sub-cells per char
	TypeQBlock Type = 4 // 2x2, four pixels sharing one attribute
)

var typeNames = map[Type]string{
	TypeChar:   "char",
	TypeHBlock: "hblock",
	TypeVBlock: "vblock",
	TypeQBlock: "qblock",
}

// Types lists every canvas type in id order
var Types = []Type{TypeChar, TypeHBlock, TypeVBlock, TypeQBlock}

func (t Type) Valid() bool {
	_, ok := typeNames[t]
	return ok
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("type(%d)", int(t))
}

// Scale returns how many drawing cells fit in one character cell horizontally and vertically
func (t Type) Scale() (sx, sy int) {
	switch t {
	case TypeHBlock:
		return 1, 2
	case TypeVBlock:
		return 2, 1
	case TypeQBlock:
		return 2, 2
	}
	return 1, 1
}

// ToCharPos maps a drawing coordinate to the character cell containing it
func (t Type) ToCharPos(x, y int) (int, int) {
	sx, sy := t.Scale()
	return floorDiv(x, sx), floorDiv(y, sy)
}

// CellKind returns the kind of drawing cell stored by canvases of this type
func (t Type) CellKind() cell.Kind {
	if t == TypeChar {
		return cell.KindChar
	}
	return cell.KindBlock
}

// Transparent returns the transparent drawing cell for this type
func (t Type) Transparent() cell.Cell {
	return cell.Transparent(t.CellKind())
}

// TypeFromID validates a persisted type id
func TypeFromID(id int) (Type, error) {
	t := Type(id)
	if !t.Valid() {
		return 0, fmt.Errorf("unknown canvas type %d", id)
	}
	return t, nil
}

// ParseType resolves a type name as used on the command line
func ParseType(s string) (Type, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for t, name := range typeNames {
		if name == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown canvas type %q", s)
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
