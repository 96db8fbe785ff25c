package cell

import (
	"fmt"

	"github.com/lixenwraith/bpe/bag"
)

const cellVersion = 1

// PackCell writes a tagged cell of either kind
func PackCell(p bag.Packer, c Cell) {
	p.PutStuff(cellVersion, func(p bag.Packer) {
		p.PutInt(int(c.Kind()))
		switch v := c.(type) {
		case CharCell:
			PutCharCell(p, v)
		case BlockCell:
			PutBlockCell(p, v)
		}
	})
}

// UnpackCell reads a cell written by PackCell
func UnpackCell(u bag.Unpacker) (Cell, error) {
	var c Cell
	u.GetStuff(func(version int) error {
		if err := bag.RequireVersion("cell", version, cellVersion); err != nil {
			return err
		}
		switch k := Kind(u.GetInt()); k {
		case KindChar:
			c = GetCharCell(u)
		case KindBlock:
			c = GetBlockCell(u)
		default:
			if u.Err() == nil {
				return bag.UnknownType("cell kind", int(k))
			}
		}
		return nil
	})
	if err := u.Err(); err != nil {
		return nil, err
	}
	return c, nil
}

// PutCharCell writes the untagged fields of a char cell
func PutCharCell(p bag.Packer, c CharCell) {
	p.PutInt(int(c.Char))
	p.PutInt(int(c.Ink))
	p.PutInt(int(c.Paper))
	p.PutInt(int(c.Bright))
	p.PutInt(int(c.Flash))
}

// GetCharCell reads fields written by PutCharCell
func GetCharCell(u bag.Unpacker) CharCell {
	ch := Char(u.GetInt())
	if ch < CharTransparent {
		u.Fail(fmt.Errorf("%w: char %d", bag.ErrMalformed, int(ch)))
	}
	return CharCell{
		Char:   ch,
		Ink:    GetColor(u),
		Paper:  GetColor(u),
		Bright: GetLight(u),
		Flash:  GetLight(u),
	}
}

// PutBlockCell writes the untagged fields of a block cell
func PutBlockCell(p bag.Packer, c BlockCell) {
	p.PutInt(int(c.Color))
	p.PutInt(int(c.Bright))
}

// GetBlockCell reads fields written by PutBlockCell
func GetBlockCell(u bag.Unpacker) BlockCell {
	return BlockCell{
		Color:  GetColor(u),
		Bright: GetLight(u),
	}
}

// GetColor reads a color and rejects values outside the palette
func GetColor(u bag.Unpacker) Color {
	c := Color(u.GetInt())
	if !c.Valid() {
		u.Fail(fmt.Errorf("%w: color %d", bag.ErrMalformed, int(c)))
		return ColorTransparent
	}
	return c
}

// GetLight reads a light and rejects unknown values
func GetLight(u bag.Unpacker) Light {
	l := Light(u.GetInt())
	if !l.Valid() {
		u.Fail(fmt.Errorf("%w: light %d", bag.ErrMalformed, int(l)))
		return LightTransparent
	}
	return l
}
