package canvas

import (
	"fmt"

	"github.com/lixenwraith/bpe/bag"
	"github.com/lixenwraith/bpe/cell"
)

const (
	canvasVersion = 1
	crateVersion  = 1

	// maxSide bounds persisted sizes so a corrupt header cannot force a huge allocation
	maxSide = 1024
)

type canvasCodec struct {
	put func(p bag.Packer, c Canvas)
	get func(u bag.Unpacker, width, height int) MutableCanvas
}

var canvasCodecs = map[Type]canvasCodec{
	TypeChar:   {put: putCharPayload, get: getCharPayload},
	TypeHBlock: {put: putBlockPayload, get: getHBlockPayload},
	TypeVBlock: {put: putBlockPayload, get: getVBlockPayload},
	TypeQBlock: {put: putQBlockPayload, get: getQBlockPayload},
}

// PackCanvas writes type, character size and the resolution-specific cells
func PackCanvas(p bag.Packer, c Canvas) {
	p.PutStuff(canvasVersion, func(p bag.Packer) {
		p.PutInt(int(c.Type()))
		p.PutInt(c.Width())
		p.PutInt(c.Height())
		canvasCodecs[c.Type()].put(p, c)
	})
}

// UnpackCanvas reads a canvas written by PackCanvas
func UnpackCanvas(u bag.Unpacker) (MutableCanvas, error) {
	var out MutableCanvas
	u.GetStuff(func(version int) error {
		if err := bag.RequireVersion("canvas", version, canvasVersion); err != nil {
			return err
		}
		id := u.GetInt()
		width, height := u.GetInt(), u.GetInt()
		if u.Err() != nil {
			return nil
		}
		codec, ok := canvasCodecs[Type(id)]
		if !ok {
			return bag.UnknownType("canvas type", id)
		}
		if err := checkSize(width, height); err != nil {
			return err
		}
		out = codec.get(u, width, height)
		return nil
	})
	if err := u.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func checkSize(width, height int) error {
	if width < 0 || height < 0 || width > maxSide || height > maxSide {
		return fmt.Errorf("%w: size %dx%d", bag.ErrMalformed, width, height)
	}
	return nil
}

func putCharPayload(p bag.Packer, c Canvas) {
	for y := 0; y < c.Height(); y++ {
		for x := 0; x < c.Width(); x++ {
			cell.PutCharCell(p, c.CharCell(x, y))
		}
	}
}

func getCharPayload(u bag.Unpacker, width, height int) MutableCanvas {
	c := NewChar(width, height)
	for i := range c.cells {
		c.cells[i] = cell.GetCharCell(u)
	}
	return c
}

func putBlockPayload(p bag.Packer, c Canvas) {
	for y := 0; y < c.DrawingHeight(); y++ {
		for x := 0; x < c.DrawingWidth(); x++ {
			bc, _ := c.DrawingCell(x, y).(cell.BlockCell)
			cell.PutBlockCell(p, bc)
		}
	}
}

func getHBlockPayload(u bag.Unpacker, width, height int) MutableCanvas {
	c := NewHBlock(width, height)
	for i := range c.cells {
		c.cells[i] = cell.GetBlockCell(u)
	}
	return c
}

func getVBlockPayload(u bag.Unpacker, width, height int) MutableCanvas {
	c := NewVBlock(width, height)
	for i := range c.cells {
		c.cells[i] = cell.GetBlockCell(u)
	}
	return c
}

func putQBlockPayload(p bag.Packer, c Canvas) {
	q, ok := c.(*QBlockCanvas)
	if !ok {
		q = Convert(c, TypeQBlock).(*QBlockCanvas)
	}
	for _, px := range q.pixels {
		p.PutBool(px)
	}
	for _, a := range q.attrs {
		cell.PutBlockCell(p, a)
	}
}

func getQBlockPayload(u bag.Unpacker, width, height int) MutableCanvas {
	c := NewQBlock(width, height)
	for i := range c.pixels {
		c.pixels[i] = u.GetBool()
	}
	for i := range c.attrs {
		c.attrs[i] = cell.GetBlockCell(u)
	}
	return c
}

// PackCrate writes a crate with untagged cells of its kind
func PackCrate(p bag.Packer, c Crate) {
	p.PutStuff(crateVersion, func(p bag.Packer) {
		p.PutInt(int(c.Type))
		p.PutInt(c.Width)
		p.PutInt(c.Height)
		kind := c.CellKind()
		for i := 0; i < c.Width*c.Height; i++ {
			v := c.Type.Transparent()
			if i < len(c.Cells) && c.Cells[i] != nil && c.Cells[i].Kind() == kind {
				v = c.Cells[i]
			}
			switch v := v.(type) {
			case cell.CharCell:
				cell.PutCharCell(p, v)
			case cell.BlockCell:
				cell.PutBlockCell(p, v)
			}
		}
	})
}

// UnpackCrate reads a crate written by PackCrate
func UnpackCrate(u bag.Unpacker) (Crate, error) {
	var out Crate
	u.GetStuff(func(version int) error {
		if err := bag.RequireVersion("crate", version, crateVersion); err != nil {
			return err
		}
		id := u.GetInt()
		width, height := u.GetInt(), u.GetInt()
		if u.Err() != nil {
			return nil
		}
		t, err := TypeFromID(id)
		if err != nil {
			return bag.UnknownType("crate type", id)
		}
		if err := checkSize(width, height); err != nil {
			return err
		}
		out = NewCrate(t, width, height)
		for i := range out.Cells {
			if t.CellKind() == cell.KindChar {
				out.Cells[i] = cell.GetCharCell(u)
			} else {
				out.Cells[i] = cell.GetBlockCell(u)
			}
		}
		return nil
	})
	if err := u.Err(); err != nil {
		return Crate{}, err
	}
	return out, nil
}
