package shape

import (
	"fmt"

	"github.com/lixenwraith/bpe/bag"
	"github.com/lixenwraith/bpe/canvas"
	"github.com/lixenwraith/bpe/cell"
)

const (
	shapeVersion = 1
	maxPoints    = 1 << 16
)

// PackShape writes the variant tag followed by its payload
func PackShape(p bag.Packer, s Shape) {
	p.PutStuff(shapeVersion, func(p bag.Packer) {
		p.PutInt(int(s.tag()))
		switch v := s.(type) {
		case Point:
			p.PutInt(v.X)
			p.PutInt(v.Y)
			cell.PackCell(p, v.Cell)
		case Line:
			putCorners(p, v.SX, v.SY, v.EX, v.EY, v.Cell)
		case FillBox:
			putCorners(p, v.SX, v.SY, v.EX, v.EY, v.Cell)
		case StrokeBox:
			putCorners(p, v.SX, v.SY, v.EX, v.EY, v.Cell)
		case FillEllipse:
			putCorners(p, v.SX, v.SY, v.EX, v.EY, v.Cell)
		case StrokeEllipse:
			putCorners(p, v.SX, v.SY, v.EX, v.EY, v.Cell)
		case LinkedPoints:
			p.PutInt(len(v.Points))
			for _, pt := range v.Points {
				p.PutInt(pt.X)
				p.PutInt(pt.Y)
			}
			cell.PackCell(p, v.Cell)
		case Cells:
			p.PutInt(v.X)
			p.PutInt(v.Y)
			canvas.PackCrate(p, v.Crate)
		}
	})
}

func putCorners(p bag.Packer, sx, sy, ex, ey int, c cell.Cell) {
	p.PutInt(sx)
	p.PutInt(sy)
	p.PutInt(ex)
	p.PutInt(ey)
	cell.PackCell(p, c)
}

type corners struct {
	sx, sy, ex, ey int
	paint          cell.Cell
}

func getCorners(u bag.Unpacker) (corners, error) {
	c := corners{sx: u.GetInt(), sy: u.GetInt(), ex: u.GetInt(), ey: u.GetInt()}
	v, err := cell.UnpackCell(u)
	c.paint = v
	return c, err
}

var shapeDecoders = map[Tag]func(u bag.Unpacker) (Shape, error){
	TagPoint: func(u bag.Unpacker) (Shape, error) {
		x, y := u.GetInt(), u.GetInt()
		c, err := cell.UnpackCell(u)
		return Point{X: x, Y: y, Cell: c}, err
	},
	TagLine: func(u bag.Unpacker) (Shape, error) {
		c, err := getCorners(u)
		return Line{SX: c.sx, SY: c.sy, EX: c.ex, EY: c.ey, Cell: c.paint}, err
	},
	TagFillBox: func(u bag.Unpacker) (Shape, error) {
		c, err := getCorners(u)
		return FillBox{SX: c.sx, SY: c.sy, EX: c.ex, EY: c.ey, Cell: c.paint}, err
	},
	TagStrokeBox: func(u bag.Unpacker) (Shape, error) {
		c, err := getCorners(u)
		return StrokeBox{SX: c.sx, SY: c.sy, EX: c.ex, EY: c.ey, Cell: c.paint}, err
	},
	TagFillEllipse: func(u bag.Unpacker) (Shape, error) {
		c, err := getCorners(u)
		return FillEllipse{SX: c.sx, SY: c.sy, EX: c.ex, EY: c.ey, Cell: c.paint}, err
	},
	TagStrokeEllipse: func(u bag.Unpacker) (Shape, error) {
		c, err := getCorners(u)
		return StrokeEllipse{SX: c.sx, SY: c.sy, EX: c.ex, EY: c.ey, Cell: c.paint}, err
	},
	TagLinkedPoints: func(u bag.Unpacker) (Shape, error) {
		n := u.GetInt()
		if n < 0 || n > maxPoints {
			return nil, fmt.Errorf("%w: %d linked points", bag.ErrMalformed, n)
		}
		points := make([]Pos, n)
		for i := range points {
			points[i] = Pos{X: u.GetInt(), Y: u.GetInt()}
		}
		c, err := cell.UnpackCell(u)
		return LinkedPoints{Points: points, Cell: c}, err
	},
	TagCells: func(u bag.Unpacker) (Shape, error) {
		x, y := u.GetInt(), u.GetInt()
		cr, err := canvas.UnpackCrate(u)
		return Cells{X: x, Y: y, Crate: cr}, err
	},
}

// UnpackShape reads a shape written by PackShape
func UnpackShape(u bag.Unpacker) (Shape, error) {
	var s Shape
	u.GetStuff(func(version int) error {
		if err := bag.RequireVersion("shape", version, shapeVersion); err != nil {
			return err
		}
		tag := Tag(u.GetInt())
		if u.Err() != nil {
			return nil
		}
		decode, ok := shapeDecoders[tag]
		if !ok {
			return bag.UnknownType("shape", int(tag))
		}
		v, err := decode(u)
		if err != nil {
			return err
		}
		s = v
		return nil
	})
	if err := u.Err(); err != nil {
		return nil, err
	}
	return s, nil
}
