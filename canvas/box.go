package canvas

// Box is an axis-aligned rectangle of cells
type Box struct {
	X, Y          int
	Width, Height int
}

// BoxFromCoords spans two inclusive corners in any order
func BoxFromCoords(sx, sy, ex, ey int) Box {
	return Box{
		X:      min(sx, ex),
		Y:      min(sy, ey),
		Width:  abs(ex-sx) + 1,
		Height: abs(ey-sy) + 1,
	}
}

// Right is the last column inside the box
func (b Box) Right() int {
	return b.X + b.Width - 1
}

// Bottom is the last row inside the box
func (b Box) Bottom() int {
	return b.Y + b.Height - 1
}

func (b Box) IsEmpty() bool {
	return b.Width <= 0 || b.Height <= 0
}

func (b Box) Contains(x, y int) bool {
	return x >= b.X && x <= b.Right() && y >= b.Y && y <= b.Bottom()
}

// Intersect returns the overlap of two boxes, empty when they are disjoint
func (b Box) Intersect(o Box) Box {
	x := max(b.X, o.X)
	y := max(b.Y, o.Y)
	r := min(b.Right(), o.Right())
	bt := min(b.Bottom(), o.Bottom())
	if r < x || bt < y {
		return Box{}
	}
	return Box{X: x, Y: y, Width: r - x + 1, Height: bt - y + 1}
}

// CharBox maps a drawing-space box to the character cells it touches
func CharBox(t Type, b Box) Box {
	if b.IsEmpty() {
		return Box{}
	}
	sx, sy := t.ToCharPos(b.X, b.Y)
	ex, ey := t.ToCharPos(b.Right(), b.Bottom())
	return BoxFromCoords(sx, sy, ex, ey)
}

// Bounds returns the character-space extent of a canvas
func Bounds(c Canvas) Box {
	return Box{Width: c.Width(), Height: c.Height()}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
