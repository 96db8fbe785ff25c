package shape

import (
	"math"

	"github.com/lixenwraith/bpe/canvas"
)

// rasterLine steps along the major axis and rounds the minor offset half away from zero
// Steps before start are skipped so joined segments do not repeat their shared point
func rasterLine(sx, sy, ex, ey, start int, plot func(x, y int)) {
	dx, dy := ex-sx, ey-sy
	adx, ady := abs(dx), abs(dy)

	switch {
	case adx == 0 && ady == 0:
		if start == 0 {
			plot(sx, sy)
		}
	case adx > ady:
		mx := sign(dx)
		my := float64(dy) / float64(adx)
		for i := start; i <= adx; i++ {
			plot(sx+i*mx, sy+int(math.Round(float64(i)*my)))
		}
	default:
		my := sign(dy)
		mx := float64(dx) / float64(ady)
		for i := start; i <= ady; i++ {
			plot(sx+int(math.Round(float64(i)*mx)), sy+i*my)
		}
	}
}

// ellipse describes the ellipse inscribed in a box
// Radii are shrunk by an eighth of a cell so edge cells are not overly fat
type ellipse struct {
	midX, midY float64
	radX2      float64
	radY2      float64
	compare    float64
}

func newEllipse(b canvas.Box) ellipse {
	radX := float64(b.Width)/2 - 0.125
	radY := float64(b.Height)/2 - 0.125
	e := ellipse{
		midX:  float64(b.X+b.Right()) / 2,
		midY:  float64(b.Y+b.Bottom()) / 2,
		radX2: radX * radX,
		radY2: radY * radY,
	}
	e.compare = e.radX2 * e.radY2
	return e
}

func fillEllipse(b canvas.Box, plot func(x, y int)) {
	e := newEllipse(b)
	for y := b.Y; y <= b.Bottom(); y++ {
		oy := float64(y) - e.midY
		for x := b.X; x <= b.Right(); x++ {
			ox := float64(x) - e.midX
			if ox*ox*e.radY2+oy*oy*e.radX2 <= e.compare {
				plot(x, y)
			}
		}
	}
}

// strokeEllipse plots the horizontal extremes of each row, then fills the gaps
// near the poles with the vertical extremes of each column
func strokeEllipse(b canvas.Box, plot func(x, y int)) {
	e := newEllipse(b)
	sx, sy, ex, ey := b.X, b.Y, b.Right(), b.Bottom()
	drawn := make(map[Pos]bool)

	for y := sy; y <= ey; y++ {
		oy := float64(y) - e.midY
		ox := math.Sqrt(max(0, (e.compare-oy*oy*e.radX2)/e.radY2))
		x1 := int(e.midX + ox)
		x2 := ex - x1 + sx

		plot(x1, y)
		drawn[Pos{x1, y}] = true
		if x2 != x1 {
			plot(x2, y)
			drawn[Pos{x2, y}] = true
		}
	}

	for x := sx; x <= ex; x++ {
		ox := float64(x) - e.midX
		oy := math.Sqrt(max(0, (e.compare-ox*ox*e.radY2)/e.radX2))
		y1 := int(e.midY + oy)
		y2 := ey - y1 + sy

		if !drawn[Pos{x, y1}] {
			plot(x, y1)
		}
		if y2 != y1 && !drawn[Pos{x, y2}] {
			plot(x, y2)
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
