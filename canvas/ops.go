package canvas

import (
	"slices"

	"github.com/lixenwraith/bpe/cell"
)

// Convert repaints every character cell of src onto a new canvas of type to
// Conversions to a coarser resolution lose whatever the glyph rules cannot express
func Convert(src Canvas, to Type) MutableCanvas {
	dst := New(to, src.Width(), src.Height())
	dst.Mutate(func(m Mutator) {
		for y := 0; y < src.Height(); y++ {
			for x := 0; x < src.Width(); x++ {
				m.ReplaceCharCell(x, y, src.CharCell(x, y))
			}
		}
	})
	if ms, ok := dst.(mutationSetter); ok {
		ms.setMutations(src.Mutations())
	}
	return dst
}

// MergeOnto lays src over onto across their common extent
// Half-block canvases merge packed pairs so both halves keep their own colors
func MergeOnto(onto MutableCanvas, src Canvas) bool {
	if onto.Type() != src.Type() {
		return false
	}
	w := min(onto.Width(), src.Width())
	h := min(onto.Height(), src.Height())

	switch o := onto.(type) {
	case *HBlockCanvas:
		s, ok := src.(*HBlockCanvas)
		if !ok {
			return false
		}
		o.MutatePairs(func(m HBlockMutator) {
			for y := 0; y < h; y++ {
				for x := 0; x < w; x++ {
					m.ReplacePair(x, y, s.Pair(x, y).Merge(o.Pair(x, y)))
				}
			}
		})
	case *VBlockCanvas:
		s, ok := src.(*VBlockCanvas)
		if !ok {
			return false
		}
		o.MutatePairs(func(m VBlockMutator) {
			for y := 0; y < h; y++ {
				for x := 0; x < w; x++ {
					m.ReplacePair(x, y, s.Pair(x, y).Merge(o.Pair(x, y)))
				}
			}
		})
	default:
		onto.Mutate(func(m Mutator) {
			for y := 0; y < h; y++ {
				for x := 0; x < w; x++ {
					m.ReplaceCharCell(x, y, src.CharCell(x, y).Merge(onto.CharCell(x, y)))
				}
			}
		})
	}
	return true
}

// Equal compares type, size and every character and drawing cell
func Equal(a, b Canvas) bool {
	if a.Type() != b.Type() || a.Width() != b.Width() || a.Height() != b.Height() {
		return false
	}
	if qa, ok := a.(*QBlockCanvas); ok {
		qb, ok := b.(*QBlockCanvas)
		return ok && slices.Equal(qa.pixels, qb.pixels) && slices.Equal(qa.attrs, qb.attrs)
	}
	for y := 0; y < a.DrawingHeight(); y++ {
		for x := 0; x < a.DrawingWidth(); x++ {
			if a.DrawingCell(x, y) != b.DrawingCell(x, y) {
				return false
			}
		}
	}
	for y := 0; y < a.Height(); y++ {
		for x := 0; x < a.Width(); x++ {
			if a.CharCell(x, y) != b.CharCell(x, y) {
				return false
			}
		}
	}
	return true
}

// Valid reports whether every stored cell of c would survive a save and reload
func Valid(c Canvas) bool {
	if q, ok := c.(*QBlockCanvas); ok {
		for _, a := range q.attrs {
			if !a.Valid() {
				return false
			}
		}
		return true
	}
	for y := 0; y < c.DrawingHeight(); y++ {
		for x := 0; x < c.DrawingWidth(); x++ {
			if !cell.Valid(c.DrawingCell(x, y)) {
				return false
			}
		}
	}
	return true
}
