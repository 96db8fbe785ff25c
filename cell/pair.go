package cell

// HBlockPair packs the top and bottom sub-cells sharing one character position
type HBlockPair struct {
	Top    Color
	Bottom Color
	Bright Light
}

// TransparentHBlockPair contributes nothing when merged
var TransparentHBlockPair = HBlockPair{Top: ColorTransparent, Bottom: ColorTransparent, Bright: LightTransparent}

func (p HBlockPair) Merge(onto HBlockPair) HBlockPair {
	return HBlockPair{
		Top:    p.Top.Merge(onto.Top),
		Bottom: p.Bottom.Merge(onto.Bottom),
		Bright: p.Bright.Merge(onto.Bright),
	}
}

// CharCell renders the pair as a top-half glyph: ink on top, paper below
func (p HBlockPair) CharCell() CharCell {
	if p.Top.IsTransparent() && p.Bottom.IsTransparent() {
		return TransparentChar
	}
	return CharCell{
		Char:   CharBlockTop,
		Ink:    p.Top,
		Paper:  p.Bottom,
		Bright: p.Bright,
		Flash:  LightTransparent,
	}
}

// VBlockPair packs the left and right sub-cells sharing one character position
type VBlockPair struct {
	Left   Color
	Right  Color
	Bright Light
}

// TransparentVBlockPair contributes nothing when merged
var TransparentVBlockPair = VBlockPair{Left: ColorTransparent, Right: ColorTransparent, Bright: LightTransparent}

func (p VBlockPair) Merge(onto VBlockPair) VBlockPair {
	return VBlockPair{
		Left:   p.Left.Merge(onto.Left),
		Right:  p.Right.Merge(onto.Right),
		Bright: p.Bright.Merge(onto.Bright),
	}
}

// CharCell renders the pair as a left-half glyph: ink left, paper right
func (p VBlockPair) CharCell() CharCell {
	if p.Left.IsTransparent() && p.Right.IsTransparent() {
		return TransparentChar
	}
	return CharCell{
		Char:   CharBlockLeft,
		Ink:    p.Left,
		Paper:  p.Right,
		Bright: p.Bright,
		Flash:  LightTransparent,
	}
}
