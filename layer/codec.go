package layer

import (
	"fmt"

	"github.com/lixenwraith/bpe/bag"
	"github.com/lixenwraith/bpe/canvas"
	"github.com/lixenwraith/bpe/cell"
)

const (
	backgroundVersion = 1
	// v2 appends the mask flag
	canvasLayerVersion = 2
)

func PackBackground(p bag.Packer, b Background) {
	p.PutStuff(backgroundVersion, func(p bag.Packer) {
		p.PutBool(b.Visible)
		p.PutBool(b.Locked)
		p.PutInt(int(b.Border))
		p.PutInt(int(b.Color))
		p.PutInt(int(b.Bright))
	})
}

func UnpackBackground(u bag.Unpacker) (Background, error) {
	var b Background
	u.GetStuff(func(version int) error {
		if err := bag.RequireVersion("background", version, backgroundVersion); err != nil {
			return err
		}
		b.Visible = u.GetBool()
		b.Locked = u.GetBool()
		b.Border = cell.GetColor(u)
		b.Color = cell.GetColor(u)
		b.Bright = cell.GetLight(u)
		return nil
	})
	return b, u.Err()
}

func PackCanvasLayer(p bag.Packer, l *CanvasLayer) {
	p.PutStuff(canvasLayerVersion, func(p bag.Packer) {
		p.PutString(string(l.uid))
		p.PutBool(l.visible)
		p.PutBool(l.locked)
		canvas.PackCanvas(p, l.canvas)
		p.PutBool(l.masked)
	})
}

func UnpackCanvasLayer(u bag.Unpacker) (*CanvasLayer, error) {
	var l *CanvasLayer
	u.GetStuff(func(version int) error {
		if err := bag.RequireVersion("canvas layer", version, canvasLayerVersion); err != nil {
			return err
		}
		uid := UID(u.GetString())
		visible := u.GetBool()
		locked := u.GetBool()
		c, err := canvas.UnpackCanvas(u)
		if err != nil {
			return err
		}
		masked := false
		if version >= 2 {
			masked = u.GetBool()
		}
		if u.Err() != nil {
			return nil
		}
		if uid == BackgroundUID {
			return fmt.Errorf("%w: canvas layer with background uid", bag.ErrMalformed)
		}
		l = New(uid, c)
		l.visible = visible
		l.locked = locked
		l.SetMasked(masked)
		return nil
	})
	if err := u.Err(); err != nil {
		return nil, err
	}
	return l, nil
}
