package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"go.uber.org/zap"

	"github.com/lixenwraith/bpe/canvas"
	"github.com/lixenwraith/bpe/cell"
	"github.com/lixenwraith/bpe/config"
	"github.com/lixenwraith/bpe/export/bitmap"
	"github.com/lixenwraith/bpe/export/tap"
	"github.com/lixenwraith/bpe/export/tape"
	"github.com/lixenwraith/bpe/graphics"
	"github.com/lixenwraith/bpe/layer"
	"github.com/lixenwraith/bpe/shape"
	"github.com/lixenwraith/bpe/uid"
	"github.com/lixenwraith/bpe/view"
)

var errUsage = errors.New("usage: bpe [-config file] [-debug] demo|info|export|view [flags]")

// app carries what every subcommand needs
type app struct {
	cfg    *config.Config
	log    *zap.Logger
	stdout io.Writer
}

func (a *app) load(path string) (*graphics.Engine, error) {
	if path == "" {
		return nil, fmt.Errorf("missing -i")
	}
	text, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	e := graphics.New(graphics.WithLogger(a.log))
	if err := e.UnmarshalText(text); err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	a.log.Info("document loaded", zap.String("path", path), zap.Int("layers", len(e.Layers())))
	return e, nil
}

func (a *app) demo(args []string) error {
	fs := flag.NewFlagSet("demo", flag.ContinueOnError)
	out := fs.String("o", "", "output document")
	useUUID := fs.Bool("uuid", false, "name layers with random UUIDs")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *out == "" {
		return fmt.Errorf("missing -o")
	}

	var ids uid.Provider = uid.NewSequence("layer-")
	if *useUUID {
		ids = uid.UUID{}
	}
	e := graphics.New(graphics.WithLogger(a.log))
	history, err := buildDemo(e, ids)
	if err != nil {
		return err
	}

	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	if err := os.WriteFile(*out, text, 0644); err != nil {
		return err
	}
	a.log.Info("demo written", zap.String("path", *out), zap.Int("actions", len(history)))
	return nil
}

// buildDemo paints a small landscape and returns the undo history
func buildDemo(e *graphics.Engine, ids uid.Provider) ([]graphics.Action, error) {
	taken := func(id layer.UID) bool {
		_, ok := e.Layer(id)
		return ok
	}
	sky := uid.Unique(ids, taken)
	ground := uid.Unique(ids, func(id layer.UID) bool { return id == sky || taken(id) })
	title := uid.Unique(ids, func(id layer.UID) bool { return id == sky || id == ground || taken(id) })

	actions := []graphics.Action{
		graphics.SetBackgroundBorder{Color: cell.ColorBlue},
		graphics.SetBackgroundColor{Color: cell.ColorBlue},
		graphics.CreateLayer{Type: canvas.TypeQBlock, UID: sky, OnTopOf: layer.BackgroundUID},
		graphics.MergeShape{UID: sky, Shape: shape.FillEllipse{SX: 44, SY: 4, EX: 55, EY: 15,
			Cell: cell.BlockCell{Color: cell.ColorYellow, Bright: cell.LightOn}}},
		graphics.CreateLayer{Type: canvas.TypeHBlock, UID: ground, OnTopOf: sky},
		graphics.MergeShape{UID: ground, Shape: shape.FillBox{SX: 0, SY: 36, EX: 31, EY: 47,
			Cell: cell.BlockCell{Color: cell.ColorGreen, Bright: cell.LightOff}}},
		graphics.MergeShape{UID: ground, Shape: shape.Line{SX: 0, SY: 35, EX: 31, EY: 30,
			Cell: cell.BlockCell{Color: cell.ColorGreen, Bright: cell.LightOn}}},
		graphics.CreateLayer{Type: canvas.TypeChar, UID: title, OnTopOf: ground},
		graphics.MergeShape{UID: title, Shape: textShape(2, 1, "BLOCK PICTURE",
			cell.CharCell{Ink: cell.ColorWhite, Paper: cell.ColorTransparent, Bright: cell.LightOn, Flash: cell.LightTransparent})},
	}

	history := make([]graphics.Action, 0, len(actions))
	for _, act := range actions {
		inv, ok := e.Execute(act)
		if !ok {
			return nil, fmt.Errorf("demo: %s had no effect", act.Tag())
		}
		history = append(history, inv)
	}
	return history, nil
}

// textShape stamps a string of characters sharing the attributes of style
func textShape(x, y int, text string, style cell.CharCell) shape.Shape {
	cr := canvas.NewCrate(canvas.TypeChar, len(text), 1)
	for i := 0; i < len(text); i++ {
		c := style
		c.Char = cell.Char(text[i])
		cr.Cells[i] = c
	}
	return shape.Cells{X: x, Y: y, Crate: cr}
}

func (a *app) info(args []string) error {
	fs := flag.NewFlagSet("info", flag.ContinueOnError)
	in := fs.String("i", "", "input document")
	if err := fs.Parse(args); err != nil {
		return err
	}
	e, err := a.load(*in)
	if err != nil {
		return err
	}
	describe(a.stdout, e)
	return nil
}

// describe lists the background and the layers top to bottom
func describe(w io.Writer, e *graphics.Engine) {
	bg := e.Background()
	fmt.Fprintf(w, "background: color=%s border=%s bright=%s visible=%t locked=%t\n",
		bg.Color, bg.Border, bg.Bright, bg.Visible, bg.Locked)

	layers := e.Layers()
	fmt.Fprintf(w, "layers: %d\n", len(layers))
	for i := len(layers) - 1; i >= 0; i-- {
		l := layers[i]
		opaque := 0
		for y := 0; y < canvas.DocHeight; y++ {
			for x := 0; x < canvas.DocWidth; x++ {
				if l.IsOpaque(x, y) {
					opaque++
				}
			}
		}
		fmt.Fprintf(w, "  %-6s %s visible=%t locked=%t masked=%t opaque=%d\n",
			l.Type(), l.UID(), l.Visible(), l.Locked(), l.Masked(), opaque)
	}
}

func (a *app) export(args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	in := fs.String("i", "", "input document")
	out := fs.String("o", "", "output file")
	format := fs.String("format", "", "tap, wav or png; defaults to the output extension")
	name := fs.String("name", a.cfg.Export.Name, "program name in the tape header")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *out == "" {
		return fmt.Errorf("missing -o")
	}
	if *format == "" {
		*format = strings.TrimPrefix(strings.ToLower(filepath.Ext(*out)), ".")
	}

	e, err := a.load(*in)
	if err != nil {
		return err
	}
	fallback, err := a.cfg.Fallback()
	if err != nil {
		return err
	}
	border := e.Background().Border

	switch *format {
	case "tap":
		data, err := tap.Export(*name, border, e.Preview(), fallback)
		if err != nil {
			return err
		}
		if err := os.WriteFile(*out, data, 0644); err != nil {
			return err
		}
	case "wav":
		data, err := tap.Export(*name, border, e.Preview(), fallback)
		if err != nil {
			return err
		}
		blocks, err := tap.Parse(data)
		if err != nil {
			return err
		}
		if err := writeFile(*out, func(f *os.File) error {
			return tape.WriteWAV(f, blocks, beep.SampleRate(a.cfg.Export.SampleRate))
		}); err != nil {
			return err
		}
		a.log.Debug("tape signal", zap.Duration("duration", tape.Duration(blocks)))
	case "png":
		pal, err := a.cfg.BuildPalette()
		if err != nil {
			return err
		}
		img := bitmap.Render(e.Preview(), border, bitmap.Options{
			Palette:  pal,
			Fallback: fallback,
			Scale:    a.cfg.Export.Scale,
		})
		if err := writeFile(*out, func(f *os.File) error {
			return bitmap.WritePNG(f, img)
		}); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format %q", *format)
	}
	a.log.Info("exported", zap.String("format", *format), zap.String("path", *out))
	return nil
}

func writeFile(path string, write func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (a *app) view(args []string) error {
	fs := flag.NewFlagSet("view", flag.ContinueOnError)
	in := fs.String("i", "", "input document")
	if err := fs.Parse(args); err != nil {
		return err
	}
	e, err := a.load(*in)
	if err != nil {
		return err
	}
	pal, err := a.cfg.BuildPalette()
	if err != nil {
		return err
	}
	fallback, err := a.cfg.Fallback()
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer screen.Fini()

	view.New(screen, e, pal, fallback, a.cfg.View.ShowPanel).Run()
	return nil
}
