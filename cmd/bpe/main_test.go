package main

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lixenwraith/bpe/cell"
	"github.com/lixenwraith/bpe/export/bitmap"
	"github.com/lixenwraith/bpe/export/tap"
	"github.com/lixenwraith/bpe/graphics"
	"github.com/lixenwraith/bpe/uid"
)

func TestBuildDemo(t *testing.T) {
	e := graphics.New()
	history, err := buildDemo(e, uid.NewSequence("layer-"))
	if err != nil {
		t.Fatalf("buildDemo: %v", err)
	}
	if len(e.Layers()) != 3 {
		t.Fatalf("Expected 3 layers, got %d", len(e.Layers()))
	}
	if e.Background().Border != cell.ColorBlue {
		t.Errorf("Expected blue border, got %s", e.Background().Border)
	}
	if got := e.Preview().CharCell(2, 1).Char; got != 'B' {
		t.Errorf("Expected title at 2,1, got %q", rune(got))
	}

	// Undoing the history in reverse returns to an empty document
	for i := len(history) - 1; i >= 0; i-- {
		if _, ok := e.Execute(history[i]); !ok {
			t.Fatalf("Expected undo %d (%s) to execute", i, history[i].Tag())
		}
	}
	if !e.Snapshot().Equal(graphics.NewState()) {
		t.Error("Expected undo to restore the empty document")
	}
}

func TestCommands(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "demo.bpe")

	if err := run([]string{"demo", "-o", doc}, &bytes.Buffer{}); err != nil {
		t.Fatalf("demo: %v", err)
	}

	var out bytes.Buffer
	if err := run([]string{"info", "-i", doc}, &out); err != nil {
		t.Fatalf("info: %v", err)
	}
	text := out.String()
	for _, want := range []string{"background: color=blue border=blue", "layers: 3", "char   layer-3", "qblock layer-1"} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected info to contain %q, got:\n%s", want, text)
		}
	}
	if strings.Index(text, "layer-3") > strings.Index(text, "layer-1") {
		t.Error("Expected layers listed top to bottom")
	}

	t.Run("tap", func(t *testing.T) {
		path := filepath.Join(dir, "demo.tap")
		if err := run([]string{"export", "-i", doc, "-o", path, "-name", "demo"}, &bytes.Buffer{}); err != nil {
			t.Fatalf("export: %v", err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		blocks, err := tap.Parse(data)
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}
		if len(blocks) != 2 {
			t.Errorf("Expected 2 blocks, got %d", len(blocks))
		}
	})

	t.Run("wav", func(t *testing.T) {
		path := filepath.Join(dir, "demo.out")
		if err := run([]string{"export", "-i", doc, "-o", path, "-format", "wav"}, &bytes.Buffer{}); err != nil {
			t.Fatalf("export: %v", err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.HasPrefix(data, []byte("RIFF")) {
			t.Error("Expected a RIFF header")
		}
	})

	t.Run("png", func(t *testing.T) {
		path := filepath.Join(dir, "demo.png")
		if err := run([]string{"export", "-i", doc, "-o", path}, &bytes.Buffer{}); err != nil {
			t.Fatalf("export: %v", err)
		}
		f, err := os.Open(path)
		if err != nil {
			t.Fatal(err)
		}
		defer f.Close()
		img, err := png.Decode(f)
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		e := graphics.New()
		want := bitmap.Size(e.Preview()).Mul(2)
		if got := img.Bounds().Size(); got != want {
			t.Errorf("Expected %v at default scale, got %v", want, got)
		}
	})
}

func TestCommandErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		args []string
	}{
		{"No command", nil},
		{"Unknown command", []string{"paint"}},
		{"Demo without output", []string{"demo"}},
		{"Info without input", []string{"info"}},
		{"Missing file", []string{"info", "-i", filepath.Join(dir, "none.bpe")}},
		{"Unknown format", []string{"export", "-i", filepath.Join(dir, "none.bpe"), "-o", filepath.Join(dir, "x.gif")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := run(tt.args, &bytes.Buffer{}); err == nil {
				t.Error("Expected an error")
			}
		})
	}

	if err := run(nil, &bytes.Buffer{}); !errors.Is(err, errUsage) {
		t.Errorf("Expected usage error, got %v", err)
	}
}

func TestLoadRejectsCorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.bpe")
	if err := os.WriteFile(path, []byte("not a document"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := run([]string{"info", "-i", path}, &bytes.Buffer{}); err == nil {
		t.Error("Expected corrupt document to fail")
	}
}
