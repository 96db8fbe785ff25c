// Package tap writes a picture as a tape image holding a BASIC program that prints it
package tap

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/lixenwraith/bpe/canvas"
	"github.com/lixenwraith/bpe/cell"
	"github.com/lixenwraith/bpe/palette"
)

const (
	FlagHeader byte = 0x00
	FlagData   byte = 0xFF

	typeProgram = 0
	nameLength  = 10
	headerSize  = 17

	// Rows 22 and 23 belong to the lower screen and are printed through channel 0
	upperRows = 22
)

// BASIC keyword tokens
const (
	tokenAt     = 0xAC
	tokenInk    = 0xD9
	tokenPaper  = 0xDA
	tokenFlash  = 0xDB
	tokenBright = 0xDC
	tokenBorder = 0xE7
	tokenRem    = 0xEA
	tokenGoTo   = 0xEC
	tokenPause  = 0xF2
	tokenPrint  = 0xF5
	tokenCls    = 0xFB
)

// Embedded attribute control codes, each followed by its value
const (
	ctrlInk    = 0x10
	ctrlPaper  = 0x11
	ctrlFlash  = 0x12
	ctrlBright = 0x13
)

const (
	numberMarker = 0x0E
	endOfLine    = 0x0D
)

var (
	ErrName = errors.New("tap: program name must be 1-10 printable ASCII characters")
	ErrSize = fmt.Errorf("tap: preview must be %dx%d", canvas.DocWidth, canvas.DocHeight)
	ErrTape = errors.New("tap: malformed tape image")
)

// Block is one tape block; Data excludes the flag and checksum bytes
type Block struct {
	Flag byte
	Data []byte
}

// Checksum is the XOR of the flag and every data byte
func (b Block) Checksum() byte {
	sum := b.Flag
	for _, v := range b.Data {
		sum ^= v
	}
	return sum
}

// AppendTo appends the block in tape image layout: length, flag, data, checksum
func (b Block) AppendTo(dst []byte) []byte {
	dst = binary.LittleEndian.AppendUint16(dst, uint16(len(b.Data)+2))
	dst = append(dst, b.Flag)
	dst = append(dst, b.Data...)
	return append(dst, b.Checksum())
}

// Export builds the tape image: a program header block followed by the program
// Transparent colors in the preview and border print as fallback
func Export(name string, border cell.Color, preview canvas.Canvas, fallback cell.Color) ([]byte, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	program, err := Program(border, preview, fallback)
	if err != nil {
		return nil, err
	}

	header := make([]byte, 0, headerSize)
	header = append(header, typeProgram)
	header = append(header, padName(name)...)
	header = binary.LittleEndian.AppendUint16(header, uint16(len(program)))
	header = binary.LittleEndian.AppendUint16(header, 10) // autostart line
	header = binary.LittleEndian.AppendUint16(header, uint16(len(program)))

	var out []byte
	out = Block{Flag: FlagHeader, Data: header}.AppendTo(out)
	out = Block{Flag: FlagData, Data: program}.AppendTo(out)
	return out, nil
}

// Program encodes the BASIC listing that clears the screen and prints the preview
func Program(border cell.Color, preview canvas.Canvas, fallback cell.Color) ([]byte, error) {
	if preview.Width() != canvas.DocWidth || preview.Height() != canvas.DocHeight {
		return nil, ErrSize
	}
	border = palette.Resolve(border, fallback)
	base := attrs{ink: int(cell.ColorBlack), paper: int(fallback)}
	if fallback == cell.ColorBlack {
		base.ink = int(cell.ColorWhite)
	}

	var prog []byte
	prog = appendLine(prog, 10, func(l *line) {
		l.token(tokenRem)
		l.raw([]byte("bpe picture")...)
	})
	prog = appendLine(prog, 20, func(l *line) {
		l.token(tokenBorder)
		l.number(int(border))
		l.raw(':')
		l.token(tokenPaper)
		l.number(base.paper)
		l.raw(':')
		l.token(tokenInk)
		l.number(base.ink)
		l.raw(':')
		l.token(tokenBright)
		l.number(0)
		l.raw(':')
		l.token(tokenFlash)
		l.number(0)
		l.raw(':')
		l.token(tokenCls)
	})
	prog = appendLine(prog, 30, func(l *line) {
		l.token(tokenPrint)
		l.at(0, 0)
		l.rows(preview, 0, upperRows, fallback)
	})
	prog = appendLine(prog, 40, func(l *line) {
		l.token(tokenPrint)
		l.raw('#')
		l.number(0)
		l.raw(';')
		l.at(0, 0)
		l.rows(preview, upperRows, canvas.DocHeight, fallback)
	})
	prog = appendLine(prog, 50, func(l *line) {
		l.token(tokenPause)
		l.number(0)
		l.raw(':')
		l.token(tokenGoTo)
		l.number(50)
	})
	return prog, nil
}

// Parse splits a tape image into blocks and verifies their checksums
func Parse(data []byte) ([]Block, error) {
	var blocks []Block
	for len(data) > 0 {
		if len(data) < 2 {
			return nil, fmt.Errorf("%w: truncated length", ErrTape)
		}
		n := int(binary.LittleEndian.Uint16(data))
		data = data[2:]
		if n < 2 || len(data) < n {
			return nil, fmt.Errorf("%w: block of %d bytes", ErrTape, n)
		}
		b := Block{Flag: data[0], Data: data[1 : n-1]}
		if b.Checksum() != data[n-1] {
			return nil, fmt.Errorf("%w: checksum mismatch in block %d", ErrTape, len(blocks))
		}
		blocks = append(blocks, b)
		data = data[n:]
	}
	return blocks, nil
}

func checkName(name string) error {
	if len(name) == 0 || len(name) > nameLength {
		return ErrName
	}
	for i := 0; i < len(name); i++ {
		if name[i] < 0x20 || name[i] > 0x7E {
			return ErrName
		}
	}
	return nil
}

func padName(name string) []byte {
	out := []byte(name)
	for len(out) < nameLength {
		out = append(out, ' ')
	}
	return out
}

type attrs struct {
	ink, paper, bright, flash int
}

func cellAttrs(c cell.CharCell, fallback cell.Color) attrs {
	a := attrs{
		ink:   int(palette.Resolve(c.Ink, fallback)),
		paper: int(palette.Resolve(c.Paper, fallback)),
	}
	if c.Bright.On() {
		a.bright = 1
	}
	if c.Flash.On() {
		a.flash = 1
	}
	return a
}

// printable maps a character to the code printed for it
func printable(ch cell.Char) byte {
	switch {
	case ch >= 0x20 && ch <= 0x7F:
		return byte(ch)
	case ch.IsBlock():
		return byte(ch)
	}
	return ' '
}

// line accumulates the text of one BASIC line
type line struct {
	buf []byte
}

func appendLine(prog []byte, number int, fill func(l *line)) []byte {
	l := &line{}
	fill(l)
	l.buf = append(l.buf, endOfLine)
	prog = binary.BigEndian.AppendUint16(prog, uint16(number))
	prog = binary.LittleEndian.AppendUint16(prog, uint16(len(l.buf)))
	return append(prog, l.buf...)
}

func (l *line) token(t byte) {
	l.buf = append(l.buf, t)
}

func (l *line) raw(b ...byte) {
	l.buf = append(l.buf, b...)
}

// number writes the digits followed by the hidden five-byte integer form
func (l *line) number(n int) {
	l.buf = append(l.buf, fmt.Sprint(n)...)
	l.buf = append(l.buf, numberMarker, 0x00, 0x00, byte(n), byte(n>>8), 0x00)
}

func (l *line) at(row, col int) {
	l.token(tokenAt)
	l.number(row)
	l.raw(',')
	l.number(col)
	l.raw(';')
}

// rows writes a quoted string of rows [from, to) with attribute codes where they change
func (l *line) rows(preview canvas.Canvas, from, to int, fallback cell.Color) {
	l.raw('"')
	var cur attrs
	first := true
	for y := from; y < to; y++ {
		for x := 0; x < preview.Width(); x++ {
			c := preview.CharCell(x, y)
			a := cellAttrs(c, fallback)
			if first || a.ink != cur.ink {
				l.raw(ctrlInk, byte(a.ink))
			}
			if first || a.paper != cur.paper {
				l.raw(ctrlPaper, byte(a.paper))
			}
			if first || a.bright != cur.bright {
				l.raw(ctrlBright, byte(a.bright))
			}
			if first || a.flash != cur.flash {
				l.raw(ctrlFlash, byte(a.flash))
			}
			cur, first = a, false

			ch := printable(c.Char)
			if ch == '"' {
				l.raw('"')
			}
			l.raw(ch)
		}
	}
	l.raw('"', ';')
}
