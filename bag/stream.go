package bag

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"strings"
)

// Value tags of the byte stream
const (
	tagNull byte = iota
	tagFalse
	tagTrue
	tagInt
	tagString
	tagStuff
)

// TextPrefix marks the base64 text form of a stream
const TextPrefix = "BAG3"

var tagNames = [...]string{
	tagNull:   "null",
	tagFalse:  "bool",
	tagTrue:   "bool",
	tagInt:    "int",
	tagString: "string",
	tagStuff:  "stuff",
}

func tagName(t byte) string {
	if int(t) < len(tagNames) {
		return tagNames[t]
	}
	return fmt.Sprintf("tag(%d)", t)
}

// Writer is a Packer appending to an in-memory byte stream
type Writer struct {
	buf []byte
}

// NewWriter creates an empty stream writer
func NewWriter() *Writer {
	return &Writer{buf: make([]byte, 0, 256)}
}

func (w *Writer) PutBool(v bool) {
	if v {
		w.buf = append(w.buf, tagTrue)
	} else {
		w.buf = append(w.buf, tagFalse)
	}
}

func (w *Writer) PutInt(v int) {
	w.buf = append(w.buf, tagInt)
	w.buf = binary.AppendVarint(w.buf, int64(v))
}

func (w *Writer) PutString(v string) {
	w.buf = append(w.buf, tagString)
	w.buf = binary.AppendUvarint(w.buf, uint64(len(v)))
	w.buf = append(w.buf, v...)
}

func (w *Writer) PutNull() {
	w.buf = append(w.buf, tagNull)
}

func (w *Writer) PutStuff(version int, put func(p Packer)) {
	w.buf = append(w.buf, tagStuff)
	w.buf = binary.AppendVarint(w.buf, int64(version))
	put(w)
}

// Bytes returns the raw stream
func (w *Writer) Bytes() []byte {
	return w.buf
}

// String returns the text form: prefix plus URL-safe base64 of the stream
func (w *Writer) String() string {
	return TextPrefix + base64.RawURLEncoding.EncodeToString(w.buf)
}

// Reader is an Unpacker over a byte stream
type Reader struct {
	data []byte
	pos  int
	err  error
}

// NewReader reads a raw stream
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// ParseString reads the text form produced by Writer.String
func ParseString(s string) (*Reader, error) {
	payload, ok := strings.CutPrefix(strings.TrimSpace(s), TextPrefix)
	if !ok {
		return nil, fmt.Errorf("%w: missing %q prefix", ErrMalformed, TextPrefix)
	}
	data, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return NewReader(data), nil
}

func (r *Reader) next() (byte, bool) {
	if r.err != nil {
		return 0, false
	}
	if r.pos >= len(r.data) {
		r.err = fmt.Errorf("%w: unexpected end of stream at %d", ErrMalformed, r.pos)
		return 0, false
	}
	t := r.data[r.pos]
	r.pos++
	return t, true
}

func (r *Reader) expect(want byte) bool {
	t, ok := r.next()
	if !ok {
		return false
	}
	if t != want {
		r.mismatch(want, t)
		return false
	}
	return true
}

func (r *Reader) mismatch(want, got byte) {
	if got == tagNull {
		r.err = fmt.Errorf("%w: expected %s at %d", ErrUnexpectedNull, tagName(want), r.pos-1)
		return
	}
	r.err = fmt.Errorf("%w: expected %s, got %s at %d", ErrMalformed, tagName(want), tagName(got), r.pos-1)
}

func (r *Reader) varint() int64 {
	v, n := binary.Varint(r.data[r.pos:])
	if n <= 0 {
		r.err = fmt.Errorf("%w: bad varint at %d", ErrMalformed, r.pos)
		return 0
	}
	r.pos += n
	return v
}

func (r *Reader) GetBool() bool {
	t, ok := r.next()
	if !ok {
		return false
	}
	switch t {
	case tagFalse:
		return false
	case tagTrue:
		return true
	}
	r.mismatch(tagTrue, t)
	return false
}

func (r *Reader) GetInt() int {
	if !r.expect(tagInt) {
		return 0
	}
	return int(r.varint())
}

func (r *Reader) GetString() string {
	if !r.expect(tagString) {
		return ""
	}
	n, size := binary.Uvarint(r.data[r.pos:])
	if size <= 0 {
		r.err = fmt.Errorf("%w: bad string length at %d", ErrMalformed, r.pos)
		return ""
	}
	r.pos += size
	if n > uint64(len(r.data)-r.pos) {
		r.err = fmt.Errorf("%w: string of %d bytes overruns stream at %d", ErrMalformed, n, r.pos)
		return ""
	}
	s := string(r.data[r.pos : r.pos+int(n)])
	r.pos += int(n)
	return s
}

func (r *Reader) GetNull() bool {
	if r.err != nil || r.pos >= len(r.data) {
		return false
	}
	if r.data[r.pos] != tagNull {
		return false
	}
	r.pos++
	return true
}

func (r *Reader) GetStuff(get func(version int) error) {
	if !r.expect(tagStuff) {
		return
	}
	version := r.varint()
	if r.err != nil {
		return
	}
	if err := get(int(version)); err != nil {
		r.Fail(err)
	}
}

func (r *Reader) Fail(err error) {
	if r.err == nil && err != nil {
		r.err = err
	}
}

func (r *Reader) Err() error {
	return r.err
}

// Finish reports the sticky error, or a malformed error if bytes remain unread
func (r *Reader) Finish() error {
	if r.err != nil {
		return r.err
	}
	if r.pos != len(r.data) {
		return fmt.Errorf("%w: %d trailing bytes", ErrMalformed, len(r.data)-r.pos)
	}
	return nil
}
