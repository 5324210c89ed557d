package format

import (
	"errcode/internal/source"
)

// Writer accumulates output and copies fragments of the source file.
type Writer struct {
	sf  *source.File
	buf []byte
}

// NewWriter creates a writer sized for sf; rewrites only ever add text.
func NewWriter(sf *source.File) *Writer {
	return &Writer{
		sf:  sf,
		buf: make([]byte, 0, len(sf.Content)+len(sf.Content)/8),
	}
}

// Bytes returns the accumulated output.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// WriteString appends s verbatim.
func (w *Writer) WriteString(s string) {
	w.buf = append(w.buf, s...)
}

// WriteByte appends a single byte.
func (w *Writer) WriteByte(b byte) error {
	w.buf = append(w.buf, b)
	return nil
}

// CopyRange copies source bytes [start, end), clamped to the content.
func (w *Writer) CopyRange(start, end int) {
	n := len(w.sf.Content)
	start = clampToContent(start, n)
	end = clampToContent(end, n)
	if start >= end {
		return
	}
	w.buf = append(w.buf, w.sf.Content[start:end]...)
}

// CopySpan copies the source text covered by sp.
func (w *Writer) CopySpan(sp source.Span) {
	w.CopyRange(int(sp.Start), int(sp.End))
}

func clampToContent(pos, length int) int {
	if pos < 0 {
		return 0
	}
	if pos > length {
		return length
	}
	return pos
}
