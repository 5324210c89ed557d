package source

import (
	"bytes"
	"fmt"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"fortio.org/safecast"
)

// Prepare strips a leading BOM and reports what it saw in flags.
// Line endings are kept; the printer writes them back unchanged.
func Prepare(content []byte) ([]byte, FileFlags) {
	body, hadBOM := StripBOM(content)
	var flags FileFlags
	if hadBOM {
		flags |= FileHadBOM
	}
	if bytes.Contains(body, crlf) {
		flags |= FileHasCRLF
	}
	return body, flags
}

var crlf = []byte("\r\n")

// StripBOM removes a leading UTF-8 byte order mark.
func StripBOM(content []byte) ([]byte, bool) {
	if len(content) >= 3 && content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		return content[3:], true
	}
	return content, false
}

func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, len(content)/32+1)
	for i, b := range content {
		if b != '\n' {
			continue
		}
		off, err := safecast.Conv[uint32](i)
		if err != nil {
			panic(fmt.Errorf("line offset overflow: %w", err))
		}
		out = append(out, off)
	}
	return out
}

func toLineCol(lineIdx []uint32, off uint32) LineCol {
	// бинпоиск: количество переводов строк строго до off
	line, _ := slices.BinarySearch(lineIdx, off)
	var startOff uint32
	if line > 0 {
		startOff = lineIdx[line-1] + 1
	}
	lineNo, err := safecast.Conv[uint32](line + 1)
	if err != nil {
		panic(fmt.Errorf("line number overflow: %w", err))
	}
	return LineCol{Line: lineNo, Col: off - startOff + 1}
}

func normalizePath(p string) string {
	// единый вид в кроссплатформенных дифах
	return filepath.ToSlash(filepath.Clean(p))
}

// LogicalPath returns p relative to base in slash form. Paths outside base,
// or any path when base is empty, are returned normalized but otherwise as is.
// The logical path is part of every error code hash, so it must not depend on
// the machine the build runs on.
func LogicalPath(base, p string) string {
	p = normalizePath(p)
	if base == "" {
		return p
	}
	rel, err := filepath.Rel(filepath.FromSlash(normalizePath(base)), filepath.FromSlash(p))
	if err != nil {
		return p
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return p
	}
	return path.Clean(rel)
}
