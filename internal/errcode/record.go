package errcode

import (
	"fmt"
	"strconv"

	"errcode/internal/siphash"
)

// Record is the hashed and persisted description of one error site.
type Record struct {
	FilePath        string `json:"file_path" msgpack:"file_path"`
	ErrorMessage    string `json:"error_message" msgpack:"error_message"`
	OccurrenceCount int    `json:"occurrence_count" msgpack:"occurrence_count"`
}

// Canonical returns the compact JSON form of r with keys sorted:
//
//	{"error_message":"...","file_path":"...","occurrence_count":N}
//
// These bytes are both the hash input and the registry file content.
func (r Record) Canonical() []byte {
	buf := make([]byte, 0, 64+len(r.ErrorMessage)+len(r.FilePath))
	buf = append(buf, `{"error_message":`...)
	buf = appendJSONString(buf, r.ErrorMessage)
	buf = append(buf, `,"file_path":`...)
	buf = appendJSONString(buf, r.FilePath)
	buf = append(buf, `,"occurrence_count":`...)
	buf = strconv.AppendInt(buf, int64(r.OccurrenceCount), 10)
	return append(buf, '}')
}

const hexDigits = "0123456789abcdef"

// appendJSONString экранирует как serde_json: только '"', '\\' и управляющие
// байты; не-ASCII, '<', '>', '&' и U+2028 остаются как есть.
func appendJSONString(buf []byte, s string) []byte {
	buf = append(buf, '"')
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		var esc string
		switch c {
		case '"':
			esc = `\"`
		case '\\':
			esc = `\\`
		case '\b':
			esc = `\b`
		case '\f':
			esc = `\f`
		case '\n':
			esc = `\n`
		case '\r':
			esc = `\r`
		case '\t':
			esc = `\t`
		default:
			if c >= 0x20 {
				continue
			}
		}
		buf = append(buf, s[start:i]...)
		if esc != "" {
			buf = append(buf, esc...)
		} else {
			buf = append(buf, '\\', 'u', '0', '0', hexDigits[c>>4], hexDigits[c&0xf])
		}
		start = i + 1
	}
	buf = append(buf, s[start:]...)
	return append(buf, '"')
}

// Hash returns the registry key of r: SipHash-1-3 (zero keys) of the
// canonical bytes followed by a 0xff terminator, as %08x.
func Hash(r Record) string {
	canon := r.Canonical()
	h := siphash.New(0, 0)
	_, _ = h.Write(canon)
	_, _ = h.Write([]byte{0xff})
	return FormatHash(h.Sum64())
}

// FormatHash renders a 64-bit hash as lowercase hex, at least 8 digits.
func FormatHash(v uint64) string {
	return fmt.Sprintf("%08x", v)
}

// Code composes the error code of r for the given commit.
func Code(commit string, r Record) string {
	return "E" + commit + Hash(r)
}
