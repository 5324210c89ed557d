package driver

import (
	"golang.org/x/text/unicode/norm"

	"errcode/internal/source"
)

// LogicalPath is the file path that enters the hash of every code in the
// unit: relative to root, slash-separated and in Unicode NFC, so that macOS
// (NFD file names) and Linux checkouts produce the same codes.
func LogicalPath(root, file string) string {
	return norm.NFC.String(source.LogicalPath(root, file))
}
