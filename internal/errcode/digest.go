package errcode

import (
	"strings"
)

// AppendToDigest stitches code onto an error digest as "<digest>;<code>".
// An empty code leaves the digest unchanged.
func AppendToDigest(digest, code string) string {
	if code == "" {
		return digest
	}
	return digest + ";" + code
}

// ExtractFromDigest returns the first ';'-separated segment of digest that
// looks like an error code (starts with 'E').
func ExtractFromDigest(digest string) (string, bool) {
	for seg := range strings.SplitSeq(digest, ";") {
		if strings.HasPrefix(seg, "E") {
			return seg, true
		}
	}
	return "", false
}

// SplitCode returns the hash part of code for a known commit.
func SplitCode(code, commit string) (string, bool) {
	rest, ok := strings.CutPrefix(code, "E"+commit)
	if !ok || len(rest) < 8 || !isLowerHex(rest) {
		return "", false
	}
	return rest, true
}

// MatchesHash reports whether code ends with hash, whatever the commit.
func MatchesHash(code, hash string) bool {
	return strings.HasPrefix(code, "E") && len(code) >= 1+len(hash) && strings.HasSuffix(code, hash)
}

func isLowerHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return s != ""
}
