package diagfmt

import (
	"path/filepath"
	"strings"
)

func displayPath(path string, mode PathMode, base string) string {
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(path); err == nil {
			return filepath.ToSlash(abs)
		}
	case PathModeRelative:
		if rel, ok := relativeTo(base, path); ok {
			return rel
		}
	case PathModeBasename:
		return filepath.Base(path)
	case PathModeAuto:
		// внутри base показываем относительный путь, снаружи как есть
		if rel, ok := relativeTo(base, path); ok && !strings.HasPrefix(rel, "../") {
			return rel
		}
	}
	return filepath.ToSlash(path)
}

func relativeTo(base, path string) (string, bool) {
	if base == "" {
		var err error
		if base, err = filepath.Abs("."); err != nil {
			return "", false
		}
	}
	absBase, err := filepath.Abs(base)
	if err != nil {
		return "", false
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}
	rel, err := filepath.Rel(absBase, absPath)
	if err != nil {
		return "", false
	}
	return filepath.ToSlash(rel), true
}
