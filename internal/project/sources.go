package project

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// CollectSources returns the absolute paths of every source file under
// paths (or the manifest includes when paths is empty), sorted and
// deduplicated. Explicit file arguments bypass the extension filter.
func (m *Manifest) CollectSources(paths []string) ([]string, error) {
	roots := paths
	if len(roots) == 0 {
		roots = make([]string, 0, len(m.Config.Source.Include))
		for _, inc := range m.Config.Source.Include {
			roots = append(roots, m.abs(inc))
		}
	}
	exts := m.Config.Source.Extensions
	excluded := func(name string) bool {
		return slices.Contains(m.Config.Source.Exclude, name)
	}

	seen := make(map[string]struct{})
	var out []string
	add := func(p string) {
		if _, ok := seen[p]; !ok {
			seen[p] = struct{}{}
			out = append(out, p)
		}
	}
	for _, root := range roots {
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %q: %w", root, err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(abs)
			continue
		}
		err = filepath.WalkDir(abs, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if p != abs && (excluded(d.Name()) || strings.HasPrefix(d.Name(), ".")) {
					return filepath.SkipDir
				}
				return nil
			}
			if HasSourceExt(d.Name(), exts) {
				add(p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	slices.Sort(out)
	return out, nil
}

// HasSourceExt reports whether name ends with one of exts.
func HasSourceExt(name string, exts []string) bool {
	return slices.ContainsFunc(exts, func(ext string) bool {
		return strings.HasSuffix(name, ext)
	})
}
