package project

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"errcode/internal/errcode"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestLoadManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ManifestName), "[registry]\ndir = \"codes\"\n\n[build]\njobs = 2\n")
	nested := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	m, ok, err := LoadManifest(nested)
	if err != nil || !ok {
		t.Fatalf("LoadManifest = %v, %v", ok, err)
	}
	if m.RegistryDir() != filepath.Join(root, "codes") {
		t.Errorf("RegistryDir = %s", m.RegistryDir())
	}
	if m.Config.Build.Jobs != 2 || len(m.Config.Source.Extensions) != 3 {
		t.Errorf("config = %+v", m.Config)
	}
	if m.OutDir() != "" {
		t.Errorf("OutDir = %q", m.OutDir())
	}
}

func TestLoadManifestMissing(t *testing.T) {
	if _, ok, err := LoadManifest(t.TempDir()); err != nil || ok {
		t.Fatalf("LoadManifest = %v, %v", ok, err)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"no_registry", "[source]\ninclude = [\"src\"]\n", "[registry]"},
		{"no_dir", "[registry]\n", "[registry].dir"},
		{"blank_dir", "[registry]\ndir = \" \"\n", "[registry].dir"},
		{"bad_toml", "[registry\n", "failed to parse TOML"},
		{"unknown_key", "[registry]\ndir = \"x\"\nformat = 1\n", "unknown key registry.format"},
		{"negative_jobs", "[registry]\ndir = \"x\"\n[build]\njobs = -1\n", "jobs"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ManifestName)
			writeFile(t, path, tt.content)
			_, err := LoadConfig(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestMissingDirIsConfigurationError(t *testing.T) {
	path := filepath.Join(t.TempDir(), ManifestName)
	writeFile(t, path, "[registry]\n")
	_, err := LoadConfig(path)
	if !errors.Is(err, errcode.ErrConfiguration) {
		t.Fatalf("err = %v", err)
	}
}

func TestWriteDefaultRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteDefault(dir, false)
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("default manifest does not load: %v", err)
	}
	if cfg.Registry.Dir != "error_codes" || cfg.Source.Include[0] != "src" {
		t.Fatalf("cfg = %+v", cfg)
	}
	if _, err := WriteDefault(dir, false); err == nil {
		t.Fatal("second WriteDefault without force must fail")
	}
	if _, err := WriteDefault(dir, true); err != nil {
		t.Fatalf("forced WriteDefault: %v", err)
	}
}

func TestCollectSources(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ManifestName), "[registry]\ndir = \"error_codes\"\n")
	for _, p := range []string{
		"src/a.js",
		"src/b.mjs",
		"src/readme.md",
		"src/node_modules/dep/index.js",
		"src/.cache/x.js",
		"src/lib/c.cjs",
		"other/d.js",
	} {
		writeFile(t, filepath.Join(root, filepath.FromSlash(p)), "x;")
	}
	m, _, err := LoadManifest(root)
	if err != nil {
		t.Fatal(err)
	}
	got, err := m.CollectSources(nil)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		filepath.Join(root, "src", "a.js"),
		filepath.Join(root, "src", "b.mjs"),
		filepath.Join(root, "src", "lib", "c.cjs"),
	}
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Fatalf("got\n%s\nwant\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}

	explicit, err := m.CollectSources([]string{filepath.Join(root, "src", "readme.md"), filepath.Join(root, "other")})
	if err != nil {
		t.Fatal(err)
	}
	if len(explicit) != 2 {
		t.Fatalf("explicit = %v", explicit)
	}
}

func TestCombine(t *testing.T) {
	var d Digest
	if Combine(d, "ab", "c") == Combine(d, "a", "bc") {
		t.Fatal("parts must be length-prefixed")
	}
	if Combine(d, "x") != Combine(d, "x") {
		t.Fatal("Combine is not deterministic")
	}
	if !d.IsZero() || len(Combine(d).String()) != 64 {
		t.Fatal("unexpected digest helpers")
	}
}
