package project

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"errcode/internal/errcode"
)

// Manifest is a loaded errcode.toml.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config mirrors the sections of errcode.toml.
type Config struct {
	Registry RegistryConfig `toml:"registry"`
	Source   SourceConfig   `toml:"source"`
	Build    BuildConfig    `toml:"build"`
}

type RegistryConfig struct {
	// Dir is relative to the project root.
	Dir string `toml:"dir"`
}

type SourceConfig struct {
	Include    []string `toml:"include"`
	Exclude    []string `toml:"exclude"`
	Extensions []string `toml:"extensions"`
}

type BuildConfig struct {
	Commit string `toml:"commit"`
	Jobs   int    `toml:"jobs"`
	Cache  bool   `toml:"cache"`
	OutDir string `toml:"out_dir"`
}

// DefaultRegistryDir is the registry used when no manifest names one.
const DefaultRegistryDir = "error_codes"

// DefaultConfig is what `errcode init` writes.
func DefaultConfig() Config {
	return Config{
		Registry: RegistryConfig{Dir: DefaultRegistryDir},
		Source: SourceConfig{
			Include:    []string{"src"},
			Exclude:    []string{"node_modules", "dist"},
			Extensions: []string{".js", ".mjs", ".cjs"},
		},
	}
}

// LoadManifest finds errcode.toml above startDir and loads it. ok is false
// when there is no manifest.
func LoadManifest(startDir string) (*Manifest, bool, error) {
	manifestPath, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := LoadConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

// LoadConfig decodes a manifest file. Only [registry].dir is required;
// missing source settings fall back to DefaultConfig.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("registry") {
		return Config{}, fmt.Errorf("%s: %w", path, errcode.MissingField("[registry]"))
	}
	if !meta.IsDefined("registry", "dir") || strings.TrimSpace(cfg.Registry.Dir) == "" {
		return Config{}, fmt.Errorf("%s: %w", path, errcode.MissingField("[registry].dir"))
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %s", path, undecoded[0])
	}
	def := DefaultConfig()
	if !meta.IsDefined("source", "include") {
		cfg.Source.Include = def.Source.Include
	}
	if !meta.IsDefined("source", "exclude") {
		cfg.Source.Exclude = def.Source.Exclude
	}
	if !meta.IsDefined("source", "extensions") {
		cfg.Source.Extensions = def.Source.Extensions
	}
	if cfg.Build.Jobs < 0 {
		return Config{}, fmt.Errorf("%s: [build].jobs must not be negative", path)
	}
	return cfg, nil
}

// Encode renders cfg as TOML.
func (c Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteDefault creates dir/errcode.toml; an existing file is an error
// unless force is set.
func WriteDefault(dir string, force bool) (string, error) {
	path := filepath.Join(dir, ManifestName)
	if _, err := os.Stat(path); err == nil && !force {
		return "", fmt.Errorf("%s already exists", path)
	}
	data, err := DefaultConfig().Encode()
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", err
	}
	return path, nil
}

// RegistryDir is the absolute registry directory.
func (m *Manifest) RegistryDir() string {
	return m.abs(m.Config.Registry.Dir)
}

// OutDir is the absolute output directory, "" when rewritten files are not
// written.
func (m *Manifest) OutDir() string {
	if strings.TrimSpace(m.Config.Build.OutDir) == "" {
		return ""
	}
	return m.abs(m.Config.Build.OutDir)
}

func (m *Manifest) abs(p string) string {
	p = filepath.FromSlash(p)
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(m.Root, p)
}
