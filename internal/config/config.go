// Package config holds the per-unit configuration of the error-code pass:
// the commit fingerprint, the logical file path and the mode.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"errcode/internal/errcode"
)

// Mode selects what the persistence gateway does with each code.
type Mode uint8

const (
	ModeUnknown Mode = iota
	// ModeGenerate writes every record to the registry.
	ModeGenerate
	// ModeCheck fails on the first code without a registry entry.
	ModeCheck
	// ModeDryRun skips the registry; used by transform --dry-run and tests.
	ModeDryRun
)

func (m Mode) String() string {
	switch m {
	case ModeGenerate:
		return "generate"
	case ModeCheck:
		return "check"
	case ModeDryRun:
		return "dry-run"
	default:
		return "unknown"
	}
}

// ParseMode accepts "generate" and "check". The dry-run mode is never read
// from configuration; callers select it explicitly.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "generate":
		return ModeGenerate, nil
	case "check":
		return ModeCheck, nil
	default:
		return ModeUnknown, errcode.InvalidMode(s)
	}
}

// Config is the pass configuration in the JSON shape the build tool passes
// per file.
type Config struct {
	CommitHash string `json:"commitHash"`
	FilePath   string `json:"filePath"`
	Mode       string `json:"mode"`
}

// ParseJSON decodes and validates data.
func ParseJSON(data []byte) (Config, error) {
	cfg, err := Decode(data)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Decode decodes data without checking that every field is set. Unknown
// keys are ignored: the host may pass a wider object.
func Decode(data []byte) (Config, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, &errcode.Error{
			Kind: errcode.KindConfiguration,
			Msg:  "invalid configuration JSON",
			Err:  err,
		}
	}
	return cfg, nil
}

// Load reads a JSON configuration file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := ParseJSON(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first missing field by its JSON name, then an
// unknown mode. Whitespace-only values count as missing.
func (c Config) Validate() error {
	fields := []struct{ name, value string }{
		{"commitHash", c.CommitHash},
		{"filePath", c.FilePath},
		{"mode", c.Mode},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return errcode.MissingField(f.name)
		}
	}
	_, err := ParseMode(c.Mode)
	return err
}

// ParsedMode is Mode as an enum; call after Validate.
func (c Config) ParsedMode() Mode {
	m, _ := ParseMode(c.Mode)
	return m
}
