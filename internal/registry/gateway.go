package registry

import (
	"errcode/internal/config"
	"errcode/internal/errcode"
)

// WriteAttempts is how many times a generate gateway tries each write.
const WriteAttempts = 3

// CheckGateway verifies that every code already has a registry entry.
type CheckGateway struct {
	Store *Store
}

// Persist fails with a registry-missing error when hash has no entry. A
// failed stat counts as missing; the stat error is kept as the cause.
func (g CheckGateway) Persist(hash string, _ errcode.Record) error {
	ok, err := g.Store.Exists(hash)
	if err != nil || !ok {
		missing := errcode.RegistryMissing(hash, g.Store.PathFor(hash), g.Store.Dir())
		missing.Err = err
		return missing
	}
	return nil
}

// GenerateGateway writes the canonical record of every code.
type GenerateGateway struct {
	Store *Store
}

// Persist creates the directory, then writes with up to WriteAttempts
// immediate attempts.
func (g GenerateGateway) Persist(hash string, rec errcode.Record) error {
	path := g.Store.PathFor(hash)
	if err := g.Store.EnsureDir(); err != nil {
		return errcode.PersistenceIO(hash, path, "Failed to create error codes directory", err)
	}
	data := rec.Canonical()
	var last error
	for range WriteAttempts {
		if last = g.Store.Write(hash, data); last == nil {
			return nil
		}
	}
	return errcode.PersistenceIO(hash, path, "Failed to write error metadata after 3 retries", last)
}

// NewGateway selects the gateway of mode. Storage is not touched here.
func NewGateway(mode config.Mode, store *Store) (errcode.Gateway, error) {
	switch mode {
	case config.ModeGenerate:
		return GenerateGateway{Store: store}, nil
	case config.ModeCheck:
		return CheckGateway{Store: store}, nil
	case config.ModeDryRun:
		return errcode.DryRun{}, nil
	default:
		return nil, errcode.InvalidMode(mode.String())
	}
}
