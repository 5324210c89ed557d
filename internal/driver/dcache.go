package driver

import (
	"crypto/sha256"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"errcode/internal/errcode"
	"errcode/internal/project"
	"errcode/internal/source"
)

// увеличивать при любом изменении CachePayload или правил переписывания
const diskCacheSchemaVersion uint16 = 1

// DiskCache keeps transformed units by content, commit and logical path.
// A hit lets Run skip parsing; the recorded sites are replayed through the
// gateway so that check and generate behave exactly as on a miss.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// CachePayload is one cached unit.
type CachePayload struct {
	Schema      uint16
	LogicalPath string
	Changed     bool
	Output      []byte
	Skipped     int
	Sites       []CachedSite
}

// CachedSite is an errcode.Site without the AST.
type CachedSite struct {
	Start, End uint32
	Hash       string
	Code       string
	Record     errcode.Record
}

// DefaultCacheDir is $XDG_CACHE_HOME/<app>, falling back to ~/.cache/<app>.
func DefaultCacheDir(app string) (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, app), nil
}

// OpenDiskCache creates dir if needed.
func OpenDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) Dir() string { return c.dir }

// CacheKey identifies a unit result.
func CacheKey(content []byte, commit, logical string) project.Digest {
	return project.Combine(sha256.Sum256(content), commit, logical)
}

func (c *DiskCache) pathFor(key project.Digest) string {
	return filepath.Join(c.dir, "units", key.String()+".mp")
}

// Put writes payload under key, replacing the file atomically.
func (c *DiskCache) Put(key project.Digest, payload *CachePayload) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(f.Name())
		}
	}()

	payload.Schema = diskCacheSchemaVersion
	if err = msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads the payload of key. Entries of another schema are misses.
func (c *DiskCache) Get(key project.Digest) (*CachePayload, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	defer f.Close()

	var payload CachePayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false, err
	}
	if payload.Schema != diskCacheSchemaVersion {
		return nil, false, nil
	}
	return &payload, true, nil
}

// DropAll removes every cached unit.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	units := filepath.Join(c.dir, "units")
	old := units + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(units, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}

func payloadFromUnit(res *UnitResult) *CachePayload {
	p := &CachePayload{
		LogicalPath: res.LogicalPath,
		Changed:     res.Changed,
		Output:      res.Output,
		Skipped:     res.Skipped,
		Sites:       make([]CachedSite, len(res.Sites)),
	}
	for i, s := range res.Sites {
		p.Sites[i] = CachedSite{Start: s.Span.Start, End: s.Span.End, Hash: s.Hash, Code: s.Code, Record: s.Record}
	}
	return p
}

// replay sends every cached site to gw in the original order.
func (p *CachePayload) replay(gw errcode.Gateway, file source.FileID) ([]errcode.Site, error) {
	sites := make([]errcode.Site, 0, len(p.Sites))
	for _, s := range p.Sites {
		if gw != nil {
			if err := gw.Persist(s.Hash, s.Record); err != nil {
				return sites, err
			}
		}
		sites = append(sites, errcode.Site{
			Span:  source.Span{File: file, Start: s.Start, End: s.End},
			Issue: errcode.Issue{Record: s.Record, Hash: s.Hash, Code: s.Code},
		})
	}
	return sites, nil
}
