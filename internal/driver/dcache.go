package driver

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"vizc/internal/diag"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 2

// CacheStatus is the outcome of a cache probe.
type CacheStatus uint8

const (
	// CacheMiss means no entry exists for the key.
	CacheMiss CacheStatus = iota
	// CacheHit means a valid entry was loaded.
	CacheHit
	// CacheStale means an entry existed but was corrupt or written by a
	// different schema version; it cannot be used.
	CacheStale
)

// Digest is a sha256 content hash keying cache entries.
type Digest [sha256.Size]byte

// DiskCache stores compiled layered specifications on disk, keyed by a
// digest of the input document and the resolved configuration.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// CachedNote is the serialisable form of a diagnostic note.
type CachedNote struct {
	Path string
	Msg  string
}

// CachedDiag is the serialisable form of a diagnostic kept alongside a
// cached output so cache hits replay the same warnings.
type CachedDiag struct {
	Severity uint8
	Code     uint16
	Path     string
	Message  string
	Notes    []CachedNote
}

// DiskPayload is one cache entry.
type DiskPayload struct {
	// Schema version for safe invalidation when the format changes
	Schema uint16

	// Digest of the input document plus configuration fingerprint
	InputDigest Digest

	// Compiled layered specification, JSON-encoded
	Output []byte

	// Non-fatal diagnostics produced during compilation
	Diags []CachedDiag
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// OpenDiskCacheAt returns a disk cache rooted at an explicit directory.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// CacheKey digests the input document together with the configuration
// fingerprint; either changing invalidates the entry.
func CacheKey(input []byte, configFingerprint string) Digest {
	h := sha256.New()
	var schema [2]byte
	binary.LittleEndian.PutUint16(schema[:], diskCacheSchemaVersion)
	h.Write(schema[:])
	h.Write([]byte(configFingerprint))
	h.Write([]byte{0})
	h.Write(input)
	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// Entries live under a "specs" subdirectory for readability and cleanup.
	return filepath.Join(c.dir, "specs", hexKey+".msgpack")
}

// Load returns the payload for key; the status distinguishes a plain miss
// from an entry that existed but could not be used.
func (c *DiskCache) Load(key Digest) (*DiskPayload, CacheStatus) {
	if c == nil {
		return nil, CacheMiss
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.pathFor(key))
	if err != nil {
		return nil, CacheMiss
	}
	var payload DiskPayload
	if err := msgpack.Unmarshal(data, &payload); err != nil {
		return nil, CacheStale
	}
	if payload.Schema != diskCacheSchemaVersion || payload.InputDigest != key {
		return nil, CacheStale
	}
	return &payload, CacheHit
}

// Store writes the payload for key, creating the entry directory on demand.
func (c *DiskCache) Store(key Digest, payload *DiskPayload) error {
	if c == nil {
		return errors.New("nil disk cache")
	}
	payload.Schema = diskCacheSchemaVersion
	payload.InputDigest = key

	data, err := msgpack.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode cache payload: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	path := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// cacheDiags converts bag contents for storage. Cache-probe diagnostics are
// facts about this run, not about the document, and are not stored.
func cacheDiags(bag *diag.Bag) []CachedDiag {
	items := bag.Items()
	out := make([]CachedDiag, 0, len(items))
	for _, d := range items {
		if d.Code == diag.DrvCacheMiss || d.Code == diag.DrvCacheStale {
			continue
		}
		cd := CachedDiag{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Path:     d.Path,
			Message:  d.Message,
		}
		for _, n := range d.Notes {
			cd.Notes = append(cd.Notes, CachedNote{Path: n.Path, Msg: n.Msg})
		}
		out = append(out, cd)
	}
	return out
}

// replayDiags rehydrates cached diagnostics into a bag.
func replayDiags(cached []CachedDiag, bag *diag.Bag) {
	for _, cd := range cached {
		d := diag.Diagnostic{
			Severity: diag.Severity(cd.Severity),
			Code:     diag.Code(cd.Code),
			Path:     cd.Path,
			Message:  cd.Message,
		}
		for _, n := range cd.Notes {
			d = d.WithNote(n.Path, n.Msg)
		}
		bag.Add(d)
	}
}
