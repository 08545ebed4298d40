package driver

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"mica/internal/diag"
	"mica/internal/source"
)

// diskCacheSchemaVersion invalidates old payloads when the format changes.
const diskCacheSchemaVersion uint16 = 1

// DiskCache memoizes per-file check results keyed by content hash. Every
// source file is its own module, so its diagnostics depend on nothing but
// its own bytes; a hash hit replays the stored bag without re-analysis.
// Safe for concurrent use. A nil *DiskCache disables caching everywhere.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is the serialized check result for one file.
type DiskPayload struct {
	Schema uint16
	Diags  []DiagRecord
}

// DiagRecord stores one diagnostic with file-relative byte spans; the
// FileID is reattached on load since IDs are not stable across runs.
type DiagRecord struct {
	Code     uint16
	Severity uint8
	Start    uint32
	End      uint32
	Message  string
	Notes    []NoteRecord
}

type NoteRecord struct {
	Start   uint32
	End     uint32
	Message string
}

// OpenDiskCache initializes a cache rooted at dir.
func OpenDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key [32]byte) string {
	return filepath.Join(c.dir, hex.EncodeToString(key[:])+".mp")
}

// Put atomically writes a payload.
func (c *DiskCache) Put(key [32]byte, payload *DiskPayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer os.Remove(tmp)

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, p)
}

// Get reads a payload. A missing entry, decode failure, or schema
// mismatch is a miss, never an error: the cache is advisory.
func (c *DiskCache) Get(key [32]byte, out *DiskPayload) bool {
	if c == nil {
		return false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		return false
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false
	}
	return out.Schema == diskCacheSchemaVersion
}

// DropAll removes every cached entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".mp" {
			continue
		}
		if err := os.Remove(filepath.Join(c.dir, e.Name())); err != nil {
			return err
		}
	}
	return nil
}

// fillBag reattaches the current FileID and replays the records.
func (p *DiskPayload) fillBag(file source.FileID, bag *diag.Bag) {
	for _, rec := range p.Diags {
		d := diag.Diagnostic{
			Severity: diag.Severity(rec.Severity),
			Code:     diag.Code(rec.Code),
			Message:  rec.Message,
			Primary:  source.Span{File: file, Start: rec.Start, End: rec.End},
		}
		for _, n := range rec.Notes {
			d.Notes = append(d.Notes, diag.Note{
				Span: source.Span{File: file, Start: n.Start, End: n.End},
				Msg:  n.Message,
			})
		}
		bag.Add(d)
	}
}

func payloadFromBag(bag *diag.Bag) *DiskPayload {
	p := &DiskPayload{Schema: diskCacheSchemaVersion}
	for _, d := range bag.Items() {
		rec := DiagRecord{
			Code:     uint16(d.Code),
			Severity: uint8(d.Severity),
			Start:    d.Primary.Start,
			End:      d.Primary.End,
			Message:  d.Message,
		}
		for _, n := range d.Notes {
			rec.Notes = append(rec.Notes, NoteRecord{
				Start:   n.Span.Start,
				End:     n.Span.End,
				Message: n.Msg,
			})
		}
		p.Diags = append(p.Diags, rec)
	}
	return p
}

func cacheLookup(c *DiskCache, f *source.File) (*DiskPayload, bool) {
	if c == nil || f == nil {
		return nil, false
	}
	var payload DiskPayload
	if !c.Get(f.Hash, &payload) {
		return nil, false
	}
	return &payload, true
}

func cacheStore(c *DiskCache, f *source.File, bag *diag.Bag) {
	if c == nil || f == nil {
		return
	}
	// Best effort: a full disk must not fail the check run.
	_ = c.Put(f.Hash, payloadFromBag(bag))
}
