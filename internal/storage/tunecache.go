// Package storage implements the two external collaborators the
// notation core exposes to (spec.md §6): a flat-file tune cache
// keyed by integer tune ID, and a gorm-backed store of structured
// tune metadata.
package storage

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"
)

// CacheBehaviour selects how a TuneCache holds its tune text: fully
// in memory (ReadWrite) or as an on-disk offset index read on every
// Get (ReadOnly). Ported from the original implementation's
// CacheBehaviour enum.
type CacheBehaviour int

const (
	ReadOnly CacheBehaviour = iota
	ReadWrite
)

type tuneOffset struct {
	offset int64
	length int
}

// TuneCache is the "tunecache" file: the concatenation of every
// tune's raw ABC text, each record framed by an 8-byte header (4
// bytes little-endian tune ID, 4 bytes little-endian length),
// plus an in-memory offset index keyed by tune ID.
type TuneCache struct {
	path      string
	behaviour CacheBehaviour

	offsets map[uint32]tuneOffset
	strings map[uint32]string

	hits   atomic.Int64
	misses atomic.Int64
}

// Open loads an existing tunecache file's index (and, in ReadWrite
// mode, its full string contents) into memory. A missing file is not
// an error: it means the cache starts empty.
func Open(path string, behaviour CacheBehaviour) (*TuneCache, error) {
	c := &TuneCache{
		path:      path,
		behaviour: behaviour,
		offsets:   make(map[uint32]tuneOffset),
		strings:   make(map[uint32]string),
	}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening tunecache: %w", err)
	}
	defer f.Close()

	if err := c.loadIndex(f); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *TuneCache) loadIndex(f *os.File) error {
	r := bufio.NewReader(f)
	header := make([]byte, 8)
	var offset int64

	for {
		if _, err := io.ReadFull(r, header); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				break
			}
			return fmt.Errorf("reading tunecache header: %w", err)
		}
		offset += 8

		tuneID := binary.LittleEndian.Uint32(header[0:4])
		length := int(binary.LittleEndian.Uint32(header[4:8]))

		c.offsets[tuneID] = tuneOffset{offset: offset, length: length}

		if c.behaviour == ReadWrite {
			buf := make([]byte, length)
			if _, err := io.ReadFull(r, buf); err != nil {
				return fmt.Errorf("reading tunecache record %d: %w", tuneID, err)
			}
			c.strings[tuneID] = string(buf)
		} else {
			if _, err := r.Discard(length); err != nil {
				return fmt.Errorf("skipping tunecache record %d: %w", tuneID, err)
			}
		}
		offset += int64(length)
	}
	return nil
}

// Get implements the Cache collaborator's get(tune_id) -> Option<characters>
// contract: it returns a tune's raw ABC text and whether it was found.
func (c *TuneCache) Get(tuneID uint32) (string, bool) {
	if text, ok := c.strings[tuneID]; ok {
		c.hits.Add(1)
		return text, true
	}

	off, ok := c.offsets[tuneID]
	if !ok {
		c.misses.Add(1)
		return "", false
	}

	f, err := os.Open(c.path)
	if err != nil {
		c.misses.Add(1)
		return "", false
	}
	defer f.Close()

	buf := make([]byte, off.length)
	if _, err := f.ReadAt(buf, off.offset); err != nil {
		c.misses.Add(1)
		return "", false
	}
	c.hits.Add(1)
	return string(buf), true
}

// HitRate returns the fraction of Get calls that found a tune, or 0
// if Get has never been called.
func (c *TuneCache) HitRate() float64 {
	hits, misses := c.hits.Load(), c.misses.Load()
	total := hits + misses
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}

// Len returns the number of tunes currently indexed, counting both
// tunes flushed to disk and tunes only Put in memory so far.
func (c *TuneCache) Len() int {
	return len(c.idSet())
}

// MaxID returns the largest tune ID in the cache, or 0 if it is empty.
func (c *TuneCache) MaxID() uint32 {
	var max uint32
	for id := range c.idSet() {
		if id > max {
			max = id
		}
	}
	return max
}

// IDs returns every tune ID currently indexed, in no particular order,
// including tunes Put in memory but not yet Flushed to disk.
func (c *TuneCache) IDs() []uint32 {
	set := c.idSet()
	ids := make([]uint32, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	return ids
}

// idSet is the union of tune IDs backed by the on-disk offset index
// and tune IDs only present in the in-memory string cache so far.
func (c *TuneCache) idSet() map[uint32]struct{} {
	set := make(map[uint32]struct{}, len(c.offsets)+len(c.strings))
	for id := range c.offsets {
		set[id] = struct{}{}
	}
	for id := range c.strings {
		set[id] = struct{}{}
	}
	return set
}

// Put adds or replaces a tune's text in the in-memory string cache.
// It does not touch the offset index or the on-disk file until Flush
// is called; it is a no-op in ReadOnly mode.
func (c *TuneCache) Put(tuneID uint32, text string) {
	if c.behaviour == ReadOnly {
		return
	}
	c.strings[tuneID] = text
}

// Flush rewrites the whole tunecache file from the in-memory string
// cache. It is a no-op in ReadOnly mode.
func (c *TuneCache) Flush() error {
	if c.behaviour == ReadOnly {
		return nil
	}

	f, err := os.Create(c.path)
	if err != nil {
		return fmt.Errorf("creating tunecache: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	header := make([]byte, 8)
	offset := int64(0)
	newOffsets := make(map[uint32]tuneOffset, len(c.strings))

	for tuneID, text := range c.strings {
		binary.LittleEndian.PutUint32(header[0:4], tuneID)
		binary.LittleEndian.PutUint32(header[4:8], uint32(len(text)))
		if _, err := w.Write(header); err != nil {
			return fmt.Errorf("writing tunecache header: %w", err)
		}
		offset += 8

		if _, err := w.WriteString(text); err != nil {
			return fmt.Errorf("writing tunecache record %d: %w", tuneID, err)
		}
		newOffsets[tuneID] = tuneOffset{offset: offset, length: len(text)}
		offset += int64(len(text))
	}

	if err := w.Flush(); err != nil {
		return err
	}
	c.offsets = newOffsets
	return nil
}

// tuneIDFromFilename extracts the numeric tune ID from a filename of
// the form "<id>.abc", the way the original scanner does.
func tuneIDFromFilename(path string) (uint32, bool) {
	base := filepath.Base(path)
	name := strings.SplitN(base, ".", 2)[0]
	id, err := strconv.ParseUint(name, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(id), true
}

// DirectoryScanner recursively walks a directory tree of "<id>.abc"
// files — in any nesting — and loads each into a TuneCache's
// in-memory string cache, skipping IDs already indexed (first wins).
type DirectoryScanner struct {
	cache *TuneCache
}

// NewDirectoryScanner builds a scanner that populates cache.
func NewDirectoryScanner(cache *TuneCache) *DirectoryScanner {
	return &DirectoryScanner{cache: cache}
}

// ScanResult summarises one Scan call.
type ScanResult struct {
	Scanned int
	Indexed int
}

// Scan walks root for files named "<id>.abc" and, for every ID not
// already present in the cache's index, reads the file and adds it
// to the in-memory string cache (callers must call Flush to persist
// it to the tunecache file).
func (s *DirectoryScanner) Scan(root string) (ScanResult, error) {
	var result ScanResult

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.EqualFold(filepath.Ext(path), ".abc") {
			return nil
		}

		result.Scanned++

		tuneID, ok := tuneIDFromFilename(path)
		if !ok {
			return nil
		}
		if _, exists := s.cache.offsets[tuneID]; exists {
			return nil
		}
		if _, exists := s.cache.strings[tuneID]; exists {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		s.cache.Put(tuneID, string(content))
		result.Indexed++
		return nil
	})
	if err != nil {
		return result, err
	}
	return result, nil
}
