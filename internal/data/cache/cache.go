package cache

import (
	"fmt"
	"sync"

	"github.com/penwyp/go-timeline-export/internal/core/timeline"
	"github.com/penwyp/go-timeline-export/internal/util"
)

type MissReason int

const (
	MissReasonNone MissReason = iota
	MissReasonError
	MissReasonInode
	MissReasonSize
	MissReasonModTime
	MissReasonNotFound
)

// Result reports a lookup outcome together with why an entry was rejected.
type Result struct {
	Objects    []timeline.RawTimelineObject
	Found      bool
	MissReason MissReason
}

// RecordCache keeps parsed timeline objects keyed by file path. Entries are
// revalidated against inode, size and modification time on every lookup, so
// repeated runs over the same tree only re-read changed files.
type RecordCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	info    util.FileInfo
	objects []timeline.RawTimelineObject
}

func NewRecordCache() *RecordCache {
	return &RecordCache{
		entries: make(map[string]cacheEntry),
	}
}

func (c *RecordCache) Get(path string) Result {
	current, err := util.GetFileInfo(path)
	if err != nil {
		util.LogDebug(fmt.Sprintf("Cache validation failed for %s: unable to get file info: %v", path, err))
		return Result{Found: false, MissReason: MissReasonError}
	}

	c.mu.RLock()
	entry, exists := c.entries[path]
	c.mu.RUnlock()

	if !exists {
		return Result{Found: false, MissReason: MissReasonNotFound}
	}

	if reason := validate(path, entry.info, *current); reason != MissReasonNone {
		// Remove the invalid entry so it cannot satisfy a later lookup.
		c.mu.Lock()
		delete(c.entries, path)
		c.mu.Unlock()
		return Result{Found: false, MissReason: reason}
	}

	return Result{Objects: entry.objects, Found: true, MissReason: MissReasonNone}
}

func validate(path string, cached, current util.FileInfo) MissReason {
	if current.Inode != cached.Inode {
		util.LogDebug(fmt.Sprintf("Cache invalidated for %s: inode changed (cached: %d, current: %d)",
			path, cached.Inode, current.Inode))
		return MissReasonInode
	}
	if current.Size != cached.Size {
		util.LogDebug(fmt.Sprintf("Cache invalidated for %s: size changed (cached: %d, current: %d)",
			path, cached.Size, current.Size))
		return MissReasonSize
	}
	if current.ModTime != cached.ModTime {
		util.LogDebug(fmt.Sprintf("Cache invalidated for %s: modtime changed (cached: %d, current: %d)",
			path, cached.ModTime, current.ModTime))
		return MissReasonModTime
	}
	return MissReasonNone
}

func (c *RecordCache) Set(path string, objects []timeline.RawTimelineObject) error {
	info, err := util.GetFileInfo(path)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.entries[path] = cacheEntry{info: *info, objects: objects}
	c.mu.Unlock()

	return nil
}

func (c *RecordCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]cacheEntry)
}

func (c *RecordCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}
