package parser

import (
	"fmt"
	"os"
	"time"

	"github.com/bytedance/sonic"

	"github.com/penwyp/go-timeline-export/internal/core/timeline"
	"github.com/penwyp/go-timeline-export/internal/data/cache"
	"github.com/penwyp/go-timeline-export/internal/util"
)

// monthlyDocument is the top-level shape of one monthly export file.
type monthlyDocument struct {
	TimelineObjects []timeline.RawTimelineObject `json:"timelineObjects"`
}

// Parser decodes monthly Semantic Location History documents. Parsed files
// are cached by path and revalidated against size, mtime and inode, so
// repeated conversions over the same tree only re-read changed files.
type Parser struct {
	cache *cache.RecordCache
}

// NewParser creates a new Parser instance.
func NewParser() *Parser {
	return &Parser{
		cache: cache.NewRecordCache(),
	}
}

// ParseFile decodes the monthly document at path and returns its timeline
// objects in document order. A document without a timelineObjects array
// (key absent or null) is an error.
func (p *Parser) ParseFile(path string) ([]timeline.RawTimelineObject, error) {
	if result := p.cache.Get(path); result.Found {
		util.LogDebug(fmt.Sprintf("Cache hit: %s", path))
		return result.Objects, nil
	}

	util.LogDebug(fmt.Sprintf("Start parsing file: %s", path))
	start := time.Now()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var doc monthlyDocument
	if err := sonic.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if doc.TimelineObjects == nil {
		return nil, fmt.Errorf("parse %s: missing timelineObjects array", path)
	}

	// The file may vanish between the read and the stat; the parsed
	// objects are still good, so a failed store is not fatal.
	if err := p.cache.Set(path, doc.TimelineObjects); err != nil {
		util.LogDebug(fmt.Sprintf("Skipping cache store for %s: %v", path, err))
	}

	util.LogDebug(fmt.Sprintf("Parsed %s: %d timeline objects, duration %v",
		path, len(doc.TimelineObjects), time.Since(start)))

	return doc.TimelineObjects, nil
}
