package ui

import (
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/charmbracelet/glamour"
)

// RenderCache provides hash-based caching for rendered content.
type RenderCache struct {
	mu      sync.Mutex
	entries map[uint64]string
	maxSize int
}

// NewRenderCache creates a new render cache with the specified max size.
func NewRenderCache(maxSize int) *RenderCache {
	if maxSize < 1 {
		maxSize = 1
	}
	return &RenderCache{
		entries: make(map[uint64]string),
		maxSize: maxSize,
	}
}

// ComputeKey generates a cache key from multiple inputs.
func ComputeKey(inputs ...interface{}) uint64 {
	h := fnv.New64a()
	for _, input := range inputs {
		switch v := input.(type) {
		case string:
			h.Write([]byte(v))
		case int:
			h.Write([]byte(strconv.Itoa(v)))
		case bool:
			h.Write([]byte(strconv.FormatBool(v)))
		}
		h.Write([]byte{0})
	}
	return h.Sum64()
}

// Len returns the number of cached entries.
func (rc *RenderCache) Len() int {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return len(rc.entries)
}

// GetOrCompute retrieves from cache or computes if missing. When the cache is
// full it is cleared before storing the new entry.
func (rc *RenderCache) GetOrCompute(key uint64, compute func() string) string {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	if content, ok := rc.entries[key]; ok {
		return content
	}
	content := compute()
	if len(rc.entries) >= rc.maxSize {
		rc.entries = make(map[uint64]string)
	}
	rc.entries[key] = content
	return content
}

// introCache holds glamour output per (markdown, width, theme). Resizing the
// terminal back and forth re-renders nothing.
var introCache = NewRenderCache(16)

// RenderMarkdown renders md with glamour at the given wrap width. On renderer
// failure the raw markdown is returned.
func RenderMarkdown(md string, width int, dark bool) string {
	if md == "" {
		return ""
	}
	if width < 20 {
		width = 20
	}
	return introCache.GetOrCompute(ComputeKey(md, width, dark), func() string {
		style := "light"
		if dark {
			style = "dark"
		}
		r, err := glamour.NewTermRenderer(
			glamour.WithStylePath(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return md
		}
		out, err := r.Render(md)
		if err != nil {
			return md
		}
		return out
	})
}
