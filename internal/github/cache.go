package github

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ReplayCache stores raw API responses on local disk for development replay.
// Entries are keyed by endpoint path plus sorted query parameters, so the
// same logical request always maps to the same file.
type ReplayCache struct {
	dir string
}

// NewReplayCache creates a cache rooted at dir. The directory is created
// lazily on the first write.
func NewReplayCache(dir string) *ReplayCache {
	return &ReplayCache{dir: dir}
}

// Get returns the cached response for a request, if present.
func (r *ReplayCache) Get(path string, params url.Values) ([]byte, bool) {
	data, err := os.ReadFile(r.filename(path, params))
	if err != nil {
		return nil, false
	}
	return data, true
}

// Put stores a response for a request.
func (r *ReplayCache) Put(path string, params url.Values, data []byte) error {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(r.filename(path, params), data, 0o644)
}

// filename derives a stable cache filename from the request key.
func (r *ReplayCache) filename(path string, params url.Values) string {
	sum := sha256.Sum256([]byte(cacheKey(path, params)))
	return filepath.Join(r.dir, hex.EncodeToString(sum[:16])+".json")
}

// cacheKey joins the path with its query parameters in sorted order.
func cacheKey(path string, params url.Values) string {
	if len(params) == 0 {
		return path
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString(path)
	for _, k := range keys {
		for _, v := range params[k] {
			sb.WriteString("&")
			sb.WriteString(k)
			sb.WriteString("=")
			sb.WriteString(v)
		}
	}
	return sb.String()
}
