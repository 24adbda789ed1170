package tilemap

import (
	"fmt"
	"io/fs"
	"os"
)

// Loader reads maps from a filesystem and caches them by path.
type Loader struct {
	fsys  fs.FS
	cache map[string]*Map
}

// NewLoader creates a map loader over fsys.
func NewLoader(fsys fs.FS) *Loader {
	return &Loader{
		fsys:  fsys,
		cache: make(map[string]*Map),
	}
}

// NewDirLoader creates a map loader rooted at a directory on disk.
func NewDirLoader(dir string) *Loader {
	return NewLoader(os.DirFS(dir))
}

// Load returns the map at path, parsing it on first use.
func (l *Loader) Load(path string) (*Map, error) {
	if m, ok := l.cache[path]; ok {
		return m, nil
	}

	data, err := fs.ReadFile(l.fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read map %s: %w", path, err)
	}

	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load map %s: %w", path, err)
	}

	l.cache[path] = m
	return m, nil
}

// Invalidate drops a cached map. An empty path clears the whole cache.
func (l *Loader) Invalidate(path string) {
	if path == "" {
		clear(l.cache)
		return
	}
	delete(l.cache, path)
}
