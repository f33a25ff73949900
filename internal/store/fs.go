package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

// ErrInvalidEntryName is returned when a read targets anything other than a
// plain entry name at the store root.
var ErrInvalidEntryName = errors.New("store: invalid entry name")

// FS exposes the regular files at the root of an fs.FS as content entries.
// Subdirectories are ignored.
type FS struct {
	fsys fs.FS
}

var _ interfaces.ContentStore = (*FS)(nil)

// NewFS wraps fsys.
func NewFS(fsys fs.FS) *FS {
	return &FS{fsys: fsys}
}

// NewDir returns a store over the local directory dir.
func NewDir(dir string) (*FS, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, fmt.Errorf("store: content directory required")
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("store: open content directory %q: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("store: %q is not a directory", dir)
	}
	return NewFS(os.DirFS(dir)), nil
}

// List returns the root entries in lexical order.
func (s *FS) List(ctx context.Context) ([]interfaces.ContentEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dirEntries, err := fs.ReadDir(s.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("store: list entries: %w", err)
	}

	entries := make([]interfaces.ContentEntry, 0, len(dirEntries))
	for _, entry := range dirEntries {
		if entry.IsDir() {
			continue
		}
		entries = append(entries, interfaces.ContentEntry{Name: entry.Name()})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// Read returns the bytes of the named root entry. Directories and other
// non-regular entries report fs.ErrNotExist, matching List.
func (s *FS) Read(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !IsPlainName(name) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEntryName, name)
	}
	info, err := fs.Stat(s.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", name, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("store: read %s: not a regular file: %w", name, fs.ErrNotExist)
	}
	data, err := fs.ReadFile(s.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", name, err)
	}
	return data, nil
}

// IsPlainName reports whether name addresses an entry at the store root
// without separators or relative segments.
func IsPlainName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.ContainsAny(name, `/\`) {
		return false
	}
	return path.Clean(name) == name && fs.ValidPath(name)
}
