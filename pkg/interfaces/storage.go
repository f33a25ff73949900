package interfaces

import "context"

// ContentEntry identifies one document inside a content store.
type ContentEntry struct {
	// Name is the entry name relative to the store root (e.g. "hello.md").
	Name string
}

// ContentStore is the read-only source of post documents. Implementations
// list a flat collection of entries and read them whole.
type ContentStore interface {
	List(ctx context.Context) ([]ContentEntry, error)
	// Read returns the raw bytes of the named entry. Missing entries must
	// yield an error matching fs.ErrNotExist.
	Read(ctx context.Context, name string) ([]byte, error)
}
