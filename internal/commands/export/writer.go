package exportcmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type writeCategory string

const (
	categoryIndex    writeCategory = "index"
	categorySlugs    writeCategory = "slugs"
	categoryPost     writeCategory = "post"
	categoryManifest writeCategory = "manifest"
)

// writeFileRequest describes a file write operation routed through the artifact writer.
type writeFileRequest struct {
	Path     string
	Content  io.Reader
	Category writeCategory
}

// artifactWriter abstracts where export outputs land.
type artifactWriter interface {
	EnsureDir(ctx context.Context, path string) error
	WriteFile(ctx context.Context, req writeFileRequest) error
}

// dirWriter writes artifacts below a local root directory.
type dirWriter struct {
	root string
}

func newDirWriter(root string) *dirWriter {
	return &dirWriter{root: filepath.Clean(root)}
}

func (w *dirWriter) EnsureDir(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(path) == "" || path == "." {
		return os.MkdirAll(w.root, 0o755)
	}
	target, err := w.resolve(path)
	if err != nil {
		return err
	}
	return os.MkdirAll(target, 0o755)
}

func (w *dirWriter) WriteFile(ctx context.Context, req writeFileRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if req.Content == nil {
		return errors.New("export: write requires content reader")
	}
	if strings.TrimSpace(req.Path) == "" {
		return errors.New("export: write requires path")
	}
	target, err := w.resolve(req.Path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("export: prepare %s: %w", req.Path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), ".export-*")
	if err != nil {
		return fmt.Errorf("export: write %s %s: %w", req.Category, req.Path, err)
	}
	if _, err := io.Copy(tmp, req.Content); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("export: write %s %s: %w", req.Category, req.Path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("export: write %s %s: %w", req.Category, req.Path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("export: write %s %s: %w", req.Category, req.Path, err)
	}
	return os.Rename(tmp.Name(), target)
}

// resolve joins rel to the root and rejects paths escaping it.
func (w *dirWriter) resolve(rel string) (string, error) {
	target := filepath.Join(w.root, filepath.FromSlash(rel))
	back, err := filepath.Rel(w.root, target)
	if err != nil || back == ".." || strings.HasPrefix(back, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("export: path %q escapes output directory", rel)
	}
	return target, nil
}
