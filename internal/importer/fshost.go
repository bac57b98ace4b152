package importer

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FileHost is the standalone import capability used when the bridge runs
// outside a 3D tool: imported models land in a local library directory and
// collections become subdirectories. Inside a host tool these interfaces
// are bound to the tool's native importers and scene graph instead.
type FileHost struct {
	root string
}

// NewFileHost creates the library directory if needed and returns a host
// rooted there.
func NewFileHost(root string) (*FileHost, error) {
	if strings.TrimSpace(root) == "" {
		return nil, fmt.Errorf("library root is empty")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create library dir: %w", err)
	}
	return &FileHost{root: root}, nil
}

// Root returns the library directory.
func (h *FileHost) Root() string {
	return h.root
}

// Import copies the payload into the library. The stored file keeps the
// payload's base name, so one import yields one new object.
func (h *FileHost) Import(ctx context.Context, format Format, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_ = format // every supported format is stored the same way

	src, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open payload: %w", err)
	}
	defer func() { _ = src.Close() }()

	dst, err := os.Create(filepath.Join(h.root, filepath.Base(path)))
	if err != nil {
		return fmt.Errorf("create library file: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return fmt.Errorf("copy payload: %w", err)
	}
	return dst.Close()
}

// ObjectNames lists the library's top-level files in name order.
func (h *FileHost) ObjectNames(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(h.root)
	if err != nil {
		return nil, fmt.Errorf("read library dir: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Collection returns the named subdirectory, creating it if absent. Names
// must be plain path segments so a configured collection cannot escape the
// library root.
func (h *FileHost) Collection(ctx context.Context, name string) (Collection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if name != filepath.Base(name) || name == "." || name == ".." {
		return nil, fmt.Errorf("invalid collection name %q", name)
	}
	dir := filepath.Join(h.root, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create collection dir: %w", err)
	}
	return &fileCollection{root: h.root, dir: dir}, nil
}

type fileCollection struct {
	root string
	dir  string
}

func (c *fileCollection) Contains(object string) bool {
	_, err := os.Stat(filepath.Join(c.dir, object))
	return err == nil
}

func (c *fileCollection) Link(object string) error {
	src := filepath.Join(c.root, object)
	dst := filepath.Join(c.dir, object)
	if err := os.Link(src, dst); err == nil {
		return nil
	}
	// Hard links can fail across filesystems or on exotic mounts; fall
	// back to a plain copy.
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open object: %w", err)
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create link target: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("copy object: %w", err)
	}
	return out.Close()
}
