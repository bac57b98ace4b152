package importer

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat indicates no importer exists for a file's suffix.
var ErrUnsupportedFormat = errors.New("unsupported model format")

// Format identifies a model file format the host tool can import.
type Format string

const (
	FormatGLTF Format = "gltf"
	FormatOBJ  Format = "obj"
	FormatSTL  Format = "stl"
)

// FormatForPath maps a file path's suffix to an import format. Both .glb and
// .gltf dispatch to the glTF importer, matching the host tool's behavior.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".glb", ".gltf":
		return FormatGLTF, nil
	case ".obj":
		return FormatOBJ, nil
	case ".stl":
		return FormatSTL, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// ModelImporter is the host tool's native import capability. Implementations
// load the file into the live scene; errors are opaque to the pipeline and
// surface to the caller as-is.
type ModelImporter interface {
	Import(ctx context.Context, format Format, path string) error
}

// Collection is a named grouping of scene objects in the host tool.
type Collection interface {
	// Contains reports whether the object is already linked.
	Contains(object string) bool
	// Link adds the object to the collection.
	Link(object string) error
}

// Scene exposes the minimal view of the host tool's scene graph the
// pipeline needs: object enumeration and named groupings.
type Scene interface {
	// ObjectNames returns the identifiers of all objects currently in the
	// scene, in scene order.
	ObjectNames(ctx context.Context) ([]string, error)
	// Collection returns the named collection, creating it if absent.
	Collection(ctx context.Context, name string) (Collection, error)
}
