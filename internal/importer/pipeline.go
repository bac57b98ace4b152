package importer

import (
	"context"
	"fmt"
)

// Result reports what one import produced. Objects holds the identifiers of
// scene objects that did not exist before the import, in scene order.
type Result struct {
	Objects []string
}

// Count returns the number of newly created objects.
func (r Result) Count() int {
	return len(r.Objects)
}

// Pipeline drives one format-dispatched import and routes the resulting
// objects into a named collection.
type Pipeline struct {
	importer ModelImporter
	scene    Scene
}

// NewPipeline builds a Pipeline around the host tool's capabilities.
func NewPipeline(importer ModelImporter, scene Scene) *Pipeline {
	return &Pipeline{importer: importer, scene: scene}
}

// ImportAndGroup imports the file at path and links every newly created
// object into the named collection. New objects are detected by diffing the
// scene's object set before and after the import, because the host import
// capability does not report what it created. An empty collection name
// skips grouping; re-linking an already linked object is a no-op.
func (p *Pipeline) ImportAndGroup(ctx context.Context, path, collectionName string) (Result, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return Result{}, err
	}

	before, err := p.scene.ObjectNames(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("snapshot scene: %w", err)
	}

	if err := p.importer.Import(ctx, format, path); err != nil {
		return Result{}, err
	}

	after, err := p.scene.ObjectNames(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("snapshot scene: %w", err)
	}

	created := diffObjects(before, after)
	result := Result{Objects: created}

	if collectionName == "" || len(created) == 0 {
		return result, nil
	}

	collection, err := p.scene.Collection(ctx, collectionName)
	if err != nil {
		return Result{}, fmt.Errorf("collection %q: %w", collectionName, err)
	}
	for _, object := range created {
		if collection.Contains(object) {
			continue
		}
		if err := collection.Link(object); err != nil {
			return Result{}, fmt.Errorf("link %q into %q: %w", object, collectionName, err)
		}
	}

	return result, nil
}

// diffObjects returns the names present in after but not before, preserving
// the order they appear in after.
func diffObjects(before, after []string) []string {
	seen := make(map[string]bool, len(before))
	for _, name := range before {
		seen[name] = true
	}

	var created []string
	for _, name := range after {
		if !seen[name] {
			created = append(created, name)
			seen[name] = true
		}
	}
	return created
}
