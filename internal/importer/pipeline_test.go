package importer

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

// fakeScene is an in-memory scene graph for pipeline tests.
type fakeScene struct {
	objects     []string
	collections map[string]*fakeCollection
}

func newFakeScene(objects ...string) *fakeScene {
	return &fakeScene{objects: objects, collections: map[string]*fakeCollection{}}
}

func (s *fakeScene) ObjectNames(ctx context.Context) ([]string, error) {
	dup := make([]string, len(s.objects))
	copy(dup, s.objects)
	return dup, nil
}

func (s *fakeScene) Collection(ctx context.Context, name string) (Collection, error) {
	if c, ok := s.collections[name]; ok {
		return c, nil
	}
	c := &fakeCollection{members: map[string]bool{}}
	s.collections[name] = c
	return c, nil
}

type fakeCollection struct {
	members map[string]bool
	links   int
}

func (c *fakeCollection) Contains(object string) bool {
	return c.members[object]
}

func (c *fakeCollection) Link(object string) error {
	c.members[object] = true
	c.links++
	return nil
}

// fakeImporter appends objects to the scene when invoked.
type fakeImporter struct {
	scene   *fakeScene
	creates []string
	err     error
	formats []Format
}

func (i *fakeImporter) Import(ctx context.Context, format Format, path string) error {
	i.formats = append(i.formats, format)
	if i.err != nil {
		return i.err
	}
	i.scene.objects = append(i.scene.objects, i.creates...)
	return nil
}

func TestFormatForPath(t *testing.T) {
	cases := []struct {
		path string
		want Format
	}{
		{"/tmp/model.glb", FormatGLTF},
		{"/tmp/model.GLTF", FormatGLTF},
		{"/tmp/model.obj", FormatOBJ},
		{"/tmp/model.stl", FormatSTL},
	}
	for _, tc := range cases {
		got, err := FormatForPath(tc.path)
		if err != nil {
			t.Fatalf("FormatForPath(%q) returned error: %v", tc.path, err)
		}
		if got != tc.want {
			t.Fatalf("FormatForPath(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}

	if _, err := FormatForPath("/tmp/model.fbx"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("FormatForPath(.fbx) error = %v, want ErrUnsupportedFormat", err)
	}
	if _, err := FormatForPath("/tmp/model"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("FormatForPath(no ext) error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestImportAndGroup_CountsOnlyNewObjects(t *testing.T) {
	scene := newFakeScene("Cube", "Light")
	imp := &fakeImporter{scene: scene, creates: []string{"Mesh.001", "Mesh.002", "Mesh.003"}}
	p := NewPipeline(imp, scene)

	result, err := p.ImportAndGroup(context.Background(), "/tmp/model.glb", "Store3D Imports")
	if err != nil {
		t.Fatalf("ImportAndGroup returned error: %v", err)
	}
	if result.Count() != 3 {
		t.Fatalf("Count = %d, want 3", result.Count())
	}
	want := []string{"Mesh.001", "Mesh.002", "Mesh.003"}
	if !reflect.DeepEqual(result.Objects, want) {
		t.Fatalf("Objects = %v, want %v", result.Objects, want)
	}
	if len(imp.formats) != 1 || imp.formats[0] != FormatGLTF {
		t.Fatalf("importer formats = %v, want one glTF dispatch", imp.formats)
	}

	collection := scene.collections["Store3D Imports"]
	if collection == nil {
		t.Fatalf("collection was not created")
	}
	if collection.links != 3 {
		t.Fatalf("links = %d, want 3", collection.links)
	}
}

func TestImportAndGroup_PreExistingNamesDoNotCount(t *testing.T) {
	scene := newFakeScene("Cube")
	// The importer "re-creates" an existing name plus one genuinely new
	// object; only the new one may count.
	imp := &fakeImporter{scene: scene, creates: []string{"Cube", "Mesh.001"}}
	p := NewPipeline(imp, scene)

	result, err := p.ImportAndGroup(context.Background(), "/tmp/model.obj", "")
	if err != nil {
		t.Fatalf("ImportAndGroup returned error: %v", err)
	}
	if result.Count() != 1 || result.Objects[0] != "Mesh.001" {
		t.Fatalf("Objects = %v, want [Mesh.001]", result.Objects)
	}
}

func TestImportAndGroup_RelinkIsIdempotent(t *testing.T) {
	scene := newFakeScene()
	imp := &fakeImporter{scene: scene, creates: []string{"Mesh.001", "Mesh.002"}}
	p := NewPipeline(imp, scene)

	// Pre-link one of the objects the import will produce.
	pre, err := scene.Collection(context.Background(), "Imports")
	if err != nil {
		t.Fatalf("Collection: %v", err)
	}
	if err := pre.Link("Mesh.001"); err != nil {
		t.Fatalf("Link: %v", err)
	}

	result, err := p.ImportAndGroup(context.Background(), "/tmp/model.stl", "Imports")
	if err != nil {
		t.Fatalf("ImportAndGroup returned error: %v", err)
	}
	if result.Count() != 2 {
		t.Fatalf("Count = %d, want 2 (re-link must not double count)", result.Count())
	}
	if scene.collections["Imports"].links != 2 {
		t.Fatalf("links = %d, want 2 (one pre-link, one new link)", scene.collections["Imports"].links)
	}
}

func TestImportAndGroup_EmptyCollectionNameSkipsGrouping(t *testing.T) {
	scene := newFakeScene()
	imp := &fakeImporter{scene: scene, creates: []string{"Mesh.001"}}
	p := NewPipeline(imp, scene)

	result, err := p.ImportAndGroup(context.Background(), "/tmp/model.glb", "")
	if err != nil {
		t.Fatalf("ImportAndGroup returned error: %v", err)
	}
	if result.Count() != 1 {
		t.Fatalf("Count = %d, want 1", result.Count())
	}
	if len(scene.collections) != 0 {
		t.Fatalf("collections = %v, want none created", scene.collections)
	}
}

func TestImportAndGroup_UnsupportedSuffixFailsBeforeImport(t *testing.T) {
	scene := newFakeScene()
	imp := &fakeImporter{scene: scene}
	p := NewPipeline(imp, scene)

	_, err := p.ImportAndGroup(context.Background(), "/tmp/model.fbx", "Imports")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("error = %v, want ErrUnsupportedFormat", err)
	}
	if len(imp.formats) != 0 {
		t.Fatalf("importer was invoked for an unsupported suffix")
	}
}

func TestImportAndGroup_ImporterErrorSurfacesAsIs(t *testing.T) {
	scene := newFakeScene()
	hostErr := errors.New("host importer exploded")
	imp := &fakeImporter{scene: scene, err: hostErr}
	p := NewPipeline(imp, scene)

	_, err := p.ImportAndGroup(context.Background(), "/tmp/model.glb", "Imports")
	if !errors.Is(err, hostErr) {
		t.Fatalf("error = %v, want the host error unchanged", err)
	}
	if len(scene.collections) != 0 {
		t.Fatalf("grouping ran despite import failure")
	}
}
