package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/pixil98/go-testutil"
)

// labelSpec implements ValidatingSpec for testing
type labelSpec struct {
	Label string `json:"label"`
}

func (s *labelSpec) Validate() error {
	if s == nil {
		return fmt.Errorf("spec is required")
	}
	if s.Label == "" {
		return fmt.Errorf("label is required")
	}
	return nil
}

// writeAssets lays files out below a fresh directory and returns its path.
func writeAssets(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for name, body := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("creating %s: %v", name, err)
		}
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
	return root
}

const (
	woodAsset  = `{"version":1,"id":"Item.Material.Wood","spec":{"label":"wood"}}`
	swordAsset = `{"version":1,"id":"Item.Weapon.Sword","spec":{"label":"sword"}}`
)

func TestNewFileStore(t *testing.T) {
	tests := map[string]struct {
		files  map[string]string
		exp    map[string]*labelSpec
		expErr string
	}{
		"empty directory": {
			exp: map[string]*labelSpec{},
		},
		"assets in nested directories": {
			files: map[string]string{
				"wood.json":          woodAsset,
				"weapons/sword.json": swordAsset,
			},
			exp: map[string]*labelSpec{
				"Item.Material.Wood": {Label: "wood"},
				"Item.Weapon.Sword":  {Label: "sword"},
			},
		},
		"only json files are read": {
			files: map[string]string{
				"wood.json":     woodAsset,
				"README.md":     "# item assets",
				"wood.json.bak": "{",
			},
			exp: map[string]*labelSpec{
				"Item.Material.Wood": {Label: "wood"},
			},
		},
		"malformed json": {
			files:  map[string]string{"broken.json": `{"version":`},
			expErr: "loading broken.json",
		},
		"id is not a tag": {
			files:  map[string]string{"wood.json": `{"version":1,"id":"Item..Wood","spec":{"label":"wood"}}`},
			expErr: `tag "Item..Wood" is invalid`,
		},
		"missing id": {
			files:  map[string]string{"wood.json": `{"version":1,"spec":{"label":"wood"}}`},
			expErr: "id: tag must be set",
		},
		"missing version": {
			files:  map[string]string{"wood.json": `{"id":"Item.Material.Wood","spec":{"label":"wood"}}`},
			expErr: "version must be set",
		},
		"missing spec": {
			files:  map[string]string{"wood.json": `{"version":1,"id":"Item.Material.Wood"}`},
			expErr: "spec is required",
		},
		"spec rejected": {
			files:  map[string]string{"wood.json": `{"version":1,"id":"Item.Material.Wood","spec":{}}`},
			expErr: "validating wood.json: label is required",
		},
		"same id in two files": {
			files: map[string]string{
				"a.json": woodAsset,
				"b.json": woodAsset,
			},
			expErr: "loading b.json: duplicate id Item.Material.Wood",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			store, err := NewFileStore[*labelSpec](writeAssets(t, tt.files))

			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "records", store.GetAll(), tt.exp)
		})
	}
}

func TestNewFileStore_MissingRoot(t *testing.T) {
	_, err := NewFileStore[*labelSpec](filepath.Join(t.TempDir(), "absent"))
	if err == nil {
		t.Fatal("expected an error for a missing directory")
	}
}

func TestFileStore_Get(t *testing.T) {
	store, err := NewFileStore[*labelSpec](writeAssets(t, map[string]string{"wood.json": woodAsset}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "known", store.Get("Item.Material.Wood"), &labelSpec{Label: "wood"})
	testutil.AssertEqual(t, "unknown", store.Get("Item.Material.Stone"), (*labelSpec)(nil))
}

func TestFileStore_GetAllIsACopy(t *testing.T) {
	store, err := NewFileStore[*labelSpec](writeAssets(t, map[string]string{"wood.json": woodAsset}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	all := store.GetAll()
	delete(all, "Item.Material.Wood")
	all["Item.Material.Stone"] = &labelSpec{Label: "stone"}

	testutil.AssertEqual(t, "records", store.GetAll(), map[string]*labelSpec{
		"Item.Material.Wood": {Label: "wood"},
	})
}
