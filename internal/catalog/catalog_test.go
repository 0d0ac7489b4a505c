package catalog

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	return path
}

func TestLoadDropsMalformedHashes(t *testing.T) {
	path := writeCatalog(t, `[
		{
			"name": "Ayaka",
			"type": "Character",
			"variants": [{"name": "Default", "aliases": ["kamisato ayaka"]}],
			"hashes": {"Default": ["0xD94C8962", "not-a-hash", "00000000abcd1234", "short"]}
		},
		{"name": "  ", "type": "Weapon"},
		{"name": "Mistsplitter", "type": "Weapon"}
	]`)
	entities, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(entities) != 2 {
		t.Fatalf("expected 2 entities, got %d", len(entities))
	}
	want := []string{"abcd1234", "d94c8962"}
	if got := entities[0].Hashes(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Hashes = %v, want %v", got, want)
	}
	if entities[1].Name != "Mistsplitter" {
		t.Fatalf("unexpected second entity %q", entities[1].Name)
	}
}

func TestLoadEmptyDatabaseIsValid(t *testing.T) {
	path := writeCatalog(t, `[]`)
	entities, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(entities) != 0 {
		t.Fatalf("expected empty catalog, got %d entities", len(entities))
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load("", nil); err == nil {
		t.Fatal("expected error for empty path")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json"), nil); err == nil {
		t.Fatal("expected error for missing file")
	}
	path := writeCatalog(t, `{not json`)
	if _, err := Load(path, nil); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}
