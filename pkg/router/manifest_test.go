package router

import (
	"os"
	"path/filepath"
	"testing"
)

const testManifest = `
routes:
  - path: /
    name: Home
  - path: /query
    name: QueryPage
    view: CategoryPage
    title: Query
  - path: /oil-price
    name: OilPrice
    category: query
    title: Oil price
  - path: /random-girl-images
    view: GlassousSearch
`

func TestParseManifest(t *testing.T) {
	defs, err := ParseManifest([]byte(testManifest))
	if err != nil {
		t.Fatalf("ParseManifest() error = %v", err)
	}
	if len(defs) != 4 {
		t.Fatalf("len(defs) = %d, want 4", len(defs))
	}
	if defs[1].View != "CategoryPage" || defs[2].Category != "query" {
		t.Errorf("unexpected defs: %+v", defs)
	}
	if defs[3].Name != "" {
		t.Errorf("unnamed route should decode with empty name, got %q", defs[3].Name)
	}

	table := testTable(t, defs)
	if _, ok := table.Lookup("/random-girl-images"); !ok {
		t.Error("manifest table should contain the unnamed route")
	}
}

func TestParseManifestInvalid(t *testing.T) {
	if _, err := ParseManifest([]byte("routes: [")); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadManifestYAMLAndJSON(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "routes.yaml")
	if err := os.WriteFile(yamlPath, []byte(testManifest), 0o644); err != nil {
		t.Fatal(err)
	}
	defs, err := LoadManifest(yamlPath)
	if err != nil || len(defs) != 4 {
		t.Fatalf("LoadManifest(yaml) = %d defs, err %v", len(defs), err)
	}

	jsonPath := filepath.Join(dir, "routes.json")
	if err := os.WriteFile(jsonPath, []byte(`{"routes":[{"path":"/","name":"Home"}]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	defs, err = LoadManifest(jsonPath)
	if err != nil || len(defs) != 1 || defs[0].Name != "Home" {
		t.Fatalf("LoadManifest(json) = %+v, err %v", defs, err)
	}

	if _, err := LoadManifest(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestMarshalManifestRoundTrip(t *testing.T) {
	in := []RouteDefinition{{Path: "/", Name: "Home"}, {Path: "/tools", Name: "ToolsPage", View: "CategoryPage"}}
	data, err := MarshalManifest(in)
	if err != nil {
		t.Fatal(err)
	}
	out, err := ParseManifest(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 || out[1] != in[1] {
		t.Errorf("round trip = %+v", out)
	}
}
