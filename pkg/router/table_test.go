package router

import (
	"errors"
	"testing"

	toolerrors "github.com/vango-dev/toolbox/internal/errors"
	"github.com/vango-dev/toolbox/internal/logging"
)

func testTable(t *testing.T, defs []RouteDefinition, opts ...TableOption) *Table {
	t.Helper()
	opts = append([]TableOption{WithTableLogger(logging.NewNop())}, opts...)
	table, err := NewTable(defs, opts...)
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}
	return table
}

func TestNewTablePreservesOrder(t *testing.T) {
	table := testTable(t, []RouteDefinition{
		{Path: "/", Name: "Home"},
		{Path: "/exchange-rate/", Name: "ExchangeRate", Category: "tools"},
		{Path: "/oil-price", Name: "OilPrice", Category: "query"},
	})

	routes := table.AllRoutes()
	if len(routes) != 3 {
		t.Fatalf("len(AllRoutes()) = %d, want 3", len(routes))
	}
	wantNames := []string{"Home", "ExchangeRate", "OilPrice"}
	for i, name := range wantNames {
		if routes[i].Name != name {
			t.Errorf("routes[%d].Name = %q, want %q", i, routes[i].Name, name)
		}
	}
	if routes[1].Path != "/exchange-rate" {
		t.Errorf("route path not canonicalized: %q", routes[1].Path)
	}

	// AllRoutes returns a copy.
	routes[0].Name = "Mutated"
	if r, _ := table.Lookup("Home"); r.Name != "Home" {
		t.Error("AllRoutes should not expose internal storage")
	}
}

func TestNewTableDuplicateNameKeepsFirst(t *testing.T) {
	table := testTable(t, []RouteDefinition{
		{Path: "/kfc-thursday", Name: "KFCThursday", Title: "X"},
		{Path: "/kfc-thursday", Name: "KFCThursday", Title: "Y"},
	})

	if table.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", table.Len())
	}
	r, ok := table.Lookup("KFCThursday")
	if !ok || r.Title != "X" {
		t.Errorf("Lookup() = %+v, want first declaration", r)
	}

	diags := table.Diagnostics()
	if len(diags) != 1 || diags[0].Kind != DiagnosticDuplicateName {
		t.Fatalf("Diagnostics() = %+v", diags)
	}
	if diags[0].Index != 1 || diags[0].FirstIndex != 0 {
		t.Errorf("diagnostic indexes = %d/%d", diags[0].Index, diags[0].FirstIndex)
	}
}

func TestNewTableDuplicateNameReject(t *testing.T) {
	_, err := NewTable([]RouteDefinition{
		{Path: "/a", Name: "A"},
		{Path: "/b", Name: "A"},
	}, WithDuplicatePolicy(DuplicateReject), WithTableLogger(logging.NewNop()))

	if !errors.Is(err, ErrDuplicateRouteName) {
		t.Fatalf("error = %v, want ErrDuplicateRouteName", err)
	}
	if toolerrors.CodeOf(err) != "N002" {
		t.Errorf("code = %q, want N002", toolerrors.CodeOf(err))
	}
}

func TestNewTableShadowedPath(t *testing.T) {
	table := testTable(t, []RouteDefinition{
		{Path: "/random-wallpaper", Name: "RandomWallpaper"},
		{Path: "/random-wallpaper/", Name: "RandomWallpaperV2"},
	})

	if table.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", table.Len())
	}
	diags := table.Diagnostics()
	if len(diags) != 1 || diags[0].Kind != DiagnosticShadowedPath || diags[0].Name != "RandomWallpaperV2" {
		t.Fatalf("Diagnostics() = %+v", diags)
	}
}

func TestNewTableUnnamedRoute(t *testing.T) {
	table := testTable(t, []RouteDefinition{
		{Path: "/random-girl-images", View: "GlassousSearch"},
	})

	r, ok := table.Lookup("/random-girl-images")
	if !ok {
		t.Fatal("unnamed route should be addressable by its path")
	}
	if r.ViewKey() != "GlassousSearch" {
		t.Errorf("ViewKey() = %q", r.ViewKey())
	}
	if diags := table.Diagnostics(); len(diags) != 1 || diags[0].Kind != DiagnosticUnnamed {
		t.Errorf("Diagnostics() = %+v", diags)
	}
}

func TestNewTableInvalidPath(t *testing.T) {
	for _, p := range []string{"", "oil-price", "/a?b=1", "/a#x", "/../x"} {
		_, err := NewTable([]RouteDefinition{{Path: p, Name: "X"}}, WithTableLogger(logging.NewNop()))
		if toolerrors.CodeOf(err) != "N005" {
			t.Errorf("NewTable(path=%q) error = %v, want N005", p, err)
		}
	}
}

func TestTableCategories(t *testing.T) {
	table := testTable(t, []RouteDefinition{
		{Path: "/", Name: "Home"},
		{Path: "/oil-price", Name: "OilPrice", Category: "query"},
		{Path: "/translate", Name: "Translate", Category: "tools"},
		{Path: "/gold-price", Name: "GoldPrice", Category: "query"},
	})

	cats := table.Categories()
	if len(cats) != 2 || cats[0] != "query" || cats[1] != "tools" {
		t.Errorf("Categories() = %v", cats)
	}
	q := table.InCategory("query")
	if len(q) != 2 || q[0].Name != "OilPrice" || q[1].Name != "GoldPrice" {
		t.Errorf("InCategory(query) = %+v", q)
	}
}

func TestViewKeyDefaultsToName(t *testing.T) {
	d := RouteDefinition{Name: "OilPrice"}
	if d.ViewKey() != "OilPrice" {
		t.Errorf("ViewKey() = %q", d.ViewKey())
	}
}

func TestParseDuplicatePolicy(t *testing.T) {
	if p, ok := ParseDuplicatePolicy(""); !ok || p != DuplicateKeepFirst {
		t.Error("empty policy should be keep-first")
	}
	if p, ok := ParseDuplicatePolicy("reject"); !ok || p != DuplicateReject {
		t.Error("reject should parse")
	}
	if _, ok := ParseDuplicatePolicy("merge"); ok {
		t.Error("unknown policy should not parse")
	}
}

func TestMustNewTablePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustNewTable should panic on invalid input")
		}
	}()
	MustNewTable([]RouteDefinition{{Path: "nope"}})
}
