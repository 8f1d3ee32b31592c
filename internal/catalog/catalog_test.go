package catalog

import (
	"context"
	"strings"
	"testing"

	"github.com/vango-dev/toolbox/internal/logging"
	"github.com/vango-dev/toolbox/pkg/history"
	"github.com/vango-dev/toolbox/pkg/nav"
	"github.com/vango-dev/toolbox/pkg/router"
	"github.com/vango-dev/toolbox/pkg/view"
)

func mustTable(t *testing.T) *router.Table {
	t.Helper()
	table, err := NewTable(router.WithTableLogger(logging.NewNop()), router.WithDuplicatePolicy(router.DuplicateReject))
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	return table
}

func TestTableIsClean(t *testing.T) {
	table := mustTable(t)

	if got := table.Diagnostics(); len(got) != 0 {
		t.Errorf("Diagnostics() = %v", got)
	}
	if table.Len() != len(Routes()) {
		t.Errorf("Len() = %d, want %d", table.Len(), len(Routes()))
	}
	if _, ok := table.Lookup(nav.DefaultFallback); !ok {
		t.Error("fallback route missing")
	}
}

func TestEveryPathResolvesToItsRoute(t *testing.T) {
	table := mustTable(t)
	m := router.NewMatcher(table)

	for _, def := range table.AllRoutes() {
		for _, p := range []string{def.Path, def.Path + "/", def.Path + "?from=menu"} {
			got, err := m.Match(p)
			if err != nil {
				t.Errorf("Match(%q): %v", p, err)
				continue
			}
			if got.Route.Name != def.Name {
				t.Errorf("Match(%q) = %s, want %s", p, got.Route.Name, def.Name)
			}
		}
	}
}

func TestRegistryCoversTable(t *testing.T) {
	table := mustTable(t)
	reg := NewRegistry(table, router.WithRegistryLogger(logging.NewNop()))

	if missing := reg.Missing(table); len(missing) != 0 {
		t.Errorf("Missing() = %v", missing)
	}
}

func TestMenus(t *testing.T) {
	table := mustTable(t)

	tests := []struct {
		category string
		count    int
		first    string
	}{
		{CategoryQuery, 5, "OilPrice"},
		{CategoryTools, 11, "ExchangeRate"},
		{CategoryEntertainment, 10, "GenshinImages"},
	}
	for _, tt := range tests {
		items := Menu(table, tt.category)
		if len(items) != tt.count {
			t.Errorf("Menu(%s) has %d items, want %d", tt.category, len(items), tt.count)
			continue
		}
		if items[0].Name != tt.first {
			t.Errorf("Menu(%s)[0] = %s, want %s", tt.category, items[0].Name, tt.first)
		}
	}

	sections := Sections(table)
	if len(sections) != 3 || sections[0].Category != CategoryTools || sections[0].Path != "/tools" {
		t.Errorf("Sections() = %+v", sections)
	}
}

func mount(t *testing.T, v view.View, target view.Target) Page {
	t.Helper()
	slot := view.NewMemorySlot(target)
	if err := v.Mount(context.Background(), slot); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	page, ok := slot.Content().(Page)
	if !ok {
		t.Fatalf("content = %T, want Page", slot.Content())
	}
	return page
}

func TestViews(t *testing.T) {
	table := mustTable(t)

	home := mount(t, HomeView(table), view.Target{Route: "Home", Path: "/"})
	if home.Kind != KindHome || len(home.Sections) != 3 || !strings.Contains(home.HTML, `href="/oil-price"`) {
		t.Errorf("home = %+v", home)
	}

	tools := mount(t, CategoryView(table), view.Target{Route: "ToolsPage", Path: "/tools"})
	if tools.Kind != KindCategory || tools.Category != CategoryTools || len(tools.Items) != 11 {
		t.Errorf("tools = %+v", tools)
	}

	oil := mount(t, FeatureView(table), view.Target{Route: "OilPrice", Path: "/oil-price"})
	if oil.Title != "Oil prices" || !strings.Contains(oil.HTML, `href="/query"`) {
		t.Errorf("oil = %+v", oil)
	}

	missing := mount(t, NotFoundView(), view.Target{Route: "NotFound", Path: "/<script>"})
	if strings.Contains(missing.HTML, "<script>") {
		t.Errorf("not-found page does not escape the path: %s", missing.HTML)
	}
}

func TestCategoryViewRejectsOtherRoutes(t *testing.T) {
	table := mustTable(t)
	slot := view.NewMemorySlot(view.Target{Route: "Home", Path: "/"})
	if err := CategoryView(table).Mount(context.Background(), slot); err == nil {
		t.Error("expected an error mounting a category view for Home")
	}
}

func TestNavigateCatalog(t *testing.T) {
	table := mustTable(t)
	reg := NewRegistry(table)
	h := history.NewMemory("/")
	c, err := nav.New(table, reg, h, nav.WithLogger(logging.NewNop()))
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	defer c.Close(ctx)

	if _, err := c.Start(ctx); err != nil {
		t.Fatal(err)
	}

	withSlash, _ := c.Navigate(ctx, "/oil-price/")
	without, _ := c.Navigate(ctx, "/oil-price")
	if withSlash.Route != "OilPrice" || without.Route != "OilPrice" || h.Len() != 2 {
		t.Errorf("oil price: %+v / %+v, history %d", withSlash, without, h.Len())
	}

	st, _ := c.Navigate(ctx, "/does-not-exist")
	if st.Route != "NotFound" || h.CurrentPath() != "/not-found" {
		t.Errorf("unknown path: %+v at %q", st, h.CurrentPath())
	}
	page := c.Slot().(*view.MemorySlot).Content().(Page)
	if page.Kind != KindNotFound {
		t.Errorf("page kind = %q", page.Kind)
	}
}
