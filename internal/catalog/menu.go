package catalog

import "github.com/vango-dev/toolbox/pkg/router"

// MenuItem is one entry of a category menu.
type MenuItem struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	Path  string `json:"path"`
}

// Menu lists the routes of category in table order. The menu is derived
// from the table's grouping metadata and is not part of the table.
func Menu(t *router.Table, category string) []MenuItem {
	defs := t.InCategory(category)
	items := make([]MenuItem, 0, len(defs))
	for _, d := range defs {
		title := d.Title
		if title == "" {
			title = d.Name
		}
		items = append(items, MenuItem{Name: d.Name, Title: title, Path: d.Path})
	}
	return items
}

// Section is a category with its menu, as listed on the home page.
type Section struct {
	Category string     `json:"category"`
	Title    string     `json:"title"`
	Path     string     `json:"path,omitempty"`
	Items    []MenuItem `json:"items"`
}

// Sections returns every category in order of first use.
func Sections(t *router.Table) []Section {
	pages := make(map[string]string)
	for name, category := range categoryPages {
		if def, ok := t.Lookup(name); ok {
			pages[category] = def.Path
		}
	}

	var out []Section
	for _, c := range t.Categories() {
		title := CategoryTitles[c]
		if title == "" {
			title = c
		}
		out = append(out, Section{Category: c, Title: title, Path: pages[c], Items: Menu(t, c)})
	}
	return out
}
