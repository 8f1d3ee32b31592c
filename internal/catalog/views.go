package catalog

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/vango-dev/toolbox/pkg/router"
	"github.com/vango-dev/toolbox/pkg/view"
)

// Page kinds.
const (
	KindHome     = "home"
	KindCategory = "category"
	KindFeature  = "feature"
	KindNotFound = "not-found"
)

// Page is the content every catalog view renders. HTML is the rendered
// markup; the other fields carry the same data for non-browser slots.
type Page struct {
	Kind     string     `json:"kind"`
	Title    string     `json:"title"`
	Route    string     `json:"route"`
	Path     string     `json:"path"`
	Category string     `json:"category,omitempty"`
	Sections []Section  `json:"sections,omitempty"`
	Items    []MenuItem `json:"items,omitempty"`
	HTML     string     `json:"html"`
}

var pages = template.Must(template.New("pages").Parse(`
{{define "home"}}<h1>{{.Title}}</h1>
{{range .Sections}}<section><h2><a href="{{.Path}}">{{.Title}}</a></h2>
<ul>{{range .Items}}<li><a href="{{.Path}}">{{.Title}}</a></li>{{end}}</ul></section>
{{end}}{{end}}
{{define "category"}}<h1>{{.Title}}</h1>
<ul class="menu">{{range .Items}}<li><a href="{{.Path}}">{{.Title}}</a></li>{{end}}</ul>
<a href="/">Back</a>{{end}}
{{define "feature"}}<article class="feature" data-feature="{{.Route}}"><h1>{{.Title}}</h1>
<div id="feature-root"></div>
{{if .Category}}<a href="/{{.Category}}">Back</a>{{else}}<a href="/">Back</a>{{end}}</article>{{end}}
{{define "not-found"}}<h1>{{.Title}}</h1>
<p>Nothing lives at <code>{{.Path}}</code>.</p>
<a href="/">Home</a>{{end}}
`))

func render(slot view.Slot, p Page) error {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, p.Kind, p); err != nil {
		return err
	}
	p.HTML = buf.String()
	return slot.Render(p)
}

// HomeView lists every category with its menu.
func HomeView(t *router.Table) view.View {
	return view.Func(func(ctx context.Context, slot view.Slot) error {
		return render(slot, Page{
			Kind:     KindHome,
			Title:    "Toolbox",
			Route:    slot.Route(),
			Path:     slot.Path(),
			Sections: Sections(t),
		})
	})
}

// CategoryView renders the menu of the category its route lists.
func CategoryView(t *router.Table) view.View {
	return view.Func(func(ctx context.Context, slot view.Slot) error {
		category, ok := CategoryOf(slot.Route())
		if !ok {
			return fmt.Errorf("route %q is not a category page", slot.Route())
		}
		title := CategoryTitles[category]
		return render(slot, Page{
			Kind:     KindCategory,
			Title:    title,
			Route:    slot.Route(),
			Path:     slot.Path(),
			Category: category,
			Items:    Menu(t, category),
		})
	})
}

// FeatureView renders the card of a leaf tool.
func FeatureView(t *router.Table) view.View {
	return view.Func(func(ctx context.Context, slot view.Slot) error {
		def, ok := t.Lookup(slot.Route())
		if !ok {
			return fmt.Errorf("route %q is not in the table", slot.Route())
		}
		title := def.Title
		if title == "" {
			title = def.Name
		}
		return render(slot, Page{
			Kind:     KindFeature,
			Title:    title,
			Route:    def.Name,
			Path:     slot.Path(),
			Category: def.Category,
		})
	})
}

// NotFoundView renders the fallback page.
func NotFoundView() view.View {
	return view.Func(func(ctx context.Context, slot view.Slot) error {
		return render(slot, Page{
			Kind:  KindNotFound,
			Title: "Page not found",
			Route: slot.Route(),
			Path:  slot.Path(),
		})
	})
}
