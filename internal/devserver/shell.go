package devserver

import (
	"bytes"
	"html/template"

	"github.com/vango-dev/toolbox/internal/catalog"
	"github.com/vango-dev/toolbox/pkg/live"
)

var shellTemplate = template.Must(template.New("shell").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
</head>
<body>
<nav><a href="/">{{.Name}}</a> · <a href="/query">Queries</a> · <a href="/tools">Tools</a> · <a href="/entertainment">Entertainment</a></nav>
<main id="app" data-route="{{.Route}}">{{.Body}}</main>
{{.Script}}
</body>
</html>
`))

type shellData struct {
	Name   string
	Title  string
	Route  string
	Body   template.HTML
	Script template.HTML
}

func renderShell(name string, route string, content any, passthrough []string) ([]byte, error) {
	data := shellData{
		Name:   name,
		Title:  name,
		Route:  route,
		Script: template.HTML(live.ClientScript(passthrough...)),
	}
	if page, ok := content.(catalog.Page); ok {
		data.Title = page.Title + " · " + name
		// Page markup comes out of html/template and is already escaped.
		data.Body = template.HTML(page.HTML)
	}

	var buf bytes.Buffer
	if err := shellTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
