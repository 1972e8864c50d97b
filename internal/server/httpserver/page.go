package httpserver

import (
	"html/template"

	"git.home.luguber.info/inful/docportal/internal/docsconfig"
)

// pageData feeds the HTML shell around a rendered documentation page.
type pageData struct {
	Head template.HTML
	Nav  docsconfig.AssembledNav
	Body template.HTML
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
{{.Head}}</head>
<body>
<header class="selectors">
<nav aria-label="{{.Nav.FrameworkSelector.Label}}">
{{range .Nav.FrameworkSelector.Options}}<a href="{{.Href}}"{{if eq .Value $.Nav.FrameworkSelector.Selected}} aria-current="true"{{end}}>{{.Label}}</a>
{{end}}</nav>
<nav aria-label="{{.Nav.VersionSelector.Label}}">
{{range .Nav.VersionSelector.Options}}<a href="{{.Href}}"{{if eq .Value $.Nav.VersionSelector.Selected}} aria-current="true"{{end}}>{{.Label}}</a>
{{end}}</nav>
</header>
<aside class="sidebar">
{{range .Nav.Menu}}<section>
<h2>{{.Label}}</h2>
<ul>
{{range .Children}}<li><a href="{{.To}}">{{.Label}}</a>{{if .Badge}} <span class="badge">{{.Badge}}</span>{{end}}</li>
{{end}}</ul>
</section>
{{end}}</aside>
<main>
{{.Body}}
</main>
</body>
</html>
`))
