package docsconfig

import (
	"sort"
	"strings"

	"git.home.luguber.info/inful/docportal/internal/config"
)

// SelectorOption is one choice in a selector. Href is the navigation target
// built by substituting the option value into the currently matched route, so
// selecting it can never produce a structurally invalid path.
type SelectorOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Href  string `json:"href"`
}

// SelectorState is the derived state of a framework or version selector.
// Constructed fresh per render.
type SelectorState struct {
	Label    string                    `json:"label"`
	Selected string                    `json:"selected"`
	Options  map[string]SelectorOption `json:"options"`
}

// Route is the currently matched route: its path template with chi-style
// {param} placeholders, the current parameter values, and the wildcard tail.
type Route struct {
	Template string
	Params   map[string]string
	Tail     string
}

// HrefWith renders the route with one parameter overridden, keeping every
// other segment of the current location intact.
func (r Route) HrefWith(key, value string) string {
	out := r.Template
	for k, v := range r.Params {
		if k == key {
			v = value
		}
		out = strings.ReplaceAll(out, "{"+k+"}", v)
	}
	out = strings.ReplaceAll(out, "*", r.Tail)
	return out
}

func buildFrameworkSelector(in Input, selected string) SelectorState {
	// Every framework that contributes a menu is selectable; the default
	// framework is always offered even when its menu is empty.
	values := make([]string, 0, len(in.Config.FrameworkMenus)+1)
	for name := range in.Config.FrameworkMenus {
		values = append(values, name)
	}
	if _, ok := in.Config.FrameworkMenus[in.DefaultFramework]; !ok {
		values = append(values, in.DefaultFramework)
	}
	sort.Strings(values)

	options := make(map[string]SelectorOption, len(values))
	for _, v := range values {
		label := v
		for _, f := range in.Registry {
			if f.Name == v {
				label = f.Label
				break
			}
		}
		options[v] = SelectorOption{Label: label, Value: v, Href: in.Route.HrefWith("framework", v)}
	}

	return SelectorState{Label: "Framework", Selected: selected, Options: options}
}

func buildVersionSelector(in Input) SelectorState {
	selected := in.Params.Version
	if selected == "" {
		selected = config.LatestAlias
	}

	values := append([]string{config.LatestAlias}, in.Versions...)
	options := make(map[string]SelectorOption, len(values))
	for _, v := range values {
		options[v] = SelectorOption{Label: v, Value: v, Href: in.Route.HrefWith("version", v)}
	}

	return SelectorState{Label: "Version", Selected: selected, Options: options}
}
