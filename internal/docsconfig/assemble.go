package docsconfig

import (
	"git.home.luguber.info/inful/docportal/internal/config"
)

// RouteParams are the framework/version pair extracted from the request URL.
// Either may be empty; resolution falls back to preference and defaults.
type RouteParams struct {
	Framework string
	Version   string
}

// Input carries everything the assembler needs for one request. Config is the
// base DocsConfig already resolved for the requested version by the provider.
type Input struct {
	Params           RouteParams
	Preference       string // stored framework preference, empty if none
	Config           *DocsConfig
	Registry         []config.Framework
	DefaultFramework string
	Versions         []string // supported versions, configured order
	Site             config.SiteConfig
	Route            Route // currently matched route, for selector targets
}

// AssembledNav is the fully derived navigation state for one page render.
type AssembledNav struct {
	Framework         string         `json:"framework"`
	Menu              []MenuGroup    `json:"menu"`
	FrameworkSelector SelectorState  `json:"frameworkSelector"`
	VersionSelector   SelectorState  `json:"versionSelector"`
	Search            SearchSettings `json:"search"`
}

// Assemble derives the merged menu and selector state from route parameters
// and the fetched base config. It is pure: no I/O, no failure modes. A missing
// framework menu degrades to an empty supplemental menu.
func Assemble(in Input) AssembledNav {
	framework := resolveFirst(
		func() (string, bool) { return in.Params.Framework, in.Params.Framework != "" },
		func() (string, bool) { return in.Preference, in.Preference != "" },
		func() (string, bool) { return in.DefaultFramework, true },
	)

	frameworkMenu := in.Config.FrameworkMenus[framework]

	menu := make([]MenuGroup, 0, len(in.Config.Menu)+len(frameworkMenu)+1)
	menu = append(menu, localNavGroup(in.Site))
	menu = append(menu, MergeMenus(in.Config.Menu, frameworkMenu, framework)...)

	return AssembledNav{
		Framework:         framework,
		Menu:              menu,
		FrameworkSelector: buildFrameworkSelector(in, framework),
		VersionSelector:   buildVersionSelector(in),
		Search:            in.Config.Search,
	}
}

// resolveFirst runs an ordered chain of optional lookups and returns the first
// hit. The final lookup is expected to always succeed.
func resolveFirst(lookups ...func() (string, bool)) string {
	for _, lookup := range lookups {
		if v, ok := lookup(); ok {
			return v
		}
	}
	return ""
}

// MergeMenus joins a framework menu into the core menu by canonical group
// label. Core children are tagged "core", matched framework children are
// tagged with the framework name, and framework groups with no core
// counterpart are appended at the end. Core group order is preserved and no
// group is ever dropped.
func MergeMenus(core, framework []MenuGroup, badge string) []MenuGroup {
	supplemental := tagGroups(framework, badge)
	used := make([]bool, len(supplemental))

	merged := make([]MenuGroup, 0, len(core)+len(supplemental))
	for _, g := range core {
		out := MenuGroup{Label: g.Label, Children: tagChildren(g.Children, BadgeCore)}
		for i, fg := range supplemental {
			if !used[i] && canonicalLabel(fg.Label) == canonicalLabel(g.Label) {
				out.Children = append(out.Children, fg.Children...)
				used[i] = true
				break
			}
		}
		merged = append(merged, out)
	}
	for i, fg := range supplemental {
		if !used[i] {
			merged = append(merged, fg)
		}
	}
	return merged
}

func tagGroups(groups []MenuGroup, badge string) []MenuGroup {
	tagged := make([]MenuGroup, len(groups))
	for i, g := range groups {
		tagged[i] = MenuGroup{Label: g.Label, Children: tagChildren(g.Children, badge)}
	}
	return tagged
}

func tagChildren(children []MenuChild, badge string) []MenuChild {
	tagged := make([]MenuChild, len(children))
	for i, c := range children {
		c.Badge = badge
		tagged[i] = c
	}
	return tagged
}

// localNavGroup is the fixed group prepended ahead of the merged menu: home,
// repository and community chat links. Links without a configured URL are
// omitted; home always points somewhere.
func localNavGroup(site config.SiteConfig) MenuGroup {
	home := site.HomeURL
	if home == "" {
		home = "/"
	}
	g := MenuGroup{Label: "Links", Children: []MenuChild{{Label: "Home", To: home}}}
	if site.RepoURL != "" {
		g.Children = append(g.Children, MenuChild{Label: "GitHub", To: site.RepoURL})
	}
	if site.ChatURL != "" {
		g.Children = append(g.Children, MenuChild{Label: "Discord", To: site.ChatURL})
	}
	return g
}
