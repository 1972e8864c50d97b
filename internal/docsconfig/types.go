// Package docsconfig models the per-version documentation configuration and
// assembles the navigation shown on every docs page: the core menu merged with
// a framework-specific menu, plus framework and version selectors.
package docsconfig

import (
	"fmt"
	"strings"
)

// BadgeCore marks menu children originating from the core (framework-agnostic) menu.
const BadgeCore = "core"

// SearchSettings configures the client-side search widget.
type SearchSettings struct {
	Provider  string `yaml:"provider,omitempty" json:"provider,omitempty"`
	IndexName string `yaml:"index_name,omitempty" json:"indexName,omitempty"`
	APIKey    string `yaml:"api_key,omitempty" json:"apiKey,omitempty"`
}

// MenuChild is a single navigable link in a sidebar group. Badge identifies its
// origin: "core" or a framework name.
type MenuChild struct {
	Label string `yaml:"label" json:"label"`
	To    string `yaml:"to" json:"to"`
	Badge string `yaml:"badge,omitempty" json:"badge,omitempty"`
}

// MenuGroup is a labeled collection of menu children. The label doubles as the
// merge key between the core menu and framework menus.
type MenuGroup struct {
	Label    string      `yaml:"label" json:"label"`
	Children []MenuChild `yaml:"children" json:"children"`
}

// DocsConfig is the per-version documentation metadata bundle. It is immutable
// once loaded for a request; the assembler only reads it.
type DocsConfig struct {
	Search         SearchSettings         `yaml:"search,omitempty" json:"search"`
	Menu           []MenuGroup            `yaml:"menu" json:"menu"`
	FrameworkMenus map[string][]MenuGroup `yaml:"framework_menus,omitempty" json:"frameworkMenus,omitempty"`
}

// canonicalLabel normalizes a group label for merge matching so that
// whitespace or case drift between the core and framework menus does not
// silently break the label join.
func canonicalLabel(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

// ValidateMenus reports duplicate canonical group labels within the core menu
// or any framework menu. Duplicates are not fatal (the first match wins during
// merge) but they indicate label drift worth surfacing.
func ValidateMenus(cfg *DocsConfig) []string {
	var warnings []string
	warnings = append(warnings, duplicateLabels("menu", cfg.Menu)...)
	for name, groups := range cfg.FrameworkMenus {
		warnings = append(warnings, duplicateLabels("framework_menus."+name, groups)...)
	}
	return warnings
}

func duplicateLabels(where string, groups []MenuGroup) []string {
	seen := make(map[string]bool, len(groups))
	var warnings []string
	for _, g := range groups {
		key := canonicalLabel(g.Label)
		if seen[key] {
			warnings = append(warnings, fmt.Sprintf("%s: duplicate group label %q", where, g.Label))
		}
		seen[key] = true
	}
	return warnings
}
