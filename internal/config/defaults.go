package config

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// DefaultCookieName is the client preference cookie consulted when no
	// framework route parameter is present.
	DefaultCookieName = "docportal_framework"

	// LatestAlias is the synthetic version alias resolving to the default version.
	LatestAlias = "latest"
)

var titleCaser = cases.Title(language.English)

// applyDefaults fills in unset fields after unmarshaling.
func applyDefaults(cfg *Config) {
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Server.BasePath == "" {
		cfg.Server.BasePath = "/docs"
	}
	cfg.Server.BasePath = "/" + strings.Trim(cfg.Server.BasePath, "/")

	if cfg.Site.Title == "" {
		cfg.Site.Title = "Documentation"
	}
	if cfg.Content.Dir == "" {
		cfg.Content.Dir = "./content"
	}
	if cfg.Content.DocsConfigDir == "" {
		cfg.Content.DocsConfigDir = "./docsconfig"
	}

	// A framework without an explicit label gets a title-cased one.
	for i := range cfg.Frameworks {
		if cfg.Frameworks[i].Label == "" {
			cfg.Frameworks[i].Label = titleCaser.String(cfg.Frameworks[i].Name)
		}
	}

	if cfg.Versions.Default == "" && len(cfg.Versions.Supported) > 0 {
		cfg.Versions.Default = cfg.Versions.Supported[len(cfg.Versions.Supported)-1]
	}
	if cfg.Versions.DefaultFramework == "" && len(cfg.Frameworks) > 0 {
		cfg.Versions.DefaultFramework = cfg.Frameworks[0].Name
	}
	if cfg.Versions.Discovery.TagPattern == "" {
		cfg.Versions.Discovery.TagPattern = "v*"
	}

	if cfg.Events.Subject == "" {
		cfg.Events.Subject = "docportal"
	}
	if cfg.Prefs.Store == "" {
		cfg.Prefs.Store = "cookie"
	}
	if cfg.Prefs.CookieName == "" {
		cfg.Prefs.CookieName = DefaultCookieName
	}
	if cfg.Reload.Interval == "" {
		cfg.Reload.Interval = "5m"
	}
}

// CanonicalDefaultPath is the redirect target for requests lacking a version
// segment: <base>/<latest>/<default framework>/.
func (c *Config) CanonicalDefaultPath() string {
	return c.Server.BasePath + "/" + LatestAlias + "/" + c.Versions.DefaultFramework + "/"
}

// FrameworkByName looks up a registry entry; ok is false for unknown names.
func (c *Config) FrameworkByName(name string) (Framework, bool) {
	for _, f := range c.Frameworks {
		if f.Name == name {
			return f, true
		}
	}
	return Framework{}, false
}
