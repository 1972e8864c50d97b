// Package config loads and validates the portal configuration: server settings,
// site metadata, the framework registry, and the supported documentation versions.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the portal configuration
type Config struct {
	Server     ServerConfig      `yaml:"server"`
	Site       SiteConfig        `yaml:"site"`
	Content    ContentConfig     `yaml:"content"`
	Frameworks []Framework       `yaml:"frameworks"`
	Versions   VersionsConfig    `yaml:"versions"`
	Events     EventsConfig      `yaml:"events,omitempty"`
	Metrics    MetricsConfig     `yaml:"metrics,omitempty"`
	Prefs      PreferencesConfig `yaml:"preferences,omitempty"`
	Reload     ReloadConfig      `yaml:"reload,omitempty"`
}

// ServerConfig holds HTTP listener settings
type ServerConfig struct {
	Listen   string `yaml:"listen"`    // e.g. ":8080"
	BasePath string `yaml:"base_path"` // e.g. "/docs"
}

// SiteConfig holds site-wide presentation metadata (also the SEO defaults)
type SiteConfig struct {
	Title        string `yaml:"title"`
	Description  string `yaml:"description,omitempty"`
	PreviewImage string `yaml:"preview_image,omitempty"`
	HomeURL      string `yaml:"home_url,omitempty"`
	RepoURL      string `yaml:"repo_url,omitempty"`
	ChatURL      string `yaml:"chat_url,omitempty"`
}

// ContentConfig locates markdown content and per-version docs configs on disk
type ContentConfig struct {
	Dir           string `yaml:"dir"`             // markdown pages: <dir>/<version>/<framework|core>/<page>.md
	DocsConfigDir string `yaml:"docs_config_dir"` // per-version DocsConfig YAML: <dir>/<version>.yaml
}

// Framework describes one supported client framework in the registry
type Framework struct {
	Name  string `yaml:"name"`
	Label string `yaml:"label,omitempty"`
	Logo  string `yaml:"logo,omitempty"`
}

// VersionsConfig holds the supported documentation versions
type VersionsConfig struct {
	Supported        []string        `yaml:"supported"`
	Default          string          `yaml:"default"`
	DefaultFramework string          `yaml:"default_framework"`
	Discovery        DiscoveryConfig `yaml:"discovery,omitempty"`
}

// DiscoveryConfig enables discovering versions from the content checkout's git tags
type DiscoveryConfig struct {
	Enabled    bool   `yaml:"enabled"`
	RepoPath   string `yaml:"repo_path,omitempty"`
	TagPattern string `yaml:"tag_pattern,omitempty"`
}

// EventsConfig configures the optional NATS event publisher
type EventsConfig struct {
	Enabled bool   `yaml:"enabled"`
	NATSURL string `yaml:"nats_url,omitempty"`
	Subject string `yaml:"subject,omitempty"` // subject prefix
}

// MetricsConfig toggles the Prometheus endpoint
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// PreferencesConfig selects the framework preference store backend
type PreferencesConfig struct {
	Store      string `yaml:"store,omitempty"` // "cookie" (default) or "sqlite"
	SQLitePath string `yaml:"sqlite_path,omitempty"`
	CookieName string `yaml:"cookie_name,omitempty"`
}

// ReloadConfig tunes configuration hot-reload behavior
type ReloadConfig struct {
	Watch    bool   `yaml:"watch"`
	Interval string `yaml:"interval,omitempty"` // periodic fallback reload, e.g. "5m"
}

// Load loads configuration from the specified file
func Load(configPath string) (*Config, error) {
	// Load .env if present; absence is not an error.
	if err := godotenv.Load(); err == nil {
		fmt.Fprintln(os.Stderr, "Loaded environment variables from .env")
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expandedData), &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&config)

	if err := Validate(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Init creates a new configuration file with example content
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	example := Config{
		Server: ServerConfig{Listen: ":8080", BasePath: "/docs"},
		Site: SiteConfig{
			Title:       "Example Library",
			Description: "Documentation for the Example library",
			RepoURL:     "https://github.com/example/library",
			ChatURL:     "https://discord.gg/example",
		},
		Content: ContentConfig{Dir: "./content", DocsConfigDir: "./docsconfig"},
		Frameworks: []Framework{
			{Name: "react", Label: "React", Logo: "/logos/react.svg"},
			{Name: "solid", Label: "Solid", Logo: "/logos/solid.svg"},
			{Name: "vue", Label: "Vue", Logo: "/logos/vue.svg"},
		},
		Versions: VersionsConfig{
			Supported:        []string{"v1", "v2", "v3"},
			Default:          "v3",
			DefaultFramework: "react",
		},
		Reload: ReloadConfig{Watch: true, Interval: "5m"},
	}

	data, err := yaml.Marshal(&example)
	if err != nil {
		return fmt.Errorf("failed to marshal example config: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
