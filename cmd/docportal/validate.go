package main

import (
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/docportal/internal/config"
	"git.home.luguber.info/inful/docportal/internal/docsconfig"
)

// runValidate loads the portal configuration and every per-version docs
// config, reporting the first structural problem found.
func runValidate(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	provider := docsconfig.NewFileProvider(cfg.Content.DocsConfigDir, slog.Default())
	for _, version := range cfg.Versions.Supported {
		if _, err := provider.ForVersion(version); err != nil {
			return fmt.Errorf("docs config for %s: %w", version, err)
		}
	}

	return nil
}
