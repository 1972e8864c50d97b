package main

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/docportal/internal/config"
	"git.home.luguber.info/inful/docportal/internal/docsconfig"
	"git.home.luguber.info/inful/docportal/internal/events"
	"git.home.luguber.info/inful/docportal/internal/logfields"
	"git.home.luguber.info/inful/docportal/internal/metrics"
	"git.home.luguber.info/inful/docportal/internal/prefs"
	"git.home.luguber.info/inful/docportal/internal/render"
	"git.home.luguber.info/inful/docportal/internal/server/httpserver"
	"git.home.luguber.info/inful/docportal/internal/versioning"
	"git.home.luguber.info/inful/docportal/internal/watch"
)

// runServe assembles the collaborators from configuration and serves until
// the context is canceled.
func runServe(ctx context.Context, configPath string, cfg *config.Config) error {
	if cfg.Versions.Discovery.Enabled {
		versions, err := versioning.DiscoverFromGit(cfg.Versions.Discovery.RepoPath, cfg.Versions.Discovery.TagPattern)
		if err != nil {
			slog.Warn("Version discovery failed, using configured versions", logfields.Error(err))
		} else if len(versions) > 0 {
			slog.Info("Discovered versions from content repository", "count", len(versions))
			cfg.Versions.Supported = versions
			cfg.Versions.Default = versions[0]
		}
	}

	provider := docsconfig.NewFileProvider(cfg.Content.DocsConfigDir, slog.Default())

	opts := httpserver.Options{
		Provider: provider,
		Renderer: render.New(cfg.Content.Dir),
	}

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	if cfg.Metrics.Enabled {
		pr := metrics.NewPrometheusRecorder(nil)
		recorder = pr
		opts.MetricsH = pr.Handler()
	}
	opts.Recorder = recorder

	switch cfg.Prefs.Store {
	case "sqlite":
		store, err := prefs.NewSQLiteStore(cfg.Prefs.SQLitePath)
		if err != nil {
			return err
		}
		defer store.Close()
		opts.Prefs = prefs.StoreResolver{Store: store}
		opts.PrefStore = store
	default:
		opts.Prefs = prefs.NewCookieStore(cfg.Prefs.CookieName)
	}

	if cfg.Events.Enabled {
		publisher, err := events.NewNATSPublisher(cfg.Events, slog.Default())
		if err != nil {
			// Analytics are optional; the portal serves without them.
			slog.Warn("NATS publisher unavailable", logfields.Error(err))
		} else {
			defer publisher.Close()
			opts.Publisher = publisher
		}
	}

	server := httpserver.New(cfg, opts)

	if cfg.Reload.Watch {
		reload := func() {
			updated, err := config.Load(configPath)
			if err != nil {
				slog.Error("Config reload failed, keeping current configuration", logfields.Error(err))
				recorder.IncConfigReload(false)
				return
			}
			server.Reload(updated)
			provider.Invalidate()
			recorder.IncConfigReload(true)
			if opts.Publisher != nil {
				opts.Publisher.ConfigReloaded(configPath)
			}
			slog.Info("Configuration reloaded", logfields.ConfigPath(configPath))
		}
		watcher, err := watch.NewConfigWatcher(configPath, cfg.ReloadInterval(), reload)
		if err != nil {
			return err
		}
		if err := watcher.Start(ctx); err != nil {
			return err
		}
		defer func() {
			if err := watcher.Stop(); err != nil {
				slog.Error("Failed to stop config watcher", logfields.Error(err))
			}
		}()
	}

	return server.Start(ctx)
}
