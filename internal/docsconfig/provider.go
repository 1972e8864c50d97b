package docsconfig

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	derrors "git.home.luguber.info/inful/docportal/internal/errors"
)

// Provider resolves the base DocsConfig for a concrete version. The assembler
// treats the returned config as read-only.
type Provider interface {
	ForVersion(version string) (*DocsConfig, error)
}

// FileProvider loads per-version DocsConfig YAML files (<dir>/<version>.yaml)
// and caches them until Invalidate is called (config hot-reload).
type FileProvider struct {
	dir    string
	logger *slog.Logger

	mu    sync.RWMutex
	cache map[string]*DocsConfig
}

// NewFileProvider creates a provider reading from the given directory.
func NewFileProvider(dir string, logger *slog.Logger) *FileProvider {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileProvider{dir: dir, logger: logger, cache: make(map[string]*DocsConfig)}
}

// ForVersion returns the DocsConfig for a concrete version. The "latest" alias
// must be resolved to a concrete version before calling.
func (p *FileProvider) ForVersion(version string) (*DocsConfig, error) {
	p.mu.RLock()
	if cfg, ok := p.cache[version]; ok {
		p.mu.RUnlock()
		return cfg, nil
	}
	p.mu.RUnlock()

	path := filepath.Join(p.dir, version+".yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, derrors.UnknownVersion(version)
		}
		return nil, fmt.Errorf("failed to read docs config %s: %w", path, err)
	}

	var cfg DocsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, derrors.Wrap(err, derrors.CategoryConfig, derrors.SeverityError,
			"failed to parse docs config").WithContext("path", path)
	}

	// Label drift is surfaced but never fatal; the merge still takes the
	// first match per canonical label.
	for _, w := range ValidateMenus(&cfg) {
		p.logger.Warn("docs config label drift", "version", version, "warning", w)
	}

	p.mu.Lock()
	p.cache[version] = &cfg
	p.mu.Unlock()
	return &cfg, nil
}

// Invalidate drops all cached configs so the next request re-reads from disk.
func (p *FileProvider) Invalidate() {
	p.mu.Lock()
	p.cache = make(map[string]*DocsConfig)
	p.mu.Unlock()
}
