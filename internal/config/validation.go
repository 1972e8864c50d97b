package config

import (
	"fmt"
	"time"

	derrors "git.home.luguber.info/inful/docportal/internal/errors"
)

// Validate checks the configuration for structural problems. Validation runs
// after defaults are applied, so empty optional fields are already filled.
func Validate(cfg *Config) error {
	v := &configurationValidator{config: cfg}
	return v.validate()
}

// configurationValidator coordinates validation across all configuration domains.
type configurationValidator struct {
	config *Config
}

func (cv *configurationValidator) validate() error {
	if err := cv.validateFrameworks(); err != nil {
		return err
	}
	if err := cv.validateVersions(); err != nil {
		return err
	}
	if err := cv.validatePrefs(); err != nil {
		return err
	}
	return cv.validateReload()
}

func (cv *configurationValidator) validateFrameworks() error {
	if len(cv.config.Frameworks) == 0 {
		return derrors.ConfigRequired("frameworks")
	}
	seen := make(map[string]bool, len(cv.config.Frameworks))
	for _, f := range cv.config.Frameworks {
		if f.Name == "" {
			return derrors.ValidationFailed("frameworks", "framework with empty name")
		}
		if seen[f.Name] {
			return derrors.ValidationFailed("frameworks", fmt.Sprintf("duplicate framework %q", f.Name))
		}
		seen[f.Name] = true
	}
	if !seen[cv.config.Versions.DefaultFramework] {
		return derrors.ValidationFailed("versions.default_framework",
			fmt.Sprintf("default framework %q is not in the registry", cv.config.Versions.DefaultFramework))
	}
	return nil
}

func (cv *configurationValidator) validateVersions() error {
	if len(cv.config.Versions.Supported) == 0 {
		return derrors.ConfigRequired("versions.supported")
	}
	seen := make(map[string]bool, len(cv.config.Versions.Supported))
	for _, v := range cv.config.Versions.Supported {
		if v == LatestAlias {
			// "latest" is synthesized; a configured literal would shadow it.
			return derrors.ValidationFailed("versions.supported", `"latest" is a reserved alias`)
		}
		if seen[v] {
			return derrors.ValidationFailed("versions.supported", fmt.Sprintf("duplicate version %q", v))
		}
		seen[v] = true
	}
	if !seen[cv.config.Versions.Default] {
		return derrors.ValidationFailed("versions.default",
			fmt.Sprintf("default version %q is not in supported versions", cv.config.Versions.Default))
	}
	return nil
}

func (cv *configurationValidator) validatePrefs() error {
	switch cv.config.Prefs.Store {
	case "cookie":
		return nil
	case "sqlite":
		if cv.config.Prefs.SQLitePath == "" {
			return derrors.ConfigRequired("preferences.sqlite_path")
		}
		return nil
	default:
		return derrors.ValidationFailed("preferences.store",
			fmt.Sprintf("unknown store %q (want cookie or sqlite)", cv.config.Prefs.Store))
	}
}

func (cv *configurationValidator) validateReload() error {
	if _, err := time.ParseDuration(cv.config.Reload.Interval); err != nil {
		return derrors.ValidationFailed("reload.interval", err.Error())
	}
	return nil
}

// ReloadInterval returns the parsed periodic reload interval. Validate has
// already checked the duration string.
func (c *Config) ReloadInterval() time.Duration {
	d, err := time.ParseDuration(c.Reload.Interval)
	if err != nil {
		return 5 * time.Minute
	}
	return d
}
