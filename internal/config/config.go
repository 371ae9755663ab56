// Package config resolves the bundler configuration.
//
// The raw schema carries an optional HTTP version plus individual
// overrides. HTTP/2 targets many small parallel requests, HTTP/1
// fewer, larger ones; explicit field overrides always win over the
// http-derived defaults. The PARCEL_CONFIG environment variable can
// point at a config file, mirroring how hosts select project config.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// ErrConfig indicates an invalid configuration value.
var ErrConfig = errors.New("invalid config")

// Raw is the config schema as written by users. Nil fields fall back
// to http-derived defaults.
type Raw struct {
	// HTTP selects the default profile: 1 or 2. Defaults to 2.
	HTTP *int `mapstructure:"http" yaml:"http,omitempty" json:"http,omitempty"`

	// MinBundles is reserved for future use; it is resolved and
	// carried but not consulted by the planner.
	MinBundles *int `mapstructure:"minBundles" yaml:"minBundles,omitempty" json:"minBundles,omitempty"`

	// MinBundleSize is the byte size below which shared bundles are
	// merged back into their sources.
	MinBundleSize *int `mapstructure:"minBundleSize" yaml:"minBundleSize,omitempty" json:"minBundleSize,omitempty"`

	// MaxParallelRequests caps the number of bundles in one bundle
	// group.
	MaxParallelRequests *int `mapstructure:"maxParallelRequests" yaml:"maxParallelRequests,omitempty" json:"maxParallelRequests,omitempty"`
}

// Resolved is the effective configuration consumed by the planner.
type Resolved struct {
	// MinBundles is reserved; see Raw.MinBundles.
	MinBundles int `json:"minBundles"`

	// MinBundleSize is the shared-bundle merge threshold in bytes.
	MinBundleSize int `json:"minBundleSize"`

	// MaxParallelRequests is the per-group bundle cap.
	MaxParallelRequests int `json:"maxParallelRequests"`
}

// http-derived default profiles.
var (
	http1Defaults = Resolved{MinBundles: 1, MinBundleSize: 30000, MaxParallelRequests: 6}
	http2Defaults = Resolved{MinBundles: 1, MinBundleSize: 20000, MaxParallelRequests: 25}
)

// Default returns the resolved defaults for HTTP/2.
func Default() Resolved {
	return http2Defaults
}

// Resolve applies http-derived defaults and field overrides.
func Resolve(raw Raw) (Resolved, error) {
	base := http2Defaults
	if raw.HTTP != nil {
		switch *raw.HTTP {
		case 1:
			base = http1Defaults
		case 2:
			base = http2Defaults
		default:
			return Resolved{}, fmt.Errorf("%w: http must be 1 or 2, got %d", ErrConfig, *raw.HTTP)
		}
	}
	if raw.MinBundles != nil {
		if *raw.MinBundles < 0 {
			return Resolved{}, fmt.Errorf("%w: minBundles must be nonnegative", ErrConfig)
		}
		base.MinBundles = *raw.MinBundles
	}
	if raw.MinBundleSize != nil {
		if *raw.MinBundleSize < 0 {
			return Resolved{}, fmt.Errorf("%w: minBundleSize must be nonnegative", ErrConfig)
		}
		base.MinBundleSize = *raw.MinBundleSize
	}
	if raw.MaxParallelRequests != nil {
		if *raw.MaxParallelRequests < 1 {
			return Resolved{}, fmt.Errorf("%w: maxParallelRequests must be positive", ErrConfig)
		}
		base.MaxParallelRequests = *raw.MaxParallelRequests
	}
	return base, nil
}

// Load reads and resolves a config file. An empty path falls back to
// the PARCEL_CONFIG environment variable; if that is unset too, the
// HTTP/2 defaults are returned.
func Load(path string) (Resolved, error) {
	if path == "" {
		path = os.Getenv("PARCEL_CONFIG")
	}
	if path == "" {
		return Default(), nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Resolved{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var raw Raw
	if err := v.Unmarshal(&raw); err != nil {
		return Resolved{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return Resolve(raw)
}
