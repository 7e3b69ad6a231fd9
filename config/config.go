// Package config provides standardized runtime configuration.
//
// Settings are read from a TOML file holding one section per environment,
// then overridden by environment variables:
//
//	overrides > env vars > [<ENV>] section > [default] section > values already in the target struct
package config

import (
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	koanffs "github.com/knadh/koanf/providers/fs"

	"github.com/zircuit-labs/zkr-go-iter/xerrors/errclass"
	"github.com/zircuit-labs/zkr-go-iter/xerrors/stacktrace"
)

const (
	defaultEnv           = "default"
	defaultEnvPrefix     = "FLATTEN_"
	defaultEnvSeparator  = "_"
	defaultConfSeparator = "."
	defaultSettingsPath  = "settings.toml"

	envVarName = "ENV"
)

type options struct {
	defaultEnv   string
	envPrefix    string
	filepath     string
	separator    string
	envSeparator string
	overrides    map[string]any
}

// Option is an option func for NewConfiguration.
type Option func(options *options) error

// WithDefaultEnv sets the name of the default environment.
func WithDefaultEnv(env string) Option {
	return func(options *options) error {
		options.defaultEnv = env
		return nil
	}
}

// WithEnvPrefix sets the environment variable prefix.
func WithEnvPrefix(prefix string) Option {
	return func(options *options) error {
		if prefix == "" {
			return errclass.WrapAs(stacktrace.Wrap(fmt.Errorf("empty env prefix")), errclass.Persistent)
		}
		options.envPrefix = prefix
		return nil
	}
}

// WithFilePath sets the path to the TOML file within the file system.
func WithFilePath(path string) Option {
	return func(options *options) error {
		options.filepath = path
		return nil
	}
}

// WithSeparator sets the path separator to be used internally.
func WithSeparator(separator string) Option {
	return func(options *options) error {
		options.separator = separator
		return nil
	}
}

// WithEnvSeparator sets the environment variable separator.
func WithEnvSeparator(separator string) Option {
	return func(options *options) error {
		options.envSeparator = separator
		return nil
	}
}

// WithOverrides sets values that take precedence over every other source, eg command line flags.
// Keys use the configuration separator.
func WithOverrides(overrides map[string]any) Option {
	return func(options *options) error {
		options.overrides = overrides
		return nil
	}
}

// Configuration is a wrapper for koanf to hide complexity.
type Configuration struct {
	k   *koanf.Koanf
	env string
}

func persistent(err error) error {
	return errclass.WrapAs(stacktrace.Wrap(err), errclass.Persistent)
}

// NewConfigurationFromMap allows for a direct flat map to be used to create configuration.
func NewConfigurationFromMap(cfg map[string]any) (*Configuration, error) {
	k := koanf.New(defaultConfSeparator)
	if err := k.Load(confmap.Provider(cfg, defaultConfSeparator), nil); err != nil {
		return nil, persistent(err)
	}
	return &Configuration{k: k, env: defaultEnv}, nil
}

// NewConfiguration parses config from the given file system and environment variables.
// A nil file system means environment variables only.
func NewConfiguration(f fs.FS, opts ...Option) (*Configuration, error) {
	options := options{
		defaultEnv:   defaultEnv,
		envPrefix:    defaultEnvPrefix,
		separator:    defaultConfSeparator,
		envSeparator: defaultEnvSeparator,
		filepath:     defaultSettingsPath,
	}
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return nil, err
		}
	}

	environment := os.Getenv(options.envPrefix + envVarName)

	merged := koanf.New(options.separator)
	if f != nil {
		top := koanf.New(options.separator)
		if err := top.Load(koanffs.Provider(f, options.filepath), toml.Parser()); err != nil {
			return nil, persistent(err)
		}

		if err := mergeSection(top, merged, options.defaultEnv, options.separator); err != nil {
			return nil, err
		}
		if environment != "" {
			if err := mergeSection(top, merged, environment, options.separator); err != nil {
				return nil, err
			}
		}
	}

	if environment == "" {
		environment = options.defaultEnv
	}

	if err := merged.Load(
		env.Provider(options.envPrefix, options.separator, envToConfig(options)),
		nil,
	); err != nil {
		return nil, persistent(err)
	}

	if len(options.overrides) > 0 {
		if err := merged.Load(confmap.Provider(options.overrides, options.separator), nil); err != nil {
			return nil, persistent(err)
		}
	}

	return &Configuration{k: merged, env: environment}, nil
}

// mergeSection loads the named top level section of top into dst. The section must exist.
func mergeSection(top, dst *koanf.Koanf, section, separator string) error {
	if !top.Exists(section) {
		return persistent(fmt.Errorf("environment settings for '%s' not found", section))
	}
	settings, ok := top.Get(section).(map[string]any)
	if !ok {
		return persistent(fmt.Errorf("failed to parse env settings for '%s'", section))
	}
	if err := dst.Load(confmap.Provider(settings, separator), nil); err != nil {
		return persistent(err)
	}
	return nil
}

// Unmarshal sets values in struct `a` from the config rooted at `path`.
func (c Configuration) Unmarshal(path string, a any) error {
	if err := c.k.Unmarshal(path, a); err != nil {
		return persistent(err)
	}
	return nil
}

// Exists reports whether a value is set at path.
func (c Configuration) Exists(path string) bool {
	return c.k.Exists(path)
}

// Environment returns the value of the set environment
func (c Configuration) Environment() string {
	return c.env
}

// Load unmarshals the config rooted at path over a copy of defaults.
func Load[T any](c *Configuration, path string, defaults T) (T, error) {
	out := defaults
	if err := c.Unmarshal(path, &out); err != nil {
		return defaults, err
	}
	return out, nil
}

// envToConfig is a factory to generate anonymous functions for transforming config keys.
// For example, env var `PREFIX_NESTED_VALUE_A` might be converted to `nested.value.a`
func envToConfig(options options) func(s string) string {
	return func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(
				strings.TrimPrefix(s, options.envPrefix),
			),
			options.envSeparator,
			options.separator,
		)
	}
}
