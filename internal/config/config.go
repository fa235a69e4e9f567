// Package config loads generator settings from defaults, an optional
// .boxgen.yaml file and BOXGEN_* environment variables.
package config

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	"boxgen/internal/gen"
)

const (
	// EnvPrefix is the prefix of every environment variable read by boxgen.
	EnvPrefix = "BOXGEN"
	// FileName is the base name of the optional configuration file.
	FileName = ".boxgen"
)

// Config is the resolved configuration of one run.
type Config struct {
	Generator gen.GeneratorConfig
	LogLevel  string
}

// fileConfig mirrors the configuration keys.
type fileConfig struct {
	Prefix             string `mapstructure:"prefix"`
	IncludeDir         string `mapstructure:"include_dir"`
	ExternalNamespace  string `mapstructure:"external_namespace"`
	ExternalHeaderDir  string `mapstructure:"external_header_dir"`
	ExternalTypeSuffix string `mapstructure:"external_type_suffix"`
	DocWidth           int    `mapstructure:"doc_width"`
	LogLevel           string `mapstructure:"log_level"`
}

// SetDefaults registers the default value of every key. Keys without a
// default are invisible to environment lookups during Unmarshal.
func SetDefaults(v *viper.Viper) {
	d := gen.DefaultGeneratorConfig()

	v.SetDefault("prefix", d.Prefix)
	v.SetDefault("include_dir", d.IncludeDir)
	v.SetDefault("external_namespace", d.ExternalNamespace)
	v.SetDefault("external_header_dir", d.ExternalHeaderDir)
	v.SetDefault("external_type_suffix", d.ExternalTypeSuffix)
	v.SetDefault("doc_width", d.DocWidth)
	v.SetDefault("log_level", "info")
}

// New returns a viper instance with defaults and environment binding. When
// dir is not empty, dir/.boxgen.yaml is registered as the config file.
func New(dir string) *viper.Viper {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	if dir != "" {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
	}

	return v
}

// Load reads the optional config file and resolves the configuration.
// A missing file is not an error.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "reading configuration file")
		}
	}

	var fc fileConfig
	if err := v.Unmarshal(&fc); err != nil {
		return nil, errors.Wrap(err, "decoding configuration")
	}

	cfg := &Config{
		Generator: gen.GeneratorConfig{
			Prefix:             fc.Prefix,
			IncludeDir:         fc.IncludeDir,
			ExternalNamespace:  fc.ExternalNamespace,
			ExternalHeaderDir:  fc.ExternalHeaderDir,
			ExternalTypeSuffix: fc.ExternalTypeSuffix,
			DocWidth:           fc.DocWidth,
		},
		LogLevel: fc.LogLevel,
	}

	if err := cfg.Generator.Validate(); err != nil {
		return nil, errors.WithHint(errors.Wrap(err, "invalid configuration"),
			"check the BOXGEN_* environment variables and "+FileName+".yaml")
	}

	return cfg, nil
}
