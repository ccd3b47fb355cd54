package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix is the prefix of environment variables read by Load.
// PIXELNET_MODEL_HIDDEN_UNITS maps to model.hidden_units.
const EnvPrefix = "PIXELNET_"

// flagKeys maps CLI flag names onto config keys.
var flagKeys = map[string]string{
	"log-level":         "log_level",
	"seed":              "seed",
	"workers":           "workers",
	"rows":              "model.rows",
	"cols":              "model.cols",
	"scale":             "model.scale",
	"hidden-units":      "model.hidden_units",
	"hidden-activation": "model.hidden_activation",
	"classes":           "model.classes",
	"output-activation": "model.output_activation",
}

// Load builds a Config from defaults, an optional YAML file, the
// environment and explicitly set flags, then validates it.
//
// cfgFile may be empty. flags may be nil.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	def := Default()
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"model.rows":              def.Model.Rows,
		"model.cols":              def.Model.Cols,
		"model.scale":             def.Model.Scale,
		"model.hidden_units":      def.Model.HiddenUnits,
		"model.hidden_activation": def.Model.HiddenActivation,
		"model.classes":           def.Model.Classes,
		"model.output_activation": def.Model.OutputActivation,
		"log_level":               def.LogLevel,
		"seed":                    def.Seed,
		"workers":                 def.Workers,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	if cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", cfgFile, err)
		}
	}

	// 3. Environment: PIXELNET_MODEL_HIDDEN_UNITS -> model.hidden_units
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags (only those explicitly set)
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key, ok := flagKeys[f.Name]
			if !ok {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey converts PIXELNET_MODEL_HIDDEN_UNITS into model.hidden_units.
// Only the first underscore after a section name becomes a dot.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	if rest, ok := strings.CutPrefix(key, "model_"); ok {
		return "model." + rest
	}
	return key
}
