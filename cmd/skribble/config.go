package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yacobolo/skribble"
)

const (
	defaultSettingsFile = ".skribble.yaml"
	defaultStyleConfig  = "skribble.config.json"
	defaultCSSOutput    = "src/styles/skribble.css"
	defaultTypesOutput  = "src/skribble.d.ts"
)

var k = koanf.New(".")

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	// Resolve config file path from flag
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = defaultSettingsFile
	}

	// Load config file and env vars
	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// 3. CLI flags (highest precedence, only flags that were explicitly set)
	flags := cmd.Flags()
	provider := posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
		if !f.Changed {
			return "", nil
		}
		return f.Name, posflag.FlagVal(flags, f)
	})
	if err := k.Load(provider, nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads configuration from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	// 1. Config file (lowest precedence among providers)
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// 2. Environment variables (SKRIBBLE_* prefix)
	if err := k.Load(env.Provider("SKRIBBLE_", ".", envKey), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// envKey maps an environment variable to a config key:
//
//	SKRIBBLE_GENERATE_CSS_OUTPUT -> generate.css-output
//	SKRIBBLE_LINT_STRICT         -> lint.strict
//	SKRIBBLE_STYLE_CONFIG        -> style-config
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, "SKRIBBLE_"))
	for _, section := range []string{"generate", "lint"} {
		if rest, ok := strings.CutPrefix(s, section+"_"); ok {
			return section + "." + strings.ReplaceAll(rest, "_", "-")
		}
	}
	return strings.ReplaceAll(s, "_", "-")
}

// buildOptions constructs the library's Options from koanf state.
func buildOptions() skribble.Options {
	opts := skribble.Options{
		StyleConfig:   styleConfigPath(),
		CSSOutput:     getStringWithFallback("css-output", "generate.css-output", defaultCSSOutput),
		TypesOutput:   getStringWithFallback("types-output", "generate.types-output", defaultTypesOutput),
		Imports:       k.Strings("imports"),
		Concurrency:   getIntWithFallback("concurrency", "concurrency", 0),
		Check:         getBoolWithFallback("check", "generate.check", false),
		MaxIssues:     getIntWithFallback("max-issues", "lint.max-issues", 0),
		MaxSameIssues: getIntWithFallback("max-same-issues", "lint.max-same-issues", 0),
	}
	if getBoolWithFallback("no-types", "generate.no-types", false) {
		opts.TypesOutput = ""
	}

	// Handle includes: check flag key first, then config key
	if includes := k.Strings("include"); len(includes) > 0 {
		opts.Include = includes
	} else if includes := k.Strings("generate.include"); len(includes) > 0 {
		opts.Include = includes
	} else {
		opts.Include = skribble.DefaultInclude
	}

	return opts
}

// styleConfigPath returns the configured style configuration. The default
// file is optional: without it the built-in configuration is used.
func styleConfigPath() string {
	path := getStringWithFallback("style-config", "style-config", "")
	if path != "" {
		return path
	}
	if _, err := os.Stat(defaultStyleConfig); err == nil {
		return defaultStyleConfig
	}
	return ""
}

// getStringWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringWithFallback(flagKey, configKey, defaultVal string) string {
	if v := k.String(flagKey); v != "" {
		return v
	}
	if v := k.String(configKey); v != "" {
		return v
	}
	return defaultVal
}

// getBoolWithFallback checks the flag key first, then the config file key, then returns the default.
func getBoolWithFallback(flagKey, configKey string, defaultVal bool) bool {
	if k.Exists(flagKey) {
		return k.Bool(flagKey)
	}
	if k.Exists(configKey) {
		return k.Bool(configKey)
	}
	return defaultVal
}

// getIntWithFallback checks the flag key first, then the config file key, then returns the default.
func getIntWithFallback(flagKey, configKey string, defaultVal int) int {
	if k.Exists(flagKey) {
		return k.Int(flagKey)
	}
	if k.Exists(configKey) {
		return k.Int(configKey)
	}
	return defaultVal
}
