package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// configName is the config file name without extension.
const configName = ".leakfix"

// configType is the config file format.
const configType = "yaml"

// envPrefix is the environment variable prefix for leakfix settings.
const envPrefix = "LEAKFIX"

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"ext":             "extension",
	"exclude":         "exclude",
	"ignore":          "ignore",
	"dry-run":         "dry_run",
	"diff":            "diff",
	"guard-listeners": "guard_listeners",
	"report":          "report",
	"debug":           "debug",
	"no-color":        "no_color",
	"debounce":        "watch.debounce",
}

// Load loads configuration from flags, env vars, the config file and defaults.
// If configPath is non-empty, it is used as the explicit config file path.
// Otherwise, the config file is searched in CWD and $HOME.
// Missing config file is not an error; defaults are used.
// flags may be nil. Only flags the user actually set override lower layers.
func Load(configPath string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	applyDefaults(v)

	v.SetConfigType(configType)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if err := bindFlags(v, flags); err != nil {
		return nil, fmt.Errorf("bind flags: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

func applyDefaults(v *viper.Viper) {
	v.SetDefault("root", DefaultRoot)
	v.SetDefault("extension", DefaultExtension)
	v.SetDefault("exclude", DefaultExclude())
	v.SetDefault("ignore", []string{})
	v.SetDefault("dry_run", false)
	v.SetDefault("diff", false)
	v.SetDefault("guard_listeners", false)
	v.SetDefault("report", "")
	v.SetDefault("debug", false)
	v.SetDefault("no_color", false)
	v.SetDefault("watch.debounce", DefaultWatchDebounce)
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	if flags == nil {
		return nil
	}

	for name, key := range flagKeys {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("flag %s: %w", name, err)
		}
	}

	return nil
}
