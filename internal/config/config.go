package config

import (
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	clierrors "github.com/thoreinstein/logargs/internal/errors"
	"github.com/thoreinstein/logargs/internal/logging"
	"github.com/thoreinstein/logargs/internal/paths"
	"github.com/thoreinstein/logargs/pkg/logargs"
)

// AppName is the application name used for config file naming.
const AppName = "logdemo"

// EnvPrefix prefixes every environment override, e.g. LOGDEMO_FILTER_ENV.
const EnvPrefix = "LOGDEMO"

// configDirEnv overrides the directory searched for config.yaml.
const configDirEnv = EnvPrefix + "_CONFIG_DIR"

// DefaultFilterEnv names the early filter variable when none is configured.
const DefaultFilterEnv = EnvPrefix + "_LOG"

// DefaultLevels is the verbosity table used when none is configured.
var DefaultLevels = []string{"info", "debug", "trace"}

// Config represents the top-level configuration structure.
type Config struct {
	// FilterEnv names the environment variable read before flag parsing.
	FilterEnv string `mapstructure:"filter_env" yaml:"filter_env"`
	// Levels maps -v counts to filter expressions; index 0 is no -v.
	Levels []string `mapstructure:"levels" yaml:"levels"`
}

// Init resets Viper and installs the default configuration.
// Call this once at application startup before accessing config values.
func Init() {
	viper.Reset()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	if dir := os.Getenv(configDirEnv); dir != "" {
		viper.AddConfigPath(dir)
	}
	viper.AddConfigPath(".")
	viper.AddConfigPath(paths.ConfigDir(AppName))

	viper.SetEnvPrefix(EnvPrefix)
	viper.AutomaticEnv()

	viper.SetDefault("filter_env", DefaultFilterEnv)
	viper.SetDefault("levels", DefaultLevels)
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations and falls back to
// defaults when no file exists.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound) && path == "":
			// No file in the search path; defaults apply.
		case errors.As(err, &notFound), os.IsNotExist(err):
			return nil, errors.Wrapf(err, "config file not found at %s", path)
		default:
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}
	if err := Validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "validating config")
	}

	return &cfg, nil
}

// Validate reports every problem in cfg, joined into one error matching
// ErrInvalidConfig.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.Mark(errors.New("config is nil"), clierrors.ErrInvalidConfig)
	}

	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, errors.Newf(format, args...))
	}

	if cfg.FilterEnv == "" || strings.ContainsAny(cfg.FilterEnv, "= \t\n\x00") {
		invalid("filter_env: %q is not a usable variable name", cfg.FilterEnv)
	}
	if len(cfg.Levels) == 0 {
		invalid("levels: at least one entry is required")
	}
	for i, expr := range cfg.Levels {
		if _, err := logging.ParseFilter(expr); err != nil {
			invalid("levels[%d]: %v", i, err)
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errors.Mark(errors.Join(errs...), clierrors.ErrInvalidConfig)
}

// LevelMap turns a levels table into a logargs.LevelMap. A count past the
// end of the table yields the last entry.
func LevelMap(levels []string) logargs.LevelMap {
	if len(levels) == 0 {
		return logargs.DefaultLevelMap
	}
	table := append([]string(nil), levels...)
	return func(verbosity uint8) string {
		i := int(verbosity)
		if i >= len(table) {
			i = len(table) - 1
		}
		return table[i]
	}
}

// LevelMap returns the verbosity table of c as a logargs.LevelMap.
func (c *Config) LevelMap() logargs.LevelMap {
	return LevelMap(c.Levels)
}
