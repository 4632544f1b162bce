// Package options provides configuration management for the karagen CLI.
package options

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/karagen/karagen/tables"
)

// Defaults for the flags that mirror config keys.
const (
	DefaultOutput                = "karabiner.json"
	DefaultProfile               = "Default"
	DefaultSimultaneousThreshold = 50
	DefaultCapsLock              = "control"
	DefaultLeaderThreshold       = 250
	DefaultVimThreshold          = 50
)

// DefaultLeaderKeys is the leader entry chord.
var DefaultLeaderKeys = []string{"l", "semicolon"}

// Config holds the configuration for the karagen CLI.
type Config struct {
	Output        string `yaml:"output"`
	Profile       string `yaml:"profile"`
	Merge         bool   `yaml:"merge"`
	ShowInMenuBar bool   `yaml:"showInMenuBar"`

	// SimultaneousThreshold is the profile-wide chord window in milliseconds.
	SimultaneousThreshold int `yaml:"simultaneousThreshold"`

	// CapsLock is one of control, hyper or none.
	CapsLock    string `yaml:"capsLock"`
	HyperLayers bool   `yaml:"hyperLayers"`

	Leader LeaderConfig `yaml:"leader"`

	// VimThreshold is the chord window of the per-app vim toggles.
	VimThreshold  int    `yaml:"vimThreshold"`
	AerospacePath string `yaml:"aerospacePath"`

	Finder bool `yaml:"finder"`
	Slack  bool `yaml:"slack"`

	// Strict turns error findings of the checker into a failed run.
	Strict bool `yaml:"strict"`
}

// LeaderConfig configures the leader key.
type LeaderConfig struct {
	Keys      []string `yaml:"keys"`
	Threshold int      `yaml:"threshold"`
	// Timeout leaves the leader after this many idle milliseconds; 0 never does.
	Timeout int `yaml:"timeout"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Output:                DefaultOutput,
		Profile:               DefaultProfile,
		SimultaneousThreshold: DefaultSimultaneousThreshold,
		CapsLock:              DefaultCapsLock,
		Leader: LeaderConfig{
			Keys:      append([]string(nil), DefaultLeaderKeys...),
			Threshold: DefaultLeaderThreshold,
		},
		VimThreshold:  DefaultVimThreshold,
		AerospacePath: tables.DefaultAerospacePath,
		Finder:        true,
		Slack:         true,
		Strict:        true,
	}
}

// nestedFlags maps flags onto dotted config keys that dash normalization
// cannot reach.
var nestedFlags = map[string]string{
	"leadertimeout": "leader.timeout",
}

// LoadConfig loads the configuration from various sources in the following order of precedence:
// 1. Command-line flags (highest priority)
// 2. Environment variables (KARAGEN_ prefix, "." in nested keys becomes "_")
// 3. Configuration file
// 4. Default values (lowest priority)
//
// If a config file is not found, it falls back to using defaults and flags.
func LoadConfig(path string, stderr io.Writer, flagSet *pflag.FlagSet) (*Config, error) {
	if flagSet == nil {
		flagSet = pflag.CommandLine
	}
	if stderr == nil {
		stderr = io.Discard
	}
	cfg := &Config{}
	v := viper.New()

	SetupViper(v, path, flagSet)
	SetupFlagNormalization(flagSet)

	// Read config file first
	if err := HandleConfigFile(v, stderr, flagSet); err != nil {
		return nil, err
	}

	// Then bind flags (so they override config)
	if err := v.BindPFlags(flagSet); err != nil {
		return nil, errors.Wrap(err, "unable to bind flags")
	}
	for name, key := range nestedFlags {
		if f := flagSet.Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, errors.Wrapf(err, "unable to bind flag %s", name)
			}
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "unable to unmarshal config")
	}
	if debug, _ := flagSet.GetBool("debug"); debug {
		fmt.Fprintf(stderr, "karagen: config %+v\n", *cfg)
	}
	return cfg, nil
}

// IsEnvSet checks if an environment variable is set
func IsEnvSet(key string) bool {
	_, exists := os.LookupEnv(key)
	return exists
}

// SetupViper configures viper with default values and settings
func SetupViper(v *viper.Viper, path string, flagSet *pflag.FlagSet) {
	v.SetDefault("output", DefaultOutput)
	v.SetDefault("profile", DefaultProfile)
	v.SetDefault("merge", false)
	v.SetDefault("showInMenuBar", false)
	v.SetDefault("simultaneousThreshold", DefaultSimultaneousThreshold)
	v.SetDefault("capsLock", DefaultCapsLock)
	v.SetDefault("hyperLayers", false)
	v.SetDefault("leader.keys", DefaultLeaderKeys)
	v.SetDefault("leader.threshold", DefaultLeaderThreshold)
	v.SetDefault("leader.timeout", 0)
	v.SetDefault("vimThreshold", DefaultVimThreshold)
	v.SetDefault("aerospacePath", tables.DefaultAerospacePath)
	v.SetDefault("finder", true)
	v.SetDefault("slack", true)
	v.SetDefault("strict", true)

	// Setup paths and env
	v.AddConfigPath("/etc/karagen/")
	v.AddConfigPath("$HOME/.karagen")
	v.AddConfigPath(".")
	v.SetConfigName("config")

	v.SetEnvPrefix("KARAGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	}
	// Set config file if specified in flags
	if flagConfigFilePath := flagSet.Lookup("config"); flagConfigFilePath != nil && flagConfigFilePath.Changed {
		v.SetConfigFile(flagConfigFilePath.Value.String())
	}
}

// SetupFlagNormalization configures flag normalization to handle dashes in flag names
func SetupFlagNormalization(flagSet *pflag.FlagSet) {
	normalizeFunc := flagSet.GetNormalizeFunc()
	flagSet.SetNormalizeFunc(func(fs *pflag.FlagSet, name string) pflag.NormalizedName {
		result := normalizeFunc(fs, name)
		name = strings.ReplaceAll(string(result), "-", "")
		return pflag.NormalizedName(name)
	})
}

// HandleConfigFile handles loading the configuration file. A file that does
// not exist is skipped; one that cannot be parsed is an error.
func HandleConfigFile(v *viper.Viper, stderr io.Writer, flagSet *pflag.FlagSet) error {
	verbose, _ := flagSet.GetBool("verbose")
	if configFile := v.ConfigFileUsed(); configFile != "" {
		if verbose {
			fmt.Fprintf(stderr, "karagen: trying to read config file: %s\n", configFile)
		}
		if _, err := os.Stat(configFile); err != nil {
			if verbose {
				fmt.Fprintf(stderr, "karagen: config file %s not accessible: %v\n", configFile, err)
			}
			return nil
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if debug, _ := flagSet.GetBool("debug"); debug {
				fmt.Fprintln(stderr, "karagen: config file not found, using defaults")
			}
			return nil
		}
		return errors.WithHint(errors.Wrap(err, "unable to read config file"),
			"fix the file or point --config at another one")
	}

	if verbose {
		fmt.Fprintf(stderr, "karagen: successfully read config from %s\n", v.ConfigFileUsed())
	}
	return nil
}
