// Package config loads tool configuration with a viper cascade:
// flags > ./loginsim.yaml > ~/.loginsim/loginsim.yaml > env > defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the complete tool configuration.
type Config struct {
	UserBase string        `mapstructure:"user_base" yaml:"user_base"`
	Start    string        `mapstructure:"start" yaml:"start"`
	End      string        `mapstructure:"end" yaml:"end"`
	Seed     int64         `mapstructure:"seed" yaml:"seed"`
	Attack   AttackConfig  `mapstructure:"attack" yaml:"attack"`
	Profiles ProfileConfig `mapstructure:"profiles" yaml:"profiles"`
	Output   OutputConfig  `mapstructure:"output" yaml:"output"`
	Logging  LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// AttackConfig holds the per-run campaign knobs.
type AttackConfig struct {
	Prob            float64 `mapstructure:"prob" yaml:"prob"`
	TryAllUsersProb float64 `mapstructure:"try_all_users_prob" yaml:"try_all_users_prob"`
	VaryOrigins     bool    `mapstructure:"vary_origins" yaml:"vary_origins"`
}

// ProfileConfig holds the per-attempt success probabilities. Nil slices
// fall back to the simulator defaults.
type ProfileConfig struct {
	Attacker  []float64 `mapstructure:"attacker" yaml:"attacker"`
	ValidUser []float64 `mapstructure:"valid_user" yaml:"valid_user"`
}

// OutputConfig captures where and how the logs are written.
type OutputConfig struct {
	AttemptLog  string `mapstructure:"attempt_log" yaml:"attempt_log"`
	CampaignLog string `mapstructure:"campaign_log" yaml:"campaign_log"`
	Format      string `mapstructure:"format" yaml:"format"` // csv or json
}

// LoggingConfig captures logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`   // debug, info, warn, error
	Format string `mapstructure:"format" yaml:"format"` // json or text
}

// Load reads configuration from the provided path, the standard search
// paths, and LOGINSIM_* environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("loginsim")
	v.SetConfigType("yaml")
	v.SetEnvPrefix("LOGINSIM")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".loginsim"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		// No config file is fine, the defaults stand.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("user_base", "user_ips.json")
	v.SetDefault("seed", 0)

	v.SetDefault("attack.prob", 0.1)
	v.SetDefault("attack.try_all_users_prob", 0.2)
	v.SetDefault("attack.vary_origins", false)

	v.SetDefault("output.attempt_log", "log.csv")
	v.SetDefault("output.campaign_log", "attack_log.csv")
	v.SetDefault("output.format", "csv")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// Validate checks the configuration, failing fast with a descriptive
// error instead of surfacing problems mid-simulation.
func (c *Config) Validate() error {
	if c.Attack.Prob < 0 || c.Attack.Prob > 1 {
		return fmt.Errorf("attack.prob %v outside [0, 1]", c.Attack.Prob)
	}
	if c.Attack.TryAllUsersProb < 0 || c.Attack.TryAllUsersProb > 1 {
		return fmt.Errorf("attack.try_all_users_prob %v outside [0, 1]", c.Attack.TryAllUsersProb)
	}
	if c.Output.Format != "csv" && c.Output.Format != "json" {
		return fmt.Errorf("output.format %q is not csv or json", c.Output.Format)
	}
	if c.Profiles.Attacker != nil && len(c.Profiles.Attacker) == 0 {
		return fmt.Errorf("profiles.attacker is empty")
	}
	if c.Profiles.ValidUser != nil && len(c.Profiles.ValidUser) == 0 {
		return fmt.Errorf("profiles.valid_user is empty")
	}
	if c.Start != "" {
		if _, err := time.Parse(time.RFC3339, c.Start); err != nil {
			return fmt.Errorf("start %q is not RFC3339: %w", c.Start, err)
		}
	}
	if c.End != "" {
		if _, err := time.Parse(time.RFC3339, c.End); err != nil {
			return fmt.Errorf("end %q is not RFC3339: %w", c.End, err)
		}
	}
	return nil
}

// StartTime parses the configured start. A zero time with nil error means
// the start was not configured.
func (c *Config) StartTime() (time.Time, error) {
	if c.Start == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, c.Start)
}

// EndTime parses the configured end. A zero time with nil error means the
// end was not configured.
func (c *Config) EndTime() (time.Time, error) {
	if c.End == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, c.End)
}
