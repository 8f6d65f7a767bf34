// Package config loads the bot's settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/Bubblyworld/lichess-bot/model"
)

type Config struct {
	APIKey   string `env:"LICHESS_API_KEY"`
	URL      string `env:"LICHESS_URL" envDefault:"https://lichess.org/"`
	Username string `env:"BOT_USERNAME"`

	// Concurrency is the number of games played at the same time.
	Concurrency int           `env:"BOT_CONCURRENCY" envDefault:"1"`
	AbortTime   time.Duration `env:"BOT_ABORT_TIME" envDefault:"20s"`

	Challenge ChallengeConfig `envPrefix:"CHALLENGE_"`
}

type ChallengeConfig struct {
	Blacklist    []string `env:"BLACKLIST" envSeparator:","`
	Variants     []string `env:"VARIANTS" envSeparator:"," envDefault:"standard"`
	TimeControls []string `env:"TIME_CONTROLS" envSeparator:"," envDefault:"bullet,blitz,rapid,classical"`
	Modes        []string `env:"MODES" envSeparator:"," envDefault:"casual,rated"`

	MaxIncrement int `env:"MAX_INCREMENT" envDefault:"180"`
	MinIncrement int `env:"MIN_INCREMENT" envDefault:"0"`

	AcceptBot      bool `env:"ACCEPT_BOT"`
	AcceptBotRated bool `env:"ACCEPT_BOT_RATED"`
}

// Load reads envFile if it exists, without overriding variables that are
// already set, and then parses the environment.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: load %s: %w", envFile, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (cfg *Config) Validate() error {
	if cfg.Concurrency < 1 {
		return fmt.Errorf("config: BOT_CONCURRENCY must be at least 1, got %d", cfg.Concurrency)
	}
	if cfg.AbortTime <= 0 {
		return fmt.Errorf("config: BOT_ABORT_TIME must be positive, got %s", cfg.AbortTime)
	}
	for _, mode := range cfg.Challenge.Modes {
		if mode != model.ModeRated && mode != model.ModeCasual {
			return fmt.Errorf("config: unknown challenge mode %q", mode)
		}
	}
	if cfg.Challenge.MinIncrement > cfg.Challenge.MaxIncrement {
		return fmt.Errorf("config: CHALLENGE_MIN_INCREMENT %d exceeds CHALLENGE_MAX_INCREMENT %d",
			cfg.Challenge.MinIncrement, cfg.Challenge.MaxIncrement)
	}

	return nil
}

// Policy copies the challenge settings into a policy the bot can share
// between goroutines.
func (cc ChallengeConfig) Policy() *model.ChallengePolicy {
	maxIncrement, minIncrement := cc.MaxIncrement, cc.MinIncrement

	return &model.ChallengePolicy{
		Blacklist:      append([]string(nil), cc.Blacklist...),
		Variants:       append([]string(nil), cc.Variants...),
		TimeControls:   append([]string(nil), cc.TimeControls...),
		Modes:          append([]string(nil), cc.Modes...),
		MaxIncrement:   &maxIncrement,
		MinIncrement:   &minIncrement,
		AcceptBot:      cc.AcceptBot,
		AcceptBotRated: cc.AcceptBotRated,
	}
}
