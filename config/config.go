package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/airylvat/mindwars/game"
)

const (
	TransportConsole = "console"
	TransportDiscord = "discord"
)

type Config struct {
	DatabasePath       string        `env:"DATABASE_PATH" envDefault:"./mindwars.db"`
	QuestionsPath      string        `env:"QUESTIONS_PATH" envDefault:"questions.json"`
	QuestionsPerPlayer int           `env:"QUESTIONS_PER_PLAYER" envDefault:"3"`
	BoardSize          int           `env:"BOARD_SIZE" envDefault:"3"`
	AnswerTimeLimit    time.Duration `env:"ANSWER_TIME_LIMIT" envDefault:"15s"`
	MixedCategories    bool          `env:"MIXED_CATEGORIES" envDefault:"false"`
	LogPath            string        `env:"LOG_PATH" envDefault:"mindwars.log"`

	Transport        string `env:"TRANSPORT" envDefault:"console"`
	DiscordToken     string `env:"DISCORD_TOKEN"`
	DiscordChannelID string `env:"DISCORD_CHANNEL_ID"`
	AdminID          string `env:"ADMIN_ID"`
	AdminRoleID      string `env:"ADMIN_ROLE_ID"`
}

// Load reads the given .env files (".env" when none) and then the process
// environment. Missing files are fine; variables already set win.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.QuestionsPerPlayer < 1:
		return fmt.Errorf("QUESTIONS_PER_PLAYER must be positive, got %d", c.QuestionsPerPlayer)
	case c.BoardSize < 1:
		return fmt.Errorf("BOARD_SIZE must be positive, got %d", c.BoardSize)
	case c.AnswerTimeLimit <= 0:
		return fmt.Errorf("ANSWER_TIME_LIMIT must be positive, got %s", c.AnswerTimeLimit)
	}

	switch c.Transport {
	case TransportConsole:
	case TransportDiscord:
		if c.DiscordToken == "" || c.DiscordChannelID == "" {
			return errors.New("TRANSPORT=discord needs DISCORD_TOKEN and DISCORD_CHANNEL_ID")
		}
	default:
		return fmt.Errorf("unknown TRANSPORT %q", c.Transport)
	}
	return nil
}

// Settings is the match configuration handed to the game.
func (c Config) Settings() game.Settings {
	return game.Settings{
		QuestionsPerPlayer: c.QuestionsPerPlayer,
		BoardSize:          c.BoardSize,
		AnswerTimeLimit:    c.AnswerTimeLimit,
		MixedCategories:    c.MixedCategories,
	}
}
