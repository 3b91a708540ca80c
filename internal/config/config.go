// Package config loads server settings from the environment and flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/benbeisheim/cooldownchess-backend/internal/model"
	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"
)

type Config struct {
	Addr         string `env:"COOLDOWN_CHESS_ADDR" envDefault:":3000"`
	AllowOrigins string `env:"COOLDOWN_CHESS_ALLOW_ORIGINS" envDefault:"http://localhost:5173"`

	PieceCooldown    time.Duration `env:"COOLDOWN_CHESS_PIECE_COOLDOWN" envDefault:"2s"`
	PawnInterval     time.Duration `env:"COOLDOWN_CHESS_PAWN_INTERVAL" envDefault:"3s"`
	PawnCaptureDelay time.Duration `env:"COOLDOWN_CHESS_PAWN_CAPTURE_DELAY" envDefault:"1s"`
	KingLives        int           `env:"COOLDOWN_CHESS_KING_LIVES" envDefault:"3"`
	// MaxGames caps concurrently running games; 0 disables the cap.
	MaxGames int `env:"COOLDOWN_CHESS_MAX_GAMES" envDefault:"1000"`
	// Seed fixes the pawn stride sequence; 0 seeds each game from crypto/rand.
	Seed int64 `env:"COOLDOWN_CHESS_SEED" envDefault:"0"`

	LogLevel string `env:"COOLDOWN_CHESS_LOG_LEVEL" envDefault:"info"`
	Dev      bool   `env:"COOLDOWN_CHESS_DEV" envDefault:"false"`
}

// ParseConfig parses environment and flags into a Config. Flags win.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	fs.StringVar(&cfg.AllowOrigins, "allow-origins", cfg.AllowOrigins, "comma-separated CORS and websocket origins")
	fs.DurationVar(&cfg.PieceCooldown, "piece-cooldown", cfg.PieceCooldown, "cooldown for kings, rooks, bishops and knights")
	fs.DurationVar(&cfg.PawnInterval, "pawn-interval", cfg.PawnInterval, "interval between pawn advances")
	fs.DurationVar(&cfg.PawnCaptureDelay, "pawn-capture-delay", cfg.PawnCaptureDelay, "delay before pawns check diagonal captures")
	fs.IntVar(&cfg.KingLives, "king-lives", cfg.KingLives, "lives per king")
	fs.IntVar(&cfg.MaxGames, "max-games", cfg.MaxGames, "maximum running games (0 = unlimited)")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "pawn stride seed (0 = random per game)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	fs.BoolVar(&cfg.Dev, "dev", cfg.Dev, "human readable development logging")
	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("parse flags: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return errors.New("config: addr is required")
	}
	if c.MaxGames < 0 {
		return errors.New("config: max games must not be negative")
	}
	if err := c.Rules().Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := zap.ParseAtomicLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func (c Config) Rules() model.Rules {
	return model.Rules{
		PieceCooldown:    c.PieceCooldown,
		PawnInterval:     c.PawnInterval,
		PawnCaptureDelay: c.PawnCaptureDelay,
		KingLives:        c.KingLives,
	}
}

// Origins splits AllowOrigins for the websocket upgrader.
func (c Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// Logger builds the process logger.
func (c Config) Logger() (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	if c.Dev {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = level
	return zc.Build()
}
