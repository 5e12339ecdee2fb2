// Package config loads node and CLI settings from environment variables.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/mmynk/kindnest/internal/ledger"
)

// devSecret signs tokens on dev nodes that did not set KINDNEST_JWT_SECRET.
const devSecret = "kindnest-dev-secret"

// ParseEnv loads configuration from environment variables into target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Server configures a ledger node.
type Server struct {
	Addr      string        `env:"KINDNEST_ADDR"       envDefault:":8080"`
	DBPath    string        `env:"KINDNEST_DB_PATH"    envDefault:"./data/ledger.db"`
	JWTSecret string        `env:"KINDNEST_JWT_SECRET"`
	TokenTTL  time.Duration `env:"KINDNEST_TOKEN_TTL"  envDefault:"24h"`
	QueueSize int           `env:"KINDNEST_QUEUE_SIZE" envDefault:"256"`
	// Dev allows running without a JWT secret.
	Dev       bool   `env:"KINDNEST_DEV"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	MaxNameLength        int  `env:"KINDNEST_MAX_NAME_LENGTH"        envDefault:"50"`
	MaxDescriptionLength int  `env:"KINDNEST_MAX_DESCRIPTION_LENGTH" envDefault:"100"`
	MaxParticipants      int  `env:"KINDNEST_MAX_PARTICIPANTS"       envDefault:"50"`
	MemberInvites        bool `env:"KINDNEST_MEMBER_INVITES"         envDefault:"false"`
	SettleWhilePaused    bool `env:"KINDNEST_SETTLE_WHILE_PAUSED"    envDefault:"true"`
	Faucet               bool `env:"KINDNEST_FAUCET"                 envDefault:"false"`
}

// LoadServer parses and validates the node configuration.
func LoadServer() (Server, error) {
	var cfg Server
	if err := ParseEnv(&cfg); err != nil {
		return Server{}, err
	}
	if err := cfg.validate(); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

func (c *Server) validate() error {
	if c.JWTSecret == "" {
		if !c.Dev {
			return errors.New("KINDNEST_JWT_SECRET is required unless KINDNEST_DEV is set")
		}
		c.JWTSecret = devSecret
	}
	if c.QueueSize <= 0 {
		return fmt.Errorf("KINDNEST_QUEUE_SIZE must be positive, got %d", c.QueueSize)
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("KINDNEST_TOKEN_TTL must be positive, got %s", c.TokenTTL)
	}
	if c.MaxNameLength <= 0 || c.MaxDescriptionLength <= 0 || c.MaxParticipants <= 0 {
		return errors.New("length and participant limits must be positive")
	}
	return nil
}

// Policy returns the ledger rules selected by the configuration.
func (c Server) Policy() ledger.Policy {
	return ledger.Policy{
		MaxNameLength:        c.MaxNameLength,
		MaxDescriptionLength: c.MaxDescriptionLength,
		MaxParticipants:      c.MaxParticipants,
		MemberInvites:        c.MemberInvites,
		SettleWhilePaused:    c.SettleWhilePaused,
		Faucet:               c.Faucet,
	}
}

// CLI configures the command-line client.
type CLI struct {
	URL     string `env:"KINDNEST_URL"      envDefault:"http://localhost:8080"`
	KeyFile string `env:"KINDNEST_KEY_FILE" envDefault:"~/.kindnest/key"`
	// Wait bounds how long mutating commands wait for confirmation.
	Wait time.Duration `env:"KINDNEST_WAIT" envDefault:"30s"`
}

// LoadCLI parses the CLI configuration.
func LoadCLI() (CLI, error) {
	var cfg CLI
	if err := ParseEnv(&cfg); err != nil {
		return CLI{}, err
	}
	return cfg, nil
}
