// Package cliconfig holds the settings shared by the buildx client commands.
package cliconfig

import (
	"fmt"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/papercomputeco/buildx/pkg/client"
	"github.com/papercomputeco/buildx/pkg/intake"
	"github.com/papercomputeco/buildx/pkg/logger"
)

// Config is read from the environment first; flags bound with Bind override it.
type Config struct {
	ServerURL string `env:"BUILDX_SERVER" envDefault:"http://localhost:8080"`
	UserID    string `env:"BUILDX_USER_ID"`
	StatePath string `env:"BUILDX_STATE"`
	Debug     bool   `env:"BUILDX_DEBUG" envDefault:"false"`

	parseErr error
}

// Bind loads environment defaults into cfg and registers the shared flags on cmd.
func Bind(cmd *cobra.Command, cfg *Config) {
	if err := env.Parse(cfg); err != nil {
		cfg.parseErr = fmt.Errorf("parse environment: %w", err)
	}

	cmd.Flags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "buildx server URL")
	cmd.Flags().StringVarP(&cfg.UserID, "user", "u", cfg.UserID, "User id sent as X-User-ID")
	cmd.Flags().StringVar(&cfg.StatePath, "state", cfg.StatePath, "State file holding the draft prompt (default ~/.buildx/state.toml)")
	cmd.Flags().BoolVar(&cfg.Debug, "debug", cfg.Debug, "Enable debug logging")
}

// Logger returns a logger honouring the debug setting.
func (c *Config) Logger() *zap.Logger {
	return logger.NewLogger(c.Debug)
}

// Client returns an API client for the configured server and user.
func (c *Config) Client(log *zap.Logger) (*client.Client, error) {
	if c.parseErr != nil {
		return nil, c.parseErr
	}
	return client.New(c.ServerURL, c.UserID, log), nil
}

func (c *Config) statePath() (string, error) {
	if c.StatePath != "" {
		return c.StatePath, nil
	}
	return intake.DefaultStatePath()
}

// Drafts returns the draft prompt store.
func (c *Config) Drafts() (*intake.DraftStore, error) {
	path, err := c.statePath()
	if err != nil {
		return nil, err
	}
	return intake.NewDraftStore(path), nil
}

// Projects returns the store of project histories, kept in "projects" next to the
// state file.
func (c *Config) Projects() (*intake.ProjectStore, error) {
	path, err := c.statePath()
	if err != nil {
		return nil, err
	}
	return intake.NewProjectStore(filepath.Join(filepath.Dir(path), "projects")), nil
}
