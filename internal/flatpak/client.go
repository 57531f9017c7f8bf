package flatpak

import (
	"context"
	"time"

	"github.com/GriffinCanCode/flatbridge/internal/command"
)

// Config selects the binary and the software channel.
type Config struct {
	Binary    string
	Remote    string
	RemoteURL string
	// ProbeTimeout bounds read-only queries (remotes, list, info, version).
	// Zero leaves them unbounded.
	ProbeTimeout time.Duration
}

// DefaultConfig targets flathub with the stock flatpak binary.
func DefaultConfig() Config {
	return Config{
		Binary:       "flatpak",
		Remote:       "flathub",
		RemoteURL:    "https://dl.flathub.org/repo/flathub.flatpakrepo",
		ProbeTimeout: 30 * time.Second,
	}
}

// Client wraps the flatpak CLI.
type Client struct {
	cfg      Config
	runner   command.Runner
	launcher command.Launcher
	lookPath command.PathResolver
}

// New creates a client. A nil lookPath falls back to command.LookPath.
func New(cfg Config, runner command.Runner, launcher command.Launcher, lookPath command.PathResolver) *Client {
	if cfg.Binary == "" {
		cfg.Binary = DefaultConfig().Binary
	}
	if cfg.Remote == "" {
		cfg.Remote = DefaultConfig().Remote
	}
	if cfg.RemoteURL == "" {
		cfg.RemoteURL = DefaultConfig().RemoteURL
	}
	if lookPath == nil {
		lookPath = command.LookPath
	}
	return &Client{
		cfg:      cfg,
		runner:   runner,
		launcher: launcher,
		lookPath: lookPath,
	}
}

// Remote returns the configured channel name.
func (c *Client) Remote() string {
	return c.cfg.Remote
}

// Install installs one application for the current user from the channel.
// A nonzero exit is reported in the result, not as an error.
func (c *Client) Install(ctx context.Context, appID string) (command.Result, error) {
	return c.runner.Run(ctx, c.cfg.Binary, "--user", "install", "-y", c.cfg.Remote, appID)
}

// UpdateAll updates every user-scope installation.
func (c *Client) UpdateAll(ctx context.Context) (command.Result, error) {
	return c.runner.Run(ctx, c.cfg.Binary, "--user", "update", "-y")
}

// Launch starts an installed application detached from the bridge.
func (c *Client) Launch(appID string) error {
	return c.launcher.Start(c.cfg.Binary, "run", appID)
}

// probe runs a read-only query under ProbeTimeout.
func (c *Client) probe(ctx context.Context, args ...string) (command.Result, error) {
	if c.cfg.ProbeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.ProbeTimeout)
		defer cancel()
	}
	return c.runner.Run(ctx, c.cfg.Binary, args...)
}
