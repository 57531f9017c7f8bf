package flatpak

import (
	"context"
	"fmt"
	"strings"
)

// ToolAvailable reports whether the flatpak binary is on PATH.
func (c *Client) ToolAvailable() bool {
	_, err := c.lookPath(c.cfg.Binary)
	return err == nil
}

// ChannelConfigured reports whether the channel is among the user remotes.
// Any failure, including a missing tool, reads as "not configured".
func (c *Client) ChannelConfigured(ctx context.Context) bool {
	if !c.ToolAvailable() {
		return false
	}

	res, err := c.probe(ctx, "--user", "remotes")
	if err != nil || !res.Success() {
		return false
	}

	for _, line := range strings.Split(res.Stdout, "\n") {
		fields := strings.Fields(line)
		if len(fields) > 0 && fields[0] == c.cfg.Remote {
			return true
		}
	}
	return false
}

// EnsureChannel adds the channel for the current user unless it exists.
// Safe to call on every request; a missing tool is a no-op.
func (c *Client) EnsureChannel(ctx context.Context) error {
	if !c.ToolAvailable() {
		return nil
	}

	res, err := c.runner.Run(ctx, c.cfg.Binary,
		"--user", "remote-add", "--if-not-exists", c.cfg.Remote, c.cfg.RemoteURL)
	if err != nil {
		return fmt.Errorf("remote-add %s: %w", c.cfg.Remote, err)
	}
	if !res.Success() {
		return fmt.Errorf("remote-add %s exited %d: %s", c.cfg.Remote, res.ExitCode, res.Stderr)
	}
	return nil
}

// Version returns `flatpak --version` output, or "" when unavailable.
func (c *Client) Version(ctx context.Context) string {
	if !c.ToolAvailable() {
		return ""
	}
	res, err := c.probe(ctx, "--version")
	if err != nil || !res.Success() {
		return ""
	}
	return res.Stdout
}

// IsInstalled reports whether `flatpak info` knows appID.
func (c *Client) IsInstalled(ctx context.Context, appID string) bool {
	if !c.ToolAvailable() {
		return false
	}
	res, err := c.probe(ctx, "info", appID)
	return err == nil && res.Success()
}
