package command

import (
	"fmt"
	"os"
	"os/exec"
)

// Launcher starts a program without waiting for it.
type Launcher interface {
	Start(name string, args ...string) error
}

// DetachedLauncher starts programs in their own session with stdio bound to
// the null device, so they outlive the request and never write into the
// bridge's terminal.
type DetachedLauncher struct{}

// NewDetachedLauncher creates a launcher.
func NewDetachedLauncher() *DetachedLauncher {
	return &DetachedLauncher{}
}

// Start spawns name with args and returns as soon as the process exists.
// The child is reaped in the background.
func (l *DetachedLauncher) Start(name string, args ...string) error {
	devNull, err := os.OpenFile(os.DevNull, os.O_RDWR, 0)
	if err != nil {
		return fmt.Errorf("open %s: %w", os.DevNull, err)
	}
	defer devNull.Close()

	cmd := exec.Command(name, args...)
	cmd.Stdin = devNull
	cmd.Stdout = devNull
	cmd.Stderr = devNull
	cmd.SysProcAttr = detachedAttrs()

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to launch %s: %w", name, err)
	}

	go func() {
		_ = cmd.Wait()
	}()

	return nil
}
