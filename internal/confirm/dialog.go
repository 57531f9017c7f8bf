package confirm

import (
	"context"
	"fmt"

	"github.com/GriffinCanCode/flatbridge/internal/command"
)

// KDialog asks through KDE's kdialog.
type KDialog struct {
	Runner command.Runner
}

// Name identifies the provider
func (k *KDialog) Name() string { return "kdialog" }

// Confirm shows a yes/no dialog; exit status 0 approves.
func (k *KDialog) Confirm(ctx context.Context, req Request) (Decision, error) {
	return runDialog(ctx, k.Runner, "kdialog", "--title", req.Title, "--yesno", req.Message)
}

// Zenity asks through GNOME's zenity.
type Zenity struct {
	Runner command.Runner
}

// Name identifies the provider
func (z *Zenity) Name() string { return "zenity" }

// Confirm shows a question dialog; exit status 0 approves.
func (z *Zenity) Confirm(ctx context.Context, req Request) (Decision, error) {
	return runDialog(ctx, z.Runner, "zenity", "--question", "--title", req.Title, "--text", req.Message)
}

func runDialog(ctx context.Context, runner command.Runner, name string, args ...string) (Decision, error) {
	res, err := runner.Run(ctx, name, args...)
	if err != nil {
		return Rejected, fmt.Errorf("%s dialog: %w", name, err)
	}
	if res.Success() {
		return Approved, nil
	}
	return Rejected, nil
}
