package confirm

import (
	"fmt"
	"os"
	"strings"

	"github.com/GriffinCanCode/flatbridge/internal/command"
)

// Mode forces a provider or lets Select detect one.
type Mode string

const (
	ModeAuto    Mode = "auto"
	ModeKDialog Mode = "kdialog"
	ModeZenity  Mode = "zenity"
	ModeConsole Mode = "console"
)

// ParseMode validates a configured mode. Empty means auto.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "", ModeAuto:
		return ModeAuto, nil
	case ModeKDialog, ModeZenity, ModeConsole:
		return m, nil
	default:
		return "", fmt.Errorf("unknown confirm mode %q (want auto, kdialog, zenity or console)", s)
	}
}

// Env describes what the host offers for asking the operator.
type Env struct {
	Display  bool
	LookPath command.PathResolver
}

// DetectEnv reads the display variables of the current process.
func DetectEnv() Env {
	return Env{
		Display:  os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != "",
		LookPath: command.LookPath,
	}
}

func (e Env) has(name string) bool {
	if e.LookPath == nil {
		return false
	}
	_, err := e.LookPath(name)
	return err == nil
}

// Select picks the provider once at startup. In auto mode a graphical dialog
// is preferred when a display is present, KDE first, then GNOME; otherwise the
// console is used. A forced dialog mode fails when its tool is missing.
func Select(mode Mode, env Env, runner command.Runner, console *Console) (Provider, error) {
	switch mode {
	case ModeKDialog:
		if !env.has("kdialog") {
			return nil, fmt.Errorf("confirm mode kdialog: kdialog not found on PATH")
		}
		return &KDialog{Runner: runner}, nil
	case ModeZenity:
		if !env.has("zenity") {
			return nil, fmt.Errorf("confirm mode zenity: zenity not found on PATH")
		}
		return &Zenity{Runner: runner}, nil
	case ModeConsole:
		return console, nil
	case "", ModeAuto:
	default:
		return nil, fmt.Errorf("unknown confirm mode %q", mode)
	}

	if env.Display && env.has("kdialog") {
		return &KDialog{Runner: runner}, nil
	}
	if env.Display && env.has("zenity") {
		return &Zenity{Runner: runner}, nil
	}
	return console, nil
}
