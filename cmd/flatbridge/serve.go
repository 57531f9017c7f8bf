package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gookit/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/GriffinCanCode/flatbridge/internal/infrastructure/config"
	"github.com/GriffinCanCode/flatbridge/internal/infrastructure/server"
)

type serveOptions struct {
	port        int
	confirmMode string
	logLevel    string
	dev         bool
}

func newServeCommand() *cobra.Command {
	opts := &serveOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the bridge on 127.0.0.1",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.IntVar(&opts.port, "port", 8765, "preferred port on 127.0.0.1, 0 for an ephemeral port (env BRIDGE_PORT)")
	f.StringVar(&opts.confirmMode, "confirm", "auto", "confirmation provider: auto, kdialog, zenity or console (env CONFIRM_MODE)")
	f.StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn or error (env LOG_LEVEL)")
	f.BoolVar(&opts.dev, "dev", false, "human readable development logging (env LOG_DEV)")
	return cmd
}

// loadConfig reads the environment; flags given on the command line win.
func loadConfig(cmd *cobra.Command, opts *serveOptions) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("port") {
		cfg.Server.Port = opts.port
	}
	if flags.Changed("confirm") {
		cfg.Confirm.Mode = opts.confirmMode
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = opts.logLevel
	}
	if flags.Changed("dev") {
		cfg.Logging.Development = opts.dev
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runServe(cmd *cobra.Command, opts *serveOptions) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.NewServer(cfg, server.Deps{Version: version})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	defer srv.Close()

	out := cmd.OutOrStdout()
	printBanner(out, bannerInfo{
		Title:    cfg.Confirm.Title,
		Version:  version,
		URL:      srv.URL(),
		Token:    srv.Token().String(),
		Provider: srv.Provider().Name(),
		Flatpak:  srv.ToolAvailable(),
	}, isTerminal(out))

	go srv.WarmUp(ctx)

	return srv.Run(ctx)
}

type bannerInfo struct {
	Title    string
	Version  string
	URL      string
	Token    string
	Provider string
	Flatpak  bool
}

func printBanner(w io.Writer, info bannerInfo, styled bool) {
	paint := func(style color.Color, s string) string {
		if styled {
			return style.Sprint(s)
		}
		return s
	}

	fmt.Fprintf(w, "%s v%s\n", paint(color.Bold, info.Title), info.Version)
	fmt.Fprintf(w, "  URL:     %s\n", paint(color.Cyan, info.URL))
	fmt.Fprintf(w, "  Token:   %s (auto-injected into UI)\n", info.Token)
	fmt.Fprintf(w, "  Confirm: %s\n", info.Provider)
	if !info.Flatpak {
		fmt.Fprintln(w)
		fmt.Fprintln(w, paint(color.Yellow, "NOTE: flatpak is not installed; Store install buttons will fail."))
		fmt.Fprintln(w, "  Arch:   sudo pacman -S flatpak")
		fmt.Fprintln(w, "  Ubuntu: sudo apt install flatpak")
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Close this terminal to stop MujerOS.")
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
