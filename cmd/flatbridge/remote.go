package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/flatbridge/internal/client"
	"github.com/GriffinCanCode/flatbridge/internal/shared/types"
)

const defaultURL = "http://127.0.0.1:8765"

type clientOptions struct {
	url     string
	token   string
	output  string
	timeout time.Duration
}

func addClientFlags(cmd *cobra.Command, timeout time.Duration) *clientOptions {
	opts := &clientOptions{}

	url := os.Getenv("FLATBRIDGE_URL")
	if url == "" {
		url = defaultURL
	}

	f := cmd.Flags()
	f.StringVar(&opts.url, "url", url, "bridge base URL (env FLATBRIDGE_URL)")
	f.StringVar(&opts.token, "token", os.Getenv("FLATBRIDGE_TOKEN"), "session token printed by the bridge at startup (env FLATBRIDGE_TOKEN)")
	f.StringVarP(&opts.output, "output", "o", "table", "output format: table, json, yaml or toml")
	f.DurationVar(&opts.timeout, "timeout", timeout, "request timeout, 0 waits indefinitely")
	return opts
}

func (o *clientOptions) client() *client.Client {
	return client.New(o.url, o.token).SetTimeout(o.timeout)
}

func newStatusCommand() *cobra.Command {
	var opts *clientOptions
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show flatpak and channel state of a running bridge",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := parseFormat(opts.output)
			if err != nil {
				return err
			}
			status, err := opts.client().Status(cmd.Context())
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), format, status, func(w io.Writer) error {
				tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
				fmt.Fprintf(tw, "Bridge\t%s\n", status.Version)
				fmt.Fprintf(tw, "Flatpak\t%s\n", yesNo(status.Flatpak, status.FlatpakVersion))
				fmt.Fprintf(tw, "Flathub\t%s\n", yesNo(status.Flathub, ""))
				return tw.Flush()
			})
		},
	}
	opts = addClientFlags(cmd, client.DefaultTimeout)
	return cmd
}

func newListCommand() *cobra.Command {
	var opts *clientOptions
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List installed applications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := parseFormat(opts.output)
			if err != nil {
				return err
			}
			apps, err := opts.client().List(cmd.Context())
			if err != nil {
				return err
			}
			doc := types.ListResponse{Ok: true, Apps: apps}
			return render(cmd.OutOrStdout(), format, doc, func(w io.Writer) error {
				return appTable(w, apps)
			})
		},
	}
	opts = addClientFlags(cmd, client.DefaultTimeout)
	return cmd
}

func newInstallCommand() *cobra.Command {
	var opts *clientOptions
	cmd := &cobra.Command{
		Use:   "install APP_ID",
		Short: "Install an application from the channel after host confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseFormat(opts.output)
			if err != nil {
				return err
			}
			resp, err := opts.client().Install(cmd.Context(), args[0])
			return finishAction(cmd, format, resp, err)
		},
	}
	opts = addClientFlags(cmd, 0)
	return cmd
}

func newUpdateCommand() *cobra.Command {
	var opts *clientOptions
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update every user installation after host confirmation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := parseFormat(opts.output)
			if err != nil {
				return err
			}
			resp, err := opts.client().Update(cmd.Context())
			return finishAction(cmd, format, resp, err)
		},
	}
	opts = addClientFlags(cmd, 0)
	return cmd
}

func newRunCommand() *cobra.Command {
	var opts *clientOptions
	cmd := &cobra.Command{
		Use:   "run APP_ID",
		Short: "Launch an installed application on the host",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseFormat(opts.output)
			if err != nil {
				return err
			}
			resp, err := opts.client().Run(cmd.Context(), args[0])
			return finishAction(cmd, format, resp, err)
		},
	}
	opts = addClientFlags(cmd, client.DefaultTimeout)
	return cmd
}

// finishAction prints a successful action, or the captured output of a
// failed one before returning its error.
func finishAction(cmd *cobra.Command, format outputFormat, resp types.ActionResponse, err error) error {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Cancelled() {
			return errors.New("cancelled by operator")
		}
		errOut := cmd.ErrOrStderr()
		if apiErr.Stdout != "" {
			fmt.Fprintln(errOut, apiErr.Stdout)
		}
		if apiErr.Stderr != "" {
			fmt.Fprintln(errOut, apiErr.Stderr)
		}
		return errors.New(apiErr.Message)
	}
	if err != nil {
		return err
	}

	return render(cmd.OutOrStdout(), format, resp, func(w io.Writer) error {
		if resp.Stdout != nil && *resp.Stdout != "" {
			fmt.Fprintln(w, *resp.Stdout)
		}
		if resp.AppID != "" {
			_, err := fmt.Fprintf(w, "Done: %s\n", resp.AppID)
			return err
		}
		_, err := fmt.Fprintln(w, "Done.")
		return err
	})
}

func appTable(w io.Writer, apps []types.InstalledApp) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tID\tVERSION\tBRANCH\tORIGIN\tINSTALLATION")
	for _, app := range apps {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			dash(app.Name), app.ID, dash(app.Version), dash(app.Branch), dash(app.Origin), dash(app.Installation))
	}
	return tw.Flush()
}

func yesNo(ok bool, detail string) string {
	s := "no"
	if ok {
		s = "yes"
	}
	if detail != "" {
		s += " (" + detail + ")"
	}
	return s
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
