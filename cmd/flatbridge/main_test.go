package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/flatbridge/internal/shared/types"
)

const listBody = `{"ok":true,"apps":[
	{"id":"org.videolan.VLC","name":"VLC","version":"3.0.21","branch":"stable","origin":"flathub","installation":"user"},
	{"id":"org.example.Bare","name":"","version":"","branch":"stable","origin":"flathub","installation":""}]}`

func fakeBridge(t *testing.T, routes map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.Method+" "+r.URL.Path]
		if !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			io.WriteString(w, `{"ok":false,"error":"Not found"}`)
			return
		}
		status := http.StatusOK
		if strings.Contains(body, `"ok":false`) && !strings.Contains(body, "User cancelled") {
			status = http.StatusInternalServerError
		}
		if r.URL.Path != "/status" && r.Header.Get(types.TokenHeader) != "secret" {
			status, body = http.StatusUnauthorized, `{"ok":false,"error":"Bad token"}`
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	root := newRootCommand()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func serveFlags(t *testing.T, args ...string) (*cobra.Command, *serveOptions) {
	t.Helper()
	opts := &serveOptions{}
	cmd := &cobra.Command{Use: "serve"}
	cmd.Flags().IntVar(&opts.port, "port", 8765, "")
	cmd.Flags().StringVar(&opts.confirmMode, "confirm", "auto", "")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "info", "")
	cmd.Flags().BoolVar(&opts.dev, "dev", false, "")
	require.NoError(t, cmd.Flags().Parse(args))
	return cmd, opts
}

func TestRootAcceptsServeFlags(t *testing.T) {
	root := newRootCommand()

	for _, name := range []string{"port", "confirm", "log-level", "dev"} {
		assert.NotNil(t, root.Flags().Lookup(name), name)
	}
	assert.NotNil(t, root.RunE)
}

func TestLoadConfigFlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("BRIDGE_PORT", "9000")
	t.Setenv("CONFIRM_MODE", "kdialog")

	cmd, opts := serveFlags(t, "--confirm", "console", "--dev")

	cfg, err := loadConfig(cmd, opts)

	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "console", cfg.Confirm.Mode)
	assert.True(t, cfg.Logging.Development)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadConfigRejectsBadFlag(t *testing.T) {
	cmd, opts := serveFlags(t, "--port", "70000")

	_, err := loadConfig(cmd, opts)
	assert.Error(t, err)
}

func TestBanner(t *testing.T) {
	info := bannerInfo{
		Title:    "MujerOS Installer",
		Version:  "3.3-allinone",
		URL:      "http://127.0.0.1:8765",
		Token:    "tok",
		Provider: "console",
		Flatpak:  true,
	}

	var buf bytes.Buffer
	printBanner(&buf, info, false)

	out := buf.String()
	assert.Contains(t, out, "MujerOS Installer v3.3-allinone")
	assert.Contains(t, out, "http://127.0.0.1:8765")
	assert.Contains(t, out, "tok (auto-injected into UI)")
	assert.Contains(t, out, "Close this terminal to stop MujerOS.")
	assert.NotContains(t, out, "flatpak is not installed")
	assert.NotContains(t, out, "\x1b[")

	buf.Reset()
	info.Flatpak = false
	printBanner(&buf, info, false)

	out = buf.String()
	assert.Contains(t, out, "NOTE: flatpak is not installed; Store install buttons will fail.")
	assert.Contains(t, out, "sudo pacman -S flatpak")
	assert.Contains(t, out, "sudo apt install flatpak")
}

func TestStatusCommand(t *testing.T) {
	srv := fakeBridge(t, map[string]string{
		"GET /status": `{"ok":true,"flatpak":true,"flathub":false,"version":"3.3","flatpakVersion":"Flatpak 1.14.10"}`,
	})

	out, _, err := execute(t, "status", "--url", srv.URL)

	require.NoError(t, err)
	assert.Contains(t, out, "yes (Flatpak 1.14.10)")
	assert.Contains(t, out, "Flathub")
	assert.Contains(t, out, "no")
}

func TestListOutputFormats(t *testing.T) {
	srv := fakeBridge(t, map[string]string{"GET /flatpak/list": listBody})

	tests := []struct {
		format string
		check  func(t *testing.T, out string)
	}{
		{"table", func(t *testing.T, out string) {
			lines := strings.Split(strings.TrimSpace(out), "\n")
			require.Len(t, lines, 3)
			assert.True(t, strings.HasPrefix(lines[0], "NAME"))
			assert.Contains(t, out, "org.videolan.VLC")
			assert.Contains(t, lines[2], "-")
		}},
		{"json", func(t *testing.T, out string) {
			var doc types.ListResponse
			require.NoError(t, sonic.ConfigStd.UnmarshalFromString(out, &doc))
			require.Len(t, doc.Apps, 2)
			assert.Equal(t, "org.videolan.VLC", doc.Apps[0].ID)
		}},
		{"yaml", func(t *testing.T, out string) {
			assert.Contains(t, out, "apps:")
			assert.Contains(t, out, "id: org.videolan.VLC")
			assert.Contains(t, out, "installation: user")
		}},
		{"toml", func(t *testing.T, out string) {
			assert.Contains(t, out, "[[apps]]")
			assert.Contains(t, out, "org.videolan.VLC")
			assert.Contains(t, out, "ok = true")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			out, _, err := execute(t, "list", "--url", srv.URL, "--token", "secret", "-o", tt.format)
			require.NoError(t, err)
			tt.check(t, out)
		})
	}
}

func TestListUnknownFormat(t *testing.T) {
	_, _, err := execute(t, "list", "--url", "http://127.0.0.1:1", "-o", "xml")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestListBadToken(t *testing.T) {
	srv := fakeBridge(t, map[string]string{"GET /flatpak/list": listBody})

	_, _, err := execute(t, "list", "--url", srv.URL, "--token", "nope")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Bad token")
}

func TestInstallCommand(t *testing.T) {
	srv := fakeBridge(t, map[string]string{
		"POST /install": `{"ok":true,"appId":"org.videolan.VLC","stdout":"Installing… done","stderr":""}`,
	})

	out, _, err := execute(t, "install", "org.videolan.VLC", "--url", srv.URL, "--token", "secret")

	require.NoError(t, err)
	assert.Contains(t, out, "Installing… done")
	assert.Contains(t, out, "Done: org.videolan.VLC")
}

func TestInstallCancelled(t *testing.T) {
	srv := fakeBridge(t, map[string]string{
		"POST /install": `{"ok":false,"error":"User cancelled"}`,
	})

	_, _, err := execute(t, "install", "org.videolan.VLC", "--url", srv.URL, "--token", "secret")

	require.Error(t, err)
	assert.Equal(t, "cancelled by operator", err.Error())
}

func TestUpdateFailureShowsOutput(t *testing.T) {
	srv := fakeBridge(t, map[string]string{
		"POST /update": `{"ok":false,"stdout":"partial","stderr":"error: network","error":"flatpak update failed (exit 1)"}`,
	})

	_, stderr, err := execute(t, "update", "--url", srv.URL, "--token", "secret")

	require.Error(t, err)
	assert.Equal(t, "flatpak update failed (exit 1)", err.Error())
	assert.Contains(t, stderr, "partial")
	assert.Contains(t, stderr, "error: network")
}

func TestRunCommandJSON(t *testing.T) {
	srv := fakeBridge(t, map[string]string{
		"POST /flatpak/run": `{"ok":true,"appId":"org.gnome.Calculator"}`,
	})

	out, _, err := execute(t, "run", "org.gnome.Calculator", "--url", srv.URL, "--token", "secret", "-o", "json")

	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true,"appId":"org.gnome.Calculator"}`, out)
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "version")

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "flatbridge "+version))
}
