package flatpak

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/flatbridge/internal/command"
	"github.com/GriffinCanCode/flatbridge/internal/testutil"
)

func TestToolAvailable(t *testing.T) {
	runner := testutil.NewFakeRunner()

	present := New(DefaultConfig(), runner, nil, testutil.Paths("flatpak"))
	absent := New(DefaultConfig(), runner, nil, testutil.Paths("kdialog"))

	assert.True(t, present.ToolAvailable())
	assert.False(t, absent.ToolAvailable())
}

func TestChannelConfigured(t *testing.T) {
	tests := []struct {
		name   string
		result command.Result
		want   bool
	}{
		{
			name:   "tab separated",
			result: command.Result{Stdout: "flathub\tuser"},
			want:   true,
		},
		{
			name:   "space separated",
			result: command.Result{Stdout: "fedora  system\nflathub user"},
			want:   true,
		},
		{
			name:   "bare name",
			result: command.Result{Stdout: "flathub"},
			want:   true,
		},
		{
			name:   "prefix only",
			result: command.Result{Stdout: "flathub-beta\tuser"},
			want:   false,
		},
		{
			name:   "empty",
			result: command.Result{},
			want:   false,
		},
		{
			name:   "query fails",
			result: command.Result{ExitCode: 1, Stdout: "flathub\tuser"},
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := testutil.NewFakeRunner().Reply("flatpak --user remotes", tt.result)
			client := newTestClient(runner)

			assert.Equal(t, tt.want, client.ChannelConfigured(context.Background()))
		})
	}
}

func TestChannelConfiguredToolMissing(t *testing.T) {
	runner := testutil.NewFakeRunner().Reply("flatpak --user remotes", command.Result{Stdout: "flathub"})
	client := New(DefaultConfig(), runner, nil, testutil.Paths())

	assert.False(t, client.ChannelConfigured(context.Background()))
	assert.Empty(t, runner.Calls())
}

func TestChannelConfiguredRunnerError(t *testing.T) {
	runner := testutil.NewFakeRunner().On("flatpak --user remotes",
		func(string, []string) (command.Result, error) {
			return command.Result{}, errors.New("failed to start flatpak")
		})

	assert.False(t, newTestClient(runner).ChannelConfigured(context.Background()))
}

func TestEnsureChannelIdempotent(t *testing.T) {
	runner := testutil.NewFakeRunner()
	client := newTestClient(runner)

	require.NoError(t, client.EnsureChannel(context.Background()))
	require.NoError(t, client.EnsureChannel(context.Background()))

	lines := runner.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, lines[0], lines[1])
	assert.Equal(t,
		"flatpak --user remote-add --if-not-exists flathub https://dl.flathub.org/repo/flathub.flatpakrepo",
		lines[0])
}

func TestEnsureChannelToolMissing(t *testing.T) {
	runner := testutil.NewFakeRunner()
	client := New(DefaultConfig(), runner, nil, testutil.Paths())

	assert.NoError(t, client.EnsureChannel(context.Background()))
	assert.Empty(t, runner.Calls())
}

func TestEnsureChannelFailure(t *testing.T) {
	runner := testutil.NewFakeRunner().
		Reply("flatpak --user remote-add", command.Result{ExitCode: 1, Stderr: "network unreachable"})

	err := newTestClient(runner).EnsureChannel(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "network unreachable")
}

func TestEnsureChannelUsesConfiguredRemote(t *testing.T) {
	runner := testutil.NewFakeRunner()
	cfg := Config{Remote: "mirror", RemoteURL: "https://example.invalid/mirror.flatpakrepo"}
	client := New(cfg, runner, nil, testutil.Paths("flatpak"))

	require.NoError(t, client.EnsureChannel(context.Background()))
	assert.True(t, runner.Called("flatpak --user remote-add --if-not-exists mirror https://example.invalid/mirror.flatpakrepo"))
	assert.Equal(t, "mirror", client.Remote())
}

func TestVersion(t *testing.T) {
	runner := testutil.NewFakeRunner().Reply("flatpak --version", command.Result{Stdout: "Flatpak 1.14.10"})
	assert.Equal(t, "Flatpak 1.14.10", newTestClient(runner).Version(context.Background()))

	failing := testutil.NewFakeRunner().Reply("flatpak --version", command.Result{ExitCode: 2})
	assert.Equal(t, "", newTestClient(failing).Version(context.Background()))
}

func TestIsInstalled(t *testing.T) {
	runner := testutil.NewFakeRunner().
		Reply("flatpak info", command.Result{ExitCode: 1, Stderr: "error: not installed"}).
		Reply("flatpak info org.videolan.VLC", command.Result{Stdout: "VLC - media player"})
	client := newTestClient(runner)

	assert.True(t, client.IsInstalled(context.Background(), "org.videolan.VLC"))
	assert.False(t, client.IsInstalled(context.Background(), "com.example.NotInstalled"))
}

func TestProbeAppliesTimeout(t *testing.T) {
	var deadline time.Time
	runner := testutil.NewFakeRunner()
	runner.On("flatpak --version", func(string, []string) (command.Result, error) {
		return command.Result{Stdout: "Flatpak 1.0"}, nil
	})

	cfg := DefaultConfig()
	cfg.ProbeTimeout = time.Minute
	client := New(cfg, &deadlineRunner{Runner: runner, seen: &deadline}, nil, testutil.Paths("flatpak"))

	client.Version(context.Background())
	assert.False(t, deadline.IsZero())
}

func TestInstallAndUpdateArgs(t *testing.T) {
	runner := testutil.NewFakeRunner()
	client := newTestClient(runner)

	_, err := client.Install(context.Background(), "org.videolan.VLC")
	require.NoError(t, err)
	_, err = client.UpdateAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"flatpak --user install -y flathub org.videolan.VLC",
		"flatpak --user update -y",
	}, runner.Lines())
}

func TestLaunch(t *testing.T) {
	launcher := testutil.NewMockLauncher(t)
	client := New(DefaultConfig(), testutil.NewFakeRunner(), launcher, testutil.Paths("flatpak"))

	require.NoError(t, client.Launch("org.videolan.VLC"))
	launcher.AssertCalled(t, "Start", "flatpak", []string{"run", "org.videolan.VLC"})
}

type deadlineRunner struct {
	command.Runner
	seen *time.Time
}

func (r *deadlineRunner) Run(ctx context.Context, name string, args ...string) (command.Result, error) {
	if d, ok := ctx.Deadline(); ok {
		*r.seen = d
	}
	return r.Runner.Run(ctx, name, args...)
}
