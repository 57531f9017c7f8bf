package flatpak

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/flatbridge/internal/command"
	"github.com/GriffinCanCode/flatbridge/internal/shared/types"
	"github.com/GriffinCanCode/flatbridge/internal/testutil"
)

const extendedListing = "org.videolan.VLC\tVLC\t3.0.21\tstable\tflathub\tuser\n" +
	"org.mozilla.firefox\tFirefox\t131.0\tstable\tflathub\tsystem\n" +
	"com.github.tchx84.Flatseal\tFlatseal\t2.2.0\tstable\tflathub\tuser\n"

func newTestClient(runner command.Runner) *Client {
	return New(DefaultConfig(), runner, nil, testutil.Paths("flatpak"))
}

func TestParseListingExtended(t *testing.T) {
	apps := ParseListing(Schemas[0], extendedListing)

	require.Len(t, apps, 3)
	for _, app := range apps {
		assert.NotEmpty(t, app.ID)
		assert.NotEmpty(t, app.Name)
		assert.NotEmpty(t, app.Version)
		assert.NotEmpty(t, app.Branch)
		assert.NotEmpty(t, app.Origin)
		assert.NotEmpty(t, app.Installation)
	}

	assert.Equal(t, types.InstalledApp{
		ID:           "org.mozilla.firefox",
		Name:         "Firefox",
		Version:      "131.0",
		Branch:       "stable",
		Origin:       "flathub",
		Installation: "system",
	}, apps[0])
}

func TestParseListingWithoutInstallationColumn(t *testing.T) {
	out := "org.videolan.VLC\tVLC\t3.0.21\tstable\tflathub\n" +
		"org.gnome.Calculator\tCalculator\t46.1\tstable\tflathub\n"

	apps := ParseListing(Schemas[1], out)

	require.Len(t, apps, 2)
	for _, app := range apps {
		assert.Equal(t, "", app.Installation)
		assert.Equal(t, "flathub", app.Origin)
	}
}

func TestParseListingSkipsHeaderRows(t *testing.T) {
	out := "Application ID\tName\tVersion\tBranch\tOrigin\tInstallation\n" +
		"Application\tName\tVersion\n" +
		extendedListing

	apps := ParseListing(Schemas[0], out)

	require.Len(t, apps, 3)
	for _, app := range apps {
		assert.NotEqual(t, "Application", app.ID)
		assert.NotEqual(t, "Application ID", app.ID)
	}
}

func TestParseListingPadsShortRows(t *testing.T) {
	out := "org.example.Short\tShort\n"

	apps := ParseListing(Schemas[0], out)

	require.Len(t, apps, 1)
	assert.Equal(t, "org.example.Short", apps[0].ID)
	assert.Equal(t, "Short", apps[0].Name)
	assert.Equal(t, "", apps[0].Version)
	assert.Equal(t, "", apps[0].Branch)
	assert.Equal(t, "", apps[0].Origin)
	assert.Equal(t, "", apps[0].Installation)
}

func TestParseListingDropsBlankAndIDLessRows(t *testing.T) {
	out := "\n   \n\tNameOnly\t1.0\n org.example.Trim \t Trimmed \t1\tstable\tflathub\tuser\n"

	apps := ParseListing(Schemas[0], out)

	require.Len(t, apps, 1)
	assert.Equal(t, "org.example.Trim", apps[0].ID)
	assert.Equal(t, "Trimmed", apps[0].Name)
}

func TestParseListingSortsByNameThenID(t *testing.T) {
	out := "org.b.App\tbeta\t1\tstable\tflathub\tuser\n" +
		"org.z.NoName\t\t1\tstable\tflathub\tuser\n" +
		"org.a.App\tAlpha\t1\tstable\tflathub\tuser\n" +
		"org.c.App\tCharlie\t1\tstable\tflathub\tuser\n"

	apps := ParseListing(Schemas[0], out)

	ids := make([]string, 0, len(apps))
	for _, app := range apps {
		ids = append(ids, app.ID)
	}
	assert.Equal(t, []string{"org.a.App", "org.b.App", "org.c.App", "org.z.NoName"}, ids)
}

func TestParseListingEmptyOutput(t *testing.T) {
	apps := ParseListing(Schemas[0], "")
	assert.NotNil(t, apps)
	assert.Empty(t, apps)
}

func TestListUsesExtendedSchemaFirst(t *testing.T) {
	runner := testutil.NewFakeRunner().
		Reply("flatpak list --app --columns=application,name,version,branch,origin,installation",
			command.Result{Stdout: extendedListing})

	apps, err := newTestClient(runner).List(context.Background())

	require.NoError(t, err)
	assert.Len(t, apps, 3)
	assert.Len(t, runner.Calls(), 1)
}

func TestListFallsBackToBasicSchema(t *testing.T) {
	runner := testutil.NewFakeRunner().
		Reply("flatpak list --app --columns=application,name,version,branch,origin,installation",
			command.Result{ExitCode: 1, Stderr: "error: Unknown column: installation"}).
		Reply("flatpak list --app --columns=application,name,version,branch,origin",
			command.Result{Stdout: "org.videolan.VLC\tVLC\t3.0.21\tstable\tflathub"})

	apps, err := newTestClient(runner).List(context.Background())

	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, "org.videolan.VLC", apps[0].ID)
	assert.Equal(t, "", apps[0].Installation)
	assert.Len(t, runner.Calls(), 2)
}

func TestListAggregateFailureKeepsLastError(t *testing.T) {
	runner := testutil.NewFakeRunner().
		Reply("flatpak list --app --columns=application,name,version,branch,origin,installation",
			command.Result{ExitCode: 1, Stderr: "first failure"}).
		Reply("flatpak list --app --columns=application,name,version,branch,origin",
			command.Result{ExitCode: 1, Stdout: "second failure"})

	_, err := newTestClient(runner).List(context.Background())

	assert.Equal(t, []string{
		"flatpak list --app --columns=application,name,version,branch,origin,installation",
		"flatpak list --app --columns=application,name,version,branch,origin",
	}, runner.Lines())

	var listErr *ListError
	require.True(t, errors.As(err, &listErr))
	assert.Equal(t, "second failure", listErr.LastErr)
	assert.Equal(t, "could not list flatpaks: second failure", err.Error())
}

func TestListErrorUnknown(t *testing.T) {
	err := &ListError{}
	assert.Equal(t, "could not list flatpaks: unknown error", err.Error())
}

func TestListToolMissing(t *testing.T) {
	runner := testutil.NewFakeRunner()
	client := New(DefaultConfig(), runner, nil, testutil.Paths())

	_, err := client.List(context.Background())

	assert.ErrorIs(t, err, ErrToolMissing)
	assert.Empty(t, runner.Calls())
}
