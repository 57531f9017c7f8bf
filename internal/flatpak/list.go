package flatpak

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/GriffinCanCode/flatbridge/internal/shared/types"
)

// Column names understood by `flatpak list --columns`.
const (
	ColApplication  = "application"
	ColName         = "name"
	ColVersion      = "version"
	ColBranch       = "branch"
	ColOrigin       = "origin"
	ColInstallation = "installation"
)

// Schema is one column set the listing may be requested with.
type Schema struct {
	Name    string
	Columns []string
}

// Arg renders the --columns value.
func (s Schema) Arg() string {
	return "--columns=" + strings.Join(s.Columns, ",")
}

func (s Schema) index(col string) int {
	for i, c := range s.Columns {
		if c == col {
			return i
		}
	}
	return -1
}

// Schemas are tried in order; older flatpak releases reject the
// installation column.
var Schemas = []Schema{
	{
		Name:    "extended",
		Columns: []string{ColApplication, ColName, ColVersion, ColBranch, ColOrigin, ColInstallation},
	},
	{
		Name:    "basic",
		Columns: []string{ColApplication, ColName, ColVersion, ColBranch, ColOrigin},
	},
}

// ListError is returned when every schema failed.
type ListError struct {
	LastErr string
}

func (e *ListError) Error() string {
	msg := e.LastErr
	if msg == "" {
		msg = "unknown error"
	}
	return "could not list flatpaks: " + msg
}

// ErrToolMissing is returned by List when flatpak is not on PATH.
var ErrToolMissing = errors.New("flatpak not installed")

// List returns installed applications across user and system installations.
func (c *Client) List(ctx context.Context) ([]types.InstalledApp, error) {
	if !c.ToolAvailable() {
		return nil, ErrToolMissing
	}
	return c.listWith(ctx, Schemas)
}

func (c *Client) listWith(ctx context.Context, schemas []Schema) ([]types.InstalledApp, error) {
	lastErr := ""
	for _, schema := range schemas {
		res, err := c.probe(ctx, "list", "--app", schema.Arg())
		if err != nil {
			lastErr = err.Error()
			continue
		}
		if !res.Success() {
			lastErr = res.Stderr
			if lastErr == "" {
				lastErr = res.Stdout
			}
			if lastErr == "" {
				lastErr = fmt.Sprintf("%s exited %d", schema.Arg(), res.ExitCode)
			}
			continue
		}
		return ParseListing(schema, res.Stdout), nil
	}
	return nil, &ListError{LastErr: lastErr}
}

// ParseListing converts tab separated rows laid out per schema into records.
// It never fails: missing trailing fields become empty strings, header rows
// and rows without an identifier are dropped.
func ParseListing(schema Schema, output string) []types.InstalledApp {
	apps := make([]types.InstalledApp, 0)

	for _, line := range strings.Split(output, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		parts := strings.Split(line, "\t")
		if isHeader(parts[0]) {
			continue
		}
		for len(parts) < len(schema.Columns) {
			parts = append(parts, "")
		}

		field := func(col string) string {
			i := schema.index(col)
			if i < 0 {
				return ""
			}
			return strings.TrimSpace(parts[i])
		}

		app := types.InstalledApp{
			ID:           field(ColApplication),
			Name:         field(ColName),
			Version:      field(ColVersion),
			Branch:       field(ColBranch),
			Origin:       field(ColOrigin),
			Installation: field(ColInstallation),
		}
		if app.ID == "" {
			continue
		}
		apps = append(apps, app)
	}

	sort.SliceStable(apps, func(i, j int) bool {
		return sortKey(apps[i]) < sortKey(apps[j])
	})
	return apps
}

func isHeader(first string) bool {
	switch strings.ToLower(strings.TrimSpace(first)) {
	case "application", "application id":
		return true
	}
	return false
}

func sortKey(app types.InstalledApp) string {
	if app.Name != "" {
		return strings.ToLower(app.Name)
	}
	return strings.ToLower(app.ID)
}
