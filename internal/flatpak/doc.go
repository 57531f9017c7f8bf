// Package flatpak drives the flatpak command-line tool on behalf of the bridge.
//
// The package never reimplements flatpak; every operation is one subprocess
// invocation through a command.Runner, always with --user scope for mutating
// commands.
//
// Capability probe:
//   - ToolAvailable: flatpak resolvable on PATH
//   - ChannelConfigured: the configured remote (flathub) is listed by
//     `flatpak --user remotes`
//   - EnsureChannel: `flatpak --user remote-add --if-not-exists`, idempotent
//
// Listing:
//
// `flatpak list --app --columns=...` output is tab separated and its column
// set depends on the flatpak version. List tries an ordered set of schemas
// (see Schemas) and parses the first one the tool accepts. Short rows are
// padded, stray header rows are skipped and the result is sorted by display
// name.
//
// Actions:
//   - Install: `flatpak --user install -y <remote> <appId>`
//   - UpdateAll: `flatpak --user update -y`
//   - Launch: detached `flatpak run <appId>`
package flatpak
