// Package command executes external programs for the bridge.
//
// Programs are always started with a discrete argument vector; nothing is
// ever passed through a shell, so metacharacters inside arguments are inert.
//
// Two entry points exist:
//   - Runner: synchronous execution capturing trimmed stdout, stderr and the
//     exit code. A nonzero exit is data, not an error.
//   - Launcher: fire-and-forget start of a detached process in its own
//     session whose handle is released immediately.
//
// Example Usage:
//
//	runner := command.NewExecRunner(0)
//	res, err := runner.Run(ctx, "flatpak", "--user", "remotes")
//	if err != nil {
//	    // flatpak could not be started at all
//	}
//	if res.ExitCode != 0 {
//	    log.Printf("remotes failed: %s", res.Stderr)
//	}
package command
