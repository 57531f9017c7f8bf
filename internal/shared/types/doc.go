// Package types provides the wire structures shared by the bridge HTTP layer,
// the domain service and the Go client.
//
// Every response embeds an Ok flag; failures add Error and, for subprocess
// failures, the captured Stdout/Stderr of the flatpak invocation.
//
// Request Types:
//   - AppRequest: {appId} body of /install and /flatpak/run
//
// Response Types:
//   - StatusResponse: GET /status
//   - ListResponse: GET /flatpak/list
//   - ActionResponse: POST /install, /update, /flatpak/run
//   - ErrorResponse: any failure
//
// Records:
//   - InstalledApp: one row of the flatpak listing
package types
