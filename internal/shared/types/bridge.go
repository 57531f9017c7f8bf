package types

// TokenHeader carries the session token on every protected request.
const TokenHeader = "X-Installer-Token"

// AppRequest is the body of /install and /flatpak/run.
type AppRequest struct {
	AppID string `json:"appId"`
}

// InstalledApp is one installed application as reported by the listing.
// Missing columns are empty strings, never absent keys.
type InstalledApp struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Version      string `json:"version"`
	Branch       string `json:"branch"`
	Origin       string `json:"origin"`
	Installation string `json:"installation"`
}

// StatusResponse reports tool presence and channel configuration.
type StatusResponse struct {
	Ok             bool   `json:"ok"`
	Flatpak        bool   `json:"flatpak"`
	Flathub        bool   `json:"flathub"`
	Version        string `json:"version"`
	FlatpakVersion string `json:"flatpakVersion,omitempty"`
}

// ListResponse carries the installed applications.
type ListResponse struct {
	Ok   bool           `json:"ok"`
	Apps []InstalledApp `json:"apps"`
}

// ActionResponse is returned by install, update and run. AppID is omitted for
// update; Stdout/Stderr are omitted for run.
type ActionResponse struct {
	Ok     bool    `json:"ok"`
	AppID  string  `json:"appId,omitempty"`
	Stdout *string `json:"stdout,omitempty"`
	Stderr *string `json:"stderr,omitempty"`
	Error  string  `json:"error,omitempty"`
}

// ErrorResponse is the shape of every failure without command output.
type ErrorResponse struct {
	Ok    bool   `json:"ok"`
	Error string `json:"error"`
}
