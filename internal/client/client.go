// Package client talks to a running bridge over its HTTP API.
package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"

	"github.com/GriffinCanCode/flatbridge/internal/shared/types"
)

// DefaultTimeout covers probes. Install and update wait for the operator,
// so callers driving them usually lift it with SetTimeout(0).
const DefaultTimeout = 30 * time.Second

// APIError is a response with ok=false. StatusCode is 200 when the operator
// declined.
type APIError struct {
	StatusCode int
	Message    string
	Stdout     string
	Stderr     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("bridge returned %d: %s", e.StatusCode, e.Message)
}

// Cancelled reports whether the operator declined the action.
func (e *APIError) Cancelled() bool {
	return e.StatusCode == http.StatusOK
}

// Client is a bridge API client bound to one instance and its token.
type Client struct {
	resty *resty.Client
}

// New creates a client for the bridge at baseURL, e.g. http://127.0.0.1:8765.
func New(baseURL, token string) *Client {
	r := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(DefaultTimeout).
		SetHeader("User-Agent", "flatbridge-cli/1.0").
		SetHeader("Accept", "application/json").
		SetJSONMarshaler(sonic.ConfigStd.Marshal).
		SetJSONUnmarshaler(sonic.ConfigStd.Unmarshal)
	if token != "" {
		r.SetHeader(types.TokenHeader, token)
	}
	return &Client{resty: r}
}

// SetTimeout bounds every request. Zero waits indefinitely.
func (c *Client) SetTimeout(d time.Duration) *Client {
	c.resty.SetTimeout(d)
	return c
}

// Status fetches tool and channel state. It needs no token.
func (c *Client) Status(ctx context.Context) (types.StatusResponse, error) {
	var out types.StatusResponse
	resp, err := c.resty.R().SetContext(ctx).SetResult(&out).Get("/status")
	if err != nil {
		return out, fmt.Errorf("status: %w", err)
	}
	if resp.IsError() {
		return out, decodeError(resp)
	}
	return out, nil
}

// List fetches the installed applications.
func (c *Client) List(ctx context.Context) ([]types.InstalledApp, error) {
	var out types.ListResponse
	resp, err := c.resty.R().SetContext(ctx).SetResult(&out).Get("/flatpak/list")
	if err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	if resp.IsError() || !out.Ok {
		return nil, decodeError(resp)
	}
	return out.Apps, nil
}

// Install asks the bridge to install appID. It blocks until the operator
// decided and flatpak finished.
func (c *Client) Install(ctx context.Context, appID string) (types.ActionResponse, error) {
	return c.action(ctx, "/install", &types.AppRequest{AppID: appID})
}

// Update asks the bridge to update every user installation.
func (c *Client) Update(ctx context.Context) (types.ActionResponse, error) {
	return c.action(ctx, "/update", struct{}{})
}

// Run asks the bridge to launch an installed application.
func (c *Client) Run(ctx context.Context, appID string) (types.ActionResponse, error) {
	return c.action(ctx, "/flatpak/run", &types.AppRequest{AppID: appID})
}

func (c *Client) action(ctx context.Context, path string, body any) (types.ActionResponse, error) {
	var out types.ActionResponse
	resp, err := c.resty.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&out).
		Post(path)
	if err != nil {
		return out, fmt.Errorf("%s: %w", path, err)
	}
	if resp.IsError() || !out.Ok {
		return out, decodeError(resp)
	}
	return out, nil
}

func decodeError(resp *resty.Response) error {
	var body types.ActionResponse
	apiErr := &APIError{StatusCode: resp.StatusCode()}
	if err := sonic.ConfigStd.Unmarshal(resp.Body(), &body); err != nil || body.Error == "" {
		apiErr.Message = http.StatusText(resp.StatusCode())
		return apiErr
	}
	apiErr.Message = body.Error
	if body.Stdout != nil {
		apiErr.Stdout = *body.Stdout
	}
	if body.Stderr != nil {
		apiErr.Stderr = *body.Stderr
	}
	return apiErr
}
