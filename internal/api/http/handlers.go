package http

import (
	"context"
	"io"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/flatbridge/internal/domain/bridge"
	"github.com/GriffinCanCode/flatbridge/internal/shared/types"
	"github.com/GriffinCanCode/flatbridge/internal/shared/utils"
)

// Bridge is the operation surface the handlers drive. *bridge.Service
// implements it.
type Bridge interface {
	Status(ctx context.Context) types.StatusResponse
	List(ctx context.Context) ([]types.InstalledApp, error)
	Install(ctx context.Context, appID string) (types.ActionResponse, error)
	Update(ctx context.Context) (types.ActionResponse, error)
	Run(ctx context.Context, appID string) (types.ActionResponse, error)
}

// Handlers contains all HTTP handlers
type Handlers struct {
	bridge Bridge
}

// NewHandlers creates a new handler set
func NewHandlers(b Bridge) *Handlers {
	return &Handlers{bridge: b}
}

// Status reports tool presence and channel configuration
func (h *Handlers) Status(c *gin.Context) {
	c.JSON(http.StatusOK, h.bridge.Status(c.Request.Context()))
}

// List returns installed applications
func (h *Handlers) List(c *gin.Context) {
	apps, err := h.bridge.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.ListResponse{Ok: true, Apps: apps})
}

// Install installs one application after operator approval
func (h *Handlers) Install(c *gin.Context) {
	req, ok := decodeAppRequest(c)
	if !ok {
		return
	}

	resp, err := h.bridge.Install(c.Request.Context(), req.AppID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update updates every user installation after operator approval.
// The request body is ignored.
func (h *Handlers) Update(c *gin.Context) {
	resp, err := h.bridge.Update(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Run launches an installed application
func (h *Handlers) Run(c *gin.Context) {
	req, ok := decodeAppRequest(c)
	if !ok {
		return
	}

	resp, err := h.bridge.Run(c.Request.Context(), req.AppID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// decodeAppRequest reads {"appId": "..."}. A body that is not an object, an
// appId that is not a string, or an oversized body is answered with the
// same 400 an invalid identifier gets.
func decodeAppRequest(c *gin.Context) (types.AppRequest, bool) {
	var req types.AppRequest

	raw, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, utils.MaxJSONSize))
	if err == nil && len(raw) > 0 {
		err = sonic.ConfigStd.Unmarshal(raw, &req)
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Ok: false, Error: bridge.MsgInvalidAppID})
		return req, false
	}
	return req, true
}
