package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/flatbridge/internal/domain/bridge"
	"github.com/GriffinCanCode/flatbridge/internal/shared/types"
)

// NotFoundMessage is returned for every unrouted request.
const NotFoundMessage = "Not found"

// statusFor maps a bridge error kind to its HTTP status.
func statusFor(kind bridge.Kind) int {
	switch kind {
	case bridge.KindValidation:
		return http.StatusBadRequest
	case bridge.KindRejected:
		return http.StatusOK
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as a structured failure body.
func respondError(c *gin.Context, err error) {
	var be *bridge.Error
	if !errors.As(err, &be) {
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Ok: false, Error: err.Error()})
		return
	}

	if be.Stdout == nil && be.Stderr == nil && be.AppID == "" {
		c.JSON(statusFor(be.Kind), types.ErrorResponse{Ok: false, Error: be.Message})
		return
	}

	body := types.ActionResponse{
		Ok:     false,
		Stdout: be.Stdout,
		Stderr: be.Stderr,
		Error:  be.Message,
	}
	// Rejections and validation failures keep the original short shape.
	if be.Kind == bridge.KindSubprocess || be.Kind == bridge.KindInternal {
		body.AppID = be.AppID
	}
	c.JSON(statusFor(be.Kind), body)
}

// NotFound answers unknown paths and methods.
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, types.ErrorResponse{Ok: false, Error: NotFoundMessage})
}
