// Package respond maps service errors to HTTP responses.
package respond

import (
	"errors"
	"net/http"

	"github.com/dinerozz/datahive-backend/internal/model/response/wrapper"
	"github.com/dinerozz/datahive-backend/internal/shared"
	"github.com/gin-gonic/gin"
)

func Status(err error) int {
	switch {
	case errors.Is(err, shared.ErrWebsiteNotFound), errors.Is(err, shared.ErrNoView),
		errors.Is(err, shared.ErrUnresolvedReference):
		return http.StatusNotFound
	case errors.Is(err, shared.ErrSelectionSuperseded):
		return http.StatusConflict
	case errors.Is(err, shared.ErrUpstreamFetch):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func Error(c *gin.Context, err error) {
	c.JSON(Status(err), wrapper.ErrorWrapper{Message: err.Error(), Success: false})
}

func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: message, Success: false})
}
