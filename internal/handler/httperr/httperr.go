package httperr

import (
	"errors"
	"net/http"

	"github.com/coastalprograms/swms-engine/internal/pkg/errs"
	"github.com/coastalprograms/swms-engine/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// AbortDomain translates the engine's error taxonomy to an HTTP status.
// Invalid tokens are reported as 404 so callers cannot distinguish a
// superseded link from one that never existed.
func AbortDomain(c *gin.Context, err error, msg string) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrTokenInvalid):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrCampaignNotFound), errors.Is(err, errs.ErrJobNotFound):
		status = http.StatusNotFound
	case errors.Is(err, commands.ErrUnknownDeliveryEvent):
		status = http.StatusBadRequest
	case errors.Is(err, errs.ErrConfig):
		status = http.StatusServiceUnavailable
	case errors.Is(err, errs.ErrDatabase), errors.Is(err, errs.ErrDelivery), errors.Is(err, errs.ErrTemplate):
		status = http.StatusInternalServerError
	}
	AbortWithError(c, status, err, msg, nil)
}
