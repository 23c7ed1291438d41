package api

import (
	"errors"
	"net/http"

	"github.com/alexanderramin/revgantt/internal/domain"
	"github.com/alexanderramin/revgantt/internal/editor"
	"github.com/alexanderramin/revgantt/internal/repository"
	"github.com/alexanderramin/revgantt/internal/service"
	"github.com/gin-gonic/gin"
)

var errBadRequest = errors.New("malformed request")

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// statusFor maps use-case errors onto HTTP status codes.
func statusFor(err error) int {
	var saveErr *service.SaveError
	switch {
	case errors.As(err, &saveErr):
		if saveErr.Code == service.SaveErrInvalidPayload {
			return http.StatusBadRequest
		}
		return http.StatusBadGateway
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, editor.ErrStageNotFound),
		errors.Is(err, editor.ErrTaskNotFound):
		return http.StatusNotFound
	case errors.Is(err, errBadRequest),
		errors.Is(err, editor.ErrInvalidDuration),
		errors.Is(err, editor.ErrNameRequired),
		errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrInvalidPayload),
		errors.Is(err, domain.ErrInvalidProject):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrSessionClosed):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	body := errorBody{Error: err.Error()}
	var saveErr *service.SaveError
	if errors.As(err, &saveErr) {
		body = errorBody{Error: saveErr.Message, Code: string(saveErr.Code)}
	}
	c.AbortWithStatusJSON(statusFor(err), body)
}
