package handler

import (
	"errors"
	"net/http"

	"github.com/fanhub/fanhub-server/internal/apierr"
	"github.com/fanhub/fanhub-server/internal/logger"
)

type errorBody struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// WriteError maps an error to its wire form. Typed errors carry their own
// status, class and code; anything else is logged and reported as a 500
// without leaking the cause.
func WriteError(w http.ResponseWriter, log *logger.Logger, err error) {
	var apiErr *apierr.Error
	if !errors.As(err, &apiErr) {
		log.Error("handler: unexpected error",
			"error", err.Error())
		apiErr = apierr.NewInternalServerError()
	}

	writeJSON(w, apiErr.HTTPStatus, envelope{
		Status: string(apiErr.Class),
		Data:   errorBody{Code: apiErr.Code, Description: apiErr.Description},
	})
}
