package perrors

import (
	"errors"
	"net/http"

	"github.com/2beens/fitplan/pkg"

	log "github.com/sirupsen/logrus"
)

type errorResponse struct {
	Error            string            `json:"error"`
	Fields           map[string]string `json:"fields,omitempty"`
	ExistingPlanID   string            `json:"existingPlanId,omitempty"`
	ExistingPlanName string            `json:"existingPlanName,omitempty"`
}

// StatusCode maps an error to the HTTP status it is served with.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict), errors.Is(err, ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// WriteHTTPError writes err as a JSON error body. Unknown errors are logged
// and replaced with a generic message.
func WriteHTTPError(w http.ResponseWriter, err error) {
	statusCode := StatusCode(err)
	resp := errorResponse{Error: err.Error()}

	var conflictErr *ConflictError
	var validationErr *ValidationError
	switch {
	case errors.As(err, &conflictErr):
		resp.ExistingPlanID = conflictErr.ExistingPlanID
		resp.ExistingPlanName = conflictErr.ExistingPlanName
	case errors.As(err, &validationErr):
		resp.Fields = validationErr.Fields
	case statusCode == http.StatusInternalServerError:
		log.Errorf("internal error: %s", err)
		resp.Error = "internal error"
	}

	pkg.WriteJSON(w, statusCode, resp)
}
