package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/todo-api/internal/api/shared"
	"github.com/phrazzld/todo-api/internal/authz"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/service"
	"github.com/phrazzld/todo-api/internal/service/auth"
	"github.com/phrazzld/todo-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, authz.ErrNotAuthenticated),
		errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrRefreshTokenReused),
		errors.Is(err, service.ErrInactiveAccount):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, authz.ErrPermissionDenied),
		errors.Is(err, service.ErrAuthorChange):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, shared.ErrEmptyBody),
		errors.Is(err, errMalformedBody):
		return http.StatusBadRequest

	case errors.Is(err, domain.ErrNoWriteRepresentation):
		return http.StatusMethodNotAllowed

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred."
	}

	switch {
	case errors.Is(err, authz.ErrNotAuthenticated):
		return "Authentication credentials were not provided."
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "No active account found with the given credentials."
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired."
	case errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrRefreshTokenReused):
		return "Refresh token is invalid or expired."
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Token is invalid."
	case errors.Is(err, service.ErrInactiveAccount):
		return "User is inactive."

	case errors.Is(err, service.ErrAuthorChange):
		return "Todos can only be created as yourself."
	case errors.Is(err, authz.ErrPermissionDenied):
		return "You do not have permission to perform this action."

	case errors.Is(err, store.ErrNotFound):
		return "Not found."

	case errors.Is(err, store.ErrUsernameExists):
		return "A user with that username already exists."
	case errors.Is(err, store.ErrDuplicate):
		return "Already exists."

	case errors.Is(err, shared.ErrEmptyBody):
		return "Request body is required."
	case errors.Is(err, errMalformedBody):
		return "Malformed JSON request body."
	case errors.Is(err, store.ErrInvalidEntity):
		return "Referenced object does not exist."
	case errors.Is(err, domain.ErrValidation):
		return "Invalid input."

	case errors.Is(err, domain.ErrNoWriteRepresentation):
		return "Method not allowed."

	default:
		return "An unexpected error occurred."
	}
}

// HandleAPIError writes the error response for err. Validation failures
// carry a field → message map; everything else gets the safe message for
// its status. fallback replaces the generic 500 message when non-empty.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	if fields := validationFields(err); fields != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid input.", err, shared.WithFields(fields))
		return
	}

	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && fallback != "" {
		message = fallback
	}

	var opts []shared.ResponseOption
	if errors.Is(err, auth.ErrRefreshTokenReused) {
		opts = append(opts, shared.WithElevatedLogLevel())
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err, opts...)
}

// validationFields extracts per-field messages from validator and domain
// validation errors. It returns nil for any other error.
func validationFields(err error) map[string]string {
	if fields := shared.FieldErrors(err); fields != nil {
		return fields
	}
	var verr *domain.ValidationError
	if errors.As(err, &verr) && verr.Field != "" {
		return map[string]string{verr.Field: verr.Message}
	}
	return nil
}
