// Package api implements the HTTP surface of the application: handlers,
// request/response models and error mapping.
package api

import (
	"errors"
	"net/http"

	"github.com/n0rb33rt/twaincards-backend-sub000/internal/domain"
	"github.com/n0rb33rt/twaincards-backend-sub000/internal/service/auth"
	"github.com/n0rb33rt/twaincards-backend-sub000/internal/service/learning"
	"github.com/n0rb33rt/twaincards-backend-sub000/internal/service/studysession"
	"github.com/n0rb33rt/twaincards-backend-sub000/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status
// codes based on the error type. This prevents leaking internal error
// types or messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, learning.ErrAccessDenied),
		errors.Is(err, studysession.ErrAccessDenied):
		return http.StatusForbidden

	// Not found errors. Foreign sessions map here too so that session
	// IDs can't be probed.
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, learning.ErrCardNotFound),
		errors.Is(err, learning.ErrCollectionNotFound),
		errors.Is(err, learning.ErrProgressNotFound),
		errors.Is(err, learning.ErrSessionNotFound),
		errors.Is(err, studysession.ErrSessionNotFound),
		errors.Is(err, studysession.ErrCollectionNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists):
		return http.StatusConflict

	// Invalid state errors
	case errors.Is(err, domain.ErrSessionNoCollection):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, learning.ErrInvalidAnswer),
		errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid token"

	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid email or password"

	case errors.Is(err, learning.ErrAccessDenied),
		errors.Is(err, studysession.ErrAccessDenied):
		return "You do not have access to this collection"

	case errors.Is(err, learning.ErrCardNotFound):
		return "Card not found"

	case errors.Is(err, learning.ErrCollectionNotFound),
		errors.Is(err, studysession.ErrCollectionNotFound):
		return "Collection not found"

	case errors.Is(err, learning.ErrProgressNotFound):
		return "Learning progress not found"

	case errors.Is(err, learning.ErrSessionNotFound),
		errors.Is(err, studysession.ErrSessionNotFound):
		return "Study session not found"

	case errors.Is(err, domain.ErrSessionNoCollection):
		return "Study session has no collection"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation):
		return "Invalid entity data"

	case errors.Is(err, learning.ErrInvalidAnswer):
		return "Invalid answer"

	case errors.Is(err, store.ErrNotFound):
		return "Not found"

	default:
		return "An unexpected error occurred"
	}
}
