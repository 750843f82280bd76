package errors

import "net/http"

const (
	CodeInvalidCoordinates = "INVALID_COORDINATES"
	CodeGatewayError       = "GATEWAY_ERROR"
	CodeInvalidPayload     = "INVALID_PAYLOAD"
	CodeMissingIdentifier  = "MISSING_IDENTIFIER"
	CodePersistenceError   = "PERSISTENCE_ERROR"
	CodeUnauthorized       = "UNAUTHORIZED"
)

var (
	ErrInvalidCoordinates = New(
		CodeInvalidCoordinates,
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	// ErrGateway - сбой внешнего Places API; детали только в логах
	ErrGateway = New(
		CodeGatewayError,
		"Failed to fetch nearby restaurants",
		http.StatusInternalServerError,
	)

	ErrInvalidPayload = New(
		CodeInvalidPayload,
		"Unparseable places payload",
		http.StatusBadGateway,
	)

	ErrMissingIdentifier = New(
		CodeMissingIdentifier,
		"Place record has no external identifier",
		http.StatusUnprocessableEntity,
	)

	ErrPersistence = New(
		CodePersistenceError,
		"Failed to persist record",
		http.StatusInternalServerError,
	)

	ErrMissingToken = New(
		CodeUnauthorized,
		"Missing token",
		http.StatusUnauthorized,
	)

	ErrUnauthorized = New(
		CodeUnauthorized,
		"Invalid token",
		http.StatusUnauthorized,
	)

	ErrPlaceNotFound = New(
		"PLACE_NOT_FOUND",
		"Place not found",
		http.StatusNotFound,
	)

	ErrUserNotFound = New(
		"USER_NOT_FOUND",
		"User not found",
		http.StatusNotFound,
	)

	ErrDuplicate = New(
		"DUPLICATE",
		"Record already exists",
		http.StatusConflict,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
