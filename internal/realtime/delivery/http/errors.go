package http

import (
	"net/http"

	"realtime-srv/internal/realtime"
	pkgErrors "realtime-srv/pkg/errors"
	"realtime-srv/pkg/response"
)

var (
	errWrongBody = pkgErrors.NewHTTPError(10001, "Wrong body", http.StatusBadRequest)
)

var errMap = response.ErrorMapping{
	realtime.ErrMissingField:          pkgErrors.NewHTTPError(10002, "Missing required field", http.StatusBadRequest),
	realtime.ErrNotificationRequired:  pkgErrors.NewHTTPError(10003, "Notification must be a JSON object", http.StatusBadRequest),
	realtime.ErrMessageTooLong:        pkgErrors.NewHTTPError(10004, "Message too long", http.StatusBadRequest),
	realtime.ErrConnectionNotFound:    pkgErrors.NewHTTPError(10005, "Connection not found", http.StatusNotFound),
	realtime.ErrUserNotFound:          pkgErrors.NewHTTPError(10006, "User not found", http.StatusNotFound),
	realtime.ErrHubClosed:             pkgErrors.NewHTTPError(10007, "Service is shutting down", http.StatusServiceUnavailable),
	realtime.ErrMaxConnectionsReached: pkgErrors.NewHTTPError(10008, "Maximum connections reached", http.StatusServiceUnavailable),
}
