package http

import (
	"net/http"

	"realtime-srv/internal/notification"
	pkgErrors "realtime-srv/pkg/errors"
	"realtime-srv/pkg/response"
)

var (
	errWrongBody  = pkgErrors.NewHTTPError(20001, "Wrong body", http.StatusBadRequest)
	errWrongQuery = pkgErrors.NewHTTPError(20002, "Wrong query", http.StatusBadRequest)
)

var errMap = response.ErrorMapping{
	notification.ErrNotificationNotFound: pkgErrors.NewHTTPError(20003, "Notification not found", http.StatusNotFound),
	notification.ErrFieldRequired:        pkgErrors.NewHTTPError(20004, "Field required", http.StatusBadRequest),
	notification.ErrInvalidType:          pkgErrors.NewHTTPError(20005, "Invalid notification type", http.StatusBadRequest),
	notification.ErrInvalidID:            pkgErrors.NewHTTPError(20006, "Invalid notification id", http.StatusBadRequest),
	notification.ErrForbidden:            pkgErrors.NewForbiddenHTTPError(),
}
