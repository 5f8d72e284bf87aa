package http

import (
	"net/http"

	"realtime-srv/internal/chat"
	pkgErrors "realtime-srv/pkg/errors"
	"realtime-srv/pkg/response"
)

var errWrongQuery = pkgErrors.NewHTTPError(30001, "Wrong query", http.StatusBadRequest)

var errMap = response.ErrorMapping{
	chat.ErrInvalidRoom: pkgErrors.NewHTTPError(30002, "Invalid room id", http.StatusBadRequest),
	chat.ErrInvalidDate: pkgErrors.NewHTTPError(30003, "Invalid date, expected YYYY-MM-DD", http.StatusBadRequest),
}
