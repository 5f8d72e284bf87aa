package http

import (
	"realtime-srv/internal/model"
	pkgErrors "realtime-srv/pkg/errors"
	"realtime-srv/pkg/scope"

	"github.com/gin-gonic/gin"
)

func (h Handler) processScope(c *gin.Context) (model.Scope, error) {
	sc, ok := scope.GetScopeFromContext(c.Request.Context())
	if !ok {
		return model.Scope{}, pkgErrors.NewUnauthorizedHTTPError()
	}
	return sc, nil
}

func (h Handler) processCreateRequest(c *gin.Context) (model.Scope, createReq, error) {
	ctx := c.Request.Context()

	sc, err := h.processScope(c)
	if err != nil {
		return model.Scope{}, createReq{}, err
	}

	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(ctx, "internal.notification.delivery.http.processCreateRequest.ShouldBindJSON: %v", err)
		return model.Scope{}, createReq{}, errWrongBody
	}
	if err := req.validate(); err != nil {
		return model.Scope{}, createReq{}, err
	}

	return sc, req, nil
}

func (h Handler) processGetRequest(c *gin.Context) (model.Scope, getReq, error) {
	ctx := c.Request.Context()

	sc, err := h.processScope(c)
	if err != nil {
		return model.Scope{}, getReq{}, err
	}

	var req getReq
	if err := c.ShouldBindQuery(&req); err != nil {
		h.l.Warnf(ctx, "internal.notification.delivery.http.processGetRequest.ShouldBindQuery: %v", err)
		return model.Scope{}, getReq{}, errWrongQuery
	}

	return sc, req, nil
}

func (h Handler) processUpdateRequest(c *gin.Context) (model.Scope, updateReq, error) {
	ctx := c.Request.Context()

	sc, err := h.processScope(c)
	if err != nil {
		return model.Scope{}, updateReq{}, err
	}

	var req updateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(ctx, "internal.notification.delivery.http.processUpdateRequest.ShouldBindJSON: %v", err)
		return model.Scope{}, updateReq{}, errWrongBody
	}

	return sc, req, nil
}
