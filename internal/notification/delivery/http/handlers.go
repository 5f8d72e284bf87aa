package http

import (
	"realtime-srv/pkg/response"

	"github.com/gin-gonic/gin"
)

// Create creates a notification. Admin only.
// @Summary Create notification
// @Tags Notification
// @Accept json
// @Produce json
// @Security Bearer
// @Param body body http.createReq true "Notification"
// @Success 200 {object} response.Resp{data=http.notificationResp}
// @Failure 400 {object} response.Resp
// @Failure 403 {object} response.Resp
// @Router /api/v1/notifications [POST]
func (h Handler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	sc, req, err := h.processCreateRequest(c)
	if err != nil {
		response.ErrorWithMap(c, err, errMap, h.discord)
		return
	}

	n, err := h.uc.Create(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "internal.notification.delivery.http.Create.uc.Create: %v", err)
		response.ErrorWithMap(c, err, errMap, h.discord)
		return
	}

	response.OK(c, h.newNotificationResp(n))
}

// Get lists notifications visible to the caller, newest first.
// @Summary List notifications
// @Tags Notification
// @Produce json
// @Security Bearer
// @Param citizen_id query string false "Citizen ID (admin only)"
// @Param is_global query bool false "Global notifications only"
// @Param unread query bool false "Unread only"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Resp{data=http.getResp}
// @Router /api/v1/notifications [GET]
func (h Handler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	sc, req, err := h.processGetRequest(c)
	if err != nil {
		response.ErrorWithMap(c, err, errMap, h.discord)
		return
	}

	o, err := h.uc.Get(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "internal.notification.delivery.http.Get.uc.Get: %v", err)
		response.ErrorWithMap(c, err, errMap, h.discord)
		return
	}

	response.OK(c, h.newGetResp(o))
}

// @Summary Notification detail
// @Tags Notification
// @Produce json
// @Security Bearer
// @Param id path string true "Notification ID"
// @Success 200 {object} response.Resp{data=http.notificationResp}
// @Failure 404 {object} response.Resp
// @Router /api/v1/notifications/{id} [GET]
func (h Handler) Detail(c *gin.Context) {
	ctx := c.Request.Context()

	sc, err := h.processScope(c)
	if err != nil {
		response.ErrorWithMap(c, err, errMap, h.discord)
		return
	}

	n, err := h.uc.Detail(ctx, sc, c.Param("id"))
	if err != nil {
		response.ErrorWithMap(c, err, errMap, h.discord)
		return
	}

	response.OK(c, h.newNotificationResp(n))
}

// Update edits the fields present in the body. Admin only.
// @Summary Update notification
// @Tags Notification
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Notification ID"
// @Param body body http.updateReq true "Fields to change"
// @Success 200 {object} response.Resp{data=http.notificationResp}
// @Failure 400 {object} response.Resp
// @Failure 404 {object} response.Resp
// @Router /api/v1/notifications/{id} [PATCH]
func (h Handler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	sc, req, err := h.processUpdateRequest(c)
	if err != nil {
		response.ErrorWithMap(c, err, errMap, h.discord)
		return
	}

	n, err := h.uc.Update(ctx, sc, c.Param("id"), req.toInput())
	if err != nil {
		h.l.Warnf(ctx, "internal.notification.delivery.http.Update.uc.Update: %v", err)
		response.ErrorWithMap(c, err, errMap, h.discord)
		return
	}

	response.OK(c, h.newNotificationResp(n))
}

// @Summary Mark notification read
// @Tags Notification
// @Produce json
// @Security Bearer
// @Param id path string true "Notification ID"
// @Success 200 {object} response.Resp
// @Failure 404 {object} response.Resp
// @Router /api/v1/notifications/{id}/read [PATCH]
func (h Handler) MarkRead(c *gin.Context) {
	ctx := c.Request.Context()

	sc, err := h.processScope(c)
	if err != nil {
		response.ErrorWithMap(c, err, errMap, h.discord)
		return
	}

	if err := h.uc.MarkRead(ctx, sc, c.Param("id")); err != nil {
		response.ErrorWithMap(c, err, errMap, h.discord)
		return
	}

	response.OK(c, nil)
}

// @Summary Mark all notifications read
// @Tags Notification
// @Produce json
// @Security Bearer
// @Success 200 {object} response.Resp{data=http.markAllReadResp}
// @Router /api/v1/notifications/read-all [POST]
func (h Handler) MarkAllRead(c *gin.Context) {
	ctx := c.Request.Context()

	sc, err := h.processScope(c)
	if err != nil {
		response.ErrorWithMap(c, err, errMap, h.discord)
		return
	}

	n, err := h.uc.MarkAllRead(ctx, sc)
	if err != nil {
		h.l.Errorf(ctx, "internal.notification.delivery.http.MarkAllRead.uc.MarkAllRead: %v", err)
		response.ErrorWithMap(c, err, errMap, h.discord)
		return
	}

	response.OK(c, markAllReadResp{Updated: n})
}

// @Summary Delete notification
// @Tags Notification
// @Produce json
// @Security Bearer
// @Param id path string true "Notification ID"
// @Success 200 {object} response.Resp
// @Failure 403 {object} response.Resp
// @Failure 404 {object} response.Resp
// @Router /api/v1/notifications/{id} [DELETE]
func (h Handler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	sc, err := h.processScope(c)
	if err != nil {
		response.ErrorWithMap(c, err, errMap, h.discord)
		return
	}

	if err := h.uc.Delete(ctx, sc, c.Param("id")); err != nil {
		response.ErrorWithMap(c, err, errMap, h.discord)
		return
	}

	response.OK(c, nil)
}
