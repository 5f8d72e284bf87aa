package http

import (
	"realtime-srv/pkg/response"
	"realtime-srv/pkg/scope"

	"github.com/gin-gonic/gin"
)

// ListMessages returns the archived messages of a room for one day.
// @Summary List archived room messages
// @Tags Chat
// @Produce json
// @Security Bearer
// @Param roomId path string true "Room ID"
// @Param date query string false "Day (YYYY-MM-DD), defaults to today"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Resp{data=http.listResp}
// @Router /api/v1/chat/rooms/{roomId}/messages [GET]
func (h Handler) ListMessages(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ok := scope.GetScopeFromContext(ctx)
	if !ok {
		response.Unauthorized(c)
		return
	}

	var req listReq
	if err := c.ShouldBindQuery(&req); err != nil {
		h.l.Warnf(ctx, "internal.chat.delivery.http.ListMessages.ShouldBindQuery: %v", err)
		response.Error(c, errWrongQuery, nil)
		return
	}

	ip, err := req.toInput(c.Param("roomId"))
	if err != nil {
		response.ErrorWithMap(c, err, errMap, h.discord)
		return
	}

	o, err := h.uc.List(ctx, sc, ip)
	if err != nil {
		h.l.Errorf(ctx, "internal.chat.delivery.http.ListMessages.uc.List: %v", err)
		response.ErrorWithMap(c, err, errMap, h.discord)
		return
	}

	response.OK(c, h.newListResp(o))
}
