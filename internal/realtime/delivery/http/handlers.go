package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"realtime-srv/pkg/response"
)

const citizenIDHeader = "X-Citizen-ID"

// HandleWebSocket upgrades the request and hands the connection to the hub.
// @Summary Connect to WebSocket
// @Description Upgrade HTTP to WebSocket. The optional citizen_id query parameter (or X-Citizen-ID header) correlates the connection for targeted notifications.
// @Tags Realtime
// @Param citizen_id query string false "Citizen ID"
// @Success 101 {string} string "Switching Protocols"
// @Router /ws [GET]
func (h Handler) HandleWebSocket(c *gin.Context) {
	ctx := c.Request.Context()
	req := h.processUpgradeRequest(c)

	// Upgrade writes the HTTP error response itself on failure.
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.l.Warnf(ctx, "internal.realtime.delivery.http.HandleWebSocket.Upgrade: %v", err)
		return
	}

	if err := h.uc.Register(ctx, req.toInput(conn)); err != nil {
		h.l.Warnf(ctx, "internal.realtime.delivery.http.HandleWebSocket.uc.Register: %v", err)
	}
}

// NotifyUser sends a notification to every connection of a user.
// @Summary Notify user
// @Tags Socket Admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param body body http.notifyUserReq true "Target user and notification"
// @Success 200 {object} response.Resp{data=http.deliveryResp}
// @Failure 400 {object} response.Resp
// @Failure 403 {object} response.Resp
// @Router /api/v1/socket/notify-user [POST]
func (h Handler) NotifyUser(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := processBody[notifyUserReq](h, c, "NotifyUser")
	if err != nil {
		response.ErrorWithMap(c, err, errMap, h.discord)
		return
	}

	o, err := h.uc.NotifyUser(ctx, req.toInput())
	if err != nil {
		h.l.Warnf(ctx, "internal.realtime.delivery.http.NotifyUser.uc.NotifyUser: %v", err)
		response.ErrorWithMap(c, err, errMap, h.discord)
		return
	}

	response.OK(c, newDeliveryResp(o))
}

// NotifyCitizen sends a notification to the connection opened with a citizen id.
// @Summary Notify citizen
// @Tags Socket Admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param body body http.notifyCitizenReq true "Citizen id and notification"
// @Success 200 {object} response.Resp{data=http.deliveryResp}
// @Failure 404 {object} response.Resp
// @Router /api/v1/socket/notify-citizen [POST]
func (h Handler) NotifyCitizen(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := processBody[notifyCitizenReq](h, c, "NotifyCitizen")
	if err != nil {
		response.ErrorWithMap(c, err, errMap, h.discord)
		return
	}

	o, err := h.uc.NotifyToken(ctx, req.toInput())
	if err != nil {
		h.l.Warnf(ctx, "internal.realtime.delivery.http.NotifyCitizen.uc.NotifyToken: %v", err)
		response.ErrorWithMap(c, err, errMap, h.discord)
		return
	}

	response.OK(c, newDeliveryResp(o))
}

// @Summary Broadcast notification
// @Tags Socket Admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param body body http.broadcastReq true "Notification"
// @Success 200 {object} response.Resp{data=http.deliveryResp}
// @Router /api/v1/socket/broadcast [POST]
func (h Handler) Broadcast(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := processBody[broadcastReq](h, c, "Broadcast")
	if err != nil {
		response.ErrorWithMap(c, err, errMap, h.discord)
		return
	}

	o, err := h.uc.Broadcast(ctx, req.toInput())
	if err != nil {
		h.l.Warnf(ctx, "internal.realtime.delivery.http.Broadcast.uc.Broadcast: %v", err)
		response.ErrorWithMap(c, err, errMap, h.discord)
		return
	}

	response.OK(c, newDeliveryResp(o))
}

// @Summary Push loan status update
// @Tags Socket Admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param body body http.loanStatusReq true "Loan status"
// @Success 200 {object} response.Resp{data=http.deliveryResp}
// @Router /api/v1/socket/loan-status [POST]
func (h Handler) LoanStatus(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := processBody[loanStatusReq](h, c, "LoanStatus")
	if err != nil {
		response.ErrorWithMap(c, err, errMap, h.discord)
		return
	}

	o, err := h.uc.SendLoanStatus(ctx, req.toInput())
	if err != nil {
		h.l.Warnf(ctx, "internal.realtime.delivery.http.LoanStatus.uc.SendLoanStatus: %v", err)
		response.ErrorWithMap(c, err, errMap, h.discord)
		return
	}

	response.OK(c, newDeliveryResp(o))
}

// Decision receives credit decisions from the scoring service.
// @Summary Publish credit decision
// @Description timestamp is unix seconds (number) or a string kept as sent.
// @Tags Socket Internal
// @Accept json
// @Produce json
// @Security InternalKey
// @Param body body http.decisionReq true "Decision"
// @Success 200 {object} response.Resp{data=http.deliveryResp}
// @Failure 400 {object} response.Resp
// @Failure 401 {object} response.Resp
// @Router /api/v1/socket/python-notification [POST]
func (h Handler) Decision(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := processBody[decisionReq](h, c, "Decision")
	if err != nil {
		response.ErrorWithMap(c, err, errMap, h.discord)
		return
	}

	input, err := req.toInput()
	if err != nil {
		h.l.Warnf(ctx, "internal.realtime.delivery.http.Decision.toInput: %v", err)
		response.ErrorWithMap(c, err, errMap, h.discord)
		return
	}

	o, err := h.uc.PublishDecision(ctx, input)
	if err != nil {
		h.l.Errorf(ctx, "internal.realtime.delivery.http.Decision.uc.PublishDecision: %v", err)
		response.ErrorWithMap(c, err, errMap, h.discord)
		return
	}

	response.OK(c, newDeliveryResp(o))
}

// @Summary Send system message to a room
// @Tags Socket Admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param body body http.systemMessageReq true "Room and message"
// @Success 200 {object} response.Resp{data=http.systemMessageResp}
// @Router /api/v1/socket/system-message [POST]
func (h Handler) SystemMessage(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := processBody[systemMessageReq](h, c, "SystemMessage")
	if err != nil {
		response.ErrorWithMap(c, err, errMap, h.discord)
		return
	}

	msg, o, err := h.uc.SendSystemMessage(ctx, req.toInput())
	if err != nil {
		h.l.Warnf(ctx, "internal.realtime.delivery.http.SystemMessage.uc.SendSystemMessage: %v", err)
		response.ErrorWithMap(c, err, errMap, h.discord)
		return
	}

	response.OK(c, newSystemMessageResp(msg, o))
}

// RoomEvent emits an arbitrary event to the members of a room.
// @Summary Emit room event
// @Tags Socket Admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param roomId path string true "Room ID"
// @Param body body http.roomEventReq true "Event and data"
// @Success 200 {object} response.Resp{data=http.deliveryResp}
// @Router /api/v1/socket/rooms/{roomId}/events [POST]
func (h Handler) RoomEvent(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := processBody[roomEventReq](h, c, "RoomEvent")
	if err != nil {
		response.ErrorWithMap(c, err, errMap, h.discord)
		return
	}

	o, err := h.uc.SendToRoom(ctx, req.toInput(c.Param("roomId")))
	if err != nil {
		response.ErrorWithMap(c, err, errMap, h.discord)
		return
	}

	response.OK(c, newDeliveryResp(o))
}

// @Summary Connection statistics
// @Tags Socket Admin
// @Produce json
// @Security Bearer
// @Success 200 {object} response.Resp{data=http.statsResp}
// @Router /api/v1/socket/stats [GET]
func (h Handler) Stats(c *gin.Context) {
	ctx := c.Request.Context()

	p, err := h.uc.GetPresence(ctx)
	if err != nil {
		response.ErrorWithMap(c, err, errMap, h.discord)
		return
	}

	response.OK(c, h.newStatsResp(p, time.Now()))
}

// @Summary Connection identity
// @Tags Socket Admin
// @Produce json
// @Security Bearer
// @Param socketId path string true "Socket ID"
// @Success 200 {object} response.Resp{data=http.identityResp}
// @Failure 404 {object} response.Resp
// @Router /api/v1/socket/connections/{socketId} [GET]
func (h Handler) Connection(c *gin.Context) {
	ctx := c.Request.Context()
	socketID := c.Param("socketId")

	id, err := h.uc.GetUserBySocketID(ctx, socketID)
	if err != nil {
		response.ErrorWithMap(c, err, errMap, h.discord)
		return
	}

	response.OK(c, newIdentityResp(socketID, id))
}

// @Summary Close a connection
// @Tags Socket Admin
// @Produce json
// @Security Bearer
// @Param socketId path string true "Socket ID"
// @Success 200 {object} response.Resp{data=http.deliveryResp}
// @Failure 404 {object} response.Resp
// @Router /api/v1/socket/connections/{socketId} [DELETE]
func (h Handler) Disconnect(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.uc.Disconnect(ctx, c.Param("socketId")); err != nil {
		response.ErrorWithMap(c, err, errMap, h.discord)
		return
	}

	response.OK(c, deliveryResp{Success: true})
}
