package http

import (
	"github.com/gin-gonic/gin"
)

// processUpgradeRequest reads the handshake correlation token. The query
// parameter wins over the header. An empty token is allowed.
func (h Handler) processUpgradeRequest(c *gin.Context) upgradeReq {
	var req upgradeReq
	if err := c.ShouldBindQuery(&req); err != nil {
		h.l.Warnf(c.Request.Context(), "internal.realtime.delivery.http.processUpgradeRequest.ShouldBindQuery: %v", err)
	}
	if req.CitizenID == "" {
		req.CitizenID = c.GetHeader(citizenIDHeader)
	}
	return req
}

// processBody binds the JSON body into req.
func processBody[T any](h Handler, c *gin.Context, op string) (T, error) {
	var req T
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(c.Request.Context(), "internal.realtime.delivery.http.%s.ShouldBindJSON: %v", op, err)
		return req, errWrongBody
	}
	return req, nil
}
