package controller

import (
	"thinking_styles_backend/internal/service"

	"github.com/gin-gonic/gin"
)

type NotificationController struct {
	Hub *service.NotificationHub
}

func NewNotificationController(hub *service.NotificationHub) *NotificationController {
	return &NotificationController{Hub: hub}
}

// Connect godoc
// @Summary Subscribe to assessment and report events
// @Description Upgrades to a WebSocket. Students receive their own events and parents receive events of linked students. Browsers pass the JWT as ?token.
// @Tags Notifications
// @Security ApiKeyAuth
// @Param   token query string false "JWT when the Authorization header cannot be set"
// @Success 101 {string} string "Switching Protocols"
// @Failure 401 {object} util.Response
// @Router /notifications/ws [get]
func (c *NotificationController) Connect(ctx *gin.Context) {
	claims := currentUser(ctx)
	if claims == nil {
		return
	}
	c.Hub.ServeWs(ctx.Writer, ctx.Request, claims.UserID)
}
