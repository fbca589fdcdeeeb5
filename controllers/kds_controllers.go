package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/yeremiapane/restaurant-manager/kds"
	"github.com/yeremiapane/restaurant-manager/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// KDSHandler -> WebSocket endpoint; ?view= names the screen (kitchen, floor, cashier)
func KDSHandler(hub *kds.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		view := c.DefaultQuery("view", "dashboard")

		ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			utils.ErrorLogger.Errorf("WebSocket upgrade failed: %v", err)
			return
		}
		hub.Register(ws, view)

		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				break
			}
		}

		hub.Unregister(ws)
	}
}
