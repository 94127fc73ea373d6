package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"obnavi/backend/internal/logger"
	"obnavi/backend/internal/realtime"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ServeWebSocket upgrades the connection and attaches the caller to the
// realtime hub. Runs behind AuthRequired (token via query parameter for
// browser clients).
func (h *Handler) ServeWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Log.Warnf("ws upgrade failed: %v", err)
		return
	}

	client := realtime.NewClient(callerID(c), conn, h.Hub)
	h.Hub.Register(client)
	client.Run()
}
