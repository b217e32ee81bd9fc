package ws_session

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	http_common "github.com/mkrogh/reelmatch/internal/delivery/http/common"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The browser client connects cross-origin during local development.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Controller struct {
	hub    *Hub
	logger *slog.Logger
}

func NewController(hub *Hub) *Controller {
	return &Controller{
		hub:    hub,
		logger: slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/ws/sessions/:session_id", c.connect)
}

func (c *Controller) connect(ctx *gin.Context) {
	sessionID, err := uuid.Parse(ctx.Param("session_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid session id",
		})
		return
	}
	userID := ctx.Query("user_token")

	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		c.logger.Error("websocket upgrade failed",
			"session_id", sessionID.String(), "error", err)
		return
	}

	client := &Client{
		hub:       c.hub,
		conn:      conn,
		send:      make(chan []byte, 16),
		sessionID: sessionID,
		userID:    userID,
	}

	c.hub.register <- client

	go c.hub.startClientWriting(client)
	go c.hub.startClientReading(client)
}
