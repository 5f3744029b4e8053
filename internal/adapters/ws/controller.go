package ws

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/Chat/internal/app/presence"
	"github.com/dkeye/Chat/internal/auth"
	"github.com/dkeye/Chat/internal/core"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Controller is the connection lifecycle manager: handshake
// verification, admission, inbound dispatch, disconnect cleanup.
// No business logic of its own.
type Controller struct {
	Hub         *Hub
	Coordinator *presence.Coordinator
	Verifier    *auth.Verifier
	ReadLimit   int64
	PingPeriod  time.Duration
}

// HandleChat admits one websocket client. The credential travels in
// the `token` query parameter and is verified before the upgrade, so
// a rejected handshake never creates a session nor receives events.
func (ctl *Controller) HandleChat(ctx context.Context, c *gin.Context) {
	identity, err := ctl.Verifier.Verify(c.Query("token"))
	if err != nil {
		log.Warn().Err(err).Str("module", "ws").Msg("handshake rejected")
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	sock, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "ws").Msg("ws upgrade")
		return
	}

	id := core.ConnID(uuid.NewString())
	conn := NewConn(sock, 32)
	log.Info().Str("module", "ws").Str("conn", string(id)).Str("user", identity.Username).Msg("new WS connection")

	ctl.Hub.Attach(id, conn)
	ctl.Coordinator.Admit(id, identity)

	go ctl.writePump(ctx, conn)
	go ctl.readPump(ctx, id, conn)
}
