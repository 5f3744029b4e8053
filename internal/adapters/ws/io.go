package ws

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/Chat/internal/core"
)

const writeWait = 5 * time.Second

func (ctl *Controller) writePump(ctx context.Context, c *Conn) {
	ticker := time.NewTicker(ctl.PingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "ws").Msg("writePump ctx done")
			return
		case <-ticker.C:
			if err := c.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Warn().Err(err).Str("module", "ws").Msg("writePump ping error")
				return
			}
		case data, ok := <-c.send:
			if !ok {
				log.Warn().Str("module", "ws").Msg("writePump channel closed")
				return
			}
			if err := c.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				log.Error().Err(err).Str("module", "ws").Msg("writePump set deadline")
				return
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Error().Err(err).Str("module", "ws").Msg("writePump write error")
				return
			}
		}
	}
}

func (ctl *Controller) readPump(ctx context.Context, id core.ConnID, c *Conn) {
	defer func() {
		log.Info().Str("module", "ws").Str("conn", string(id)).Msg("readPump closing")
		ctl.Coordinator.Disconnect(id)
		ctl.Hub.Detach(id)
		c.Close()
	}()

	c.ws.SetReadLimit(ctl.ReadLimit)
	readWait := ctl.PingPeriod * 2
	_ = c.ws.SetReadDeadline(time.Now().Add(readWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(readWait))
	})

	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "ws").Str("conn", string(id)).Msg("readPump ctx done")
			return
		default:
			_, data, err := c.ws.ReadMessage()
			if err != nil {
				log.Info().Err(err).Str("module", "ws").Str("conn", string(id)).Msg("readPump read error")
				return
			}
			ctl.dispatch(id, data)
		}
	}
}

// dispatch routes one inbound frame to the presence layer. Malformed
// frames are logged and ignored, never fatal.
func (ctl *Controller) dispatch(id core.ConnID, data []byte) {
	var env core.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		log.Error().Err(err).Str("module", "ws").Msg("bad json")
		return
	}

	switch env.Type {
	case core.EventJoinRoom:
		var p core.JoinRoomPayload
		if err := json.Unmarshal(data, &p); err != nil {
			log.Error().Err(err).Str("module", "ws").Msg("bad join_room payload")
			return
		}
		ctl.Coordinator.Join(id, p.Room)
	case core.EventSendMessage:
		var p core.SendMessagePayload
		if err := json.Unmarshal(data, &p); err != nil {
			log.Error().Err(err).Str("module", "ws").Msg("bad send_message payload")
			return
		}
		ctl.Coordinator.Relay(id, p.Text)
	default:
		log.Warn().Str("module", "ws").Str("type", string(env.Type)).Msg("unknown event")
	}
}
