package api

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/status-im/market-dashboard/dashboard"
	"github.com/status-im/market-dashboard/events"
)

const wsWriteTimeout = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// wsMessage is pushed to websocket clients after every dashboard update
type wsMessage struct {
	Topics   []string           `json:"topics"`
	Snapshot dashboard.Snapshot `json:"snapshot"`
}

type wsConn struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func (c *wsConn) send(msg wsMessage) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := c.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout)); err != nil {
		return err
	}
	return c.conn.WriteJSON(msg)
}

// handleWebSocket streams the dashboard snapshot: once on connect, then after
// each update with the topics that changed
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade WebSocket connection")
		return
	}

	client := &wsConn{conn: conn}
	s.trackConn(client, true)
	defer func() {
		s.trackConn(client, false)
		conn.Close()
		log.Debug().Str("remote", r.RemoteAddr).Msg("WebSocket client disconnected")
	}()
	log.Debug().Str("remote", r.RemoteAddr).Msg("WebSocket client connected")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Reads only detect the peer going away
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	sent := make(chan error, 1)
	s.store.Subscribe().Watch(ctx, func(e events.Event) {
		if err := client.send(wsMessage{Topics: e.Topics, Snapshot: s.store.Snapshot()}); err != nil {
			select {
			case sent <- err:
			default:
			}
		}
	}, true)

	select {
	case <-ctx.Done():
	case err := <-sent:
		log.Debug().Err(err).Msg("WebSocket write failed")
	}
}

func (s *Server) trackConn(c *wsConn, add bool) {
	s.connsMu.Lock()
	defer s.connsMu.Unlock()
	if add {
		s.conns[c] = struct{}{}
	} else {
		delete(s.conns, c)
	}
}

func (s *Server) closeWebSockets() {
	s.connsMu.Lock()
	defer s.connsMu.Unlock()
	for c := range s.conns {
		_ = c.conn.Close()
	}
}
