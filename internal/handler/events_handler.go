/*
Package handler provides the WebSocket endpoint streaming store-change events.

The stream is the server-side stand-in for the UI's reactive re-render: every
mutation of the session's stores is pushed to connected clients as a JSON
event carrying the fresh snapshot.
*/
package handler

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"storefront/internal/pkg/auth/jwt"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/logx"
	"storefront/internal/pkg/resp"
)

const (
	// writeWait is the timeout for writing a frame to the connection.
	writeWait = 10 * time.Second

	// pongWait is the maximum time to wait for a Pong from the client.
	pongWait = 60 * time.Second

	// pingPeriod is the server's Ping frequency. It must be below pongWait so a
	// Pong arrives before the read deadline expires.
	pingPeriod = (pongWait * 9) / 10
)

// HandleEvents upgrades the connection and streams the session's store-change
// events. Browsers cannot set the Authorization header on WebSocket requests,
// so the session token is accepted as a query parameter.
func HandleEvents(upgrader websocket.Upgrader, deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("token")
		if token == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrSessionRequired))
			return
		}

		payload, err := jwt.ParseToken(token, deps.Config.JWTSecret)
		if err != nil || payload.SessionID == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrSessionRequired))
			return
		}

		sess := deps.Shop.GetOrCreate(r.Context(), payload.SessionID)

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logx.Warn("WebSocket upgrade failed", "session_id", payload.SessionID, "error", err)
			return
		}

		events, cancel := sess.SubscribeEvents()
		defer cancel()

		done := make(chan struct{})

		// Read loop: the client sends no application messages, but reading is
		// required to process control frames and detect the close.
		go func() {
			defer close(done)
			conn.SetReadLimit(512)
			conn.SetReadDeadline(time.Now().Add(pongWait))
			conn.SetPongHandler(func(string) error {
				return conn.SetReadDeadline(time.Now().Add(pongWait))
			})
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		defer conn.Close()

		for {
			select {
			case <-done:
				return
			case event := <-events:
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteJSON(event); err != nil {
					return
				}
			case <-ticker.C:
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}
}
