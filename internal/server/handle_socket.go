package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"nhooyr.io/websocket"
)

// handleSessionSocket streams the same events as the SSE endpoint over a
// websocket. Client messages are ignored; the read side only detects close.
func handleSessionSocket(logger *slog.Logger, sessions *Sessions, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessions.Get(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			InsecureSkipVerify: true,
		})
		if err != nil {
			logger.Error("websocket accept failed", "error", err)
			return
		}
		defer conn.CloseNow()

		ctx, cancel := context.WithTimeout(r.Context(), 30*time.Minute)
		defer cancel()
		ctx = conn.CloseRead(ctx)

		ch := broker.Subscribe(sess.id)
		defer broker.Unsubscribe(sess.id, ch)

		for {
			select {
			case <-ctx.Done():
				logger.Debug("websocket stream ended", "session_id", sess.id, "error", ctx.Err())
				return
			case data := <-ch:
				if err := conn.Write(ctx, websocket.MessageText, data); err != nil {
					logger.Debug("websocket write failed", "session_id", sess.id, "error", err)
					return
				}
			}
		}
	}
}
