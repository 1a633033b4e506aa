package websocket

import (
	"log/slog"
	"net/http"

	ws "github.com/coder/websocket"

	"github.com/joan-ouma/nutrifit-sub000/internal/auth"
)

// HandleWebSocket upgrades an authenticated request and runs it as a hub
// client. With no origin patterns any origin is accepted.
func HandleWebSocket(hub *Hub, originPatterns []string, logger *slog.Logger) http.HandlerFunc {
	opts := &ws.AcceptOptions{
		OriginPatterns:     originPatterns,
		InsecureSkipVerify: len(originPatterns) == 0,
	}
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.UserID(r.Context())
		if userID == 0 {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		conn, err := ws.Accept(w, r, opts)
		if err != nil {
			logger.Warn("accept websocket", "user_id", userID, "error", err)
			return
		}
		defer conn.CloseNow()

		logger.Debug("websocket connected", "user_id", userID)
		NewClient(hub, conn, userID).Run(r.Context())
		logger.Debug("websocket disconnected", "user_id", userID)
	}
}
