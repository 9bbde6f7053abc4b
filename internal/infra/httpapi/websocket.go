package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"smart-home-mock/internal/domain"
)

const (
	wsMaxMessageSize = maxRequestBodySize
	wsIdleTimeout    = 2 * time.Minute
	wsWriteTimeout   = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

// handleWebSocket answers each text frame, a Request, with a Response or an
// error frame. Frames are handled in order on a single connection.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	requestID := RequestID(r.Context())
	s.logger.Debug("websocket client connected", "request_id", requestID)

	conn.SetReadLimit(wsMaxMessageSize)
	for {
		//nolint:errcheck // best-effort deadline
		conn.SetReadDeadline(time.Now().Add(wsIdleTimeout))

		msgType, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("websocket read error", "error", err, "request_id", requestID)
			} else {
				s.logger.Debug("websocket closed", "error", err, "request_id", requestID)
			}
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}

		reply := s.dispatchFrame(r, message)

		//nolint:errcheck // best-effort deadline
		conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
		if err := conn.WriteJSON(reply); err != nil {
			s.logger.Warn("websocket write error", "error", err, "request_id", requestID)
			return
		}
	}
}

func (s *Server) dispatchFrame(r *http.Request, message []byte) any {
	var req domain.Request
	if err := json.Unmarshal(message, &req); err != nil {
		return errorResponse{Error: Error{
			Status:  http.StatusBadRequest,
			Code:    ErrCodeBadRequest,
			Message: "invalid JSON frame: " + err.Error(),
		}}
	}

	if !s.rateLimiter.Allow(clientIP(r)) {
		return errorResponse{Error: Error{
			Status:  http.StatusTooManyRequests,
			Code:    ErrCodeRateLimited,
			Message: "rate limit exceeded",
		}}
	}

	resp, err := s.dispatcher.Handle(r.Context(), &req)
	if err != nil {
		return errorResponse{Error: dispatchError(err)}
	}
	return resp
}
