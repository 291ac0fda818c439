package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/horilla-hris/hris-bulk-go/internal/domain/auth"
	"github.com/horilla-hris/hris-bulk-go/internal/handler/http/middleware"
	"github.com/horilla-hris/hris-bulk-go/internal/handler/http/response"
	"github.com/horilla-hris/hris-bulk-go/internal/pkg/jwt"
	"github.com/horilla-hris/hris-bulk-go/internal/pkg/sse"
)

const keepaliveInterval = 30 * time.Second

// EventHandler streams bulk.completed events so list views reload after an action.
type EventHandler interface {
	GetSSEToken(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

type eventHandlerImpl struct {
	hub        *sse.Hub
	jwtService jwt.Service
	keepalive  time.Duration
}

func NewEventHandler(hub *sse.Hub, jwtService jwt.Service) EventHandler {
	return &eventHandlerImpl{
		hub:        hub,
		jwtService: jwtService,
		keepalive:  keepaliveInterval,
	}
}

// GetSSEToken generates a short-lived token for stream connections
func (h *eventHandlerImpl) GetSSEToken(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.PrincipalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	token, expiresIn, err := h.jwtService.GenerateSSEToken(principal.UserID)
	if err != nil {
		slog.Error("failed to generate SSE token", "user_id", principal.UserID, "error", err)
		response.InternalServerError(w, "Failed to generate SSE token")
		return
	}

	response.Success(w, auth.SSETokenResponse{
		Token:     token,
		ExpiresIn: expiresIn,
	})
}

// Stream handles the event-stream connection of one list view
func (h *eventHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	// EventSource cannot send headers, so the token rides in the query
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		http.Error(w, "Missing token", http.StatusUnauthorized)
		return
	}

	userID, err := h.jwtService.ValidateSSEToken(tokenStr)
	if err != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.hub.Subscribe(userID)
	defer cleanup()

	connected := sse.Event{
		UserID: userID,
		Event:  sse.EventConnected,
		Data:   map[string]string{"status": "connected", "user_id": userID},
	}
	if _, err := connected.WriteTo(w); err != nil {
		return
	}
	flusher.Flush()

	keepalive := time.NewTicker(h.keepalive)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			if _, err := event.WriteTo(w); err != nil {
				slog.Error("failed to write stream event", "user_id", userID, "event", event.Event, "error", err)
				continue
			}
			flusher.Flush()

		case <-keepalive.C:
			ping := sse.Event{Event: "ping", Data: map[string]int64{"timestamp": time.Now().Unix()}}
			if _, err := ping.WriteTo(w); err != nil {
				return
			}
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
