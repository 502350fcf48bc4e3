package ask

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/tabwise/workbench/pkg/utils"
)

// WebSocketHandler carries a live chat session over one connection: each
// inbound question frame produces one answer frame, with the same
// semantics as POST /ask/{id}.
type WebSocketHandler struct {
	ask      *Handler
	upgrader websocket.Upgrader
}

// NewWebSocketHandler creates the WebSocket chat handler.
func NewWebSocketHandler(ask *Handler) *WebSocketHandler {
	return &WebSocketHandler{
		ask: ask,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes wires the WebSocket route.
func (h *WebSocketHandler) RegisterRoutes(r chi.Router) {
	r.Get("/ws/{id}", h.handleWebSocket)
}

type inboundMessage struct {
	Question string `json:"question"`
}

type outboundMessage struct {
	Answer string `json:"answer"`
}

func (h *WebSocketHandler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if h.ask.completer == nil {
		utils.RespondError(w, http.StatusServiceUnavailable, "ai features are disabled")
		return
	}

	id := chi.URLParam(r, "id")
	if _, ok := h.ask.store.Get(id); !ok {
		utils.RespondError(w, http.StatusNotFound, "session not found")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	log.Printf("[ws] chat opened for dataset=%s", id)
	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[ws] read failed: %v", err)
			}
			return
		}
		if inbound.Question == "" {
			if err := conn.WriteJSON(outboundMessage{Answer: "Error: question is required"}); err != nil {
				return
			}
			continue
		}

		// The dataset may have expired between frames; re-resolve per question.
		ds, ok := h.ask.store.Get(id)
		if !ok {
			_ = conn.WriteJSON(outboundMessage{Answer: "Session not found."})
			return
		}

		answer := h.ask.answer(r.Context(), ds, inbound.Question)
		if err := conn.WriteJSON(outboundMessage{Answer: answer}); err != nil {
			log.Printf("[ws] write failed: %v", err)
			return
		}
	}
}
