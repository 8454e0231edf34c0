// Package server exposes the chat orchestration over HTTP: a websocket
// endpoint that streams in-flight display values and a small JSON API for
// blocking submits and transcript reads. Sessions live in memory only.
package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"cryptochat/config"
	"cryptochat/internal/agents"
	"cryptochat/internal/chat"
	"cryptochat/internal/markets"
	"cryptochat/internal/tools"
	"cryptochat/internal/ui"
)

const sessionHeader = "X-Session-ID"

// Session bundles one conversation's state with its orchestrator.
type Session struct {
	ID           string
	Orchestrator *agents.Orchestrator
}

type Server struct {
	cfg       *config.Config
	chatModel model.ToolCallingChatModel
	upgrader  websocket.Upgrader

	mu       sync.Mutex
	sessions map[string]*Session
}

func New(cfg *config.Config, chatModel model.ToolCallingChatModel) *Server {
	return &Server{
		cfg:       cfg,
		chatModel: chatModel,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		sessions: make(map[string]*Session),
	}
}

func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/chat", s.handleChat).Methods(http.MethodPost)
	r.HandleFunc("/api/feed", s.handleFeed).Methods(http.MethodGet)
	r.HandleFunc("/ws", s.handleWebSocket).Methods(http.MethodGet)
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	return r
}

// Run serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.ListenAddr,
		Handler: s.Router(),
	}

	errc := make(chan error, 1)
	go func() {
		log.Printf("cryptochat listening on %s", s.cfg.ListenAddr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errc:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	}
}

// newSession wires a fresh history, feed, tool registry, and orchestrator.
func (s *Server) newSession() (*Session, error) {
	history := chat.NewHistory()
	registry := tools.NewMarketRegistry(
		s.cfg,
		markets.NewBinanceClient(s.cfg),
		markets.NewCMCClient(s.cfg),
		history,
	)
	orch, err := agents.NewOrchestrator(s.cfg, s.chatModel, registry, history, ui.NewFeed())
	if err != nil {
		return nil, err
	}
	return &Session{ID: uuid.NewString(), Orchestrator: orch}, nil
}

// session returns the session for id, creating one when id is empty.
func (s *Server) session(id string) (*Session, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id != "" {
		if sess, ok := s.sessions[id]; ok {
			return sess, false, nil
		}
	}

	sess, err := s.newSession()
	if err != nil {
		return nil, false, err
	}
	s.sessions[sess.ID] = sess
	return sess, true, nil
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	SessionID string            `json:"session_id"`
	Record    *ui.DisplayRecord `json:"record"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	sess, _, err := s.session(r.Header.Get(sessionHeader))
	if err != nil {
		log.Printf("create session: %v", err)
		http.Error(w, "session setup failed", http.StatusInternalServerError)
		return
	}

	rec, err := sess.Orchestrator.SubmitUserMessage(r.Context(), req.Message, nil)
	if err != nil {
		status := http.StatusBadGateway
		switch err {
		case agents.ErrEmptyMessage:
			status = http.StatusBadRequest
		case agents.ErrTurnInFlight:
			status = http.StatusConflict
		}
		log.Printf("session %s: turn failed: %v", sess.ID, err)
		http.Error(w, err.Error(), status)
		return
	}

	writeJSON(w, chatResponse{SessionID: sess.ID, Record: rec})
}

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	sess, _, err := s.session(r.Header.Get(sessionHeader))
	if err != nil {
		http.Error(w, "session setup failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, struct {
		SessionID string             `json:"session_id"`
		Records   []ui.DisplayRecord `json:"records"`
	}{SessionID: sess.ID, Records: sess.Orchestrator.Feed().Records()})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

// wsFrame is one server-to-client websocket message.
type wsFrame struct {
	Event      string            `json:"event"` // update | final | error
	SessionID  string            `json:"session_id,omitempty"`
	Kind       string            `json:"kind,omitempty"`
	Renderable ui.Renderable     `json:"renderable,omitempty"`
	Record     *ui.DisplayRecord `json:"record,omitempty"`
	Error      string            `json:"error,omitempty"`
}

// handleWebSocket owns one session per connection. Client frames carry
// {"message": "..."}; the server answers with update frames while the turn
// is in flight and exactly one final (or error) frame per turn.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	sess, _, err := s.session("")
	if err != nil {
		log.Printf("create session: %v", err)
		return
	}

	if err := conn.WriteJSON(wsFrame{Event: "session", SessionID: sess.ID}); err != nil {
		return
	}

	for {
		var req chatRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("session %s: websocket read failed: %v", sess.ID, err)
			}
			return
		}

		rec, err := sess.Orchestrator.SubmitUserMessage(r.Context(), req.Message, func(rend ui.Renderable) {
			if err := conn.WriteJSON(wsFrame{Event: "update", Kind: rend.Kind(), Renderable: rend}); err != nil {
				log.Printf("session %s: websocket send failed: %v", sess.ID, err)
			}
		})
		if err != nil {
			log.Printf("session %s: turn failed: %v", sess.ID, err)
			if err := conn.WriteJSON(wsFrame{Event: "error", Error: err.Error()}); err != nil {
				return
			}
			continue
		}

		if err := conn.WriteJSON(wsFrame{Event: "final", Record: rec}); err != nil {
			return
		}
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}
