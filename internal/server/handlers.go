package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/coder/websocket"
	"github.com/google/uuid"

	"primehunt/internal/broadcast"
	"primehunt/internal/events"
	"primehunt/internal/game"
	"primehunt/internal/metrics"
	"primehunt/internal/session"
	"primehunt/internal/wshub"
)

// Archive keeps finished games. Both database backends implement it.
type Archive interface {
	BatchRecordGames(records []game.Record) error
	RecentGames(mode string, limit int) ([]game.Record, error)
	Summaries() ([]game.Summary, error)
	ClearGames() error
}

type Pinger interface {
	Ping() error
}

type Server struct {
	Sessions      *session.Store
	Shared        *session.Shared
	Broadcaster   *broadcast.Broadcaster
	Bus           *events.Bus
	Metrics       *metrics.Metrics
	DB            Pinger           // nil when running on memory only
	Archive       Archive          // nil when running on memory only
	ArchiveBuffer chan game.Record // nil when running on memory only
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[HTTP] Encode error: %v\n", err)
	}
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) *session.Session {
	sess, err := s.Sessions.Get(r.PathValue("id"))
	if err != nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return nil
	}
	return sess
}

const maxNameRunes = 20

type createSessionResponse struct {
	ID   string `json:"id"`
	Code string `json:"code"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var opts game.Options
	if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	opts.Name = strings.TrimSpace(opts.Name)
	opts.Name = truncateName(opts.Name)

	sess, err := s.Sessions.Create(opts)
	if errors.Is(err, game.ErrUnknownMode) || errors.Is(err, game.ErrUnknownCategory) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		log.Printf("[Session] Create error: %v\n", err)
		http.Error(w, "Failed to create session", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, createSessionResponse{ID: sess.ID, Code: sess.Code})
}

// truncateName caps a player name at maxNameRunes runes.
func truncateName(name string) string {
	if utf8.RuneCountInString(name) <= maxNameRunes {
		return name
	}
	return string([]rune(name)[:maxNameRunes])
}

type sessionView struct {
	ID       string        `json:"id"`
	Code     string        `json:"code"`
	Mode     string        `json:"mode"`
	Paused   bool          `json:"paused"`
	Snapshot game.Snapshot `json:"snapshot"`
	Result   *game.Result  `json:"result,omitempty"`
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess := s.getSession(w, r)
	if sess == nil {
		return
	}
	view := sessionView{
		ID:       sess.ID,
		Code:     sess.Code,
		Mode:     sess.Options.Mode,
		Paused:   sess.Paused(),
		Snapshot: sess.Snapshot(),
	}
	if res, ok := sess.Result(); ok {
		view.Result = &res
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sess := s.getSession(w, r)
	if sess == nil {
		return
	}
	s.Sessions.Delete(sess.ID)
	w.WriteHeader(http.StatusNoContent)
}

// handlePlayerWS attaches a player connection. Leaving pauses the game.
func (s *Server) handlePlayerWS(w http.ResponseWriter, r *http.Request) {
	sess := s.getSession(w, r)
	if sess == nil {
		return
	}
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		log.Printf("[WS] Accept error: %v\n", err)
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	c := wshub.NewClient(uuid.NewString(), false, conn)
	c.Format = wshub.ParseFormat(r.URL.Query().Get("format"))
	if !s.attach(sess, c) {
		conn.Close(websocket.StatusGoingAway, "game over")
		return
	}
	defer s.detach(sess, c)
	sess.Begin()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go func() {
		c.WritePump(ctx)
		cancel()
	}()

	for {
		typ, data, err := conn.Read(ctx)
		if err != nil {
			break
		}
		msg, err := wshub.DecodeClientMessage(typ, data)
		if err != nil {
			log.Printf("[WS] Bad message from %s: %v\n", sess.ID, err)
			continue
		}
		if !sess.Send(game.Command{Type: msg.Type, ID: msg.ID}) {
			log.Printf("[WS] Dropped %s command for %s\n", msg.Type, sess.ID)
		}
	}

	sess.Send(game.Command{Type: game.CmdPause})
}

// handleSpectateWS streams a session read-only.
func (s *Server) handleSpectateWS(w http.ResponseWriter, r *http.Request) {
	sess, err := s.Sessions.ByCode(r.PathValue("code"))
	if err != nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		log.Printf("[WS] Accept error: %v\n", err)
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	c := wshub.NewClient(uuid.NewString(), true, conn)
	c.Format = wshub.ParseFormat(r.URL.Query().Get("format"))
	if !s.attach(sess, c) {
		conn.Close(websocket.StatusGoingAway, "game over")
		return
	}
	defer s.detach(sess, c)

	// Spectators never send; CloseRead handles control frames.
	ctx := conn.CloseRead(r.Context())
	c.WritePump(ctx)
}

// attach queues the current state for c and registers it.
func (s *Server) attach(sess *session.Session, c *wshub.Client) bool {
	if data, err := wshub.Encode(c.Format, sess.State()); err == nil {
		c.Send <- data
	}
	if !sess.Hub.Register(c) {
		return false
	}
	if s.Metrics != nil {
		s.Metrics.Clients.Inc()
	}
	log.Printf("[WS] %s joined %s (spectator=%v)\n", c.ID, sess.ID, c.Spectator)
	return true
}

func (s *Server) detach(sess *session.Session, c *wshub.Client) {
	sess.Hub.Unregister(c.ID)
	if s.Metrics != nil {
		s.Metrics.Clients.Dec()
	}
}

func (s *Server) handleLeaderboardEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	flusher.Flush()

	msgChan := s.Broadcaster.Subscribe()
	defer s.Broadcaster.Unsubscribe(msgChan)

	for {
		select {
		case <-r.Context().Done():
			return
		case msg := <-msgChan:
			fmt.Fprintf(w, "event: %s\n", msg.Event)
			for _, line := range strings.Split(msg.Data, "\n") {
				fmt.Fprintf(w, "data: %s\n", line)
			}
			fmt.Fprint(w, "\n")
			flusher.Flush()
		}
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	if s.DB != nil {
		if err := s.DB.Ping(); err != nil {
			status = "db_error"
			w.WriteHeader(http.StatusServiceUnavailable)
			fmt.Fprintf(w, `{"status":"%s","error":"%s"}`, status, err.Error())
			return
		}
	}
	fmt.Fprintf(w, `{"status":"%s","sessions":%d}`, status, len(s.Sessions.List()))
}
