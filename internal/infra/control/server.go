package control

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"soundboard/internal/application"
	"soundboard/internal/domain"
)

// Server is the control surface standing in for a GUI: whatever
// front-end lets the user pick files and record key combinations talks
// to the board through these endpoints, sending a path string and a
// canonical combo string.
type Server struct {
	addr        string
	authToken   string
	board       *application.Soundboard
	logger      *slog.Logger
	mux         *http.ServeMux
	rateLimiter *RateLimiter

	mu      sync.Mutex
	server  *http.Server
	running bool
}

func NewServer(addr, authToken string, board *application.Soundboard, logger *slog.Logger) *Server {
	s := &Server{
		addr:        addr,
		authToken:   authToken,
		board:       board,
		logger:      logger,
		mux:         http.NewServeMux(),
		rateLimiter: NewRateLimiter(60, time.Minute),
	}

	limited := func(h http.HandlerFunc) http.HandlerFunc {
		return s.auth(s.rateLimiter.Middleware(h))
	}
	s.mux.HandleFunc("GET /sounds", s.auth(s.handleList))
	s.mux.HandleFunc("POST /sounds", limited(s.handleAdd))
	s.mux.HandleFunc("DELETE /sounds/{name}", limited(s.handleDelete))
	s.mux.HandleFunc("PUT /sounds/{name}/hotkey", limited(s.handleSetHotkey))
	s.mux.HandleFunc("DELETE /sounds/{name}/hotkey", limited(s.handleClearHotkey))
	s.mux.HandleFunc("POST /sounds/{name}/play", limited(s.handlePlay))
	s.mux.HandleFunc("POST /stop", s.auth(s.handleStop))
	// No auth or rate limiting on health check
	s.mux.HandleFunc("GET /health", s.handleHealth)

	return s
}

func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	s.server = &http.Server{
		Addr:         s.addr,
		Handler:      s.mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		s.logger.Info("control server starting", "addr", s.addr)
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("control server error", "error", err)
		}
	}()

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	s.running = true
	return nil
}

func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil {
		s.logger.Warn("graceful shutdown failed, forcing close", "error", err)
		if err := s.server.Close(); err != nil {
			return fmt.Errorf("closing server: %w", err)
		}
	}
	s.running = false
	return nil
}

// Handler exposes the mux for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) auth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.authToken != "" {
			token := r.Header.Get("X-Auth-Token")
			if token == "" {
				token = r.URL.Query().Get("token")
			}
			if token != s.authToken {
				s.logger.Warn("unauthorized control request", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
		}
		next(w, r)
	}
}

type soundResponse struct {
	Name   string `json:"name"`
	Path   string `json:"path"`
	Hotkey string `json:"hotkey,omitempty"`
}

type addRequest struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

type hotkeyRequest struct {
	Key string `json:"key"`
}

func (s *Server) handleList(w http.ResponseWriter, _ *http.Request) {
	entries := s.board.Sounds()
	sounds := make([]soundResponse, 0, len(entries))
	for _, e := range entries {
		sounds = append(sounds, soundResponse{Name: e.Name, Path: e.Path, Hotkey: e.Hotkey})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"sounds":            sounds,
		"hotkeys_available": s.board.HotkeysAvailable(),
	})
}

func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	var req addRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if req.Path == "" {
		http.Error(w, "path is required", http.StatusBadRequest)
		return
	}

	if err := s.board.Add(req.Name, req.Path); err != nil {
		s.writeError(w, err)
		return
	}
	s.logger.Info("sound added via control API", "name", req.Name, "path", req.Path)
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.board.Remove(r.PathValue("name")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSetHotkey(w http.ResponseWriter, r *http.Request) {
	var req hotkeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if err := s.board.SetHotkey(r.PathValue("name"), req.Key); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleClearHotkey(w http.ResponseWriter, r *http.Request) {
	if err := s.board.ClearHotkey(r.PathValue("name")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	if err := s.board.Play(r.PathValue("name")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) handleStop(w http.ResponseWriter, _ *http.Request) {
	s.board.Stop()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"sounds": len(s.board.Sounds()),
	})
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateID), errors.Is(err, domain.ErrHotkeyConflict):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrDeviceNotFound):
		status = http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrHotkeysUnavailable):
		status = http.StatusNotImplemented
	}
	http.Error(w, err.Error(), status)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
