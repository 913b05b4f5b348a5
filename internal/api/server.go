package api

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"wavebreaker/internal/game"
)

// snapshotBroadcastInterval is the WebSocket feed rate. Slower than the
// simulation tick on purpose; clients interpolate between frames.
const snapshotBroadcastInterval = 50 * time.Millisecond

// Server combines the HTTP router with the WebSocket snapshot feed.
type Server struct {
	engine      *game.Engine
	router      *chi.Mux
	wsHub       *WebSocketHub
	rateLimiter *IPRateLimiter
}

// NewServer creates an API server with production defaults.
//
// Background workers do NOT start until Start() is called, so the
// server can be constructed in tests without goroutines or listeners.
// For plain HTTP endpoint tests, use NewRouter() directly.
func NewServer(engine *game.Engine) *Server {
	s := &Server{
		engine: engine,
		wsHub:  NewWebSocketHub(),
	}

	s.rateLimiter = NewIPRateLimiter(DefaultRateLimitConfig)

	s.router = NewRouter(RouterConfig{
		Engine:      engine,
		RateLimiter: s.rateLimiter,
	})

	// The snapshot feed needs the hub instance, so it can't live in the
	// generic NewRouter factory
	s.router.Get("/ws", s.wsHub.HandleWS)

	return s
}

// Start begins the HTTP server and the background workers. This is the
// only method that starts goroutines or opens listeners; call it once.
func (s *Server) Start(addr string) error {
	go s.wsHub.Run()
	go s.broadcastLoop()

	log.Printf("🌐 API server starting on %s", addr)
	log.Printf("   - state:   http://localhost%s/api/state", addr)
	log.Printf("   - preview: http://localhost%s/api/preview.png", addr)

	return http.ListenAndServe(addr, s.router)
}

// Router returns the HTTP handler for use with httptest.
func (s *Server) Router() http.Handler {
	return s.router
}

// Stop shuts down the background workers. WebSocket connections close
// when the process exits.
func (s *Server) Stop() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
}

// broadcastLoop pushes the latest snapshot to every WebSocket client
// and refreshes the simulation gauges. Runs off the tick goroutine so a
// slow client or scrape never stalls a frame.
func (s *Server) broadcastLoop() {
	ticker := time.NewTicker(snapshotBroadcastInterval)
	defer ticker.Stop()

	var lastSeq uint64
	for range ticker.C {
		snap := s.engine.GetSnapshot()
		UpdateGameGauges(snap)

		if s.wsHub.ClientCount() == 0 {
			continue
		}
		if snap.Sequence == lastSeq {
			// Engine hasn't produced a new frame; don't resend
			continue
		}
		lastSeq = snap.Sequence

		data, err := json.Marshal(snap)
		if err != nil {
			log.Printf("⚠️ Snapshot marshal failed: %v", err)
			continue
		}
		s.wsHub.Broadcast(data)
	}
}
