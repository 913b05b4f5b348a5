package api

import (
	"bytes"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"wavebreaker/internal/game"
)

func newTestServer(t *testing.T) (*httptest.Server, *game.Engine) {
	t.Helper()

	cfg := game.DefaultEngineConfig()
	cfg.Seed = 1
	engine := game.NewEngine(cfg)

	router := NewRouter(RouterConfig{
		Engine: engine,
		RateLimitConfig: &RateLimitConfig{
			RequestsPerSecond: 1000,
			Burst:             1000,
			CleanupInterval:   DefaultRateLimitConfig.CleanupInterval,
		},
		DisableLogging: true,
	})

	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return ts, engine
}

// TestGetState tests the locked state endpoint
func TestGetState(t *testing.T) {
	ts, engine := newTestServer(t)
	engine.Step(1.0 / 30.0)

	resp, err := http.Get(ts.URL + "/api/state")
	if err != nil {
		t.Fatalf("GET /api/state: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	var state game.GameState
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		t.Fatalf("Decode state: %v", err)
	}
	if state.Wave != 1 {
		t.Errorf("Expected wave 1, got %d", state.Wave)
	}
	if state.TickCount != 1 {
		t.Errorf("Expected tick 1, got %d", state.TickCount)
	}
}

// TestGetStats tests the snapshot-backed stats endpoint
func TestGetStats(t *testing.T) {
	ts, engine := newTestServer(t)
	engine.Step(1.0 / 30.0)

	resp, err := http.Get(ts.URL + "/api/stats")
	if err != nil {
		t.Fatalf("GET /api/stats: %v", err)
	}
	defer resp.Body.Close()

	var stats map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		t.Fatalf("Decode stats: %v", err)
	}
	if stats["wave"].(float64) != 1 {
		t.Errorf("Expected wave 1, got %v", stats["wave"])
	}
	if _, ok := stats["eventLog"]; !ok {
		t.Error("Expected eventLog stats in response")
	}
}

// TestGetWeapons tests the weapon table endpoint
func TestGetWeapons(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/weapons")
	if err != nil {
		t.Fatalf("GET /api/weapons: %v", err)
	}
	defer resp.Body.Close()

	var weapons []game.Weapon
	if err := json.NewDecoder(resp.Body).Decode(&weapons); err != nil {
		t.Fatalf("Decode weapons: %v", err)
	}
	if len(weapons) != 3 {
		t.Errorf("Expected 3 weapons, got %d", len(weapons))
	}
}

// TestPostFire tests the fire endpoint end to end
func TestPostFire(t *testing.T) {
	ts, engine := newTestServer(t)

	body := bytes.NewBufferString(`{"weapon":"blaster","dirX":0,"dirY":0,"dirZ":1}`)
	resp, err := http.Post(ts.URL+"/api/fire", "application/json", body)
	if err != nil {
		t.Fatalf("POST /api/fire: %v", err)
	}
	defer resp.Body.Close()

	var result map[string]bool
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Decode fire result: %v", err)
	}
	if !result["fired"] {
		t.Error("Expected the shot to fire")
	}
	if engine.GetState().Projectiles != 1 {
		t.Errorf("Expected 1 projectile in flight, got %d", engine.GetState().Projectiles)
	}

	// Immediate second shot is gated by the weapon cooldown
	body = bytes.NewBufferString(`{"weapon":"blaster","dirZ":1}`)
	resp2, err := http.Post(ts.URL+"/api/fire", "application/json", body)
	if err != nil {
		t.Fatalf("POST /api/fire: %v", err)
	}
	defer resp2.Body.Close()
	if err := json.NewDecoder(resp2.Body).Decode(&result); err != nil {
		t.Fatalf("Decode fire result: %v", err)
	}
	if result["fired"] {
		t.Error("Expected the second shot gated by cooldown")
	}
}

// TestPostFireBadJSON tests request validation
func TestPostFireBadJSON(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/fire", "application/json", bytes.NewBufferString("{"))
	if err != nil {
		t.Fatalf("POST /api/fire: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected 400 for malformed JSON, got %d", resp.StatusCode)
	}
}

// TestPostInput tests the input endpoint moving the player
func TestPostInput(t *testing.T) {
	ts, engine := newTestServer(t)

	body := bytes.NewBufferString(`{"moveX":1,"moveZ":0,"aimX":0,"aimY":0,"aimZ":1}`)
	resp, err := http.Post(ts.URL+"/api/input", "application/json", body)
	if err != nil {
		t.Fatalf("POST /api/input: %v", err)
	}
	resp.Body.Close()

	engine.Step(0.5)
	if engine.GetState().Player.Pos.X <= 0 {
		t.Errorf("Expected player moved along +X, got %f", engine.GetState().Player.Pos.X)
	}
}

// TestPostReset tests the restart endpoint
func TestPostReset(t *testing.T) {
	ts, engine := newTestServer(t)

	for i := 0; i < 300; i++ {
		engine.Step(1.0 / 30.0)
	}
	if engine.GetState().EnemyCount == 0 {
		t.Fatal("Expected spawns before reset")
	}

	resp, err := http.Post(ts.URL+"/api/reset", "application/json", nil)
	if err != nil {
		t.Fatalf("POST /api/reset: %v", err)
	}
	resp.Body.Close()

	if engine.GetState().EnemyCount != 0 {
		t.Errorf("Expected empty roster after reset, got %d", engine.GetState().EnemyCount)
	}
}

// TestGetPreview tests that the debug frame endpoint returns a valid PNG
func TestGetPreview(t *testing.T) {
	ts, engine := newTestServer(t)
	engine.Step(1.0 / 30.0)

	resp, err := http.Get(ts.URL + "/api/preview.png")
	if err != nil {
		t.Fatalf("GET /api/preview.png: %v", err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("Expected image/png, got %s", ct)
	}

	img, err := png.Decode(resp.Body)
	if err != nil {
		t.Fatalf("Decode PNG: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != PreviewWidth || bounds.Dy() != PreviewHeight {
		t.Errorf("Expected %dx%d frame, got %dx%d",
			PreviewWidth, PreviewHeight, bounds.Dx(), bounds.Dy())
	}
}

// TestRateLimiting tests that a flooding client gets throttled
func TestRateLimiting(t *testing.T) {
	cfg := game.DefaultEngineConfig()
	cfg.Seed = 1
	engine := game.NewEngine(cfg)

	router := NewRouter(RouterConfig{
		Engine: engine,
		RateLimitConfig: &RateLimitConfig{
			RequestsPerSecond: 1,
			Burst:             2,
			CleanupInterval:   DefaultRateLimitConfig.CleanupInterval,
		},
		DisableLogging: true,
	})
	ts := httptest.NewServer(router)
	defer ts.Close()

	throttled := false
	for i := 0; i < 5; i++ {
		resp, err := http.Get(ts.URL + "/api/state")
		if err != nil {
			t.Fatalf("GET /api/state: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode == http.StatusTooManyRequests {
			throttled = true
		}
	}
	if !throttled {
		t.Error("Expected the flood to hit the rate limit")
	}
}
