package api

import (
	"encoding/json"
	"image/png"
	"net/http"

	"wavebreaker/internal/game"
)

// Handler methods for routerHandlers. These serve both the standalone
// router (for tests) and the full Server.

func (h *routerHandlers) handleGetState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.engine.GetState())
}

func (h *routerHandlers) handleGetStats(w http.ResponseWriter, r *http.Request) {
	// Use the lock-free snapshot instead of GetState() to avoid
	// RWMutex contention on every poll request
	snapshot := h.engine.GetSnapshot()
	writeJSON(w, map[string]interface{}{
		"tick":         snapshot.TickNumber,
		"wave":         snapshot.Wave.Number,
		"queued":       snapshot.Wave.Queued,
		"enemyCount":   len(snapshot.Enemies),
		"aliveEnemies": snapshot.AliveEnemies,
		"projectiles":  len(snapshot.Projectiles),
		"totalKills":   snapshot.TotalKills,
		"score":        snapshot.Player.Score,
		"gameOver":     snapshot.GameOver,
		"eventLog":     h.engine.GetEventLogStats(),
	})
}

func (h *routerHandlers) handleGetEnemies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.engine.GetAliveEnemies())
}

func (h *routerHandlers) handleGetWeapons(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, game.GetAllWeapons())
}

func (h *routerHandlers) handleFire(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Weapon string  `json:"weapon"`
		DirX   float64 `json:"dirX"`
		DirY   float64 `json:"dirY"`
		DirZ   float64 `json:"dirZ"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	fired := h.engine.Fire(req.Weapon, game.Vec3{X: req.DirX, Y: req.DirY, Z: req.DirZ})
	writeJSON(w, map[string]interface{}{"fired": fired})
}

func (h *routerHandlers) handleInput(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MoveX float64 `json:"moveX"`
		MoveZ float64 `json:"moveZ"`
		AimX  float64 `json:"aimX"`
		AimY  float64 `json:"aimY"`
		AimZ  float64 `json:"aimZ"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	h.engine.SetInput(req.MoveX, req.MoveZ, game.Vec3{X: req.AimX, Y: req.AimY, Z: req.AimZ})
	writeJSON(w, map[string]interface{}{"ok": true})
}

func (h *routerHandlers) handleReset(w http.ResponseWriter, r *http.Request) {
	h.engine.Reset()
	writeJSON(w, map[string]interface{}{"ok": true})
}

func (h *routerHandlers) handlePreview(w http.ResponseWriter, r *http.Request) {
	img := RenderPreview(h.engine.GetSnapshot(), PreviewWidth, PreviewHeight)

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	if err := png.Encode(w, img); err != nil {
		// Headers already sent; nothing useful left to do
		return
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, msg string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
