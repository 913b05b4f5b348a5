package game

import (
	"encoding/json"
	"time"
)

// EventType enum for event classification
type EventType uint8

const (
	EventTypeUnknown EventType = iota
	EventTypeTick              // Tick boundary with RNG seed
	EventTypeWaveStart
	EventTypeEnemySpawn
	EventTypeEnemyDeath
	EventTypeProjectileFire
	EventTypeImpact
	EventTypePlayerDamage
	EventTypeGameOver
	EventTypeReset
)

// EventVersion for backwards compatibility in replay
const EventVersion uint8 = 1

// Event is the core event structure for the event log
type Event struct {
	Version   uint8     `json:"version"`   // Schema version
	Type      EventType `json:"type"`      // Event type
	Timestamp int64     `json:"timestamp"` // Unix nano
	Sequence  uint64    `json:"sequence"`  // Monotonic sequence
	TickNum   uint64    `json:"tickNum"`   // Game tick this occurred in
	SourceID  string    `json:"sourceId"`  // Originating entity (for rate limiting)
	Payload   []byte    `json:"payload"`   // JSON-encoded payload
}

// String returns a human-readable event type
func (t EventType) String() string {
	switch t {
	case EventTypeTick:
		return "tick"
	case EventTypeWaveStart:
		return "wave_start"
	case EventTypeEnemySpawn:
		return "enemy_spawn"
	case EventTypeEnemyDeath:
		return "enemy_death"
	case EventTypeProjectileFire:
		return "projectile_fire"
	case EventTypeImpact:
		return "impact"
	case EventTypePlayerDamage:
		return "player_damage"
	case EventTypeGameOver:
		return "game_over"
	case EventTypeReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Typed payloads for different event types

// TickPayload contains tick boundary information for replay
type TickPayload struct {
	RNGSeed     int64 `json:"rngSeed"`
	EnemyCount  int   `json:"enemyCount"`
	DeltaTimeNs int64 `json:"deltaTimeNs"`
}

// WaveStartPayload marks a freshly composed wave
type WaveStartPayload struct {
	Wave          int     `json:"wave"`
	Queued        int     `json:"queued"`
	SpawnInterval float64 `json:"spawnInterval"`
	MaxActive     int     `json:"maxActive"`
}

// EnemySpawnPayload records an enemy joining the roster
type EnemySpawnPayload struct {
	EnemyID uint64  `json:"enemyId"`
	Type    string  `json:"enemyType"`
	Wave    int     `json:"wave"`
	X       float64 `json:"x"`
	Z       float64 `json:"z"`
}

// EnemyDeathPayload records a kill and its reward
type EnemyDeathPayload struct {
	EnemyID uint64 `json:"enemyId"`
	Type    string `json:"enemyType"`
	Reward  int    `json:"reward"`
	Score   int    `json:"score"`
}

// ProjectileFirePayload records a weapon discharge
type ProjectileFirePayload struct {
	Weapon string  `json:"weapon"`
	DirX   float64 `json:"dirX"`
	DirZ   float64 `json:"dirZ"`
	Damage int     `json:"damage"`
}

// ImpactPayload records a projectile connecting with an enemy
type ImpactPayload struct {
	EnemyID uint64 `json:"enemyId"`
	Damage  int    `json:"damage"`
	Fatal   bool   `json:"fatal"`
	EnemyHP int    `json:"enemyHp"`
}

// PlayerDamagePayload records an enemy attack landing on the player
type PlayerDamagePayload struct {
	EnemyID  uint64 `json:"enemyId"`
	Damage   int    `json:"damage"`
	PlayerHP int    `json:"playerHp"`
}

// GameOverPayload records the end of a run
type GameOverPayload struct {
	Wave  int `json:"wave"`
	Score int `json:"score"`
	Kills int `json:"kills"`
}

// NewEvent creates an event with the payload marshaled to JSON
func NewEvent(eventType EventType, tickNum uint64, sourceID string, payload interface{}) Event {
	return Event{
		Version:   EventVersion,
		Type:      eventType,
		Timestamp: time.Now().UnixNano(),
		TickNum:   tickNum,
		SourceID:  sourceID,
		Payload:   EncodePayload(payload),
	}
}

// EncodePayload marshals a payload to JSON bytes
func EncodePayload(payload interface{}) []byte {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil
	}
	return data
}
