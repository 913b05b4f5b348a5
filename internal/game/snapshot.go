package game

import (
	"sync/atomic"
	"time"
)

// ResourceLimits defines hard caps on snapshot contents so a runaway
// simulation can never make a reader allocate unboundedly.
type ResourceLimits struct {
	MaxEnemies     int // Roster cap reflected in snapshots
	MaxProjectiles int // Active projectile cap
}

// DefaultLimits provides production-safe default limits
func DefaultLimits() ResourceLimits {
	return ResourceLimits{
		MaxEnemies:     32, // MaxActiveCap plus dead-pending-cleanup headroom
		MaxProjectiles: 64,
	}
}

// PlayerSnapshot is an immutable copy of player state for rendering
type PlayerSnapshot struct {
	X, Y, Z   float64
	Yaw       float64
	HP, MaxHP int
	Score     int
	Kills     int
	Weapon    string
	IsDead    bool
}

// EnemySnapshot is an immutable copy of enemy state for rendering
type EnemySnapshot struct {
	ID        uint64
	Type      string
	X, Y, Z   float64
	Yaw       float64
	HP, MaxHP int
	Radius    float64
	State     string
	VisualKey string
	Color     string
}

// ProjectileSnapshot is an immutable copy of projectile state for rendering
type ProjectileSnapshot struct {
	X, Y, Z    float64
	DirX, DirZ float64
	Color      string
}

// WaveSnapshot captures wave scheduler progress
type WaveSnapshot struct {
	Number        int
	Queued        int
	SpawnInterval float64
	MaxActive     int
}

// GameSnapshot is a complete immutable game state for rendering.
// All slices are pre-allocated and capped.
type GameSnapshot struct {
	Sequence   uint64    // Monotonic sequence for ordering
	Timestamp  time.Time // When snapshot was created
	TickNumber uint64    // Game tick this represents
	RNGSeed    int64     // Seed for deterministic replay

	Player      PlayerSnapshot
	Enemies     []EnemySnapshot
	Projectiles []ProjectileSnapshot
	Wave        WaveSnapshot
	ArenaRadius float64

	AliveEnemies int
	TotalKills   int
	GameOver     bool
}

// SnapshotPool pre-allocates snapshots to avoid GC pressure.
// Uses triple buffering for lock-free producer/consumer: the tick
// goroutine writes, any number of readers observe the last published
// buffer without taking the engine lock.
type SnapshotPool struct {
	snapshots [3]GameSnapshot // Triple buffer
	limits    ResourceLimits
	writeIdx  uint32 // atomic - producer index
	readIdx   uint32 // atomic - consumer index
	sequence  uint64 // atomic - monotonic sequence
}

// NewSnapshotPool creates a pool with pre-allocated slices
func NewSnapshotPool(limits ResourceLimits) *SnapshotPool {
	pool := &SnapshotPool{limits: limits}

	for i := 0; i < 3; i++ {
		pool.snapshots[i] = GameSnapshot{
			Enemies:     make([]EnemySnapshot, 0, limits.MaxEnemies),
			Projectiles: make([]ProjectileSnapshot, 0, limits.MaxProjectiles),
		}
	}

	return pool
}

// AcquireWrite gets the next write slot (producer only, called from the
// game tick). Returns a snapshot with reset slices but preserved capacity.
func (p *SnapshotPool) AcquireWrite() *GameSnapshot {
	idx := atomic.AddUint32(&p.writeIdx, 1) % 3
	snap := &p.snapshots[idx]

	snap.Enemies = snap.Enemies[:0]
	snap.Projectiles = snap.Projectiles[:0]
	snap.Player = PlayerSnapshot{}
	snap.Wave = WaveSnapshot{}
	snap.GameOver = false

	snap.Sequence = atomic.AddUint64(&p.sequence, 1)
	snap.Timestamp = time.Now()

	return snap
}

// PublishWrite marks the write complete and advances the read pointer.
// Called after the snapshot is fully populated.
func (p *SnapshotPool) PublishWrite() {
	atomic.StoreUint32(&p.readIdx, atomic.LoadUint32(&p.writeIdx))
}

// AcquireRead gets the latest complete snapshot (consumers only).
func (p *SnapshotPool) AcquireRead() *GameSnapshot {
	idx := atomic.LoadUint32(&p.readIdx) % 3
	return &p.snapshots[idx]
}

// GetLimits returns the resource limits
func (p *SnapshotPool) GetLimits() ResourceLimits {
	return p.limits
}
