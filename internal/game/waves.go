package game

import (
	"log"
	"math"
	"math/rand"
)

// WaveConfig tunes wave progression and spawn placement.
type WaveConfig struct {
	StartInterval float64 // seconds between spawns on wave 1
	MinInterval   float64 // spawn interval floor
	IntervalDecay float64 // interval multiplier per wave

	StartMaxActive int // concurrent enemy cap on wave 1
	MaxActiveCap   int // concurrent enemy ceiling

	SpawnInnerRadius float64 // inner edge of the spawn ring around the player
	SpawnBandWidth   float64 // random extra distance beyond the inner edge
}

// DefaultWaveConfig returns the tuning the game ships with.
func DefaultWaveConfig() WaveConfig {
	return WaveConfig{
		StartInterval:    2.0,
		MinInterval:      0.9,
		IntervalDecay:    0.92,
		StartMaxActive:   8,
		MaxActiveCap:     24,
		SpawnInnerRadius: 12.0,
		SpawnBandWidth:   8.0,
	}
}

// ComposeWave returns the deterministic, unshuffled composition for a
// wave number: 5 + 2w of the weakest tier, floor(w/2) of the mid tier
// from wave 3, and 1 + floor(w/6) of the strongest tier every 4th wave.
func ComposeWave(wave int) []string {
	tokens := make([]string, 0, 8+2*wave)

	for i := 0; i < 5+2*wave; i++ {
		tokens = append(tokens, ArchetypeTiers[0])
	}
	if wave >= 3 {
		for i := 0; i < wave/2; i++ {
			tokens = append(tokens, ArchetypeTiers[1])
		}
	}
	if wave%4 == 0 {
		for i := 0; i < 1+wave/6; i++ {
			tokens = append(tokens, ArchetypeTiers[2])
		}
	}

	return tokens
}

// WaveScheduler owns the active-enemy roster and the pending spawn
// queue exclusively. It decides when and what to spawn, tracks wave
// progression, and escalates difficulty as waves are consumed.
type WaveScheduler struct {
	cfg      WaveConfig
	rng      *rand.Rand
	resolver VisualResolver

	roster []*Enemy
	queue  []string
	pool   *Pool[Enemy]

	wave          int
	spawnInterval float64
	sinceSpawn    float64
	maxActive     int
	nextID        uint64

	// OnWaveStart fires when a new wave is composed; OnSpawn fires for
	// each enemy that joins the roster. Both are called synchronously
	// from Tick, at most once per tick.
	OnWaveStart func(wave int, queued int)
	OnSpawn     func(e *Enemy)
}

// NewWaveScheduler creates a scheduler starting at wave 1. The rng is
// the injected random source for wave shuffling and spawn placement;
// resolver maps archetype visual keys to render-layer handles.
func NewWaveScheduler(cfg WaveConfig, rng *rand.Rand, resolver VisualResolver) *WaveScheduler {
	if resolver == nil {
		resolver = DefaultVisuals()
	}
	return &WaveScheduler{
		cfg:           cfg,
		rng:           rng,
		resolver:      resolver,
		roster:        make([]*Enemy, 0, cfg.MaxActiveCap),
		queue:         make([]string, 0, 32),
		pool:          NewPool(func() *Enemy { return &Enemy{} }, resetEnemy),
		wave:          1,
		spawnInterval: cfg.StartInterval,
		maxActive:     cfg.StartMaxActive,
	}
}

func resetEnemy(e *Enemy) {
	e.HP = 0
	e.State = EnemySeeking
	e.AttackTimer = 0
	e.DeathTimer = 0
}

// Tick advances every enemy, removes those whose death grace has
// elapsed, composes a new wave when roster and queue are both empty,
// and attempts at most one gated spawn.
func (w *WaveScheduler) Tick(dt float64, playerPos Vec3, onPlayerDamaged func(attackerID uint64, damage int)) {
	// Advance enemies in reverse index order so removal is in-place safe
	for i := len(w.roster) - 1; i >= 0; i-- {
		e := w.roster[i]
		e.Update(dt, playerPos, onPlayerDamaged)
		if e.CleanupExpired() {
			copy(w.roster[i:], w.roster[i+1:])
			w.roster = w.roster[:len(w.roster)-1]
			w.pool.Release(e)
		}
	}

	// A new wave is composed only when the previous one is fully
	// cleared: empty roster (grace periods included) and empty queue.
	if len(w.roster) == 0 && len(w.queue) == 0 {
		w.composeWave()
	}

	w.sinceSpawn += dt
	w.trySpawn(playerPos)
}

// composeWave builds and shuffles the spawn queue for the current wave.
func (w *WaveScheduler) composeWave() {
	w.queue = append(w.queue[:0], ComposeWave(w.wave)...)
	w.rng.Shuffle(len(w.queue), func(i, j int) {
		w.queue[i], w.queue[j] = w.queue[j], w.queue[i]
	})

	log.Printf("🌊 Wave %d: %d enemies queued", w.wave, len(w.queue))
	if w.OnWaveStart != nil {
		w.OnWaveStart(w.wave, len(w.queue))
	}
}

// trySpawn performs at most one spawn attempt per elapsed spawn
// interval, and only while the roster is below the concurrency cap. A
// failed gate leaves the queue untouched; the spawn is deferred, not
// dropped.
func (w *WaveScheduler) trySpawn(playerPos Vec3) {
	if len(w.queue) == 0 || w.sinceSpawn < w.spawnInterval || len(w.roster) >= w.maxActive {
		return
	}

	token := w.queue[0]
	w.queue = w.queue[1:]
	w.sinceSpawn = 0

	stats, ok := GetArchetype(token)
	if !ok {
		// Recoverable configuration error: skip the slot, keep the wave
		log.Printf("⚠️ Unknown enemy type %q in spawn queue, skipping", token)
		if len(w.queue) == 0 {
			w.escalate()
		}
		return
	}

	e := w.pool.Acquire()
	w.nextID++
	e.ID = w.nextID
	e.Type = stats.ID
	e.Stats = stats
	e.HP = stats.MaxHP
	e.MaxHP = stats.MaxHP
	e.Pos = w.spawnPosition(playerPos)
	e.Yaw = 0
	e.State = EnemySeeking
	e.AttackTimer = 0
	e.DeathTimer = 0
	e.VisualKey = w.resolveVisual(stats)

	w.roster = append(w.roster, e)
	if w.OnSpawn != nil {
		w.OnSpawn(e)
	}

	if len(w.queue) == 0 {
		w.escalate()
	}
}

// spawnPosition places an enemy on a ring around the player: random
// angle, inner radius plus a random slice of the band. Spawns are
// neither colocated nor uniformly distant.
func (w *WaveScheduler) spawnPosition(playerPos Vec3) Vec3 {
	angle := w.rng.Float64() * 2 * math.Pi
	radius := w.cfg.SpawnInnerRadius + w.rng.Float64()*w.cfg.SpawnBandWidth
	return Vec3{
		X: playerPos.X + math.Sin(angle)*radius,
		Z: playerPos.Z + math.Cos(angle)*radius,
	}
}

// resolveVisual maps the archetype's visual key through the resolver,
// substituting the placeholder on failure. Gameplay stats are never
// affected by a missing asset.
func (w *WaveScheduler) resolveVisual(stats EnemyArchetype) string {
	key, err := w.resolver.Resolve(stats.VisualKey)
	if err != nil {
		log.Printf("⚠️ Visual %q unavailable for %s, using placeholder: %v", stats.VisualKey, stats.ID, err)
		return PlaceholderVisual
	}
	return key
}

// escalate advances difficulty after the final queued entry of a wave
// is consumed. Spawn interval shrinks toward its floor and the
// concurrency cap grows toward its ceiling, so intensity approaches
// both asymptotes monotonically.
func (w *WaveScheduler) escalate() {
	w.wave++
	w.spawnInterval *= w.cfg.IntervalDecay
	if w.spawnInterval < w.cfg.MinInterval {
		w.spawnInterval = w.cfg.MinInterval
	}
	if w.maxActive < w.cfg.MaxActiveCap {
		w.maxActive++
	}
}

// Reset synchronously returns every enemy to the pool, clears the
// queue, and restores wave-1 difficulty. Used on game restart.
func (w *WaveScheduler) Reset() {
	for i := len(w.roster) - 1; i >= 0; i-- {
		w.pool.Release(w.roster[i])
	}
	w.roster = w.roster[:0]
	w.queue = w.queue[:0]
	w.wave = 1
	w.spawnInterval = w.cfg.StartInterval
	w.sinceSpawn = 0
	w.maxActive = w.cfg.StartMaxActive
}

// Wave returns the current wave number.
func (w *WaveScheduler) Wave() int { return w.wave }

// ActiveCount returns the roster size, dead-pending-cleanup included.
func (w *WaveScheduler) ActiveCount() int { return len(w.roster) }

// QueueLen returns the number of pending spawn tokens.
func (w *WaveScheduler) QueueLen() int { return len(w.queue) }

// SpawnInterval returns the current gate interval in seconds.
func (w *WaveScheduler) SpawnInterval() float64 { return w.spawnInterval }

// MaxActive returns the current concurrency cap.
func (w *WaveScheduler) MaxActive() int { return w.maxActive }

// Enemies returns the full roster, dead-pending-cleanup included.
// The slice is owned by the scheduler; callers must not retain it.
func (w *WaveScheduler) Enemies() []*Enemy { return w.roster }

// AliveEnemies returns the enemies that can still act or be damaged.
func (w *WaveScheduler) AliveEnemies() []*Enemy {
	alive := make([]*Enemy, 0, len(w.roster))
	for _, e := range w.roster {
		if e.Alive() {
			alive = append(alive, e)
		}
	}
	return alive
}

// AliveCount returns the number of alive enemies on the roster.
func (w *WaveScheduler) AliveCount() int {
	n := 0
	for _, e := range w.roster {
		if e.Alive() {
			n++
		}
	}
	return n
}

// Allocated returns the enemy pool's high-water mark.
func (w *WaveScheduler) Allocated() int { return w.pool.Allocated() }
