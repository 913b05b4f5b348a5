package game

import (
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"
)

// EngineConfig configures the simulation core.
type EngineConfig struct {
	TickRate    int     // simulation ticks per second
	ArenaRadius float64 // playable circle around the origin
	Seed        int64   // RNG seed; 0 means time-based
	Wave        WaveConfig
	Limits      ResourceLimits
	Resolver    VisualResolver // nil uses the stock model table
}

// DefaultEngineConfig returns the configuration the game ships with.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		TickRate:    30,
		ArenaRadius: 40.0,
		Wave:        DefaultWaveConfig(),
		Limits:      DefaultLimits(),
	}
}

// Engine is the frame orchestrator. It owns the player, the wave
// scheduler, and the projectile system, and advances them in a fixed
// order once per tick: player first, then enemies (which may damage the
// player), then projectiles (which may damage enemies), then scoring
// and snapshot production. Every cross-system interaction within a tick
// therefore observes a consistent, well-defined prior state.
type Engine struct {
	mu  sync.RWMutex
	cfg EngineConfig

	player      *Player
	waves       *WaveScheduler
	projectiles *ProjectileSystem

	running  bool
	ticker   *time.Ticker
	stopChan chan struct{}

	tickCount  int64
	totalKills int
	gameOver   bool

	// Deterministic RNG for replay consistency
	rng     *rand.Rand
	rngSeed int64

	// Event sourcing for replay and debugging
	eventLog *EventLog

	// Snapshot system for lock-free render separation
	snapshotPool *SnapshotPool

	// Event callbacks, invoked synchronously inside the tick
	OnKill          func(enemyType string, reward int)
	OnGameOver      func(wave, score int)
	onPlayerDamaged func(damage, hp int)

	// OnTick receives the wall-clock duration of each completed step,
	// for external instrumentation. Called outside the engine lock.
	OnTick func(elapsed time.Duration)
}

// NewEngine creates an engine from config. Nothing runs until Start or
// Step is called.
func NewEngine(cfg EngineConfig) *Engine {
	if cfg.TickRate <= 0 {
		cfg.TickRate = 30
	}
	if cfg.ArenaRadius <= 0 {
		cfg.ArenaRadius = 40.0
	}
	if cfg.Wave == (WaveConfig{}) {
		cfg.Wave = DefaultWaveConfig()
	}
	if cfg.Limits == (ResourceLimits{}) {
		cfg.Limits = DefaultLimits()
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	e := &Engine{
		cfg:          cfg,
		player:       NewPlayer(),
		projectiles:  NewProjectileSystem(),
		stopChan:     make(chan struct{}),
		rng:          rng,
		rngSeed:      seed,
		eventLog:     NewEventLog(),
		snapshotPool: NewSnapshotPool(cfg.Limits),
	}
	e.waves = NewWaveScheduler(cfg.Wave, rng, cfg.Resolver)
	e.waves.OnWaveStart = e.emitWaveStart
	e.waves.OnSpawn = e.emitSpawn

	return e
}

// Start begins the game loop
func (e *Engine) Start() {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return
	}
	e.running = true
	e.mu.Unlock()

	e.ticker = time.NewTicker(time.Second / time.Duration(e.cfg.TickRate))

	go func() {
		for {
			select {
			case <-e.ticker.C:
				e.Step(1.0 / float64(e.cfg.TickRate))
			case <-e.stopChan:
				return
			}
		}
	}()

	log.Printf("🎮 Engine started at %d TPS (seed %d)", e.cfg.TickRate, e.rngSeed)
}

// Stop stops the game loop
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.running {
		return
	}

	e.running = false
	if e.ticker != nil {
		e.ticker.Stop()
	}
	close(e.stopChan)
	log.Println("🛑 Engine stopped")
}

// Step advances the simulation by dt synchronously. The ticker calls it
// once per frame; tests call it directly with a fixed dt sequence for
// deterministic replay.
func (e *Engine) Step(dt float64) {
	start := time.Now()

	e.mu.Lock()
	e.step(dt)
	e.mu.Unlock()

	if e.OnTick != nil {
		e.OnTick(time.Since(start))
	}
}

func (e *Engine) step(dt float64) {
	e.tickCount++

	e.eventLog.EmitSimple(EventTypeTick, uint64(e.tickCount), "",
		TickPayload{
			RNGSeed:     e.rngSeed,
			EnemyCount:  e.waves.ActiveCount(),
			DeltaTimeNs: int64(dt * 1e9),
		})

	// Advance RNG seed deterministically for the next tick
	e.rngSeed = e.rng.Int63()
	e.rng.Seed(e.rngSeed)

	// 1. Player: apply input, cooldowns, bounds
	e.player.Update(dt, e.cfg.ArenaRadius)

	// 2. Enemies: movement, attacks, death cleanup, wave progression.
	// 3. Projectiles: advance, expire, resolve impacts against enemies.
	// Both freeze after game over so the final frame stays inspectable
	// and the score is final.
	if !e.gameOver {
		e.waves.Tick(dt, e.player.Pos, e.handleEnemyAttack)
		e.projectiles.Tick(dt, e.waves.QueryImpact, e.handleImpact)
	}

	// 4. Publish the frame for lock-free readers
	e.produceSnapshot()
}

// handleEnemyAttack applies an enemy attack to the player.
func (e *Engine) handleEnemyAttack(attackerID uint64, damage int) {
	fatal := e.player.TakeDamage(damage)

	e.eventLog.EmitSimple(EventTypePlayerDamage, uint64(e.tickCount),
		fmt.Sprintf("enemy_%d", attackerID),
		PlayerDamagePayload{EnemyID: attackerID, Damage: damage, PlayerHP: e.player.HP})

	if e.onPlayerDamaged != nil {
		e.onPlayerDamaged(damage, e.player.HP)
	}

	if fatal {
		e.gameOver = true
		log.Printf("💀 Game over on wave %d (score %d, kills %d)",
			e.waves.Wave(), e.player.Score, e.player.Kills)

		e.eventLog.EmitSimple(EventTypeGameOver, uint64(e.tickCount), "player",
			GameOverPayload{Wave: e.waves.Wave(), Score: e.player.Score, Kills: e.player.Kills})

		if e.OnGameOver != nil {
			e.OnGameOver(e.waves.Wave(), e.player.Score)
		}
	}
}

// handleImpact applies scoring for a confirmed projectile hit. Damage
// was already applied inside the impact query.
func (e *Engine) handleImpact(impact ImpactResult) {
	sourceID := fmt.Sprintf("enemy_%d", impact.Target.ID)

	e.eventLog.EmitSimple(EventTypeImpact, uint64(e.tickCount), sourceID,
		ImpactPayload{
			EnemyID: impact.Target.ID,
			Damage:  impact.Damage,
			Fatal:   impact.Fatal,
			EnemyHP: impact.Target.HP,
		})

	if !impact.Fatal {
		return
	}

	e.totalKills++
	e.player.Kills++
	e.player.Score += impact.Reward

	e.eventLog.EmitSimple(EventTypeEnemyDeath, uint64(e.tickCount), sourceID,
		EnemyDeathPayload{
			EnemyID: impact.Target.ID,
			Type:    impact.Target.Type,
			Reward:  impact.Reward,
			Score:   e.player.Score,
		})

	if e.OnKill != nil {
		e.OnKill(impact.Target.Type, impact.Reward)
	}
}

// Fire spawns a projectile from the player using the given weapon,
// aimed along dir. Returns false when the shot is gated: game over,
// weapon still cooling down, or the projectile cap reached.
func (e *Engine) Fire(weaponID string, dir Vec3) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.gameOver || e.player.IsDead || e.player.FireCooldown > 0 {
		return false
	}
	if e.projectiles.ActiveCount() >= e.cfg.Limits.MaxProjectiles {
		return false
	}

	weapon := GetWeapon(weaponID)
	aim := dir
	if aim.LenSq() == 0 {
		aim = e.player.Aim
	}
	aim = aim.Normalized()

	// Muzzle offset so the projectile starts at the player's edge
	origin := e.player.Pos.Add(aim.Scale(1.0))
	e.projectiles.Spawn(origin, aim, weapon.Speed, weapon.Damage, weapon.MaxDistance, weapon.Color)

	e.player.Weapon = weapon.ID
	e.player.FireCooldown = weapon.Cooldown
	e.player.Aim = aim

	e.eventLog.EmitSimple(EventTypeProjectileFire, uint64(e.tickCount), "player",
		ProjectileFirePayload{Weapon: weapon.ID, DirX: aim.X, DirZ: aim.Z, Damage: weapon.Damage})

	return true
}

// SetInput stores the latest player move/aim input from the input layer.
func (e *Engine) SetInput(moveX, moveZ float64, aim Vec3) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.player.SetInput(moveX, moveZ, aim)
}

// Reset synchronously flushes all projectiles and enemies back to their
// pools, respawns the player, and restores wave-1 difficulty. There is
// no partial-reset state; the next tick starts from a clean slate.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.projectiles.ResetAll()
	e.waves.Reset()
	e.player.Respawn()
	e.gameOver = false

	e.eventLog.EmitSimple(EventTypeReset, uint64(e.tickCount), "", nil)
	log.Println("🔄 Game reset")
}

func (e *Engine) emitWaveStart(wave, queued int) {
	e.eventLog.EmitSimple(EventTypeWaveStart, uint64(e.tickCount), "",
		WaveStartPayload{
			Wave:          wave,
			Queued:        queued,
			SpawnInterval: e.waves.SpawnInterval(),
			MaxActive:     e.waves.MaxActive(),
		})
}

func (e *Engine) emitSpawn(enemy *Enemy) {
	e.eventLog.EmitSimple(EventTypeEnemySpawn, uint64(e.tickCount),
		fmt.Sprintf("enemy_%d", enemy.ID),
		EnemySpawnPayload{
			EnemyID: enemy.ID,
			Type:    enemy.Type,
			Wave:    e.waves.Wave(),
			X:       enemy.Pos.X,
			Z:       enemy.Pos.Z,
		})
}

// GameState is a locked view of the current state for API responses.
type GameState struct {
	Player       Player  `json:"player"`
	Wave         int     `json:"wave"`
	Queued       int     `json:"queued"`
	EnemyCount   int     `json:"enemyCount"`
	AliveEnemies int     `json:"aliveEnemies"`
	Projectiles  int     `json:"projectiles"`
	TotalKills   int     `json:"totalKills"`
	GameOver     bool    `json:"gameOver"`
	TickCount    int64   `json:"tickCount"`
	SpawnGap     float64 `json:"spawnInterval"`
}

// GetState returns the current game state for API consumers.
func (e *Engine) GetState() GameState {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return GameState{
		Player:       *e.player,
		Wave:         e.waves.Wave(),
		Queued:       e.waves.QueueLen(),
		EnemyCount:   e.waves.ActiveCount(),
		AliveEnemies: e.waves.AliveCount(),
		Projectiles:  e.projectiles.ActiveCount(),
		TotalKills:   e.totalKills,
		GameOver:     e.gameOver,
		TickCount:    e.tickCount,
		SpawnGap:     e.waves.SpawnInterval(),
	}
}

// GetAliveEnemies returns copies of the alive roster for API consumers.
func (e *Engine) GetAliveEnemies() []EnemySnapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]EnemySnapshot, 0, e.waves.AliveCount())
	for _, en := range e.waves.AliveEnemies() {
		out = append(out, enemyToSnapshot(en))
	}
	return out
}

// GetSnapshot returns the latest immutable snapshot for lock-free
// readers. This is the preferred method for the render loop.
func (e *Engine) GetSnapshot() *GameSnapshot {
	return e.snapshotPool.AcquireRead()
}

// produceSnapshot creates an immutable snapshot of the current game
// state. Called at the end of each tick, under the engine lock.
func (e *Engine) produceSnapshot() {
	snap := e.snapshotPool.AcquireWrite()
	snap.TickNumber = uint64(e.tickCount)
	snap.RNGSeed = e.rngSeed
	snap.ArenaRadius = e.cfg.ArenaRadius
	snap.TotalKills = e.totalKills
	snap.GameOver = e.gameOver

	p := e.player
	snap.Player = PlayerSnapshot{
		X: p.Pos.X, Y: p.Pos.Y, Z: p.Pos.Z,
		Yaw:    p.Yaw,
		HP:     p.HP,
		MaxHP:  p.MaxHP,
		Score:  p.Score,
		Kills:  p.Kills,
		Weapon: p.Weapon,
		IsDead: p.IsDead,
	}

	alive := 0
	for _, en := range e.waves.Enemies() {
		if len(snap.Enemies) >= e.cfg.Limits.MaxEnemies {
			break
		}
		snap.Enemies = append(snap.Enemies, enemyToSnapshot(en))
		if en.Alive() {
			alive++
		}
	}
	snap.AliveEnemies = alive

	for _, pr := range e.projectiles.Active() {
		if len(snap.Projectiles) >= e.cfg.Limits.MaxProjectiles {
			break
		}
		snap.Projectiles = append(snap.Projectiles, ProjectileSnapshot{
			X: pr.Pos.X, Y: pr.Pos.Y, Z: pr.Pos.Z,
			DirX:  pr.Dir.X,
			DirZ:  pr.Dir.Z,
			Color: pr.Color,
		})
	}

	snap.Wave = WaveSnapshot{
		Number:        e.waves.Wave(),
		Queued:        e.waves.QueueLen(),
		SpawnInterval: e.waves.SpawnInterval(),
		MaxActive:     e.waves.MaxActive(),
	}

	e.snapshotPool.PublishWrite()
}

func enemyToSnapshot(en *Enemy) EnemySnapshot {
	return EnemySnapshot{
		ID:        en.ID,
		Type:      en.Type,
		X:         en.Pos.X,
		Y:         en.Pos.Y,
		Z:         en.Pos.Z,
		Yaw:       en.Yaw,
		HP:        en.HP,
		MaxHP:     en.MaxHP,
		Radius:    en.Stats.Radius,
		State:     en.State.String(),
		VisualKey: en.VisualKey,
		Color:     en.Stats.Color,
	}
}

// SetCallbacks sets event callbacks
func (e *Engine) SetCallbacks(onKill func(string, int), onGameOver func(int, int), onPlayerDamaged func(int, int)) {
	e.OnKill = onKill
	e.OnGameOver = onGameOver
	e.onPlayerDamaged = onPlayerDamaged
}

// StartEventLog initializes the event logging system
func (e *Engine) StartEventLog(filePath string) error {
	return e.eventLog.Start(filePath)
}

// StopEventLog gracefully stops the event logging system
func (e *Engine) StopEventLog() {
	e.eventLog.Stop()
}

// GetEventLogStats returns event log statistics for monitoring
func (e *Engine) GetEventLogStats() map[string]interface{} {
	return e.eventLog.GetStats()
}

// GetLimits returns the current resource limits
func (e *Engine) GetLimits() ResourceLimits {
	return e.cfg.Limits
}

// Seed returns the RNG seed in effect for the current tick. Recording
// it alongside tick events is enough to replay a session.
func (e *Engine) Seed() int64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.rngSeed
}
