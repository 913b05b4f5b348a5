package game

import (
	"testing"
)

func newTestEngine(seed int64) *Engine {
	cfg := DefaultEngineConfig()
	cfg.Seed = seed
	return NewEngine(cfg)
}

const testDt = 1.0 / 30.0

// TestEngineStepAdvancesTick tests basic frame bookkeeping
func TestEngineStepAdvancesTick(t *testing.T) {
	e := newTestEngine(1)

	e.Step(testDt)
	e.Step(testDt)

	state := e.GetState()
	if state.TickCount != 2 {
		t.Errorf("Expected tick 2, got %d", state.TickCount)
	}
	if state.Wave != 1 {
		t.Errorf("Expected wave 1, got %d", state.Wave)
	}
}

// TestEngineDeterministicReplay tests that two engines with the same
// seed and dt sequence stay in lockstep
func TestEngineDeterministicReplay(t *testing.T) {
	a := newTestEngine(99)
	b := newTestEngine(99)

	for i := 0; i < 300; i++ {
		a.Step(testDt)
		b.Step(testDt)
	}

	sa, sb := a.GetState(), b.GetState()
	if sa.EnemyCount != sb.EnemyCount || sa.Wave != sb.Wave || sa.Queued != sb.Queued {
		t.Fatalf("States diverged: %+v vs %+v", sa, sb)
	}
	if a.Seed() != b.Seed() {
		t.Errorf("RNG seeds diverged: %d vs %d", a.Seed(), b.Seed())
	}

	ea, eb := a.GetAliveEnemies(), b.GetAliveEnemies()
	if len(ea) != len(eb) {
		t.Fatalf("Roster sizes diverged: %d vs %d", len(ea), len(eb))
	}
	for i := range ea {
		if ea[i] != eb[i] {
			t.Errorf("Enemy %d diverged: %+v vs %+v", i, ea[i], eb[i])
		}
	}
}

// TestEngineSeedsDiverge tests that different seeds produce different runs
func TestEngineSeedsDiverge(t *testing.T) {
	a := newTestEngine(1)
	b := newTestEngine(2)

	for i := 0; i < 300; i++ {
		a.Step(testDt)
		b.Step(testDt)
	}

	ea, eb := a.GetAliveEnemies(), b.GetAliveEnemies()
	if len(ea) == 0 || len(eb) == 0 {
		t.Fatal("Expected spawns in both runs")
	}

	same := len(ea) == len(eb)
	if same {
		for i := range ea {
			if ea[i].X != eb[i].X || ea[i].Z != eb[i].Z {
				same = false
				break
			}
		}
	}
	if same {
		t.Error("Expected different seeds to place enemies differently")
	}
}

// TestEngineFireCooldown tests the per-weapon fire gate
func TestEngineFireCooldown(t *testing.T) {
	e := newTestEngine(1)

	if !e.Fire("blaster", Vec3{Z: 1}) {
		t.Fatal("Expected first shot to fire")
	}
	if e.Fire("blaster", Vec3{Z: 1}) {
		t.Error("Expected second immediate shot gated by cooldown")
	}

	e.Step(0.2) // blaster cooldown is 0.18s
	if !e.Fire("blaster", Vec3{Z: 1}) {
		t.Error("Expected shot after the cooldown elapsed")
	}
}

// TestEngineFireRespectsProjectileCap tests the active projectile limit
func TestEngineFireRespectsProjectileCap(t *testing.T) {
	cfg := DefaultEngineConfig()
	cfg.Seed = 1
	cfg.Limits = ResourceLimits{MaxEnemies: 32, MaxProjectiles: 1}
	e := NewEngine(cfg)

	if !e.Fire("blaster", Vec3{Z: 1}) {
		t.Fatal("Expected first shot to fire")
	}
	e.Step(0.2) // clears the cooldown; the projectile is still in flight
	if e.Fire("blaster", Vec3{Z: 1}) {
		t.Error("Expected shot gated by the projectile cap")
	}
}

// TestEngineFireSpawnsAtMuzzle tests the muzzle offset from the player
func TestEngineFireSpawnsAtMuzzle(t *testing.T) {
	e := newTestEngine(1)

	e.Fire("blaster", Vec3{Z: 1})

	active := e.projectiles.Active()
	if len(active) != 1 {
		t.Fatalf("Expected 1 projectile, got %d", len(active))
	}
	if active[0].Pos.Z != 1.0 {
		t.Errorf("Expected muzzle offset Z=1, got %f", active[0].Pos.Z)
	}
}

// TestEngineProjectileKillsEnemy tests the full fire-to-score path
// through stepped frames
func TestEngineProjectileKillsEnemy(t *testing.T) {
	e := newTestEngine(1)

	target := newTestEnemy("grunt")
	target.ID = 1
	target.Pos = Vec3{Z: 5}
	e.waves.roster = append(e.waves.roster, target)

	kills := 0
	e.OnKill = func(enemyType string, reward int) {
		kills++
		if enemyType != "grunt" {
			t.Errorf("Expected grunt kill, got %s", enemyType)
		}
		if reward != 10 {
			t.Errorf("Expected reward 10, got %d", reward)
		}
	}

	// Three blaster hits kill a 30 HP grunt
	for i := 0; i < 200 && kills == 0; i++ {
		e.Fire("blaster", Vec3{Z: 1})
		e.Step(testDt)
	}

	if kills != 1 {
		t.Fatalf("Expected 1 kill, got %d", kills)
	}
	state := e.GetState()
	if state.TotalKills != 1 {
		t.Errorf("Expected totalKills 1, got %d", state.TotalKills)
	}
	if state.Player.Score != 10 {
		t.Errorf("Expected score 10, got %d", state.Player.Score)
	}
	if state.Player.Kills != 1 {
		t.Errorf("Expected player kills 1, got %d", state.Player.Kills)
	}
}

// TestEngineGameOver tests the fatal-hit transition and post-game gating
func TestEngineGameOver(t *testing.T) {
	e := newTestEngine(1)
	e.player.HP = 5

	overWave, overScore := 0, -1
	e.OnGameOver = func(wave, score int) { overWave, overScore = wave, score }

	e.handleEnemyAttack(1, 18)

	state := e.GetState()
	if !state.GameOver {
		t.Fatal("Expected game over")
	}
	if overWave != 1 || overScore != 0 {
		t.Errorf("Expected game-over callback (1, 0), got (%d, %d)", overWave, overScore)
	}

	if e.Fire("blaster", Vec3{Z: 1}) {
		t.Error("Expected firing gated after game over")
	}

	// Enemies freeze after game over; the roster must not change
	before := e.GetState().EnemyCount
	for i := 0; i < 30; i++ {
		e.Step(testDt)
	}
	if after := e.GetState().EnemyCount; after != before {
		t.Errorf("Expected frozen roster, went from %d to %d", before, after)
	}
}

// TestEngineScoreFrozenAfterGameOver tests that an in-flight projectile
// stops resolving once the run ends, so the final score never moves
func TestEngineScoreFrozenAfterGameOver(t *testing.T) {
	e := newTestEngine(1)
	e.player.HP = 5

	target := newTestEnemy("grunt")
	target.ID = 1
	target.Pos = Vec3{Z: 5}
	e.waves.roster = append(e.waves.roster, target)

	// One cannon hit would kill the grunt if it resolved
	if !e.Fire("cannon", Vec3{Z: 1}) {
		t.Fatal("Expected the shot to fire")
	}
	e.handleEnemyAttack(1, 18)

	for i := 0; i < 60; i++ {
		e.Step(testDt)
	}

	state := e.GetState()
	if state.TotalKills != 0 {
		t.Errorf("Expected no kills after game over, got %d", state.TotalKills)
	}
	if state.Player.Score != 0 {
		t.Errorf("Expected score frozen at 0, got %d", state.Player.Score)
	}
	if target.HP != target.MaxHP {
		t.Errorf("Expected frozen enemy untouched, got HP %d", target.HP)
	}
	if state.Projectiles != 1 {
		t.Errorf("Expected the projectile held in flight, got %d", state.Projectiles)
	}
}

// TestEngineReset tests the restart path back to a clean wave 1
func TestEngineReset(t *testing.T) {
	e := newTestEngine(1)

	for i := 0; i < 300; i++ {
		e.Step(testDt)
	}
	e.Fire("blaster", Vec3{Z: 1})
	e.player.Score = 500
	e.gameOver = true

	e.Reset()

	state := e.GetState()
	if state.GameOver {
		t.Error("Expected game over cleared")
	}
	if state.Wave != 1 {
		t.Errorf("Expected wave 1, got %d", state.Wave)
	}
	if state.EnemyCount != 0 {
		t.Errorf("Expected empty roster, got %d", state.EnemyCount)
	}
	if state.Projectiles != 0 {
		t.Errorf("Expected no projectiles, got %d", state.Projectiles)
	}
	if state.Player.HP != PlayerMaxHP {
		t.Errorf("Expected full health, got %d", state.Player.HP)
	}
	if state.Player.Score != 0 {
		t.Errorf("Expected score reset, got %d", state.Player.Score)
	}
	if state.SpawnGap != DefaultWaveConfig().StartInterval {
		t.Errorf("Expected spawn interval restored, got %f", state.SpawnGap)
	}
}

// TestEngineSnapshot tests that each step publishes a fresh snapshot
func TestEngineSnapshot(t *testing.T) {
	e := newTestEngine(1)

	e.Step(testDt)
	snap := e.GetSnapshot()

	if snap.TickNumber != 1 {
		t.Errorf("Expected snapshot for tick 1, got %d", snap.TickNumber)
	}
	if snap.ArenaRadius != 40.0 {
		t.Errorf("Expected arena radius 40, got %f", snap.ArenaRadius)
	}
	if snap.Player.HP != PlayerMaxHP {
		t.Errorf("Expected player HP %d in snapshot, got %d", PlayerMaxHP, snap.Player.HP)
	}

	first := snap.Sequence
	e.Step(testDt)
	if next := e.GetSnapshot().Sequence; next <= first {
		t.Errorf("Expected sequence to advance past %d, got %d", first, next)
	}
}

// TestEngineInputMovesPlayer tests input flowing through a stepped frame
func TestEngineInputMovesPlayer(t *testing.T) {
	e := newTestEngine(1)

	e.SetInput(1, 0, Vec3{Z: 1})
	e.Step(0.5)

	state := e.GetState()
	if state.Player.Pos.X <= 0 {
		t.Errorf("Expected player moved along +X, got %f", state.Player.Pos.X)
	}
}
