package game

import (
	"math"
	"testing"
)

func newTestEnemy(archetype string) *Enemy {
	stats := Archetypes[archetype]
	return &Enemy{
		ID:    1,
		Type:  stats.ID,
		Stats: stats,
		HP:    stats.MaxHP,
		MaxHP: stats.MaxHP,
	}
}

// TestEnemySeeksPlayer tests that an out-of-range enemy closes distance
func TestEnemySeeksPlayer(t *testing.T) {
	e := newTestEnemy("grunt")
	e.Pos = Vec3{Z: 10}
	player := Vec3{}

	before := e.Pos.Dist(player)
	e.Update(0.5, player, nil)
	after := e.Pos.Dist(player)

	if e.State != EnemySeeking {
		t.Errorf("Expected seeking state, got %s", e.State)
	}
	expected := before - e.Stats.Speed*0.5
	if math.Abs(after-expected) > 1e-9 {
		t.Errorf("Expected distance %f after update, got %f", expected, after)
	}
}

// TestEnemyEntersAttackingInRange tests the range transition
func TestEnemyEntersAttackingInRange(t *testing.T) {
	e := newTestEnemy("grunt")
	e.Pos = Vec3{Z: 1.0} // within 1.6 attack range

	e.Update(0.1, Vec3{}, nil)

	if e.State != EnemyAttacking {
		t.Errorf("Expected attacking state, got %s", e.State)
	}
}

// TestEnemyStopsWhileAttacking tests that an attacking enemy holds position
func TestEnemyStopsWhileAttacking(t *testing.T) {
	e := newTestEnemy("grunt")
	e.Pos = Vec3{Z: 1.0}

	e.Update(0.1, Vec3{}, nil)

	if e.Pos.Z != 1.0 {
		t.Errorf("Expected attacking enemy to hold position, moved to Z=%f", e.Pos.Z)
	}
}

// TestEnemyAttackCooldown tests that attacks fire when the accumulated
// timer crosses the cooldown, then reset
func TestEnemyAttackCooldown(t *testing.T) {
	e := newTestEnemy("grunt") // cooldown 1.2s, damage 5
	e.Pos = Vec3{Z: 1.0}

	attacks := 0
	onAttack := func(attackerID uint64, damage int) {
		attacks++
		if attackerID != e.ID {
			t.Errorf("Expected attacker ID %d, got %d", e.ID, attackerID)
		}
		if damage != 5 {
			t.Errorf("Expected attack damage 5, got %d", damage)
		}
	}

	// 0.6 + 0.6 = 1.2 crosses the cooldown on the second tick
	e.Update(0.6, Vec3{}, onAttack)
	if attacks != 0 {
		t.Fatalf("Expected no attack before cooldown, got %d", attacks)
	}
	e.Update(0.6, Vec3{}, onAttack)
	if attacks != 1 {
		t.Fatalf("Expected first attack at cooldown, got %d", attacks)
	}

	// Timer reset: the next attack needs a full cooldown again
	e.Update(0.6, Vec3{}, onAttack)
	if attacks != 1 {
		t.Errorf("Expected timer reset after attack, got %d attacks", attacks)
	}
}

// TestEnemyAttackTimerSpansStates tests that the cooldown accumulates
// while seeking, so re-entering range can attack immediately
func TestEnemyAttackTimerSpansStates(t *testing.T) {
	e := newTestEnemy("grunt")
	e.Pos = Vec3{Z: 10}

	// Seek long enough to bank a full cooldown
	e.Update(1.5, Vec3{}, nil)

	attacks := 0
	e.Pos = Vec3{Z: 1.0}
	e.Update(0.01, Vec3{}, func(uint64, int) { attacks++ })

	if attacks != 1 {
		t.Errorf("Expected immediate attack from banked timer, got %d", attacks)
	}
}

// TestEnemyTakeDamage tests non-fatal damage application
func TestEnemyTakeDamage(t *testing.T) {
	e := newTestEnemy("grunt")

	fatal := e.TakeDamage(10)

	if fatal {
		t.Error("Expected non-fatal hit")
	}
	if e.HP != 20 {
		t.Errorf("Expected HP 20, got %d", e.HP)
	}
	if e.State == EnemyDead {
		t.Error("Enemy should not be dead at 20 HP")
	}
}

// TestEnemyTakeDamageFatal tests the kill transition and zero clamp
func TestEnemyTakeDamageFatal(t *testing.T) {
	e := newTestEnemy("grunt")

	fatal := e.TakeDamage(100)

	if !fatal {
		t.Error("Expected fatal hit")
	}
	if e.HP != 0 {
		t.Errorf("Expected HP clamped at 0, got %d", e.HP)
	}
	if e.State != EnemyDead {
		t.Errorf("Expected dead state, got %s", e.State)
	}
	if e.Alive() {
		t.Error("Dead enemy reported alive")
	}
}

// TestEnemyDeadIgnoresDamage tests that further hits on a corpse are no-ops
func TestEnemyDeadIgnoresDamage(t *testing.T) {
	e := newTestEnemy("grunt")
	e.TakeDamage(100)

	if e.TakeDamage(10) {
		t.Error("Hit on a dead enemy reported fatal")
	}
	if e.HP != 0 {
		t.Errorf("Expected HP to stay 0, got %d", e.HP)
	}
}

// TestEnemyDeadDoesNotActOrMove tests that a corpse is inert during grace
func TestEnemyDeadDoesNotActOrMove(t *testing.T) {
	e := newTestEnemy("grunt")
	e.Pos = Vec3{Z: 1.0}
	e.TakeDamage(100)

	e.Update(0.5, Vec3{}, func(uint64, int) {
		t.Error("Dead enemy attacked")
	})

	if e.Pos.Z != 1.0 {
		t.Errorf("Dead enemy moved to Z=%f", e.Pos.Z)
	}
}

// TestEnemyDeathGracePeriod tests cleanup timing from accumulated deltas
func TestEnemyDeathGracePeriod(t *testing.T) {
	e := newTestEnemy("grunt")
	e.TakeDamage(100)

	e.Update(1.7, Vec3{}, nil)
	if e.CleanupExpired() {
		t.Error("Cleanup fired before the grace period elapsed")
	}

	e.Update(0.2, Vec3{}, nil)
	if !e.CleanupExpired() {
		t.Error("Cleanup did not fire after the grace period")
	}
}

// TestEnemyFacesPlayer tests smooth yaw convergence toward the player
func TestEnemyFacesPlayer(t *testing.T) {
	e := newTestEnemy("grunt")
	e.Pos = Vec3{Z: -10}
	e.Yaw = math.Pi / 2

	// Target direction is +Z (yaw 0); many small steps should converge
	for i := 0; i < 100; i++ {
		e.Update(0.05, Vec3{}, nil)
	}

	if math.Abs(e.Yaw) > 0.05 {
		t.Errorf("Expected yaw near 0, got %f", e.Yaw)
	}
}

// TestGetArchetypeUnknown tests the recoverable-miss contract
func TestGetArchetypeUnknown(t *testing.T) {
	if _, ok := GetArchetype("dragon"); ok {
		t.Error("Expected unknown archetype to report ok=false")
	}
	if _, ok := GetArchetype("grunt"); !ok {
		t.Error("Expected grunt archetype to exist")
	}
}
