package game

import "math"

// EnemyState is the enemy's lifecycle state. Transitions only move
// forward through the combat loop; a dead enemy never moves, attacks,
// or takes further damage.
type EnemyState int

const (
	EnemySeeking   EnemyState = iota // Moving toward the player
	EnemyAttacking                   // In range, swinging on cooldown
	EnemyDead                        // Waiting out the death grace period
)

// String returns a human-readable state name (used in snapshots).
func (s EnemyState) String() string {
	switch s {
	case EnemySeeking:
		return "seeking"
	case EnemyAttacking:
		return "attacking"
	case EnemyDead:
		return "dead"
	default:
		return "unknown"
	}
}

// DeathGracePeriod is how long a dead enemy stays on the roster before
// removal, reserved for the render layer's death feedback. Accumulated
// from deltaTime, not wall clock.
const DeathGracePeriod = 1.8 // seconds

// EnemyArchetype is the per-type combat stat block.
type EnemyArchetype struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	MaxHP          int     `json:"maxHp"`
	Speed          float64 `json:"speed"`          // units per second
	Damage         int     `json:"damage"`         // per attack
	AttackRange    float64 `json:"attackRange"`    // units
	AttackCooldown float64 `json:"attackCooldown"` // seconds between attacks
	Reward         int     `json:"reward"`         // score granted on kill
	Radius         float64 `json:"radius"`         // bounding sphere for projectile hits
	TurnRate       float64 `json:"-"`              // yaw smoothing gain per second
	VisualKey      string  `json:"-"`              // model key for the render layer
	Color          string  `json:"color"`
}

// Archetypes is the table of all enemy types.
var Archetypes = map[string]EnemyArchetype{
	"grunt": {
		ID:             "grunt",
		Name:           "Grunt",
		MaxHP:          30,
		Speed:          2.2,
		Damage:         5,
		AttackRange:    1.6,
		AttackCooldown: 1.2,
		Reward:         10,
		Radius:         0.9,
		TurnRate:       8.0,
		VisualKey:      "enemy_grunt",
		Color:          "#8bc34a",
	},
	"runner": {
		ID:             "runner",
		Name:           "Runner",
		MaxHP:          20,
		Speed:          4.0,
		Damage:         4,
		AttackRange:    1.4,
		AttackCooldown: 0.9,
		Reward:         15,
		Radius:         0.7,
		TurnRate:       12.0,
		VisualKey:      "enemy_runner",
		Color:          "#ffeb3b",
	},
	"brute": {
		ID:             "brute",
		Name:           "Brute",
		MaxHP:          120,
		Speed:          1.4,
		Damage:         18,
		AttackRange:    2.2,
		AttackCooldown: 2.0,
		Reward:         50,
		Radius:         1.4,
		TurnRate:       5.0,
		VisualKey:      "enemy_brute",
		Color:          "#e91e63",
	},
}

// ArchetypeTiers orders the enemy types weakest to strongest.
// Wave composition indexes into this.
var ArchetypeTiers = []string{"grunt", "runner", "brute"}

// GetArchetype returns the archetype for an enemy-type token.
// Unknown tokens return ok=false; callers treat that as a recoverable
// skip, never a crash.
func GetArchetype(id string) (EnemyArchetype, bool) {
	a, ok := Archetypes[id]
	return a, ok
}

// Enemy is a single pooled combat entity.
type Enemy struct {
	ID    uint64
	Type  string
	Stats EnemyArchetype

	HP    int
	MaxHP int

	Pos Vec3
	Yaw float64 // radians, around Y

	State       EnemyState
	AttackTimer float64 // accumulated toward AttackCooldown
	DeathTimer  float64 // accumulated toward DeathGracePeriod

	// VisualKey is the resolved model key; may be the placeholder if
	// the archetype's asset failed to resolve. Render-layer concern,
	// gameplay stats are unaffected.
	VisualKey string
}

// Alive reports whether the enemy can still act or be damaged.
func (e *Enemy) Alive() bool {
	return e.State != EnemyDead
}

// Update advances the enemy by dt. While seeking it moves toward the
// player and smoothly turns to face it; while attacking it stands still
// and fires onAttack each time the accumulated cooldown elapses. The
// cooldown timer accumulates across state changes, so an enemy that
// re-enters range may attack immediately.
func (e *Enemy) Update(dt float64, playerPos Vec3, onAttack func(attackerID uint64, damage int)) {
	if e.State == EnemyDead {
		e.DeathTimer += dt
		return
	}

	to := playerPos.Sub(e.Pos)
	dist := to.Len()

	// Range transitions first so behavior below matches the new state
	if dist <= e.Stats.AttackRange {
		e.State = EnemyAttacking
	} else {
		e.State = EnemySeeking
	}

	e.faceToward(to, dt)
	e.AttackTimer += dt

	switch e.State {
	case EnemySeeking:
		if dist > 0 {
			step := e.Stats.Speed * dt
			if step > dist {
				step = dist
			}
			e.Pos = e.Pos.Add(to.Scale(step / dist))
		}
	case EnemyAttacking:
		if e.AttackTimer >= e.Stats.AttackCooldown {
			e.AttackTimer = 0
			if onAttack != nil {
				onAttack(e.ID, e.Stats.Damage)
			}
		}
	}
}

// faceToward interpolates yaw toward the target direction instead of
// snapping, so the render layer sees no orientation popping.
func (e *Enemy) faceToward(to Vec3, dt float64) {
	if to.X == 0 && to.Z == 0 {
		return
	}
	target := math.Atan2(to.X, to.Z)
	diff := math.Mod(target-e.Yaw+3*math.Pi, 2*math.Pi) - math.Pi
	gain := e.Stats.TurnRate * dt
	if gain > 1 {
		gain = 1
	}
	e.Yaw += diff * gain
}

// TakeDamage subtracts amount from health, clamping at zero, and
// reports whether this call was fatal. A dead enemy ignores further
// damage and returns false.
func (e *Enemy) TakeDamage(amount int) bool {
	if e.State == EnemyDead {
		return false
	}

	e.HP -= amount
	if e.HP > 0 {
		return false
	}

	e.HP = 0
	e.State = EnemyDead
	e.DeathTimer = 0
	return true
}

// CleanupExpired reports whether the death grace period has elapsed and
// the enemy should leave the roster.
func (e *Enemy) CleanupExpired() bool {
	return e.State == EnemyDead && e.DeathTimer >= DeathGracePeriod
}
