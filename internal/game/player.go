package game

// Player is the single player-controlled entity. Movement and aim come
// from the excluded input layer through SetInput; the engine applies
// them once per tick before enemies and projectiles resolve.
type Player struct {
	Pos Vec3    `json:"pos"`
	Yaw float64 `json:"yaw"`

	HP    int `json:"hp"`
	MaxHP int `json:"maxHp"`

	Score int `json:"score"`
	Kills int `json:"kills"`

	Weapon       string  `json:"weapon"`
	FireCooldown float64 `json:"-"`

	Speed float64 `json:"-"`

	// Normalized move input on the arena plane, set by the input layer
	MoveX float64 `json:"-"`
	MoveZ float64 `json:"-"`
	Aim   Vec3    `json:"-"`

	IsDead bool `json:"isDead"`
}

// PlayerMaxHP is the starting and maximum player health.
const PlayerMaxHP = 100

// NewPlayer creates a player at the arena center with full health.
func NewPlayer() *Player {
	return &Player{
		HP:     PlayerMaxHP,
		MaxHP:  PlayerMaxHP,
		Weapon: "blaster",
		Speed:  6.0,
		Aim:    Vec3{0, 0, 1},
	}
}

// SetInput stores the latest move/aim input. Values outside [-1, 1] are
// clamped; the aim vector is normalized at fire time.
func (p *Player) SetInput(moveX, moveZ float64, aim Vec3) {
	p.MoveX = clamp(moveX, -1, 1)
	p.MoveZ = clamp(moveZ, -1, 1)
	if aim.LenSq() > 0 {
		p.Aim = aim.Normalized()
	}
}

// Update applies movement input and advances the fire cooldown. The
// player is clamped to the circular arena.
func (p *Player) Update(dt float64, arenaRadius float64) {
	if p.FireCooldown > 0 {
		p.FireCooldown -= dt
	}
	if p.IsDead {
		return
	}

	move := Vec3{X: p.MoveX, Z: p.MoveZ}
	if move.LenSq() > 1 {
		move = move.Normalized()
	}
	p.Pos = p.Pos.Add(move.Scale(p.Speed * dt))

	if dist := p.Pos.Len(); dist > arenaRadius {
		p.Pos = p.Pos.Scale(arenaRadius / dist)
	}
}

// TakeDamage applies enemy damage, clamping health at zero, and reports
// whether this hit was fatal. A dead player ignores further damage.
func (p *Player) TakeDamage(amount int) bool {
	if p.IsDead {
		return false
	}

	p.HP -= amount
	if p.HP > 0 {
		return false
	}

	p.HP = 0
	p.IsDead = true
	return true
}

// Respawn restores the player to its initial state at the arena center.
func (p *Player) Respawn() {
	p.Pos = Vec3{}
	p.Yaw = 0
	p.HP = p.MaxHP
	p.Score = 0
	p.Kills = 0
	p.FireCooldown = 0
	p.MoveX = 0
	p.MoveZ = 0
	p.Aim = Vec3{0, 0, 1}
	p.IsDead = false
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
