package game

// Projectile is a pooled moving attack entity. It travels along a fixed
// direction over multiple ticks and is returned to the pool on expiry,
// max range, or a confirmed hit.
type Projectile struct {
	Pos Vec3
	Dir Vec3 // unit vector

	Speed  float64 // units per second
	Damage int

	MaxDistance       float64
	DistanceTravelled float64
	TTL               float64 // seconds remaining

	Color  string // render-layer color tag
	Active bool
}

// DefaultProjectileTTL is the lifetime safety net for projectiles whose
// range check alone would keep them alive too long (e.g. speed tuned
// down at runtime). Matches the range of the slowest weapon.
const DefaultProjectileTTL = 3.0 // seconds

// ImpactQuery resolves a projectile position and damage value against
// the enemy roster. It returns nil (or a result with a nil Target) when
// nothing is hit. Called at most once per projectile per tick.
type ImpactQuery func(pos Vec3, damage int) *ImpactResult

// OnHit is invoked for each confirmed projectile impact, at most once
// per projectile per tick (the projectile despawns immediately after).
type OnHit func(impact ImpactResult)

// ProjectileSystem owns the active projectile list and its pool
// exclusively. All operations are total over valid pool state; nothing
// here can fail.
type ProjectileSystem struct {
	active []*Projectile
	pool   *Pool[Projectile]
}

// NewProjectileSystem creates an empty projectile system.
func NewProjectileSystem() *ProjectileSystem {
	return &ProjectileSystem{
		active: make([]*Projectile, 0, 32),
		pool: NewPool(
			func() *Projectile { return &Projectile{} },
			func(p *Projectile) {
				// Motion fields go back to inactive defaults; position
				// and color stay stale until the next Spawn overwrites
				// them, mirroring how the render handle is left alone.
				p.Dir = Vec3{}
				p.Speed = 0
				p.Damage = 0
				p.MaxDistance = 0
				p.DistanceTravelled = 0
				p.TTL = 0
				p.Active = false
			},
		),
	}
}

// Spawn acquires a projectile from the pool, initializes its motion
// fields and appends it to the active list. The direction is normalized
// defensively even if the caller passes a unit vector; speed and damage
// are the caller's responsibility.
func (s *ProjectileSystem) Spawn(origin, direction Vec3, speed float64, damage int, maxDistance float64, colorTag string) *Projectile {
	p := s.pool.Acquire()
	p.Pos = origin
	p.Dir = direction.Normalized()
	p.Speed = speed
	p.Damage = damage
	p.MaxDistance = maxDistance
	p.DistanceTravelled = 0
	p.TTL = DefaultProjectileTTL
	p.Color = colorTag
	p.Active = true

	s.active = append(s.active, p)
	return p
}

// Tick advances every active projectile by dt, in reverse index order so
// in-place removal is safe. Each projectile despawns for at most one
// reason per tick, checked in priority order: lifetime/range expiry
// first, impact second. It never both expires and hits in the same tick.
func (s *ProjectileSystem) Tick(dt float64, query ImpactQuery, onHit OnHit) {
	for i := len(s.active) - 1; i >= 0; i-- {
		p := s.active[i]

		step := p.Speed * dt
		p.Pos = p.Pos.Add(p.Dir.Scale(step))
		p.DistanceTravelled += step
		p.TTL -= dt

		if p.DistanceTravelled >= p.MaxDistance || p.TTL <= 0 {
			s.despawn(i)
			continue
		}

		if query == nil {
			continue
		}
		if impact := query(p.Pos, p.Damage); impact != nil && impact.Target != nil {
			if onHit != nil {
				onHit(*impact)
			}
			s.despawn(i)
		}
	}
}

// ResetAll returns every active projectile to the pool. Used on game
// restart; there is no partial-reset state.
func (s *ProjectileSystem) ResetAll() {
	for i := len(s.active) - 1; i >= 0; i-- {
		s.despawn(i)
	}
}

// despawn removes the projectile at index i from the active list
// (order-preserving, so iteration order stays deterministic) and
// releases it to the pool.
func (s *ProjectileSystem) despawn(i int) {
	p := s.active[i]
	copy(s.active[i:], s.active[i+1:])
	s.active = s.active[:len(s.active)-1]
	s.pool.Release(p)
}

// ActiveCount returns the number of in-flight projectiles.
func (s *ProjectileSystem) ActiveCount() int {
	return len(s.active)
}

// Active returns the in-flight projectiles for snapshotting.
// The slice is owned by the system; callers must not retain it.
func (s *ProjectileSystem) Active() []*Projectile {
	return s.active
}

// Allocated returns the pool's high-water mark of constructed
// projectiles.
func (s *ProjectileSystem) Allocated() int {
	return s.pool.Allocated()
}
