package game

// ImpactResult is the ephemeral outcome of a projectile-vs-enemy test.
// It is produced and consumed within a single tick, never stored.
type ImpactResult struct {
	Target *Enemy // the enemy that was hit
	Damage int    // damage applied by this impact
	Fatal  bool   // whether the hit killed the target
	Reward int    // score granted; non-zero only on a fatal hit
}

// QueryImpact finds the nearest alive enemy whose bounding sphere
// contains the given position and applies damage to it. Returns nil
// when no enemy is hit.
//
// Ties on distance resolve to the lowest enemy ID. IDs are assigned
// monotonically at spawn, so the rule is deterministic across runs with
// the same seed rather than an accident of roster order.
func (w *WaveScheduler) QueryImpact(pos Vec3, damage int) *ImpactResult {
	var best *Enemy
	bestDistSq := 0.0

	for _, e := range w.roster {
		if !e.Alive() {
			continue
		}
		distSq := e.Pos.DistSq(pos)
		if distSq > e.Stats.Radius*e.Stats.Radius {
			continue
		}
		if best == nil || distSq < bestDistSq || (distSq == bestDistSq && e.ID < best.ID) {
			best = e
			bestDistSq = distSq
		}
	}

	if best == nil {
		return nil
	}

	fatal := best.TakeDamage(damage)
	reward := 0
	if fatal {
		reward = best.Stats.Reward
	}

	return &ImpactResult{
		Target: best,
		Damage: damage,
		Fatal:  fatal,
		Reward: reward,
	}
}
