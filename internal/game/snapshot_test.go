package game

import "testing"

// TestSnapshotPoolPublishCycle tests that readers only see published
// buffers and the sequence advances monotonically
func TestSnapshotPoolPublishCycle(t *testing.T) {
	pool := NewSnapshotPool(DefaultLimits())

	w := pool.AcquireWrite()
	w.TickNumber = 1
	w.Player.Score = 100
	pool.PublishWrite()

	r := pool.AcquireRead()
	if r.TickNumber != 1 {
		t.Errorf("Expected tick 1, got %d", r.TickNumber)
	}
	if r.Player.Score != 100 {
		t.Errorf("Expected score 100, got %d", r.Player.Score)
	}

	first := r.Sequence
	w = pool.AcquireWrite()
	w.TickNumber = 2
	pool.PublishWrite()

	r = pool.AcquireRead()
	if r.TickNumber != 2 {
		t.Errorf("Expected tick 2, got %d", r.TickNumber)
	}
	if r.Sequence <= first {
		t.Errorf("Expected sequence to advance past %d, got %d", first, r.Sequence)
	}
}

// TestSnapshotPoolUnpublishedWriteInvisible tests that an in-progress
// write never leaks to readers
func TestSnapshotPoolUnpublishedWriteInvisible(t *testing.T) {
	pool := NewSnapshotPool(DefaultLimits())

	w := pool.AcquireWrite()
	w.TickNumber = 1
	pool.PublishWrite()

	// Start the next write but do not publish
	w = pool.AcquireWrite()
	w.TickNumber = 99

	if r := pool.AcquireRead(); r.TickNumber != 1 {
		t.Errorf("Expected published tick 1, got %d", r.TickNumber)
	}
}

// TestSnapshotPoolReusesCapacity tests that acquired buffers come back
// empty but keep their allocation
func TestSnapshotPoolReusesCapacity(t *testing.T) {
	limits := ResourceLimits{MaxEnemies: 4, MaxProjectiles: 4}
	pool := NewSnapshotPool(limits)

	w := pool.AcquireWrite()
	w.Enemies = append(w.Enemies, EnemySnapshot{ID: 1})
	pool.PublishWrite()

	// Cycle through the triple buffer back to the same slot
	for i := 0; i < 3; i++ {
		w = pool.AcquireWrite()
		if len(w.Enemies) != 0 {
			t.Errorf("Expected reset enemy slice, got %d entries", len(w.Enemies))
		}
		if cap(w.Enemies) != limits.MaxEnemies {
			t.Errorf("Expected preserved capacity %d, got %d", limits.MaxEnemies, cap(w.Enemies))
		}
		pool.PublishWrite()
	}
}
