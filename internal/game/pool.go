package game

// Pool is a free-list object store shared by the projectile and enemy
// systems. Acquire returns a recycled object when one is available and
// constructs a new one otherwise, so it can never fail. Release resets
// the object's mutable state and parks it on the free list. Objects are
// never destroyed within a session; under heavy spawn/despawn churn the
// pool stops allocating once it reaches the high-water mark of
// simultaneously live objects.
//
// NOTE: sync.Pool is deliberately not used here. It may evict objects
// during GC, which would make the allocation high-water mark (and the
// replay determinism that depends on stable object identity) untestable.
type Pool[T any] struct {
	free      []*T
	construct func() *T
	reset     func(*T)
	allocated int
}

// NewPool creates a pool. construct builds a fresh object; reset returns
// a released object to its inactive defaults before it is parked.
func NewPool[T any](construct func() *T, reset func(*T)) *Pool[T] {
	return &Pool[T]{
		free:      make([]*T, 0, 16),
		construct: construct,
		reset:     reset,
	}
}

// Acquire returns a recycled object if the free list is non-empty,
// otherwise constructs a new one. Never fails.
func (p *Pool[T]) Acquire() *T {
	if n := len(p.free); n > 0 {
		obj := p.free[n-1]
		p.free = p.free[:n-1]
		return obj
	}
	p.allocated++
	return p.construct()
}

// Release resets obj and appends it to the free list. The caller must
// have removed obj from its active collection first; an object is never
// live in both places at once.
func (p *Pool[T]) Release(obj *T) {
	if p.reset != nil {
		p.reset(obj)
	}
	p.free = append(p.free, obj)
}

// FreeCount returns the number of parked objects.
func (p *Pool[T]) FreeCount() int {
	return len(p.free)
}

// Allocated returns the total number of objects ever constructed.
// This is the pool's high-water mark of simultaneously live objects.
func (p *Pool[T]) Allocated() int {
	return p.allocated
}
