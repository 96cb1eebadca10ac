package physics

// BodyHandle refers to a body in a BodySet. A handle goes stale once its body is removed.
type BodyHandle struct {
	Index      uint32
	Generation uint32
}

// ColliderHandle refers to a collider in a ColliderSet.
type ColliderHandle struct {
	Index      uint32
	Generation uint32
}

type slot[T any] struct {
	value      *T
	generation uint32
}

// arena stores values in reusable slots. Generations start at 1 so the zero handle never resolves.
type arena[T any] struct {
	slots []slot[T]
	free  []uint32
	len   int
}

func (a *arena[T]) insert(v *T) (uint32, uint32) {
	a.len++
	if n := len(a.free); n > 0 {
		idx := a.free[n-1]
		a.free = a.free[:n-1]
		s := &a.slots[idx]
		s.generation++
		s.value = v
		return idx, s.generation
	}
	a.slots = append(a.slots, slot[T]{value: v, generation: 1})
	return uint32(len(a.slots) - 1), 1
}

func (a *arena[T]) get(idx, gen uint32) (*T, bool) {
	if int(idx) >= len(a.slots) {
		return nil, false
	}
	s := a.slots[idx]
	if s.value == nil || s.generation != gen {
		return nil, false
	}
	return s.value, true
}

func (a *arena[T]) remove(idx, gen uint32) (*T, bool) {
	v, ok := a.get(idx, gen)
	if !ok {
		return nil, false
	}
	a.slots[idx].value = nil
	a.free = append(a.free, idx)
	a.len--
	return v, true
}

func (a *arena[T]) each(fn func(idx, gen uint32, v *T)) {
	for i, s := range a.slots {
		if s.value != nil {
			fn(uint32(i), s.generation, s.value)
		}
	}
}

// BodySet holds the rigid bodies of a world.
type BodySet struct {
	a arena[Body]
}

// Insert adds b and returns its handle.
func (s *BodySet) Insert(b *Body) BodyHandle {
	idx, gen := s.a.insert(b)
	return BodyHandle{Index: idx, Generation: gen}
}

// Get returns the body for h, or false if h is stale or unknown.
func (s *BodySet) Get(h BodyHandle) (*Body, bool) {
	return s.a.get(h.Index, h.Generation)
}

func (s *BodySet) remove(h BodyHandle) (*Body, bool) {
	return s.a.remove(h.Index, h.Generation)
}

// Len returns the number of live bodies.
func (s *BodySet) Len() int {
	return s.a.len
}

// Each calls fn for every live body in slot order.
func (s *BodySet) Each(fn func(h BodyHandle, b *Body)) {
	s.a.each(func(idx, gen uint32, b *Body) {
		fn(BodyHandle{Index: idx, Generation: gen}, b)
	})
}

// ColliderSet holds the colliders of a world.
type ColliderSet struct {
	a arena[Collider]
}

func (s *ColliderSet) insert(c *Collider) ColliderHandle {
	idx, gen := s.a.insert(c)
	return ColliderHandle{Index: idx, Generation: gen}
}

// Get returns the collider for h, or false if h is stale or unknown.
func (s *ColliderSet) Get(h ColliderHandle) (*Collider, bool) {
	return s.a.get(h.Index, h.Generation)
}

func (s *ColliderSet) remove(h ColliderHandle) (*Collider, bool) {
	return s.a.remove(h.Index, h.Generation)
}

// Len returns the number of live colliders.
func (s *ColliderSet) Len() int {
	return s.a.len
}

// Each calls fn for every live collider in slot order.
func (s *ColliderSet) Each(fn func(h ColliderHandle, c *Collider)) {
	s.a.each(func(idx, gen uint32, c *Collider) {
		fn(ColliderHandle{Index: idx, Generation: gen}, c)
	})
}
