package entity

// Removable is implemented by every arena so World can bulk-remove
// an entity's record on destroy.
type Removable interface {
	Remove(id ID)
}

// Arena is a typed record store keyed by ID. Unlike a plain map it keeps
// insertion order, so iteration is deterministic: machines fire in the
// order they were placed and coins are scanned in the order they spawned.
type Arena[T any] struct {
	data      map[ID]*T
	order     []ID
	holes     int
	iterating int
}

func NewArena[T any]() *Arena[T] {
	return &Arena[T]{
		data:  make(map[ID]*T, 256),
		order: make([]ID, 0, 256),
	}
}

// Insert stores rec under id. Re-inserting an existing id replaces the
// record without changing its position.
func (a *Arena[T]) Insert(id ID, rec *T) {
	if _, ok := a.data[id]; !ok {
		a.order = append(a.order, id)
	}
	a.data[id] = rec
}

func (a *Arena[T]) Get(id ID) (*T, bool) {
	rec, ok := a.data[id]
	return rec, ok
}

func (a *Arena[T]) Has(id ID) bool {
	_, ok := a.data[id]
	return ok
}

func (a *Arena[T]) Remove(id ID) {
	if _, ok := a.data[id]; !ok {
		return
	}
	delete(a.data, id)
	a.holes++
	a.maybeCompact()
}

func (a *Arena[T]) Len() int {
	return len(a.data)
}

// Each calls fn for every live record in insertion order. Records removed
// during iteration are skipped; records inserted during iteration are not
// visited.
func (a *Arena[T]) Each(fn func(ID, *T)) {
	a.iterating++
	n := len(a.order)
	for i := 0; i < n; i++ {
		id := a.order[i]
		if rec, ok := a.data[id]; ok {
			fn(id, rec)
		}
	}
	a.iterating--
	a.maybeCompact()
}

// maybeCompact drops tombstones once the order slice is mostly dead ids.
// Never runs while Each is walking the slice.
func (a *Arena[T]) maybeCompact() {
	if a.iterating > 0 || a.holes <= 32 || a.holes*2 <= len(a.order) {
		return
	}
	a.compact()
}

func (a *Arena[T]) compact() {
	live := a.order[:0]
	for _, id := range a.order {
		if _, ok := a.data[id]; ok {
			live = append(live, id)
		}
	}
	for i := len(live); i < len(a.order); i++ {
		a.order[i] = 0
	}
	a.order = live
	a.holes = 0
}
