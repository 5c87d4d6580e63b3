package entity

// World hands out ids, knows every arena holding records for them, and
// defers destruction to the end of the tick so ids seen earlier in the
// tick stay valid until every phase has run.
type World struct {
	pool   *Pool
	arenas []Removable
	doomed []ID
}

func NewWorld() *World {
	return &World{
		pool:   NewPool(),
		doomed: make([]ID, 0, 64),
	}
}

// Track registers an arena whose records die with their entity.
func (w *World) Track(a Removable) {
	w.arenas = append(w.arenas, a)
}

func (w *World) Create() ID {
	return w.pool.Create()
}

func (w *World) Alive(id ID) bool {
	return w.pool.Alive(id)
}

// MarkForDestruction queues an entity for end-of-tick cleanup.
func (w *World) MarkForDestruction(id ID) {
	w.doomed = append(w.doomed, id)
}

// DestroyNow drops an entity's records and retires its id immediately.
// Demolition uses it so the tile reads as free to the next request in the
// same tick.
func (w *World) DestroyNow(id ID) {
	for _, a := range w.arenas {
		a.Remove(id)
	}
	w.pool.Destroy(id)
}

// FlushDestroyQueue destroys every queued entity.
func (w *World) FlushDestroyQueue() {
	for _, id := range w.doomed {
		w.DestroyNow(id)
	}
	w.doomed = w.doomed[:0]
}
