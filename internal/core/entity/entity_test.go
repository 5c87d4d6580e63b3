package entity

import "testing"

func TestPoolNeverHandsOutZero(t *testing.T) {
	p := NewPool()
	id := p.Create()
	if id.IsZero() {
		t.Fatal("first id is zero")
	}
	if !p.Alive(id) {
		t.Fatal("fresh id not alive")
	}
	if p.Alive(0) {
		t.Error("zero id reported alive")
	}
}

func TestPoolGenerationInvalidatesStaleIDs(t *testing.T) {
	p := NewPool()
	a := p.Create()
	p.Destroy(a)
	if p.Alive(a) {
		t.Fatal("destroyed id still alive")
	}
	b := p.Create()
	if b.Index() != a.Index() {
		t.Fatalf("free list not reused: a=%d b=%d", a.Index(), b.Index())
	}
	if b == a {
		t.Fatal("reused slot kept the old generation")
	}
	if p.Alive(a) {
		t.Error("stale id aliases the new entity")
	}
	// Destroying the stale id again must not retire the new one.
	p.Destroy(a)
	if !p.Alive(b) {
		t.Error("stale destroy killed the live entity")
	}
}

func TestWorldDeferredDestroy(t *testing.T) {
	w := NewWorld()
	coins := NewArena[int]()
	w.Track(coins)

	id := w.Create()
	v := 7
	coins.Insert(id, &v)

	w.MarkForDestruction(id)
	if !coins.Has(id) || !w.Alive(id) {
		t.Fatal("entity destroyed before flush")
	}
	if len(w.doomed) != 1 {
		t.Fatalf("queued = %d, want 1", len(w.doomed))
	}
	w.FlushDestroyQueue()
	if coins.Has(id) || w.Alive(id) {
		t.Fatal("entity survived flush")
	}
	if len(w.doomed) != 0 {
		t.Error("queue not cleared")
	}
}
