package event

import "testing"

type ping struct{ n int }
type pong struct{ s string }

func TestReadPreservesEmissionOrder(t *testing.T) {
	b := NewBus()
	for i := 0; i < 5; i++ {
		Emit(b, ping{n: i})
	}
	got := Read[ping](b)
	if len(got) != 5 {
		t.Fatalf("len = %d, want 5", len(got))
	}
	for i, ev := range got {
		if ev.n != i {
			t.Errorf("got[%d].n = %d, want %d", i, ev.n, i)
		}
	}
	if Read[pong](b) != nil {
		t.Error("unrelated type has events")
	}
}

func TestClearDropsUnreadEvents(t *testing.T) {
	b := NewBus()
	Emit(b, ping{n: 1})
	b.Clear()
	if n := Count[ping](b); n != 0 {
		t.Fatalf("count after clear = %d, want 0", n)
	}
	Emit(b, ping{n: 2})
	got := Read[ping](b)
	if len(got) != 1 || got[0].n != 2 {
		t.Errorf("got %v, want [{2}]", got)
	}
}

func TestDispatchAllCallsObserversInOrder(t *testing.T) {
	b := NewBus()
	var seen []string
	Subscribe(b, func(p pong) { seen = append(seen, "pong:"+p.s) })
	Subscribe(b, func(p ping) { seen = append(seen, "ping") })

	Emit(b, ping{n: 1})
	Emit(b, pong{s: "a"})
	Emit(b, pong{s: "b"})
	b.DispatchAll()

	want := []string{"ping", "pong:a", "pong:b"}
	if len(seen) != len(want) {
		t.Fatalf("seen %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("seen[%d] = %q, want %q", i, seen[i], want[i])
		}
	}
}

func TestObserverEmitsCarryToNextTick(t *testing.T) {
	b := NewBus()
	Subscribe(b, func(p ping) {
		if p.n < 2 {
			Emit(b, ping{n: p.n + 1})
		}
	})

	Emit(b, ping{n: 0})
	b.DispatchAll()
	if n := Count[ping](b); n != 1 {
		t.Fatalf("observer event joined the tick being dispatched: count = %d", n)
	}
	b.Clear()

	got := Read[ping](b)
	if len(got) != 1 || got[0].n != 1 {
		t.Fatalf("after clear got %v, want [{1}]", got)
	}
	b.DispatchAll()
	b.Clear()
	got = Read[ping](b)
	if len(got) != 1 || got[0].n != 2 {
		t.Errorf("second tick got %v, want [{2}]", got)
	}
}
