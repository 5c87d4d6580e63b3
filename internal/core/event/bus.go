package event

import (
	"reflect"
)

// Bus holds one FIFO queue per event type. Events are emitted and read within
// the same tick: producers run in earlier phases than consumers, and Clear at
// tick end drops anything left unread. Events are transient signals, not a
// durable log. Events emitted by observers during DispatchAll belong to the
// next tick: Clear keeps them.
//
// Accessed only from the tick driver, no locks.
type Bus struct {
	queues   map[reflect.Type][]any
	order    []reflect.Type // first-emission order, for deterministic DispatchAll
	handlers map[reflect.Type][]any

	dispatching bool
	carried     []carriedEvent // emitted during DispatchAll, requeued by Clear
}

type carriedEvent struct {
	t  reflect.Type
	ev any
}

func NewBus() *Bus {
	return &Bus{
		queues:   make(map[reflect.Type][]any),
		handlers: make(map[reflect.Type][]any),
	}
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Emit appends an event to the queue for T.
func Emit[T any](b *Bus, event T) {
	t := typeOf[T]()
	if b.dispatching {
		b.carried = append(b.carried, carriedEvent{t, event})
		return
	}
	b.push(t, event)
}

func (b *Bus) push(t reflect.Type, event any) {
	q, seen := b.queues[t]
	if !seen {
		b.order = append(b.order, t)
	}
	b.queues[t] = append(q, event)
}

// Read returns the events of type T emitted so far this tick, in emission
// order. The slice is only valid until Clear; callers must not retain it.
func Read[T any](b *Bus) []T {
	q := b.queues[typeOf[T]()]
	if len(q) == 0 {
		return nil
	}
	out := make([]T, len(q))
	for i, ev := range q {
		out[i] = ev.(T)
	}
	return out
}

// Count returns how many events of type T are queued.
func Count[T any](b *Bus) int {
	return len(b.queues[typeOf[T]()])
}

// Subscribe registers an observer for events of type T. Observers run from
// DispatchAll at tick end, after every simulation phase has consumed the queue.
func Subscribe[T any](b *Bus, fn func(T)) {
	t := typeOf[T]()
	b.handlers[t] = append(b.handlers[t], fn)
}

// DispatchAll delivers this tick's events to their observers. Within a type
// delivery is FIFO; types are visited in the order they were first emitted.
func (b *Bus) DispatchAll() {
	b.dispatching = true
	defer func() { b.dispatching = false }()
	for _, t := range b.order {
		handlers := b.handlers[t]
		if len(handlers) == 0 {
			continue
		}
		for _, ev := range b.queues[t] {
			for _, h := range handlers {
				callHandler(h, ev)
			}
		}
	}
}

// Clear empties every queue, then requeues what observers emitted during
// DispatchAll. Called once per tick by CleanupSystem.
func (b *Bus) Clear() {
	for k := range b.queues {
		b.queues[k] = b.queues[k][:0]
	}
	for _, c := range b.carried {
		b.push(c.t, c.ev)
	}
	b.carried = b.carried[:0]
}

func callHandler(handler any, event any) {
	reflect.ValueOf(handler).Call([]reflect.Value{reflect.ValueOf(event)})
}
