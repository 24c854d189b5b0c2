package events

import (
	"log/slog"
	"sync"

	"github.com/aborovsky/splashsoftware-fullstack-44/internal/model"
)

// DefaultBuffer is the subscription channel capacity used when a
// subscriber does not need anything special.
const DefaultBuffer = 64

// Subscription receives events published on the bus. Close it when the
// subscriber stops listening; the bus also closes it on shutdown.
type Subscription struct {
	// C delivers matching events in publication order
	C <-chan model.Event

	bus    *Bus
	id     int
	ch     chan model.Event
	types  map[model.EventType]bool
	closed bool

	// queued-mode delivery: events collect in pending without bound
	// and a pump goroutine forwards them into ch
	queued  bool
	qmu     sync.Mutex
	pending []model.Event
	wake    chan struct{}
	done    chan struct{}
}

// Close removes the subscription from the bus and closes its channel
func (s *Subscription) Close() {
	s.bus.unsubscribe(s)
}

func (s *Subscription) enqueue(ev model.Event) {
	s.qmu.Lock()
	s.pending = append(s.pending, ev)
	s.qmu.Unlock()
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *Subscription) pump() {
	defer close(s.ch)
	for {
		s.qmu.Lock()
		batch := s.pending
		s.pending = nil
		s.qmu.Unlock()

		for _, ev := range batch {
			select {
			case s.ch <- ev:
			case <-s.done:
				return
			}
		}

		select {
		case <-s.wake:
		case <-s.done:
			return
		}
	}
}

// terminate signals the subscription to shut down. Queued channels are
// closed by their pump; plain channels are closed directly.
func (s *Subscription) terminate() {
	if s.queued {
		close(s.done)
	} else {
		close(s.ch)
	}
}

func (s *Subscription) wants(t model.EventType) bool {
	if len(s.types) == 0 {
		return true
	}
	return s.types[t]
}

// Bus is an in-process publish/subscribe channel for round lifecycle
// events. Plain subscriptions are best-effort: a subscriber whose
// buffer is full misses the event (logged), it is never blocked on.
// Queued subscriptions never miss an event; see SubscribeQueued.
//
// Events for one round are published in lifecycle order by the round
// controller, and Publish fans out synchronously in call order, so a
// single subscription observes created -> started -> finished for any
// given round.
type Bus struct {
	mu     sync.RWMutex
	subs   map[int]*Subscription
	nextID int
	closed bool
	logger *slog.Logger
}

// NewBus creates a new event bus
func NewBus(logger *slog.Logger) *Bus {
	return &Bus{
		subs:   make(map[int]*Subscription),
		logger: logger.With(slog.String("component", "event-bus")),
	}
}

// Subscribe registers a subscriber for the given event types. With no
// types it receives every event. The buffer must absorb bursts; the
// started and finished events of a round arrive back-to-back.
func (b *Bus) Subscribe(buffer int, types ...model.EventType) *Subscription {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}

	typeSet := make(map[model.EventType]bool, len(types))
	for _, t := range types {
		typeSet[t] = true
	}

	ch := make(chan model.Event, buffer)
	sub := &Subscription{
		C:     ch,
		bus:   b,
		ch:    ch,
		types: typeSet,
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		close(ch)
		sub.closed = true
		return sub
	}
	sub.id = b.nextID
	b.nextID++
	b.subs[sub.id] = sub
	return sub
}

// SubscribeQueued registers a subscriber with lossless delivery:
// matching events collect in an unbounded queue and come out of C in
// publication order, however slowly the subscriber reads. For
// in-process reactions that must observe every event; external
// observers stay on the best-effort Subscribe.
func (b *Bus) SubscribeQueued(types ...model.EventType) *Subscription {
	typeSet := make(map[model.EventType]bool, len(types))
	for _, t := range types {
		typeSet[t] = true
	}

	ch := make(chan model.Event)
	sub := &Subscription{
		C:      ch,
		bus:    b,
		ch:     ch,
		types:  typeSet,
		queued: true,
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		close(ch)
		sub.closed = true
		return sub
	}
	sub.id = b.nextID
	b.nextID++
	b.subs[sub.id] = sub
	go sub.pump()
	return sub
}

// Publish delivers the event to every matching subscriber without blocking
func (b *Bus) Publish(ev model.Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return
	}

	for _, sub := range b.subs {
		if !sub.wants(ev.Type) {
			continue
		}
		if sub.queued {
			sub.enqueue(ev)
			continue
		}
		select {
		case sub.ch <- ev:
		default:
			b.logger.Warn("event dropped - subscriber buffer full",
				slog.String("type", string(ev.Type)),
				slog.String("round_id", string(ev.RoundID)),
			)
		}
	}
}

// Close shuts down the bus and closes all subscription channels
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for id, sub := range b.subs {
		sub.terminate()
		sub.closed = true
		delete(b.subs, id)
	}
}

func (b *Bus) unsubscribe(s *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if s.closed {
		return
	}
	delete(b.subs, s.id)
	s.terminate()
	s.closed = true
}

// SubscriberCount returns the number of active subscriptions
func (b *Bus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
