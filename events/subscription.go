package events

import (
	"context"
	"sort"
	"sync"
)

// Event lists the topics that changed since the subscriber last looked.
// An empty Event is delivered by Watch when callNow is set.
type Event struct {
	Topics []string
}

// Has reports whether topic is part of the event
func (e Event) Has(topic string) bool {
	for _, t := range e.Topics {
		if t == topic {
			return true
		}
	}
	return false
}

// ISubscription defines the contract for subscription objects
type ISubscription interface {
	// Chan signals that at least one event is pending. Signals coalesce.
	Chan() <-chan struct{}
	// Take returns and clears the topics accumulated since the last Take
	Take() Event
	// Cancel unsubscribes and closes the channel. Safe for repeated calls
	Cancel()
	// Watch starts a goroutine that calls cb with the pending topics on each signal.
	// If callNow is true, cb is called immediately with an empty Event.
	// When parentCtx finishes, the subscription is automatically cancelled
	Watch(parentCtx context.Context, cb func(Event), callNow bool) ISubscription
}

// ISubscriptionManager defines the contract for managing subscriptions
type ISubscriptionManager interface {
	Subscribe() ISubscription
	Unsubscribe(ch chan struct{})
	// Emit records topics for every subscriber and signals them without blocking
	Emit(ctx context.Context, topics ...string)
}

type Subscription struct {
	ch     chan struct{}
	mgr    *SubscriptionManager
	cancel context.CancelFunc
	once   sync.Once

	mu      sync.Mutex
	pending map[string]struct{}
}

// Chan returns a read-only channel for self-handling events.
func (s *Subscription) Chan() <-chan struct{} { return s.ch }

// Take returns the accumulated topics in sorted order and resets them
func (s *Subscription) Take() Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	topics := make([]string, 0, len(s.pending))
	for t := range s.pending {
		topics = append(topics, t)
	}
	sort.Strings(topics)
	s.pending = make(map[string]struct{})
	return Event{Topics: topics}
}

func (s *Subscription) add(topics []string) {
	s.mu.Lock()
	for _, t := range topics {
		s.pending[t] = struct{}{}
	}
	s.mu.Unlock()
}

// Cancel unsubscribes and closes the channel. Safe for repeated calls.
func (s *Subscription) Cancel() {
	s.once.Do(func() {
		if s.cancel != nil {
			s.cancel()
		}
		s.mgr.Unsubscribe(s.ch)
	})
}

// Watch starts a goroutine that calls cb on each event.
func (s *Subscription) Watch(parentCtx context.Context, cb func(Event), callNow bool) ISubscription {
	ctx, cancel := context.WithCancel(parentCtx)
	s.cancel = cancel

	if callNow {
		cb(Event{})
	}

	go func(ctx context.Context) {
		defer s.Cancel()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-s.ch:
				if !ok {
					return
				}
				cb(s.Take())
			}
		}
	}(ctx)

	return s
}

type SubscriptionManager struct {
	mu          sync.RWMutex
	subscribers map[chan struct{}]*Subscription
}

func NewSubscriptionManager() *SubscriptionManager {
	return &SubscriptionManager{
		subscribers: make(map[chan struct{}]*Subscription),
	}
}

func (m *SubscriptionManager) Subscribe() ISubscription {
	sub := &Subscription{
		ch:      make(chan struct{}, 1),
		mgr:     m,
		pending: make(map[string]struct{}),
	}

	m.mu.Lock()
	m.subscribers[sub.ch] = sub
	m.mu.Unlock()

	return sub
}

func (m *SubscriptionManager) Unsubscribe(ch chan struct{}) {
	m.mu.Lock()
	if _, ok := m.subscribers[ch]; ok {
		delete(m.subscribers, ch)
		close(ch)
	}
	m.mu.Unlock()
}

// Emit records topics for all subscribers, then signals them (non-blocking if their channel is full).
func (m *SubscriptionManager) Emit(ctx context.Context, topics ...string) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for ch, sub := range m.subscribers {
		if ctx.Err() != nil {
			return
		}
		sub.add(topics)
		select {
		case ch <- struct{}{}:
		default:
			// A signal is already pending; the topics were merged above
		}
	}
}
