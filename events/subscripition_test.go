package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscriptionManager(t *testing.T) {
	sm := NewSubscriptionManager()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	subscriberCount := 5
	received := make([]Event, subscriberCount)

	for i := 0; i < subscriberCount; i++ {
		sub := sm.Subscribe()

		wg.Add(1)
		go func(sub ISubscription, idx int) {
			defer wg.Done()
			select {
			case <-sub.Chan():
				received[idx] = sub.Take()
			case <-time.After(1 * time.Second):
			}
		}(sub, i)
	}

	sm.Emit(ctx, "markets")
	wg.Wait()

	for i, ev := range received {
		require.Truef(t, ev.Has("markets"), "Subscriber %d did not receive notification", i)
	}

	closed := sm.Subscribe()
	closed.Cancel()
	closed.Cancel()

	_, exists := sm.subscribers[closed.(*Subscription).ch]
	require.False(t, exists, "Subscription was not removed")

	// Emitting after cancel must not panic
	sm.Emit(ctx, "global")
}

func TestSubscriptionManager_MultipleEmitsCollapse(t *testing.T) {
	sm := NewSubscriptionManager()
	ctx := context.Background()

	sub := sm.Subscribe()
	defer sub.Cancel()

	sm.Emit(ctx, "view")
	sm.Emit(ctx, "global", "view")
	sm.Emit(ctx, "trending")

	select {
	case <-sub.Chan():
	case <-time.After(time.Second):
		t.Fatal("no signal received")
	}

	assert.Equal(t, []string{"global", "trending", "view"}, sub.Take().Topics)

	select {
	case <-sub.Chan():
		t.Fatal("signals must coalesce into one")
	case <-time.After(50 * time.Millisecond):
	}
	assert.Empty(t, sub.Take().Topics)
}

func TestSubscription_Watch(t *testing.T) {
	sm := NewSubscriptionManager()
	ctx, cancel := context.WithCancel(context.Background())

	var mu sync.Mutex
	var events []Event
	sub := sm.Subscribe().Watch(ctx, func(ev Event) {
		mu.Lock()
		events = append(events, ev)
		mu.Unlock()
	}, true)

	sm.Emit(context.Background(), "search")

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(events) == 2
	}, time.Second, 10*time.Millisecond)

	mu.Lock()
	assert.Empty(t, events[0].Topics)
	assert.True(t, events[1].Has("search"))
	mu.Unlock()

	cancel()
	assert.Eventually(t, func() bool {
		sm.mu.RLock()
		defer sm.mu.RUnlock()
		_, ok := sm.subscribers[sub.(*Subscription).ch]
		return !ok
	}, time.Second, 10*time.Millisecond)
}

func TestSubscriptionManager_EmitWithCancelledContext(t *testing.T) {
	sm := NewSubscriptionManager()
	sub := sm.Subscribe()
	defer sub.Cancel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sm.Emit(ctx, "global")

	assert.Empty(t, sub.Take().Topics)
}
