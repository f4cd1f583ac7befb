package notify

import (
	"context"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/inventory/pkg/types"
)

// received drains ch without blocking and reports whether a signal arrived.
func received(ch <-chan types.Address) bool {
	select {
	case _, ok := <-ch:
		return ok
	default:
		return false
	}
}

func TestResolver_NotifyChangeRouting(t *testing.T) {
	tests := []struct {
		name        string
		subscribeAt types.Address
		descendants bool
		changed     types.Address
		want        bool
	}{
		{"exact collection", types.Collection(), false, types.Collection(), true},
		{"exact item", types.Item(1), false, types.Item(1), true},
		{"other item", types.Item(1), false, types.Item(2), false},
		{"collection with descendants hears item", types.Collection(), true, types.Item(5), true},
		{"collection without descendants ignores item", types.Collection(), false, types.Item(5), false},
		{"item hears collection-wide change", types.Item(5), false, types.Collection(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(nil)
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			ch, _ := r.Subscribe(ctx, tt.subscribeAt, tt.descendants)
			r.NotifyChange(tt.changed)

			assert.Equal(t, tt.want, received(ch))
		})
	}
}

func TestResolver_DeliversChangedAddress(t *testing.T) {
	r := NewResolver(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, _ := r.Subscribe(ctx, types.Collection(), true)
	r.NotifyChange(types.Item(7))

	select {
	case got := <-ch:
		assert.Equal(t, types.Item(7), got)
	case <-time.After(time.Second):
		t.Fatal("no signal delivered")
	}
}

func TestResolver_Unsubscribe(t *testing.T) {
	r := NewResolver(nil)

	ch, id := r.Subscribe(context.Background(), types.Collection(), false)
	require.Equal(t, 1, r.Len())

	r.Unsubscribe(id)
	assert.Equal(t, 0, r.Len())

	_, ok := <-ch
	assert.False(t, ok, "channel is closed on unsubscribe")

	r.Unsubscribe(id)
	r.Unsubscribe("missing")
	r.NotifyChange(types.Collection())
}

func TestResolver_ContextCancelUnsubscribes(t *testing.T) {
	r := NewResolver(nil)
	ctx, cancel := context.WithCancel(context.Background())

	ch, _ := r.Subscribe(ctx, types.Item(1), false)
	cancel()

	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("subscription not cleaned up after cancel")
	}
	assert.Eventually(t, func() bool { return r.Len() == 0 }, time.Second, 10*time.Millisecond)
}

func TestResolver_NonBlockingDelivery(t *testing.T) {
	r := NewResolver(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, _ := r.Subscribe(ctx, types.Collection(), true)

	done := make(chan struct{})
	go func() {
		for i := 0; i < subscriberBufferSize*4; i++ {
			r.NotifyChange(types.Collection())
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("NotifyChange blocked on a full subscriber")
	}
	assert.Len(t, ch, subscriberBufferSize)
}

func TestResolver_ConcurrentUse(t *testing.T) {
	r := NewResolver(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(id int64) {
			defer wg.Done()
			_, sub := r.Subscribe(ctx, types.Item(id), false)
			r.Unsubscribe(sub)
		}(int64(i))
		go func() {
			defer wg.Done()
			r.NotifyChange(types.Collection())
		}()
	}
	wg.Wait()
	assert.Equal(t, 0, r.Len())
}

func TestResolver_Close(t *testing.T) {
	r := NewResolver(nil)

	ch, _ := r.Subscribe(context.Background(), types.Collection(), false)
	r.Close()

	_, ok := <-ch
	assert.False(t, ok)

	late, _ := r.Subscribe(context.Background(), types.Collection(), false)
	_, ok = <-late
	assert.False(t, ok, "subscribing after Close yields a closed channel")
}

func TestResolver_UnsubscribeReleasesWatcher(t *testing.T) {
	r := NewResolver(nil)
	defer r.Close()

	before := runtime.NumGoroutine()

	ids := make([]string, 0, 50)
	for range 50 {
		_, id := r.Subscribe(context.Background(), types.Collection(), true)
		ids = append(ids, id)
	}
	require.GreaterOrEqual(t, runtime.NumGoroutine(), before+50)

	for _, id := range ids {
		r.Unsubscribe(id)
	}
	assert.Eventually(t, func() bool {
		return runtime.NumGoroutine() <= before
	}, time.Second, 10*time.Millisecond, "ctx watchers exit on Unsubscribe")
}

func TestResolver_CloseReleasesWatchers(t *testing.T) {
	r := NewResolver(nil)
	before := runtime.NumGoroutine()

	for range 50 {
		r.Subscribe(context.Background(), types.Item(1), false)
	}
	r.Close()

	assert.Eventually(t, func() bool {
		return runtime.NumGoroutine() <= before
	}, time.Second, 10*time.Millisecond, "ctx watchers exit on Close")
}
