package notifications

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestNotifier_PublishWithoutRedisIsNoop(t *testing.T) {
	n := NewNotifier(nil)
	assert.NoError(t, n.Publish(context.Background(), Event{Type: "post_created", PostID: 1}))

	var nilNotifier *Notifier
	assert.NoError(t, nilNotifier.Publish(context.Background(), Event{Type: "post_created"}))
}

func TestNotifier_PublishReachesSubscriber(t *testing.T) {
	rdb := newTestRedis(t)
	n := NewNotifier(rdb)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	payloads := make(chan string, 4)
	require.NoError(t, n.StartSubscriber(ctx, func(payload string) {
		payloads <- payload
	}))

	require.NoError(t, n.Publish(context.Background(), Event{
		Type:   "interaction",
		PostID: 7,
		Kind:   "like",
	}))

	select {
	case payload := <-payloads:
		var ev Event
		require.NoError(t, json.Unmarshal([]byte(payload), &ev))
		assert.Equal(t, "interaction", ev.Type)
		assert.Equal(t, uint(7), ev.PostID)
		assert.Equal(t, "like", ev.Kind)
		assert.False(t, ev.At.IsZero())
	case <-time.After(time.Second):
		t.Fatal("event did not reach the subscriber")
	}
}

func TestNotifier_SubscriberStopsOnCancel(t *testing.T) {
	rdb := newTestRedis(t)
	n := NewNotifier(rdb)

	ctx, cancel := context.WithCancel(context.Background())

	var received int32
	require.NoError(t, n.StartSubscriber(ctx, func(string) {
		atomic.AddInt32(&received, 1)
	}))

	require.NoError(t, n.Publish(context.Background(), Event{Type: "post_created", PostID: 1}))
	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&received) >= 1
	}, time.Second, 10*time.Millisecond)

	cancel()
	time.Sleep(20 * time.Millisecond)

	require.NoError(t, n.Publish(context.Background(), Event{Type: "post_created", PostID: 2}))
	assert.Never(t, func() bool {
		return atomic.LoadInt32(&received) >= 2
	}, 200*time.Millisecond, 20*time.Millisecond)
}

func TestNotifier_SubscriberSurvivesPanics(t *testing.T) {
	rdb := newTestRedis(t)
	n := NewNotifier(rdb)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls int32
	require.NoError(t, n.StartSubscriber(ctx, func(string) {
		if atomic.AddInt32(&calls, 1) == 1 {
			panic("bad handler")
		}
	}))

	require.NoError(t, n.Publish(context.Background(), Event{Type: "post_created", PostID: 1}))
	require.NoError(t, n.Publish(context.Background(), Event{Type: "post_created", PostID: 2}))

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&calls) >= 2
	}, time.Second, 10*time.Millisecond)
}
