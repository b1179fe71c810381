package events

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPublishSubscribe(t *testing.T) {
	b := New()

	var got []Event
	sub, err := b.Subscribe(EntityCreated, func(e Event) error {
		got = append(got, e)
		return nil
	})
	require.NoError(t, err)
	require.NotEmpty(t, sub.ID())
	require.Equal(t, EntityCreated, sub.Kind())
	require.True(t, b.HasSubscribers(EntityCreated))
	require.False(t, b.HasSubscribers(EntityDeleted))

	require.NoError(t, b.Publish(Event{Kind: EntityCreated, Entity: 7}))
	require.NoError(t, b.Publish(Event{Kind: EntityDeleted, Entity: 7}))

	require.Len(t, got, 1)
	require.Equal(t, uint64(7), got[0].Entity)
	require.False(t, got[0].Timestamp.IsZero())
}

func TestHandlersRunInOrder(t *testing.T) {
	b := New()
	var order []int
	for i := 0; i < 3; i++ {
		_, err := b.Subscribe(ComponentAssigned, func(Event) error {
			order = append(order, i)
			return nil
		})
		require.NoError(t, err)
	}

	require.NoError(t, b.Publish(Event{Kind: ComponentAssigned}))
	require.Equal(t, []int{0, 1, 2}, order)
}

func TestErrorsAreJoined(t *testing.T) {
	b := New()
	errA := errors.New("a")
	errB := errors.New("b")
	_, _ = b.Subscribe(EntityDeleted, func(Event) error { return errA })
	_, _ = b.Subscribe(EntityDeleted, func(Event) error { return nil })
	_, _ = b.Subscribe(EntityDeleted, func(Event) error { return errB })

	err := b.Publish(Event{Kind: EntityDeleted})
	require.ErrorIs(t, err, errA)
	require.ErrorIs(t, err, errB)

	m := b.Metrics()
	require.Equal(t, uint64(1), m.Published)
	require.Equal(t, uint64(3), m.Delivered)
	require.Equal(t, uint64(2), m.Errors)
	require.Equal(t, uint64(3), m.Subscribers)
}

func TestCancel(t *testing.T) {
	b := New()
	calls := 0
	sub, _ := b.Subscribe(ComponentUnassigned, func(Event) error { calls++; return nil })

	require.NoError(t, b.Unsubscribe(sub))
	require.NoError(t, sub.Cancel())
	require.False(t, sub.IsActive())
	require.False(t, b.HasSubscribers(ComponentUnassigned))
	require.NoError(t, b.Unsubscribe(nil))

	require.NoError(t, b.Publish(Event{Kind: ComponentUnassigned}))
	require.Equal(t, 0, calls)
	require.Equal(t, uint64(0), b.Metrics().Subscribers)
}

func TestNilHandler(t *testing.T) {
	_, err := New().Subscribe(EntityCreated, nil)
	require.ErrorIs(t, err, ErrNilHandler)
}

func TestConcurrentPublish(t *testing.T) {
	b := New()
	var mu sync.Mutex
	count := 0
	_, _ = b.Subscribe(EntityCreated, func(Event) error {
		mu.Lock()
		count++
		mu.Unlock()
		return nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = b.Publish(Event{Kind: EntityCreated})
			}
		}()
	}
	wg.Wait()
	require.Equal(t, 800, count)
}

func TestEventFields(t *testing.T) {
	require.Len(t, Event{Kind: EntityCreated, Entity: 1}.Fields(), 3)
	require.Len(t, Event{Kind: ComponentAssigned, Component: "x"}.Fields(), 4)
}
