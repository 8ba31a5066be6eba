package queue

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemory_PublishConsume(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	q := NewInMemory(4)
	require.NoError(t, q.Publish(ctx, Message{Type: "audit-entry", Body: []byte(`{"user":"Maria"}`)}))
	require.NoError(t, q.Publish(ctx, Message{Type: "other", Body: []byte("x")}))

	messages, err := q.Consume(ctx)
	require.NoError(t, err)

	first := <-messages
	assert.Equal(t, "audit-entry", first.Type)
	assert.JSONEq(t, `{"user":"Maria"}`, string(first.Body))

	second := <-messages
	assert.Equal(t, "other", second.Type)
}

func TestInMemory_ConsumeStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	q := NewInMemory(1)
	messages, err := q.Consume(ctx)
	require.NoError(t, err)

	cancel()

	select {
	case _, open := <-messages:
		assert.False(t, open, "channel must close after cancellation")
	case <-time.After(time.Second):
		t.Fatal("consume channel did not close")
	}
}

func TestInMemory_PublishRespectsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	q := NewInMemory(1)
	require.NoError(t, q.Publish(ctx, Message{Type: "a"}))

	// Queue is full; a cancelled context unblocks the publisher.
	cancel()
	err := q.Publish(ctx, Message{Type: "b"})
	assert.ErrorIs(t, err, context.Canceled)
}
