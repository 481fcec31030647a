package redis

import (
	"context"
	"sort"
	"testing"
	"time"

	models "cash-kiosk/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newQueue(t *testing.T) (*DeadLetterQueue, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	client, err := Connect(context.Background(), mr.Addr(), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	q := NewDeadLetterQueue(client, zap.NewNop())
	q.now = func() time.Time { return time.Date(2026, 10, 14, 8, 0, 0, 0, time.UTC) }
	return q, mr
}

func TestDeadLetterQueue_SendAndPending(t *testing.T) {
	ctx := context.Background()
	q, mr := newQueue(t)

	require.NoError(t, q.Send(ctx, models.Record{Key: []byte("TX1"), Value: []byte(`{"a":1}`), Topic: "kiosk-transactions"}, "status 500"))
	require.NoError(t, q.Send(ctx, models.Record{Key: []byte("TX2"), Value: []byte(`{"a":2}`), Topic: "kiosk-transactions"}, "timeout"))

	assert.True(t, mr.Exists("kiosk:unsynced:TX1"))

	letters, err := q.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, letters, 2)
	sort.Slice(letters, func(i, j int) bool { return letters[i].Key < letters[j].Key })

	assert.Equal(t, "TX1", letters[0].Key)
	assert.Equal(t, "status 500", letters[0].Reason)
	assert.Equal(t, []byte(`{"a":1}`), letters[0].Value)
	assert.Equal(t, "2026-10-14T08:00:00Z", letters[0].FailedAt)
	assert.Equal(t, "timeout", letters[1].Reason)
}

func TestDeadLetterQueue_SendOverwrites(t *testing.T) {
	ctx := context.Background()
	q, _ := newQueue(t)

	rec := models.Record{Key: []byte("TX1"), Value: []byte(`{}`)}
	require.NoError(t, q.Send(ctx, rec, "first"))
	require.NoError(t, q.Send(ctx, rec, "second"))

	letters, err := q.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, letters, 1)
	assert.Equal(t, "second", letters[0].Reason)
}

func TestDeadLetterQueue_Remove(t *testing.T) {
	ctx := context.Background()
	q, mr := newQueue(t)

	require.NoError(t, q.Send(ctx, models.Record{Key: []byte("TX1"), Value: []byte(`{}`)}, "boom"))
	require.NoError(t, q.Remove(ctx, "TX1"))

	assert.False(t, mr.Exists("kiosk:unsynced:TX1"))
	letters, err := q.Pending(ctx)
	require.NoError(t, err)
	assert.Empty(t, letters)
}

func TestConnect_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := Connect(ctx, "127.0.0.1:1", "")
	assert.Error(t, err)
}
