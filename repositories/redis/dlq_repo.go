package redis

import (
	// Go Internal Packages
	"context"
	"encoding/json"
	"fmt"
	"time"

	// Local Packages
	models "cash-kiosk/models"

	// External Packages
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DeadLetterQueue holds the transactions the reconciler could not sync.
type DeadLetterQueue struct {
	client  *redis.Client
	logger  *zap.Logger
	setName string
	now     func() time.Time
}

func NewDeadLetterQueue(client *redis.Client, logger *zap.Logger) *DeadLetterQueue {
	return &DeadLetterQueue{client: client, logger: logger, setName: "kiosk:unsynced", now: time.Now}
}

func key(id string) string {
	return fmt.Sprintf("kiosk:unsynced:%s", id)
}

// Send stores the record under "kiosk:unsynced:{transaction_id}" and indexes it
func (r *DeadLetterQueue) Send(ctx context.Context, record models.Record, reason string) error {
	letter := models.DeadLetter{
		Key:      string(record.Key),
		Value:    record.Value,
		Topic:    record.Topic,
		Reason:   reason,
		FailedAt: r.now().UTC().Format(time.RFC3339),
	}
	jsonData, err := json.Marshal(letter)
	if err != nil {
		return fmt.Errorf("failed to marshal dead letter: %w", err)
	}

	k := key(letter.Key)
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, k, jsonData, 0)
		pipe.SAdd(ctx, r.setName, letter.Key)
		return nil
	})
	if err != nil {
		r.logger.Error("failed to store dead letter", zap.String("key", k), zap.Error(err))
		return err
	}

	r.logger.Info("stored unsynced transaction", zap.String("key", k), zap.String("reason", reason))
	return nil
}

// Pending lists every stored dead letter
func (r *DeadLetterQueue) Pending(ctx context.Context) ([]models.DeadLetter, error) {
	ids, err := r.client.SMembers(ctx, r.setName).Result()
	if err != nil {
		return nil, err
	}

	letters := make([]models.DeadLetter, 0, len(ids))
	for _, id := range ids {
		raw, err := r.client.Get(ctx, key(id)).Bytes()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return nil, err
		}
		var letter models.DeadLetter
		if err := json.Unmarshal(raw, &letter); err != nil {
			r.logger.Error("failed to unmarshal dead letter", zap.String("key", key(id)), zap.Error(err))
			continue
		}
		letters = append(letters, letter)
	}
	return letters, nil
}

// Remove drops a dead letter once it has been resolved
func (r *DeadLetterQueue) Remove(ctx context.Context, id string) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key(id))
		pipe.SRem(ctx, r.setName, id)
		return nil
	})
	return err
}
