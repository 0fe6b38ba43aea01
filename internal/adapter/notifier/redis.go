package notifier

import (
	"context"
	"fmt"

	"bank-ledger/internal/domain/notification"

	"github.com/redis/go-redis/v9"
)

const defaultStreamMaxLen = 100_000

// RedisStream appends each event to a capped Redis stream under the "event"
// field.
type RedisStream struct {
	client redis.Cmdable
	stream string
	maxLen int64
}

func NewRedisStream(client redis.Cmdable, stream string) *RedisStream {
	return &RedisStream{client: client, stream: stream, maxLen: defaultStreamMaxLen}
}

func (s *RedisStream) Notify(ctx context.Context, ev notification.Event) error {
	body, err := encode(ev)
	if err != nil {
		return err
	}
	err = s.client.XAdd(ctx, &redis.XAddArgs{
		Stream: s.stream,
		MaxLen: s.maxLen,
		Approx: true,
		Values: map[string]any{"event": string(body), "user_id": ev.UserID},
	}).Err()
	if err != nil {
		return fmt.Errorf("notifier: xadd %s: %w", s.stream, err)
	}
	return nil
}
