package redis

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisEventQueue is the pending-notification stream between the router and
// the dispatch worker. A single fixed stream; consumer groups give each
// worker instance its own cursor.
type RedisEventQueue struct {
	rdb    *redis.Client
	stream string
}

func NewRedisEventQueue(rdb *redis.Client, stream string) *RedisEventQueue {
	return &RedisEventQueue{rdb: rdb, stream: stream}
}

func (q *RedisEventQueue) Publish(ctx context.Context, payload []byte) error {
	return q.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: q.stream,
		MaxLen: 1000,
		Approx: true,
		ID:     "*",
		Values: map[string]interface{}{"data": payload},
	}).Err()
}

func (q *RedisEventQueue) Subscribe(
	ctx context.Context,
	conGroup string,
	handler func(ctx context.Context, messageID string, data []byte) error,
) error {
	// Create group if not exists
	err := q.rdb.XGroupCreateMkStream(ctx, q.stream, conGroup, "0").Err()
	if err != nil && err.Error() != "BUSYGROUP Consumer Group name already exists" {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}
	consumerName := uuid.NewString()
	// Run in a goroutine
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			default:
				// Read new messages (">")
				res, err := q.rdb.XReadGroup(ctx, &redis.XReadGroupArgs{
					Group:    conGroup,
					Consumer: consumerName,
					Streams:  []string{q.stream, ">"},
					Count:    1,
					Block:    2 * time.Second,
				}).Result()
				if err != nil {
					if err != redis.Nil {
						log.Printf("Stream read error: %v", err)
					}
					continue
				}
				for _, stream := range res {
					for _, msg := range stream.Messages {
						raw, ok := msg.Values["data"].(string)
						if !ok {
							continue
						}
						if err := handler(ctx, msg.ID, []byte(raw)); err != nil {
							log.Printf("Handler error for message %s: %v", msg.ID, err)
						}
					}
				}
			}
		}
	}()
	return nil
}

func (q *RedisEventQueue) Acknowledge(ctx context.Context, conGroup, mesgID string) error {
	return q.rdb.XAck(ctx, q.stream, conGroup, mesgID).Err()
}

func (q *RedisEventQueue) DeleteMessage(ctx context.Context, mesgID string) error {
	return q.rdb.XDel(ctx, q.stream, mesgID).Err()
}
