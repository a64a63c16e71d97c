package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/finledger/cashmatch/internal/infrastructure/config"
)

// ErrEmpty is returned by Dequeue when no job arrived within the block timeout.
var ErrEmpty = errors.New("queue: no pending jobs")

// MatchJob is one queued matching run.
type MatchJob struct {
	PaymentID  uuid.UUID `json:"payment_id"`
	Edit       bool      `json:"edit"`
	EnqueuedAt time.Time `json:"enqueued_at"`
}

// RedisMatchQueue is a Redis-backed work queue for matching runs. Jobs are
// pushed with LPUSH and consumed with BRPOP so multiple workers can share one
// queue. A per-payment SETNX lock keeps two workers from running the same
// payment concurrently.
type RedisMatchQueue struct {
	client         *redis.Client
	queueKey       string
	lockKeyPrefix  string
	lockTTL        time.Duration
	dequeueTimeout time.Duration
}

// NewRedisMatchQueue connects to Redis and returns a queue
func NewRedisMatchQueue(redisCfg *config.RedisConfig, matchCfg *config.MatchingConfig) (*RedisMatchQueue, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     redisCfg.Addr(),
		Password: redisCfg.Password,
		DB:       redisCfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisMatchQueueWithClient(client, matchCfg), nil
}

// NewRedisMatchQueueWithClient builds a queue on an existing Redis client.
// Useful for testing or when sharing a client across components.
func NewRedisMatchQueueWithClient(client *redis.Client, matchCfg *config.MatchingConfig) *RedisMatchQueue {
	return &RedisMatchQueue{
		client:         client,
		queueKey:       matchCfg.QueueKey,
		lockKeyPrefix:  matchCfg.LockKeyPrefix,
		lockTTL:        matchCfg.LockTTL,
		dequeueTimeout: matchCfg.DequeueTimeout,
	}
}

// Enqueue pushes a matching job onto the queue
func (q *RedisMatchQueue) Enqueue(ctx context.Context, job MatchJob) error {
	if job.EnqueuedAt.IsZero() {
		job.EnqueuedAt = time.Now()
	}
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to encode match job: %w", err)
	}
	if err := q.client.LPush(ctx, q.queueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to enqueue match job: %w", err)
	}
	return nil
}

// Dequeue blocks up to the configured timeout for the next job. Returns
// ErrEmpty when the timeout elapses without a job.
func (q *RedisMatchQueue) Dequeue(ctx context.Context) (MatchJob, error) {
	result, err := q.client.BRPop(ctx, q.dequeueTimeout, q.queueKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return MatchJob{}, ErrEmpty
		}
		return MatchJob{}, fmt.Errorf("failed to dequeue match job: %w", err)
	}
	// BRPOP returns [key, value].
	var job MatchJob
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		return MatchJob{}, fmt.Errorf("failed to decode match job: %w", err)
	}
	return job, nil
}

// AcquireRunLock takes the per-payment run lock. Returns false when another
// worker already holds it. The TTL bounds how long a crashed worker can keep
// a payment locked.
func (q *RedisMatchQueue) AcquireRunLock(ctx context.Context, paymentID uuid.UUID) (bool, error) {
	key := q.lockKeyPrefix + paymentID.String()
	ok, err := q.client.SetNX(ctx, key, "1", q.lockTTL).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire run lock: %w", err)
	}
	return ok, nil
}

// ReleaseRunLock releases the per-payment run lock
func (q *RedisMatchQueue) ReleaseRunLock(ctx context.Context, paymentID uuid.UUID) error {
	key := q.lockKeyPrefix + paymentID.String()
	if err := q.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to release run lock: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (q *RedisMatchQueue) Close() error {
	return q.client.Close()
}
