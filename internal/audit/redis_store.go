package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	keyRecord = "audit:record:%s"
	keyIndex  = "audit:index"
)

// implements Store on Redis: one JSON value per record plus a
// sorted-set index scored by start time
type RedisStore struct {
	client    *redis.Client
	retention time.Duration
}

// creates a Redis-backed store; records expire after retention
func NewRedisStore(client *redis.Client, retention time.Duration) *RedisStore {
	return &RedisStore{client: client, retention: retention}
}

// parses the URL, connects and pings
func DialRedis(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close() //nolint:errcheck,gosec // best-effort cleanup on failed connect
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}

func (s *RedisStore) Save(ctx context.Context, record *Record) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal audit record: %w", err)
	}

	pipe := s.client.TxPipeline()

	pipe.Set(ctx, fmt.Sprintf(keyRecord, record.ID), payload, s.retention)
	pipe.ZAdd(ctx, keyIndex, redis.Z{
		Score:  float64(record.StartedAt.UnixNano()),
		Member: record.ID.String(),
	})

	// drop index entries whose records have expired
	if s.retention > 0 {
		cutoff := time.Now().Add(-s.retention).UnixNano()
		pipe.ZRemRangeByScore(ctx, keyIndex, "-inf", fmt.Sprintf("(%d", cutoff))
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save audit record to redis: %w", err)
	}

	return nil
}

func (s *RedisStore) Get(ctx context.Context, id uuid.UUID) (*Record, error) {
	payload, err := s.client.Get(ctx, fmt.Sprintf(keyRecord, id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrRecordNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get audit record from redis: %w", err)
	}

	var record Record
	if err := json.Unmarshal(payload, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal audit record: %w", err)
	}

	return &record, nil
}

func (s *RedisStore) List(ctx context.Context, q Query) ([]*Record, int, error) {
	filtered := q.Status != "" || q.UserID != ""

	if !filtered {
		total, err := s.client.ZCard(ctx, keyIndex).Result()
		if err != nil {
			return nil, 0, fmt.Errorf("failed to count audit records: %w", err)
		}

		start, stop := ranks(q)

		ids, err := s.ids(ctx, start, stop, q.Ascending)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to list audit ids: %w", err)
		}

		records, err := s.load(ctx, ids)
		if err != nil {
			return nil, 0, err
		}

		return records, int(total), nil
	}

	// filters need every record; the index is bounded by retention
	ids, err := s.ids(ctx, 0, -1, q.Ascending)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list audit ids: %w", err)
	}

	all, err := s.load(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	matched := make([]*Record, 0, len(all))
	for _, record := range all {
		if q.matches(record) {
			matched = append(matched, record)
		}
	}

	return page(matched, q), len(matched), nil
}

// converts a query's offset and limit into inclusive ZRANGE ranks;
// a stop of -1 means through the end of the index
func ranks(q Query) (start, stop int64) {
	start = int64(max(q.Offset, 0))
	stop = -1

	if q.Limit > 0 {
		stop = start + int64(q.Limit) - 1
		if stop < start {
			stop = math.MaxInt64
		}
	}

	return start, stop
}

// returns index members by rank in the requested order
func (s *RedisStore) ids(ctx context.Context, start, stop int64, ascending bool) ([]string, error) {
	if ascending {
		return s.client.ZRange(ctx, keyIndex, start, stop).Result()
	}

	return s.client.ZRevRange(ctx, keyIndex, start, stop).Result()
}

// fetches records by id, skipping ones that have expired
func (s *RedisStore) load(ctx context.Context, ids []string) ([]*Record, error) {
	records := []*Record{}
	if len(ids) == 0 {
		return records, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = fmt.Sprintf(keyRecord, id)
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load audit records: %w", err)
	}

	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}

		var record Record
		if err := json.Unmarshal([]byte(raw), &record); err != nil {
			return nil, fmt.Errorf("failed to unmarshal audit record: %w", err)
		}

		records = append(records, &record)
	}

	return records, nil
}
