package journal

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Key patterns for journal data in Redis.
func entriesKey(session string) string { return "warzone:" + session + ":journal" }

const sessionsKey = "warzone:sessions"

// RedisJournal appends entries to a Redis list per session.
type RedisJournal struct {
	rdb *redis.Client
}

// NewRedisJournal connects to Redis from a connection URL.
func NewRedisJournal(redisURL string) (*RedisJournal, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisJournal{rdb: rdb}, nil
}

// NewRedisJournalFromClient wraps an existing client for use in tests.
func NewRedisJournalFromClient(rdb *redis.Client) *RedisJournal {
	return &RedisJournal{rdb: rdb}
}

func (j *RedisJournal) Record(ctx context.Context, e Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}
	pipe := j.rdb.TxPipeline()
	pipe.RPush(ctx, entriesKey(e.Session), data)
	pipe.SAdd(ctx, sessionsKey, e.Session)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("journal entry: %w", err)
	}
	return nil
}

// Entries returns every entry of a session in recording order.
func (j *RedisJournal) Entries(ctx context.Context, session string) ([]Entry, error) {
	raw, err := j.rdb.LRange(ctx, entriesKey(session), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read journal: %w", err)
	}
	entries := make([]Entry, 0, len(raw))
	for _, r := range raw {
		var e Entry
		if err := json.Unmarshal([]byte(r), &e); err != nil {
			return nil, fmt.Errorf("unmarshal entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Sessions returns every session id with journaled entries.
func (j *RedisJournal) Sessions(ctx context.Context) ([]string, error) {
	ids, err := j.rdb.SMembers(ctx, sessionsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return ids, nil
}

// DeleteSession removes a session's entries.
func (j *RedisJournal) DeleteSession(ctx context.Context, session string) error {
	pipe := j.rdb.TxPipeline()
	pipe.Del(ctx, entriesKey(session))
	pipe.SRem(ctx, sessionsKey, session)
	_, err := pipe.Exec(ctx)
	return err
}

func (j *RedisJournal) Close() error {
	return j.rdb.Close()
}
