// Package redisrepo is a Redis-backed TimerRepository. Redis TTL carries
// the expiry, so expired timers vanish on their own and DeleteExpiredBefore
// has nothing to do.
package redisrepo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"omerta/internal/app/ports"
	"omerta/internal/domain/game"
)

type TimerRepo struct {
	client *redis.Client
}

// New connects and pings; use NewWithClient to inject a client in tests.
func New(cfg Config) (*TimerRepo, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}
	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &TimerRepo{client: client}, nil
}

func NewWithClient(client *redis.Client) *TimerRepo {
	return &TimerRepo{client: client}
}

func (r *TimerRepo) Close() error {
	return r.client.Close()
}

var _ ports.TimerRepository = (*TimerRepo)(nil)

type timerDoc struct {
	PlayerID  int64             `json:"player_id"`
	Name      string            `json:"name"`
	ExpiresAt time.Time         `json:"expires_at"`
	Duration  int               `json:"duration"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

func (r *TimerRepo) Get(ctx context.Context, playerID int64, name string) (game.Timer, error) {
	data, err := r.client.Get(ctx, timerKey(playerID, name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return game.Timer{}, ports.ErrNotFound
		}
		return game.Timer{}, err
	}
	var doc timerDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return game.Timer{}, err
	}
	return game.Timer{
		PlayerID:  doc.PlayerID,
		Name:      doc.Name,
		ExpiresAt: doc.ExpiresAt,
		Duration:  doc.Duration,
		Metadata:  doc.Metadata,
		CreatedAt: doc.CreatedAt,
	}, nil
}

func (r *TimerRepo) Upsert(ctx context.Context, t game.Timer) error {
	data, err := json.Marshal(timerDoc{
		PlayerID:  t.PlayerID,
		Name:      t.Name,
		ExpiresAt: t.ExpiresAt,
		Duration:  t.Duration,
		Metadata:  t.Metadata,
		CreatedAt: t.CreatedAt,
	})
	if err != nil {
		return err
	}

	ttl := time.Until(t.ExpiresAt)
	if ttl <= 0 {
		// Already expired on arrival; storing it would be invisible anyway.
		return r.Delete(ctx, t.PlayerID, t.Name)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, timerKey(t.PlayerID, t.Name), data, ttl)
	pipe.SAdd(ctx, timersForPlayerIndexKey(t.PlayerID), t.Name)
	_, err = pipe.Exec(ctx)
	return err
}

func (r *TimerRepo) Delete(ctx context.Context, playerID int64, name string) error {
	pipe := r.client.Pipeline()
	pipe.Del(ctx, timerKey(playerID, name))
	pipe.SRem(ctx, timersForPlayerIndexKey(playerID), name)
	_, err := pipe.Exec(ctx)
	return err
}

func (r *TimerRepo) ListByPlayer(ctx context.Context, playerID int64) ([]game.Timer, error) {
	names, err := r.client.SMembers(ctx, timersForPlayerIndexKey(playerID)).Result()
	if err != nil {
		return nil, err
	}
	var out []game.Timer
	for _, name := range names {
		t, err := r.Get(ctx, playerID, name)
		if err != nil {
			if errors.Is(err, ports.ErrNotFound) {
				// TTL reaped the value; drop the stale index member.
				r.client.SRem(ctx, timersForPlayerIndexKey(playerID), name)
				continue
			}
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// DeleteExpiredBefore is a no-op: Redis TTL already reaps expired timers.
func (r *TimerRepo) DeleteExpiredBefore(context.Context, time.Time) (int64, error) {
	return 0, nil
}
