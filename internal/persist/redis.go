package persist

import (
	"context"
	"encoding/json"

	"github.com/cenkalti/backoff/v4"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

type Redis struct {
	client *redis.Client
	prefix string
}

// OpenRedis connects and pings the server, retrying briefly so the wizard can
// start alongside a redis that is still coming up.
func OpenRedis(ctx context.Context, addr, prefix string) (*Redis, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 4), ctx)
	if err := backoff.Retry(func() error { return client.Ping(ctx).Err() }, policy); err != nil {
		_ = client.Close()
		return nil, errors.Wrapf(err, "ping redis %s", addr)
	}
	return &Redis{client: client, prefix: prefix}, nil
}

func (r *Redis) key(sessionID string) string {
	return r.prefix + ":session:" + sessionID
}

func (r *Redis) Load(ctx context.Context, sessionID string) (Snapshot, bool, error) {
	b, err := r.client.Get(ctx, r.key(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Snapshot{}, false, nil
	}
	if err != nil {
		return Snapshot{}, false, errors.Wrap(err, "get session")
	}
	var snap Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return Snapshot{}, false, errors.Wrap(err, "decode session")
	}
	return snap, true, nil
}

func (r *Redis) Save(ctx context.Context, snap Snapshot) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return errors.Wrap(err, "encode session")
	}
	return errors.Wrap(r.client.Set(ctx, r.key(snap.SessionID), b, 0).Err(), "set session")
}

func (r *Redis) Delete(ctx context.Context, sessionID string) error {
	return errors.Wrap(r.client.Del(ctx, r.key(sessionID)).Err(), "delete session")
}

func (r *Redis) Close() error { return r.client.Close() }
