package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dotgrid/dotsboxes-go/internal/model"
	"github.com/dotgrid/dotsboxes-go/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// Conditional updates run inside a WATCH transaction on the match key:
// if any writer lands between the read and the EXEC, the transaction
// aborts and the caller gets model.ErrWriteConflict. Change notification
// rides on a pub/sub channel per match.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) CreateMatch(ctx context.Context, m *model.Match) error {
	m.Version = 1

	data, err := json.Marshal(m)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, matchKey(m.ID), data, s.ttlFor(m))
	s.applyIndexOps(ctx, pipe, m)
	pipe.Publish(ctx, matchChannel(m.ID), data)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetMatch(ctx context.Context, id model.MatchID) (*model.Match, error) {
	data, err := s.client.Get(ctx, matchKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrMatchNotFound
		}
		return nil, err
	}

	var m model.Match
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *Storage) UpdateMatch(ctx context.Context, m *model.Match) error {
	key := matchKey(m.ID)
	expected := m.Version

	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return model.ErrMatchNotFound
			}
			return err
		}

		var current model.Match
		if err := json.Unmarshal(data, &current); err != nil {
			return err
		}
		if current.Version != expected {
			return model.ErrWriteConflict
		}

		m.Version = expected + 1
		updated, err := json.Marshal(m)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, updated, s.ttlFor(m))
			s.applyIndexOps(ctx, pipe, m)
			pipe.Publish(ctx, matchChannel(m.ID), updated)
			return nil
		})
		return err
	}, key)

	if err != nil {
		m.Version = expected
		if errors.Is(err, redis.TxFailedErr) {
			return model.ErrWriteConflict
		}
		return err
	}
	return nil
}

func (s *Storage) DeleteMatch(ctx context.Context, id model.MatchID) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, matchKey(id))
	pipe.SRem(ctx, openMatchesKey(), string(id))
	pipe.SRem(ctx, activeMatchesKey(), string(id))
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) ListOpenMatches(ctx context.Context) ([]*model.Match, error) {
	ids, err := s.client.SMembers(ctx, openMatchesKey()).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*model.Match{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = matchKey(model.MatchID(id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	matches := make([]*model.Match, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue // Match may have expired
		}
		var m model.Match
		if err := json.Unmarshal([]byte(val.(string)), &m); err != nil {
			continue // Skip invalid data
		}
		// The index can lag behind the match record; trust the record
		if m.Status != model.StatusWaiting {
			continue
		}
		matches = append(matches, &m)
	}

	return matches, nil
}

func (s *Storage) ListActiveMatchIDs(ctx context.Context) ([]model.MatchID, error) {
	members, err := s.client.SMembers(ctx, activeMatchesKey()).Result()
	if err != nil {
		return nil, err
	}

	ids := make([]model.MatchID, len(members))
	for i, member := range members {
		ids[i] = model.MatchID(member)
	}
	return ids, nil
}

func (s *Storage) SubscribeMatch(ctx context.Context, id model.MatchID) (<-chan *model.Match, func(), error) {
	pubsub := s.client.Subscribe(ctx, matchChannel(id))

	// Force the subscription to be established before returning
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, nil, err
	}

	out := make(chan *model.Match, 16)
	go func() {
		defer close(out)
		for msg := range pubsub.Channel() {
			var m model.Match
			if err := json.Unmarshal([]byte(msg.Payload), &m); err != nil {
				continue
			}
			select {
			case out <- &m:
			case <-ctx.Done():
				return
			}
		}
	}()

	stop := func() {
		_ = pubsub.Close()
	}
	return out, stop, nil
}

// ttlFor expires finished matches after the configured window; live
// matches do not expire
func (s *Storage) ttlFor(m *model.Match) time.Duration {
	if m.Status == model.StatusCompleted || m.Status == model.StatusCancelled {
		return s.cfg.MatchTTL
	}
	return 0
}

// applyIndexOps keeps the open/active membership sets in sync with the
// match's status
func (s *Storage) applyIndexOps(ctx context.Context, pipe redis.Pipeliner, m *model.Match) {
	id := string(m.ID)

	if m.Status == model.StatusWaiting && m.Settings.Public {
		pipe.SAdd(ctx, openMatchesKey(), id)
	} else {
		pipe.SRem(ctx, openMatchesKey(), id)
	}

	if m.Status == model.StatusActive {
		pipe.SAdd(ctx, activeMatchesKey(), id)
	} else {
		pipe.SRem(ctx, activeMatchesKey(), id)
	}
}
