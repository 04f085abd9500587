package session

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cart maps product slug to a desired quantity. Quantities are always
// positive: NewCart drops anything else on the way in, and Add never
// contributes less than one.
type Cart map[string]uint

func NewCart(raw map[string]string) Cart {
	cart := make(Cart, len(raw))
	for slug, v := range raw {
		qty, err := strconv.ParseUint(v, 10, 64)
		if err != nil || qty == 0 {
			continue
		}
		cart[slug] = uint(qty)
	}
	return cart
}

// CartStore keeps one cart per visitor session. Add must be atomic per
// session so concurrent adds never lose an increment.
type CartStore interface {
	Get(ctx context.Context, sessionID string) (Cart, error)
	Add(ctx context.Context, sessionID, slug string, quantity uint) error
	Clear(ctx context.Context, sessionID string) error
}

const cartTTL = 7 * 24 * time.Hour

// RedisCartStore holds carts as redis hashes under a versioned key with
// a sliding expiry. Increments go through HINCRBY.
type RedisCartStore struct {
	RDB *redis.Client
}

func NewRedisCartStore(rdb *redis.Client) *RedisCartStore {
	return &RedisCartStore{RDB: rdb}
}

func cartKey(sessionID string) string {
	return "cart:v1:" + sessionID
}

func (s *RedisCartStore) Get(ctx context.Context, sessionID string) (Cart, error) {
	raw, err := s.RDB.HGetAll(ctx, cartKey(sessionID)).Result()
	if err != nil {
		return nil, err
	}
	return NewCart(raw), nil
}

func (s *RedisCartStore) Add(ctx context.Context, sessionID, slug string, quantity uint) error {
	if quantity < 1 {
		quantity = 1
	}
	key := cartKey(sessionID)
	pipe := s.RDB.TxPipeline()
	pipe.HIncrBy(ctx, key, slug, int64(quantity))
	pipe.Expire(ctx, key, cartTTL)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *RedisCartStore) Clear(ctx context.Context, sessionID string) error {
	return s.RDB.Del(ctx, cartKey(sessionID)).Err()
}
