package redisx

import (
	"context"
	"errors"
	"fmt"
	"github.com/redis/go-redis/v9"
	"strconv"
)

// ErrInFlight means another request holds the key and has not finished.
var ErrInFlight = errors.New("a request with this idempotency key is in progress")

const pendingValue = "pending"

// compareAndDelete drops KEYS[1] only while it still holds ARGV[1].
var compareAndDelete = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Idempotency guards order creation. A key is reserved before the order is
// written and then points at the created order id.
type Idempotency struct {
	Redis *redis.Client
}

// Reserve claims key for a new create. When the key is already bound to an
// order, reserved is false and id is that order. A key held by a request
// still running gives ErrInFlight.
func (i *Idempotency) Reserve(ctx context.Context, key string) (id int64, reserved bool, err error) {
	k := fmt.Sprintf(KeyIdemOrderCreate, key)
	for attempt := 0; attempt < 2; attempt++ {
		ok, err := i.Redis.SetNX(ctx, k, pendingValue, TTLIdempotencyPending).Result()
		if err != nil {
			return 0, false, err
		}
		if ok {
			return 0, true, nil
		}

		s, err := i.Redis.Get(ctx, k).Result()
		if errors.Is(err, redis.Nil) {
			// expired between SETNX and GET
			continue
		}
		if err != nil {
			return 0, false, err
		}
		if s == pendingValue {
			return 0, false, ErrInFlight
		}
		id, err = strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, false, fmt.Errorf("bad idempotency value %q: %w", s, err)
		}
		return id, false, nil
	}
	return 0, false, ErrInFlight
}

// Remember binds a reserved key to the created order.
func (i *Idempotency) Remember(ctx context.Context, key string, orderID int64) error {
	return i.Redis.Set(ctx, fmt.Sprintf(KeyIdemOrderCreate, key), orderID, TTLIdempotency).Err()
}

// Release frees a reservation whose create failed, so the client can retry.
func (i *Idempotency) Release(ctx context.Context, key string) error {
	return compareAndDelete.Run(ctx, i.Redis, []string{fmt.Sprintf(KeyIdemOrderCreate, key)}, pendingValue).Err()
}

// Forget unbinds key from orderID, typically because the order was deleted.
// A key rebound to another order meanwhile is left alone.
func (i *Idempotency) Forget(ctx context.Context, key string, orderID int64) error {
	return compareAndDelete.Run(ctx, i.Redis, []string{fmt.Sprintf(KeyIdemOrderCreate, key)}, strconv.FormatInt(orderID, 10)).Err()
}

// Seen marks service/eventID as processed and reports whether it already was.
func Seen(ctx context.Context, rdb *redis.Client, service, eventID string) (bool, error) {
	ok, err := rdb.SetNX(ctx, fmt.Sprintf(KeyDedup, service, eventID), "1", TTLDedup).Result()
	if err != nil {
		return false, err
	}
	return !ok, nil
}
