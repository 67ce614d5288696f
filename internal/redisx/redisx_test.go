package redisx

import (
	"context"
	"github.com/ariefcatur/go-salon-orders/internal/salon"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func testRedis(t *testing.T) *redis.Client {
	t.Helper()

	addr := os.Getenv("SALON_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("SALON_TEST_REDIS_ADDR not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	rdb, err := Connect(ctx, addr, "", 0)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = rdb.Del(context.Background(), KeyProductsAll, KeyProductsInStock).Err()
		_ = rdb.Close()
	})
	require.NoError(t, rdb.Del(ctx, KeyProductsAll, KeyProductsInStock).Err())
	return rdb
}

type mockStore struct {
	mock.Mock
	salon.ProductStore
}

func (m *mockStore) List(ctx context.Context) ([]salon.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]salon.Product), args.Error(1)
}

func (m *mockStore) AdjustStock(ctx context.Context, id int64, delta int) (*salon.Product, error) {
	args := m.Called(ctx, id, delta)
	return args.Get(0).(*salon.Product), args.Error(1)
}

func TestCachedProducts_ListHitsStoreOnceUntilWrite(t *testing.T) {
	rdb := testRedis(t)
	ctx := context.Background()

	store := new(mockStore)
	products := []salon.Product{{ID: 1, Name: "Esmalte", Stock: 2}}
	store.On("List", mock.Anything).Return(products, nil).Twice()
	store.On("AdjustStock", mock.Anything, int64(1), -1).Return(&salon.Product{ID: 1, Stock: 1}, nil).Once()

	c := NewCachedProducts(store, rdb, zap.NewNop())

	for i := 0; i < 3; i++ {
		got, err := c.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, products, got)
	}

	_, err := c.AdjustStock(ctx, 1, -1)
	require.NoError(t, err)

	_, err = c.List(ctx)
	require.NoError(t, err)
	store.AssertExpectations(t)
}

func TestIdempotency_ReserveThenRemember(t *testing.T) {
	rdb := testRedis(t)
	ctx := context.Background()
	idem := &Idempotency{Redis: rdb}
	key := uuid.NewString()

	_, reserved, err := idem.Reserve(ctx, key)
	require.NoError(t, err)
	assert.True(t, reserved)

	_, _, err = idem.Reserve(ctx, key)
	assert.ErrorIs(t, err, ErrInFlight)

	require.NoError(t, idem.Remember(ctx, key, 7))

	id, reserved, err := idem.Reserve(ctx, key)
	require.NoError(t, err)
	assert.False(t, reserved)
	assert.Equal(t, int64(7), id)
}

func TestIdempotency_ConcurrentReserveHasOneWinner(t *testing.T) {
	rdb := testRedis(t)
	ctx := context.Background()
	idem := &Idempotency{Redis: rdb}
	key := uuid.NewString()

	const n = 8
	var (
		wg   sync.WaitGroup
		wins atomic.Int32
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, reserved, err := idem.Reserve(ctx, key); err == nil && reserved {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), wins.Load())
}

func TestIdempotency_ReleaseAndForget(t *testing.T) {
	rdb := testRedis(t)
	ctx := context.Background()
	idem := &Idempotency{Redis: rdb}
	key := uuid.NewString()

	_, reserved, err := idem.Reserve(ctx, key)
	require.NoError(t, err)
	require.True(t, reserved)
	require.NoError(t, idem.Release(ctx, key))

	_, reserved, err = idem.Reserve(ctx, key)
	require.NoError(t, err)
	assert.True(t, reserved, "released key can be reserved again")

	require.NoError(t, idem.Remember(ctx, key, 3))
	require.NoError(t, idem.Release(ctx, key))
	id, _, err := idem.Reserve(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(3), id, "release leaves a bound key alone")

	require.NoError(t, idem.Forget(ctx, key, 4))
	id, _, err = idem.Reserve(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(3), id, "forget only drops the matching order")

	require.NoError(t, idem.Forget(ctx, key, 3))
	_, reserved, err = idem.Reserve(ctx, key)
	require.NoError(t, err)
	assert.True(t, reserved)
}

func TestSeen(t *testing.T) {
	rdb := testRedis(t)
	ctx := context.Background()
	ev := uuid.NewString()

	seen, err := Seen(ctx, rdb, "test", ev)
	require.NoError(t, err)
	assert.False(t, seen)

	seen, err = Seen(ctx, rdb, "test", ev)
	require.NoError(t, err)
	assert.True(t, seen)
}
