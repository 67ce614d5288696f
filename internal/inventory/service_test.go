package inventory

import (
	"context"
	"github.com/ariefcatur/go-salon-orders/internal/salon"
	"github.com/ariefcatur/go-salon-orders/internal/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"path/filepath"
	"testing"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, topic string, key []byte, ev salon.Envelope) {
	m.Called(topic, string(key), ev.EventType)
}

func newTestService(t *testing.T) (*Service, *mockPublisher) {
	t.Helper()

	db, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "salon.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	pub := new(mockPublisher)
	return NewService(sqlite.NewProductRepo(db), pub, zap.NewNop(), "test"), pub
}

func TestService_CreateThenList(t *testing.T) {
	svc, pub := newTestService(t)
	ctx := context.Background()
	pub.On("Publish", salon.TopicStockChanged, "product:1", salon.EventStockChanged).Once()

	p, err := svc.Create(ctx, salon.ProductInput{Name: "Esmalte Vermelho", Stock: 5, Color: "Vermelho"})
	require.NoError(t, err)

	products, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, *p, products[0])
	assert.Equal(t, 5, products[0].Stock)
	pub.AssertExpectations(t)
}

func TestService_AdjustStock(t *testing.T) {
	svc, pub := newTestService(t)
	ctx := context.Background()
	pub.On("Publish", mock.Anything, mock.Anything, mock.Anything)

	p, err := svc.Create(ctx, salon.ProductInput{Name: "Lixa", Stock: 3})
	require.NoError(t, err)

	up, err := svc.AdjustStock(ctx, p.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 4, up.Stock)

	down, err := svc.AdjustStock(ctx, p.ID, -1)
	require.NoError(t, err)
	assert.Equal(t, 3, down.Stock)

	_, err = svc.AdjustStock(ctx, p.ID, 5)
	assert.ErrorIs(t, err, salon.ErrInvalidInput)

	_, err = svc.AdjustStock(ctx, p.ID+10, 1)
	assert.ErrorIs(t, err, salon.ErrNotFound)

	pub.AssertNumberOfCalls(t, "Publish", 3)
}

func TestService_UpdateAndDelete(t *testing.T) {
	svc, pub := newTestService(t)
	ctx := context.Background()
	pub.On("Publish", salon.TopicStockChanged, mock.Anything, salon.EventStockChanged).Twice()
	pub.On("Publish", salon.TopicStockChanged, mock.Anything, salon.EventProductDeleted).Once()

	p, err := svc.Create(ctx, salon.ProductInput{Name: "Base", Stock: 1, Color: "Nude"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, p.ID, salon.ProductInput{Name: "Base Forte", Stock: 7, Color: "Nude"})
	require.NoError(t, err)
	assert.Equal(t, "Base Forte", updated.Name)
	assert.Equal(t, 7, updated.Stock)

	require.NoError(t, svc.Delete(ctx, p.ID))
	assert.ErrorIs(t, svc.Delete(ctx, p.ID), salon.ErrNotFound)

	products, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)
	pub.AssertExpectations(t)
}

func TestService_Available(t *testing.T) {
	svc, pub := newTestService(t)
	ctx := context.Background()
	pub.On("Publish", mock.Anything, mock.Anything, mock.Anything)

	_, err := svc.Create(ctx, salon.ProductInput{Name: "none", Stock: 0})
	require.NoError(t, err)
	some, err := svc.Create(ctx, salon.ProductInput{Name: "some", Stock: 2})
	require.NoError(t, err)

	picker, err := svc.Available(ctx)
	require.NoError(t, err)
	require.Len(t, picker, 1)
	assert.Equal(t, some.ID, picker[0].ID)
}
