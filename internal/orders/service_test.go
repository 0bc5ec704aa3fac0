package orders

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) (*Service, *Store) {
	t.Helper()
	store, _ := newTestStore(t)
	return NewService(store, nil, zap.NewNop()), store
}

func TestService_Create_DefaultsAndTotal(t *testing.T) {
	svc, _ := newTestService(t)
	svc.nowFunc = func() time.Time {
		return time.Date(2024, 1, 15, 10, 30, 45, 0, time.UTC)
	}

	order, err := svc.Create(context.Background(), CreateInput{
		CustomerName:  "John Doe",
		CustomerEmail: "john@x.com",
		ProductName:   "Wheelchair",
		Quantity:      2,
		UnitPrice:     100.0,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, order.ID)
	assert.Equal(t, 200.0, order.TotalPrice)
	assert.Equal(t, StatusPending, order.Status)
	assert.Equal(t, order.CreatedAt, order.UpdatedAt)
	assert.Equal(t, "2024-01-15T10:30:45Z", order.CreatedAt)
}

func TestService_Create_ExplicitStatus(t *testing.T) {
	svc, _ := newTestService(t)

	order, err := svc.Create(context.Background(), CreateInput{
		CustomerName:  "Jane",
		CustomerEmail: "jane@x.com",
		ProductName:   "Crutches",
		Quantity:      1,
		UnitPrice:     25.5,
		Status:        StatusConfirmed,
	})
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, order.Status)
	assert.Equal(t, 25.5, order.TotalPrice)
}

func TestService_FindOne_Missing(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.FindOne(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_Update_ShippingAddressOnly(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateInput{
		CustomerName:  "John Doe",
		CustomerEmail: "john@x.com",
		ProductName:   "Wheelchair",
		Quantity:      2,
		UnitPrice:     100.0,
	})
	require.NoError(t, err)

	addr := "123 Main St"
	updated, err := svc.Update(ctx, created.ID, Patch{ShippingAddress: &addr})
	require.NoError(t, err)

	assert.Equal(t, "123 Main St", updated.ShippingAddress)
	assert.Equal(t, created.Quantity, updated.Quantity)
	assert.Equal(t, created.UnitPrice, updated.UnitPrice)
	assert.Equal(t, created.TotalPrice, updated.TotalPrice)
	assert.GreaterOrEqual(t, updated.UpdatedAt, created.UpdatedAt)
}

func TestService_Update_QuantityRecomputesTotal(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateInput{
		CustomerName:  "John Doe",
		CustomerEmail: "john@x.com",
		ProductName:   "Wheelchair",
		Quantity:      2,
		UnitPrice:     100.0,
	})
	require.NoError(t, err)

	q := 3
	updated, err := svc.Update(ctx, created.ID, Patch{Quantity: &q})
	require.NoError(t, err)

	// total recomputed with the previously stored unit price
	assert.Equal(t, 3, updated.Quantity)
	assert.Equal(t, 100.0, updated.UnitPrice)
	assert.Equal(t, 300.0, updated.TotalPrice)
}

func TestService_Update_BothPriceInputs(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateInput{
		CustomerName:  "John Doe",
		CustomerEmail: "john@x.com",
		ProductName:   "Wheelchair",
		Quantity:      2,
		UnitPrice:     100.0,
	})
	require.NoError(t, err)

	q, p := 4, 50.0
	updated, err := svc.Update(ctx, created.ID, Patch{Quantity: &q, UnitPrice: &p})
	require.NoError(t, err)
	assert.Equal(t, 200.0, updated.TotalPrice)
}

func TestService_Update_Missing(t *testing.T) {
	svc, _ := newTestService(t)

	q := 1
	_, err := svc.Update(context.Background(), "ghost", Patch{Quantity: &q})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_Remove(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateInput{
		CustomerName:  "John Doe",
		CustomerEmail: "john@x.com",
		ProductName:   "Wheelchair",
		Quantity:      1,
		UnitPrice:     10.0,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Remove(ctx, created.ID))
	_, err = svc.FindOne(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, svc.Remove(ctx, created.ID), ErrNotFound)
}

func TestService_FindAll_ReflectsDeletes(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, CreateInput{CustomerName: "A", CustomerEmail: "a@x.com", ProductName: "P", Quantity: 1, UnitPrice: 1})
	require.NoError(t, err)
	b, err := svc.Create(ctx, CreateInput{CustomerName: "B", CustomerEmail: "b@x.com", ProductName: "P", Quantity: 1, UnitPrice: 1})
	require.NoError(t, err)

	require.NoError(t, svc.Remove(ctx, a.ID))

	list, err := svc.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, b.ID, list[0].ID)
}
