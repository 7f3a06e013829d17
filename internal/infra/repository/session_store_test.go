package repository

import (
	"context"
	"testing"
	"time"

	"tableorder/internal/domain/model"
	"tableorder/internal/infra/storage"
	repo "tableorder/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartStore_RoundTripAndKeys(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	r := NewCartStore(kv)

	empty, err := r.Load(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, empty.IsEmpty())

	cart := model.Cart{Lines: []model.CartLine{{ItemID: "1", Quantity: 2}}}
	require.NoError(t, r.Save(ctx, "s1", cart))
	require.NoError(t, r.SaveTableID(ctx, "s1", "7"))

	got, err := r.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, cart, got)

	raw, err := kv.Get(ctx, "session:s1:cart")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"item_id":"1","quantity":2}]`, string(raw))

	table, err := r.LoadTableID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "7", table)

	// 別セッションからは見えない
	other, err := r.Load(ctx, "s2")
	require.NoError(t, err)
	assert.True(t, other.IsEmpty())

	require.NoError(t, r.Clear(ctx, "s1"))
	_, err = kv.Get(ctx, "session:s1:cart")
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestDraftStore_SaveSupersedes(t *testing.T) {
	ctx := context.Background()
	r := NewDraftStore(storage.NewMemory())

	_, err := r.Load(ctx, "s1")
	assert.ErrorIs(t, err, repo.ErrNotFound)

	first := model.OrderDraft{ID: "ORD-1-7", TableID: "7", Subtotal: decimal.RequireFromString("12.99")}
	second := model.OrderDraft{ID: "ORD-2-7", TableID: "7", Subtotal: decimal.RequireFromString("5.99")}
	require.NoError(t, r.Save(ctx, "s1", first))
	require.NoError(t, r.Save(ctx, "s1", second))

	got, err := r.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "ORD-2-7", got.ID)
	assert.True(t, got.Subtotal.Equal(second.Subtotal))

	require.NoError(t, r.Remove(ctx, "s1"))
	_, err = r.Load(ctx, "s1")
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func paidOrder(id string) model.PaidOrder {
	return model.PaidOrder{
		OrderDraft: model.OrderDraft{
			ID:        id,
			TableID:   "7",
			Lines:     []model.OrderLine{{ItemID: "1", Name: "Classic Burger", UnitPrice: decimal.RequireFromString("12.99"), Quantity: 1}},
			Subtotal:  decimal.RequireFromString("12.99"),
			CreatedAt: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
		},
		PaymentMethod: model.PaymentMethodQR,
		Status:        model.OrderStatusPaid,
		PaidAt:        time.Date(2025, 1, 1, 12, 0, 2, 0, time.UTC),
	}
}

func TestOrderLog_AppendFindList(t *testing.T) {
	ctx := context.Background()
	r := NewOrderLog(storage.NewMemory())

	list, err := r.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, r.Append(ctx, paidOrder("A")))
	require.NoError(t, r.Append(ctx, paidOrder("B")))

	list, err = r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "A", list[0].ID)
	assert.Equal(t, "B", list[1].ID)

	b, err := r.FindByID(ctx, "B")
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPaid, b.Status)
	assert.True(t, b.PaidAt.Equal(paidOrder("B").PaidAt))

	_, err = r.FindByID(ctx, "C")
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestOrderLog_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	r := NewOrderLog(storage.NewMemory())
	require.NoError(t, r.Append(ctx, paidOrder("A")))

	require.NoError(t, r.UpdateStatus(ctx, "A", model.OrderStatusPreparing))
	got, err := r.FindByID(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPreparing, got.Status)

	assert.ErrorIs(t, r.UpdateStatus(ctx, "X", model.OrderStatusReady), repo.ErrNotFound)
}

func TestOrderLog_ConcurrentAppend(t *testing.T) {
	ctx := context.Background()
	r := NewOrderLog(storage.NewMemory())

	done := make(chan struct{})
	for i := 0; i < 20; i++ {
		go func(i int) {
			defer func() { done <- struct{}{} }()
			_ = r.Append(ctx, paidOrder(string(rune('a'+i))))
		}(i)
	}
	for i := 0; i < 20; i++ {
		<-done
	}

	list, err := r.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 20)
}
