package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"tableorder/internal/domain/model"
	repo "tableorder/internal/repository"
	"tableorder/internal/schedule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type paymentFixture struct {
	drafts    *DraftRepoMock
	carts     *CartRepoMock
	orders    *OrderStoreMock
	notifier  *NotifierMock
	publisher *PublisherMock
	handoff   *HandoffMock
	sched     *schedule.Manual
	uc        *PaymentUsecase
}

func newPaymentFixture() *paymentFixture {
	f := &paymentFixture{
		drafts:    new(DraftRepoMock),
		carts:     new(CartRepoMock),
		orders:    new(OrderStoreMock),
		notifier:  new(NotifierMock),
		publisher: new(PublisherMock),
		handoff:   new(HandoffMock),
		sched:     schedule.NewManual(orderTime),
	}
	f.uc = NewPaymentUsecase(PaymentDeps{
		DraftRepo: f.drafts,
		CartRepo:  f.carts,
		Orders:    f.orders,
		Notifier:  f.notifier,
		Publisher: f.publisher,
		Handoff:   f.handoff,
		Scheduler: f.sched,
		Clock:     f.sched,
		Latency:   2 * time.Second,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	return f
}

func sampleDraft() model.OrderDraft {
	return model.OrderDraft{
		ID:           "ORD-1740853800000-7",
		TableID:      "7",
		CustomerName: "Alice",
		Lines:        []model.OrderLine{{ItemID: "1", Name: "Classic Burger", UnitPrice: dec("12.99"), Quantity: 2}},
		Subtotal:     dec("25.98"),
		CreatedAt:    orderTime,
	}
}

func TestPaymentUsecase_Start_SettlesAfterLatency(t *testing.T) {
	ctx := context.Background()
	f := newPaymentFixture()
	draft := sampleDraft()

	f.drafts.On("Load", mock.Anything, "s1").Return(draft, nil)

	var appended model.PaidOrder
	f.orders.On("Append", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { appended = args.Get(1).(model.PaidOrder) }).
		Return(nil).Once()
	f.carts.On("Clear", mock.Anything, "s1").Return(nil).Once()
	f.drafts.On("Remove", mock.Anything, "s1").Return(nil).Once()
	f.notifier.On("Notify", mock.Anything, "s1", model.Notification{
		Title:       "Payment successful!",
		Description: "Your order has been placed and payment confirmed.",
		Variant:     model.NotificationDefault,
	}).Once()
	f.publisher.On("PublishOrderPaid", mock.Anything, mock.Anything).Return(nil).Once()
	f.handoff.On("HandOff", mock.Anything, "s1", draft.ID).Once()

	out, err := f.uc.Start(ctx, "s1", "card")
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStateProcessing, out.State)
	assert.Equal(t, draft.ID, out.OrderID)

	// 期限前は何も起きない
	f.sched.Advance(1999 * time.Millisecond)
	f.orders.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	assert.Equal(t, model.PaymentStateProcessing, f.uc.Status(ctx, "s1").State)

	f.sched.Advance(time.Millisecond)

	assert.Equal(t, model.PaymentStateSettled, f.uc.Status(ctx, "s1").State)
	assert.Equal(t, draft.ID, appended.ID)
	assert.Equal(t, model.OrderStatusPaid, appended.Status)
	assert.Equal(t, model.PaymentMethodCard, appended.PaymentMethod)
	assert.True(t, appended.PaidAt.Equal(orderTime.Add(2*time.Second)))

	f.orders.AssertExpectations(t)
	f.carts.AssertExpectations(t)
	f.drafts.AssertExpectations(t)
	f.notifier.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
	f.handoff.AssertExpectations(t)
}

func TestPaymentUsecase_Start_DefaultMethodIsQR(t *testing.T) {
	f := newPaymentFixture()
	f.drafts.On("Load", mock.Anything, "s1").Return(sampleDraft(), nil)

	out, err := f.uc.Start(context.Background(), "s1", "")
	require.NoError(t, err)
	assert.Equal(t, model.PaymentMethodQR, out.PaymentMethod)
}

func TestPaymentUsecase_Start_InvalidMethod(t *testing.T) {
	f := newPaymentFixture()

	_, err := f.uc.Start(context.Background(), "s1", "cash")
	assertHTTPError(t, err, http.StatusBadRequest, "invalid payment method")
}

func TestPaymentUsecase_Start_NoDraftRedirects(t *testing.T) {
	f := newPaymentFixture()
	f.drafts.On("Load", mock.Anything, "s1").Return(model.OrderDraft{}, repo.ErrNotFound)

	_, err := f.uc.Start(context.Background(), "s1", "qr")
	assertRedirect(t, err, "/")
	assert.Equal(t, 0, f.sched.Pending())
}

func TestPaymentUsecase_Start_WhileProcessingReturnsSameAttempt(t *testing.T) {
	ctx := context.Background()
	f := newPaymentFixture()
	f.drafts.On("Load", mock.Anything, "s1").Return(sampleDraft(), nil).Once()

	first, err := f.uc.Start(ctx, "s1", "mobile")
	require.NoError(t, err)
	second, err := f.uc.Start(ctx, "s1", "card")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, f.sched.Pending())
	f.drafts.AssertExpectations(t)
}

func TestPaymentUsecase_Status_Idle(t *testing.T) {
	f := newPaymentFixture()
	assert.Equal(t, PaymentStatusOutput{State: model.PaymentStateIdle}, f.uc.Status(context.Background(), "nobody"))
}

func TestPaymentUsecase_Settle_AppendFailsStaysProcessing(t *testing.T) {
	ctx := context.Background()
	f := newPaymentFixture()
	f.drafts.On("Load", mock.Anything, "s1").Return(sampleDraft(), nil)
	f.orders.On("Append", mock.Anything, mock.Anything).Return(errors.New("disk full"))

	_, err := f.uc.Start(ctx, "s1", "qr")
	require.NoError(t, err)
	f.sched.Advance(2 * time.Second)

	assert.Equal(t, model.PaymentStateProcessing, f.uc.Status(ctx, "s1").State)
	f.carts.AssertNotCalled(t, "Clear", mock.Anything, mock.Anything)
	f.handoff.AssertNotCalled(t, "HandOff", mock.Anything, mock.Anything, mock.Anything)
}

func TestPaymentUsecase_Settle_PublishFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()
	f := newPaymentFixture()
	f.drafts.On("Load", mock.Anything, "s1").Return(sampleDraft(), nil)
	f.orders.On("Append", mock.Anything, mock.Anything).Return(nil)
	f.carts.On("Clear", mock.Anything, "s1").Return(nil)
	f.drafts.On("Remove", mock.Anything, "s1").Return(nil)
	f.notifier.On("Notify", mock.Anything, "s1", mock.Anything)
	f.publisher.On("PublishOrderPaid", mock.Anything, mock.Anything).Return(errors.New("broker down"))
	f.handoff.On("HandOff", mock.Anything, "s1", mock.Anything).Once()

	_, err := f.uc.Start(ctx, "s1", "qr")
	require.NoError(t, err)
	f.sched.Advance(2 * time.Second)

	assert.Equal(t, model.PaymentStateSettled, f.uc.Status(ctx, "s1").State)
	f.handoff.AssertExpectations(t)
}

func TestPaymentUsecase_Settle_KeepsDraftRebuiltWhileProcessing(t *testing.T) {
	ctx := context.Background()
	f := newPaymentFixture()
	paid := sampleDraft()
	rebuilt := sampleDraft()
	rebuilt.ID = "ORD-1740853801500-7"

	f.drafts.On("Load", mock.Anything, "s1").Return(paid, nil).Once()
	f.drafts.On("Load", mock.Anything, "s1").Return(rebuilt, nil)
	f.orders.On("Append", mock.Anything, mock.Anything).Return(nil)
	f.carts.On("Clear", mock.Anything, "s1").Return(nil)
	f.notifier.On("Notify", mock.Anything, "s1", mock.Anything)
	f.publisher.On("PublishOrderPaid", mock.Anything, mock.Anything).Return(nil)
	f.handoff.On("HandOff", mock.Anything, "s1", paid.ID).Once()

	_, err := f.uc.Start(ctx, "s1", "qr")
	require.NoError(t, err)
	f.sched.Advance(2 * time.Second)

	assert.Equal(t, model.PaymentStateSettled, f.uc.Status(ctx, "s1").State)
	f.drafts.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything)
	f.handoff.AssertExpectations(t)
}

func TestPaymentUsecase_EvictIdle(t *testing.T) {
	ctx := context.Background()
	f := newPaymentFixture()
	f.drafts.On("Load", mock.Anything, mock.Anything).Return(sampleDraft(), nil)
	f.orders.On("Append", mock.Anything, mock.Anything).Return(nil)
	f.carts.On("Clear", mock.Anything, mock.Anything).Return(nil)
	f.drafts.On("Remove", mock.Anything, mock.Anything).Return(nil)
	f.notifier.On("Notify", mock.Anything, mock.Anything, mock.Anything)
	f.publisher.On("PublishOrderPaid", mock.Anything, mock.Anything).Return(nil)
	f.handoff.On("HandOff", mock.Anything, mock.Anything, mock.Anything)

	_, err := f.uc.Start(ctx, "done", "qr")
	require.NoError(t, err)
	f.sched.Advance(time.Hour)

	// 処理中の支払いは消さない
	_, err = f.uc.Start(ctx, "busy", "qr")
	require.NoError(t, err)

	assert.Equal(t, 1, f.uc.EvictIdle(f.sched.Now()))
	assert.Equal(t, model.PaymentStateIdle, f.uc.Status(ctx, "done").State)
	assert.Equal(t, model.PaymentStateProcessing, f.uc.Status(ctx, "busy").State)
}
