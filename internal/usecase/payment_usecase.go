package usecase

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"tableorder/internal/domain/model"
	repo "tableorder/internal/repository"
	"tableorder/internal/schedule"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// PaymentUsecase は決済を模擬する。Start から latency 後に必ず成功する。
// 一度始めた支払いは取り消せない。
type PaymentUsecase struct {
	draftRepo repo.DraftRepository
	cartRepo  repo.CartRepository
	orders    repo.OrderStore
	notifier  Notifier
	publisher OrderEventPublisher
	handoff   OrderHandoff
	sched     schedule.Scheduler
	clock     schedule.Clock
	latency   time.Duration
	log       *slog.Logger

	mu       sync.Mutex
	attempts map[string]*paymentAttempt
}

type paymentAttempt struct {
	state   model.PaymentState
	orderID string
	method  model.PaymentMethod
	touched time.Time
}

type PaymentDeps struct {
	DraftRepo repo.DraftRepository
	CartRepo  repo.CartRepository
	Orders    repo.OrderStore
	Notifier  Notifier
	// nil ならイベントを送らない
	Publisher OrderEventPublisher
	Handoff   OrderHandoff
	Scheduler schedule.Scheduler
	Clock     schedule.Clock
	Latency   time.Duration
	Logger    *slog.Logger
}

func NewPaymentUsecase(d PaymentDeps) *PaymentUsecase {
	log := d.Logger
	if log == nil {
		log = slog.Default()
	}
	return &PaymentUsecase{
		draftRepo: d.DraftRepo,
		cartRepo:  d.CartRepo,
		orders:    d.Orders,
		notifier:  d.Notifier,
		publisher: d.Publisher,
		handoff:   d.Handoff,
		sched:     d.Scheduler,
		clock:     d.Clock,
		latency:   d.Latency,
		log:       log,
		attempts:  map[string]*paymentAttempt{},
	}
}

type PaymentStatusOutput struct {
	State         model.PaymentState  `json:"state"`
	OrderID       string              `json:"order_id,omitempty"`
	PaymentMethod model.PaymentMethod `json:"payment_method,omitempty"`
}

func (a *paymentAttempt) output() PaymentStatusOutput {
	return PaymentStatusOutput{State: a.state, OrderID: a.orderID, PaymentMethod: a.method}
}

// Start は下書きの支払いを始める。処理中なら進行中の支払いをそのまま返す。
func (u *PaymentUsecase) Start(ctx context.Context, sessionID string, method string) (PaymentStatusOutput, error) {
	ctx, span := tracer.Start(ctx, "payment.start")
	defer span.End()

	m, ok := model.ParsePaymentMethod(method)
	if !ok {
		return PaymentStatusOutput{}, NewHTTPError(http.StatusBadRequest, "invalid payment method")
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	if a, ok := u.attempts[sessionID]; ok && a.state == model.PaymentStateProcessing {
		return a.output(), nil
	}

	draft, err := u.draftRepo.Load(ctx, sessionID)
	if errors.Is(err, repo.ErrNotFound) {
		return PaymentStatusOutput{}, NewRedirectError("/")
	}
	if err != nil {
		return PaymentStatusOutput{}, NewHTTPError(http.StatusInternalServerError, "storage error")
	}

	a := &paymentAttempt{state: model.PaymentStateProcessing, orderID: draft.ID, method: m, touched: u.clock.Now()}
	u.attempts[sessionID] = a

	// リクエストが終わっても決済は完了させる
	settleCtx := context.WithoutCancel(ctx)
	u.sched.AfterFunc(u.latency, func() {
		u.settle(settleCtx, sessionID, draft, m)
	})

	span.SetAttributes(attribute.String("order.id", draft.ID), attribute.String("payment.method", string(m)))
	u.log.InfoContext(ctx, "payment started", "session_id", sessionID, "order_id", draft.ID, "method", string(m))
	return a.output(), nil
}

// GET /payment/status
func (u *PaymentUsecase) Status(ctx context.Context, sessionID string) PaymentStatusOutput {
	u.mu.Lock()
	defer u.mu.Unlock()

	if a, ok := u.attempts[sessionID]; ok {
		a.touched = u.clock.Now()
		return a.output()
	}
	return PaymentStatusOutput{State: model.PaymentStateIdle}
}

// EvictIdle は cutoff より前から触られていない支払いを忘れる。処理中のものは残す。
func (u *PaymentUsecase) EvictIdle(cutoff time.Time) int {
	u.mu.Lock()
	defer u.mu.Unlock()

	n := 0
	for sid, a := range u.attempts {
		if a.state != model.PaymentStateProcessing && a.touched.Before(cutoff) {
			delete(u.attempts, sid)
			n++
		}
	}
	return n
}

// settle は支払い済み注文を追加し、カートと下書きを消して確認画面へ引き渡す。
// 注文を保存できなかった場合は processing のまま残る。
func (u *PaymentUsecase) settle(ctx context.Context, sessionID string, draft model.OrderDraft, method model.PaymentMethod) {
	ctx, span := tracer.Start(ctx, "payment.settle")
	defer span.End()
	span.SetAttributes(attribute.String("order.id", draft.ID))

	order := model.PaidOrder{
		OrderDraft:    draft,
		PaymentMethod: method,
		Status:        model.OrderStatusPaid,
		PaidAt:        u.clock.Now(),
	}
	if err := u.orders.Append(ctx, order); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "append order")
		u.log.ErrorContext(ctx, "settle payment: append order", "session_id", sessionID, "order_id", draft.ID, "error", err)
		return
	}

	if err := u.cartRepo.Clear(ctx, sessionID); err != nil {
		u.log.ErrorContext(ctx, "settle payment: clear cart", "session_id", sessionID, "error", err)
	}
	u.removePaidDraft(ctx, sessionID, draft.ID)

	u.notifier.Notify(ctx, sessionID, model.Notification{
		Title:       "Payment successful!",
		Description: "Your order has been placed and payment confirmed.",
		Variant:     model.NotificationDefault,
	})

	if u.publisher != nil {
		if err := u.publisher.PublishOrderPaid(ctx, order); err != nil {
			u.log.WarnContext(ctx, "publish order paid", "order_id", order.ID, "error", err)
		}
	}

	u.mu.Lock()
	if a, ok := u.attempts[sessionID]; ok && a.orderID == draft.ID {
		a.state = model.PaymentStateSettled
		a.touched = u.clock.Now()
	}
	u.mu.Unlock()

	u.handoff.HandOff(ctx, sessionID, order.ID)
	u.log.InfoContext(ctx, "payment settled", "session_id", sessionID, "order_id", order.ID)
}

// removePaidDraft は支払った下書きだけを消す。処理中に作り直された下書きは残す。
func (u *PaymentUsecase) removePaidDraft(ctx context.Context, sessionID string, orderID string) {
	current, err := u.draftRepo.Load(ctx, sessionID)
	if errors.Is(err, repo.ErrNotFound) {
		return
	}
	if err != nil {
		u.log.ErrorContext(ctx, "settle payment: load current order", "session_id", sessionID, "error", err)
		return
	}
	if current.ID != orderID {
		u.log.InfoContext(ctx, "settle payment: keep newer draft", "session_id", sessionID, "order_id", orderID, "draft_id", current.ID)
		return
	}
	if err := u.draftRepo.Remove(ctx, sessionID); err != nil {
		u.log.ErrorContext(ctx, "settle payment: remove current order", "session_id", sessionID, "error", err)
	}
}
