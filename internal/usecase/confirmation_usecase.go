package usecase

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"tableorder/internal/domain/model"
	repo "tableorder/internal/repository"
	"tableorder/internal/schedule"
)

// ConfirmationUsecase は支払い後の確認画面。
// 注文IDは PaymentUsecase から HandOff で受け取り、URL からは受け取らない。
type ConfirmationUsecase struct {
	orders      repo.OrderStore
	sched       schedule.Scheduler
	clock       schedule.Clock
	etaStart    int
	etaInterval time.Duration

	mu    sync.Mutex
	views map[string]*confirmationView
}

type confirmationView struct {
	orderID   string
	countdown *Countdown
	touched   time.Time
}

func NewConfirmationUsecase(orders repo.OrderStore, sched schedule.Scheduler, clock schedule.Clock, etaStart int, etaInterval time.Duration) *ConfirmationUsecase {
	return &ConfirmationUsecase{
		orders:      orders,
		sched:       sched,
		clock:       clock,
		etaStart:    etaStart,
		etaInterval: etaInterval,
		views:       map[string]*confirmationView{},
	}
}

type ConfirmationOutput struct {
	Order      model.PaidOrder  `json:"order"`
	Status     model.StatusView `json:"status_view"`
	TotalItems int              `json:"total_items"`
	Totals     model.Totals     `json:"totals"`
	ETAMinutes int              `json:"eta_minutes"`
}

// HandOff は前の確認画面があれば片付けてから新しい注文IDを覚える。
func (u *ConfirmationUsecase) HandOff(ctx context.Context, sessionID string, orderID string) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if v, ok := u.views[sessionID]; ok && v.countdown != nil {
		v.countdown.Stop()
	}
	u.views[sessionID] = &confirmationView{orderID: orderID, touched: u.clock.Now()}
}

// GET /order-confirmation
// カウントダウンが無ければここで開始する。
func (u *ConfirmationUsecase) View(ctx context.Context, sessionID string) (ConfirmationOutput, error) {
	for {
		v, order, err := u.current(ctx, sessionID)
		if err != nil {
			return ConfirmationOutput{}, err
		}

		u.mu.Lock()
		if u.views[sessionID] != v {
			// 注文を読んでいる間に差し替わった（HandOff / 期限切れ）。読み直す。
			u.mu.Unlock()
			continue
		}
		if v.countdown == nil {
			v.countdown = StartCountdown(u.sched, u.etaStart, u.etaInterval, nil)
		}
		eta := v.countdown.Remaining()
		u.mu.Unlock()

		return newConfirmationOutput(order, eta), nil
	}
}

// DELETE /order-confirmation
// 画面を閉じたらカウントダウンを止める。注文IDは残るので再表示できる。
func (u *ConfirmationUsecase) Close(ctx context.Context, sessionID string) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if v, ok := u.views[sessionID]; ok && v.countdown != nil {
		v.countdown.Stop()
		v.countdown = nil
	}
}

// Stream は接続ごとに新しいカウントダウンを作り、ctx が終わるまで push に残り分数を渡す。
// 最初の値は開始直後に1回送る。
func (u *ConfirmationUsecase) Stream(ctx context.Context, sessionID string, push func(ConfirmationOutput) error) error {
	_, order, err := u.current(ctx, sessionID)
	if err != nil {
		return err
	}

	if err := push(newConfirmationOutput(order, u.etaStart)); err != nil {
		return err
	}

	failed := make(chan error, 1)
	cd := StartCountdown(u.sched, u.etaStart, u.etaInterval, func(remaining int) {
		if err := push(newConfirmationOutput(order, remaining)); err != nil {
			select {
			case failed <- err:
			default:
			}
		}
	})
	defer cd.Stop()

	select {
	case <-ctx.Done():
		return nil
	case err := <-failed:
		return err
	}
}

// Current は引き渡された注文を返す。カウントダウンには触らない。
func (u *ConfirmationUsecase) Current(ctx context.Context, sessionID string) (model.PaidOrder, error) {
	_, order, err := u.current(ctx, sessionID)
	return order, err
}

// EvictIdle は cutoff より前から触られていない確認画面を片付ける。
// 閉じられずに放置された画面のカウントダウンもここで止まる。
func (u *ConfirmationUsecase) EvictIdle(cutoff time.Time) int {
	u.mu.Lock()
	defer u.mu.Unlock()

	n := 0
	for sid, v := range u.views {
		if !v.touched.Before(cutoff) {
			continue
		}
		if v.countdown != nil {
			v.countdown.Stop()
		}
		delete(u.views, sid)
		n++
	}
	return n
}

func (u *ConfirmationUsecase) current(ctx context.Context, sessionID string) (*confirmationView, model.PaidOrder, error) {
	u.mu.Lock()
	v, ok := u.views[sessionID]
	if ok {
		v.touched = u.clock.Now()
	}
	u.mu.Unlock()
	if !ok {
		return nil, model.PaidOrder{}, NewRedirectError("/")
	}

	order, err := u.findOrder(ctx, v.orderID)
	if err != nil {
		return nil, model.PaidOrder{}, err
	}
	return v, order, nil
}

func (u *ConfirmationUsecase) findOrder(ctx context.Context, orderID string) (model.PaidOrder, error) {
	order, err := u.orders.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.PaidOrder{}, NewRedirectError("/")
	}
	if err != nil {
		return model.PaidOrder{}, NewHTTPError(http.StatusInternalServerError, "storage error")
	}
	return order, nil
}

func newConfirmationOutput(order model.PaidOrder, eta int) ConfirmationOutput {
	return ConfirmationOutput{
		Order:      order,
		Status:     model.ProjectStatus(order.Status),
		TotalItems: order.TotalItems(),
		Totals:     order.Totals(),
		ETAMinutes: eta,
	}
}
