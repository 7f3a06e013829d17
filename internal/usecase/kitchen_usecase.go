package usecase

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"tableorder/internal/domain/model"
	repo "tableorder/internal/repository"
)

// KitchenUsecase は厨房側から注文ステータスを進めるための窓口。
type KitchenUsecase struct {
	orders repo.OrderStore
	log    *slog.Logger
}

func NewKitchenUsecase(orders repo.OrderStore, log *slog.Logger) *KitchenUsecase {
	if log == nil {
		log = slog.Default()
	}
	return &KitchenUsecase{orders: orders, log: log}
}

type KitchenUpdateStatusInput struct {
	Status string
}

type KitchenOrderOutput struct {
	model.PaidOrder
	StatusView model.StatusView `json:"status_view"`
	Totals     model.Totals     `json:"totals"`
}

// 注文一覧（支払い順）
func (u *KitchenUsecase) List(ctx context.Context) ([]KitchenOrderOutput, error) {
	orders, err := u.orders.List(ctx)
	if err != nil {
		return []KitchenOrderOutput{}, NewHTTPError(http.StatusInternalServerError, "storage error")
	}

	outs := make([]KitchenOrderOutput, 0, len(orders))
	for _, o := range orders {
		outs = append(outs, KitchenOrderOutput{
			PaidOrder:  o,
			StatusView: model.ProjectStatus(o.Status),
			Totals:     o.Totals(),
		})
	}
	return outs, nil
}

// ステータス更新（paid -> preparing -> ready の順だけ）
func (u *KitchenUsecase) UpdateStatus(ctx context.Context, orderID string, in KitchenUpdateStatusInput) error {
	if strings.TrimSpace(orderID) == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	newStatus := model.OrderStatus(strings.TrimSpace(in.Status))
	switch newStatus {
	case model.OrderStatusPaid, model.OrderStatusPreparing, model.OrderStatusReady:
		// OK
	default:
		return NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	o, err := u.orders.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "storage error")
	}

	// すでに同じなら何もしない（200）
	if o.Status == newStatus {
		return nil
	}
	if !model.CanAdvance(o.Status, newStatus) {
		return NewHTTPError(http.StatusBadRequest, "invalid status transition")
	}

	if err := u.orders.UpdateStatus(ctx, orderID, newStatus); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "storage error")
	}

	//監査ログ（before/after）
	u.log.InfoContext(ctx, "order status changed",
		"action", "UPDATE_ORDER_STATUS",
		"order_id", orderID,
		"before", string(o.Status),
		"after", string(newStatus),
	)
	return nil
}
