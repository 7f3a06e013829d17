package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"tableorder/internal/domain/model"
	repo "tableorder/internal/repository"
	"tableorder/internal/schedule"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("tableorder/usecase")

// 同じIDの注文がストアにある場合に付ける連番の上限
const maxOrderIDSuffix = 100

// OrderUsecase はカートから支払い前の下書きを作る。
type OrderUsecase struct {
	menuRepo  repo.MenuRepository
	cartRepo  repo.CartRepository
	draftRepo repo.DraftRepository
	orders    repo.OrderStore
	validator OrderValidator
	notifier  Notifier
	clock     schedule.Clock
}

func NewOrderUsecase(
	menuRepo repo.MenuRepository,
	cartRepo repo.CartRepository,
	draftRepo repo.DraftRepository,
	orders repo.OrderStore,
	validator OrderValidator,
	notifier Notifier,
	clock schedule.Clock,
) *OrderUsecase {
	return &OrderUsecase{
		menuRepo:  menuRepo,
		cartRepo:  cartRepo,
		draftRepo: draftRepo,
		orders:    orders,
		validator: validator,
		notifier:  notifier,
		clock:     clock,
	}
}

// POST /cart/checkout の入力
type CheckoutInput struct {
	CustomerName        string
	SpecialInstructions string
}

// 支払い画面に出す下書き
type DraftOutput struct {
	model.OrderDraft
	TotalItems int          `json:"total_items"`
	Totals     model.Totals `json:"totals"`
}

func newDraftOutput(d model.OrderDraft) DraftOutput {
	return DraftOutput{
		OrderDraft: d,
		TotalItems: d.TotalItems(),
		Totals:     d.Totals(),
	}
}

// BuildDraft はカートの各明細を名前・単価ごと値でコピーして下書きにする。
// 前の未払い下書きは上書きされる。
func (u *OrderUsecase) BuildDraft(ctx context.Context, sessionID string, in CheckoutInput) (DraftOutput, error) {
	ctx, span := tracer.Start(ctx, "order.build_draft")
	defer span.End()

	tableID, err := u.cartRepo.LoadTableID(ctx, sessionID)
	if err != nil {
		return DraftOutput{}, NewHTTPError(http.StatusInternalServerError, "storage error")
	}
	if strings.TrimSpace(tableID) == "" {
		return DraftOutput{}, NewRedirectError("/")
	}

	cart, err := u.cartRepo.Load(ctx, sessionID)
	if err != nil {
		return DraftOutput{}, NewHTTPError(http.StatusInternalServerError, "storage error")
	}
	if cart.IsEmpty() {
		return DraftOutput{}, NewRedirectError(tableMenuPath(tableID))
	}

	// 名前必須（空白のみも不可）。何も保存しない。
	if err := u.validator.ValidateCustomerName(in.CustomerName); err != nil {
		u.notifier.Notify(ctx, sessionID, model.Notification{
			Title:       "Name required",
			Description: "Please enter your name to place the order.",
			Variant:     model.NotificationDestructive,
		})
		return DraftOutput{}, NewHTTPError(http.StatusUnprocessableEntity, "name required")
	}

	lookup := catalogLookup(ctx, u.menuRepo)
	lines := make([]model.OrderLine, 0, len(cart.Lines))
	subtotal := decimal.Zero
	for _, l := range cart.Lines {
		it, ok := lookup(l.ItemID)
		if !ok {
			continue
		}
		line := model.OrderLine{
			ItemID:    it.ID,
			Name:      it.Name,
			UnitPrice: it.Price,
			Quantity:  l.Quantity,
		}
		lines = append(lines, line)
		subtotal = subtotal.Add(line.LineTotal())
	}
	if len(lines) == 0 {
		return DraftOutput{}, NewRedirectError(tableMenuPath(tableID))
	}
	if err := u.validator.ValidateOrderLines(lines); err != nil {
		return DraftOutput{}, NewHTTPError(http.StatusBadRequest, "invalid order")
	}

	now := u.clock.Now()
	orderID, err := u.uniqueOrderID(ctx, model.NewOrderID(now, tableID))
	if err != nil {
		return DraftOutput{}, err
	}

	draft := model.OrderDraft{
		ID:                  orderID,
		TableID:             tableID,
		CustomerName:        strings.TrimSpace(in.CustomerName),
		SpecialInstructions: in.SpecialInstructions,
		Lines:               lines,
		Subtotal:            subtotal,
		CreatedAt:           now,
	}
	if err := u.draftRepo.Save(ctx, sessionID, draft); err != nil {
		return DraftOutput{}, NewHTTPError(http.StatusInternalServerError, "storage error")
	}

	span.SetAttributes(attribute.String("order.id", orderID), attribute.String("order.table_id", tableID))
	return newDraftOutput(draft), nil
}

// GET /payment
func (u *OrderUsecase) CurrentDraft(ctx context.Context, sessionID string) (DraftOutput, error) {
	d, err := u.draftRepo.Load(ctx, sessionID)
	if errors.Is(err, repo.ErrNotFound) {
		return DraftOutput{}, NewRedirectError("/")
	}
	if err != nil {
		return DraftOutput{}, NewHTTPError(http.StatusInternalServerError, "storage error")
	}
	return newDraftOutput(d), nil
}

// uniqueOrderID は既存の注文とぶつかったら -2, -3 ... を付ける。
func (u *OrderUsecase) uniqueOrderID(ctx context.Context, base string) (string, error) {
	id := base
	for n := 2; n <= maxOrderIDSuffix; n++ {
		_, err := u.orders.FindByID(ctx, id)
		if errors.Is(err, repo.ErrNotFound) {
			return id, nil
		}
		if err != nil {
			return "", NewHTTPError(http.StatusInternalServerError, "storage error")
		}
		id = fmt.Sprintf("%s-%d", base, n)
	}
	return "", NewHTTPError(http.StatusConflict, "order id conflict")
}
