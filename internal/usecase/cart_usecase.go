package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"tableorder/internal/domain/model"
	repo "tableorder/internal/repository"

	"github.com/shopspring/decimal"
)

// CartUsecase はセッションのカートを読み込み、model.Cart で更新して保存する。
type CartUsecase struct {
	menuRepo repo.MenuRepository
	cartRepo repo.CartRepository
	notifier Notifier
}

func NewCartUsecase(menuRepo repo.MenuRepository, cartRepo repo.CartRepository, notifier Notifier) *CartUsecase {
	return &CartUsecase{
		menuRepo: menuRepo,
		cartRepo: cartRepo,
		notifier: notifier,
	}
}

// 価格は現在のカタログから引く
type CartLineOutput struct {
	ItemID      string          `json:"item_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

type CartOutput struct {
	TableID    string           `json:"table_id"`
	Lines      []CartLineOutput `json:"lines"`
	TotalItems int              `json:"total_items"`
	model.Totals
	// 空カートは画面上の分岐でありエラーではない
	Empty bool `json:"empty"`
}

// GET /cart
func (u *CartUsecase) GetCart(ctx context.Context, sessionID string) (CartOutput, error) {
	cart, err := u.cartRepo.Load(ctx, sessionID)
	if err != nil {
		return CartOutput{}, NewHTTPError(http.StatusInternalServerError, "storage error")
	}
	return u.buildCartOutput(ctx, sessionID, cart)
}

// AddItem は同じ商品なら数量+1。テーブルIDもあわせて保存する。
func (u *CartUsecase) AddItem(ctx context.Context, sessionID string, tableID string, itemID string) (CartOutput, error) {
	tableID = strings.TrimSpace(tableID)
	if tableID == "" {
		return CartOutput{}, NewRedirectError("/")
	}

	item, err := findMenuItem(ctx, u.menuRepo, itemID)
	if err != nil {
		return CartOutput{}, err
	}

	cart, err := u.cartRepo.Load(ctx, sessionID)
	if err != nil {
		return CartOutput{}, NewHTTPError(http.StatusInternalServerError, "storage error")
	}
	if err := cart.Add(item); err != nil {
		if errors.Is(err, model.ErrItemUnavailable) {
			return CartOutput{}, NewHTTPError(http.StatusConflict, "item unavailable")
		}
		return CartOutput{}, NewHTTPError(http.StatusInternalServerError, "cart error")
	}

	if err := u.cartRepo.Save(ctx, sessionID, cart); err != nil {
		return CartOutput{}, NewHTTPError(http.StatusInternalServerError, "storage error")
	}
	if err := u.cartRepo.SaveTableID(ctx, sessionID, tableID); err != nil {
		return CartOutput{}, NewHTTPError(http.StatusInternalServerError, "storage error")
	}

	u.notifier.Notify(ctx, sessionID, model.Notification{
		Title:       "Added to cart",
		Description: item.Name + " has been added to your cart.",
		Variant:     model.NotificationDefault,
	})

	return u.buildCartOutput(ctx, sessionID, cart)
}

// RemoveOne は数量-1（1なら明細ごと削除、無ければ何もしない）
func (u *CartUsecase) RemoveOne(ctx context.Context, sessionID string, itemID string) (CartOutput, error) {
	cart, err := u.cartRepo.Load(ctx, sessionID)
	if err != nil {
		return CartOutput{}, NewHTTPError(http.StatusInternalServerError, "storage error")
	}

	cart.RemoveOne(itemID)

	if err := u.cartRepo.Save(ctx, sessionID, cart); err != nil {
		return CartOutput{}, NewHTTPError(http.StatusInternalServerError, "storage error")
	}
	return u.buildCartOutput(ctx, sessionID, cart)
}

// SetQuantity は 0 なら DeleteItem と同じ（通知も出す）
func (u *CartUsecase) SetQuantity(ctx context.Context, sessionID string, itemID string, quantity int) (CartOutput, error) {
	if quantity < 0 {
		return CartOutput{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	cart, err := u.cartRepo.Load(ctx, sessionID)
	if err != nil {
		return CartOutput{}, NewHTTPError(http.StatusInternalServerError, "storage error")
	}
	removed, err := cart.SetQuantity(itemID, quantity)
	if err != nil {
		if errors.Is(err, model.ErrLineNotFound) {
			return CartOutput{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return CartOutput{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	if err := u.cartRepo.Save(ctx, sessionID, cart); err != nil {
		return CartOutput{}, NewHTTPError(http.StatusInternalServerError, "storage error")
	}
	if removed {
		u.notifyRemoved(ctx, sessionID)
	}
	return u.buildCartOutput(ctx, sessionID, cart)
}

// DeleteItem は数量に関係なく明細を消す。
func (u *CartUsecase) DeleteItem(ctx context.Context, sessionID string, itemID string) (CartOutput, error) {
	cart, err := u.cartRepo.Load(ctx, sessionID)
	if err != nil {
		return CartOutput{}, NewHTTPError(http.StatusInternalServerError, "storage error")
	}

	cart.Delete(itemID)

	if err := u.cartRepo.Save(ctx, sessionID, cart); err != nil {
		return CartOutput{}, NewHTTPError(http.StatusInternalServerError, "storage error")
	}
	u.notifyRemoved(ctx, sessionID)

	return u.buildCartOutput(ctx, sessionID, cart)
}

func (u *CartUsecase) notifyRemoved(ctx context.Context, sessionID string) {
	u.notifier.Notify(ctx, sessionID, model.Notification{
		Title:       "Item removed",
		Description: "Item has been removed from your cart.",
		Variant:     model.NotificationDefault,
	})
}

func (u *CartUsecase) buildCartOutput(ctx context.Context, sessionID string, cart model.Cart) (CartOutput, error) {
	tableID, err := u.cartRepo.LoadTableID(ctx, sessionID)
	if err != nil {
		return CartOutput{}, NewHTTPError(http.StatusInternalServerError, "storage error")
	}

	lookup := catalogLookup(ctx, u.menuRepo)
	lines := make([]CartLineOutput, 0, len(cart.Lines))
	for _, l := range cart.Lines {
		it, ok := lookup(l.ItemID)
		if !ok {
			// カタログから消えた商品は表示しない
			continue
		}
		lines = append(lines, CartLineOutput{
			ItemID:      it.ID,
			Name:        it.Name,
			Description: it.Description,
			UnitPrice:   it.Price,
			Quantity:    l.Quantity,
			LineTotal:   it.Price.Mul(decimal.NewFromInt(int64(l.Quantity))),
		})
	}

	return CartOutput{
		TableID:    tableID,
		Lines:      lines,
		TotalItems: cart.TotalItems(),
		Totals:     model.ComputeTotals(cart.TotalPrice(lookup)),
		Empty:      cart.IsEmpty(),
	}, nil
}
