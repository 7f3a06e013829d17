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

type MenuUsecase struct {
	menuRepo repo.MenuRepository
	cartRepo repo.CartRepository
}

// DI
func NewMenuUsecase(menuRepo repo.MenuRepository, cartRepo repo.CartRepository) *MenuUsecase {
	return &MenuUsecase{
		menuRepo: menuRepo,
		cartRepo: cartRepo,
	}
}

// メニュー1品 + カートに入っている数量
type MenuItemOutput struct {
	model.MenuItem
	Quantity int `json:"quantity"`
}

type MenuCategoryOutput struct {
	Name  string           `json:"name"`
	Items []MenuItemOutput `json:"items"`
}

type TableMenuOutput struct {
	TableID    string               `json:"table_id"`
	Categories []MenuCategoryOutput `json:"categories"`
	TotalItems int                  `json:"total_items"`
	TotalPrice decimal.Decimal      `json:"total_price"`
}

// GET /table/:tableId
func (u *MenuUsecase) TableMenu(ctx context.Context, sessionID string, tableID string) (TableMenuOutput, error) {
	tableID = strings.TrimSpace(tableID)
	if tableID == "" {
		return TableMenuOutput{}, NewRedirectError("/")
	}

	items, err := u.menuRepo.List(ctx)
	if err != nil {
		return TableMenuOutput{}, NewHTTPError(http.StatusInternalServerError, "menu error")
	}
	cart, err := u.cartRepo.Load(ctx, sessionID)
	if err != nil {
		return TableMenuOutput{}, NewHTTPError(http.StatusInternalServerError, "storage error")
	}

	// カテゴリごとにまとめる（初出順）
	byCategory := map[string]int{}
	categories := make([]MenuCategoryOutput, 0, len(u.menuRepo.Categories()))
	for _, name := range u.menuRepo.Categories() {
		byCategory[name] = len(categories)
		categories = append(categories, MenuCategoryOutput{Name: name, Items: []MenuItemOutput{}})
	}
	for _, it := range items {
		i, ok := byCategory[it.Category]
		if !ok {
			byCategory[it.Category] = len(categories)
			categories = append(categories, MenuCategoryOutput{Name: it.Category})
			i = len(categories) - 1
		}
		categories[i].Items = append(categories[i].Items, MenuItemOutput{
			MenuItem: it,
			Quantity: cart.Quantity(it.ID),
		})
	}

	return TableMenuOutput{
		TableID:    tableID,
		Categories: categories,
		TotalItems: cart.TotalItems(),
		TotalPrice: cart.TotalPrice(u.lookup(ctx)),
	}, nil
}

// lookup はカタログ引きを model.MenuLookup に変換する。
func (u *MenuUsecase) lookup(ctx context.Context) model.MenuLookup {
	return catalogLookup(ctx, u.menuRepo)
}

func catalogLookup(ctx context.Context, menuRepo repo.MenuRepository) model.MenuLookup {
	return func(itemID string) (model.MenuItem, bool) {
		it, err := menuRepo.FindByID(ctx, itemID)
		if err != nil {
			return model.MenuItem{}, false
		}
		return it, true
	}
}

// findMenuItem は見つからなければ 404
func findMenuItem(ctx context.Context, menuRepo repo.MenuRepository, itemID string) (model.MenuItem, error) {
	if strings.TrimSpace(itemID) == "" {
		return model.MenuItem{}, NewHTTPError(http.StatusBadRequest, "invalid item id")
	}
	it, err := menuRepo.FindByID(ctx, itemID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.MenuItem{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.MenuItem{}, NewHTTPError(http.StatusInternalServerError, "menu error")
	}
	return it, nil
}
