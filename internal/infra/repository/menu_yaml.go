package repository

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"tableorder/internal/domain/model"
	repo "tableorder/internal/repository"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed menu.yaml
var defaultMenu []byte

type menuFile struct {
	Items []menuFileItem `yaml:"items"`
}

type menuFileItem struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Price       string `yaml:"price"`
	Category    string `yaml:"category"`
	Available   bool   `yaml:"available"`
}

// 起動時に読み込んだら変更しないメニュー
type MenuCatalog struct {
	items []model.MenuItem
	byID  map[string]model.MenuItem
}

// LoadMenuCatalog は path が空なら埋め込みのメニューを読む。
func LoadMenuCatalog(path string) (*MenuCatalog, error) {
	data := defaultMenu
	if strings.TrimSpace(path) != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read menu file: %w", err)
		}
		data = b
	}
	return ParseMenuCatalog(data)
}

// ParseMenuCatalog はIDの重複・空の名前・負の価格を弾く。
func ParseMenuCatalog(data []byte) (*MenuCatalog, error) {
	var f menuFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse menu: %w", err)
	}

	c := &MenuCatalog{
		items: make([]model.MenuItem, 0, len(f.Items)),
		byID:  make(map[string]model.MenuItem, len(f.Items)),
	}
	for i, it := range f.Items {
		id := strings.TrimSpace(it.ID)
		if id == "" {
			return nil, fmt.Errorf("menu item %d: id required", i)
		}
		if _, dup := c.byID[id]; dup {
			return nil, fmt.Errorf("menu item %q: duplicate id", id)
		}
		if strings.TrimSpace(it.Name) == "" {
			return nil, fmt.Errorf("menu item %q: name required", id)
		}
		price, err := decimal.NewFromString(strings.TrimSpace(it.Price))
		if err != nil {
			return nil, fmt.Errorf("menu item %q: invalid price: %w", id, err)
		}
		if price.IsNegative() {
			return nil, fmt.Errorf("menu item %q: price must be >= 0", id)
		}

		item := model.MenuItem{
			ID:          id,
			Name:        strings.TrimSpace(it.Name),
			Description: it.Description,
			Price:       price,
			Category:    strings.TrimSpace(it.Category),
			Available:   it.Available,
		}
		c.items = append(c.items, item)
		c.byID[id] = item
	}
	return c, nil
}

func (c *MenuCatalog) List(ctx context.Context) ([]model.MenuItem, error) {
	out := make([]model.MenuItem, len(c.items))
	copy(out, c.items)
	return out, nil
}

func (c *MenuCatalog) FindByID(ctx context.Context, id string) (model.MenuItem, error) {
	it, ok := c.byID[id]
	if !ok {
		return model.MenuItem{}, repo.ErrNotFound
	}
	return it, nil
}

// Categories は最初に出てきた順でカテゴリを返す。
func (c *MenuCatalog) Categories() []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, it := range c.items {
		if seen[it.Category] {
			continue
		}
		seen[it.Category] = true
		out = append(out, it.Category)
	}
	return out
}
