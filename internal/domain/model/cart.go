package model

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrItemUnavailable = errors.New("item unavailable")
	ErrInvalidQuantity = errors.New("invalid quantity")
	ErrLineNotFound    = errors.New("cart line not found")
)

// 1商品につき明細は1つ。数量は常に1以上。
type Cart struct {
	Lines []CartLine `json:"lines"`
}

// MenuLookup は商品IDからカタログの商品を引く。
type MenuLookup func(itemID string) (MenuItem, bool)

// Add は同一商品なら数量+1、無ければ数量1で追加する。
func (c *Cart) Add(item MenuItem) error {
	if !item.Available {
		return ErrItemUnavailable
	}
	if i := c.index(item.ID); i >= 0 {
		c.Lines[i].Quantity++
		return nil
	}
	c.Lines = append(c.Lines, CartLine{ItemID: item.ID, Quantity: 1})
	return nil
}

// RemoveOne は数量-1。0になったら明細ごと消す。
func (c *Cart) RemoveOne(itemID string) {
	i := c.index(itemID)
	if i < 0 {
		return
	}
	if c.Lines[i].Quantity > 1 {
		c.Lines[i].Quantity--
		return
	}
	c.removeAt(i)
}

// SetQuantity は n>0 なら数量を上書き、n==0 なら Delete と同じ。
// 戻り値は明細を削除したかどうか。
func (c *Cart) SetQuantity(itemID string, n int) (bool, error) {
	if n < 0 {
		return false, ErrInvalidQuantity
	}
	if n == 0 {
		c.Delete(itemID)
		return true, nil
	}
	i := c.index(itemID)
	if i < 0 {
		return false, ErrLineNotFound
	}
	c.Lines[i].Quantity = n
	return false, nil
}

// Delete は数量に関係なく明細を消す。
func (c *Cart) Delete(itemID string) {
	if i := c.index(itemID); i >= 0 {
		c.removeAt(i)
	}
}

func (c Cart) Quantity(itemID string) int {
	if i := c.index(itemID); i >= 0 {
		return c.Lines[i].Quantity
	}
	return 0
}

func (c Cart) TotalItems() int {
	total := 0
	for _, l := range c.Lines {
		total += l.Quantity
	}
	return total
}

func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// TotalPrice は現在のカタログ価格で合計する。カタログに無い明細は数えない。
func (c Cart) TotalPrice(lookup MenuLookup) decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines {
		item, ok := lookup(l.ItemID)
		if !ok {
			continue
		}
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total
}

func (c Cart) index(itemID string) int {
	for i, l := range c.Lines {
		if l.ItemID == itemID {
			return i
		}
	}
	return -1
}

func (c *Cart) removeAt(i int) {
	c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
}
