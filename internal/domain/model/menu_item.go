package model

import "github.com/shopspring/decimal"

// メニュー商品。起動時に一度だけ読み込み、以後は変更しない。
type MenuItem struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Available   bool            `json:"available"`
}
