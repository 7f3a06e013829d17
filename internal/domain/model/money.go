package model

import "github.com/shopspring/decimal"

// 消費税率（8%）
var TaxRate = decimal.RequireFromString("0.08")

// 表示用の金額。税と合計はそれぞれ小数2桁に丸める。
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

func ComputeTotals(subtotal decimal.Decimal) Totals {
	return Totals{
		Subtotal: subtotal.Round(2),
		Tax:      subtotal.Mul(TaxRate).Round(2),
		Total:    subtotal.Mul(decimal.NewFromInt(1).Add(TaxRate)).Round(2),
	}
}
