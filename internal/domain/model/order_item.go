package model

import "github.com/shopspring/decimal"

// 注文明細のスナップショット
// 下書き作成時点の名前と単価を値でコピーする。後からカートやカタログが変わっても影響しない。
type OrderLine struct {
	ItemID    string          `json:"item_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

func (l OrderLine) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
