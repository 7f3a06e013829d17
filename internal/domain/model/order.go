package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
)

type PaymentMethod string

const (
	PaymentMethodQR     PaymentMethod = "qr"
	PaymentMethodCard   PaymentMethod = "card"
	PaymentMethodMobile PaymentMethod = "mobile"
)

// ParsePaymentMethod は空なら qr を返す。
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	switch PaymentMethod(s) {
	case "":
		return PaymentMethodQR, true
	case PaymentMethodQR, PaymentMethodCard, PaymentMethodMobile:
		return PaymentMethod(s), true
	default:
		return "", false
	}
}

const OrderIDPrefix = "ORD"

// NewOrderID は ORD-<unix millis>-<tableId> を作る。
// 同じテーブルから同じミリ秒に作ると衝突する。
func NewOrderID(now time.Time, tableID string) string {
	return fmt.Sprintf("%s-%d-%s", OrderIDPrefix, now.UnixMilli(), tableID)
}

// 支払い前の注文下書き。作成後は変更しない。
type OrderDraft struct {
	ID                  string          `json:"order_id"`
	TableID             string          `json:"table_id"`
	CustomerName        string          `json:"customer_name"`
	SpecialInstructions string          `json:"special_instructions"`
	Lines               []OrderLine     `json:"items"`
	Subtotal            decimal.Decimal `json:"subtotal"`
	CreatedAt           time.Time       `json:"order_time"`
}

func (d OrderDraft) TotalItems() int {
	total := 0
	for _, l := range d.Lines {
		total += l.Quantity
	}
	return total
}

func (d OrderDraft) Totals() Totals {
	return ComputeTotals(d.Subtotal)
}

// 支払い済み注文。下書きを昇格させたもので、注文ストアに1度だけ追加される。
type PaidOrder struct {
	OrderDraft
	PaymentMethod PaymentMethod `json:"payment_method"`
	Status        OrderStatus   `json:"status"`
	PaidAt        time.Time     `json:"payment_time"`
}
