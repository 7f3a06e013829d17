package validator

import (
	"errors"
	"strings"

	"tableorder/internal/domain/model"
	"tableorder/internal/usecase"
)

var (
	// 入力が不正
	ErrInvalidInput = errors.New("invalid input")

	// 名前が空
	ErrNameRequired = errors.New("name required")
)

type orderValidator struct{}

// Usecaseは interface を依存注入
func NewOrderValidator() usecase.OrderValidator {
	return &orderValidator{}
}

// 注文者名を検証（空白のみは空扱い）。長さの上限は無い。
func (v *orderValidator) ValidateCustomerName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameRequired
	}
	return nil
}

// 注文明細を検証
// 商品ID・名前・単価・数量が揃っていて、同じ商品が2行ないこと。
func (v *orderValidator) ValidateOrderLines(lines []model.OrderLine) error {
	if len(lines) == 0 {
		return ErrInvalidInput
	}

	seen := make(map[string]bool, len(lines))
	for _, l := range lines {
		if strings.TrimSpace(l.ItemID) == "" || strings.TrimSpace(l.Name) == "" {
			return ErrInvalidInput
		}
		if l.Quantity < 1 {
			return ErrInvalidInput
		}
		if l.UnitPrice.IsNegative() {
			return ErrInvalidInput
		}
		if seen[l.ItemID] {
			return ErrInvalidInput
		}
		seen[l.ItemID] = true
	}
	return nil
}
