package validator

import (
	"strings"
	"testing"

	"tableorder/internal/domain/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOrderValidator_ValidateCustomerName(t *testing.T) {
	v := NewOrderValidator()

	assert.NoError(t, v.ValidateCustomerName("Alice"))
	assert.NoError(t, v.ValidateCustomerName("  Alice  "))
	assert.ErrorIs(t, v.ValidateCustomerName(""), ErrNameRequired)
	assert.ErrorIs(t, v.ValidateCustomerName("   \t"), ErrNameRequired)
	assert.NoError(t, v.ValidateCustomerName(strings.Repeat("a", 101)))
	assert.NoError(t, v.ValidateCustomerName(strings.Repeat("名", 500)))
}

func TestOrderValidator_ValidateOrderLines(t *testing.T) {
	v := NewOrderValidator()
	price := decimal.RequireFromString("12.99")
	ok := model.OrderLine{ItemID: "1", Name: "Classic Burger", UnitPrice: price, Quantity: 2}

	cases := []struct {
		name  string
		lines []model.OrderLine
		valid bool
	}{
		{"ok", []model.OrderLine{ok}, true},
		{"empty", nil, false},
		{"no item id", []model.OrderLine{{Name: "x", UnitPrice: price, Quantity: 1}}, false},
		{"no name", []model.OrderLine{{ItemID: "1", UnitPrice: price, Quantity: 1}}, false},
		{"zero quantity", []model.OrderLine{{ItemID: "1", Name: "x", UnitPrice: price, Quantity: 0}}, false},
		{"negative price", []model.OrderLine{{ItemID: "1", Name: "x", UnitPrice: price.Neg(), Quantity: 1}}, false},
		{"duplicate item", []model.OrderLine{ok, ok}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.ValidateOrderLines(tc.lines)
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidInput)
			}
		})
	}
}
