package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"tableorder/internal/domain/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// =====================
// Repository mocks
// =====================

type MenuRepoMock struct{ mock.Mock }

func (m *MenuRepoMock) List(ctx context.Context) ([]model.MenuItem, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.MenuItem)
	return items, args.Error(1)
}

func (m *MenuRepoMock) FindByID(ctx context.Context, id string) (model.MenuItem, error) {
	args := m.Called(ctx, id)
	it, _ := args.Get(0).(model.MenuItem)
	return it, args.Error(1)
}

func (m *MenuRepoMock) Categories() []string {
	args := m.Called()
	c, _ := args.Get(0).([]string)
	return c
}

type CartRepoMock struct{ mock.Mock }

func (m *CartRepoMock) Load(ctx context.Context, sessionID string) (model.Cart, error) {
	args := m.Called(ctx, sessionID)
	c, _ := args.Get(0).(model.Cart)
	// 返したカートを書き換えられても登録値が変わらないようにコピーする
	return model.Cart{Lines: append([]model.CartLine{}, c.Lines...)}, args.Error(1)
}

func (m *CartRepoMock) Save(ctx context.Context, sessionID string, cart model.Cart) error {
	args := m.Called(ctx, sessionID, cart)
	return args.Error(0)
}

func (m *CartRepoMock) Clear(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *CartRepoMock) LoadTableID(ctx context.Context, sessionID string) (string, error) {
	args := m.Called(ctx, sessionID)
	return args.String(0), args.Error(1)
}

func (m *CartRepoMock) SaveTableID(ctx context.Context, sessionID string, tableID string) error {
	args := m.Called(ctx, sessionID, tableID)
	return args.Error(0)
}

type DraftRepoMock struct{ mock.Mock }

func (m *DraftRepoMock) Load(ctx context.Context, sessionID string) (model.OrderDraft, error) {
	args := m.Called(ctx, sessionID)
	d, _ := args.Get(0).(model.OrderDraft)
	return d, args.Error(1)
}

func (m *DraftRepoMock) Save(ctx context.Context, sessionID string, draft model.OrderDraft) error {
	args := m.Called(ctx, sessionID, draft)
	return args.Error(0)
}

func (m *DraftRepoMock) Remove(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

type OrderStoreMock struct{ mock.Mock }

func (m *OrderStoreMock) Append(ctx context.Context, order model.PaidOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *OrderStoreMock) FindByID(ctx context.Context, orderID string) (model.PaidOrder, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.PaidOrder)
	return o, args.Error(1)
}

func (m *OrderStoreMock) List(ctx context.Context) ([]model.PaidOrder, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]model.PaidOrder)
	return orders, args.Error(1)
}

func (m *OrderStoreMock) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

// =====================
// Port mocks
// =====================

type NotifierMock struct{ mock.Mock }

func (m *NotifierMock) Notify(ctx context.Context, sessionID string, n model.Notification) {
	m.Called(ctx, sessionID, n)
}

type PublisherMock struct{ mock.Mock }

func (m *PublisherMock) PublishOrderPaid(ctx context.Context, order model.PaidOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

type HandoffMock struct{ mock.Mock }

func (m *HandoffMock) HandOff(ctx context.Context, sessionID string, orderID string) {
	m.Called(ctx, sessionID, orderID)
}

// validator パッケージは usecase を import するので、ここでは同じ規則の簡易版を使う
type stubValidator struct{}

func (stubValidator) ValidateCustomerName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("name required")
	}
	return nil
}

func (stubValidator) ValidateOrderLines(lines []model.OrderLine) error {
	if len(lines) == 0 {
		return errors.New("invalid input")
	}
	return nil
}

// =====================
// helpers
// =====================

var (
	burger = model.MenuItem{ID: "1", Name: "Classic Burger", Price: decimal.RequireFromString("12.99"), Category: "Main Course", Available: true}
	salad  = model.MenuItem{ID: "3", Name: "Caesar Salad", Price: decimal.RequireFromString("9.99"), Category: "Appetizers", Available: true}
	salmon = model.MenuItem{ID: "5", Name: "Grilled Salmon", Price: decimal.RequireFromString("18.99"), Category: "Main Course", Available: false}
)

func menuRepoWith(items ...model.MenuItem) *MenuRepoMock {
	m := new(MenuRepoMock)
	for _, it := range items {
		m.On("FindByID", mock.Anything, it.ID).Return(it, nil).Maybe()
	}
	return m
}

func assertHTTPError(t *testing.T, err error, status int, msg string) {
	t.Helper()
	require.Error(t, err)
	he, ok := AsHTTPError(err)
	require.True(t, ok, "expected HTTPError, got %T", err)
	assert.Equal(t, status, he.Status)
	if msg != "" {
		assert.Equal(t, msg, he.Message)
	}
}

func assertRedirect(t *testing.T, err error, location string) {
	t.Helper()
	require.Error(t, err)
	he, ok := AsHTTPError(err)
	require.True(t, ok, "expected HTTPError, got %T", err)
	assert.True(t, he.IsRedirect())
	assert.Equal(t, location, he.Location)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
