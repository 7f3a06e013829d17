package usecase

import (
	"context"

	"tableorder/internal/domain/model"
)

// トースト通知の送り先
type Notifier interface {
	Notify(ctx context.Context, sessionID string, n model.Notification)
}

// 支払い完了イベントの送信先（未設定なら送らない）
type OrderEventPublisher interface {
	PublishOrderPaid(ctx context.Context, order model.PaidOrder) error
}

// 支払い完了後に注文IDを確認画面へ渡す（URLには載せない）
type OrderHandoff interface {
	HandOff(ctx context.Context, sessionID string, orderID string)
}

// 注文確定の入力チェック（validator パッケージが実装）
type OrderValidator interface {
	ValidateCustomerName(name string) error
	ValidateOrderLines(lines []model.OrderLine) error
}
