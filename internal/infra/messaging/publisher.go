package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tableorder/internal/domain/model"

	amqp "github.com/rabbitmq/amqp091-go"
)

// 支払い完了イベント（キッチン側が購読する）
type OrderPaidEvent struct {
	OrderID       string              `json:"order_id"`
	TableID       string              `json:"table_id"`
	CustomerName  string              `json:"customer_name"`
	Items         []model.OrderLine   `json:"items"`
	Total         string              `json:"total"`
	PaymentMethod model.PaymentMethod `json:"payment_method"`
	PaidAt        time.Time           `json:"payment_time"`
}

func NewOrderPaidEvent(o model.PaidOrder) OrderPaidEvent {
	return OrderPaidEvent{
		OrderID:       o.ID,
		TableID:       o.TableID,
		CustomerName:  o.CustomerName,
		Items:         o.Lines,
		Total:         o.Totals().Total.StringFixed(2),
		PaymentMethod: o.PaymentMethod,
		PaidAt:        o.PaidAt,
	}
}

// RoutingKey は order.paid.<tableId>
func RoutingKey(tableID string) string {
	return fmt.Sprintf("order.paid.%s", tableID)
}

type OrderPublisher struct {
	ch *amqp.Channel
}

func NewOrderPublisher(ch *amqp.Channel) *OrderPublisher {
	return &OrderPublisher{ch: ch}
}

func (p *OrderPublisher) PublishOrderPaid(ctx context.Context, order model.PaidOrder) error {
	body, err := json.Marshal(NewOrderPaidEvent(order))
	if err != nil {
		return fmt.Errorf("could not marshal order event: %w", err)
	}

	return p.ch.PublishWithContext(ctx,
		ExchangeName,              // exchange
		RoutingKey(order.TableID), // routing key
		false,                     // mandatory
		false,                     // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    order.ID,
			Timestamp:    order.PaidAt,
			Body:         body,
		},
	)
}
