package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"restaurant-orders/internal/connections/rabbitmq"
	"restaurant-orders/internal/domain"
)

const (
	KitchenExchange = "kitchen_topic"

	orderPlacedKey = "kitchen.order.placed"
	itemServedKey  = "kitchen.item.served"
)

// Publisher pushes kitchen events out to waiters/kitchen displays. The
// order core treats publishing as best-effort: state lives in the store,
// events are a notification channel on top of it.
type Publisher interface {
	OrderPlaced(ctx context.Context, evt domain.OrderPlacedEvent) error
	ItemServed(ctx context.Context, evt domain.ItemServedEvent) error
}

type RabbitPublisher struct {
	client *rabbitmq.Client
}

func NewRabbitPublisher(client *rabbitmq.Client) (*RabbitPublisher, error) {
	if err := client.ExchangeDeclare(KitchenExchange); err != nil {
		return nil, fmt.Errorf("failed to declare %s exchange: %w", KitchenExchange, err)
	}
	return &RabbitPublisher{client: client}, nil
}

func (p *RabbitPublisher) OrderPlaced(ctx context.Context, evt domain.OrderPlacedEvent) error {
	return p.publish(ctx, orderPlacedKey, evt)
}

func (p *RabbitPublisher) ItemServed(ctx context.Context, evt domain.ItemServedEvent) error {
	return p.publish(ctx, itemServedKey, evt)
}

func (p *RabbitPublisher) publish(ctx context.Context, key string, msg any) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return p.client.Publish(ctx, KitchenExchange, key, body, true)
}

// Noop is used when RabbitMQ is disabled in config, and in tests.
type Noop struct{}

func (Noop) OrderPlaced(context.Context, domain.OrderPlacedEvent) error { return nil }
func (Noop) ItemServed(context.Context, domain.ItemServedEvent) error   { return nil }
