package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"pizzaria-pdv-services/internal/order"
)

const (
	EventsExchange = "pdv.events"

	KitchenQueue  = "pdv.kitchen.notify"
	KitchenDLQ    = "pdv.kitchen.notify.dlq"
	KitchenDeadRK = "dead"

	OrderCreatedRK  = "order.created"
	OrderArchivedRK = "order.archived"
)

type OrderEvent struct {
	Type      string       `json:"type"`
	OrderID   string       `json:"orderId"`
	Customer  string       `json:"customerName"`
	Total     float64      `json:"finalTotal"`
	Pickup    bool         `json:"isPickup"`
	Lines     []order.Line `json:"lines,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
}

// EnsureEventsTopology declares the events exchange plus the kitchen
// notification queue with its dead-letter binding.
func EnsureEventsTopology(qc *Client) error {
	if qc == nil {
		return nil
	}

	if err := qc.EnsureExchange(EventsExchange, "topic"); err != nil {
		return err
	}

	if _, err := qc.EnsureQueue(KitchenDLQ, nil); err != nil {
		return err
	}
	if err := qc.BindQueue(KitchenDLQ, EventsExchange, KitchenDeadRK); err != nil {
		return err
	}

	_, err := qc.EnsureQueue(KitchenQueue, amqp.Table{
		"x-dead-letter-exchange":    EventsExchange,
		"x-dead-letter-routing-key": KitchenDeadRK,
	})
	if err != nil {
		return err
	}
	return qc.BindQueue(KitchenQueue, EventsExchange, "order.*")
}

// Publisher emits order lifecycle events. A nil Publisher is a no-op so
// HTTP handlers stay functional when the broker is down.
type Publisher struct {
	client *Client
}

func NewPublisher(client *Client) *Publisher {
	if client == nil {
		return nil
	}
	return &Publisher{client: client}
}

func (p *Publisher) PublishOrderCreated(ctx context.Context, o *order.Order) error {
	if p == nil {
		return nil
	}
	return p.client.PublishJSON(ctx, EventsExchange, OrderCreatedRK, eventFromOrder("order.created", o))
}

func (p *Publisher) PublishOrderArchived(ctx context.Context, o *order.Order) error {
	if p == nil {
		return nil
	}
	return p.client.PublishJSON(ctx, EventsExchange, OrderArchivedRK, eventFromOrder("order.archived", o))
}

func eventFromOrder(kind string, o *order.Order) OrderEvent {
	return OrderEvent{
		Type:      kind,
		OrderID:   o.ID,
		Customer:  o.Customer.Name,
		Total:     o.Totals.FinalTotal,
		Pickup:    o.Customer.IsPickup,
		Lines:     o.Lines,
		CreatedAt: o.CreatedAt,
	}
}

// TextSender is the outbound messaging surface the kitchen notifier needs.
type TextSender interface {
	SendText(ctx context.Context, to, body string) error
}

// KitchenNotifier forwards order.created events to the store's WhatsApp
// number so the kitchen sees new orders without opening the dashboard.
type KitchenNotifier struct {
	sender     TextSender
	storePhone string
	logger     *zap.Logger
}

func NewKitchenNotifier(sender TextSender, storePhone string, logger *zap.Logger) *KitchenNotifier {
	return &KitchenNotifier{sender: sender, storePhone: storePhone, logger: logger}
}

func (n *KitchenNotifier) Handle(ctx context.Context, body []byte) error {
	var evt OrderEvent
	if err := json.Unmarshal(body, &evt); err != nil {
		return err
	}
	if evt.Type != "order.created" {
		return nil
	}
	if n.storePhone == "" || n.sender == nil {
		n.logger.Debug("kitchen notification skipped, no store phone configured",
			zap.String("orderId", evt.OrderID))
		return nil
	}

	if err := n.sender.SendText(ctx, n.storePhone, kitchenMessage(evt)); err != nil {
		return fmt.Errorf("send kitchen notification: %w", err)
	}
	n.logger.Info("kitchen notified", zap.String("orderId", evt.OrderID))
	return nil
}

func kitchenMessage(evt OrderEvent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🛎️ Novo pedido %s\nCliente: %s\n", evt.OrderID, evt.Customer)
	for _, line := range evt.Lines {
		qty := line.Quantity
		if qty <= 0 {
			qty = 1
		}
		fmt.Fprintf(&b, "• %dx %s\n", qty, line.Name)
	}
	if evt.Pickup {
		b.WriteString("Retirada no balcão\n")
	}
	fmt.Fprintf(&b, "Total: %s", order.FormatBRL(evt.Total))
	return b.String()
}
