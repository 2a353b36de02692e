package bot

import (
	"context"

	"pizzaria-pdv-services/internal/llm"
	"pizzaria-pdv-services/internal/menu"
	"pizzaria-pdv-services/internal/order"
)

type State string

const (
	StateCollectingItems State = "collecting_items"
	StateAwaitingAddress State = "awaiting_address"
	StateAwaitingPayment State = "awaiting_payment"
	StateConfirming      State = "confirming"
)

// Conversation is the pending-order document for one phone number.
// Created on the first inbound message, deleted on finalization or
// cancellation. Finalized and cancelled are terminal states and are
// represented by the document's absence.
type Conversation struct {
	Phone       string         `json:"phoneNumber"`
	State       State          `json:"state"`
	History     []llm.Turn     `json:"history"`
	Lines       []order.Line   `json:"lines"`
	Subtotal    float64        `json:"subtotal"`
	AddressText string         `json:"addressText,omitempty"`
	Address     *order.Address `json:"address,omitempty"`
	IsPickup    bool           `json:"isPickup,omitempty"`
	Payment     *order.Payment `json:"payment,omitempty"`
}

func newConversation(phone string) *Conversation {
	return &Conversation{Phone: phone, State: StateCollectingItems}
}

func (c *Conversation) recordUser(text string) {
	c.History = append(c.History, llm.Turn{Role: "user", Content: text})
}

func (c *Conversation) recordAssistant(text string) {
	c.History = append(c.History, llm.Turn{Role: "assistant", Content: text})
}

type ConversationStore interface {
	Conversation(ctx context.Context, phone string) (*Conversation, error)
	SaveConversation(ctx context.Context, conv *Conversation) error
	DeleteConversation(ctx context.Context, phone string) error
}

type MenuSource interface {
	Catalog(ctx context.Context) (*menu.Catalog, error)
}

type OrderPlacer interface {
	Place(ctx context.Context, draft order.Draft) (*order.PlaceResult, error)
}
