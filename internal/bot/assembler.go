package bot

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"pizzaria-pdv-services/internal/llm"
	"pizzaria-pdv-services/internal/order"
)

// Assembler drives one WhatsApp conversation per phone number through
// the ordering flow: collecting_items, awaiting_address, awaiting_payment,
// confirming. Upstream failures (menu fetch, LLM, order placement) return
// an error without touching the stored conversation, so the customer can
// simply resend the message.
type Assembler struct {
	store  ConversationStore
	menus  MenuSource
	ai     llm.Interpreter
	orders OrderPlacer
	logger *zap.Logger
}

func NewAssembler(store ConversationStore, menus MenuSource, ai llm.Interpreter, orders OrderPlacer, logger *zap.Logger) *Assembler {
	return &Assembler{store: store, menus: menus, ai: ai, orders: orders, logger: logger}
}

// HandleMessage processes one inbound text and returns the reply to send.
func (a *Assembler) HandleMessage(ctx context.Context, phone, text string) (string, error) {
	text = strings.TrimSpace(text)

	conv, err := a.store.Conversation(ctx, phone)
	if err != nil {
		return "", fmt.Errorf("load conversation: %w", err)
	}
	fresh := conv == nil
	if fresh {
		conv = newConversation(phone)
	}

	if text == "" {
		return a.rePrompt(conv), nil
	}

	if isCancel(text) {
		if fresh {
			return msgGreeting, nil
		}
		if err := a.store.DeleteConversation(ctx, phone); err != nil {
			return "", fmt.Errorf("delete conversation: %w", err)
		}
		return msgCancelled, nil
	}

	switch conv.State {
	case StateCollectingItems, "":
		return a.handleCollecting(ctx, conv, text)
	case StateAwaitingAddress:
		return a.handleAddress(ctx, conv, text)
	case StateAwaitingPayment:
		return a.handlePayment(ctx, conv, text)
	case StateConfirming:
		return a.handleConfirming(ctx, conv, text)
	default:
		a.logger.Warn("unknown conversation state, resetting",
			zap.String("phone", phone), zap.String("state", string(conv.State)))
		conv.State = StateCollectingItems
		return a.handleCollecting(ctx, conv, text)
	}
}

func (a *Assembler) rePrompt(conv *Conversation) string {
	switch conv.State {
	case StateAwaitingAddress:
		return msgAskAddress
	case StateAwaitingPayment:
		return msgAskPayment
	case StateConfirming:
		return orderSummary(conv)
	default:
		if len(conv.Lines) == 0 && len(conv.History) == 0 {
			return msgGreeting
		}
		return msgAskItems
	}
}

func (a *Assembler) handleCollecting(ctx context.Context, conv *Conversation, text string) (string, error) {
	catalog, err := a.menus.Catalog(ctx)
	if err != nil {
		return "", fmt.Errorf("fetch catalog: %w", err)
	}

	result, err := a.ai.Interpret(ctx, llm.Request{
		Message:      text,
		History:      conv.History,
		CurrentLines: conv.Lines,
		Catalog:      catalog,
	})
	if err != nil {
		return "", fmt.Errorf("interpret message: %w", err)
	}

	if result.Action == llm.ActionAnswerQuestion && result.Answer != "" {
		return a.reply(ctx, conv, text, result.Answer)
	}

	lines := order.ResolveAll(result.Items, catalog)
	if len(lines) == 0 && len(conv.Lines) == 0 {
		reply := result.ClarificationQuestion
		if reply == "" {
			reply = msgAskItems
		}
		return a.reply(ctx, conv, text, reply)
	}

	conv.Lines = append(conv.Lines, lines...)
	conv.Subtotal = order.ComputeTotals(conv.Lines, 0, 0).Subtotal

	// The interpreter may have captured the address or payment from the
	// same message; advance as far as the captured data allows.
	conv.State = StateAwaitingAddress
	if addr := strings.TrimSpace(result.Address); addr != "" {
		applyAddress(conv, addr)
		conv.State = StateAwaitingPayment
		if pm := strings.TrimSpace(result.PaymentMethod); pm != "" {
			if p := order.ParsePayment(pm, conv.Subtotal); !p.IsZero() {
				conv.Payment = &p
				conv.State = StateConfirming
			}
		}
	}

	var reply string
	switch conv.State {
	case StateConfirming:
		reply = itemsSummary(conv.Lines) + "\n" + orderSummary(conv)
	case StateAwaitingPayment:
		reply = itemsSummary(conv.Lines) + "\n" + msgAskPayment
	default:
		reply = itemsSummary(conv.Lines) + "\n" + msgAskAddress
	}
	return a.reply(ctx, conv, text, reply)
}

func (a *Assembler) handleAddress(ctx context.Context, conv *Conversation, text string) (string, error) {
	applyAddress(conv, text)
	conv.State = StateAwaitingPayment
	return a.reply(ctx, conv, text, msgAskPayment)
}

func (a *Assembler) handlePayment(ctx context.Context, conv *Conversation, text string) (string, error) {
	p := order.ParsePayment(text, conv.Subtotal)
	if p.IsZero() {
		return a.reply(ctx, conv, text, msgAskPaymentAgain)
	}
	conv.Payment = &p
	conv.State = StateConfirming
	return a.reply(ctx, conv, text, orderSummary(conv))
}

func (a *Assembler) handleConfirming(ctx context.Context, conv *Conversation, text string) (string, error) {
	switch {
	case isAffirmative(text):
		return a.finalize(ctx, conv, text)
	case isNegative(text):
		if err := a.store.DeleteConversation(ctx, conv.Phone); err != nil {
			return "", fmt.Errorf("delete conversation: %w", err)
		}
		return msgCancelled, nil
	default:
		return a.reply(ctx, conv, text, msgAskConfirm)
	}
}

func (a *Assembler) finalize(ctx context.Context, conv *Conversation, text string) (string, error) {
	if conv.Payment == nil {
		// A stale overwrite can leave a confirming document without a
		// payment; step back instead of crashing the turn.
		conv.State = StateAwaitingPayment
		return a.reply(ctx, conv, text, msgAskPayment)
	}
	draft := order.Draft{
		Customer: order.Customer{
			Name:     customerName(conv.Phone),
			Phone:    conv.Phone,
			IsPickup: conv.IsPickup,
		},
		Address:     conv.Address,
		Lines:       conv.Lines,
		Totals:      order.ComputeTotals(conv.Lines, 0, 0),
		Payment:     *conv.Payment,
		Observation: "Pedido via WhatsApp",
	}

	res, err := a.orders.Place(ctx, draft)
	if err != nil {
		return "", fmt.Errorf("place order: %w", err)
	}
	if res.PersistErr != nil {
		return "", res.PersistErr
	}

	if err := a.store.DeleteConversation(ctx, conv.Phone); err != nil {
		a.logger.Warn("delete conversation after finalize failed",
			zap.String("phone", conv.Phone), zap.Error(err))
	}

	if res.Duplicate != nil {
		return duplicateMessage(res.Duplicate), nil
	}
	return finalizedMessage(res.Order), nil
}

// reply appends the exchanged turns and persists the conversation before
// returning the outbound text.
func (a *Assembler) reply(ctx context.Context, conv *Conversation, inbound, outbound string) (string, error) {
	conv.recordUser(inbound)
	conv.recordAssistant(outbound)
	if err := a.store.SaveConversation(ctx, conv); err != nil {
		return "", fmt.Errorf("save conversation: %w", err)
	}
	return outbound, nil
}

func applyAddress(conv *Conversation, text string) {
	conv.AddressText = text
	if isPickupText(text) {
		conv.IsPickup = true
		conv.Address = nil
		return
	}
	conv.IsPickup = false
	conv.Address = parseAddress(text)
}

// parseAddress splits a free-form address on commas. The verbatim text is
// kept on the conversation; this decomposition is best effort.
func parseAddress(text string) *order.Address {
	parts := strings.Split(text, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	addr := &order.Address{Street: parts[0]}
	rest := parts[1:]
	if len(rest) > 0 && hasDigit(rest[0]) && len(rest[0]) <= 12 {
		addr.Number = rest[0]
		rest = rest[1:]
	}
	if len(rest) > 0 {
		addr.Neighborhood = rest[0]
		rest = rest[1:]
	}
	if len(rest) > 0 {
		addr.Reference = strings.Join(rest, ", ")
	}
	return addr
}

func hasDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

func isPickupText(text string) bool {
	t := normalize(text)
	return strings.Contains(t, "retirada") || strings.Contains(t, "retirar") ||
		strings.Contains(t, "balcao") || strings.Contains(t, "buscar")
}

func isCancel(text string) bool {
	switch normalize(text) {
	case "cancelar", "cancela", "cancelar pedido", "cancel":
		return true
	}
	return false
}

func isAffirmative(text string) bool {
	switch normalize(text) {
	case "sim", "s", "correto", "isso", "confirmar", "confirmo", "pode confirmar", "ok", "yes":
		return true
	}
	return false
}

func isNegative(text string) bool {
	switch normalize(text) {
	case "nao", "n", "no", "errado":
		return true
	}
	return false
}

func normalize(text string) string {
	t := strings.ToLower(strings.TrimSpace(text))
	t = strings.ReplaceAll(t, "ã", "a")
	t = strings.ReplaceAll(t, "á", "a")
	t = strings.ReplaceAll(t, "ç", "c")
	t = strings.ReplaceAll(t, "é", "e")
	t = strings.ReplaceAll(t, "ô", "o")
	return strings.Trim(t, ".!? ")
}

func customerName(phone string) string {
	digits := phone
	if len(digits) > 4 {
		digits = digits[len(digits)-4:]
	}
	return "Cliente WhatsApp " + digits
}
