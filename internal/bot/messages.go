package bot

import (
	"fmt"
	"strings"

	"pizzaria-pdv-services/internal/order"
)

const (
	msgGreeting = "Olá! Bem-vindo à pizzaria. 🍕 O que você gostaria de pedir hoje?"

	msgCancelled = "Tudo bem, pedido cancelado. Quando quiser pedir de novo é só mandar mensagem!"

	msgAskItems = "Não consegui identificar nenhum item do cardápio na sua mensagem. Pode me dizer o que gostaria de pedir?"

	msgAskAddress = "Qual o endereço completo para entrega (rua, número e bairro)? " +
		"Se preferir retirar no balcão, é só dizer \"retirada\"."

	msgAskPayment = "Qual será a forma de pagamento? Aceitamos dinheiro, Pix, cartão de crédito ou débito. " +
		"Se for dinheiro, me diga o troco (ex.: \"dinheiro, troco para R$ 50\")."

	msgAskPaymentAgain = "Desculpe, não entendi a forma de pagamento. " +
		"Pode ser dinheiro, Pix, cartão de crédito ou débito."

	msgAskConfirm = "Posso confirmar o pedido? Responda *sim* para confirmar ou *não* para cancelar."
)

func itemsSummary(lines []order.Line) string {
	var b strings.Builder
	b.WriteString("Anotei até agora:\n")
	for _, line := range lines {
		qty := line.Quantity
		if qty <= 0 {
			qty = 1
		}
		fmt.Fprintf(&b, "• %dx %s - %s\n", qty, line.Name, order.FormatBRL(line.Total()))
	}
	return b.String()
}

func orderSummary(conv *Conversation) string {
	var b strings.Builder
	b.WriteString("Resumo do pedido:\n")
	for _, line := range conv.Lines {
		qty := line.Quantity
		if qty <= 0 {
			qty = 1
		}
		fmt.Fprintf(&b, "• %dx %s - %s\n", qty, line.Name, order.FormatBRL(line.Total()))
	}
	fmt.Fprintf(&b, "\nSubtotal: %s\n", order.FormatBRL(conv.Subtotal))
	if conv.IsPickup {
		b.WriteString("Entrega: retirada no balcão\n")
	} else {
		fmt.Fprintf(&b, "Entrega: %s (taxa a confirmar)\n", conv.AddressText)
	}
	if conv.Payment != nil {
		fmt.Fprintf(&b, "Pagamento: %s\n", paymentLabel(*conv.Payment))
	}
	b.WriteString("\n" + msgAskConfirm)
	return b.String()
}

func paymentLabel(p order.Payment) string {
	if p.IsCash() {
		if p.ChangeFor > 0 {
			return fmt.Sprintf("dinheiro (troco para %s)", order.FormatBRL(p.ChangeFor))
		}
		return "dinheiro"
	}
	return p.Label()
}

func finalizedMessage(o *order.Order) string {
	return fmt.Sprintf(
		"Pedido confirmado! 🎉\nSenha: *%s*\nTotal: %s\nJá estamos preparando. Obrigado pela preferência!",
		o.ShortID(), order.FormatBRL(o.Totals.FinalTotal))
}

func duplicateMessage(existing *order.Order) string {
	return fmt.Sprintf(
		"Esse pedido já foi registrado às %s (senha *%s*). "+
			"Se quiser pedir de novo, me avise!",
		existing.CreatedAt.Format("15:04"), existing.ShortID())
}
