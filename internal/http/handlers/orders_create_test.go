package handlers

import (
	"strings"
	"testing"

	"pizzaria-pdv-services/internal/order"
)

func TestKitchenTicketCashChangePrintedOnce(t *testing.T) {
	o := &order.Order{
		ID:       "251231-2359-AB12",
		Customer: order.Customer{Name: "Maria", Phone: "5511999990000"},
		Address:  &order.Address{Street: "Rua das Flores", Number: "10", Neighborhood: "Centro"},
		Lines: []order.Line{
			{Name: "Calabresa", Kind: order.KindFull, BasePrice: 40, Quantity: 1},
		},
		Totals:  order.Totals{Subtotal: 40, DeliveryFee: 5, FinalTotal: 45},
		Payment: order.CashPayment(50, 45),
	}

	ticket := kitchenTicket(o)
	if got := strings.Count(ticket, "troco para"); got != 1 {
		t.Fatalf("change amount must appear exactly once, got %d in:\n%s", got, ticket)
	}
	if !strings.Contains(ticket, "troco para R$ 50,00") {
		t.Fatalf("missing change amount in ticket:\n%s", ticket)
	}
	if !strings.Contains(ticket, "*PEDIDO AB12*") {
		t.Fatalf("missing short id header in ticket:\n%s", ticket)
	}
}
