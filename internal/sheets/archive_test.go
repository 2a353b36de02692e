package sheets

import (
	"testing"
	"time"

	"pizzaria-pdv-services/internal/order"
)

func archivedOrder() *order.Order {
	lines := []order.Line{
		{Name: "Pizza Calabresa", BasePrice: 40, Quantity: 1, SizeTag: "8 fatias"},
		{Name: "Coca-Cola 2L", BasePrice: 12, Quantity: 2},
	}
	return &order.Order{
		ID:        "251231-2030-AB12",
		CreatedAt: time.Date(2025, 12, 31, 23, 30, 0, 0, time.UTC),
		Customer:  order.Customer{Name: "Maria", Phone: "5511988887777"},
		Address:   &order.Address{Street: "Rua das Flores", Number: "120", Neighborhood: "Centro"},
		Lines:     lines,
		Totals:    order.ComputeTotals(lines, 5, 0),
		Payment:   order.CashPayment(80, 69),
		Status:    order.StatusNew,
	}
}

func TestArchiveRow(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	row := ArchiveRow(archivedOrder(), loc)

	if len(row) != 11 {
		t.Fatalf("expected 11 columns, got %d", len(row))
	}
	if row[0] != "251231-2030-AB12" {
		t.Fatalf("unexpected id column: %v", row[0])
	}
	if row[1] != "31/12/2025" || row[2] != "20:30" {
		t.Fatalf("timestamps must render in the store timezone, got %v %v", row[1], row[2])
	}
	if row[5] != "Rua das Flores, 120, Centro" {
		t.Fatalf("unexpected address column: %v", row[5])
	}
	if row[6] != "1x Pizza Calabresa; 2x Coca-Cola 2L" {
		t.Fatalf("unexpected items column: %v", row[6])
	}
	if row[9] != 69.0 {
		t.Fatalf("unexpected total column: %v", row[9])
	}
	if row[10] != "Dinheiro (troco para R$ 80,00)" {
		t.Fatalf("unexpected payment column: %v", row[10])
	}
}

func TestArchiveRowPickup(t *testing.T) {
	o := archivedOrder()
	o.Customer.IsPickup = true
	o.Address = nil

	row := ArchiveRow(o, time.UTC)
	if row[5] != order.PickupStreet {
		t.Fatalf("pickup orders must carry the sentinel, got %v", row[5])
	}
}

func TestSangriaRow(t *testing.T) {
	at := time.Date(2025, 12, 31, 15, 45, 0, 0, time.UTC)
	row := SangriaRow(at, 120.5, "pagamento entregador", "maria@pdv")

	if len(row) != 5 {
		t.Fatalf("expected 5 columns, got %d", len(row))
	}
	if row[0] != "31/12/2025" || row[1] != "15:45" || row[2] != 120.5 {
		t.Fatalf("unexpected row: %v", row)
	}
}

func TestColumnLetter(t *testing.T) {
	cases := map[int]string{0: "A", 1: "B", 25: "Z", 26: "AA", 27: "AB", 51: "AZ", 52: "BA"}
	for idx, expected := range cases {
		if got := columnLetter(idx); got != expected {
			t.Fatalf("columnLetter(%d): expected %q, got %q", idx, expected, got)
		}
	}
}
