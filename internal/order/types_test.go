package order

import "testing"

func TestLineTotal(t *testing.T) {
	line := Line{
		Name:      "Burger da Casa",
		BasePrice: 25,
		Quantity:  2,
		Ingredients: []SubItem{
			{Name: "Bacon", UnitPrice: 3, Quantity: 2},
			{Name: "Cheddar", UnitPrice: 2.5},
		},
	}
	// 2*25 + 2*3 + 1*2.5
	if got := line.Total(); got != 58.5 {
		t.Fatalf("expected 58.5, got %v", got)
	}
}

func TestLineTotalDefaultsQuantity(t *testing.T) {
	line := Line{Name: "Coca-Cola 2L", BasePrice: 12}
	if got := line.Total(); got != 12 {
		t.Fatalf("zero quantity must price as one unit, got %v", got)
	}
}

func TestComputeTotals(t *testing.T) {
	lines := []Line{
		{Name: "Pizza Calabresa", BasePrice: 40, Quantity: 1},
		{Name: "Coca-Cola 2L", BasePrice: 12, Quantity: 2},
	}
	totals := ComputeTotals(lines, 5, 4)

	if totals.Subtotal != 64 {
		t.Fatalf("subtotal: expected 64, got %v", totals.Subtotal)
	}
	if totals.FinalTotal != 65 {
		t.Fatalf("finalTotal: expected 65, got %v", totals.FinalTotal)
	}
	if err := totals.Validate(); err != nil {
		t.Fatalf("computed totals must validate: %v", err)
	}
}

func TestTotalsValidate(t *testing.T) {
	cases := []struct {
		name   string
		totals Totals
		ok     bool
	}{
		{"consistent", Totals{Subtotal: 64, DeliveryFee: 5, Discount: 4, FinalTotal: 65}, true},
		{"inconsistent final", Totals{Subtotal: 64, DeliveryFee: 5, Discount: 4, FinalTotal: 60}, false},
		{"negative discount", Totals{Subtotal: 64, Discount: -4, FinalTotal: 68}, false},
		{"negative final", Totals{Subtotal: 1, Discount: 5, FinalTotal: -4}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.totals.Validate()
			if tc.ok && err != nil {
				t.Fatalf("expected valid, got %v", err)
			}
			if !tc.ok && err == nil {
				t.Fatal("expected a validation error")
			}
		})
	}
}

func TestFormatBRL(t *testing.T) {
	cases := []struct {
		value    float64
		expected string
	}{
		{35, "R$ 35,00"},
		{27.5, "R$ 27,50"},
		{0, "R$ 0,00"},
	}
	for _, tc := range cases {
		if got := FormatBRL(tc.value); got != tc.expected {
			t.Fatalf("FormatBRL(%v): expected %q, got %q", tc.value, tc.expected, got)
		}
	}
}
