package order

import "testing"

func TestHashOrderIndependence(t *testing.T) {
	pepperoni := Line{Name: "Pizza Pepperoni", SizeTag: "8 fatias", BasePrice: 40, Quantity: 1}
	coke := Line{Name: "Coca-Cola 2L", BasePrice: 12, Quantity: 2}

	a := Hash([]Line{pepperoni, coke})
	b := Hash([]Line{coke, pepperoni})

	if a != b {
		t.Fatalf("hash should not depend on line order: %q vs %q", a, b)
	}
	if !HashValid(a) {
		t.Fatalf("expected a valid hash, got %q", a)
	}
}

func TestHashSubItemOrderIndependence(t *testing.T) {
	base := Line{Name: "Burger da Casa", BasePrice: 25, Quantity: 1}

	withIngredients := func(names ...string) Line {
		line := base
		for _, name := range names {
			line.Ingredients = append(line.Ingredients, SubItem{Name: name, UnitPrice: 2, Quantity: 1})
		}
		return line
	}

	a := Hash([]Line{withIngredients("Bacon", "Cheddar")})
	b := Hash([]Line{withIngredients("Cheddar", "Bacon")})
	if a != b {
		t.Fatalf("hash should not depend on sub-item order: %q vs %q", a, b)
	}
}

func TestHashSensitivity(t *testing.T) {
	base := []Line{{Name: "Pizza Margherita", SizeTag: "8 fatias", BasePrice: 38, Quantity: 1}}

	cases := []struct {
		name   string
		mutate func(Line) Line
	}{
		{"quantity change", func(l Line) Line { l.Quantity = 2; return l }},
		{"price change", func(l Line) Line { l.BasePrice = 42; return l }},
		{"size change", func(l Line) Line { l.SizeTag = "10 fatias"; return l }},
		{"name change", func(l Line) Line { l.Name = "Pizza Calabresa"; return l }},
		{"extra added", func(l Line) Line {
			l.Extras = []SubItem{{Name: "Borda Recheada", UnitPrice: 8, Quantity: 1}}
			return l
		}},
	}

	original := Hash(base)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mutated := Hash([]Line{tc.mutate(base[0])})
			if mutated == original {
				t.Fatalf("expected %s to change the hash", tc.name)
			}
		})
	}
}

func TestHashMalformed(t *testing.T) {
	cases := []struct {
		name  string
		lines []Line
	}{
		{"empty name", []Line{{Name: "  ", BasePrice: 10}}},
		{"negative price", []Line{{Name: "Pizza", BasePrice: -1}}},
		{"negative quantity", []Line{{Name: "Pizza", BasePrice: 10, Quantity: -2}}},
		{"bad sub-item", []Line{{Name: "Pizza", BasePrice: 10, Extras: []SubItem{{Name: "", UnitPrice: 5}}}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Hash(tc.lines); got != HashError {
				t.Fatalf("expected sentinel %q, got %q", HashError, got)
			}
		})
	}
}

func TestHashEmpty(t *testing.T) {
	if got := Hash(nil); got != "" {
		t.Fatalf("empty order should hash to empty string, got %q", got)
	}
	if HashValid("") {
		t.Fatal("empty hash must not be valid")
	}
	if HashValid(HashError) {
		t.Fatal("error sentinel must not be valid")
	}
}
