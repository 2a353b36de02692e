package order

import (
	"testing"

	"pizzaria-pdv-services/internal/menu"
)

func testCatalog() *menu.Catalog {
	return &menu.Catalog{
		Items: []menu.Item{
			{
				ID: "pz-01", Name: "Calabresa", IsPizza: true, Available: true, AllowHalf: true,
				Prices: map[string]float64{
					menu.Tier4Slices: 25, menu.Tier6Slices: 32, menu.Tier8Slices: 40, menu.Tier10Slices: 48,
				},
			},
			{
				ID: "pz-02", Name: "Mussarela", IsPizza: true, Available: true, AllowHalf: true,
				Prices: map[string]float64{
					menu.Tier8Slices: 30,
				},
			},
			{
				ID: "pz-03", Name: "Quatro Queijos", IsPizza: true, Available: false,
				Prices: map[string]float64{menu.Tier8Slices: 45},
			},
			{
				ID: "bg-01", Name: "Burger da Casa", IsCustomizable: true, Available: true,
				Prices: map[string]float64{menu.TierStandard: 25},
			},
			{
				ID: "bv-01", Name: "Coca-Cola 2L", Available: true,
				Prices: map[string]float64{menu.TierStandard: 12},
			},
		},
		DeliveryZones: []menu.DeliveryZone{{Neighborhood: "Centro", Fee: 5}},
	}
}

func TestResolveFullPizza(t *testing.T) {
	catalog := testCatalog()

	line := Resolve(AIItem{Name: "Pizza de Calabresa 6 fatias", Quantity: 2, Price: 999}, catalog)
	if line == nil {
		t.Fatal("expected a resolved line")
	}
	if line.BasePrice != 32 {
		t.Fatalf("price must come from the catalog, got %v", line.BasePrice)
	}
	if line.SizeTag != menu.Tier6Slices {
		t.Fatalf("unexpected tier: %q", line.SizeTag)
	}
	if line.Quantity != 2 || line.Kind != KindFull {
		t.Fatalf("unexpected line: %+v", line)
	}
}

func TestResolveDefaultsToEightSlices(t *testing.T) {
	line := Resolve(AIItem{Name: "uma pizza de calabresa"}, testCatalog())
	if line == nil {
		t.Fatal("expected a resolved line")
	}
	if line.SizeTag != menu.Tier8Slices || line.BasePrice != 40 {
		t.Fatalf("expected 8-slice default, got %q at %v", line.SizeTag, line.BasePrice)
	}
}

func TestResolveTierFallback(t *testing.T) {
	// Mussarela is only sold at 8 slices; a 10-slice request falls back.
	line := Resolve(AIItem{Name: "pizza mussarela 10 fatias"}, testCatalog())
	if line == nil {
		t.Fatal("expected a resolved line")
	}
	if line.SizeTag != menu.Tier8Slices || line.BasePrice != 30 {
		t.Fatalf("expected fallback to 8 slices, got %q at %v", line.SizeTag, line.BasePrice)
	}
}

func TestResolveHalfAndHalf(t *testing.T) {
	line := Resolve(AIItem{Name: "Pizza 8 fatias Meia Calabresa e Meia Mussarela"}, testCatalog())
	if line == nil {
		t.Fatal("expected a resolved line")
	}
	if line.Kind != KindSplitHalf {
		t.Fatalf("expected split-half kind, got %q", line.Kind)
	}
	if line.BasePrice != 35 {
		t.Fatalf("expected half 40 + half 30 = 35.00, got %v", line.BasePrice)
	}
	if line.FirstHalf == nil || line.SecondHalf == nil {
		t.Fatal("expected both half selections")
	}
	if line.FirstHalf.ItemID != "pz-01" || line.SecondHalf.ItemID != "pz-02" {
		t.Fatalf("unexpected halves: %+v / %+v", line.FirstHalf, line.SecondHalf)
	}
}

func TestResolveHalfAndHalfMissingTier(t *testing.T) {
	// Mussarela has no 10-slice price, so the combination is unsellable.
	line := Resolve(AIItem{Name: "Pizza 10 fatias Meia Calabresa e Meia Mussarela"}, testCatalog())
	if line != nil {
		t.Fatalf("expected nil for a flavor without the requested tier, got %+v", line)
	}
}

func TestResolveHalfAndHalfUnknownFlavor(t *testing.T) {
	line := Resolve(AIItem{Name: "Meia Calabresa e Meia Portuguesa"}, testCatalog())
	if line != nil {
		t.Fatalf("expected nil for an unknown flavor, got %+v", line)
	}
}

func TestResolveNonPizza(t *testing.T) {
	line := Resolve(AIItem{Name: "uma coca-cola 2l gelada"}, testCatalog())
	if line == nil {
		t.Fatal("expected a resolved line")
	}
	if line.BasePrice != 12 || line.SizeTag != "" {
		t.Fatalf("unexpected line: %+v", line)
	}
}

func TestResolveNonPizzaWithoutPriceDrops(t *testing.T) {
	catalog := testCatalog()
	catalog.Items = append(catalog.Items, menu.Item{
		ID: "ex-01", Name: "Molho Extra", Available: true,
		Prices: map[string]float64{menu.TierStandard: 0},
	})

	if line := Resolve(AIItem{Name: "molho extra"}, catalog); line != nil {
		t.Fatalf("a zero-priced item must never become a billable line, got %+v", line)
	}
}

func TestResolveCustomizable(t *testing.T) {
	line := Resolve(AIItem{Name: "burger da casa sem cebola", Notes: "sem cebola"}, testCatalog())
	if line == nil {
		t.Fatal("expected a resolved line")
	}
	if line.Kind != KindCustom {
		t.Fatalf("expected custom kind, got %q", line.Kind)
	}
}

func TestResolveAllDropsUnknown(t *testing.T) {
	lines := ResolveAll([]AIItem{
		{Name: "pizza calabresa"},
		{Name: "lasanha da nonna"},
		{Name: "coca-cola 2l"},
	}, testCatalog())

	if len(lines) != 2 {
		t.Fatalf("expected 2 resolved lines, got %d", len(lines))
	}
}

func TestResolveUnavailableItem(t *testing.T) {
	line := Resolve(AIItem{Name: "pizza quatro queijos"}, testCatalog())
	if line != nil {
		t.Fatalf("unavailable items must not resolve, got %+v", line)
	}
}
