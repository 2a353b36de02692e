package menu

import "testing"

func catalogFixture() *Catalog {
	return &Catalog{
		Items: []Item{
			{ID: "pz-01", Name: "Calabresa", Available: true, IsPizza: true,
				Prices: map[string]float64{Tier8Slices: 40}},
			{ID: "pz-02", Name: "Calabresa Especial", Available: true, IsPizza: true,
				Prices: map[string]float64{Tier8Slices: 46}},
			{ID: "pz-03", Name: "Portuguesa", Available: false, IsPizza: true,
				Prices: map[string]float64{Tier8Slices: 44}},
		},
		DeliveryZones: []DeliveryZone{
			{Neighborhood: "Centro", Fee: 5},
			{Neighborhood: "Jardim América", Fee: 7.5},
		},
	}
}

func TestFindContaining(t *testing.T) {
	catalog := catalogFixture()

	t.Run("first match wins", func(t *testing.T) {
		found := catalog.FindContaining("uma pizza de calabresa especial")
		if found == nil || found.ID != "pz-01" {
			t.Fatalf("expected the first containing match, got %+v", found)
		}
	})

	t.Run("skips unavailable", func(t *testing.T) {
		if found := catalog.FindContaining("pizza portuguesa"); found != nil {
			t.Fatalf("unavailable items must not match, got %+v", found)
		}
	})

	t.Run("no match", func(t *testing.T) {
		if found := catalog.FindContaining("lasanha"); found != nil {
			t.Fatalf("expected nil, got %+v", found)
		}
	})
}

func TestFindExact(t *testing.T) {
	catalog := catalogFixture()

	if found := catalog.FindExact("calabresa especial"); found == nil || found.ID != "pz-02" {
		t.Fatalf("expected case-insensitive exact match, got %+v", found)
	}
	if found := catalog.FindExact("calabresa esp"); found != nil {
		t.Fatalf("partial names must not match exactly, got %+v", found)
	}
}

func TestDeliveryFeeFor(t *testing.T) {
	catalog := catalogFixture()

	if fee := catalog.DeliveryFeeFor("centro"); fee != 5 {
		t.Fatalf("expected 5, got %v", fee)
	}
	if fee := catalog.DeliveryFeeFor("Bairro Desconhecido"); fee != 0 {
		t.Fatalf("unknown neighborhoods must cost 0 pending manual quote, got %v", fee)
	}
}
