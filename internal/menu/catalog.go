package menu

import "strings"

// Pizza size tiers as the spreadsheet labels them. Non-pizza items
// carry a single TierStandard price.
const (
	Tier4Slices  = "4 fatias"
	Tier6Slices  = "6 fatias"
	Tier8Slices  = "8 fatias"
	Tier10Slices = "10 fatias"
	TierStandard = "padrão"
)

// PizzaTiers in menu order, smallest first.
var PizzaTiers = []string{Tier4Slices, Tier6Slices, Tier8Slices, Tier10Slices}

type Item struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	Description    string             `json:"description,omitempty"`
	Category       string             `json:"category,omitempty"`
	IsPizza        bool               `json:"isPizza"`
	IsCustomizable bool               `json:"isCustomizable"`
	AcceptsExtras  bool               `json:"acceptsExtras"`
	AllowHalf      bool               `json:"allowHalf"`
	Available      bool               `json:"available"`
	ImageURL       string             `json:"imageUrl,omitempty"`
	Prices         map[string]float64 `json:"prices"`
}

// TierPrice returns the price for a size tier, zero when the tier is
// absent.
func (i Item) TierPrice(tier string) float64 {
	if i.Prices == nil {
		return 0
	}
	return i.Prices[tier]
}

type Ingredient struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Price          float64 `json:"price"`
	Limit          int     `json:"limit"`
	IsSingleChoice bool    `json:"isSingleChoice"`
	IsRequired     bool    `json:"isRequired"`
	Available      bool    `json:"available"`
}

type Extra struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Limit         int     `json:"limit"`
	CategoryLimit int     `json:"categoryLimit"`
	Available     bool    `json:"available"`
}

type Promotion struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	PromoPrice float64 `json:"promoPrice"`
	ItemID     string  `json:"itemId"`
	Active     bool    `json:"active"`
}

type DeliveryZone struct {
	Neighborhood string  `json:"neighborhood"`
	Fee          float64 `json:"deliveryFee"`
}

type ContactEntry struct {
	Key   string `json:"data"`
	Value string `json:"value"`
}

// Catalog is one consistent snapshot of everything sellable right now:
// visible available items with their overlays already applied.
type Catalog struct {
	Items             []Item         `json:"menu"`
	Promotions        []Promotion    `json:"promotions"`
	DeliveryZones     []DeliveryZone `json:"deliveryFees"`
	BurgerIngredients []Ingredient   `json:"burgerIngredients"`
	PizzaExtras       []Extra        `json:"pizzaExtras"`
	Contact           []ContactEntry `json:"contact"`
}

// FindContaining matches a loosely-specified description against the
// item names: the description must contain the item name. First match
// wins, no fuzzy scoring.
func (c *Catalog) FindContaining(description string) *Item {
	lower := strings.ToLower(description)
	for idx := range c.Items {
		if !c.Items[idx].Available {
			continue
		}
		if strings.Contains(lower, strings.ToLower(c.Items[idx].Name)) {
			return &c.Items[idx]
		}
	}
	return nil
}

// FindExact looks an item up by its exact name, case-insensitive.
// Half-and-half flavor resolution uses this stricter match.
func (c *Catalog) FindExact(name string) *Item {
	lower := strings.ToLower(strings.TrimSpace(name))
	for idx := range c.Items {
		if !c.Items[idx].Available {
			continue
		}
		if strings.ToLower(c.Items[idx].Name) == lower {
			return &c.Items[idx]
		}
	}
	return nil
}

// DeliveryFeeFor returns the fee for a neighborhood, zero when the
// neighborhood has no configured zone.
func (c *Catalog) DeliveryFeeFor(neighborhood string) float64 {
	lower := strings.ToLower(strings.TrimSpace(neighborhood))
	for _, zone := range c.DeliveryZones {
		if strings.ToLower(strings.TrimSpace(zone.Neighborhood)) == lower {
			return zone.Fee
		}
	}
	return 0
}
