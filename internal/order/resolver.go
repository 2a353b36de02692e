package order

import (
	"regexp"
	"strings"

	"pizzaria-pdv-services/internal/menu"
)

// AIItem is one item as the LLM extracted it from conversation. The
// Price field is what the model asserted and is never used for
// billing; every line is re-priced from the live catalog here.
type AIItem struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Notes    string  `json:"notes"`
}

var halfSplitPattern = regexp.MustCompile(`&| e `)

// Resolve matches a loosely-specified item description against the
// catalog and prices it. Unrecognized items resolve to nil and are
// dropped by the caller; a guessed or zero price would corrupt
// billing, so resolution never fabricates one.
func Resolve(ai AIItem, catalog *menu.Catalog) *Line {
	name := strings.TrimSpace(ai.Name)
	if name == "" || catalog == nil {
		return nil
	}
	lower := strings.ToLower(name)

	quantity := ai.Quantity
	if quantity < 1 {
		quantity = 1
	}

	if isHalfAndHalf(lower) {
		return resolveHalfAndHalf(ai, name, lower, quantity, catalog)
	}

	found := catalog.FindContaining(lower)
	if found == nil {
		return nil
	}

	var price float64
	var sizeTag string
	kind := KindFull

	if found.IsPizza {
		tier := detectTier(lower)
		if tier == "" {
			tier = menu.Tier8Slices
		}
		price = found.TierPrice(tier)
		if price == 0 {
			// Requested tier is not sold; fall back to the base tier.
			tier = menu.Tier8Slices
			price = found.TierPrice(tier)
		}
		if price == 0 {
			return nil
		}
		sizeTag = tier
	} else {
		price = found.TierPrice(menu.TierStandard)
		if price == 0 {
			return nil
		}
	}

	if found.IsCustomizable {
		kind = KindCustom
	}

	return &Line{
		Name:      name,
		Kind:      kind,
		BasePrice: Round2(price),
		Quantity:  quantity,
		SizeTag:   sizeTag,
		Notes:     strings.TrimSpace(ai.Notes),
	}
}

// ResolveAll resolves every extracted item, silently dropping the
// unresolvable ones. An empty result means the caller should ask the
// customer to clarify rather than fail.
func ResolveAll(items []AIItem, catalog *menu.Catalog) []Line {
	lines := make([]Line, 0, len(items))
	for _, item := range items {
		if line := Resolve(item, catalog); line != nil {
			lines = append(lines, *line)
		}
	}
	return lines
}

// Half-and-half phrasing: the word "meia" plus two flavors joined by
// "&" or " e ", e.g. "Pizza 8 fatias Meia Calabresa e Meia Mussarela".
func isHalfAndHalf(lower string) bool {
	return strings.Contains(lower, "meia") &&
		(strings.Contains(lower, "&") || strings.Contains(lower, " e "))
}

func resolveHalfAndHalf(ai AIItem, name, lower string, quantity int, catalog *menu.Catalog) *Line {
	tier := detectTier(lower)
	if tier == "" {
		tier = menu.Tier8Slices
	}

	parts := halfSplitPattern.Split(name, 2)
	if len(parts) != 2 {
		return nil
	}
	first := catalog.FindExact(stripHalfPrefix(parts[0]))
	second := catalog.FindExact(stripHalfPrefix(parts[1]))
	if first == nil || second == nil {
		return nil
	}

	firstPrice := first.TierPrice(tier)
	secondPrice := second.TierPrice(tier)
	if firstPrice == 0 || secondPrice == 0 {
		// One of the flavors is not sold at this size.
		return nil
	}

	return &Line{
		Name:      name,
		Kind:      KindSplitHalf,
		BasePrice: Round2(firstPrice/2 + secondPrice/2),
		Quantity:  quantity,
		SizeTag:   tier,
		Notes:     strings.TrimSpace(ai.Notes),
		FirstHalf: &HalfSelection{
			ItemID: first.ID, ItemName: first.Name, Tier: tier, TierPrice: firstPrice,
		},
		SecondHalf: &HalfSelection{
			ItemID: second.ID, ItemName: second.Name, Tier: tier, TierPrice: secondPrice,
		},
	}
}

// stripHalfPrefix reduces a flavor phrase to the bare flavor name:
// "Pizza 8 fatias Meia Calabresa" -> "Calabresa".
func stripHalfPrefix(part string) string {
	lower := strings.ToLower(part)
	if idx := strings.LastIndex(lower, "meia"); idx >= 0 {
		part = part[idx+len("meia"):]
	}
	return strings.Trim(part, " :-")
}

func detectTier(lower string) string {
	for _, tier := range menu.PizzaTiers {
		if strings.Contains(lower, tier) {
			return tier
		}
	}
	return ""
}
