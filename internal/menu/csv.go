package menu

import (
	"encoding/csv"
	"regexp"
	"strconv"
	"strings"
)

// The menu spreadsheets keep pt-BR headers. Rows are parsed into
// generic records first, with headers normalized through this mapping,
// then shaped into the typed catalog structs.
var headerMapping = map[string]string{
	"id item (único)":       "id",
	"id intem":              "id",
	"id promocao":           "id",
	"nome do item":          "name",
	"nome da promocao":      "name",
	"ingredientes":          "name",
	"adicionais":            "name",
	"descrição":             "description",
	"preço 4 fatias":        "price4Slices",
	"preço 6 fatias":        "price6Slices",
	"preço 8 fatias":        "basePrice",
	"preço 10 fatias":       "price10Slices",
	"categoria":             "category",
	"é pizza? (sim/não)":    "isPizza",
	"é montável? (sim/não)": "isCustomizable",
	"disponível (sim/não)":  "available",
	"disponível":            "available",
	"imagem":                "imageUrl",
	"preco promocional":     "promoPrice",
	"id item aplicavel":     "itemId",
	"ativo (sim/nao)":       "active",
	"bairros":               "neighborhood",
	"valor frete":           "deliveryFee",
	"preço":                 "price",
	"seleção única":         "isSingleChoice",
	"limite":                "limit",
	"limite adicionais":     "limit",
	"limite categoria":      "categoryLimit",
	"é obrigatório?(sim/não)": "isRequired",
	"dados": "data",
	"valor": "value",
}

var headerCleanup = regexp.MustCompile(`[^a-z0-9]`)

type record map[string]string

// parseRecords reads a published-CSV sheet into keyed records. The
// first line is the header row; rows with a mismatched column count
// are skipped, matching how the sheet tolerates ragged edits.
func parseRecords(csvText string) ([]record, error) {
	reader := csv.NewReader(strings.NewReader(csvText))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, nil
	}

	headers := make([]string, len(rows[0]))
	for i, raw := range rows[0] {
		clean := strings.ToLower(strings.TrimSpace(raw))
		if mapped, ok := headerMapping[clean]; ok {
			headers[i] = mapped
			continue
		}
		headers[i] = headerCleanup.ReplaceAllString(strings.ReplaceAll(clean, " ", ""), "")
	}

	records := make([]record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) != len(headers) {
			continue
		}
		empty := true
		rec := record{}
		for i, value := range row {
			value = strings.TrimSpace(strings.TrimSuffix(value, "\r"))
			if value != "" {
				empty = false
			}
			rec[headers[i]] = value
		}
		if !empty {
			records = append(records, rec)
		}
	}
	return records, nil
}

func (r record) price(key string) float64 {
	value := strings.ReplaceAll(strings.TrimSpace(r[key]), ",", ".")
	if value == "" {
		return 0
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return parsed
}

func (r record) flag(key string) bool {
	return strings.EqualFold(strings.TrimSpace(r[key]), "sim")
}

// limit returns the configured limit, or a large sentinel when the
// cell is empty/non-numeric, which the sheet treats as "no limit".
func (r record) limit(key string) int {
	parsed, err := strconv.Atoi(strings.TrimSpace(r[key]))
	if err != nil {
		return int(^uint(0) >> 1)
	}
	return parsed
}

func buildItems(records []record) []Item {
	items := make([]Item, 0, len(records))
	for _, rec := range records {
		item := Item{
			ID:             rec["id"],
			Name:           rec["name"],
			Description:    rec["description"],
			Category:       rec["category"],
			IsPizza:        rec.flag("isPizza"),
			IsCustomizable: rec.flag("isCustomizable"),
			Available:      rec.flag("available"),
			ImageURL:       rec["imageUrl"],
			Prices:         map[string]float64{},
		}
		if item.IsPizza {
			if p := rec.price("price4Slices"); p > 0 {
				item.Prices[Tier4Slices] = p
			}
			if p := rec.price("price6Slices"); p > 0 {
				item.Prices[Tier6Slices] = p
			}
			if p := rec.price("basePrice"); p > 0 {
				item.Prices[Tier8Slices] = p
			}
			if p := rec.price("price10Slices"); p > 0 {
				item.Prices[Tier10Slices] = p
			}
		} else {
			price := rec.price("basePrice")
			if price == 0 {
				price = rec.price("price")
			}
			item.Prices[TierStandard] = price
		}
		if item.ID == "" || item.Name == "" {
			continue
		}
		items = append(items, item)
	}
	return items
}

func buildIngredients(records []record) []Ingredient {
	out := make([]Ingredient, 0, len(records))
	for _, rec := range records {
		if rec["id"] == "" || rec["name"] == "" {
			continue
		}
		out = append(out, Ingredient{
			// Prefixed so ids stay unique across the ingredient sheets.
			ID:             "ing-" + rec["id"],
			Name:           rec["name"],
			Price:          rec.price("price"),
			Limit:          rec.limit("limit"),
			IsSingleChoice: rec.flag("isSingleChoice"),
			IsRequired:     rec.flag("isRequired"),
			Available:      true,
		})
	}
	return out
}

func buildExtras(records []record) []Extra {
	out := make([]Extra, 0, len(records))
	for _, rec := range records {
		if rec["id"] == "" || rec["name"] == "" {
			continue
		}
		out = append(out, Extra{
			ID:            "extra-" + rec["id"],
			Name:          rec["name"],
			Price:         rec.price("price"),
			Limit:         rec.limit("limit"),
			CategoryLimit: rec.limit("categoryLimit"),
			Available:     true,
		})
	}
	return out
}

func buildPromotions(records []record) []Promotion {
	out := make([]Promotion, 0, len(records))
	for _, rec := range records {
		if rec["id"] == "" {
			continue
		}
		out = append(out, Promotion{
			ID:         rec["id"],
			Name:       rec["name"],
			PromoPrice: rec.price("promoPrice"),
			ItemID:     rec["itemId"],
			Active:     rec.flag("active"),
		})
	}
	return out
}

func buildDeliveryZones(records []record) []DeliveryZone {
	out := make([]DeliveryZone, 0, len(records))
	for _, rec := range records {
		if rec["neighborhood"] == "" {
			continue
		}
		out = append(out, DeliveryZone{
			Neighborhood: rec["neighborhood"],
			Fee:          rec.price("deliveryFee"),
		})
	}
	return out
}

func buildContact(records []record) []ContactEntry {
	out := make([]ContactEntry, 0, len(records))
	for _, rec := range records {
		if rec["data"] == "" {
			continue
		}
		out = append(out, ContactEntry{Key: rec["data"], Value: rec["value"]})
	}
	return out
}
