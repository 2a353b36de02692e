package order

import (
	"fmt"
	"sort"
	"strings"
)

// HashError is returned instead of a hash when the line data is
// malformed. An unhashable order cannot be deduplicated safely, so
// callers must reject submissions carrying this sentinel.
const HashError = "error_processing_items"

// Hash computes the canonical duplicate-detection signature of a set
// of lines. Identical items submitted in a different entry order hash
// identically: line tokens and sub-item tokens are sorted before
// joining. An empty set hashes to the empty string.
func Hash(lines []Line) string {
	if len(lines) == 0 {
		return ""
	}

	tokens := make([]string, 0, len(lines))
	for _, line := range lines {
		if !lineHashable(line) {
			return HashError
		}
		ingredients, ok := subItemToken(line.Ingredients)
		if !ok {
			return HashError
		}
		extras, ok := subItemToken(line.Extras)
		if !ok {
			return HashError
		}
		tokens = append(tokens, fmt.Sprintf("%s|%s|%v|%s|%s",
			line.Name, line.SizeTag, line.Total(), ingredients, extras))
	}

	sort.Strings(tokens)
	return strings.Join(tokens, ";")
}

// HashValid reports whether a hash value is usable for duplicate
// detection.
func HashValid(hash string) bool {
	return hash != "" && hash != HashError
}

func lineHashable(line Line) bool {
	if strings.TrimSpace(line.Name) == "" {
		return false
	}
	if line.Quantity < 0 || line.BasePrice < 0 {
		return false
	}
	return true
}

func subItemToken(subItems []SubItem) (string, bool) {
	if len(subItems) == 0 {
		return "", true
	}

	entries := make([]SubItem, len(subItems))
	copy(entries, subItems)
	for i := range entries {
		if strings.TrimSpace(entries[i].Name) == "" || entries[i].UnitPrice < 0 || entries[i].Quantity < 0 {
			return "", false
		}
		if entries[i].Quantity == 0 {
			entries[i].Quantity = 1
		}
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })

	tokens := make([]string, 0, len(entries))
	for _, entry := range entries {
		tokens = append(tokens, fmt.Sprintf("%s:%d:%v:%s",
			entry.Name, entry.Quantity, entry.UnitPrice, entry.Placement))
	}
	return strings.Join(tokens, ","), true
}
