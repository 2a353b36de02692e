package sheets

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pizzaria-pdv-services/internal/order"
)

// ArchiveRow flattens an order into the closed-orders sheet layout:
// id, date, time, customer, phone, address, items, subtotal, delivery
// fee, total, payment.
func ArchiveRow(o *order.Order, loc *time.Location) []any {
	at := o.CreatedAt.In(loc)

	address := order.PickupStreet
	if !o.Customer.IsPickup && o.Address != nil {
		parts := []string{o.Address.Street}
		if o.Address.Number != "" {
			parts = append(parts, o.Address.Number)
		}
		if o.Address.Neighborhood != "" {
			parts = append(parts, o.Address.Neighborhood)
		}
		address = strings.Join(parts, ", ")
	}

	items := make([]string, 0, len(o.Lines))
	for _, line := range o.Lines {
		qty := line.Quantity
		if qty <= 0 {
			qty = 1
		}
		items = append(items, fmt.Sprintf("%dx %s", qty, line.Name))
	}

	payment := o.Payment.Label()
	if o.Payment.IsCash() && o.Payment.ChangeFor > 0 {
		payment = fmt.Sprintf("Dinheiro (troco para %s)", order.FormatBRL(o.Payment.ChangeFor))
	}

	return []any{
		o.ID,
		at.Format("02/01/2006"),
		at.Format("15:04"),
		o.Customer.Name,
		o.Customer.Phone,
		address,
		strings.Join(items, "; "),
		o.Totals.Subtotal,
		o.Totals.DeliveryFee,
		o.Totals.FinalTotal,
		payment,
	}
}

// SangriaRow is the cash-withdrawal sheet layout: date, time, amount,
// reason, operator.
func SangriaRow(at time.Time, amount float64, reason, operator string) []any {
	return []any{
		at.Format("02/01/2006"),
		at.Format("15:04"),
		amount,
		reason,
		operator,
	}
}

// HistoryEntry is one archived order as read back from the sheet.
type HistoryEntry struct {
	OrderID  string `json:"orderId"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Customer string `json:"customerName"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address"`
	Items    string `json:"items"`
	Total    string `json:"finalTotal"`
	Payment  string `json:"payment"`
}

// ReadHistory reads the closed-orders sheet back, newest first.
func ReadHistory(ctx context.Context, client *Client, spreadsheetID, sheetName string, limit int) ([]HistoryEntry, error) {
	rows, err := client.ReadRange(ctx, spreadsheetID, sheetName+"!A1:K")
	if err != nil {
		return nil, err
	}

	entries := make([]HistoryEntry, 0, len(rows))
	for _, row := range rows {
		entry := HistoryEntry{
			OrderID:  cell(row, 0),
			Date:     cell(row, 1),
			Time:     cell(row, 2),
			Customer: cell(row, 3),
			Phone:    cell(row, 4),
			Address:  cell(row, 5),
			Items:    cell(row, 6),
			Total:    cell(row, 9),
			Payment:  cell(row, 10),
		}
		if entry.OrderID == "" || strings.EqualFold(entry.OrderID, "id") {
			continue
		}
		entries = append(entries, entry)
	}

	// Rows are appended chronologically; reverse for newest first.
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func cell(row []any, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(row[idx]))
}
