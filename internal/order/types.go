package order

import (
	"fmt"
	"strings"
	"time"
)

type LineKind string

const (
	KindFull      LineKind = "full"
	KindSplitHalf LineKind = "split-half"
	KindCustom    LineKind = "custom"
	KindPromotion LineKind = "promotion"
)

type Status string

const (
	StatusNew      Status = "New"
	StatusArchived Status = "Archived"
)

// PickupStreet is the sentinel street value marking counter-pickup
// orders. Duplicate detection matches on it instead of a real address.
const PickupStreet = "Retirada no Balcão"

// SubItem is a customization entry on a line: a burger ingredient or a
// pizza extra. Placement is only meaningful for pizza extras
// ("inteira", "primeira metade", "segunda metade").
type SubItem struct {
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
	Placement string  `json:"placement,omitempty"`
}

func (s SubItem) total() float64 {
	qty := s.Quantity
	if qty < 1 {
		qty = 1
	}
	return s.UnitPrice * float64(qty)
}

// HalfSelection records one flavor of a half-and-half pizza together
// with the size tier it was priced at.
type HalfSelection struct {
	ItemID    string  `json:"itemId"`
	ItemName  string  `json:"itemName"`
	Tier      string  `json:"tier"`
	TierPrice float64 `json:"tierPrice"`
}

type Line struct {
	Name        string         `json:"name"`
	Kind        LineKind       `json:"kind"`
	BasePrice   float64        `json:"basePrice"`
	Quantity    int            `json:"quantity"`
	SizeTag     string         `json:"sizeTag,omitempty"`
	Notes       string         `json:"notes,omitempty"`
	Ingredients []SubItem      `json:"ingredients,omitempty"`
	Extras      []SubItem      `json:"extras,omitempty"`
	FirstHalf   *HalfSelection `json:"firstHalf,omitempty"`
	SecondHalf  *HalfSelection `json:"secondHalf,omitempty"`
}

// Total is the line's price: base price times quantity plus every
// ingredient and extra. Never negative for a well-formed line.
func (l Line) Total() float64 {
	qty := l.Quantity
	if qty < 1 {
		qty = 1
	}
	total := l.BasePrice * float64(qty)
	for _, ing := range l.Ingredients {
		total += ing.total()
	}
	for _, ext := range l.Extras {
		total += ext.total()
	}
	return Round2(total)
}

type Customer struct {
	Name     string `json:"name"`
	Phone    string `json:"phone,omitempty"`
	IsPickup bool   `json:"isPickup"`
}

type Address struct {
	Street       string `json:"street"`
	Number       string `json:"number,omitempty"`
	Neighborhood string `json:"neighborhood,omitempty"`
	Reference    string `json:"reference,omitempty"`
}

type Totals struct {
	Subtotal    float64 `json:"subtotal"`
	DeliveryFee float64 `json:"deliveryFee"`
	Discount    float64 `json:"discount"`
	FinalTotal  float64 `json:"finalTotal"`
}

// ComputeTotals derives the totals block from the lines. FinalTotal is
// subtotal minus discount plus delivery fee, rounded to cents.
func ComputeTotals(lines []Line, deliveryFee, discount float64) Totals {
	subtotal := 0.0
	for _, line := range lines {
		subtotal += line.Total()
	}
	subtotal = Round2(subtotal)
	return Totals{
		Subtotal:    subtotal,
		DeliveryFee: Round2(deliveryFee),
		Discount:    Round2(discount),
		FinalTotal:  Round2(subtotal - discount + deliveryFee),
	}
}

func (t Totals) Validate() error {
	if t.Subtotal < 0 || t.DeliveryFee < 0 || t.Discount < 0 || t.FinalTotal < 0 {
		return fmt.Errorf("totals must not be negative")
	}
	if expected := Round2(t.Subtotal - t.Discount + t.DeliveryFee); Round2(t.FinalTotal) != expected {
		return fmt.Errorf("finalTotal %.2f does not match subtotal-discount+deliveryFee %.2f", t.FinalTotal, expected)
	}
	return nil
}

type Order struct {
	ID          string    `json:"orderId"`
	CreatedAt   time.Time `json:"createdAt"`
	Customer    Customer  `json:"customer"`
	Address     *Address  `json:"address,omitempty"`
	Lines       []Line    `json:"lines"`
	Totals      Totals    `json:"totals"`
	Payment     Payment   `json:"payment"`
	Observation string    `json:"observation,omitempty"`
	Status      Status    `json:"status"`
	OrderHash   string    `json:"orderHash"`
}

// ShortID is the human reference printed on kitchen tickets: the
// random suffix of the full ticket number.
func (o *Order) ShortID() string {
	if idx := strings.LastIndex(o.ID, "-"); idx >= 0 && idx+1 < len(o.ID) {
		return o.ID[idx+1:]
	}
	return o.ID
}
