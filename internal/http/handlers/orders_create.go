package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"pizzaria-pdv-services/internal/order"
	"pizzaria-pdv-services/pkg/response"
)

type createOrderRequest struct {
	CustomerName    string         `json:"customerName"`
	CustomerContact string         `json:"customerContact"`
	IsPickup        bool           `json:"isPickup"`
	Address         *order.Address `json:"address"`
	Items           []order.AIItem `json:"items"`
	Discount        float64        `json:"discount"`
	Payment         order.Payment  `json:"payment"`
	PaymentMethod   string         `json:"paymentMethod"`
	Observation     string         `json:"observation"`
}

type createOrderResponse struct {
	OrderID            string  `json:"orderId"`
	DuplicateFound     bool    `json:"duplicateFound"`
	DuplicateCreatedAt string  `json:"duplicateCreatedAt,omitempty"`
	FinalTotal         float64 `json:"finalTotal"`
	WhatsAppMessageURL string  `json:"whatsappMessageUrl,omitempty"`
	Persisted          bool    `json:"persisted"`
	PersistError       string  `json:"persistError,omitempty"`
}

// OrderCreate is the counter flow: the attendant types the order, the
// service prices it from the live menu, suppresses recent duplicates
// and hands back a wa.me link with the kitchen ticket.
func (h *Handler) OrderCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var body createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	body.CustomerName = strings.TrimSpace(body.CustomerName)
	if body.CustomerName == "" {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "customerName is required")
		return
	}
	if len(body.Items) == 0 {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "items must not be empty")
		return
	}

	catalog, err := h.Menu.Catalog(ctx)
	if err != nil {
		h.Logger.Error("menu fetch failed", zap.Error(err))
		response.Error(w, http.StatusServiceUnavailable, "UPSTREAM_UNAVAILABLE", "Menu is unavailable")
		return
	}

	lines := order.ResolveAll(body.Items, catalog)
	if len(lines) == 0 {
		response.Error(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "No item matched the menu")
		return
	}

	deliveryFee := 0.0
	if !body.IsPickup && body.Address != nil {
		deliveryFee = catalog.DeliveryFeeFor(body.Address.Neighborhood)
	}
	totals := order.ComputeTotals(lines, deliveryFee, body.Discount)

	payment := body.Payment
	if payment.IsZero() && body.PaymentMethod != "" {
		payment = order.ParsePayment(body.PaymentMethod, totals.FinalTotal)
	}
	if payment.IsZero() {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "payment method is required")
		return
	}

	draft := order.Draft{
		Customer: order.Customer{
			Name:     body.CustomerName,
			Phone:    strings.TrimSpace(body.CustomerContact),
			IsPickup: body.IsPickup,
		},
		Address:     body.Address,
		Lines:       lines,
		Totals:      totals,
		Payment:     payment,
		Observation: body.Observation,
	}

	res, err := h.Orders.Place(ctx, draft)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrUnhashable):
			response.Error(w, http.StatusUnprocessableEntity, "HASH_ERROR", "Order items could not be processed")
		case errors.Is(err, order.ErrInvalid):
			response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		default:
			h.Logger.Error("order placement failed", zap.Error(err))
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Could not place order")
		}
		return
	}

	if res.Duplicate != nil {
		response.JSON(w, http.StatusOK, createOrderResponse{
			OrderID:            res.Duplicate.ID,
			DuplicateFound:     true,
			DuplicateCreatedAt: res.Duplicate.CreatedAt.Format("15:04"),
			FinalTotal:         res.Duplicate.Totals.FinalTotal,
		})
		return
	}

	out := createOrderResponse{
		OrderID:            res.Order.ID,
		FinalTotal:         res.Order.Totals.FinalTotal,
		WhatsAppMessageURL: h.kitchenTicketURL(res.Order),
		Persisted:          res.PersistErr == nil,
	}
	if res.PersistErr != nil {
		out.PersistError = res.PersistErr.Error()
	}
	response.JSON(w, http.StatusCreated, out)
}

// kitchenTicketURL builds the wa.me link that opens WhatsApp with the
// kitchen ticket pre-filled for the store's number.
func (h *Handler) kitchenTicketURL(o *order.Order) string {
	phone := strings.TrimLeft(strings.TrimSpace(h.Config.StoreWhatsApp), "+")
	if phone == "" {
		return ""
	}
	return fmt.Sprintf("https://wa.me/%s?text=%s", phone, url.QueryEscape(kitchenTicket(o)))
}

func kitchenTicket(o *order.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*PEDIDO %s*\n", o.ShortID())
	fmt.Fprintf(&b, "Cliente: %s\n", o.Customer.Name)
	if o.Customer.Phone != "" {
		fmt.Fprintf(&b, "Contato: %s\n", o.Customer.Phone)
	}
	if o.Customer.IsPickup {
		b.WriteString("Retirada no Balcão\n")
	} else if o.Address != nil {
		fmt.Fprintf(&b, "Entrega: %s", o.Address.Street)
		if o.Address.Number != "" {
			fmt.Fprintf(&b, ", %s", o.Address.Number)
		}
		if o.Address.Neighborhood != "" {
			fmt.Fprintf(&b, " - %s", o.Address.Neighborhood)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	for _, line := range o.Lines {
		qty := line.Quantity
		if qty <= 0 {
			qty = 1
		}
		fmt.Fprintf(&b, "%dx %s - %s\n", qty, line.Name, order.FormatBRL(line.Total()))
		for _, extra := range line.Extras {
			fmt.Fprintf(&b, "   + %s\n", extra.Name)
		}
		if line.Notes != "" {
			fmt.Fprintf(&b, "   Obs: %s\n", line.Notes)
		}
	}
	if o.Totals.DeliveryFee > 0 {
		fmt.Fprintf(&b, "\nTaxa de entrega: %s", order.FormatBRL(o.Totals.DeliveryFee))
	}
	if o.Totals.Discount > 0 {
		fmt.Fprintf(&b, "\nDesconto: %s", order.FormatBRL(o.Totals.Discount))
	}
	fmt.Fprintf(&b, "\n*Total: %s*\n", order.FormatBRL(o.Totals.FinalTotal))
	fmt.Fprintf(&b, "Pagamento: %s", o.Payment.Label())
	if o.Observation != "" {
		fmt.Fprintf(&b, "\nObs: %s", o.Observation)
	}
	return b.String()
}
