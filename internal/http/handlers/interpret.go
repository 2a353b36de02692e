package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"pizzaria-pdv-services/internal/llm"
	"pizzaria-pdv-services/internal/order"
	"pizzaria-pdv-services/pkg/response"
)

type interpretRequest struct {
	Message      string       `json:"message"`
	History      []llm.Turn   `json:"history"`
	CurrentLines []order.Line `json:"currentLines"`
}

type interpretResponse struct {
	Action                string       `json:"action"`
	Lines                 []order.Line `json:"lines"`
	Address               string       `json:"address,omitempty"`
	PaymentMethod         string       `json:"paymentMethod,omitempty"`
	Answer                string       `json:"answer,omitempty"`
	ClarificationQuestion string       `json:"clarificationQuestion,omitempty"`
}

// OrderInterpret runs one free-text message through the interpreter and
// re-prices every extracted item against the live menu. Prices coming
// back from the model are never billed.
func (h *Handler) OrderInterpret(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var body interpretRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if strings.TrimSpace(body.Message) == "" {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "message is required")
		return
	}

	catalog, err := h.Menu.Catalog(ctx)
	if err != nil {
		h.Logger.Error("menu fetch failed", zap.Error(err))
		response.Error(w, http.StatusServiceUnavailable, "UPSTREAM_UNAVAILABLE", "Menu is unavailable")
		return
	}

	result, err := h.AI.Interpret(ctx, llm.Request{
		Message:      body.Message,
		History:      body.History,
		CurrentLines: body.CurrentLines,
		Catalog:      catalog,
	})
	if err != nil {
		h.Logger.Error("interpretation failed", zap.Error(err))
		response.Error(w, http.StatusServiceUnavailable, "UPSTREAM_UNAVAILABLE", "Interpreter is unavailable")
		return
	}

	lines := order.ResolveAll(result.Items, catalog)
	response.JSON(w, http.StatusOK, interpretResponse{
		Action:                result.Action,
		Lines:                 lines,
		Address:               result.Address,
		PaymentMethod:         result.PaymentMethod,
		Answer:                result.Answer,
		ClarificationQuestion: result.ClarificationQuestion,
	})
}
