package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"pizzaria-pdv-services/internal/middleware"
	"pizzaria-pdv-services/internal/sheets"
	"pizzaria-pdv-services/pkg/response"
)

type sangriaRequest struct {
	Amount float64 `json:"amount"`
	Reason string  `json:"reason"`
}

const cashRegisterKey = "config/cash_register"

// SangriaCreate registers a cash withdrawal: appended to the sangrias
// sheet and mirrored on the cash-register document for the day's
// closing math.
func (h *Handler) SangriaCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var body sangriaRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if body.Amount <= 0 {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "amount must be positive")
		return
	}
	body.Reason = strings.TrimSpace(body.Reason)
	if body.Reason == "" {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "reason is required")
		return
	}

	operator := ""
	if claims, ok := middleware.GetClaims(ctx); ok {
		operator = claims.Email
	}
	at := time.Now().In(h.location())

	if h.Sheets == nil || h.Config.SpreadsheetID == "" {
		response.Error(w, http.StatusServiceUnavailable, "UPSTREAM_UNAVAILABLE", "Sangria sheet is not configured")
		return
	}
	row := sheets.SangriaRow(at, body.Amount, body.Reason, operator)
	if err := h.Sheets.AppendRow(ctx, h.Config.SpreadsheetID, h.Config.SangriasSheet, row); err != nil {
		h.Logger.Error("sangria append failed", zap.Error(err))
		response.Error(w, http.StatusServiceUnavailable, "UPSTREAM_UNAVAILABLE", "Could not write to the sangria sheet")
		return
	}

	entry := map[string]any{
		"amount":   body.Amount,
		"reason":   body.Reason,
		"operator": operator,
		"at":       at.Format(time.RFC3339),
	}
	if err := h.Store.AppendToArray(ctx, cashRegisterKey, "sangrias", entry); err != nil {
		h.Logger.Error("cash register update failed", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Registered on sheet but cash register update failed")
		return
	}

	h.Logger.Info("sangria registered",
		zap.Float64("amount", body.Amount), zap.String("operator", operator))
	response.JSON(w, http.StatusCreated, entry)
}
