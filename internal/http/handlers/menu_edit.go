package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"pizzaria-pdv-services/internal/sheets"
	"pizzaria-pdv-services/pkg/response"
)

type menuEditRequest struct {
	Action    string            `json:"action"`
	ItemID    string            `json:"itemId"`
	Fields    map[string]string `json:"fields"`
	Available *bool             `json:"available"`
}

// MenuEdit applies one edit to the menu sheet. Actions: add, update,
// delete, set_availability.
func (h *Handler) MenuEdit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.MenuEditor == nil {
		response.Error(w, http.StatusServiceUnavailable, "UPSTREAM_UNAVAILABLE", "Menu editing is not configured")
		return
	}

	var body menuEditRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	var err error
	switch strings.ToLower(strings.TrimSpace(body.Action)) {
	case "add":
		if len(body.Fields) == 0 {
			response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "fields are required for add")
			return
		}
		err = h.MenuEditor.AddItem(ctx, body.Fields)
	case "update":
		if body.ItemID == "" || len(body.Fields) == 0 {
			response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "itemId and fields are required for update")
			return
		}
		err = h.MenuEditor.UpdateItem(ctx, body.ItemID, body.Fields)
	case "delete":
		if body.ItemID == "" {
			response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "itemId is required for delete")
			return
		}
		err = h.MenuEditor.DeleteItem(ctx, body.ItemID)
	case "set_availability":
		if body.ItemID == "" || body.Available == nil {
			response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "itemId and available are required")
			return
		}
		err = h.MenuEditor.SetAvailability(ctx, body.ItemID, *body.Available)
	default:
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "action must be add, update, delete or set_availability")
		return
	}

	if err != nil {
		if errors.Is(err, sheets.ErrItemNotFound) {
			response.Error(w, http.StatusNotFound, "NOT_FOUND", "Menu item not found")
			return
		}
		h.Logger.Error("menu edit failed",
			zap.String("action", body.Action), zap.String("itemId", body.ItemID), zap.Error(err))
		response.Error(w, http.StatusServiceUnavailable, "UPSTREAM_UNAVAILABLE", "Could not apply the menu edit")
		return
	}

	response.JSON(w, http.StatusOK, map[string]any{"action": body.Action, "itemId": body.ItemID})
}
