package handlers

import (
	"time"

	"go.uber.org/zap"

	"pizzaria-pdv-services/internal/bot"
	"pizzaria-pdv-services/internal/config"
	"pizzaria-pdv-services/internal/llm"
	"pizzaria-pdv-services/internal/menu"
	"pizzaria-pdv-services/internal/order"
	"pizzaria-pdv-services/internal/queue"
	"pizzaria-pdv-services/internal/sheets"
	"pizzaria-pdv-services/internal/store"
	"pizzaria-pdv-services/internal/whatsapp"
)

type Handler struct {
	Logger      *zap.Logger
	Config      config.Config
	Store       *store.Store
	Orders      *order.Service
	Menu        *menu.Service
	Bot         *bot.Assembler
	AI          llm.Interpreter
	WhatsApp    *whatsapp.Client
	Transcriber *whatsapp.Transcriber
	Sheets      *sheets.Client
	MenuEditor  *sheets.Editor
	Publisher   *queue.Publisher
	Location    *time.Location
}

func (h *Handler) location() *time.Location {
	if h.Location != nil {
		return h.Location
	}
	return time.UTC
}
