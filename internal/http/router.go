package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"pizzaria-pdv-services/internal/config"
	"pizzaria-pdv-services/internal/http/handlers"
	"pizzaria-pdv-services/internal/middleware"
)

func NewRouter(h *handlers.Handler, cfg config.Config) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID())
	r.Use(middleware.Telemetry(h.Logger))

	if cfg.Env == "development" || len(cfg.CorsAllowedOrigins) > 0 {
		options := cors.Options{
			AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{
				"Accept",
				"Authorization",
				"Content-Type",
				"X-Requested-With",
				"Cache-Control",
				"Pragma",
			},
			AllowCredentials: true,
			MaxAge:           300,
		}
		if cfg.Env == "development" {
			options.AllowOriginFunc = func(_ *http.Request, origin string) bool {
				return true
			}
		} else {
			options.AllowedOrigins = cfg.CorsAllowedOrigins
		}
		r.Use(cors.Handler(options))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/menu", h.MenuGet)
		r.Post("/orders", h.OrderCreate)
		r.Post("/orders/interpret", h.OrderInterpret)

		r.Get("/whatsapp/webhook", h.WhatsAppVerify)
		r.Post("/whatsapp/webhook", h.WhatsAppWebhook)
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.AdminAuth(cfg.JWTSecret))

		r.Get("/orders/history", h.OrdersHistory)
		r.Post("/orders/{orderId}/archive", h.OrderArchive)
		r.Post("/sangria", h.SangriaCreate)
		r.Post("/menu/edit", h.MenuEdit)
	})

	return r
}
