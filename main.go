package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pizzaria-pdv-services/internal/bot"
	"pizzaria-pdv-services/internal/config"
	"pizzaria-pdv-services/internal/db"
	httpapi "pizzaria-pdv-services/internal/http"
	"pizzaria-pdv-services/internal/http/handlers"
	"pizzaria-pdv-services/internal/llm"
	"pizzaria-pdv-services/internal/logger"
	"pizzaria-pdv-services/internal/menu"
	"pizzaria-pdv-services/internal/order"
	"pizzaria-pdv-services/internal/queue"
	"pizzaria-pdv-services/internal/sheets"
	"pizzaria-pdv-services/internal/store"
	"pizzaria-pdv-services/internal/whatsapp"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log, err := logger.New(cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Warn("invalid timezone, falling back to UTC", zap.String("timezone", cfg.Timezone))
		location = time.UTC
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	defer pool.Close()

	docStore := store.New(pool)

	waClient := whatsapp.New(cfg.WhatsAppToken, cfg.WhatsAppPhoneID, log)

	var queueClient *queue.Client
	if cfg.RabbitMQURL != "" {
		qc, err := queue.New(cfg.RabbitMQURL)
		if err != nil {
			if cfg.Env == "production" {
				log.Fatal("rabbitmq connection failed", zap.Error(err))
			}
			log.Warn("rabbitmq connection failed; continuing without events", zap.Error(err))
			qc = nil
		}
		if qc != nil {
			if err := queue.EnsureEventsTopology(qc); err != nil {
				if cfg.Env == "production" {
					log.Fatal("rabbitmq topology failed", zap.Error(err))
				}
				log.Warn("rabbitmq topology failed; continuing without events", zap.Error(err))
				_ = qc.Close()
				qc = nil
			}
		}

		queueClient = qc
		if qc != nil {
			defer qc.Close()
		}

		if queueClient != nil {
			if cfg.RabbitMQWorkerMode == "daemon" {
				log.Info("kitchen notifier enabled", zap.String("mode", "daemon"))
				notifier := queue.NewKitchenNotifier(waClient, cfg.StoreWhatsApp, log)
				go func() {
					err := queueClient.ConsumeWithRetry(queue.KitchenQueue, notifier.Handle, 5, 5*time.Second)
					if err != nil {
						log.Error("consumer stopped", zap.Error(err))
					}
				}()
			} else {
				log.Info("kitchen notifier disabled", zap.String("mode", cfg.RabbitMQWorkerMode))
			}
		}
	} else {
		log.Info("event publishing disabled (RABBITMQ_URL is empty)")
	}
	publisher := queue.NewPublisher(queueClient)

	menuService := menu.NewService(menu.Config{
		MenuCSVURL:        cfg.MenuCSVURL,
		PromotionsCSVURL:  cfg.PromotionsCSVURL,
		DeliveryFeeCSVURL: cfg.DeliveryFeeCSVURL,
		BurgerCSVURL:      cfg.BurgerCSVURL,
		PizzaExtraCSVURL:  cfg.PizzaExtraCSVURL,
		ContactCSVURL:     cfg.ContactCSVURL,
	}, docStore, log)

	guard := order.NewDuplicateGuard(docStore, cfg.DuplicateWindow)
	orderService := order.NewService(docStore, guard, publisher, location, log)

	gemini := llm.NewGemini(cfg.GeminiAPIKey, cfg.GeminiModel, docStore, log)
	assembler := bot.NewAssembler(docStore, menuService, gemini, orderService, log)

	var transcriber *whatsapp.Transcriber
	if cfg.OpenAIAPIKey != "" {
		transcriber = whatsapp.NewTranscriber(cfg.OpenAIAPIKey)
	} else {
		log.Info("voice transcription disabled (OPENAI_API_KEY is empty)")
	}

	var sheetsClient *sheets.Client
	var menuEditor *sheets.Editor
	if cfg.GoogleCredentialsBase64 != "" {
		sheetsClient, err = sheets.NewClient(ctx, cfg.GoogleCredentialsBase64, log)
		if err != nil {
			if cfg.Env == "production" {
				log.Fatal("sheets client failed", zap.Error(err))
			}
			log.Warn("sheets client failed; archive and menu editing disabled", zap.Error(err))
		}
		if sheetsClient != nil && cfg.MenuSpreadsheetID != "" {
			menuEditor = sheets.NewEditor(sheetsClient, cfg.MenuSpreadsheetID, "", log)
		}
	} else {
		log.Info("sheets integration disabled (GOOGLE_CREDENTIALS_BASE64 is empty)")
	}

	h := &handlers.Handler{
		Logger:      log,
		Config:      cfg,
		Store:       docStore,
		Orders:      orderService,
		Menu:        menuService,
		Bot:         assembler,
		AI:          gemini,
		WhatsApp:    waClient,
		Transcriber: transcriber,
		Sheets:      sheetsClient,
		MenuEditor:  menuEditor,
		Publisher:   publisher,
		Location:    location,
	}

	apiServer := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpapi.NewRouter(h, cfg),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("pdv api ready", zap.String("base", "/api"))
		log.Info("pdv service listening", zap.String("addr", cfg.HTTPAddr))
		if err := apiServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(ctxShutdown); err != nil {
		log.Error("http server shutdown failed", zap.Error(err))
	}
}
