package main

import (
	"context"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"car-agent/config"
	httpLayer "car-agent/http"
	"car-agent/logger"
	"car-agent/repository"
	"car-agent/service"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.AppEnv)
	if err != nil {
		stdlog.Fatalf("error initializing logger: %v", err)
	}
	defer log.Sync()

	catalog := repository.NewCSVCatalog(cfg.CatalogPath, log.With("component", "catalog"))

	var store repository.ConversationStore
	if cfg.RedisAddr != "" {
		store = repository.NewRedisConversationStore(cfg.RedisAddr, cfg.ConversationTTL,
			log.With("component", "conversations"))
	} else {
		store = repository.NewMemoryConversationStore()
	}

	aiService := service.NewAIService(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.LLMTimeout,
		log.With("component", "ai"))
	chatService := service.NewChatService(aiService, catalog, log.With("component", "chat"))
	financingService := service.NewFinancingService(cfg.InterestRate, cfg.MinTerm, cfg.MaxTerm,
		log.With("component", "financing"))
	twilioService := service.NewTwilioService(cfg.TwilioAccountSID, cfg.TwilioAuthToken,
		cfg.TwilioPhoneNumber, log.With("component", "twilio"))

	chatHandler := httpLayer.NewChatHandler(chatService, log.With("handler", "chat"))
	recommendationHandler := httpLayer.NewRecommendationHandler(catalog, log.With("handler", "recommendations"))
	carHandler := httpLayer.NewCarHandler(catalog, log.With("handler", "car"))
	financingHandler := httpLayer.NewFinancingHandler(financingService, log.With("handler", "financing"))
	whatsappHandler := httpLayer.NewWhatsAppHandler(chatService, store, twilioService,
		log.With("handler", "whatsapp"))

	rateLimiter := httpLayer.NewRateLimiter(5, time.Minute)
	defer rateLimiter.Stop()

	mux := http.NewServeMux()
	mux.Handle(
		"/api/chat",
		httpLayer.RateLimitMiddleware(
			rateLimiter,
			httpLayer.ClientIPKey,
			http.HandlerFunc(chatHandler.Chat),
		),
	)

	mux.Handle(
		"/api/recommendations",
		httpLayer.RateLimitMiddleware(
			rateLimiter,
			httpLayer.ClientIPKey,
			http.HandlerFunc(recommendationHandler.Recommend),
		),
	)

	mux.Handle(
		"/api/car/{id}",
		httpLayer.RateLimitMiddleware(
			rateLimiter,
			httpLayer.ClientIPKey,
			http.HandlerFunc(carHandler.GetCar),
		),
	)

	mux.Handle(
		"/api/financing",
		httpLayer.RateLimitMiddleware(
			rateLimiter,
			httpLayer.ClientIPKey,
			http.HandlerFunc(financingHandler.CalculateFinancing),
		),
	)

	mux.Handle(
		"/whatsapp/webhook",
		httpLayer.RateLimitMiddleware(
			rateLimiter,
			httpLayer.SenderKey,
			http.HandlerFunc(whatsappHandler.Webhook),
		),
	)

	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Infof("🚀 API corriendo en http://localhost:%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Errorw("error starting server", "error", err)
		return
	case <-quit:
		log.Infow("shutting down server")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Errorw("error during server shutdown", "error", err)
	}

	log.Infow("server exited")
}
