// Package main is the entry point for the API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/appforge-ai/assistant-platform/internal/action"
	"github.com/appforge-ai/assistant-platform/internal/config"
	"github.com/appforge-ai/assistant-platform/internal/events"
	"github.com/appforge-ai/assistant-platform/internal/handler"
	"github.com/appforge-ai/assistant-platform/internal/llm"
	"github.com/appforge-ai/assistant-platform/internal/middleware"
	"github.com/appforge-ai/assistant-platform/internal/orchestrator"
	"github.com/appforge-ai/assistant-platform/internal/project"
	"github.com/appforge-ai/assistant-platform/internal/prompt"
	"github.com/appforge-ai/assistant-platform/internal/service"
	"github.com/appforge-ai/assistant-platform/internal/store"
	"github.com/appforge-ai/assistant-platform/internal/upload"
	"github.com/appforge-ai/assistant-platform/pkg/logger"
	"github.com/appforge-ai/assistant-platform/pkg/tracing"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("starting assistant platform")

	ctx := context.Background()
	if cfg.TracingEnabled {
		tp, err := tracing.InitTracer(ctx, "assistant-platform", cfg.TracingEndpoint)
		if err != nil {
			log.Warn("failed to initialize tracing", zap.Error(err))
		} else {
			defer tracing.Shutdown(ctx, tp)
		}
	}

	// Durable stores.
	contexts, err := store.NewSQLite(cfg.ContextDBPath, log)
	if err != nil {
		log.Error("failed to open context store", zap.Error(err))
		os.Exit(1)
	}
	defer contexts.Close()

	projects, err := project.NewSQLite(cfg.ProjectDBPath)
	if err != nil {
		log.Error("failed to open project store", zap.Error(err))
		os.Exit(1)
	}
	defer projects.Close()

	if err := os.MkdirAll(cfg.StorageRoot, 0o755); err != nil {
		log.Error("failed to create storage root", zap.Error(err))
		os.Exit(1)
	}

	// Action layer.
	registry := action.NewRegistry()
	action.RegisterDefaults(registry)
	env := &action.Env{
		Projects:    projects,
		StorageRoot: cfg.StorageRoot,
		Logger:      log,
	}

	builder := prompt.NewBuilder(registry)

	// Chat backend.
	backend, err := llm.NewClient(llm.Provider(cfg.DefaultLLM), backendKey(cfg))
	if err != nil {
		log.Error("failed to create chat backend", zap.Error(err))
		os.Exit(1)
	}

	// Event feed: the in-process bus always runs; JetStream is optional.
	bus := events.NewBus()
	var natsClient *events.NATSClient
	if cfg.NATSURL != "" {
		natsClient, err = events.ConnectNATS(ctx, events.NATSConfig{
			URL:      cfg.NATSURL,
			CAFile:   cfg.NATSCAFile,
			CertFile: cfg.NATSCertFile,
			KeyFile:  cfg.NATSKeyFile,
			Token:    cfg.NATSToken,
		}, log)
		if err != nil {
			log.Warn("NATS unavailable, event feed is in-process only", zap.Error(err))
		} else {
			defer natsClient.Close()
		}
	}
	publisher := events.NewPublisher(bus, natsClient, log)

	router := orchestrator.NewRouter(registry, builder, contexts, env, backend, publisher, cfg.DefaultModel, log)
	defer router.Close()

	conversationSvc := service.NewConversationService(contexts, log)

	var uploader *upload.Uploader
	if cfg.UploadEndpoint != "" {
		uploader = upload.NewUploader(cfg.UploadEndpoint, cfg.UploadKeyID, cfg.UploadSecret, cfg.UploadChunkSize)
	}

	healthHandler := handler.NewHealthHandler(contexts)
	conversationHandler := handler.NewConversationHandler(conversationSvc, log)
	messageHandler := handler.NewMessageHandler(router, contexts, log)
	proposalHandler := handler.NewProposalHandler(router, log)
	actionHandler := handler.NewActionHandler(registry)
	streamHandler := handler.NewStreamHandler(bus, log)
	attachmentHandler := handler.NewAttachmentHandler(uploader, log)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(log))
	r.Use(middleware.SecurityHeaders)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposedHeaders:   []string{"Link", "X-Correlation-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWTSecret))
		r.Use(middleware.RateLimit(cfg.RateLimitRequests, cfg.RateLimitWindow))

		r.Get("/actions", actionHandler.List)

		r.Route("/proposals/{id}", func(r chi.Router) {
			r.Get("/", proposalHandler.Get)
			r.Post("/resolve", proposalHandler.Resolve)
		})

		r.Route("/conversations", func(r chi.Router) {
			r.Post("/", conversationHandler.Create)
			r.Get("/", conversationHandler.List)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", conversationHandler.Get)
				r.With(middleware.RequireScope("conversations:delete")).
					Delete("/", conversationHandler.Delete)

				r.Post("/messages", messageHandler.Send)
				r.Get("/messages", messageHandler.History)

				r.Get("/stream", streamHandler.Stream)

				r.Post("/attachments", attachmentHandler.Upload)
				r.Post("/attachments/cancel", attachmentHandler.Cancel)
			})
		})
	})

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      r,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info("server listening", zap.String("port", cfg.ServerPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	log.Info("server stopped")
}

// backendKey picks the API key matching the configured provider.
func backendKey(cfg *config.Config) string {
	if llm.Provider(cfg.DefaultLLM) == llm.ProviderOpenAI {
		return cfg.OpenAIAPIKey
	}
	return cfg.AnthropicAPIKey
}
