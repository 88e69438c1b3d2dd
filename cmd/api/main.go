package main

import (
	"context"
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

	"github.com/oakline-studio/crm-backend/internal/config"
	"github.com/oakline-studio/crm-backend/internal/infra/database"
	"github.com/oakline-studio/crm-backend/internal/infra/http/handlers"
	"github.com/oakline-studio/crm-backend/internal/infra/http/middleware"
	"github.com/oakline-studio/crm-backend/internal/infra/mail"
	"github.com/oakline-studio/crm-backend/internal/infra/queue"
	"github.com/oakline-studio/crm-backend/internal/ratelimit"
	"github.com/oakline-studio/crm-backend/internal/usecase"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logger.Info("shutdown signal received", zap.String("signal", sig.String()))
		cancel()
	}()

	db, err := database.NewDBConnection(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	defer db.Close()

	// Repositories
	contactRepo := database.NewContactRepository(db)
	activityRepo := database.NewActivityRepository(db)
	segmentRepo := database.NewSegmentRepository(db)
	templateRepo := database.NewTemplateRepository(db)
	campaignRepo := database.NewCampaignRepository(db)
	auditLogRepo := database.NewAuditLogRepository(db)

	// Audit pipeline. The API runs fine without RabbitMQ; auditing just
	// degrades to nothing.
	var audit usecase.AuditRecorder
	var rabbit *queue.RabbitMQ
	if cfg.RabbitMQURL != "" {
		rabbit, err = queue.NewRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			logger.Warn("rabbitmq unavailable, audit events will be dropped", zap.Error(err))
		} else {
			defer rabbit.Close()
			audit = queue.NewAuditProducer(rabbit.Ch, logger)

			worker := queue.NewWorker(rabbit.Ch, auditLogRepo, logger)
			if err := worker.Start(ctx, queue.QueueName); err != nil {
				logger.Error("failed to start audit worker", zap.Error(err))
			}
		}
	}

	// Shared sliding-window limiter: public form throttling and the hourly
	// outbound email budget both live here.
	limiter := ratelimit.NewLimiter()

	var transport usecase.EmailTransport
	if cfg.SMTPHost != "" {
		transport = mail.NewEmailSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, logger)
	}

	// Usecases
	captureUC := usecase.NewCaptureContactUseCase(contactRepo, activityRepo)
	deleteContactUC := usecase.NewDeleteContactUseCase(contactRepo, activityRepo, segmentRepo, campaignRepo, audit)
	createCampaignUC := usecase.NewCreateCampaignUseCase(campaignRepo, templateRepo, audit)
	enrollUC := usecase.NewEnrollContactsUseCase(campaignRepo, segmentRepo, audit)
	sendBatchUC := usecase.NewSendBatchUseCase(
		campaignRepo, contactRepo, activityRepo, templateRepo,
		transport, limiter, audit, logger,
		cfg.MailFrom, cfg.MaxEmailsPerHour,
	)

	// Handlers
	contactHandler := handlers.NewContactHandler(contactRepo, activityRepo, segmentRepo, captureUC, deleteContactUC, limiter)
	campaignHandler := handlers.NewCampaignHandler(campaignRepo, createCampaignUC, enrollUC, sendBatchUC)
	segmentHandler := handlers.NewSegmentHandler(segmentRepo)
	templateHandler := handlers.NewTemplateHandler(templateRepo)

	var healthHandler *handlers.HealthHandler
	if rabbit != nil {
		healthHandler = handlers.NewHealthHandler(db, rabbit.Conn, cfg.SMTPHost)
	} else {
		healthHandler = handlers.NewHealthHandler(db, nil, cfg.SMTPHost)
	}

	// Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	// Public surface
	r.Post("/contact-form", contactHandler.HandleCaptureForm)

	// Operator surface, role-gated by the auth proxy's resolved role
	r.Group(func(r chi.Router) {
		r.Use(middleware.Actor)
		r.Use(middleware.RequireRole(middleware.RoleAdmin, middleware.RoleModerator))

		r.Route("/contacts", func(r chi.Router) {
			r.Get("/", contactHandler.HandleList)
			r.Get("/{contactId}", contactHandler.HandleGet)
			r.Put("/{contactId}/status", contactHandler.HandleUpdateStatus)
			r.Put("/{contactId}/suppression", contactHandler.HandleSetSuppression)
			r.Put("/{contactId}/segments", contactHandler.HandleSetSegments)
			r.Post("/{contactId}/activities", contactHandler.HandleRecordActivity)
			r.Delete("/{contactId}", contactHandler.HandleDelete)
		})

		r.Route("/segments", func(r chi.Router) {
			r.Post("/", segmentHandler.HandleCreate)
			r.Get("/", segmentHandler.HandleList)
			r.Get("/{segmentId}/contacts", segmentHandler.HandleGetContacts)
			r.Post("/bulk-add", segmentHandler.HandleBulkAdd)
			r.Delete("/{segmentId}", segmentHandler.HandleDelete)
		})

		r.Route("/templates", func(r chi.Router) {
			r.Post("/", templateHandler.HandleCreate)
			r.Get("/", templateHandler.HandleList)
			r.Get("/{templateId}", templateHandler.HandleGet)
			r.Put("/{templateId}", templateHandler.HandleUpdate)
			r.Delete("/{templateId}", templateHandler.HandleDelete)
		})

		r.Route("/campaigns", func(r chi.Router) {
			r.Post("/", campaignHandler.HandleCreate)
			r.Get("/", campaignHandler.HandleList)
			r.Get("/{campaignId}", campaignHandler.HandleGet)
			r.Get("/{campaignId}/emails", campaignHandler.HandleListEmails)
			r.Post("/{campaignId}/contacts", campaignHandler.HandleAddContacts)
			r.Post("/{campaignId}/segments", campaignHandler.HandleAddSegment)
			r.Post("/{campaignId}/send", campaignHandler.HandleSend)
		})
	})

	server := &http.Server{
		Addr:    ":" + cfg.APIPort,
		Handler: r,
	}

	go func() {
		logger.Info("api server started", zap.String("port", cfg.APIPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("api server error", zap.Error(err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("api shutdown failed", zap.Error(err))
	}

	logger.Info("application shutdown complete")
}
