// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"readiness-service/internal/analysis"
	awsclients "readiness-service/internal/common/aws"
	"readiness-service/internal/common/config"
	"readiness-service/internal/common/database"
	"readiness-service/internal/common/logger"
	"readiness-service/internal/common/observability"
	"readiness-service/internal/common/workflow"
	"readiness-service/internal/leads"
	"readiness-service/internal/notify"
	"readiness-service/internal/report"
	"readiness-service/internal/server"
)

// retryWithBackoff attempts to execute a function with exponential backoff.
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting readiness service...",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs, err := observability.New(cfg.App.Name, cfg.Tracing)
	if err != nil {
		zapLog.Fatal("tracing init failed", zap.Error(err))
	}
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init PostgreSQL with retry (system of record, required) ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	leadRepo := leads.NewRepository(pg.DB)
	if err := leadRepo.EnsureSchema(ctx); err != nil {
		zapLog.Fatal("lead schema setup failed", zap.Error(err))
	}

	// --- Init Redis (analysis cache, optional) ---
	var redis *database.RedisClient
	if cfg.Analysis.CacheEnabled && cfg.Database.Redis.Address != "" {
		err = retryWithBackoff(func() error {
			var err error
			redis, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return redis.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			zapLog.Warn("redis unavailable, analysis cache disabled", zap.Error(err))
			redis = nil
		} else {
			defer redis.Close()
			zapLog.Info("Redis connected successfully")
		}
	}

	// --- Init Elasticsearch (lead search, optional) ---
	var esClient *database.ElasticsearchClient
	if len(cfg.Database.Elasticsearch.Addresses) > 0 {
		err = retryWithBackoff(func() error {
			var err error
			esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return esClient.Ping()
		}, 10, 2*time.Second, zapLog, "Elasticsearch connection")
		if err != nil {
			zapLog.Warn("elasticsearch unavailable, lead search disabled", zap.Error(err))
			esClient = nil
		} else {
			zapLog.Info("Elasticsearch connected successfully")
		}
	}

	// --- Init notification clients (optional) ---
	var emailSender *notify.EmailSender
	var deskNotifier *notify.DeskNotifier
	if cfg.Notifications.Email.Enabled || cfg.Notifications.SMS.Enabled {
		region := cfg.Notifications.AWS.Region

		if cfg.Notifications.Email.Enabled {
			sesClient, err := awsclients.NewSESClient(ctx, region)
			if err != nil {
				zapLog.Warn("ses init failed, report email disabled", zap.Error(err))
			} else {
				emailSender = notify.NewEmailSender(sesClient, cfg.Notifications.Email.FromEmail, log)
			}
		}

		if cfg.Notifications.SMS.Enabled {
			snsClient, err := awsclients.NewSNSClient(ctx, region)
			if err != nil {
				zapLog.Warn("sns init failed, desk sms disabled", zap.Error(err))
			} else {
				deskNotifier = notify.NewDeskNotifier(snsClient,
					cfg.Notifications.SMS.DeskNumber, cfg.Notifications.SMS.SMSSenderID, log)
			}
		}
	}

	// --- Init workflow client (optional) ---
	var workflowClient *workflow.Client
	if cfg.Workflow.Enabled {
		err = retryWithBackoff(func() error {
			var err error
			workflowClient, err = workflow.NewClientWithConfig(&workflow.ClientConfig{
				GatewayAddress:         cfg.Workflow.BrokerAddress,
				UsePlaintextConnection: true,
				ConnectionTimeout:      10 * time.Second,
				RequestTimeout:         config.GetDuration(cfg.Workflow.RequestTimeout),
			})
			return err
		}, 5, 2*time.Second, zapLog, "Zeebe client initialization")
		if err != nil {
			zapLog.Warn("zeebe unavailable, workflow publication disabled", zap.Error(err))
			workflowClient = nil
		} else {
			defer workflowClient.Close()
			zapLog.Info("Zeebe client connected successfully")
		}
	}

	// --- Build services ---
	completer := analysis.NewPerplexityClient(analysis.PerplexityOptions{
		BaseURL:        cfg.LLM.BaseURL,
		APIKey:         cfg.LLM.APIKey,
		Models:         cfg.LLM.Models,
		AttemptTimeout: config.GetDuration(cfg.LLM.AttemptTimeout),
		MaxTokens:      cfg.LLM.MaxTokens,
		Temperature:    cfg.LLM.Temperature,
	}, log)

	var cache *analysis.ReportCache
	if redis != nil {
		cache = analysis.NewReportCache(redis, time.Duration(cfg.Analysis.CacheTTL)*time.Second, log)
	}
	analysisSvc := analysis.NewService(completer, cache, log)

	rasterizer := report.NewChromeRasterizer(report.RasterizerConfig{
		Bin:           cfg.Browser.Bin,
		DebuggerURL:   cfg.Browser.DebuggerURL,
		RenderTimeout: config.GetDuration(cfg.Browser.RenderTimeout),
	})
	defer rasterizer.Shutdown()
	reportSvc := report.NewService(rasterizer, log)

	leadOpts := leads.ServiceOptions{
		Indexer:     leads.NewIndexer(esClient, cfg.Database.Elasticsearch.LeadIndex, log),
		MessageName: cfg.Workflow.MessageName,
	}
	if deskNotifier != nil {
		leadOpts.Notifier = deskNotifier
	}
	if workflowClient != nil {
		leadOpts.Workflow = workflowClient
	}
	leadSvc := leads.NewService(leadRepo, leadOpts, log)

	srv := server.New(server.Dependencies{
		Analysis: analysisSvc,
		Reports:  reportSvc,
		Leads:    leadSvc,
		Email:    emailSender,
		Tracing:  obs,
		Postgres: pg,
		Redis:    redis,
		ES:       esClient,
		Log:      log,
	})

	httpServer := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      srv.Handler(),
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("address", cfg.Server.Address))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLog.Info("Shutdown signal received, draining...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("http server shutdown failed", zap.Error(err))
	}

	zapLog.Info("Readiness service stopped")
}
