package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/SARVESHVARADKAR123/picshare/internal/cache"
	"github.com/SARVESHVARADKAR123/picshare/internal/config"
	"github.com/SARVESHVARADKAR123/picshare/internal/handler"
	"github.com/SARVESHVARADKAR123/picshare/internal/kafka"
	"github.com/SARVESHVARADKAR123/picshare/internal/observability"
	"github.com/SARVESHVARADKAR123/picshare/internal/outbox"
	"github.com/SARVESHVARADKAR123/picshare/internal/repository"
	"github.com/SARVESHVARADKAR123/picshare/internal/security"
	"github.com/SARVESHVARADKAR123/picshare/internal/service"
	"github.com/SARVESHVARADKAR123/picshare/internal/storage"
	"github.com/SARVESHVARADKAR123/picshare/internal/tx"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		observability.InitLogger("picshare-api", "info")
		observability.Log.Fatal("config load failed", zap.Error(err))
	}

	// Observability
	observability.InitLogger(cfg.ServiceName, cfg.LogLevel)
	log := observability.Log
	defer log.Sync()

	if cfg.TracingEnabled {
		tp, err := observability.InitTracer(cfg.ServiceName, cfg.JaegerURL)
		if err != nil {
			log.Fatal("failed to initialize tracer", zap.Error(err))
		}
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				log.Error("failed to shutdown tracer provider", zap.Error(err))
			}
		}()
	}

	// HTTP Server for Observability (Metrics & Health)
	obsMux := chi.NewRouter()
	obsMux.Handle("/metrics", promhttp.Handler())
	obsMux.Get("/health/live", observability.HealthLiveHandler)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	db, err := repository.NewDB(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("db open failed", zap.Error(err))
	}
	defer db.Close()

	if cfg.DBAutoMigrate {
		if err := repository.Migrate(ctx, db); err != nil {
			log.Fatal("db migrate failed", zap.Error(err))
		}
	}
	obsMux.Get("/health/ready", observability.HealthReadyHandler(db))

	go func() {
		log.Info("HTTP observability server started", zap.String("addr", cfg.ObsHTTPAddr))
		if err := http.ListenAndServe(cfg.ObsHTTPAddr, obsMux); err != nil {
			log.Error("HTTP observability server failed", zap.Error(err))
		}
	}()

	// Redis
	rdb := cache.New(cfg.RedisAddr)
	defer rdb.Close()

	// Object storage
	images, err := storage.NewImageStore(cfg.S3.Endpoint, cfg.S3.AccessKey, cfg.S3.SecretKey, cfg.S3.Bucket, cfg.S3.UseSSL)
	if err != nil {
		log.Fatal("object storage init failed", zap.Error(err))
	}
	if err := images.EnsureBucket(ctx); err != nil {
		log.Fatal("object storage bucket check failed", zap.String("bucket", cfg.S3.Bucket), zap.Error(err))
	}

	tokens, err := security.NewTokenCodec(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL())
	if err != nil {
		log.Fatal("token codec init failed", zap.Error(err))
	}

	// Outbox events reach Kafka only when brokers are configured.
	var events outbox.Recorder = outbox.Discard{}
	if cfg.KafkaBrokers != "" {
		outboxRepo := outbox.NewRepository(db)
		events = outboxRepo

		producer := kafka.NewProducer(cfg.KafkaBrokers)
		defer producer.Close()

		publisher := outbox.NewPublisher(outboxRepo, producer, cfg.KafkaTopicPrefix, cfg.OutboxPollInterval)
		go publisher.Start(ctx)
	} else {
		log.Warn("KAFKA_BROKERS not set, domain events are dropped")
	}

	// Repositories
	users := &repository.UserRepo{DB: db}
	posts := &repository.PostRepo{DB: db}
	comments := &repository.CommentRepo{DB: db}
	likes := &repository.LikeRepo{DB: db}
	follows := &repository.FollowRepo{DB: db}
	txMgr := &tx.Manager{DB: db}

	// Services
	authSvc := service.NewAuthService(users, txMgr, tokens, &cache.RevocationList{R: rdb}, events)
	userSvc := service.NewUserService(users, follows, posts, &cache.ProfileCache{R: rdb}, images)
	graphSvc := service.NewGraphService(follows, users, txMgr, events)
	postSvc := service.NewPostService(posts, comments, likes, follows, images, txMgr, events)
	commentSvc := service.NewCommentService(comments, posts, likes, txMgr, events)

	// HTTP server
	mux := handler.NewRouter(handler.Deps{
		Auth:           authSvc,
		Users:          userSvc,
		Graph:          graphSvc,
		Posts:          postSvc,
		Comments:       commentSvc,
		Images:         images,
		DB:             db,
		ServiceName:    cfg.ServiceName,
		RequestTimeout: cfg.RequestTimeout,
		MaxUploadBytes: cfg.MaxUploadBytes,
		PresignTTL:     cfg.S3.PresignTTL,
	})
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: mux}

	go func() {
		log.Info("HTTP started", zap.String("service", cfg.ServiceName), zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("received signal, initiating shutdown")
	cancel() // stop outbox publisher

	ctxShut, shutCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutCancel()

	if err := srv.Shutdown(ctxShut); err != nil {
		log.Error("HTTP shutdown failed", zap.Error(err))
	}
	log.Info("picshare stopped")
}
