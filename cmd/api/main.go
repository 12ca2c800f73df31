package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/BruksfildServices01/barber-agenda/internal/audit"
	"github.com/BruksfildServices01/barber-agenda/internal/config"
	dbpkg "github.com/BruksfildServices01/barber-agenda/internal/db"
	"github.com/BruksfildServices01/barber-agenda/internal/infra/ledger"
	"github.com/BruksfildServices01/barber-agenda/internal/infra/lock"
	infraRepo "github.com/BruksfildServices01/barber-agenda/internal/infra/repository"
	"github.com/BruksfildServices01/barber-agenda/internal/logging"
	"github.com/BruksfildServices01/barber-agenda/internal/metrics"
	"github.com/BruksfildServices01/barber-agenda/internal/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.NewWithWriter(os.Stderr, "", true).Fatal().Err(err).Msg("failed to load config")
	}

	log := logging.New(cfg.Log.Level, cfg.IsProduction())

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	metrics.Register()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ======================================================
	// LOCK
	// ======================================================
	var locker lock.Locker = lock.NewMemoryLocker()
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("failed to connect redis")
		}
		locker = lock.NewRedisLocker(rdb, time.Duration(cfg.Booking.LockTTLSeconds)*time.Second, log)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("using redis booking lock")
	}

	// ======================================================
	// LEDGER
	// ======================================================
	var publisher ledger.Publisher = ledger.NewLogPublisher(log)
	if cfg.RabbitMQ.DSN != "" {
		conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect rabbitmq")
		}
		defer conn.Close()

		ch, err := conn.Channel()
		if err != nil {
			log.Fatal().Err(err).Msg("failed to open rabbitmq channel")
		}
		defer ch.Close()

		if err := ledger.DeclareQueue(ch, cfg.RabbitMQ.Queue); err != nil {
			log.Fatal().Err(err).Str("queue", cfg.RabbitMQ.Queue).Msg("failed to declare queue")
		}
		publisher = ledger.NewAMQPPublisher(ch, cfg.RabbitMQ.Queue, time.Duration(cfg.RabbitMQ.PublishTimeout)*time.Second)
		log.Info().Str("queue", cfg.RabbitMQ.Queue).Msg("publishing revenue records to rabbitmq")
	}

	revenue := ledger.NewDispatcher(publisher, infraRepo.NewRevenueGormRepository(db), log)
	defer revenue.Close()

	if err := revenue.Replay(ctx, 500); err != nil {
		log.Warn().Err(err).Msg("failed to replay unpublished revenue records")
	}

	// ======================================================
	// AUDIT
	// ======================================================
	recorder := audit.NewRecorder(db)
	auditDispatcher := audit.NewDispatcher(recorder, log)
	defer auditDispatcher.Close()

	// ======================================================
	// HTTP
	// ======================================================
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	routes.RegisterRoutes(r, routes.Deps{
		DB:       db,
		Config:   cfg,
		Log:      log,
		Locker:   locker,
		Audit:    auditDispatcher,
		Recorder: recorder,
		Revenue:  revenue,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
