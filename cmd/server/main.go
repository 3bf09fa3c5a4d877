package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/Ali506108/Chat-Service/internal/api"
	"github.com/Ali506108/Chat-Service/internal/cache"
	"github.com/Ali506108/Chat-Service/internal/config"
	"github.com/Ali506108/Chat-Service/internal/events"
	"github.com/Ali506108/Chat-Service/internal/logger"
	"github.com/Ali506108/Chat-Service/internal/metrics"
	"github.com/Ali506108/Chat-Service/internal/repository"
	"github.com/Ali506108/Chat-Service/internal/service"
	"github.com/Ali506108/Chat-Service/internal/ws"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load("config/config.yaml")
	if err != nil {
		log.Fatalf("config load: %v", err)
	}

	zlog, err := logger.New(logger.Config{Development: cfg.AppEnv == "development"})
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer zlog.Sync()

	mongoClient, err := repository.NewMongoClient(cfg.MongoURI)
	if err != nil {
		zlog.Fatalw("mongo connect", "err", err)
	}
	db := mongoClient.Database(cfg.MongoDB)

	redisCli, err := cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		zlog.Fatalw("redis connect", "err", err)
	}

	var producer service.EventPublisher
	if len(cfg.KafkaBrokers) > 0 && cfg.KafkaTopic != "" {
		p := events.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer p.Close()
		producer = p
	}

	msgSvc := service.NewMessageService(repository.NewMessageRepository(db), producer, zlog)
	groupSvc := service.NewGroupService(
		repository.NewGroupRepository(db),
		cache.NewGroupCache(redisCli, cfg.GroupCacheTTL),
		zlog,
	)
	directSvc := service.NewDirectService(repository.NewDirectRepository(db))

	hub := ws.NewHub(cfg.WSSendBuffer)
	wsOpts := ws.Options{
		WriteWait:      cfg.WSWriteWait,
		PongWait:       cfg.WSPongWait,
		PingPeriod:     cfg.WSPingPeriod,
		MaxMessageSize: cfg.WSMaxMessageSize,
	}

	app := api.NewServer(groupSvc, msgSvc, directSvc, hub, msgSvc, wsOpts, zlog)

	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		zlog.Infow("metrics listener up", "port", cfg.MetricsPort)
		if err := http.ListenAndServe(":"+cfg.MetricsPort, mux); err != nil {
			zlog.Errorw("metrics listener", "err", err)
		}
	}()

	errs := make(chan error, 1)
	go func() {
		zlog.Infow("chat service up", "port", cfg.AppPort)
		errs <- app.Listen(":" + cfg.AppPort)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errs:
		zlog.Fatalw("server error", "err", err)
	case s := <-sig:
		zlog.Infow("signal received", "signal", s.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		zlog.Errorw("fiber shutdown", "err", err)
	}
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		zlog.Errorw("mongo disconnect", "err", err)
	}
	if err := redisCli.Close(); err != nil {
		zlog.Errorw("redis close", "err", err)
	}
	zlog.Info("shutdown complete")
}
