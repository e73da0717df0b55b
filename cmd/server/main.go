package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SambridhiGhimire/Architech-bidding/internal/api"
	"github.com/SambridhiGhimire/Architech-bidding/internal/core/service"
	"github.com/SambridhiGhimire/Architech-bidding/internal/infrastructure/config"
	mongodb "github.com/SambridhiGhimire/Architech-bidding/internal/infrastructure/db/mongo"
	redisdb "github.com/SambridhiGhimire/Architech-bidding/internal/infrastructure/db/redis"
	"github.com/SambridhiGhimire/Architech-bidding/internal/infrastructure/queue"
	"github.com/SambridhiGhimire/Architech-bidding/internal/infrastructure/storage"
	"github.com/SambridhiGhimire/Architech-bidding/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fallback := logger.Init(logger.Options{})
		fallback.Fatal().Err(err).Msg("configuration error")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// --- Backing stores ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	rdb, err := redisdb.Connect(ctx, cfg.Redis.Addr, cfg.Redis.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	fileStore, err := storage.NewLocalStore(cfg.UploadDir)
	if err != nil {
		log.Fatal().Err(err).Msg("upload store setup failed")
	}

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	projectRepo := mongodb.NewProjectRepository(db)
	bidRepo := mongodb.NewBidRepository(db)
	messageRepo := mongodb.NewMessageRepository(db)
	ratingRepo := mongodb.NewRatingRepository(db)
	activityRepo := mongodb.NewActivityRepository(db)
	unreadCache := redisdb.NewUnreadCache(rdb, cfg.Redis.UnreadTTL, logger.Component("unread_cache"))

	// --- Activity feed pipeline ---
	activityService := service.NewActivityService(activityRepo, log)
	dispatcher := queue.NewDispatcher(cfg.Workers, activityService, logger.Component("activity_dispatcher"))
	dispatcher.Start(ctx)

	// --- Core services ---
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	projectService := service.NewProjectService(projectRepo, bidRepo, userRepo, dispatcher, log)
	bidService := service.NewBidService(bidRepo, projectRepo, userRepo, dispatcher, log)
	messageService := service.NewMessageService(messageRepo, userRepo, projectRepo, unreadCache, log)
	ratingService := service.NewRatingService(ratingRepo, projectRepo, bidRepo, userRepo, dispatcher, log)

	e := api.NewRouter(api.Deps{
		Auth:      authService,
		Projects:  projectService,
		Bids:      bidService,
		Messages:  messageService,
		Ratings:   ratingService,
		Activity:  activityService,
		Files:     fileStore,
		DB:        db,
		Redis:     rdb,
		JWTSecret: cfg.JWTSecret,
		UploadDir: cfg.UploadDir,
		Logger:    log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		os.Exit(1)
	}
}
