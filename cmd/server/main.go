package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/iliyamo/school-community-platform/internal/config"
	"github.com/iliyamo/school-community-platform/internal/database"
	"github.com/iliyamo/school-community-platform/internal/handler"
	"github.com/iliyamo/school-community-platform/internal/middleware"
	"github.com/iliyamo/school-community-platform/internal/queue"
	"github.com/iliyamo/school-community-platform/internal/repository"
	"github.com/iliyamo/school-community-platform/internal/router"
	"github.com/iliyamo/school-community-platform/internal/service"
	"github.com/iliyamo/school-community-platform/internal/utils"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	logger := utils.NewLogger(cfg.Env)
	defer func() { _ = logger.Sync() }()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database open: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.Migrate(ctx, db); err != nil {
		cancel()
		log.Fatalf("migrate: %v", err)
	}
	cancel()

	rdb := config.NewRedisClient()

	// Repositories.
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	posts := repository.NewPostRepo(db)
	comments := repository.NewCommentRepo(db)
	groups := repository.NewGroupRepo(db)
	messages := repository.NewMessageRepo(db)
	files := repository.NewFileRepo(db)
	events := repository.NewEventRepo(db)
	reports := repository.NewReportRepo(db)
	notifications := repository.NewNotificationRepo(db)
	badges := repository.NewBadgeRepo(db)
	recognitions := repository.NewRecognitionRepo(db)
	stats := repository.NewStatsRepo(db)

	// Services.
	notifier := service.NewNotifier(users, groups, notifications, logger)
	resolver := service.NewResolver(reports, posts, comments, files, logger)
	uploads := handler.NewUploadStore(cfg.UploadDir)

	h := router.Handlers{
		Auth:          handler.NewAuthHandler(cfg, users, tokens),
		Users:         handler.NewUserHandler(users, badges),
		Posts:         handler.NewPostHandler(posts, comments, groups, users, notifier),
		Groups:        handler.NewGroupHandler(groups, posts, messages, users, notifier, uploads),
		Files:         handler.NewFileHandler(files, uploads),
		Events:        handler.NewEventHandler(events, notifier, logger),
		Notifications: handler.NewNotificationHandler(notifications),
		Reports:       handler.NewReportHandler(reports, resolver),
		Admin:         handler.NewAdminHandler(users, posts, files, tokens),
		Badges:        handler.NewBadgeHandler(badges, users),
		Recognitions:  handler.NewRecognitionHandler(recognitions, users),
		Stats:         handler.NewStatsHandler(stats),
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = utils.NewRequestValidator()
	e.Use(echomw.Recover())
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	e.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	verifiedMW := middleware.RequireVerified(users)
	router.Register(e, h, jwtMW, verifiedMW)

	// Background audit-trail consumer.
	go func() {
		if err := queue.StartAuditConsumer(); err != nil {
			logger.Warn("audit consumer stopped", zap.Error(err))
		}
	}()

	addr := ":" + cfg.Port
	logger.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
