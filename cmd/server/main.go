package main

import (
	"time"

	"go.uber.org/zap"

	"fieldforce/config"
	"fieldforce/internal/api"
	"fieldforce/internal/lifecycle"
	"fieldforce/internal/notify"
	"fieldforce/internal/repository"
	"fieldforce/internal/service"
	"fieldforce/pkg/db"
	"fieldforce/pkg/logger"
	"fieldforce/pkg/mq"
	"fieldforce/pkg/redis"
	"fieldforce/pkg/util"
)

func main() {
	cfg := config.Load()

	log := logger.NewLogger("server")
	defer log.Sync()

	log.Info("Starting fieldforce server...",
		zap.String("db_host", cfg.DB.Host),
		zap.Int("db_port", cfg.DB.Port),
		zap.String("mq_url", cfg.MQ.URL),
	)

	dbConn, err := db.NewConnection(cfg.DB, log)
	if err != nil {
		log.Fatal("Failed to init DB", zap.Error(err))
	}
	defer dbConn.Close()

	rdb := redis.NewClient(cfg.Redis)
	defer rdb.Close()

	publisher, err := mq.NewPublisher(cfg.MQ.URL, log)
	if err != nil {
		log.Fatal("Failed to init MQ publisher", zap.Error(err))
	}
	defer publisher.Close()

	// Repositories
	taskRepo := repository.NewTaskRepository(dbConn, log)
	updateRepo := repository.NewDailyUpdateRepository(dbConn, log)
	projectRepo := repository.NewProjectRepository(dbConn, log)
	reportRepo := repository.NewServiceReportRepository(dbConn, log)
	userRepo := repository.NewUserRepository(dbConn, log)

	// Engine
	notifier := notify.NewMQNotifier(publisher, log)
	locker := util.NewTaskLock(rdb, 30*time.Second, log)
	engine := lifecycle.NewEngine(
		taskRepo, updateRepo, projectRepo, reportRepo, userRepo,
		notifier, locker, log,
	)

	// HTTP
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret)
	router := api.NewRouter(
		api.NewAuthHandler(authService, log),
		api.NewTaskHandler(engine, taskRepo, log),
		api.NewProjectHandler(engine, projectRepo, taskRepo, log),
		api.NewDailyUpdateHandler(engine, updateRepo, log),
		cfg.JWT.Secret,
		dbConn,
	)

	log.Info("HTTP server listening", zap.String("port", cfg.Server.Port))
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatal("HTTP server crashed", zap.Error(err))
	}
}
