package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"fieldforce/config"
	"fieldforce/internal/lifecycle"
	"fieldforce/internal/notify"
	"fieldforce/internal/repository"
	"fieldforce/pkg/db"
	"fieldforce/pkg/logger"
	"fieldforce/pkg/mq"
	"fieldforce/pkg/redis"
	"fieldforce/pkg/util"
)

func main() {
	cfg := config.Load()

	log := logger.NewLogger("sweeper")
	defer log.Sync()

	log.Info("Starting fieldforce sweeper...",
		zap.String("schedule", cfg.Sweep.Schedule),
		zap.Bool("run_immediately", cfg.Sweep.RunImmediately),
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

	taskRepo := repository.NewTaskRepository(dbConn, log)
	updateRepo := repository.NewDailyUpdateRepository(dbConn, log)
	projectRepo := repository.NewProjectRepository(dbConn, log)
	reportRepo := repository.NewServiceReportRepository(dbConn, log)
	userRepo := repository.NewUserRepository(dbConn, log)

	notifier := notify.NewMQNotifier(publisher, log)
	locker := util.NewTaskLock(rdb, 30*time.Second, log)
	engine := lifecycle.NewEngine(
		taskRepo, updateRepo, projectRepo, reportRepo, userRepo,
		notifier, locker, log,
	)

	sweep := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		if err := engine.Sweep(ctx, time.Now()); err != nil {
			log.Error("Sweep failed", zap.Error(err))
		}
	}

	scheduler := cron.New(cron.WithSeconds())
	if _, err := scheduler.AddFunc(cfg.Sweep.Schedule, sweep); err != nil {
		log.Fatal("Failed to schedule sweep", zap.Error(err))
	}
	scheduler.Start()
	defer scheduler.Stop()

	if cfg.Sweep.RunImmediately {
		log.Info("Running initial sweep")
		sweep()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Sweeper shutting down")
}
