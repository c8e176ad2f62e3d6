package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"fieldforce/config"
	mqcontracts "fieldforce/contracts/mq"
	"fieldforce/internal/mqhandler"
	"fieldforce/internal/repository"
	"fieldforce/pkg/db"
	"fieldforce/pkg/logger"
	"fieldforce/pkg/mq"
	"fieldforce/pkg/redis"
	"fieldforce/pkg/util"
)

func main() {
	cfg := config.Load()

	log := logger.NewLogger("worker")
	defer log.Sync()

	log.Info("Starting fieldforce worker...")

	rdb := redis.NewClient(cfg.Redis)
	defer rdb.Close()

	deduper := util.NewDeduper(rdb, time.Hour, log)

	dbConn, err := db.NewConnection(cfg.DB, log)
	if err != nil {
		log.Fatal("Failed to init DB", zap.Error(err))
	}
	defer dbConn.Close()

	logRepo := repository.NewNotificationLogRepository(dbConn, log)

	delayedHandler := mqhandler.NewTaskDelayedHandler(logRepo, deduper, log)
	maintenanceHandler := mqhandler.NewProjectMaintenanceHandler(logRepo, deduper, log)
	reviewHandler := mqhandler.NewReviewEventsHandler(logRepo, log)

	consumers := []struct {
		queue      string
		routingKey string
		handler    mq.MessageHandler
	}{
		{"task.delayed.log.q", mqcontracts.KindTaskDelayed, delayedHandler.Handle},
		{"project.maintenance.log.q", mqcontracts.KindProjectMaintenance, maintenanceHandler.Handle},
		{"task.submitted.log.q", mqcontracts.KindTaskSubmitted, reviewHandler.Handle},
		{"task.resubmitted.log.q", mqcontracts.KindTaskResubmitted, reviewHandler.Handle},
	}

	for _, c := range consumers {
		log.Info("Init consumer", zap.String("queue", c.queue))
		consumer, err := mq.NewConsumer(cfg.MQ.URL, c.queue, c.routingKey, log)
		if err != nil {
			log.Fatal("Consumer init failed", zap.String("queue", c.queue), zap.Error(err))
		}
		defer consumer.Close()
		consumer.SetHandler(c.handler)

		go func(queue string, consumer *mq.Consumer) {
			if err := consumer.StartConsuming(); err != nil {
				log.Fatal("Consumer crashed", zap.String("queue", queue), zap.Error(err))
			}
		}(c.queue, consumer)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Worker shutting down")
}
