package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/unclebandit/adreport-backend/internal/config"
	"github.com/unclebandit/adreport-backend/internal/logger"
	"github.com/unclebandit/adreport-backend/internal/queue"
	"github.com/unclebandit/adreport-backend/internal/repository"
	"github.com/unclebandit/adreport-backend/internal/service"
)

// The worker mirrors project schedules from the project events queue into Redis.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(logger.Options{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		File:        cfg.Log.File,
		ServiceName: cfg.ServiceName + "-worker",
	})
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatal("worker stopped", zap.Error(err))
	}
}

func run(cfg config.Config, log *zap.Logger) error {
	if cfg.AMQPURL == "" {
		return errors.New("AMQP_URL is required for the worker")
	}
	if cfg.Redis.Addr == "" {
		return errors.New("REDIS_ADDR is required for the worker")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return err
	}

	// Connect to RabbitMQ
	q, err := queue.DialAMQP(cfg.AMQPURL, log)
	if err != nil {
		return err
	}
	defer q.Close()

	worker := service.NewScheduleWorker(&repository.RedisScheduleRepository{Client: rdb}, log)
	if err := q.Subscribe(cfg.EventsQueue, worker.Handle); err != nil {
		return err
	}

	log.Info("worker running, waiting for messages", zap.String("queue", cfg.EventsQueue))
	<-ctx.Done()
	return nil
}
