// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/unclebandit/adreport-backend/internal/auth"
	"github.com/unclebandit/adreport-backend/internal/config"
	"github.com/unclebandit/adreport-backend/internal/controller"
	"github.com/unclebandit/adreport-backend/internal/db"
	"github.com/unclebandit/adreport-backend/internal/handler"
	"github.com/unclebandit/adreport-backend/internal/logger"
	"github.com/unclebandit/adreport-backend/internal/queue"
	"github.com/unclebandit/adreport-backend/internal/repository"
	"github.com/unclebandit/adreport-backend/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(logger.Options{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		File:        cfg.Log.File,
		ServiceName: cfg.ServiceName,
	})
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := db.Open(ctx, db.Options{
		DSN:          cfg.DB.DSN(),
		MaxOpenConns: cfg.DB.MaxOpenConns,
		MaxIdleConns: cfg.DB.MaxIdleConns,
	}, log)
	if err != nil {
		return err
	}
	defer conn.Close()

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			return err
		}
		log.Info("connected to redis", zap.String("addr", cfg.Redis.Addr))
	}

	// Repositories
	companyRepo := &repository.CompanyRepository{DB: conn}
	userRepo := &repository.UserRepository{DB: conn}
	projectRepo := &repository.ProjectRepository{DB: conn}

	q, closeQueue, err := newQueue(cfg, rdb, log)
	if err != nil {
		return err
	}
	defer closeQueue()

	var revoker auth.Revoker = auth.NewMemoryRevoker()
	if rdb != nil {
		revoker = &auth.RedisRevoker{Client: rdb}
	}

	authService := &service.AuthService{
		UserRepo: userRepo,
		Tokens:   auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL),
		Revoker:  revoker,
	}

	limiterStore, err := handler.NewLimiterStore(rdb)
	if err != nil {
		return err
	}
	rate, err := handler.ParseRate(cfg.RateLimit)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	router := &handler.Router{
		Logger:       log,
		Production:   cfg.IsProduction(),
		Registry:     registry,
		LimiterStore: limiterStore,
		Rate:         rate,
		AuthService:  authService,
		CompanyController: &controller.CompanyController{
			CompanyService: &service.CompanyService{CompanyRepo: companyRepo},
			Logger:         log,
		},
		UserController: &controller.UserController{
			UserService: &service.UserService{UserRepo: userRepo, CompanyRepo: companyRepo},
			AuthService: authService,
			Logger:      log,
		},
		ProjectController: &controller.ProjectController{
			ProjectService: &service.ProjectService{
				ProjectRepo: projectRepo,
				Queue:       q,
				EventsTopic: cfg.EventsQueue,
				Logger:      log,
			},
			Logger: log,
		},
		Ready: ready(conn, rdb),
	}

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router.Handler()}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server running", zap.String("addr", cfg.HTTPAddr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", zap.Duration("timeout", cfg.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newQueue publishes to RabbitMQ when AMQP_URL is set. Otherwise events stay in
// process and the schedule worker runs inside the server.
func newQueue(cfg config.Config, rdb *redis.Client, log *zap.Logger) (queue.Queue, func(), error) {
	if cfg.AMQPURL != "" {
		q, err := queue.DialAMQP(cfg.AMQPURL, log)
		if err != nil {
			return nil, nil, err
		}
		return q, func() { q.Close() }, nil
	}

	var schedules repository.ScheduleRepositoryInterface = repository.NewMemoryScheduleRepository()
	if rdb != nil {
		schedules = &repository.RedisScheduleRepository{Client: rdb}
	}
	q := queue.NewInMemoryQueue(log)
	if err := q.Subscribe(cfg.EventsQueue, service.NewScheduleWorker(schedules, log).Handle); err != nil {
		return nil, nil, err
	}
	log.Warn("AMQP_URL not set, using in-memory project event queue")
	return q, func() {}, nil
}

func ready(conn *sqlx.DB, rdb *redis.Client) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if err := conn.PingContext(ctx); err != nil {
			return err
		}
		if rdb != nil {
			return rdb.Ping(ctx).Err()
		}
		return nil
	}
}
