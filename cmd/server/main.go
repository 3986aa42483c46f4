package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/medconnect/doctor-service/internal/config"
	"github.com/medconnect/doctor-service/internal/doctor"
	api "github.com/medconnect/doctor-service/internal/http"
	"github.com/medconnect/doctor-service/internal/jobs"
	applog "github.com/medconnect/doctor-service/internal/log"
	"github.com/medconnect/doctor-service/internal/metrics"
	"github.com/medconnect/doctor-service/internal/queue"
	"github.com/medconnect/doctor-service/internal/repo"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger, err := applog.Init(os.Getenv("APP_ENV") == "production")
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	metrics.MustRegister()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	store, err := repo.NewStore(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		applog.Errorf("mongo connect: %v", err)
		os.Exit(1)
	}
	defer store.Close(context.Background())
	if err := store.EnsureDoctorIndexes(ctx); err != nil {
		applog.Errorf("ensure indexes: %v", err)
		os.Exit(1)
	}

	var pub queue.Publisher = queue.NewNoop()
	if cfg.RabbitURL != "" {
		pub, err = queue.NewRabbit(cfg.RabbitURL, cfg.Exchange)
		if err != nil {
			applog.Errorf("rabbit connect: %v", err)
			os.Exit(1)
		}
	}
	defer pub.Close()

	var limiter *repo.RateLimiter
	if cfg.RedisAddr != "" {
		limiter, err = repo.NewRateLimiter(ctx, cfg.RedisAddr, cfg.RateLimitPerMin)
		if err != nil {
			applog.Errorf("redis connect: %v", err)
			os.Exit(1)
		}
		defer limiter.Close()
	}

	doctors := repo.NewDoctorRepo(store)
	svc := doctor.NewService(doctors, pub, doctor.Config{
		JWTSecret:   cfg.JWTSecret,
		TokenTTL:    time.Duration(cfg.TokenTTLMin) * time.Minute,
		VerifyTTL:   time.Duration(cfg.VerifyTTLHours) * time.Hour,
		ResetTTL:    time.Duration(cfg.ResetTTLMin) * time.Minute,
		FrontendURL: cfg.FrontendURL,
		Exchange:    cfg.Exchange,
	})

	reminders := jobs.NewReminders(doctors, pub, cfg.Exchange)
	if err := reminders.Start(); err != nil {
		applog.Errorf("reminder job: %v", err)
		os.Exit(1)
	}
	defer reminders.Stop()

	h := api.NewHandler(svc, store)
	r := api.NewRouter(h, cfg.JWTSecret, limiter)

	srvErr := make(chan error, 1)
	go func() { srvErr <- r.Run(":" + cfg.Port) }()

	applog.Infof("doctor-service listening on :%s", cfg.Port)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		applog.Infof("signal: %s, shutting down", s)
	case err := <-srvErr:
		applog.Errorf("server error: %v", err)
	}
}
