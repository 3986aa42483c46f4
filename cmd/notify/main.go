package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/medconnect/doctor-service/internal/config"
	applog "github.com/medconnect/doctor-service/internal/log"
	"github.com/medconnect/doctor-service/internal/mail"
	"github.com/medconnect/doctor-service/internal/metrics"
	"github.com/medconnect/doctor-service/internal/queue"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger, err := applog.Init(os.Getenv("APP_ENV") == "production")
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cons, err := queue.NewConsumer(cfg.RabbitURL, cfg.Exchange, cfg.NotifyQueue, cfg.NotifyKey)
	if err != nil {
		applog.Errorf("rabbit consumer init failed: %v", err)
		os.Exit(1)
	}
	defer cons.Close()

	sender := &mail.Sender{From: cfg.MailFrom}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	applog.Infof("notify worker up. exchange=%s queue=%s key=%s workers=%d",
		cfg.Exchange, cfg.NotifyQueue, cfg.NotifyKey, cfg.NotifyWorkers)

	if err := cons.Consume(ctx, cfg.NotifyWorkers, func(b []byte) error {
		return handle(sender, b)
	}); err != nil {
		applog.Errorf("consumer stopped: %v", err)
		os.Exit(1)
	}
}

// handle renders and sends one mail event. A malformed or unknown-template
// event is dropped (acked) after logging: requeueing it would loop forever.
func handle(sender *mail.Sender, b []byte) error {
	var ev queue.MailRequested
	if err := json.Unmarshal(b, &ev); err != nil {
		applog.Errorf("drop malformed mail event: %v", err)
		return nil
	}
	body, err := mail.Render(ev.Template, ev.Data)
	if err != nil {
		applog.Errorf("drop mail to=%s: %v", ev.To, err)
		metrics.MailsSent.WithLabelValues(ev.Template, "error").Inc()
		return nil
	}
	if err := sender.Send(ev.To, ev.Subject, ev.Template, body); err != nil {
		return fmt.Errorf("send mail to %s: %w", ev.To, err)
	}
	return nil
}
