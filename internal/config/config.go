package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port            string
	MongoURI        string
	MongoDB         string
	JWTSecret       string
	TokenTTLMin     int
	VerifyTTLHours  int
	ResetTTLMin     int
	FrontendURL     string
	RabbitURL       string
	Exchange        string
	NotifyQueue     string
	NotifyKey       string
	NotifyWorkers   int
	RedisAddr       string
	RateLimitPerMin int
	MailFrom        string
}

func Load() Config {
	return Config{
		Port:            getenv("APP_PORT", "8080"),
		MongoURI:        getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:         getenv("MONGO_DB", "medconnect"),
		JWTSecret:       getenv("JWT_SECRET", "default_secret_key"),
		TokenTTLMin:     atoi(getenv("TOKEN_TTL_MIN", "1440")),
		VerifyTTLHours:  atoi(getenv("VERIFY_TTL_HOURS", "48")),
		ResetTTLMin:     atoi(getenv("RESET_TTL_MIN", "30")),
		FrontendURL:     getenv("FRONTEND_URL", "http://localhost:3000"),
		RabbitURL:       getenv("RABBIT_URL", ""),
		Exchange:        getenv("RABBIT_EXCHANGE", "doctor.events"),
		NotifyQueue:     getenv("NOTIFY_QUEUE", "doctor.mail"),
		NotifyKey:       getenv("NOTIFY_KEY", "doctor.mail"),
		NotifyWorkers:   atoi(getenv("NOTIFY_WORKERS", "4")),
		RedisAddr:       getenv("REDIS_ADDR", ""),
		RateLimitPerMin: atoi(getenv("RATE_LIMIT_PER_MIN", "10")),
		MailFrom:        getenv("SMTP_FROM", "no-reply@medconnect.example"),
	}
}

func atoi(s string) int {
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return 0
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
