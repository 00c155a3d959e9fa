package config

import (
	"os"
	"strings"
	"time"
)

type Config struct {
	HTTPAddr       string
	MySQLDSN       string
	RedisAddr      string
	KafkaBrokers   []string
	ServiceName    string
	RequestTimeout time.Duration
}

func Load() Config {
	return Config{
		HTTPAddr:       getenv("HTTP_ADDR", ":8080"),
		MySQLDSN:       getenv("MYSQL_DSN", "root:root@tcp(localhost:3306)/shoporder?parseTime=true"),
		RedisAddr:      getenv("REDIS_ADDR", "localhost:6379"),
		KafkaBrokers:   splitCSV(getenv("KAFKA_BROKERS", "")),
		ServiceName:    getenv("SERVICE_NAME", "order-api"),
		RequestTimeout: getDuration("REQUEST_TIMEOUT", 15*time.Second),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func getDuration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
