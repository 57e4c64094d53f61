package main

import (
	"flag"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type config struct {
	DataUrl         string
	DataToken       string
	DataTimeout     time.Duration
	RedisUrl        string
	RedisPassword   string
	RabbitUrl       string
	RabbitPrefix    string
	SessionId       string
	OutputDir       string
	DebugAddr       string
	Follow          string
	Query           string
	Text            bool
	Profiling       bool
	GenerationGuard bool
}

func env(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func envSeconds(key string) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("ignoring %s=%q, expected a positive number of seconds", key, v)
		return 0
	}
	return time.Duration(n) * time.Second
}

// loadConfig reads .env, then the environment, then flags. Flags win.
func loadConfig(fs *flag.FlagSet, args []string) (*config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("could not load .env: %v", err)
	}
	cfg := &config{}
	fs.StringVar(&cfg.DataUrl, "data-url", env("DATA_URL", "http://localhost:5000"), "base url of the data service")
	fs.StringVar(&cfg.DataToken, "data-token", os.Getenv("DATA_TOKEN"), "bearer token for the data service")
	fs.DurationVar(&cfg.DataTimeout, "data-timeout", envSeconds("DATA_TIMEOUT"), "request timeout, 0 waits forever")
	fs.StringVar(&cfg.RedisUrl, "redis", os.Getenv("REDIS_URL"), "redis address for saved filters")
	fs.StringVar(&cfg.RedisPassword, "redis-password", os.Getenv("REDIS_PASSWORD"), "redis password")
	fs.StringVar(&cfg.RabbitUrl, "rabbit", os.Getenv("RABBIT_URL"), "amqp url for tracking and shared filters")
	fs.StringVar(&cfg.RabbitPrefix, "rabbit-prefix", env("RABBIT_PREFIX", "dashboard"), "exchange name prefix")
	fs.StringVar(&cfg.SessionId, "session", os.Getenv("SESSION_ID"), "session id, generated when empty")
	fs.StringVar(&cfg.OutputDir, "out", env("OUTPUT_DIR", "."), "directory for chart images and exports")
	fs.StringVar(&cfg.DebugAddr, "debug", os.Getenv("DEBUG_ADDR"), "address of the debug server, disabled when empty")
	fs.StringVar(&cfg.Follow, "follow", "", "mirror the filters of another session, * follows every session")
	fs.StringVar(&cfg.Query, "query", "", "start from an encoded filter query")
	fs.BoolVar(&cfg.Text, "text", false, "print charts to the terminal instead of png files")
	fs.BoolVar(&cfg.Profiling, "profiling", false, "enable pprof on the debug server")
	fs.BoolVar(&cfg.GenerationGuard, "generation-guard", false, "drop responses overtaken by a newer refresh of the same view")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return cfg, nil
}
