package common

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"
)

// ShutdownHook runs after the server context is cancelled and before the
// HTTP server shuts down. Errors are logged and shutdown continues.
type ShutdownHook func(ctx context.Context) error

type TimeoutConfig struct {
	ReadHeader time.Duration
	Write      time.Duration
	Idle       time.Duration
	Shutdown   time.Duration
}

var DefaultTimeouts = TimeoutConfig{
	ReadHeader: 5 * time.Second,
	Write:      60 * time.Second,
	Idle:       120 * time.Second,
	Shutdown:   10 * time.Second,
}

// LoadTimeoutConfig overrides the defaults with whole seconds read from
// DEBUG_READ_HEADER_TIMEOUT, DEBUG_WRITE_TIMEOUT, DEBUG_IDLE_TIMEOUT and
// DEBUG_SHUTDOWN_TIMEOUT. Invalid or non-positive values are ignored.
func LoadTimeoutConfig(defaults TimeoutConfig) TimeoutConfig {
	apply := func(curr *time.Duration, env string) {
		if v, ok := os.LookupEnv(env); ok {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				*curr = time.Duration(n) * time.Second
			}
		}
	}
	apply(&defaults.ReadHeader, "DEBUG_READ_HEADER_TIMEOUT")
	apply(&defaults.Write, "DEBUG_WRITE_TIMEOUT")
	apply(&defaults.Idle, "DEBUG_IDLE_TIMEOUT")
	apply(&defaults.Shutdown, "DEBUG_SHUTDOWN_TIMEOUT")
	return defaults
}

func NewServer(addr string, handler http.Handler, cfg TimeoutConfig) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeader,
		WriteTimeout:      cfg.Write,
		IdleTimeout:       cfg.Idle,
	}
}

// RunServer serves until ctx is done, then runs the hooks in order and shuts
// the server down within cfg.Shutdown.
func RunServer(ctx context.Context, server *http.Server, name string, cfg TimeoutConfig, hooks ...ShutdownHook) error {
	errCh := make(chan error, 1)
	go func() {
		log.Printf("starting %s on %s", name, server.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Shutdown)
	defer cancel()
	for i, h := range hooks {
		if h == nil {
			continue
		}
		if err := h(shutdownCtx); err != nil {
			log.Printf("%s: shutdown hook %d failed: %v", name, i, err)
		}
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("%s: graceful shutdown failed: %v", name, err)
		return err
	}
	log.Printf("%s shutdown complete", name)
	return nil
}
