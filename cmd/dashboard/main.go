package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/matst80/slask-dashboard/pkg/client"
	"github.com/matst80/slask-dashboard/pkg/common"
	"github.com/matst80/slask-dashboard/pkg/dashboard"
	"github.com/matst80/slask-dashboard/pkg/messaging"
	"github.com/matst80/slask-dashboard/pkg/query"
	"github.com/matst80/slask-dashboard/pkg/render"
	"github.com/matst80/slask-dashboard/pkg/storage"
	"github.com/matst80/slask-dashboard/pkg/tracking"
	"github.com/matst80/slask-dashboard/pkg/view"
	"golang.org/x/sync/errgroup"
)

func surfaces(cfg *config, term *render.Terminal) dashboard.Surfaces {
	if cfg.Text {
		return dashboard.Surfaces{
			Ranking:   term.Surface("ranking"),
			Region:    term.Surface("region"),
			Yearly:    term.Surface("yearly"),
			Genre:     term.Surface("genre"),
			Publisher: term.Surface("publisher"),
		}
	}
	return dashboard.Surfaces{
		Ranking:   render.NewPNGSurface(cfg.OutputDir, "ranking"),
		Region:    render.NewPNGSurface(cfg.OutputDir, "region"),
		Yearly:    render.NewPNGSurface(cfg.OutputDir, "yearly"),
		Genre:     render.NewPNGSurface(cfg.OutputDir, "genre"),
		Publisher: render.NewPNGSurface(cfg.OutputDir, "publisher"),
	}
}

func main() {
	cfg, err := loadConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("invalid arguments: %v", err)
	}
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		log.Fatalf("could not create output dir %s: %v", cfg.OutputDir, err)
	}

	dataClient := client.NewDataClientWithToken(cfg.DataUrl, cfg.DataToken, cfg.DataTimeout)
	term := render.NewTerminal(os.Stdout)

	opts := []dashboard.Option{
		dashboard.WithOutputDir(cfg.OutputDir),
		dashboard.WithControlView(term),
	}
	if cfg.SessionId != "" {
		opts = append(opts, dashboard.WithSessionId(cfg.SessionId))
	}
	if cfg.GenerationGuard {
		opts = append(opts, dashboard.WithViewOptions(view.WithGenerationGuard()))
	}
	if cfg.RedisUrl != "" {
		opts = append(opts, dashboard.WithStore(storage.NewRedisFilterStore(cfg.RedisUrl, cfg.RedisPassword, 0)))
		log.Printf("saving filters to redis at %s", cfg.RedisUrl)
	}

	var publisher *messaging.RabbitPublisher
	if cfg.RabbitUrl != "" {
		publisher, err = messaging.NewRabbitPublisher(cfg.RabbitUrl, cfg.RabbitPrefix, messaging.Tracking, messaging.FiltersChanged)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	}

	d := dashboard.New(dataClient, surfaces(cfg, term), term, opts...)
	dataClient.SessionId = d.SessionId
	if publisher != nil {
		d.Tracking = tracking.NewRabbitTracking(publisher, d.SessionId)
	}
	defer func() {
		if err := d.Close(); err != nil {
			log.Printf("close failed: %v", err)
		}
	}()
	log.Printf("session %s, data service %s", d.SessionId, cfg.DataUrl)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if report := d.Start(ctx); report.OptionsErr != nil {
		log.Printf("starting without filter options: %v", report.OptionsErr)
	}
	if cfg.Query != "" {
		spec, err := query.Decode(cfg.Query)
		if err != nil {
			log.Fatalf("invalid -query %q: %v", cfg.Query, err)
		}
		d.ApplySpec(ctx, spec, tracking.ActionRestore)
	}

	g, gctx := errgroup.WithContext(ctx)

	if cfg.Follow != "" {
		if publisher == nil {
			log.Fatal("-follow needs a rabbit url")
		}
		follow := cfg.Follow
		if follow == "*" {
			follow = ""
		}
		err := messaging.ListenForFilters(publisher.Connection(), cfg.RabbitPrefix, follow, func(msg messaging.FilterBroadcast) error {
			if msg.SessionId == d.SessionId {
				return nil
			}
			log.Printf("following %s (%s)", msg.SessionId, msg.Origin)
			d.ApplySpec(gctx, msg.Filters, tracking.ActionShared)
			return nil
		})
		if err != nil {
			log.Fatalf("Failed to listen for shared filters: %v", err)
		}
	}

	if cfg.DebugAddr != "" {
		timeouts := common.LoadTimeoutConfig(common.DefaultTimeouts)
		server := common.NewServer(cfg.DebugAddr, debugRouter(d, cfg.Profiling), timeouts)
		g.Go(func() error {
			return common.RunServer(gctx, server, "debug server", timeouts)
		})
	}

	g.Go(func() error {
		defer stop()
		return NewRepl(d, os.Stdout).Run(gctx, os.Stdin)
	})

	if err := g.Wait(); err != nil {
		log.Printf("stopped with error: %v", err)
	}
}
