package app

import (
	"context"
	"log/slog"
	"os"
	"sync"

	"github.com/niksmo/shopfront/config"
	"github.com/niksmo/shopfront/internal/adapter/httphandler"
	"github.com/niksmo/shopfront/internal/adapter/kafka"
)

// StatsApp folds the cart events stream into per cart stats and serves
// them over HTTP.
type StatsApp struct {
	ctx context.Context
	cfg config.Config

	proc       *kafka.CartStatsProcessor
	view       *kafka.CartStatsView
	httpServer httphandler.HTTPServer
}

func NewStats(ctx context.Context, cfg config.Config) *StatsApp {
	const op = "NewStats"

	app := &StatsApp{ctx: ctx, cfg: cfg}

	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, opts)))

	if err := cfg.RequireBroker(); err != nil {
		fallDown(op, err)
	}

	tlsConfig, err := brokerTLS(cfg)
	if err != nil {
		fallDown(op, err)
	}

	serde, err := NewCartEventSerde(ctx, cfg, tlsConfig)
	if err != nil {
		fallDown(op, err)
	}

	app.proc, err = kafka.NewCartStatsProc(
		cfg.Broker.SeedBrokers,
		cfg.Broker.Topics.CartEvents,
		cfg.Broker.Consumers.CartStatsGroup,
		serde,
		tlsConfig,
	)
	if err != nil {
		fallDown(op, err)
	}

	app.view, err = kafka.NewCartStatsView(kafka.CartStatsViewConfig{
		SeedBrokers: cfg.Broker.SeedBrokers,
		GroupTable:  cfg.Broker.Consumers.CartStatsGroup,
		TLSConfig:   tlsConfig,
	})
	if err != nil {
		fallDown(op, err)
	}

	app.httpServer = httphandler.NewHTTPServer(
		cfg.HTTPServerAddr, httphandler.NewStatsHandler(app.view),
	)

	return app
}

// Run waits for the processor to get ready, then starts the view and
// the http server. Any of them stopping calls stopFn.
func (app *StatsApp) Run(stopFn context.CancelFunc) {
	var wg sync.WaitGroup
	wg.Add(1)
	go app.proc.Run(app.ctx, stopFn, &wg)
	wg.Wait()

	go app.view.Run(app.ctx, stopFn)
	go app.httpServer.Run(stopFn)

	slog.Info("application is running")
}

func (app *StatsApp) Close(ctx context.Context) {
	slog.Info("application is closing...")
	app.httpServer.Close(ctx)
	app.proc.Close()
	slog.Info("application is closed")
}
