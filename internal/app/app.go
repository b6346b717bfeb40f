package app

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/niksmo/shopfront/config"
	"github.com/niksmo/shopfront/internal/adapter"
	"github.com/niksmo/shopfront/internal/adapter/api"
	"github.com/niksmo/shopfront/internal/adapter/httphandler"
	"github.com/niksmo/shopfront/internal/adapter/kafka"
	"github.com/niksmo/shopfront/internal/adapter/tui"
	"github.com/niksmo/shopfront/internal/core/service"
	"github.com/niksmo/shopfront/pkg/schema"
	"github.com/twmb/franz-go/pkg/sr"
)

// Mode selects where the application writes its logs.
type Mode int

const (
	// ModeTerminal keeps stderr free for the terminal UI.
	ModeTerminal Mode = iota
	ModeServer
)

type events struct {
	producer  kafka.CartEventsProducer
	forwarder *service.EventForwarder
}

type App struct {
	ctx     context.Context
	cfg     config.Config
	logFile io.Closer

	catalog  *service.Catalog
	sessions *service.Sessions
	events   *events
	wg       sync.WaitGroup

	httpServer *httphandler.HTTPServer
}

func New(ctx context.Context, cfg config.Config, mode Mode) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger(mode)
	app.initCatalog()
	app.initEvents()
	app.initSessions()

	return app
}

func (app *App) initLogger(mode Mode) {
	const op = "App.initLogger"

	var out io.Writer = os.Stderr
	if mode == ModeTerminal {
		out = io.Discard
		if app.cfg.LogFile != "" {
			f, err := os.OpenFile(
				app.cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644,
			)
			if err != nil {
				fallDown(op, err)
			}
			app.logFile = f
			out = f
		}
	}

	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(out, opts))
	slog.SetDefault(logger)
}

func (app *App) initCatalog() {
	const op = "App.initCatalog"

	client, err := NewAPIClient(app.cfg)
	if err != nil {
		fallDown(op, err)
	}
	app.catalog = service.NewCatalog(client)
}

func (app *App) initEvents() {
	const op = "App.initEvents"

	if !app.cfg.Broker.Enabled() {
		slog.Info("cart events are disabled", "op", op)
		return
	}

	if err := app.cfg.RequireBroker(); err != nil {
		fallDown(op, err)
	}

	tlsConfig, err := brokerTLS(app.cfg)
	if err != nil {
		fallDown(op, err)
	}

	serde, err := NewCartEventSerde(app.ctx, app.cfg, tlsConfig)
	if err != nil {
		fallDown(op, err)
	}

	producer, err := kafka.NewCartEventsProducer(
		kafka.ProducerClientOpt(
			app.ctx,
			app.cfg.Broker.SeedBrokers,
			app.cfg.Broker.Topics.CartEvents,
			tlsConfig,
		),
		kafka.ProducerEncoderOpt(serde),
	)
	if err != nil {
		fallDown(op, err)
	}

	app.events = &events{
		producer:  producer,
		forwarder: service.NewEventForwarder(producer, 0),
	}
	app.wg.Add(1)
	app.events.forwarder.Run(app.ctx, &app.wg)
	app.wg.Wait()
}

func (app *App) initSessions() {
	var observers []service.CartObserver
	if app.events != nil {
		observers = append(observers, app.events.forwarder.Observer())
	}
	app.sessions = service.NewSessions(observers...)
}

// Browse runs the terminal UI on the configured cart until the user quits
// or ctx is done.
func (app *App) Browse() error {
	cart := app.sessions.Cart(app.cfg.API.CartID)
	m := tui.New(app.ctx, app.catalog, cart)
	return tui.Run(app.ctx, m, tea.WithAltScreen())
}

// Serve loads the catalog once and serves the JSON surface. A failed load
// is served as 503 until restart.
func (app *App) Serve(stopFn context.CancelFunc) {
	if _, err := app.catalog.Load(app.ctx); err != nil {
		slog.Warn("serving without catalog", "err", err)
	}

	s := service.New(app.catalog, app.sessions)
	handler := httphandler.NewHandler(s, s)
	httpServer := httphandler.NewHTTPServer(app.cfg.HTTPServerAddr, handler)
	app.httpServer = &httpServer

	go httpServer.Run(stopFn)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	if app.httpServer != nil {
		app.httpServer.Close(ctx)
	}

	if app.events != nil {
		app.events.forwarder.Close(ctx)
		app.events.producer.Close()
	}

	slog.Info("application is closed")

	if app.logFile != nil {
		_ = app.logFile.Close()
	}
}

func fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}

// NewAPIClient returns the storefront API client described by cfg.
func NewAPIClient(cfg config.Config) (api.Client, error) {
	const op = "app.NewAPIClient"

	if err := cfg.RequireAPI(); err != nil {
		return api.Client{}, fmt.Errorf("%s: %w", op, err)
	}

	opts := []api.ClientOpt{api.TimeoutOpt(cfg.API.Timeout)}
	if cfg.API.TLS.Enabled() {
		tlsConfig, err := adapter.MakeTLSConfig(
			cfg.API.TLS.CA, cfg.API.TLS.Cert, cfg.API.TLS.Key,
		)
		if err != nil {
			return api.Client{}, fmt.Errorf("%s: %w", op, err)
		}
		opts = append(opts, api.TLSConfigOpt(tlsConfig))
	}

	client, err := api.NewClient(cfg.API.BaseURL, opts...)
	if err != nil {
		return api.Client{}, fmt.Errorf("%s: %w", op, err)
	}
	return client, nil
}

// NewCartEventSerde registers the cart event schema under
// "<topic>-value" and returns its serde.
func NewCartEventSerde(
	ctx context.Context, cfg config.Config, tlsConfig *tls.Config,
) (schema.Serde, error) {
	const op = "app.NewCartEventSerde"

	srOpts := []sr.ClientOpt{sr.URLs(cfg.Broker.SchemaRegistryURLs...)}
	if tlsConfig != nil {
		t := http.DefaultTransport.(*http.Transport).Clone()
		t.TLSClientConfig = tlsConfig
		srOpts = append(srOpts, sr.HTTPClient(&http.Client{Transport: t}))
	}

	srClient, err := sr.NewClient(srOpts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	serde, err := schema.NewSerdeCartEventV1(
		ctx,
		schema.SubjectOpt(cfg.Broker.Topics.CartEvents+"-value"),
		schema.SchemaIdentifierOpt(schema.NewSchemaCreater(srClient)),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return serde, nil
}

// BrokerTLS returns nil when no broker TLS file is configured.
func BrokerTLS(cfg config.Config) (*tls.Config, error) {
	return brokerTLS(cfg)
}

func brokerTLS(cfg config.Config) (*tls.Config, error) {
	if !cfg.Broker.TLS.Enabled() {
		return nil, nil
	}
	return adapter.MakeTLSConfig(
		cfg.Broker.TLS.CA, cfg.Broker.TLS.Cert, cfg.Broker.TLS.Key,
	)
}
