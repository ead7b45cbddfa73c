package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/niksmo/eshop/config"
	"github.com/niksmo/eshop/internal/adapter/httphandler"
	"github.com/niksmo/eshop/internal/adapter/kafka"
	"github.com/niksmo/eshop/internal/adapter/storage"
	"github.com/niksmo/eshop/internal/core/service"
	"github.com/niksmo/eshop/pkg/schema"
	"github.com/twmb/franz-go/pkg/sr"
)

type App struct {
	ctx            context.Context
	cfg            config.Config
	sqldb          storage.SQLDB
	eventSerde     schema.Serde
	eventsProducer kafka.ClientEventsProducer
	popularityView kafka.PopularityView
	service        service.Service
	httpServer     httphandler.HTTPServer
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initSerdes()
	app.initCoreService()
	app.initHTTPServer()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initSerdes() {
	const op = "App.initSerdes"

	srClient, err := sr.NewClient(
		sr.URLs(app.cfg.Broker.SchemaRegistryURLs...),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	schemaCreater := schema.NewSchemaCreater(srClient)

	subject := app.cfg.Broker.Topics.ClientEvents + "-value"
	eventSerde, err := schema.NewSerdeClientEventV1(
		app.ctx,
		schema.SubjectOpt(subject),
		schema.SchemaIdentifierOpt(schemaCreater),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.eventSerde = eventSerde
}

func (app *App) initCoreService() {
	const op = "App.initCoreService"

	ctx := app.ctx
	brokerCfg := app.cfg.Broker

	sqldb, err := storage.NewSQLDB(ctx, app.cfg.SQLDB)
	if err != nil {
		app.fallDown(op, err)
	}
	app.sqldb = sqldb

	eventsProducer, err := kafka.NewClientEventsProducer(
		kafka.ProducerClientOpt(
			ctx, brokerCfg.SeedBrokers, brokerCfg.Topics.ClientEvents,
		),
		kafka.ProducerEncoderOpt(app.eventSerde),
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.eventsProducer = eventsProducer

	popularityProc, err := kafka.NewPopularityProc(
		brokerCfg.SeedBrokers,
		brokerCfg.Topics.ClientEvents,
		brokerCfg.Consumers.PopularityGroupTable,
		app.eventSerde,
	)
	if err != nil {
		app.fallDown(op, err)
	}

	popularityView, err := kafka.NewPopularityView(
		brokerCfg.SeedBrokers,
		brokerCfg.Consumers.PopularityGroupTable,
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.popularityView = popularityView

	hdfsClient, err := storage.NewHDFSClient(app.cfg.HDFSAddr)
	if err != nil {
		app.fallDown(op, err)
	}

	archiver, err := kafka.NewClientEventsConsumer(
		kafka.ConsumerClientOpt(
			brokerCfg.SeedBrokers,
			brokerCfg.Topics.ClientEvents,
			brokerCfg.Consumers.EventsArchiverGroup,
		),
		kafka.ConsumerDecoderOpt(app.eventSerde),
		kafka.ConsumerEventsSaverOpt(
			storage.NewEventsRepository(hdfsClient),
		),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.service = service.New(
		storage.NewProductsRepository(sqldb),
		storage.NewCartRepository(sqldb),
		eventsProducer,
		popularityProc,
		archiver,
	)
}

func (app *App) initHTTPServer() {
	r := chi.NewRouter()
	r.Use(httphandler.AllowJSON, httphandler.CSRFToken)

	httphandler.RegisterProducts(
		r, app.service, app.service, app.service, app.service,
	)
	httphandler.RegisterCart(r, app.service)
	httphandler.RegisterPopularity(r, app.popularityView)

	app.httpServer = httphandler.NewHTTPServer(app.cfg.HTTPServerAddr, r)
}

// Run runs the application components.
//
// Blocks current goroutine while stream components
// is preparing to ready state.
func (app *App) Run(stopFn context.CancelFunc) {
	go app.httpServer.Run(stopFn)
	go app.popularityView.Run(app.ctx)

	app.service.Run(app.ctx, stopFn)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	app.service.Close()
	app.eventsProducer.Close()
	app.sqldb.Close()

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
