package router

import (
	"context"
	"net/http"

	portfsvc "folio-backend/internal/application/portfolio"
	quotesvc "folio-backend/internal/application/quotes"
	searchsvc "folio-backend/internal/application/search"
	"folio-backend/internal/clients/alphavantage"
	"folio-backend/internal/clients/coingecko"
	"folio-backend/internal/config"
	"folio-backend/internal/infrastructure/database"
	"folio-backend/internal/infrastructure/store"
	healthhandler "folio-backend/internal/interfaces/handlers/health"
	portfhandler "folio-backend/internal/interfaces/handlers/portfolio"
	quoteshandler "folio-backend/internal/interfaces/handlers/quotes"
	searchhandler "folio-backend/internal/interfaces/handlers/search"
	"folio-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type gormDBPinger struct {
	db *gorm.DB
}

func (g *gormDBPinger) Ping() error {
	if g == nil || g.db == nil {
		return nil
	}
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// CreateApp wires the Fiber app: store (file or DB), Redis cache, market-data
// clients, services and handlers.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, nil, err
		}
		rdb = redis.NewClient(opt)
		app.Use(middleware.HealthMarker(rdb))
	}
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	hh := &healthhandler.Handlers{
		Rdb:            rdb,
		DB:             nil,
		HealthAdminKey: cfg.HealthAdminKey,
	}
	app.Get("/", hh.Dashboard)
	app.Get("/reset", hh.Reset)
	app.Get("/health/json", hh.JSON)
	app.Get("/health/errors", hh.Errors)

	// Portfolio store: DB-backed slot when a database is configured, a local
	// JSON file otherwise.
	var db *gorm.DB
	var st store.Store
	if cfg.DatabaseURL != "" {
		var errDB error
		db, errDB = database.Open(cfg.DatabaseURL)
		if errDB != nil {
			return nil, nil, nil, errDB
		}
		hh.DB = &gormDBPinger{db: db}
		gs, err := store.NewGormStore(db, cfg.PortfolioSlot)
		if err != nil {
			return nil, nil, nil, err
		}
		st = gs
	} else {
		st = store.NewFileStore(cfg.PortfolioFile)
	}

	// Market data clients
	var stockSearch searchsvc.Searcher
	var stockQuotes quotesvc.Provider
	if cfg.AlphaVantageAPIKey != "" {
		av := alphavantage.New(cfg.AlphaVantageAPIKey, log.Logger)
		stockSearch = av
		stockQuotes = av
	}
	cg := coingecko.New(log.Logger)

	qs := &quotesvc.Service{Stocks: stockQuotes, Crypto: cg}
	ss := &searchsvc.Service{Stocks: stockSearch, Crypto: cg, Rdb: rdb}
	ps := portfsvc.NewService(context.Background(), st)

	// Portfolio
	ph := &portfhandler.Handlers{Service: ps, Quotes: qs}
	pg := app.Group("/api/v1/portfolio")
	pg.Get("/view-holdings", ph.ViewHoldings)
	pg.Get("/view-summary", ph.ViewSummary)
	pg.Post("/add-holding", ph.AddHolding)
	pg.Put("/edit-holding", ph.EditHolding)
	pg.Delete("/remove-holding", ph.RemoveHolding)
	pg.Post("/refresh-prices", ph.RefreshPrices)

	// Search
	sh := &searchhandler.Handlers{Service: ss}
	app.Get("/api/v1/search", sh.Search)

	// Quotes
	qh := &quoteshandler.Handlers{Service: qs}
	app.Get("/api/v1/quotes/:symbol", qh.GetQuote)

	return app, db, rdb, nil
}

func Handler(app *fiber.App) http.Handler {
	return adaptor.FiberApp(app)
}
