package app

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/openleague/openleague/internal/config"
	"github.com/openleague/openleague/internal/infrastructure/account/anubis"
	"github.com/openleague/openleague/internal/infrastructure/proofcheck"
	"github.com/openleague/openleague/internal/infrastructure/repository/postgres"
	"github.com/openleague/openleague/internal/interfaces/httpapi"
	"github.com/openleague/openleague/internal/platform/cache"
	idgen "github.com/openleague/openleague/internal/platform/id"
	"github.com/openleague/openleague/internal/platform/logging"
	"github.com/openleague/openleague/internal/platform/resilience"
	"github.com/openleague/openleague/internal/usecase"
)

// App owns the HTTP server and the resources it is built on.
type App struct {
	Server *http.Server

	db     *sqlx.DB
	logger *logging.Logger
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	db, err := openDB(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if cfg.SeedDemoData {
		if err := postgres.BootstrapSeed(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("bootstrap seed: %w", err)
		}
	}

	txManager := postgres.NewTxManager(db)
	matchRepo := postgres.NewMatchRepository(db)
	reportRepo := postgres.NewReportRepository(db)
	standingsRepo := postgres.NewStandingsRepository(db)
	teamRepo := postgres.NewTeamRepository(db)
	leagueRepo := postgres.NewLeagueRepository(db)
	cupRepo := postgres.NewCupRepository(db)
	matchQueryRepo := postgres.NewMatchQueryRepository(db)
	dashboardRepo := postgres.NewDashboardRepository(db)

	ids := idgen.NewRandomGenerator()
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))

	var store *cache.Store
	if cfg.CacheEnabled {
		store = cache.NewStore(cfg.CacheTTL)
	}

	var proofChecker usecase.ProofChecker
	if cfg.ProofCheckEnabled {
		proofChecker = proofcheck.NewClient(proofcheck.Config{
			Timeout:   cfg.ProofCheckTimeout,
			UserAgent: cfg.ServiceName + "/" + cfg.ServiceVersion,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.ProofCheckCircuitEnabled,
				FailureThreshold: cfg.ProofCheckCircuitFailureCount,
				OpenTimeout:      cfg.ProofCheckCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.ProofCheckCircuitHalfOpenMax,
			},
		}, logger)
	}

	reconService := usecase.NewReconciliationService(txManager, matchRepo, reportRepo, standingsRepo, cupRepo, ids, logger)
	intakeService := usecase.NewReportIntakeService(txManager, matchRepo, reportRepo, teamRepo, reconService, proofChecker, ids, logger)
	fixtureService := usecase.NewFixtureService(txManager, leagueRepo, cupRepo, teamRepo, matchRepo, ids, rnd, logger)
	queryService := usecase.NewMatchQueryService(matchQueryRepo, reportRepo, teamRepo, cupRepo, logger)
	standingsService := usecase.NewStandingsService(leagueRepo, cupRepo, standingsRepo, store, logger)
	seasonService := usecase.NewSeasonService(txManager, leagueRepo, matchQueryRepo, logger)
	rebuildService := usecase.NewRebuildService(txManager, leagueRepo, cupRepo, matchQueryRepo, standingsRepo, logger)
	dashboardService := usecase.NewDashboardService(dashboardRepo, teamRepo, logger)

	anubisClient := anubis.NewClient(
		&http.Client{Timeout: cfg.AnubisTimeout},
		anubis.Config{
			BaseURL:        cfg.AnubisBaseURL,
			IntrospectPath: cfg.AnubisIntrospectPath,
			AdminKey:       cfg.AnubisAdminKey,
			CacheTTL:       cfg.AnubisCacheTTL,
			CacheMaxSize:   cfg.AnubisCacheMaxSize,
			Timeout:        cfg.AnubisTimeout,
		},
		logger,
	)

	handler := httpapi.NewHandler(
		intakeService,
		reconService,
		fixtureService,
		queryService,
		standingsService,
		seasonService,
		rebuildService,
		dashboardService,
		logger,
	)
	router := httpapi.NewRouter(handler, anubisClient, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if server.Addr == "" {
		_ = db.Close()
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return &App{Server: server, db: db, logger: logger}, nil
}

// Close releases resources the server depends on. Call it after the HTTP
// server has shut down.
func (a *App) Close() error {
	return a.db.Close()
}

func openDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}
