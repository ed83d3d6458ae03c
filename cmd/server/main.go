package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	crmapp "github.com/isletme/backend/internal/application/crm"
	"github.com/isletme/backend/internal/application/dashboard"
	documentsapp "github.com/isletme/backend/internal/application/documents"
	financeapp "github.com/isletme/backend/internal/application/finance"
	hrapp "github.com/isletme/backend/internal/application/hr"
	identityapp "github.com/isletme/backend/internal/application/identity"
	opexapp "github.com/isletme/backend/internal/application/opex"
	salesapp "github.com/isletme/backend/internal/application/sales"
	servicedeskapp "github.com/isletme/backend/internal/application/servicedesk"
	"github.com/isletme/backend/internal/infrastructure/auth"
	"github.com/isletme/backend/internal/infrastructure/cache"
	"github.com/isletme/backend/internal/infrastructure/config"
	"github.com/isletme/backend/internal/infrastructure/logger"
	"github.com/isletme/backend/internal/infrastructure/persistence"
	"github.com/isletme/backend/internal/infrastructure/persistence/models"
	"github.com/isletme/backend/internal/infrastructure/printing"
	"github.com/isletme/backend/internal/infrastructure/storage"
	"github.com/isletme/backend/internal/infrastructure/telemetry"
	"github.com/isletme/backend/internal/interfaces/http/handler"
	"github.com/isletme/backend/internal/interfaces/http/middleware"
	"github.com/isletme/backend/internal/interfaces/http/router"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	// OTLP log export is attached to zap as an extra core
	logProvider, err := telemetry.NewLoggerProvider(ctx, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("init log exporter: %w", err)
	}
	var cores []zapcore.Core
	if logProvider.IsEnabled() {
		cores = append(cores, logProvider.Core(cfg.App.Name, logger.ParseLevel(cfg.Log.Level)))
	}
	log, err := logger.New(cfg.Log, cores...)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()
	zap.ReplaceGlobals(log)

	log.Info("Starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	tracerProvider, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}
	metrics, err := telemetry.NewMetrics(meterProvider.Meter())
	if err != nil {
		return fmt.Errorf("create instruments: %w", err)
	}
	profiler, err := telemetry.NewProfiler(cfg.Telemetry, log)
	if err != nil {
		return fmt.Errorf("init profiler: %w", err)
	}
	if profiler.IsEnabled() {
		tracerProvider.EnableSpanProfiles()
	}
	defer shutdownTelemetry(log, tracerProvider, meterProvider, logProvider, profiler)

	db, err := persistence.NewDatabase(&cfg.Database, log, cfg.Log.Level, cfg.Telemetry.DBSlowQueryThresh)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		if err := telemetry.NewDBTracing(cfg.Telemetry, log).Register(db.DB); err != nil {
			return fmt.Errorf("register database tracing: %w", err)
		}
	}
	if cfg.Database.AutoMigrate {
		if err := db.DB.AutoMigrate(models.All()...); err != nil {
			return fmt.Errorf("auto migrate: %w", err)
		}
		log.Info("Database schema migrated")
	}
	log.Info("Database connected")

	var redisClient *redis.Client
	var blacklist auth.TokenBlacklist = auth.NewInMemoryTokenBlacklist()
	if cfg.Redis.Host != "" {
		redisClient, err = auth.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer func() { _ = redisClient.Close() }()
		blacklist = auth.NewRedisTokenBlacklist(redisClient)
		log.Info("Redis connected", zap.String("addr", cfg.Redis.Addr()))
	} else {
		log.Warn("Redis not configured, revoked tokens are kept in memory")
	}
	store := cache.New(redisClient, log)

	var archive documentsapp.ObjectStorage
	if cfg.Storage.Enabled {
		s3, err := storage.NewS3ObjectStorage(ctx, &cfg.Storage, storage.WithLogger(log))
		if err != nil {
			return fmt.Errorf("init object storage: %w", err)
		}
		if err := s3.EnsureBucket(ctx); err != nil {
			return fmt.Errorf("ensure bucket: %w", err)
		}
		archive = s3
	}

	var renderer printing.PDFRenderer = printing.DisabledRenderer{}
	if cfg.PDF.Enabled {
		renderer = printing.NewChromedpRenderer(cfg.PDF, log)
	}
	defer func() { _ = renderer.Close() }()

	loc := cfg.Location()

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	bankAccountRepo := persistence.NewGormBankAccountRepository(db.DB)
	transactionRepo := persistence.NewGormTransactionRepository(db.DB)
	loanRepo := persistence.NewGormLoanRepository(db.DB)
	checkRepo := persistence.NewGormCheckRepository(db.DB)
	employeeRepo := persistence.NewGormEmployeeRepository(db.DB)
	proposalRepo := persistence.NewGormProposalRepository(db.DB)
	serviceRequestRepo := persistence.NewGormServiceRequestRepository(db.DB)
	taskRepo := persistence.NewGormTaskRepository(db.DB)
	opexRepo := persistence.NewGormOpexEntryRepository(db.DB)
	schemaRepo := persistence.NewGormPDFSchemaRepository(db.DB)

	// Services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, metrics, log.Named("auth"))
	if err := authService.BootstrapAdmin(ctx, cfg.Bootstrap); err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}
	matrixService := opexapp.NewMatrixService(opexRepo, employeeRepo, cfg.Opex,
		opexapp.WithMetrics(metrics),
		opexapp.WithLogger(log.Named("opex")),
	)
	dashboardService := dashboard.NewService(dashboard.Repositories{
		BankAccounts:    bankAccountRepo,
		Loans:           loanRepo,
		Checks:          checkRepo,
		ServiceRequests: serviceRequestRepo,
		Tasks:           taskRepo,
	}, matrixService, store, loc)
	documentService := documentsapp.NewDocumentService(schemaRepo, proposalRepo, customerRepo, renderer, archive, metrics)

	h := handlers{
		auth:            handler.NewAuthHandler(authService),
		customers:       handler.NewCustomerHandler(crmapp.NewCustomerService(customerRepo)),
		bankAccounts:    handler.NewBankAccountHandler(financeapp.NewBankAccountService(bankAccountRepo)),
		transactions:    handler.NewTransactionHandler(financeapp.NewTransactionService(transactionRepo, bankAccountRepo)),
		loans:           handler.NewLoanHandler(financeapp.NewLoanService(loanRepo)),
		checks:          handler.NewCheckHandler(financeapp.NewCheckService(checkRepo, loc)),
		proposals:       handler.NewProposalHandler(salesapp.NewProposalService(proposalRepo, customerRepo, loc), documentService),
		serviceRequests: handler.NewServiceRequestHandler(servicedeskapp.NewServiceRequestService(serviceRequestRepo, customerRepo, loc)),
		tasks:           handler.NewTaskHandler(servicedeskapp.NewTaskService(taskRepo)),
		employees:       handler.NewEmployeeHandler(hrapp.NewEmployeeService(employeeRepo)),
		opex:            handler.NewOpexHandler(matrixService, loc),
		documents:       handler.NewDocumentHandler(documentService),
		dashboard:       handler.NewDashboardHandler(dashboardService),
		system:          handler.NewSystemHandler(cfg.App.Name, version, healthChecks(db, redisClient)),
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		return fmt.Errorf("set trusted proxies: %w", err)
	}
	engine.Use(
		logger.Recovery(log),
		middleware.RequestID(),
		middleware.Tracing(cfg.Telemetry.ServiceName, tracerProvider.IsEnabled()),
		logger.GinMiddleware(log),
		middleware.HTTPMetrics(metrics),
		middleware.Profiling(profiler.IsEnabled()),
		middleware.CORSWithConfig(corsConfig(cfg.HTTP)),
		middleware.SecureWithConfig(securityConfig(cfg)),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
	)

	protected := []gin.HandlerFunc{
		middleware.JWTAuthMiddlewareWithConfig(jwtConfig(jwtService, blacklist, log)),
		middleware.TenantMiddlewareWithConfig(tenantConfig(cfg, log)),
		middleware.SpanAttributes(),
	}
	if cfg.HTTP.RateLimitEnabled {
		apiLimiter := newLimiter(redisClient, "ratelimit:api:", cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		protected = append(protected, middleware.RateLimit(apiLimiter, middleware.ClientKey, log))
	}
	r := router.NewRouter(engine,
		router.WithAPIVersion("v1"),
		router.WithMiddleware(protected...),
	)
	authLimiter := newLimiter(redisClient, "ratelimit:auth:", cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
	registerRoutes(engine, r, h, middleware.AuthRateLimit(authLimiter, log))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		log.Info("Shutting down server", zap.String("signal", sig.String()))
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	// pending OPEX edits are written before the database closes
	if flushed := matrixService.Close(); flushed > 0 {
		log.Info("Flushed pending OPEX edits", zap.Int("count", flushed))
	}
	log.Info("Server exited")
	return nil
}

func healthChecks(db *persistence.Database, redisClient *redis.Client) map[string]handler.HealthCheck {
	checks := map[string]handler.HealthCheck{
		"database": func(ctx context.Context) error {
			sqlDB, err := db.DB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if redisClient != nil {
		checks["redis"] = func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}
	}
	return checks
}

// newLimiter shares counters through Redis when it is configured
func newLimiter(client *redis.Client, prefix string, limit int, window time.Duration) middleware.Limiter {
	if client != nil {
		return middleware.NewRedisLimiter(client, prefix, limit, window)
	}
	return middleware.NewMemoryLimiter(limit, window)
}

func corsConfig(cfg config.HTTPConfig) middleware.CORSConfig {
	cors := middleware.DefaultCORSConfig()
	cors.AllowOrigins = cfg.CORSAllowOrigins
	if len(cfg.CORSAllowMethods) > 0 {
		cors.AllowMethods = cfg.CORSAllowMethods
	}
	if len(cfg.CORSAllowHeaders) > 0 {
		cors.AllowHeaders = cfg.CORSAllowHeaders
	}
	return cors
}

func securityConfig(cfg *config.Config) middleware.SecurityConfig {
	sec := middleware.DefaultSecurityConfig()
	sec.HSTSEnabled = cfg.IsProduction()
	return sec
}

func jwtConfig(jwtService *auth.JWTService, blacklist auth.TokenBlacklist, log *zap.Logger) middleware.JWTMiddlewareConfig {
	c := middleware.DefaultJWTConfig(jwtService)
	c.TokenBlacklist = blacklist
	c.Logger = log
	return c
}

func tenantConfig(cfg *config.Config, log *zap.Logger) middleware.TenantMiddlewareConfig {
	c := middleware.DefaultTenantConfig()
	c.DefaultTenantID = cfg.Bootstrap.TenantID
	c.SkipPaths = append(c.SkipPaths, "/api/v1/auth")
	c.Logger = log
	return c
}

type shutdowner interface {
	Shutdown(ctx context.Context) error
}

func shutdownTelemetry(log *zap.Logger, tp, mp, lp shutdowner, profiler *telemetry.Profiler) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for name, s := range map[string]shutdowner{"tracer": tp, "meter": mp, "logs": lp} {
		if err := s.Shutdown(ctx); err != nil {
			log.Warn("telemetry shutdown failed", zap.String("provider", name), zap.Error(err))
		}
	}
	if err := profiler.Stop(); err != nil {
		log.Warn("profiler stop failed", zap.Error(err))
	}
}
