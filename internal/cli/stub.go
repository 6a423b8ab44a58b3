package cli

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/opencart-qa/storefront-e2e/internal/config"
	"github.com/opencart-qa/storefront-e2e/internal/database"
	"github.com/opencart-qa/storefront-e2e/internal/handlers"
	"github.com/opencart-qa/storefront-e2e/internal/repository"
	"github.com/opencart-qa/storefront-e2e/internal/services"
)

// Storefront is a wired stub storefront and the database behind it.
type Storefront struct {
	Handler http.Handler
	db      *sql.DB
}

// Close releases the database.
func (s *Storefront) Close() error {
	return s.db.Close()
}

// BuildStorefront opens the database, seeds the demo catalog and the customer
// account, and wires the HTTP handler.
func BuildStorefront(cfg config.StorefrontConfig, customer config.Credentials, logger *zap.Logger) (_ *Storefront, err error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := database.Open(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err != nil {
			err = multierr.Append(err, db.Close())
		}
	}()

	if err := database.RunMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to run database migrations: %w", err)
	}

	catalog := services.NewCatalogService(repository.NewProductRepository(db))
	if err := catalog.Seed(services.DemoCatalog()); err != nil {
		return nil, fmt.Errorf("failed to seed catalog: %w", err)
	}

	accounts := services.NewAccountService(repository.NewCustomerRepository(db), 0)
	if _, err := accounts.EnsureCustomer(customer.Username, customer.Password); err != nil {
		return nil, fmt.Errorf("failed to seed customer %s: %w", customer.Username, err)
	}

	storefront, err := handlers.NewStorefront(catalog, accounts, services.NewSessionStore(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create storefront handler: %w", err)
	}

	logger.Info("stub storefront ready", zap.String("customer", customer.Username), zap.String("dsn", cfg.DSN))
	return &Storefront{
		Handler: handlers.NewRouter(storefront, cfg.HTTPUsername, cfg.HTTPPassword, logger),
		db:      db,
	}, nil
}

// ServeStorefront builds the stub storefront and serves it on cfg.Port until
// SIGINT or SIGTERM, then releases the database.
func ServeStorefront(cfg config.StorefrontConfig, customer config.Credentials, logger *zap.Logger) (err error) {
	storefront, err := BuildStorefront(cfg, customer, logger)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, storefront.Close())
	}()

	return RunServe(ServerDependencies{
		ServerConfig: cfg,
		Handler:      storefront.Handler,
		Logger:       logger,
	})
}

// Stub is a stub storefront serving on a loopback port.
type Stub struct {
	BaseURL    string
	storefront *Storefront
	server     *http.Server
}

// StartStub builds the storefront and serves it on cfg.Port ("0" picks a
// free port). BaseURL points at its index.php.
func StartStub(cfg config.StorefrontConfig, customer config.Credentials, logger *zap.Logger) (*Stub, error) {
	storefront, err := BuildStorefront(cfg, customer, logger)
	if err != nil {
		return nil, err
	}
	listener, server, err := StartServer(ServerDependencies{
		ServerConfig: cfg,
		Handler:      storefront.Handler,
		Logger:       logger,
	})
	if err != nil {
		return nil, multierr.Append(err, storefront.Close())
	}
	port := listener.Addr().(*net.TCPAddr).Port
	return &Stub{
		BaseURL:    fmt.Sprintf("http://127.0.0.1:%d/index.php", port),
		storefront: storefront,
		server:     server,
	}, nil
}

// Close stops the server and releases the database.
func (s *Stub) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	if err != nil {
		err = multierr.Append(err, s.server.Close())
	}
	return multierr.Append(err, s.storefront.Close())
}

// ResolveTarget points cfg at a stub storefront when no base URL is
// configured, seeding it with creds. The returned func stops the stub and is
// a no-op against a real storefront.
func ResolveTarget(cfg *config.SuiteConfig, creds config.Credentials, logger *zap.Logger) (func() error, error) {
	if !cfg.UsesStub() {
		return func() error { return nil }, nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	stubCfg := config.LoadStorefrontConfig(func(string) string { return "" })
	stubCfg.Port = "0"
	stub, err := StartStub(stubCfg, creds, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to start stub storefront: %w", err)
	}

	cfg.BaseURL = stub.BaseURL
	cfg.HTTPUsername = stubCfg.HTTPUsername
	cfg.HTTPPassword = stubCfg.HTTPPassword
	logger.Info("using stub storefront", zap.String("base_url", stub.BaseURL))
	return stub.Close, nil
}
