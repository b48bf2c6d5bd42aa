package container

import (
	"database/sql"
	"fmt"
	auditLogRepo "inventory/internal/auditlog"
	"inventory/internal/cart"
	"inventory/internal/checkout"
	"inventory/internal/core/config"
	"inventory/internal/inventory/assets"
	"inventory/internal/inventory/category"
	"inventory/internal/inventory/transactions"
	"inventory/internal/locations"
	"inventory/internal/metrics"
	"inventory/internal/middleware"
	"inventory/internal/presets"
	"inventory/internal/rate_limiter"
	"inventory/internal/repository"
	"inventory/internal/users"
	"inventory/pkg/auditlog"
	"inventory/pkg/security"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

type Container struct {
	Repository   *repository.Repository
	AuditLog     *auditlog.Auditlog
	Registry     *prometheus.Registry
	Tokens       *security.TokenIssuer
	LoginLimiter *rate_limiter.RateLimiter
	Sessions     *checkout.Sessions
	Catalog      *presets.CachedCatalog
	HealthCheck  *middleware.HealthCheck
	LoginHandler *security.LoginHandler
	UserHandler  *users.UsersHandler
	AssetHandler *assets.AssetHandler
	CartHandler  *checkout.CartHandler

	CategoryHandler *category.ItemCategoryHandler
	LocationHandler *locations.LocationHandler
}

func NewAppContainer(db *sql.DB, cfg *config.Config, version string, logger *zap.Logger) (*Container, error) {
	tokens, err := security.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to configure tokens: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	repo := repository.NewRepository(db)
	auditLog := auditlog.NewAuditLog(auditLogRepo.NewRepository(repo), logger)
	userRepo := users.NewRepository(repo)
	assetRepo := assets.NewRepository(repo)
	assetService := assets.NewAssetService(assetRepo)
	transactionService := transactions.NewTransactionService(transactions.NewRepository(repo), auditLog)
	catalog := presets.NewCachedCatalog(presets.NewRepository(repo), cfg.PresetCacheSize, cfg.PresetCacheTTL)

	committer := cart.NewCommitter(transactionService, logger.Named("committer"), metrics.NewCommitMetrics(registry))
	resolver := cart.NewResolver(assetService, cfg.SubstituteLimit)
	sessions := checkout.NewSessions(committer, resolver, logger.Named("cart"))

	return &Container{
		Repository:   repo,
		AuditLog:     auditLog,
		Registry:     registry,
		Tokens:       tokens,
		LoginLimiter: rate_limiter.NewRateLimiter(cfg.LoginRateLimit, cfg.LoginRateWindow),
		Sessions:     sessions,
		Catalog:      catalog,
		HealthCheck:  middleware.NewHealthCheck(db, version),
		LoginHandler: security.NewLoginHandler(userRepo, tokens, logger.Named("login")),
		UserHandler:  users.NewHandler(userRepo),
		AssetHandler: assets.NewAssetHandler(assetService),
		CartHandler:  checkout.NewCartHandler(sessions, assetService, catalog, userRepo, logger.Named("cart")),

		CategoryHandler: category.NewItemCategoryHandler(category.NewItemCategoryRepository(repo)),
		LocationHandler: locations.NewLocationHandler(locations.NewLocationRepository(repo)),
	}, nil
}
