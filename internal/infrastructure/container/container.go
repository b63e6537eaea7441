package container

import (
	"context"
	"fmt"

	"github.com/chaosdating/chaos-dating/internal/config"
	"github.com/chaosdating/chaos-dating/internal/delivery/http"
	"github.com/chaosdating/chaos-dating/internal/delivery/http/handler"
	"github.com/chaosdating/chaos-dating/internal/delivery/http/middleware"
	"github.com/chaosdating/chaos-dating/internal/domain"
	"github.com/chaosdating/chaos-dating/internal/infrastructure/database"
	"github.com/chaosdating/chaos-dating/internal/infrastructure/server"
	"github.com/chaosdating/chaos-dating/internal/infrastructure/storage"
	"github.com/chaosdating/chaos-dating/internal/repository/postgres"
	redisrepo "github.com/chaosdating/chaos-dating/internal/repository/redis"
	"github.com/chaosdating/chaos-dating/internal/usecase/auth"
	"github.com/chaosdating/chaos-dating/internal/usecase/filter"
	"github.com/chaosdating/chaos-dating/internal/usecase/profile"
	"github.com/jmoiron/sqlx"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	DB     *sqlx.DB
	Redis  *goredis.Client
	Server *server.Server
	Log    zerolog.Logger
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config, log zerolog.Logger) (*Container, error) {
	// Initialize database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := database.Migrate(context.Background(), db); err != nil {
		return nil, fmt.Errorf("failed to bootstrap schema: %w", err)
	}

	// Initialize Redis
	redisClient, err := database.NewRedisClient(&cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	// Initialize picture storage
	pictures, err := storage.NewPictureStore(&cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize picture storage: %w", err)
	}

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db)
	profileRepo := postgres.NewProfileRepository(db)
	wishRepo := postgres.NewWishRepository(db)
	genderRepo := postgres.NewLookupRepository(db, domain.TableGenders)
	pronounRepo := postgres.NewLookupRepository(db, domain.TablePronouns)
	sessionRepo := redisrepo.NewSessionRepository(redisClient)
	transactor := postgres.NewTransactor(db)

	// Initialize use cases
	authUseCase := auth.NewAuthUseCase(
		userRepo,
		profileRepo,
		wishRepo,
		genderRepo,
		pronounRepo,
		sessionRepo,
		transactor,
		cfg.JWT.Secret,
		cfg.JWT.SessionTTL(),
	)

	profileUseCase := profile.NewProfileUseCase(
		profileRepo,
		wishRepo,
		genderRepo,
		pronounRepo,
		transactor,
	)

	filterUseCase := filter.NewFilterUseCase(profileRepo)

	// Initialize handlers
	pagesHandler := handler.NewPagesHandler(filterUseCase, log)
	authHandler := handler.NewAuthHandler(authUseCase, profileUseCase, pictures, log)
	profileHandler := handler.NewProfileHandler(profileUseCase, pictures, log)
	filterHandler := handler.NewFilterHandler(filterUseCase, profileUseCase, log)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(authUseCase)

	// Initialize router
	router := http.NewRouter(
		pagesHandler,
		authHandler,
		profileHandler,
		filterHandler,
		authMiddleware,
		cfg.Storage.Path,
		log,
	)

	// Setup routes
	ginRouter := router.Setup()

	// Initialize server
	srv := server.NewServer(&cfg.Server, ginRouter, log)

	return &Container{
		Config: cfg,
		DB:     db,
		Redis:  redisClient,
		Server: srv,
		Log:    log,
	}, nil
}

// Close closes all connections
func (c *Container) Close() error {
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Log.Error().Err(err).Msg("closing redis")
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}
