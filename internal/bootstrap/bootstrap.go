package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/campuslink/clubnet/internal/app/controllers"
	"github.com/campuslink/clubnet/internal/app/migrations"
	"github.com/campuslink/clubnet/internal/app/repositories"
	"github.com/campuslink/clubnet/internal/app/routes"
	"github.com/campuslink/clubnet/internal/app/services"
	"github.com/campuslink/clubnet/internal/config"
	"github.com/campuslink/clubnet/internal/db"
	"github.com/campuslink/clubnet/internal/middleware"
	"github.com/campuslink/clubnet/internal/pkg/auth"
	"github.com/campuslink/clubnet/internal/pkg/filestorage"
	"github.com/campuslink/clubnet/internal/pkg/logger"
	"github.com/campuslink/clubnet/internal/pkg/websocket"
	"github.com/campuslink/clubnet/internal/seed"
)

// Dependencies bundles everything the router needs.
type Dependencies struct {
	Repositories *repositories.Repositories
	Services     *services.Services

	AuthController   *controllers.AuthController
	UserController   *controllers.UserController
	ClubController   *controllers.ClubController
	PostController   *controllers.PostController
	FriendController *controllers.FriendController
	FeedController   *controllers.FeedController
	SearchController *controllers.SearchController
	ChatController   *controllers.ChatController

	AuthMiddleware *middleware.AuthMiddleware
	Hub            *websocket.Hub
	ChatHandler    *websocket.ChatHandler
}

// LoadConfigAndSetupLogger loads the configuration file and configures the
// global logger from it.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(filepath.Join("configs", "config.yaml"))
	if err != nil {
		return nil, zerolog.Logger{}, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Configure(logger.Config{
		Level:  logger.LogLevel(cfg.Logging.Level),
		Pretty: cfg.Logging.Format == "console",
	})
	lgr := logger.Get()

	return cfg, lgr, nil
}

// SetupDatabase connects to Postgres, runs pending migrations and seeds the
// default superuser.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := db.NewPostgresPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	migrator := migrations.NewMigrator(pool)
	if err := migrator.MigrateFromDirectory(ctx, "migrations"); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	lgr.Info().Msg("Database migrations applied")

	if err := seed.CreateDefaultData(ctx, pool, lgr); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to seed default data: %w", err)
	}

	return pool, nil
}

// BuildDependencies constructs repositories, services, controllers and the
// websocket hub.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	repos := repositories.NewRepositories(dbPool)

	storage, err := filestorage.NewLocalStorage(cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.AccessTokenExpiry(), cfg.RefreshTokenExpiry())

	svcs := services.NewServices(repos, jwtService, storage, lgr)

	uploader := controllers.NewUploader(storage, cfg.Storage.MaxFileSize, cfg.Storage.AllowedTypes)

	hub := websocket.NewHub(lgr.With().Str("component", "ws-hub").Logger())
	go hub.Run()

	chatHandler := websocket.NewChatHandler(hub, svcs.ChatService, jwtService,
		lgr.With().Str("component", "ws-chat").Logger())

	return &Dependencies{
		Repositories: repos,
		Services:     svcs,

		AuthController:   controllers.NewAuthController(svcs.UserService),
		UserController:   controllers.NewUserController(svcs.UserService, uploader),
		ClubController:   controllers.NewClubController(svcs.ClubService, uploader),
		PostController:   controllers.NewPostController(svcs.PostService, uploader),
		FriendController: controllers.NewFriendController(svcs.FriendService),
		FeedController:   controllers.NewFeedController(svcs.FeedService),
		SearchController: controllers.NewSearchController(svcs.SearchService),
		ChatController:   controllers.NewChatController(svcs.ChatService, hub, uploader),

		AuthMiddleware: middleware.NewAuthMiddleware(jwtService),
		Hub:            hub,
		ChatHandler:    chatHandler,
	}, nil
}

// SetupRouter builds the Gin engine and registers all routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(middleware.RequestLogger(lgr.With().Str("component", "http").Logger()))
	router.Use(gin.Recovery())

	routes.SetupRouter(
		router,
		deps.AuthController,
		deps.UserController,
		deps.ClubController,
		deps.PostController,
		deps.FriendController,
		deps.FeedController,
		deps.SearchController,
		deps.ChatController,
		deps.ChatHandler,
		deps.AuthMiddleware,
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	return router
}
