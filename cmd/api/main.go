package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go-pos-admin/internal/handler"
	"go-pos-admin/internal/middleware"
	"go-pos-admin/internal/repository"
	"go-pos-admin/internal/service"
	"go-pos-admin/internal/ws"
	"go-pos-admin/pkg/config"
	"go-pos-admin/pkg/database"
	"go-pos-admin/pkg/jwt"
	"go-pos-admin/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("load config")
	}
	log := logger.New(cfg.App.Env, cfg.LogLevel)
	if envErr != nil {
		log.Warn().Msg(".env file not found, relying on system env")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 2. Setup Database
	db, err := database.ConnectDB(cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}
	if err := repository.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	// 3. Seed the permission catalog and default roles
	if err := seedCatalog(ctx, db, log); err != nil {
		log.Fatal().Err(err).Msg("seed catalog")
	}

	// 4. Setup WebSocket Hub
	hubCtx, stopHub := context.WithCancel(context.Background())
	wsHub := ws.NewHub(log)
	go wsHub.Run(hubCtx)

	// 5. Dependency Injection (Wiring Layers)
	staffRepo := repository.NewStaffRepo(db)
	roleRepo := repository.NewRoleRepo(db)
	permRepo := repository.NewPermissionRepo(db)

	catalog, err := service.LoadCatalog(ctx, permRepo)
	if err != nil {
		log.Fatal().Err(err).Msg("load permission catalog")
	}

	sessions, closeSessions := sessionStore(ctx, cfg.Redis, log)
	defer closeSessions()

	tokens := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.TTL, cfg.JWT.Issuer)

	deps := handler.Deps{
		Cookie:    handler.CookieConfig{Name: cfg.JWT.CookieName, Secure: cfg.App.IsProduction()},
		Auth:      service.NewAuthService(staffRepo, sessions, tokens, wsHub, log),
		Staff:     service.NewStaffService(db, staffRepo, roleRepo, permRepo, catalog, wsHub),
		Brands:    service.NewBrandService(db, staffRepo, wsHub, log),
		Outlets:   service.NewOutletService(db, staffRepo, wsHub, log),
		Roles:     service.NewRoleService(roleRepo, catalog),
		Setup:     service.NewSetupService(db, cfg.Setup, log),
		Dashboard: service.NewDashboardService(repository.NewDashboardRepo(db)),
		Resources: service.NewResources(db, wsHub),
		Hub:       wsHub,
	}
	if !cfg.Setup.Enabled() {
		log.Info().Msg("setup endpoint disabled: SETUP_EMAIL, SETUP_PASSWORD and SETUP_PIN are not all set")
	}

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: handler.ErrorHandler(log),
	})

	// Middleware
	app.Use(recover.New())
	app.Use(middleware.RequestLogger(log))
	app.Use(cors.New())

	// 7. Routes
	handler.RegisterRoutes(app, deps)

	// 8. Graceful Shutdown
	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Panic().Err(err).Msg("listen")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	<-ctx.Done()

	log.Info().Msg("Shutting down server...")
	stopHub()
	if err := app.Shutdown(); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// seedCatalog creates the default permissions and roles if they don't exist
func seedCatalog(ctx context.Context, db *gorm.DB, log zerolog.Logger) error {
	if err := repository.NewPermissionRepo(db).SeedDefaults(ctx); err != nil {
		return err
	}
	if err := repository.NewRoleRepo(db).SeedDefaults(ctx); err != nil {
		return err
	}
	log.Info().Msg("permission catalog and default roles seeded")
	return nil
}

// sessionStore connects to Redis when configured. Without Redis, logout only
// clears the cookie.
func sessionStore(ctx context.Context, cfg config.RedisConfig, log zerolog.Logger) (repository.SessionStore, func()) {
	if !cfg.Enabled() {
		log.Warn().Msg("REDIS_ADDR not set, token revocation disabled")
		return repository.NopSessionStore{}, func() {}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal().Err(err).Str("addr", cfg.Addr).Msg("connect redis")
	}
	return repository.NewRedisSessionStore(client), func() { _ = client.Close() }
}
