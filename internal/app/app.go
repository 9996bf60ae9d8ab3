package app

import (
	"net/http"

	"recipe-app-go/internal/blobstore"
	"recipe-app-go/internal/config"
	"recipe-app-go/internal/db"
	catalogdomain "recipe-app-go/internal/domain/catalog"
	recipesdomain "recipe-app-go/internal/domain/recipes"
	relationsdomain "recipe-app-go/internal/domain/relations"
	shoppinglistdomain "recipe-app-go/internal/domain/shoppinglist"
	userdomain "recipe-app-go/internal/domain/user"
	catalogpg "recipe-app-go/internal/repository/postgres/catalog"
	recipespg "recipe-app-go/internal/repository/postgres/recipes"
	relationspg "recipe-app-go/internal/repository/postgres/relations"
	shoppinglistpg "recipe-app-go/internal/repository/postgres/shoppinglist"
	userpg "recipe-app-go/internal/repository/postgres/user"
	rediscache "recipe-app-go/internal/repository/redis"
	"recipe-app-go/internal/transport/httpserver"
	"recipe-app-go/internal/transport/httpserver/handler"
	"recipe-app-go/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
	redis      *redis.Client
}

func New(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg := config.Load(log)

	log.Info("app: initializing database")
	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(dbConn, log); err != nil {
		return nil, err
	}

	var redisClient *redis.Client
	var catalogCache catalogdomain.Cache
	if cfg.Redis.Addr != "" {
		log.Info("app: initializing redis", "addr", cfg.Redis.Addr)
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		catalogCache = rediscache.NewCatalogCache(redisClient, log)
	}

	catalogRepo := catalogpg.NewPostgres(dbConn)
	recipesRepo := recipespg.NewPostgres(dbConn)
	relationsRepo := relationspg.NewPostgres(dbConn)
	shoppingListRepo := shoppinglistpg.NewPostgres(dbConn)
	userRepo := userpg.NewPostgres(dbConn)

	catalogService := catalogdomain.NewService(catalogRepo, catalogCache, cfg.Redis.CacheTTL)
	recipesService := recipesdomain.NewService(recipesRepo)
	relationsService := relationsdomain.NewService(relationsRepo)
	shoppingListService := shoppinglistdomain.NewService(shoppingListRepo)
	userService := userdomain.NewService(userRepo)

	blobs, err := blobstore.NewLocalStore(cfg.Media.Dir, cfg.Media.BaseURL)
	if err != nil {
		return nil, err
	}

	handlers := handler.New(
		catalogService,
		recipesService,
		relationsService,
		shoppingListService,
		userService,
		blobs,
		log,
	)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	log.Info("app: initializing router")
	router := httpserver.NewRouter(cfg, handlers, userService, registry, log)

	log.Info("app: initializing http server")
	srv := httpserver.New(cfg, router)

	return &App{
		cfg:        cfg,
		httpServer: srv,
		db:         dbConn,
		redis:      redisClient,
	}, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			return err
		}
	}
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
