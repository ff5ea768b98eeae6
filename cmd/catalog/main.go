// Command catalog runs the media catalog service: the movie, person, and TV
// show hierarchy services, the user follow graph, and their shared storage,
// cache, and notification infrastructure.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	catalogrepo "github.com/reelstack/reelstack/internal/catalog/repository"
	catalogsvc "github.com/reelstack/reelstack/internal/catalog/service"
	"github.com/reelstack/reelstack/internal/notification"
	userrepo "github.com/reelstack/reelstack/internal/user/repository"
	usersvc "github.com/reelstack/reelstack/internal/user/service"
	"github.com/reelstack/reelstack/pkg/cache"
	"github.com/reelstack/reelstack/pkg/config"
	"github.com/reelstack/reelstack/pkg/database"
	"github.com/reelstack/reelstack/pkg/interfaces"
	"github.com/reelstack/reelstack/pkg/logger"
	"github.com/reelstack/reelstack/pkg/retry"
)

// App bundles the wired services.
type App struct {
	Movies   *catalogsvc.MovieService
	People   *catalogsvc.PersonService
	TvShows  *catalogsvc.TvShowService
	Seasons  *catalogsvc.SeasonService
	Episodes *catalogsvc.EpisodeService
	Reviews  *catalogsvc.ReviewService
	Users    *usersvc.UserService
}

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to config file")
	flag.Parse()

	cfg := config.MustLoad(*configPath)

	log, err := logger.NewZapLogger(cfg.Logger.Development)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	db, err := database.NewGormDB(cfg.Database)
	if err != nil {
		log.Fatal("failed to connect to database", interfaces.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("failed to run migrations", interfaces.Error(err))
	}

	ctx := context.Background()

	var c interfaces.Cache
	if cfg.Redis.Addr != "" {
		redisCache, err := cache.NewRedis(ctx, cache.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal("failed to connect to redis", interfaces.Error(err))
		}
		defer func() { _ = redisCache.Close() }()
		c = redisCache
		log.Info("using redis cache", interfaces.String("addr", cfg.Redis.Addr))
	} else {
		memCache := cache.NewMemory()
		defer memCache.Close()
		c = memCache
		log.Info("using in-memory cache")
	}

	var notifier interfaces.Notifier
	if cfg.NATS.URL != "" {
		natsNotifier, err := notification.NewNATSNotifier(cfg.NATS.URL, log)
		if err != nil {
			log.Fatal("failed to connect to nats", interfaces.Error(err))
		}
		defer func() { _ = natsNotifier.Close() }()
		notifier = natsNotifier
		log.Info("using nats notifier", interfaces.String("url", cfg.NATS.URL))
	} else {
		notifier = notification.NewNoopNotifier()
		log.Info("using no-op notifier")
	}

	catalogStore := catalogrepo.NewGormStore(db)
	userStore := userrepo.NewGormStore(db)
	retryCfg := retry.Config{Attempts: cfg.Retry.Attempts, Delay: cfg.Retry.Delay}

	app := &App{
		Movies:   catalogsvc.NewMovieService(catalogStore, c, log),
		People:   catalogsvc.NewPersonService(catalogStore, c, log),
		TvShows:  catalogsvc.NewTvShowService(catalogStore, c, log),
		Seasons:  catalogsvc.NewSeasonService(catalogStore, c, log),
		Episodes: catalogsvc.NewEpisodeService(catalogStore, c, log),
		Reviews:  catalogsvc.NewReviewService(catalogStore, c, retryCfg, log),
		Users:    usersvc.NewUserService(userStore, c, notifier, retryCfg, log),
	}

	app.run(cfg, log)
}

// run keeps the wired service graph alive until a shutdown signal arrives.
func (a *App) run(cfg config.Config, log interfaces.Logger) {
	log.Info("catalog service started",
		interfaces.String("service", cfg.Service.Name),
		interfaces.String("environment", cfg.Service.Environment))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("catalog service shutting down")
}
