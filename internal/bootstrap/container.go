package bootstrap

import (
	"context"
	"log"
	"time"

	"boardgame-ranking-be/internal/config"
	"boardgame-ranking-be/internal/controller"
	"boardgame-ranking-be/internal/pkg/logger"
	"boardgame-ranking-be/internal/pkg/serverutils"
	"boardgame-ranking-be/internal/repository/unitofwork"
	"boardgame-ranking-be/internal/service"
	"boardgame-ranking-be/pkg/lock"

	pktNats "boardgame-ranking-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	RankingController controller.IRankingController
	GameController    controller.IGameController

	// Background Services (Exposed for main.go to run)
	RankingConsumer service.IRankingConsumer

	CatalogService service.ICatalogService
	Logger         logger.ILogger

	closers []func()
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	consumerLogger := logger.NewIsolatedLogger(cfg.App.ConsumerLogPath)

	c := &Container{Logger: sysLogger}

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)
	c.closers = append(c.closers, func() { pubSub.Close() })

	// 3. Infrastructure
	var eventPublisher service.EventPublisher
	if cfg.Ranking.PublishToNats {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			eventPublisher = natsPub
			c.closers = append(c.closers, natsPub.Close)
		}
	}

	sessionLocker := newSessionLocker(cfg, sysLogger, c)

	// 4. Services
	publisherService := service.NewPublisherService(cfg.Ranking.FinalizedTopic, pubSub)
	rankingService := service.NewRankingService(
		uowFactory,
		sessionLocker,
		publisherService,
		eventPublisher,
		sysLogger,
		cfg.Ranking.TopN,
	)
	catalogService := service.NewCatalogService(uowFactory, sysLogger)
	c.RankingConsumer = service.NewRankingConsumer(pubSub, cfg.Ranking.FinalizedTopic, uowFactory, consumerLogger)
	c.CatalogService = catalogService

	// 5. Controllers
	auth := serverutils.JwtMiddleware(cfg.Keys.JwtSecret)
	c.RankingController = controller.NewRankingController(rankingService, auth, cfg.Ranking.DefaultLanguage)
	c.GameController = controller.NewGameController(catalogService, auth)

	return c
}

// newSessionLocker falls back to the in-memory locker when Redis is not
// configured or unreachable. The memory locker only serializes calls within
// one process.
func newSessionLocker(cfg *config.Config, sysLogger logger.ILogger, c *Container) lock.SessionLocker {
	ttl := time.Duration(cfg.Lock.TTLSeconds) * time.Second
	if cfg.Lock.Backend != "redis" {
		return lock.NewMemoryLocker(ttl)
	}

	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v. Falling back to in-memory session locks", err)
		rdb.Close()
		return lock.NewMemoryLocker(ttl)
	}
	c.closers = append(c.closers, func() { rdb.Close() })

	return lock.NewRedisLocker(rdb, ttl, func(err error) {
		sysLogger.Error("LOCK", "Failed to release session lock", map[string]interface{}{"error": err.Error()})
	})
}

// Close releases connections opened by NewContainer, newest first.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.Logger.Sync()
}
