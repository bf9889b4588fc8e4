package bootstrap

import (
	"context"
	"log"
	"os"

	"docrag-be/internal/config"
	"docrag-be/internal/constant"
	"docrag-be/internal/controller"
	"docrag-be/internal/pkg/logger"
	"docrag-be/internal/repository/memory"
	"docrag-be/internal/service"
	"docrag-be/pkg/backend"
	"docrag-be/pkg/cache"
	"docrag-be/pkg/filesearch"
	pktNats "docrag-be/pkg/nats"
	"docrag-be/pkg/reconcile"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
)

type Container struct {
	// Controllers
	StoreController  controller.IStoreController
	ChatController   controller.IChatController
	HealthController controller.IHealthController

	// Background Services (Exposed for main.go to run)
	ConsumerService   service.IConsumerService
	StoreEventService *service.StoreEventService

	Logger  logger.ILogger
	closers []func()
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	cleanupLogger := logger.NewIsolatedLogger(cfg.App.CleanupLogFilePath)

	c := &Container{Logger: sysLogger}
	c.closers = append(c.closers, func() {
		sysLogger.Sync()
		cleanupLogger.Sync()
	})

	if cfg.App.JwtSecret == "" {
		log.Printf("[WARN] JWT_SECRET is empty; every protected request will be rejected")
	}

	// 2. Event Bus
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermill.NewStdLogger(false, false),
	)
	c.closers = append(c.closers, func() { pubSub.Close() })

	// 3. Infrastructure
	var eventPublisher service.IEventPublisher
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	} else {
		eventPublisher = natsPub
		c.closers = append(c.closers, natsPub.Close)
	}

	var questionsCache service.QuestionsCache
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v. Example questions will not be cached", err)
		rdb.Close()
	} else {
		redisQuestions := cache.NewQuestionsCache(rdb, cfg.Ai.ExampleQuestionsTTL)
		questionsCache = redisQuestions
		c.closers = append(c.closers, func() { rdb.Close() })

		natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
		} else {
			c.StoreEventService = service.NewStoreEventService(natsSub, redisQuestions, durableName(), sysLogger)
			c.closers = append(c.closers, natsSub.Close)
		}
	}

	// 4. Collaborators
	fileSearch := newFileSearchClient(cfg, sysLogger)
	backendClient := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout)

	// 5. Services
	cleanupJobs := memory.NewCleanupJobRepository(constant.CleanupJobRetention)
	cleanupService := service.NewOrphanCleanupService(
		pubSub,
		constant.OrphanedSessionTopic,
		backendClient,
		cleanupJobs,
		eventPublisher,
		cleanupLogger,
	)
	c.ConsumerService = cleanupService

	reconciler := reconcile.New(backendClient, cleanupService,
		reconcile.WithLimit(cfg.Chat.RecentSessionsLimit),
		reconcile.WithMessageWorkers(cfg.Chat.MessageFetchWorkers),
		reconcile.WithLogger(sysLogger),
	)

	storeService := service.NewStoreService(fileSearch, questionsCache, eventPublisher, sysLogger)
	chatService := service.NewChatService(reconciler, cleanupJobs, sysLogger)

	// 6. Controllers
	c.StoreController = controller.NewStoreController(storeService)
	c.ChatController = controller.NewChatController(chatService)
	c.HealthController = controller.NewHealthController(fileSearch != nil)

	return c
}

// newFileSearchClient returns nil when the provider cannot be configured; every
// store operation then fails as not initialized instead of aborting startup.
func newFileSearchClient(cfg *config.Config, sysLogger logger.ILogger) *filesearch.Client {
	genaiClient, err := filesearch.NewGenAIClient(context.Background(), cfg.Keys.GoogleGemini, cfg.Ai.GeminiBaseURL, nil)
	if err != nil {
		log.Printf("[WARN] File search disabled: %v", err)
		return nil
	}

	// Store lifecycle and grounded generation share one SDK client.
	storeAPI, err := filesearch.NewGenAIStoreAPI(genaiClient)
	if err != nil {
		log.Printf("[WARN] File search disabled: %v", err)
		return nil
	}

	generator, err := filesearch.NewGenAIGenerator(genaiClient, cfg.Ai.Model)
	if err != nil {
		log.Printf("[WARN] File search disabled: %v", err)
		return nil
	}

	client, err := filesearch.NewClient(storeAPI, generator,
		filesearch.WithPollInterval(cfg.Ai.UploadPollInterval),
		filesearch.WithMaxPollAttempts(cfg.Ai.UploadPollMaxAttempts),
		filesearch.WithLogger(sysLogger),
	)
	if err != nil {
		log.Printf("[WARN] File search disabled: %v", err)
		return nil
	}

	log.Printf("[INFO] Using File Search model: %s", cfg.Ai.Model)
	return client
}

func durableName() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "local"
	}
	return "questions-cache-" + host
}

// Close releases infrastructure in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}
