package bootstrap

import (
	"context"
	"errors"
	"log"

	"cmms-dashboard-be/internal/config"
	"cmms-dashboard-be/internal/controller"
	"cmms-dashboard-be/internal/handler"
	"cmms-dashboard-be/internal/pkg/logger"
	"cmms-dashboard-be/internal/repository/memory"
	"cmms-dashboard-be/internal/repository/unitofwork"
	"cmms-dashboard-be/internal/service"
	"cmms-dashboard-be/internal/websocket"
	adminEvents "cmms-dashboard-be/pkg/admin/events"
	"cmms-dashboard-be/pkg/admin/feature"
	"cmms-dashboard-be/pkg/builder"
	"cmms-dashboard-be/pkg/navigation"

	pktNats "cmms-dashboard-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController           controller.IAuthController
	NavigationController     controller.INavigationController
	FeatureBuilderController controller.IFeatureBuilderController

	// Background Services (Exposed for main.go to run)
	FeedbackService     service.IFeedbackService
	FeatureAuditService *service.FeatureAuditService

	// WebSockets & Feedback
	FeedbackHandler *handler.FeedbackHandler
	WebSocketHub    *websocket.Hub

	Logger logger.ILogger

	closers []func()
}

// NewContainer wires every component. db may be nil unless FEATURE_STORE=postgres.
func NewContainer(db *gorm.DB, cfg *config.Config) (*Container, error) {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	c := &Container{Logger: sysLogger}

	uowFactory, err := newRepositoryFactory(db, cfg.Builder.FeatureStore)
	if err != nil {
		return nil, err
	}
	sysLogger.Info("BOOTSTRAP", "Feature store selected", map[string]interface{}{"store": cfg.Builder.FeatureStore})

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	// 3. Infrastructure
	// NATS
	var eventSink adminEvents.EventSink
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL, cfg.Builder.EventStream)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	} else {
		eventSink = natsPub
		c.closers = append(c.closers, natsPub.Close)
	}

	var eventSub service.EventSubscriber
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL, cfg.Builder.EventStream)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	} else {
		eventSub = natsSub
		c.closers = append(c.closers, natsSub.Close)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v. Feedback stays on this instance", err)
		_ = rdb.Close()
		rdb = nil
	} else {
		c.closers = append(c.closers, func() { _ = rdb.Close() })
	}

	// WebSocket Hub
	feedLogger := logger.NewIsolatedLogger(cfg.App.FeedLogFilePath)
	wsHub := websocket.NewHub(rdb, feedLogger)

	// 4. Services
	feedbackService := service.NewFeedbackService(pubSub, cfg.Builder.FeedbackTopic, wsHub, feedLogger)

	composer := navigation.NewComposer(navigation.DefaultTree())
	registry := builder.NewRegistry(
		uowFactory,
		feature.NewManager(),
		composer,
		adminEvents.NewNatsPublisher(eventSink, sysLogger),
		feedbackService,
		sysLogger,
	)
	if _, err := registry.Rehydrate(context.Background()); err != nil {
		return nil, err
	}

	users, err := service.DemoUsers()
	if err != nil {
		return nil, err
	}

	authService := service.NewAuthService(users, cfg.Auth.JwtSecret, cfg.Auth.TokenTTL, sysLogger)
	navigationService := service.NewNavigationService(composer, registry)
	builderService := service.NewBuilderService(registry, memory.NewDraftRepository(), sysLogger)

	c.FeedbackService = feedbackService
	c.FeatureAuditService = service.NewFeatureAuditService(eventSub, wsHub, feedLogger)
	c.WebSocketHub = wsHub
	c.FeedbackHandler = handler.NewFeedbackHandler(wsHub, cfg.Auth.JwtSecret, feedLogger)

	// 5. Controllers
	c.AuthController = controller.NewAuthController(authService)
	c.NavigationController = controller.NewNavigationController(navigationService, cfg.Auth.JwtSecret)
	c.FeatureBuilderController = controller.NewFeatureBuilderController(builderService, cfg.Auth.JwtSecret)

	c.closers = append(c.closers, func() {
		_ = feedLogger.Sync()
		_ = sysLogger.Sync()
	})
	return c, nil
}

// Close releases connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

func newRepositoryFactory(db *gorm.DB, store string) (unitofwork.RepositoryFactory, error) {
	switch store {
	case config.FeatureStorePostgres:
		if db == nil {
			return nil, errors.New("FEATURE_STORE=postgres requires DB_CONNECTION_STRING")
		}
		return unitofwork.NewRepositoryFactory(db), nil
	case config.FeatureStoreMemory, "":
		return memory.NewRepositoryFactory(memory.NewCustomFeatureStore()), nil
	}
	return nil, errors.New("unknown FEATURE_STORE " + store)
}
