package app

import (
	"fmt"
	"log"
	"strings"
	"time"

	"jualsampah/internal/config"
	"jualsampah/internal/handlers"
	"jualsampah/internal/middleware"
	"jualsampah/internal/repositories"
	"jualsampah/internal/services"
	"jualsampah/pkg/kafka"
	"jualsampah/pkg/rabbitmq"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Options collects what the HTTP layer needs.
type Options struct {
	OrderService *services.OrderService
	AuthService  *services.AuthService // nil leaves the status actions public
	APIPrefix    string
	EventsBroker string // reported by /health
}

// App is a fully wired server together with the resources it owns.
type App struct {
	Fiber   *fiber.App
	closers []func() error
}

// NewFiberApp builds the Fiber app with middleware and all routes.
func NewFiberApp(opts Options) *fiber.App {
	app := fiber.New(fiber.Config{AppName: "jualsampah"})

	app.Use(recover.New())
	app.Use(logger.New())

	app.Get("/health", healthHandler(opts.OrderService, opts.EventsBroker))

	var router fiber.Router = app
	if prefix := strings.TrimRight(opts.APIPrefix, "/"); prefix != "" {
		router = app.Group(prefix)
	}

	var statusGuards []fiber.Handler
	if opts.AuthService != nil {
		handlers.NewAuthHandler(opts.AuthService).RegisterRoutes(router)
		statusGuards = append(statusGuards, middleware.AuthRequired(opts.AuthService))
	}
	handlers.NewOrderHandler(opts.OrderService).RegisterRoutes(router, statusGuards...)

	return app
}

func healthHandler(orderService *services.OrderService, broker string) fiber.Handler {
	if broker == "" {
		broker = config.BrokerNone
	}
	return func(c *fiber.Ctx) error {
		if err := orderService.Ping(); err != nil {
			log.Printf("Health check failed: %v", err)
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "unreachable",
				"events":   broker,
			})
		}
		return c.JSON(fiber.Map{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "connected",
			"events":   broker,
		})
	}
}

// Bootstrap opens the store and the event broker named by cfg and wires the
// HTTP app on top of them.
func Bootstrap(cfg *config.Config) (*App, error) {
	a := &App{}

	orderRepo, collectorRepo, err := a.openStores(cfg)
	if err != nil {
		a.Close()
		return nil, err
	}

	publisher, err := a.openPublisher(cfg)
	if err != nil {
		a.Close()
		return nil, err
	}

	orderService := services.NewOrderService(orderRepo, publisher)

	var authService *services.AuthService
	if cfg.AuthEnabled {
		if collectorRepo == nil {
			a.Close()
			return nil, fmt.Errorf("AUTH_ENABLED requires a SQL database driver, got %q", cfg.DBDriver)
		}
		authService = services.NewAuthService(collectorRepo, cfg.JWTSecret, cfg.JWTTTL)
		if err := authService.EnsureCollector(cfg.CollectorUsername, cfg.CollectorPassword); err != nil {
			a.Close()
			return nil, err
		}
	}

	a.Fiber = NewFiberApp(Options{
		OrderService: orderService,
		AuthService:  authService,
		APIPrefix:    cfg.APIPrefix,
		EventsBroker: cfg.EventsBroker,
	})
	return a, nil
}

func (a *App) openStores(cfg *config.Config) (repositories.OrderRepository, repositories.CollectorRepository, error) {
	if strings.EqualFold(cfg.DBDriver, "memory") {
		log.Println("Using in-memory order store; data is lost on restart.")
		return repositories.NewMockOrderRepository(), nil, nil
	}

	db, err := repositories.OpenDatabase(cfg.DBDriver, cfg.DatabaseDSN, cfg.DBLogLevel)
	if err != nil {
		return nil, nil, err
	}
	if sqlDB, err := db.DB(); err == nil {
		a.closers = append(a.closers, sqlDB.Close)
	}

	log.Println("Running database migrations...")
	if err := repositories.Migrate(db); err != nil {
		return nil, nil, err
	}
	log.Println("Database migration complete.")

	return repositories.NewGORMOrderRepository(db), repositories.NewGORMCollectorRepository(db), nil
}

// openPublisher returns a nil interface when events are disabled.
func (a *App) openPublisher(cfg *config.Config) (services.EventPublisher, error) {
	switch cfg.EventsBroker {
	case config.BrokerRabbitMQ:
		client, err := rabbitmq.NewClient(rabbitmq.Config{
			URL:      cfg.RabbitMQURL,
			Exchange: cfg.RabbitMQExchange,
			Queue:    cfg.RabbitMQQueue,
		})
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, client.Close)
		if cfg.RabbitMQConsume {
			if err := client.ConsumeOrderEvents(LogOrderEvent); err != nil {
				return nil, err
			}
		}
		return client, nil
	case config.BrokerKafka:
		producer, err := kafka.NewProducer(kafka.Config{
			Brokers: cfg.KafkaBrokerList(),
			Topic:   cfg.KafkaTopic,
		})
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, producer.Close)
		return producer, nil
	default:
		log.Println("Order events disabled.")
		return nil, nil
	}
}

// Close releases everything Bootstrap opened, newest first.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			log.Printf("Error closing resource: %v", err)
		}
	}
	a.closers = nil
}
