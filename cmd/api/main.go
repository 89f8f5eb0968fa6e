package main

import (
	"context"
	"fmt"
	common_api "go-transformer/internal/common/api"
	"go-transformer/internal/config"
	"go-transformer/internal/connectors"
	"go-transformer/internal/database"
	"go-transformer/internal/features/assist"
	"go-transformer/internal/features/audit"
	"go-transformer/internal/features/chat"
	"go-transformer/internal/features/data"
	"go-transformer/internal/features/rules"
	"go-transformer/internal/features/schema"
	"go-transformer/internal/features/system"
	"go-transformer/internal/features/transform"
	"go-transformer/internal/logger"
	"go-transformer/internal/middleware"
	"log"

	_ "go-transformer/docs" // Import swagger docs

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// NewFiberServer creates a new Fiber app instance
func NewFiberServer() *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Use custom CORS middleware
	app.Use(middleware.CORSMiddleware())

	return app
}

// AsRoute is a helper function to reduce boilerplate.
// It tags the constructor so Fx knows to add it to the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(common_api.Route)),    // Cast to Interface
		fx.ResultTags(`group:"routes"`), // Add to Group
	)
}

// RegisterAllRoutes takes the group "routes" (slice of interfaces)
// and calls Setup() on each one.
func RegisterAllRoutes(app *fiber.App, routes []common_api.Route) {
	for _, route := range routes {
		route.Setup(app)
	}
	log.Printf("Registered %d routes\n", len(routes))
}

// RegisterAllRoutesWithAnnotation wraps RegisterAllRoutes with fx annotations
var RegisterAllRoutesWithAnnotation = fx.Annotate(
	RegisterAllRoutes,
	fx.ParamTags(``, `group:"routes"`),
)

// StartServer creates a lifecycle hook to start Fiber in a goroutine
// and shut it down when the app exits.
func StartServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := fmt.Sprintf(":%s", cfg.Port)
				if err := app.Listen(port); err != nil {
					log.Fatalf("Server failed to start: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.Shutdown()
		},
	})
}

// @title           CRM to ERP Transformer API
// @version         1.0
// @description     Transforms CRM sales records into ERP invoices using a configurable rule set.

// @host            localhost:8080
// @BasePath        /
func main() {
	app := fx.New(
		fx.Provide(
			// Load Config
			config.LoadConfig,

			// Initialize Logger
			logger.NewLogger,

			// Initialize Fiber Server
			NewFiberServer,

			// Initialize Database
			database.NewDatabase,

			// Initialize Repository
			audit.NewAuditRepository,
			rules.NewRulesRepository,
			schema.NewSchemaRepository,
			data.NewDataRepository,
			transform.NewOutputRepository,

			audit.NewAuditService,
			rules.NewRulesService,
			schema.NewSchemaService,
			data.NewDataService,
			transform.NewActionExecutor,
			transform.NewTransformService,
			transform.NewBatchScheduler,
			assist.NewOpenAIClient,
			assist.NewAssistService,
			chat.NewChatService,

			// External systems
			connectors.NewERPConnector,
			system.NewHub,

			// Interface Adapters to break circular dependencies and satisfy Fx
			func(h *system.Hub) rules.Notifier { return h },
			func(h *system.Hub) schema.Notifier { return h },
			func(s data.DataService) transform.RecordSource { return s },

			// Initialize Controller
			rules.NewRulesController,
			schema.NewSchemaController,
			data.NewDataController,
			transform.NewTransformController,
			assist.NewAssistController,
			chat.NewChatController,
			audit.NewAuditController,
			system.NewWebSocketController,

			// Initialize API Routes
			AsRoute(rules.NewRulesApi),
			AsRoute(schema.NewSchemaApi),
			AsRoute(data.NewDataApi),
			AsRoute(transform.NewTransformApi),
			AsRoute(assist.NewAssistApi),
			AsRoute(chat.NewChatApi),
			AsRoute(audit.NewAuditApi),
			AsRoute(system.NewHealthApi),
			AsRoute(system.NewSwaggerApi),
			AsRoute(system.NewWebSocketApi),
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(
			// Register Routes & Start
			RegisterAllRoutesWithAnnotation,
			StartServer,
			func(lc fx.Lifecycle, scheduler *transform.BatchScheduler) {
				lc.Append(fx.Hook{
					OnStart: func(ctx context.Context) error {
						return scheduler.Start()
					},
					OnStop: func(ctx context.Context) error {
						scheduler.Stop()
						return nil
					},
				})
			},
		),
	)

	app.Run()
}
