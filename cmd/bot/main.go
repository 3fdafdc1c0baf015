package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog/log"

	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/core/audit"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/core/auth"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/core/export"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/core/llm"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/core/notification"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/core/ratelimit"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/core/scheduler"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/core/session"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/core/whatsapp"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/modules/booking/agent"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/modules/booking/flow"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/modules/booking/handlers"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/modules/booking/repositories"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/modules/booking/responder"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/modules/booking/services"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/shared/config"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/shared/database"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/shared/utils"

	_ "github.com/MuhamadAgungGumelar/wa-booking-bot/cmd/bot/docs"
)

const shutdownTimeout = 10 * time.Second

// @title WhatsApp Booking Bot API
// @version 1.0
// @description Admin API for the multi-tenant WhatsApp booking bot
// @contact.name API Support
// @license.name MIT
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load config
	cfg := config.LoadConfig()
	utils.InitLogger(cfg.LogLevel)
	log.Info().Str("env", cfg.Env).Str("port", cfg.Port).Msg("🚀 Starting wa-booking-bot")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	loc := cfg.Location()

	// Init database
	db := database.NewDB(cfg.DatabaseURL, cfg.Env)
	defer db.Close()

	// Init repositories
	tenantRepo := repositories.NewTenantRepo(db.GORM)
	knowledgeRepo := repositories.NewKnowledgeRepo(db.GORM)
	orderRepo := repositories.NewOrderRepo(db.GORM)
	conversationRepo := repositories.NewConversationRepo(db.GORM)

	// Booking events (optional)
	var publisher notification.Publisher
	if cfg.RabbitMQURL != "" {
		rabbit, err := notification.NewRabbitPublisher(cfg.RabbitMQURL, cfg.BookingEventsQueue)
		if err != nil {
			log.Warn().Err(err).Msg("⚠️ RabbitMQ unavailable, booking events disabled")
		} else {
			defer rabbit.Close()
			publisher = rabbit
			log.Info().Str("queue", cfg.BookingEventsQueue).Msg("🐰 Publishing booking events")
		}
	}

	// Init services
	knowledgeService := services.NewKnowledgeService(knowledgeRepo)
	tenantService := services.NewTenantService(tenantRepo, knowledgeService)
	conversationService := services.NewConversationService(conversationRepo)
	orderService, err := services.NewOrderService(orderRepo, cfg.OrderNodeID, publisher, loc)
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to init order ledger")
	}
	reportService := services.NewReportService(tenantService, orderService, export.NewService(), loc)

	// Session + history stores
	sessions, history := newStores(ctx, cfg)

	// Init LLM service (multi-provider support)
	llmService := llm.NewService(ctx, llm.LoadProviderFromEnv())
	defer llmService.Close()

	reply := responder.New(llmService, history, responder.Config{
		AIEnabled:       cfg.AIEnabled,
		FallbackEnabled: cfg.AIFallbackEnabled,
		MaxRetries:      cfg.AIMaxRetries,
		Backoff:         cfg.AIRetryBackoff,
		Timeout:         cfg.AITimeout,
	})

	machine := flow.NewMachine(orderService, flow.Config{
		MaxPartySize:     cfg.MaxPartySize,
		DefaultUnitPrice: cfg.DefaultUnitPrice,
		Location:         loc,
	})

	// Init WhatsApp manager
	waManager, err := whatsapp.NewManager(ctx, whatsapp.Config{
		StoreURL:    cfg.WhatsAppStoreURL,
		SQLitePath:  cfg.WhatsAppSQLitePath,
		TypingDelay: cfg.TypingDelay,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to init WhatsApp store")
	}
	defer waManager.Close()

	// Init notification service
	notifications := notification.NewService(waManager, publisher, cfg.SuperAdminPhone)
	notifier := services.NewBookingNotifier(notifications, orderService)

	// Init message engine
	engine := agent.NewEngine(agent.Deps{
		Tenants:       tenantService,
		Knowledge:     knowledgeService,
		Sessions:      sessions,
		History:       history,
		Machine:       machine,
		Responder:     reply,
		Notifier:      notifier,
		Conversations: conversationService,
		Sender:        waManager,
		Limiter:       ratelimit.New(cfg.RateLimitWindow),
	})
	tenantService.AddReaper(engine)
	tenantService.AddReaper(waManager)

	waManager.OnMessage(func(ctx context.Context, msg whatsapp.InboundMessage) {
		engine.HandleMessage(ctx, msg)
	})
	waManager.OnPaired(func(tenantID, number, deviceJID string) {
		if err := tenantService.MarkConnected(context.Background(), tenantID, number, deviceJID); err != nil {
			log.Error().Err(err).Str("tenant_id", tenantID).Msg("❌ Failed to save paired device")
		}
	})

	log.Info().Str("provider", waManager.GetProviderName()).Msg("📱 WhatsApp Provider")
	startTenants(ctx, tenantService, waManager)

	// Housekeeping jobs
	sched := scheduler.New(loc)
	housekeeping := services.NewHousekeeping(engine, tenantService, orderService, cfg.SessionTTL)
	if err := housekeeping.Register(sched, cfg.SessionSweepSchedule); err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to register housekeeping jobs")
	}
	sched.Start()

	// Init handlers
	app := fiber.New(fiber.Config{
		AppName: "WhatsApp Booking Bot API",
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New())

	routes := handlers.Handlers{
		Health:    handlers.NewHealthHandler(waManager, llmService.GetProviderName()),
		Tenants:   handlers.NewTenantHandler(tenantService),
		Knowledge: handlers.NewKnowledgeHandler(knowledgeService),
		Orders:    handlers.NewOrderHandler(orderService, reportService),
		WhatsApp:  handlers.NewWhatsAppHandler(waManager, tenantService),
	}
	if cfg.AdminJWTSecret != "" {
		routes.Auth = auth.NewJWTService(cfg.AdminJWTSecret, cfg.AdminTokenTTL)
		log.Info().Msg("🔐 Admin API requires a bearer token")
	} else {
		log.Warn().Msg("⚠️ ADMIN_JWT_SECRET is empty, admin API is open")
	}
	if cfg.AuditEnabled {
		auditService := audit.NewService(audit.NewGormStore(db.GORM))
		routes.Recorder = auditService
		routes.Audit = handlers.NewAuditHandler(auditService)
	}
	handlers.SetupRoutes(app, routes)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("✅ API running")
		log.Info().Msgf("📄 Swagger UI: http://localhost:%s/swagger/", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error().Err(err).Msg("❌ API server stopped")
		}
	}()

	// Wait for shutdown signal
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Info().Msg("🛑 Shutting down wa-booking-bot...")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		log.Error().Err(err).Msg("❌ API shutdown failed")
	}
	sched.Stop()
	stop()
	log.Info().Msg("👋 Goodbye!")
}

// newStores picks the session and history backends. Redis is used only
// when selected and reachable; otherwise both live in process memory.
func newStores(ctx context.Context, cfg *config.Config) (session.Store, session.HistoryStore) {
	if cfg.SessionStore == "redis" {
		if client := newRedis(ctx, cfg.RedisURL); client != nil {
			log.Info().Msg("🗄️ Sessions stored in Redis")
			return session.NewRedisStore(client, cfg.SessionTTL),
				session.NewRedisHistory(client, cfg.AIMaxHistory, cfg.SessionTTL)
		}
	}

	store, err := session.NewMemoryStore()
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to init session store")
	}
	log.Info().Msg("🧠 Sessions stored in memory")
	return store, session.NewMemoryHistory(cfg.AIMaxHistory)
}

func newRedis(ctx context.Context, url string) *redis.Client {
	if url == "" {
		log.Warn().Msg("⚠️ SESSION_STORE=redis but REDIS_URL is empty, using memory")
		return nil
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		log.Warn().Err(err).Msg("⚠️ Invalid REDIS_URL, using memory")
		return nil
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warn().Err(err).Msg("⚠️ Redis unreachable, using memory")
		client.Close()
		return nil
	}
	return client
}

// startTenants reconnects every active tenant that has a paired device.
func startTenants(ctx context.Context, tenants *services.TenantService, wa *whatsapp.Manager) {
	list, err := tenants.List(ctx, true)
	if err != nil {
		log.Error().Err(err).Msg("❌ Failed to list tenants")
		return
	}

	started := 0
	for _, t := range list {
		if t.DeviceJID == "" {
			continue
		}
		if err := wa.StartTenant(ctx, t.ID.String(), t.DeviceJID); err != nil {
			log.Error().Err(err).Str("tenant_id", t.ID.String()).Msg("❌ Failed to connect tenant device")
			continue
		}
		started++
	}
	log.Info().Int("tenants", started).Msg("🔌 WhatsApp devices connected")
}
