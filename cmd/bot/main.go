package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/battle-bot-discord/internal/config"
	"github.com/KirkDiggler/battle-bot-discord/internal/discord/core"
	"github.com/KirkDiggler/battle-bot-discord/internal/discord/handlers"
	"github.com/KirkDiggler/battle-bot-discord/internal/discord/middleware"
	"github.com/KirkDiggler/battle-bot-discord/internal/events"
	"github.com/KirkDiggler/battle-bot-discord/internal/health"
	"github.com/KirkDiggler/battle-bot-discord/internal/services/battle"
	"github.com/KirkDiggler/battle-bot-discord/internal/telemetry"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	log.Printf("Application ID: %s", cfg.Discord.AppID)
	if cfg.Discord.GuildID != "" {
		log.Printf("Guild ID: %s", cfg.Discord.GuildID)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		log.Fatalf("Failed to set up tracing: %v", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			log.Printf("Failed to flush traces: %v", err)
		}
	}()

	checks := health.NewHandler()

	// Rate limits are shared through Redis when it is reachable
	var rateLimitStore middleware.RateLimitStore = middleware.NewMemoryRateLimitStore()
	if redisClient := connectRedis(ctx, cfg.Redis); redisClient != nil {
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Printf("Error closing Redis connection: %v", err)
			} else {
				log.Println("Closed Redis connection")
			}
		}()

		rateLimitStore = middleware.NewRedisRateLimitStore(redisClient)
		checks.Add("redis", func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
		log.Println("Using Redis for rate limiting")
	}

	// Battle service
	eventBus := events.NewBus()
	eventBus.SubscribeAll(events.NewLogListener())
	battleService := battle.NewService(&battle.ServiceConfig{
		EventBus: eventBus,
	})

	// Interaction pipeline
	pipeline := core.NewPipeline()
	pipeline.Use(
		middleware.RecoveryMiddleware(),
		middleware.ErrorMiddleware(nil),
		middleware.LoggingMiddleware(nil),
		middleware.TracingMiddleware(telemetry.Tracer()),
	)

	router := core.NewRouter(handlers.CommandName, pipeline)
	router.Use(middleware.RateLimitMiddleware(&middleware.RateLimitConfig{
		MaxRequests: cfg.RateLimit.Max,
		Window:      cfg.RateLimit.Window,
		Store:       rateLimitStore,
	}))
	battleHandler, err := handlers.NewBattleHandler(&handlers.BattleHandlerConfig{
		Service:   battleService,
		CustomIDs: router.CustomIDs(),
	})
	if err != nil {
		log.Fatalf("Failed to create battle handler: %v", err)
	}
	battleHandler.RegisterRoutes(router)
	router.Register()

	// Create Discord session
	dg, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		log.Fatalf("Failed to create Discord session: %v", err)
	}

	dg.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		if err := pipeline.Execute(context.Background(), s, i); err != nil {
			log.Printf("Failed to answer interaction %s: %v", i.ID, err)
		}
	})

	// Open connection to Discord
	if err := dg.Open(); err != nil {
		log.Printf("Failed to open Discord connection: %v", err)
		return
	}
	defer func() {
		if err := dg.Close(); err != nil {
			log.Printf("Failed to close Discord connection: %v", err)
		}
	}()

	checks.Add("discord", func(context.Context) error {
		dg.RLock()
		defer dg.RUnlock()
		if !dg.DataReady {
			return errors.New("gateway not ready")
		}
		return nil
	})

	// Use empty string for global commands, or set a specific guild ID for testing
	if err := handlers.RegisterCommands(dg, cfg.Discord.AppID, cfg.Discord.GuildID); err != nil {
		log.Printf("Failed to register commands: %v", err)
		return
	}

	if cfg.Discord.GuildID != "" {
		log.Printf("Registered commands for guild: %s", cfg.Discord.GuildID)
	} else {
		log.Println("Registered global commands (may take up to 1 hour to propagate)")
	}

	server := health.NewServer(cfg.Health.Addr, checks)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("Health endpoint listening on %s%s", cfg.Health.Addr, health.Path)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("health server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		fmt.Println("Shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	fmt.Println("Bot is now running. Press CTRL-C to exit.")

	if err := g.Wait(); err != nil {
		log.Printf("Stopped with error: %v", err)
	}
}

// connectRedis returns a live client, or nil when Redis is not configured or not answering
func connectRedis(ctx context.Context, cfg config.RedisConfig) *redis.Client {
	if !cfg.Enabled() {
		log.Println("No REDIS_URL found, using in-memory rate limiting")
		return nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		log.Printf("Failed to parse Redis URL: %v", err)
		log.Println("Falling back to in-memory rate limiting")
		return nil
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Printf("Failed to connect to Redis at %s: %v", opts.Addr, err)
		log.Println("Falling back to in-memory rate limiting")
		_ = client.Close()
		return nil
	}

	log.Printf("Connected to Redis at %s", opts.Addr)
	return client
}
