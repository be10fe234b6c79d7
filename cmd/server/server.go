package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mythweaver/mythweaver/internal/clients/srd"
	"github.com/mythweaver/mythweaver/internal/config"
	apiv1 "github.com/mythweaver/mythweaver/internal/handlers/api/v1"
	"github.com/mythweaver/mythweaver/internal/logger"
	"github.com/mythweaver/mythweaver/internal/middleware"
	combatorch "github.com/mythweaver/mythweaver/internal/orchestrators/combat"
	"github.com/mythweaver/mythweaver/internal/pkg/clock"
	"github.com/mythweaver/mythweaver/internal/pkg/idgen"
	"github.com/mythweaver/mythweaver/internal/redis"
	"github.com/mythweaver/mythweaver/internal/repositories/characters"
	combatrepo "github.com/mythweaver/mythweaver/internal/repositories/combat"
	"github.com/mythweaver/mythweaver/internal/repositories/sessions"
	"github.com/mythweaver/mythweaver/internal/repositories/templates"
	"github.com/mythweaver/mythweaver/internal/services/auth"
	"github.com/mythweaver/mythweaver/internal/services/events"
)

var httpPort string

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the HTTP API server",
	Long:  `Start the combat API server with all configured services.`,
	RunE:  runServer,
}

func init() {
	serverCmd.Flags().StringVar(&httpPort, "port", "", "HTTP server port (overrides PORT)")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	if httpPort != "" {
		cfg.Port = httpPort
	}

	log := logger.Setup(cfg)

	log.Info("starting mythweaver",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"redis_addr", cfg.RedisAddr)

	redisClient, err := redis.NewClient(cfg.RedisAddr, nil)
	if err != nil {
		return fmt.Errorf("failed to create redis client: %w", err)
	}

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer pingCancel()
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	log.Info("redis connection established")

	combatRepo, err := combatrepo.NewRedis(&combatrepo.RedisConfig{Client: redisClient})
	if err != nil {
		return fmt.Errorf("failed to create combat repository: %w", err)
	}
	characterRepo, err := characters.NewRedis(&characters.RedisConfig{Client: redisClient})
	if err != nil {
		return fmt.Errorf("failed to create character repository: %w", err)
	}
	templateRepo, err := templates.NewRedis(&templates.RedisConfig{Client: redisClient})
	if err != nil {
		return fmt.Errorf("failed to create template repository: %w", err)
	}
	sessionRepo, err := sessions.NewRedis(&sessions.RedisConfig{Client: redisClient})
	if err != nil {
		return fmt.Errorf("failed to create session repository: %w", err)
	}

	authorizer, err := auth.New(&auth.Config{
		SessionRepo:   sessionRepo,
		CharacterRepo: characterRepo,
	})
	if err != nil {
		return fmt.Errorf("failed to create authorizer: %w", err)
	}

	srdClient, err := srd.New(&srd.Config{
		BaseURL:  cfg.SRDBaseURL,
		CacheTTL: cfg.SRDCacheTTL,
	})
	if err != nil {
		return fmt.Errorf("failed to create SRD client: %w", err)
	}

	broadcaster := events.NewRedisBroadcaster(redisClient, log)

	combatService, err := combatorch.NewOrchestrator(&combatorch.Config{
		CombatRepo:    combatRepo,
		CharacterRepo: characterRepo,
		TemplateRepo:  templateRepo,
		Authorizer:    authorizer,
		Broadcaster:   broadcaster,
		SRDClient:     srdClient,
		IDGenerator:   idgen.NewUUID("cbt"),
		Clock:         clock.New(),
	})
	if err != nil {
		return fmt.Errorf("failed to create combat orchestrator: %w", err)
	}

	mux := http.NewServeMux()
	apiv1.NewCombatHandler(combatService, log).RegisterRoutes(mux)
	apiv1.NewCharacterHandler(combatService, log).RegisterRoutes(mux)
	apiv1.NewHealthHandler(redisClient, log).RegisterRoutes(mux)

	handler := middleware.Logger(middleware.Recover(mux))
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		log.Info("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("failed to serve: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigChan:
		log.Info("shutdown signal received")
	case err := <-errChan:
		return err
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", "error", err)
		return err
	}

	if err := redisClient.Close(); err != nil {
		log.Error("error closing redis connection", "error", err)
	}

	log.Info("server exited")
	return nil
}
