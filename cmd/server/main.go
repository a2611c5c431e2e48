package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/ringsidehq/member-portal/internal/api"
	"github.com/ringsidehq/member-portal/internal/core/ports"
	"github.com/ringsidehq/member-portal/internal/core/service"
	"github.com/ringsidehq/member-portal/internal/infrastructure/backend"
	"github.com/ringsidehq/member-portal/internal/infrastructure/db/mongo"
	"github.com/ringsidehq/member-portal/internal/infrastructure/db/redis"
	"github.com/ringsidehq/member-portal/internal/infrastructure/identity"
	"github.com/ringsidehq/member-portal/internal/pkg/config"
	"github.com/ringsidehq/member-portal/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps := api.Dependencies{
		JWTSecret: cfg.JWTSecret,
		Log:       log,
	}

	var (
		provider    ports.IdentityProvider
		audit       ports.AuditRecorder = ports.NopAuditRecorder{}
		throttle    ports.LoginThrottle = ports.NopLoginThrottle{}
		mongoClient *mongodriver.Client
	)

	if cfg.Identity.DemoMode {
		log.Warn().Msg("demo mode: offline identity provider and profile backend, no mongo/redis")
		demo, err := identity.NewDemoProvider(cfg.Identity.DemoPassword)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialise demo identity provider")
		}
		provider = demo
	} else {
		client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to mongo")
		}
		mongoClient = client
		deps.Mongo = db
		audit = mongo.NewAuditRepository(db)

		rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		deps.Redis = rdb
		throttle = redis.NewLoginThrottle(rdb)

		provider = identity.NewClient(cfg.Identity.SignInURL, cfg.Identity.TokenURL, cfg.Identity.APIKey, nil, log)
	}

	sessions := service.NewSessionManager(provider, log)

	var profileAPI ports.ProfileAPI
	if cfg.Identity.DemoMode {
		profileAPI = identity.NewDemoProfileAPI(sessions)
	} else {
		gateway := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, sessions, log)
		profileAPI = backend.NewProfileAPI(gateway)
	}

	profiles := service.NewProfileService(profileAPI, log)
	medical := service.NewMedicalService(cfg.Medical.SimulatedLatency, audit, log)

	deps.Auth = service.NewAuthService(sessions, profiles, throttle, audit, cfg.JWTSecret, cfg.SessionTTL, log)
	deps.Profiles = profiles
	deps.Medical = medical
	deps.Audit = audit

	e := api.NewRouter(deps)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("member portal listening")
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Info().Err(err).Msg("http server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown failed")
	}
	if deps.Redis != nil {
		_ = deps.Redis.Close()
	}
	if mongoClient != nil {
		_ = mongoClient.Disconnect(shutdownCtx)
	}
}
