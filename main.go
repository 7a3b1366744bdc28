package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jplus/jstore-api/api"
	"github.com/jplus/jstore-api/internal/cart"
	db "github.com/jplus/jstore-api/internal/db/sqlc"
	"github.com/jplus/jstore-api/internal/digest"
	"github.com/jplus/jstore-api/internal/event"
	"github.com/jplus/jstore-api/internal/imageproxy"
	"github.com/jplus/jstore-api/internal/mailer"
	"github.com/jplus/jstore-api/internal/notification"
	"github.com/jplus/jstore-api/internal/session"
	"github.com/jplus/jstore-api/internal/storage"
	"github.com/jplus/jstore-api/internal/token"
	"github.com/jplus/jstore-api/internal/util"
	"github.com/jplus/jstore-api/internal/worker"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"resty.dev/v3"
)

const imageFetchTimeout = 15 * time.Second

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	
	// Load configurations
	config, err := util.LoadConfig("./app.env")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config file 😣")
	}
	
	log.Info().Msg("configurations loaded successfully ✅")
	
	// Create connection pool
	connPool, err := pgxpool.New(context.Background(), config.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to validate db connection string 😣")
	}
	defer connPool.Close()
	
	pingErr := connPool.Ping(context.Background())
	if pingErr != nil {
		log.Fatal().Err(pingErr).Msg("failed to connect to db 😣")
	}
	log.Info().Msg("connected to db ✅")
	
	store := db.NewStore(connPool)
	
	redisClient := redis.NewClient(&redis.Options{
		Addr:     config.RedisServerAddress,
		Password: "", // no password set
		DB:       0,  // use default DB
	})
	defer redisClient.Close()
	
	if err = redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis 😣")
	}
	log.Info().Msg("connected to redis ✅")
	
	redisOpt := asynq.RedisClientOpt{
		Addr: config.RedisServerAddress,
	}
	taskDistributor := worker.NewTaskDistributor(redisOpt)
	taskInspector := worker.NewTaskInspector(redisOpt)
	
	mailSender, err := mailer.NewSMTPSender(config)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create mailer service 😣")
	}
	
	notifier, err := notification.NewNotifier(config.DiscordBotToken, config.DiscordChannelID)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create staff notifier 😣")
	}
	
	taskProcessor := worker.NewRedisTaskProcessor(redisOpt, mailSender, notifier)
	if err = taskProcessor.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start task processor 😣")
	}
	log.Info().Msg("task processor started ✅")
	
	tokenMaker, err := token.NewJWTMaker(config.TokenSecretKey)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create token maker 😣")
	}
	
	sessionService, err := session.NewService(redisClient, tokenMaker, map[session.Scope]string{
		session.ScopeSite:  config.SitePassword,
		session.ScopeAdmin: config.AdminPassword,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create session service 😣")
	}
	log.Info().Bool("site_gate", sessionService.Enabled(session.ScopeSite)).Msg("session service created ✅")
	
	cartStore := cart.NewRedisStore(redisClient, config.CartTTL)
	fileStore := storage.NewCloudinaryStore(config.CloudinaryURL)
	
	restyClient := resty.New().SetTimeout(imageFetchTimeout)
	defer restyClient.Close()
	imageProxy := imageproxy.NewProxy(restyClient, redisClient, config.ImageProxyReferer, config.ImageCacheTTL)
	
	dailyDigest, err := digest.NewDigest(store, notifier, config.DigestHour)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create daily digest 😣")
	}
	if err = dailyDigest.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start daily digest 😣")
	}
	log.Info().Uint("hour", config.DigestHour).Msg("daily digest scheduled ✅")
	
	eventHub := event.NewHub()
	
	server := api.NewServer(config, store, cartStore, fileStore, sessionService, taskDistributor, taskInspector, imageProxy, eventHub)
	
	runHTTPServer(config, server)
	
	taskProcessor.Shutdown()
	if err = dailyDigest.Stop(); err != nil {
		log.Err(err).Msg("failed to stop daily digest")
	}
	log.Info().Msg("shutdown complete 👋")
}

// runHTTPServer blocks until SIGINT or SIGTERM, then drains in-flight requests.
func runHTTPServer(config util.Config, server *api.Server) {
	httpServer := &http.Server{
		Addr:    config.HTTPServerAddress,
		Handler: server.Handler(),
	}
	
	go func() {
		log.Info().Str("address", config.HTTPServerAddress).Msg("HTTP server started 🚀")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start HTTP server 😣")
		}
	}()
	
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	
	log.Info().Msg("shutting down HTTP server...")
	
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Err(err).Msg("HTTP server shutdown failed")
	}
}
