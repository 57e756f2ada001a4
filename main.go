package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/grandshipper/grandshipper-api/handlers"
	"github.com/grandshipper/grandshipper-api/internal/archive"
	"github.com/grandshipper/grandshipper-api/internal/blogs"
	"github.com/grandshipper/grandshipper-api/internal/config"
	"github.com/grandshipper/grandshipper-api/internal/database"
	"github.com/grandshipper/grandshipper-api/internal/sessions"
	"github.com/grandshipper/grandshipper-api/internal/storage"
	"github.com/grandshipper/grandshipper-api/internal/tokens"
	"github.com/grandshipper/grandshipper-api/internal/types"
	"github.com/grandshipper/grandshipper-api/internal/users"
	"github.com/grandshipper/grandshipper-api/pkg/logger"
	"github.com/grandshipper/grandshipper-api/pkg/metrics"
	"github.com/grandshipper/grandshipper-api/pkg/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

const mongoConnectAttempts = 5

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		boot, lerr := logger.New(os.Getenv("LOG_LEVEL"), "")
		if lerr != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		boot.Fatalf("failed to load config: %v", err)
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()
	log.Debugf("startup: LOG_LEVEL=%s", log.LevelString())

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	issuer, err := tokens.NewIssuer(cfg.JWT.Secret, cfg.JWT.AccessTokenTTL)
	if err != nil {
		log.Fatalf("token issuer: %v", err)
	}

	client, err := database.ConnectWithRetry(ctx, log, cfg.MongoDB.URI, cfg.MongoDB.Timeout, mongoConnectAttempts)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()
	db := client.Database(cfg.MongoDB.Database)
	log.Infof("Connected to MongoDB (database=%s)", cfg.MongoDB.Database)

	ready := map[string]handlers.Pinger{
		"mongo": handlers.PingFunc(func(ctx context.Context) error { return client.Ping(ctx, nil) }),
	}

	var rdb *redis.Client
	if cfg.Redis.Host != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			_ = rdb.Close()
			rdb = nil
		} else {
			log.Infof("Connected to Redis: %s:%s", cfg.Redis.Host, cfg.Redis.Port)
			ready["redis"] = handlers.PingFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() })
		}
	}

	typeSvc := types.NewService(types.NewMongoRepository(db.Collection(database.TypesCollection)), log)
	blogSvc := blogs.NewService(blogs.NewMongoRepository(db.Collection(database.BlogsCollection)), typeSvc, log)

	userRepo := users.NewMongoUserRepository(db.Collection(database.UsersCollection))
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Warnf("users index: %v", err)
	}
	userSvc := users.NewService(userRepo, log)

	var sessionRepo sessions.Repository
	if rdb != nil {
		sessionRepo = sessions.NewRedisRepository(rdb, "session:")
		log.Infof("Using Redis for session storage")
	} else {
		mrepo := sessions.NewMongoRepository(db.Collection(database.SessionsCollection))
		if err := mrepo.EnsureIndexes(ctx); err != nil {
			log.Warnf("sessions index: %v", err)
		}
		sessionRepo = mrepo
	}
	sessionSvc := sessions.NewService(sessionRepo, cfg.JWT.RefreshTokenTTL)

	var archiver *archive.Archiver
	if cfg.MinIO.Endpoint != "" {
		store, err := storage.NewMinIOStorage(ctx, cfg.MinIO)
		if err != nil {
			log.Warnf("blog archive disabled: %v", err)
		} else {
			archiver = archive.New(store, blogSvc, log)
			ready["minio"] = store
			log.Infof("blog archive enabled (bucket=%s)", cfg.MinIO.Bucket)
		}
	}

	var limiter gin.HandlerFunc
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis {
			window := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			limiter = middleware.RedisRateLimit(rdb, cfg.RateLimit.RPS, cfg.RateLimit.Burst, window, issuer)
		} else {
			limiter = middleware.RateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst, issuer)
		}
		log.Infof("rate limiter enabled (rps=%.2f burst=%d redis=%t)", cfg.RateLimit.RPS, cfg.RateLimit.Burst, cfg.RateLimit.UseRedis && rdb != nil)
	}

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)

	router := handlers.NewRouter(handlers.Deps{
		Log:         log,
		Types:       typeSvc,
		Blogs:       blogSvc,
		Users:       userSvc,
		Sessions:    sessionSvc,
		Tokens:      issuer,
		Revocations: sessions.NewRevocations(rdb),
		Archiver:    archiver,
		Limiter:     limiter,
		CORSOrigins: cfg.CORS.Origins,
		Ready:       ready,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		<-ctx.Done()
		log.Infof("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Errorf("shutdown: %v", err)
		}
	}()

	log.Infof("Listening on port %s...", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server failed: %v", err)
	}
	log.Infof("stopped server")
}
