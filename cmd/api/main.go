package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"launchpad-api/internal/admins"
	"launchpad-api/internal/auth"
	"launchpad-api/internal/branding"
	"launchpad-api/internal/cache"
	"launchpad-api/internal/config"
	"launchpad-api/internal/content"
	"launchpad-api/internal/db"
	"launchpad-api/internal/designs"
	"launchpad-api/internal/fullprojects"
	"launchpad-api/internal/logging"
	"launchpad-api/internal/server"
	"launchpad-api/internal/testimonials"
	"launchpad-api/internal/transport"
	"launchpad-api/internal/upload"
	"launchpad-api/internal/validation"
	"launchpad-api/internal/videos"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := logging.New(cfg.Env)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	transport.SetProduction(cfg.IsProduction())
	if cfg.InsecureSecret() {
		logger.Warn("JWT_SECRET is not set; update your .env file for production use")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, cols, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logger.Error("mongo connection failed", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("mongo connected", zap.String("db", cfg.MongoDB))
	defer client.Disconnect(context.Background())

	if err := db.EnsureIndexes(ctx, cols); err != nil {
		logger.Error("index creation failed", zap.Error(err))
		os.Exit(1)
	}

	var cacheStore cache.Cache = cache.NewNoop()
	if cfg.RedisURL != "" || cfg.RedisAddr != "" {
		var redisCache *cache.RedisCache
		if cfg.RedisURL != "" {
			redisCache, err = cache.NewRedisFromURL(cfg.RedisURL)
		} else {
			redisCache = cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		}
		if err == nil {
			err = redisCache.Ping(ctx)
		}
		if err != nil {
			logger.Warn("redis unavailable, list caching disabled", zap.Error(err))
		} else {
			logger.Info("redis connected")
			cacheStore = redisCache
			defer redisCache.Close()
		}
	}
	lists := content.NewListCache(cacheStore, time.Duration(cfg.CacheTTLSeconds)*time.Second)

	var store upload.Store
	var uploadsHandler http.Handler
	switch cfg.UploadDriver {
	case config.UploadDriverS3:
		s3Store, err := upload.NewS3Store(ctx, cfg.S3)
		if err != nil {
			logger.Error("s3 store init failed", zap.Error(err))
			os.Exit(1)
		}
		logger.Info("uploads stored in s3", zap.String("bucket", cfg.S3.Bucket))
		store = s3Store
	default:
		localStore := upload.NewLocalStore(cfg.UploadDir, server.UploadsPrefix)
		if err := localStore.EnsureDir(); err != nil {
			logger.Error("upload dir init failed", zap.Error(err))
			os.Exit(1)
		}
		logger.Info("uploads stored on disk", zap.String("dir", localStore.Dir()))
		store = localStore
		uploadsHandler = localStore.Handler()
	}
	receiver := upload.NewReceiver(store, cfg.UploadMaxBytes)

	tokens := &auth.Manager{
		Secret: []byte(cfg.JWTSecret),
		TTL:    cfg.TokenTTL,
		Issuer: cfg.JWTIssuer,
	}
	val := validation.New()

	adminService := admins.NewService(admins.NewRepository(cols.Admins), tokens)
	if cfg.DefaultAdminEmail != "" && cfg.DefaultAdminPassword != "" {
		admin, created, err := adminService.EnsureDefaultAdmin(ctx, cfg.DefaultAdminEmail, cfg.DefaultAdminPassword, cfg.DefaultAdminName)
		if err != nil {
			logger.Error("default admin seeding failed", zap.Error(err))
			os.Exit(1)
		}
		logger.Info("default admin ready", zap.String("email", admin.Email), zap.Bool("created", created))
	}

	handlers := server.Handlers{
		Admins:       admins.NewHandler(adminService, val, logger),
		Videos:       videos.NewHandler(videos.NewService(videos.NewRepository(cols.Videos), val), val, lists, logger),
		Branding:     branding.NewHandler(branding.NewService(branding.NewRepository(cols.Branding)), val, receiver, lists, logger),
		FullProjects: fullprojects.NewHandler(fullprojects.NewService(fullprojects.NewRepository(cols.FullProjects)), val, receiver, lists, logger),
		Designs:      designs.NewHandler(designs.NewService(designs.NewRepository(cols.Designs)), val, receiver, lists, logger),
		Testimonials: testimonials.NewHandler(testimonials.NewService(testimonials.NewRepository(cols.Testimonials)), val, receiver, lists, logger),
	}

	router := server.NewRouter(server.Options{
		Log:         logger,
		Tokens:      tokens,
		CORSOrigins: cfg.CORSOrigins,
		Uploads:     uploadsHandler,
	}, handlers)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server started", zap.String("addr", cfg.Addr()), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stop:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	case err := <-serveErr:
		logger.Error("server error", zap.Error(err))
		os.Exit(1)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}
	logger.Info("closed out remaining connections")
}
