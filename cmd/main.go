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

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
	"videotube-server/config"
	_ "videotube-server/docs"
	"videotube-server/internal/handler"
	"videotube-server/internal/metrics"
	"videotube-server/internal/migrate"
	"videotube-server/internal/ports"
	"videotube-server/internal/repository"
	"videotube-server/internal/security"
	"videotube-server/internal/service"
	"videotube-server/internal/util"
)

const (
	videoUploadTimeout     = 30 * time.Minute
	limiterCleanupInterval = 5 * time.Minute
)

type handlers struct {
	auth         *handler.AuthenticationHandler
	user         *handler.UserHandler
	video        *handler.VideoHandler
	tweet        *handler.TweetHandler
	comment      *handler.CommentHandler
	like         *handler.LikeHandler
	subscription *handler.SubscriptionHandler
	playlist     *handler.PlaylistHandler
	dashboard    *handler.DashboardHandler
}

// @title VideoTube server
// @version 1.0
// @description REST API видеохостинга: пользователи, видео, твиты, комментарии, лайки, подписки, плейлисты

// @host localhost:8080

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig("config.yaml", ".env")
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	logger, err := config.SetupLogger(&cfg.Log)
	if err != nil {
		log.Fatalf("Ошибка настройки логгера: %v", err)
	}
	defer logger.Sync()

	db, err := config.SetupDatabase(&cfg.DatabaseConfig)
	if err != nil {
		logger.Fatal("Не удалось подключиться к БД", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Ошибка при закрытии БД", zap.Error(err))
		}
	}()

	if cfg.DatabaseConfig.MigrateOnStart {
		if err := migrate.Up(ctx, db.DB.DB); err != nil {
			logger.Fatal("Ошибка применения миграций", zap.Error(err))
		}
	}

	// без redis статистика канала считается из БД на каждый запрос
	var cacheRepo ports.CacheRepository
	if cfg.RedisConfig.Addr != "" {
		redisClient, err := config.SetupRedis(&cfg.RedisConfig)
		if err != nil {
			logger.Fatal("Ошибка подключения к Redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Error("Ошибка при закрытии Redis", zap.Error(err))
			}
		}()
		cacheRepo = repository.NewCacheRepository(redisClient, cfg.Cache.StatsTTL)
	} else {
		logger.Warn("Redis не настроен, кэш статистики отключен")
	}

	s3Service, err := service.NewS3Service(ctx, &cfg.S3Config)
	if err != nil {
		logger.Fatal("Ошибка создания S3 сервиса", zap.Error(err))
	}
	uploader := util.NewS3Uploader(videoUploadTimeout)

	userRepo := repository.NewUserRepository(db)
	videoRepo := repository.NewVideoRepository(db)
	tweetRepo := repository.NewTweetRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	playlistRepo := repository.NewPlaylistRepository(db)

	jwtService := security.NewJWTService(&cfg.JWT)
	passwordHasher := security.NewPasswordHasher(cfg.Password.BcryptCost, cfg.Password.Workers)

	authService := service.NewAuthenticationService(userRepo, jwtService, passwordHasher)
	userService := service.NewUserService(userRepo, passwordHasher, s3Service)
	videoService := service.NewVideoService(videoRepo, s3Service, cacheRepo, cfg.S3Config.PresignTTL)
	tweetService := service.NewTweetService(tweetRepo)
	commentService := service.NewCommentService(commentRepo, videoRepo)
	likeService := service.NewLikeService(likeRepo, videoRepo, commentRepo, tweetRepo)
	subscriptionService := service.NewSubscriptionService(subscriptionRepo, userRepo)
	playlistService := service.NewPlaylistService(playlistRepo, videoRepo, userRepo)
	dashboardService := service.NewDashboardService(videoRepo, cacheRepo)

	h := handlers{
		auth:         handler.NewAuthenticationHandler(authService, &cfg.JWT),
		user:         handler.NewUserHandler(userService, cfg.Server.MaxUploadBytes),
		video:        handler.NewVideoHandler(videoService, uploader, cfg.Server.MaxUploadBytes),
		tweet:        handler.NewTweetHandler(tweetService),
		comment:      handler.NewCommentHandler(commentService),
		like:         handler.NewLikeHandler(likeService),
		subscription: handler.NewSubscriptionHandler(subscriptionService),
		playlist:     handler.NewPlaylistHandler(playlistService),
		dashboard:    handler.NewDashboardHandler(dashboardService),
	}

	loginLimiter := security.NewLoginLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst).
		TrustProxies(cfg.Server.TrustedProxies...)
	go loginLimiter.Cleanup(ctx, limiterCleanupInterval)

	srv, router := config.SetupServer(&cfg.Server)
	promRegistry := prometheus.NewRegistry()

	router.Use(middleware.RequestID)
	// адрес соединения нужен лимитеру до того, как RealIP подставит X-Forwarded-For
	router.Use(security.RememberPeer)
	router.Use(middleware.RealIP)
	router.Use(util.RequestLogger(logger))
	router.Use(middleware.Recoverer)
	if cfg.Server.CORSOrigin != "" {
		router.Use(util.CORS(cfg.Server.CORSOrigin))
	}
	router.Use(metrics.Middleware(promRegistry))

	router.Get("/swagger/*", httpSwagger.WrapHandler)
	router.Method(http.MethodGet, "/metrics", metrics.Handler(promRegistry))

	authMiddleware := security.JWTMiddleware(authService)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/healthcheck", handler.Healthcheck(db))

		setupUserRoutes(r, h, authMiddleware, loginLimiter)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			setupVideoRoutes(r, h.video)
			setupTweetRoutes(r, h.tweet)
			setupCommentRoutes(r, h.comment)
			setupLikeRoutes(r, h.like)
			setupSubscriptionRoutes(r, h.subscription)
			setupPlaylistRoutes(r, h.playlist)
			setupDashboardRoutes(r, h.dashboard)
		})
	})

	runServer(ctx, srv, cfg.Server.ShutdownTimeout)

	// незавершенные загрузки видео дописываются до выхода
	uploader.Wait()
}

func setupUserRoutes(r chi.Router, h handlers, authMiddleware func(http.Handler) http.Handler, limiter *security.LoginLimiter) {
	r.Route("/users", func(r chi.Router) {
		r.Post("/register", h.user.RegisterUser)

		r.Group(func(r chi.Router) {
			r.Use(limiter.Middleware)
			r.Post("/login", h.auth.Login)
			r.Post("/refresh-token", h.auth.RefreshToken)
		})

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Post("/logout", h.auth.Logout)
			r.Post("/change-password", h.auth.ChangePassword)
			r.Get("/current-user", h.auth.GetCurrentUser)
			r.Patch("/update-account", h.user.UpdateAccount)
			r.Patch("/avatar", h.user.UpdateAvatar)
			r.Patch("/cover-image", h.user.UpdateCoverImage)
			r.Get("/c/{username}", h.user.GetChannelProfile)
			r.Get("/history", h.user.GetWatchHistory)
		})
	})
}

func setupVideoRoutes(r chi.Router, h *handler.VideoHandler) {
	r.Route("/videos", func(r chi.Router) {
		r.Get("/", h.ListVideos)
		r.Post("/", h.PublishVideo)
		r.Get("/{videoId}", h.GetVideo)
		r.Patch("/{videoId}", h.UpdateVideo)
		r.Delete("/{videoId}", h.DeleteVideo)
		r.Patch("/toggle/publish/{videoId}", h.TogglePublish)
	})
}

func setupTweetRoutes(r chi.Router, h *handler.TweetHandler) {
	r.Route("/tweets", func(r chi.Router) {
		r.Get("/", h.ListTweets)
		r.Post("/", h.CreateTweet)
		r.Get("/user/{userId}", h.ListUserTweets)
		r.Patch("/{tweetId}", h.UpdateTweet)
		r.Delete("/{tweetId}", h.DeleteTweet)
	})
}

func setupCommentRoutes(r chi.Router, h *handler.CommentHandler) {
	r.Route("/comments", func(r chi.Router) {
		r.Get("/{videoId}", h.ListVideoComments)
		r.Post("/{videoId}", h.AddComment)
		r.Patch("/c/{commentId}", h.UpdateComment)
		r.Delete("/c/{commentId}", h.DeleteComment)
	})
}

func setupLikeRoutes(r chi.Router, h *handler.LikeHandler) {
	r.Route("/likes", func(r chi.Router) {
		r.Post("/toggle/v/{videoId}", h.ToggleVideoLike)
		r.Post("/toggle/c/{commentId}", h.ToggleCommentLike)
		r.Post("/toggle/t/{tweetId}", h.ToggleTweetLike)
		r.Get("/videos", h.LikedVideos)
	})
}

func setupSubscriptionRoutes(r chi.Router, h *handler.SubscriptionHandler) {
	r.Route("/subscriptions", func(r chi.Router) {
		r.Post("/c/{channelId}", h.ToggleSubscription)
		r.Get("/c/{channelId}", h.ChannelSubscribers)
		r.Get("/u/{subscriberId}", h.SubscribedChannels)
	})
}

func setupPlaylistRoutes(r chi.Router, h *handler.PlaylistHandler) {
	r.Route("/playlist", func(r chi.Router) {
		r.Post("/", h.CreatePlaylist)
		r.Get("/user/{userId}", h.UserPlaylists)
		r.Get("/{playlistId}", h.GetPlaylist)
		r.Patch("/{playlistId}", h.UpdatePlaylist)
		r.Delete("/{playlistId}", h.DeletePlaylist)
		r.Patch("/add/{videoId}/{playlistId}", h.AddVideo)
		r.Patch("/remove/{videoId}/{playlistId}", h.RemoveVideo)
	})
}

func setupDashboardRoutes(r chi.Router, h *handler.DashboardHandler) {
	r.Route("/dashboard", func(r chi.Router) {
		r.Get("/stats", h.ChannelStats)
		r.Get("/videos", h.ChannelVideos)
	})
}

func runServer(ctx context.Context, server *http.Server, shutdownTimeout time.Duration) {
	serverErrors := make(chan error, 1)
	go func() {
		zap.L().Info("сервер запущен", zap.String("addr", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Error("ошибка работы сервера", zap.Error(err))
			return
		}
	case sig := <-signalChannel:
		zap.L().Info("получен сигнал остановки работы сервера", zap.String("signal", sig.String()))
	}

	shutDownCtx, shutDownCancel := context.WithTimeout(ctx, shutdownTimeout)
	defer shutDownCancel()

	if err := server.Shutdown(shutDownCtx); err != nil {
		zap.L().Error("ошибка при остановке сервера", zap.Error(err))
	} else {
		zap.L().Info("Сервер успешно остановлен")
	}
}
