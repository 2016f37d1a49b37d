package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/thereayou/colabnow/internal/cache"
	"github.com/thereayou/colabnow/internal/config"
	"github.com/thereayou/colabnow/internal/database"
	"github.com/thereayou/colabnow/internal/handlers"
	"github.com/thereayou/colabnow/internal/logger"
	"github.com/thereayou/colabnow/internal/services"
	"github.com/thereayou/colabnow/internal/validation"
	"github.com/thereayou/colabnow/internal/websocket"
	"github.com/thereayou/colabnow/pkg/auth"
)

type Server struct {
	Config *config.Config
	Router *gin.Engine
	DB     *database.Database
	Redis  *redis.Client
	Hub    *websocket.Hub
}

// Handlers - всё, что нужно роутеру
type Handlers struct {
	Auth          *handlers.AuthHandler
	Users         *handlers.UserHandler
	Listings      *handlers.ListingHandler
	Messages      *handlers.MessageHandler
	Notifications *handlers.NotificationHandler
	WebSocket     *handlers.WebSocketHandler
	Health        *handlers.HealthHandler

	authService *services.AuthService
	userService *services.UserService
}

// NewHandlers собирает сервисы и handlers поверх базы, черного списка и hub
func NewHandlers(cfg *config.Config, db *database.Database, blacklist cache.TokenBlacklist, hub *websocket.Hub) *Handlers {
	jwtMgr := auth.NewJWTManager(cfg.JWT.Secret, time.Duration(cfg.JWT.TTLHours)*time.Hour)

	authService := services.NewAuthService(db, jwtMgr, blacklist)
	userService := services.NewUserService(db, cfg.ListingsPerPage)
	listingService := services.NewListingService(db, cfg.ListingsPerPage)
	notificationService := services.NewNotificationService(db, hub)
	messageService := services.NewMessageService(db, notificationService, cfg.ListingsPerPage)

	return &Handlers{
		Auth:          handlers.NewAuthHandler(authService),
		Users:         handlers.NewUserHandler(userService),
		Listings:      handlers.NewListingHandler(listingService),
		Messages:      handlers.NewMessageHandler(messageService),
		Notifications: handlers.NewNotificationHandler(notificationService),
		WebSocket:     handlers.NewWebSocketHandler(hub, cfg.Server.AllowedOrigins),
		Health:        handlers.NewHealthHandler(db),
		authService:   authService,
		userService:   userService,
	}
}

func NewServer() *Server {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("invalid configuration", "error", err)
	}
	logger.Init(cfg.Server.Env)

	if err := validation.Register(); err != nil {
		logger.Fatal("validator setup failed", "error", err)
	}

	dbConn, err := database.Connect(cfg)
	if err != nil {
		logger.Fatal("database connect failed", "driver", cfg.Database.Driver, "error", err)
	}

	var (
		rdb       *redis.Client
		blacklist cache.TokenBlacklist
	)
	if cfg.Redis.URL != "" {
		rdb, err = cache.Connect(context.Background(), cfg.Redis.URL)
		if err != nil {
			logger.Fatal("redis connect failed", "error", err)
		}
		blacklist = cache.NewRedisBlacklist(rdb)
	} else {
		logger.Warn("REDIS_URL is not set, token blacklist is kept in memory")
		blacklist = cache.NewMemoryBlacklist()
	}

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	hub := websocket.NewHub()
	go hub.Run()

	router := gin.New()
	APIEndpoints(router, NewHandlers(cfg, dbConn, blacklist, hub))

	return &Server{
		Config: cfg,
		Router: router,
		DB:     dbConn,
		Redis:  rdb,
		Hub:    hub,
	}
}

// Run запускает HTTP сервер и останавливает его по SIGINT/SIGTERM
func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.Server.Port,
		Handler: s.Router,
	}

	go func() {
		logger.Info("server starting", "port", s.Config.Server.Port, "env", s.Config.Server.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server run error", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", "error", err)
	}
	s.Hub.Stop()
	if s.Redis != nil {
		s.Redis.Close()
	}
	if err := s.DB.Close(); err != nil {
		logger.Error("database close failed", "error", err)
	}
}
