package server

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"

	"drawing-backend/internal/ai"
	"drawing-backend/internal/auth"
	"drawing-backend/internal/cache"
	"drawing-backend/internal/config"
	"drawing-backend/internal/handler"
)

// Server Fiber 서버 래퍼
type Server struct {
	app            *fiber.App
	cfg            *config.Config
	db             *gorm.DB
	chatCache      *cache.ChatCache
	authHandler    *handler.AuthHandler
	chatHandler    *handler.ChatHandler
	analyzeHandler *handler.AnalyzeHandler
	healthHandler  *handler.HealthHandler
	jwtManager     *auth.JWTManager
}

// New 새 서버 인스턴스 생성
func New(cfg *config.Config, db *gorm.DB) *Server {
	app := fiber.New(fiber.Config{
		AppName:               "Drawing API Gateway",
		ServerHeader:          "Fiber",
		StrictRouting:         true,
		CaseSensitive:         true,
		ReadTimeout:           cfg.Server.ReadTimeout,
		WriteTimeout:          cfg.Server.WriteTimeout,
		IdleTimeout:           cfg.Server.IdleTimeout,
		BodyLimit:             10 * 1024 * 1024, // 10MB (큰 캔버스 문서 허용)
		DisableStartupMessage: false,
	})

	// Auth 초기화
	jwtManager := auth.NewJWTManager(
		cfg.Auth.JWTSecret,
		cfg.Auth.AccessTokenExpiry,
		cfg.Auth.RefreshTokenExpiry,
	)
	googleAuth := auth.NewGoogleAuthenticator(cfg.Auth.GoogleClientID)
	authHandler := handler.NewAuthHandler(db, jwtManager, googleAuth, cfg.Auth.SecureCookie)

	// Redis 캐시 초기화 (선택적)
	var chatCache *cache.ChatCache
	if cfg.Redis.Addr != "" {
		var err error
		chatCache, err = cache.NewChatCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.CacheTTL)
		if err != nil {
			log.Printf("⚠️ Redis cache initialization failed: %v (caching disabled)", err)
			chatCache = nil
		} else {
			log.Printf("✅ Redis cache initialized (%s)", cfg.Redis.Addr)
		}
	} else {
		log.Println("ℹ️ Redis cache not configured (caching disabled)")
	}

	// AI 클라이언트 초기화
	var aiClient *ai.Client
	aiEnabled := cfg.AI.Enabled && cfg.AI.APIKey != ""
	if aiEnabled {
		aiClient = ai.NewClient(cfg.AI.Endpoint, cfg.AI.APIKey)
		log.Println("✅ AI analysis client initialized")
	} else {
		aiClient = ai.NewClient(cfg.AI.Endpoint, "")
		log.Println("ℹ️ AI analysis not configured (requests will return degraded results)")
	}

	return &Server{
		app:            app,
		cfg:            cfg,
		db:             db,
		chatCache:      chatCache,
		authHandler:    authHandler,
		chatHandler:    handler.NewChatHandler(db, chatCache),
		analyzeHandler: handler.NewAnalyzeHandler(aiClient),
		healthHandler:  handler.NewHealthHandler(db, chatCache, aiEnabled),
		jwtManager:     jwtManager,
	}
}

// SetupMiddleware 미들웨어 설정
func (s *Server) SetupMiddleware() {
	// 패닉 복구
	s.app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))

	// 로깅
	s.app.Use(logger.New(logger.Config{
		Format:     "${time} | ${status} | ${latency} | ${ip} | ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
	}))

	// CORS
	s.app.Use(cors.New(cors.Config{
		AllowOrigins:     s.cfg.CORS.AllowOrigins,
		AllowHeaders:     s.cfg.CORS.AllowHeaders,
		AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS",
		AllowCredentials: true,
	}))
}

// SetupRoutes 라우트 설정
func (s *Server) SetupRoutes() {
	// API 전역 Rate Limiter
	s.app.Use("/api", limiter.New(limiter.Config{
		Max:        100,
		Expiration: 15 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"error":   "too many requests from this IP, please try again later",
			})
		},
	}))

	// 헬스체크 엔드포인트 (인증 불필요)
	s.app.Get("/api/health", s.healthHandler.Check)
	s.app.Get("/healthz", s.healthHandler.Liveness)
	s.app.Get("/readyz", s.healthHandler.Readiness)

	// Rate Limiter 설정 (인증 엔드포인트용 - Brute Force 방지)
	authLimiter := limiter.New(limiter.Config{
		Max:        10,              // 최대 10회
		Expiration: 1 * time.Minute, // 1분당
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() // IP 기반 제한
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"error":   "too many requests, please try again later",
			})
		},
	})

	// Auth 라우트 그룹
	authGroup := s.app.Group("/auth")
	authGroup.Post("/google", authLimiter, s.authHandler.GoogleLogin)
	authGroup.Post("/refresh", authLimiter, s.authHandler.RefreshToken)
	authGroup.Post("/logout", auth.AuthMiddleware(s.jwtManager), s.authHandler.Logout)
	authGroup.Get("/me", auth.AuthMiddleware(s.jwtManager), s.authHandler.GetMe)
	authGroup.Put("/me", auth.AuthMiddleware(s.jwtManager), s.authHandler.UpdateMe)

	// Chat 라우트 그룹 (인증 필요)
	chatGroup := s.app.Group("/api/chats", auth.AuthMiddleware(s.jwtManager))
	chatGroup.Post("", s.chatHandler.CreateChat)
	chatGroup.Get("", s.chatHandler.ListChats)
	chatGroup.Get("/:id", s.chatHandler.GetChat)
	chatGroup.Put("/:id", s.chatHandler.UpdateChat)
	chatGroup.Post("/:id/elements", s.chatHandler.SaveElements)
	chatGroup.Delete("/:id", s.chatHandler.DeleteChat)

	// AI 코드 분석 라우트 (인증 필요)
	s.app.Post("/api/analyze", auth.AuthMiddleware(s.jwtManager), s.analyzeHandler.AnalyzeCode)
}

// Start 서버 시작 (Graceful Shutdown 지원)
func (s *Server) Start() error {
	// Graceful Shutdown 설정
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("🛑 Shutting down server...")
		if err := s.app.ShutdownWithTimeout(30 * time.Second); err != nil {
			log.Fatalf("Server shutdown error: %v", err)
		}
		if s.chatCache != nil {
			s.chatCache.Close()
		}
	}()

	log.Printf("🚀 Drawing API Gateway starting on %s", s.cfg.Server.Port)

	return s.app.Listen(s.cfg.Server.Port)
}

// Shutdown 서버 종료
func (s *Server) Shutdown() error {
	return s.app.ShutdownWithTimeout(30 * time.Second)
}
