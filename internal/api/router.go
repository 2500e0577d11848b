package api

import (
	"context"
	"net/http"
	"time"

	chatHandler "sica-kitchen/internal/api/handlers/chat"
	"sica-kitchen/internal/api/handlers/health"
	"sica-kitchen/internal/api/middleware"
	"sica-kitchen/internal/core/ai/cache"
	"sica-kitchen/internal/core/ai/service"
	"sica-kitchen/internal/core/chat"
	"sica-kitchen/internal/core/pricing"
	"sica-kitchen/internal/core/recipe"
	"sica-kitchen/internal/infrastructure/config"
	"sica-kitchen/internal/infrastructure/kroger"
	"sica-kitchen/internal/infrastructure/spoonacular"
	"sica-kitchen/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// 超時設置
	timeoutDuration = 120 * time.Second
	// 請求體大小限制 (1MB)，對話請求只有純文字
	maxBodySize = 1 << 20
)

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, cacheManager *cache.Manager) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 創建路由引擎
	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New()) // 自動生成請求 ID

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID", "X-Session-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制
	router.Use(middleware.BodySizeLimit(maxBodySize))

	// 請求去重與限流
	router.Use(middleware.Deduplication(cfg))
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	common.LogInfo("Initializing services",
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.String("model", cfg.OpenRouter.Model),
		zap.Duration("timeout", timeoutDuration),
	)

	// 初始化 AI 服務
	aiService := service.NewService(cfg, cacheManager)

	// 初始化外部資料來源
	recipeSource := spoonacular.NewClient(&cfg.Spoonacular)
	productSource := kroger.NewClient(&cfg.Kroger)

	// 初始化核心服務
	intentSvc := chat.NewIntentService(aiService)
	extractorSvc := chat.NewExtractorService(aiService)
	finder := recipe.NewFinder(recipeSource, cfg.Spoonacular.BatchSize, cfg.Spoonacular.Ranking)
	fetcher := pricing.NewFetcher(productSource)
	summarizer := chat.NewSummarizer(aiService, recipeSource)

	// 每個會話一個協調器，由處理器按需創建
	handler := chatHandler.NewHandler(func(sessionID string) *chat.Orchestrator {
		return chat.NewOrchestrator(sessionID, intentSvc, extractorSvc, finder, fetcher, summarizer, aiService)
	})

	// 全局中間件：設置超時和配置
	router.Use(func(c *gin.Context) {
		// 設置請求超時
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		// 設置配置
		c.Set("config", cfg)

		// 處理請求
		c.Next()

		// 檢查是否超時
		if ctx.Err() == context.DeadlineExceeded {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetHeader("X-Request-ID")),
				zap.Duration("timeout", timeoutDuration),
			)
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timeout",
				"code":  common.ErrCodeGatewayTimeout,
				"details": gin.H{
					"timeout": timeoutDuration.String(),
				},
			})
			c.Abort()
			return
		}
	})

	// 健康檢查路由
	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)

	// API 路由組
	api := router.Group("/api/v1")
	{
		api.POST("/chat", handler.HandleChat)
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.Bool("cache_manager_initialized", cacheManager != nil),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, nil
}
