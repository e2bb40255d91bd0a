package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/wfunc/book-slot/internal/game"
	"github.com/wfunc/book-slot/internal/middleware"
	"github.com/wfunc/book-slot/internal/repository"
	"github.com/wfunc/book-slot/internal/utils"
)

// Router API路由器
type Router struct {
	engine         *gin.Engine
	db             *gorm.DB
	slotHandler    *SlotHandler
	authMiddleware *middleware.AuthMiddleware
	log            *zap.Logger
}

// NewRouter 创建路由器
func NewRouter(db *gorm.DB, gameService *game.GameService, jwtManager *utils.JWTManager, log *zap.Logger) *Router {
	// 创建Gin引擎
	engine := gin.New()

	// 全局中间件
	engine.Use(gin.Recovery())
	engine.Use(gin.Logger())

	// 创建处理器与中间件
	rounds := repository.NewRoundRepository(db)
	slotHandler := NewSlotHandler(gameService, rounds, jwtManager, log)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager)

	router := &Router{
		engine:         engine,
		db:             db,
		slotHandler:    slotHandler,
		authMiddleware: authMiddleware,
		log:            log,
	}

	// 设置路由
	router.setupRoutes()

	return router
}

// setupRoutes 设置路由
func (r *Router) setupRoutes() {
	// 健康检查
	r.engine.GET("/health", r.healthCheck)

	// API v1路由组
	v1 := r.engine.Group("/api/v1")
	{
		slot := v1.Group("/slot")
		{
			// 创建会话不需要令牌
			slot.POST("/session", r.slotHandler.CreateSession)

			// 需要会话令牌的路由
			authRequired := slot.Group("")
			authRequired.Use(r.authMiddleware.RequireSession())
			{
				authRequired.POST("/play", r.slotHandler.Play)
				authRequired.POST("/bonus", r.slotHandler.PlayBonus)
				authRequired.GET("/session/:id", r.slotHandler.GetSession)
				authRequired.POST("/session/reset", r.slotHandler.ResetSession)
				authRequired.POST("/force-grid", r.slotHandler.ForceGrid)
				authRequired.GET("/history", r.slotHandler.History)
				authRequired.GET("/stats", r.slotHandler.Statistics)
			}
		}
	}

	// 404处理
	r.engine.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{
			"code":    "NOT_FOUND",
			"message": "接口不存在",
		})
	})
}

// healthCheck 健康检查
func (r *Router) healthCheck(c *gin.Context) {
	// 检查数据库连接
	sqlDB, err := r.db.DB()
	if err != nil {
		c.JSON(500, gin.H{
			"status":  "unhealthy",
			"message": "数据库连接失败",
		})
		return
	}

	if err := sqlDB.Ping(); err != nil {
		c.JSON(500, gin.H{
			"status":  "unhealthy",
			"message": "数据库ping失败",
		})
		return
	}

	c.JSON(200, gin.H{
		"status":  "healthy",
		"message": "服务运行正常",
	})
}

// Run 运行服务器
func (r *Router) Run(addr string) error {
	r.log.Info("Starting API server", zap.String("address", addr))
	return r.engine.Run(addr)
}

// GetEngine 获取Gin引擎（用于测试）
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
