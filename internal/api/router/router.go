package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"taskboard/internal/api/handler"
	"taskboard/internal/api/middleware"
	"taskboard/internal/pkg/config"
	"taskboard/internal/pkg/session"
	"taskboard/internal/repository"
	"taskboard/internal/service"
	pkgErrors "taskboard/pkg/errors"
	"taskboard/pkg/utils"

	_ "taskboard/docs" // Swagger docs
)

// Setup 设置路由
func Setup(cfg *config.Config, db *gorm.DB, sessions *session.Manager) *gin.Engine {
	// 设置Gin模式
	switch cfg.Server.Mode {
	case gin.ReleaseMode, gin.TestMode:
		gin.SetMode(cfg.Server.Mode)
	}

	r := gin.New()

	// 初始化Repository
	store := repository.NewStore(db)

	// 初始化Service
	authz := service.NewAuthorizationService(store.Projects, store.Members)
	authService := service.NewAuthService(store.Users, sessions)
	userService := service.NewUserService(store.Users)
	projectService := service.NewProjectService(store, authz)
	memberService := service.NewMemberService(store, authz)
	taskService := service.NewTaskService(store, authz)
	labelService := service.NewLabelService(store)

	cookie := middleware.SessionCookie{
		Name:   cfg.Session.CookieName,
		MaxAge: cfg.Session.MaxAge,
		Secure: cfg.Session.Secure,
	}

	// 初始化Handler
	authHandler := handler.NewAuthHandler(authService, cookie)
	userHandler := handler.NewUserHandler(userService)
	projectHandler := handler.NewProjectHandler(projectService)
	memberHandler := handler.NewMemberHandler(memberService)
	taskHandler := handler.NewTaskHandler(taskService)
	labelHandler := handler.NewLabelHandler(labelService)

	// 全局中间件
	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.PrometheusMiddleware())
	r.Use(middleware.SessionGate(authService, cookie))

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			c.JSON(503, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger API 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.NoRoute(func(c *gin.Context) {
		utils.Error(c, pkgErrors.NotFound("Route not found"))
	})

	api := r.Group("/api")
	{
		// 认证相关(无需登录)
		authGroup := api.Group("/auth")
		if cfg.RateLimit.Enabled {
			limiter := middleware.NewRateLimiter(cfg.RateLimit.PerMinute, cfg.RateLimit.Burst)
			authGroup.POST("/register", middleware.RateLimitByIP(limiter), authHandler.Register)
			authGroup.POST("/login", middleware.RateLimitByIP(limiter), authHandler.Login)
		} else {
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
		authGroup.POST("/logout", authHandler.Logout)
		authGroup.GET("/me", authHandler.Me)

		api.GET("/users", userHandler.List)

		// 项目管理
		projects := api.Group("/projects")
		{
			projects.GET("", projectHandler.List)
			projects.POST("", projectHandler.Create)
			projects.GET("/:id", projectHandler.Get)
			projects.PUT("/:id", projectHandler.Update)
			projects.DELETE("/:id", projectHandler.Delete)
			projects.GET("/:id/stats", projectHandler.Stats)

			// 项目成员
			projects.GET("/:id/members", memberHandler.List)
			projects.POST("/:id/members", memberHandler.Add)
		}

		members := api.Group("/members")
		{
			members.PUT("/:id", memberHandler.UpdateRole)
			members.DELETE("/:id", memberHandler.Remove)
		}

		// 任务管理
		tasks := api.Group("/tasks")
		{
			tasks.GET("", taskHandler.List)
			tasks.POST("", taskHandler.Create)
			tasks.GET("/board", taskHandler.Board)
			tasks.GET("/:id", taskHandler.Get)
			tasks.PUT("/:id", taskHandler.Update)
			tasks.DELETE("/:id", taskHandler.Delete)
			tasks.POST("/:id/labels", taskHandler.AddLabel)
			tasks.DELETE("/:id/labels/:labelId", taskHandler.RemoveLabel)
		}

		// 标签管理
		labels := api.Group("/labels")
		{
			labels.GET("", labelHandler.List)
			labels.POST("", labelHandler.Create)
			labels.GET("/:id", labelHandler.Get)
			labels.PUT("/:id", labelHandler.Update)
			labels.DELETE("/:id", labelHandler.Delete)
		}
	}

	return r
}
