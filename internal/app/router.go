package app

import (
	"aeducacao_backend/docs"
	"aeducacao_backend/internal/config"
	"aeducacao_backend/internal/middleware"

	"aeducacao_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/", c.health.Root)

	// 1. 公共路由(无需令牌)
	a.registerPublicRoutes(router, c)

	// 2. 管理员相关接口
	a.registerAdminRoutes(router, c, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.Health)
		public.POST("/admin/token", c.admin.Token)

		// 自适应问答
		public.POST("/analyze", c.analyze.Analyze)
		public.POST("/feedback", c.analyze.Feedback)
		public.GET("/search", c.search.Search)
		public.GET("/recommendations/:userId", c.recommendation.ForUser)

		// 学习差距分析
		learning := public.Group("/learning")
		{
			learning.GET("/analysis/:userId", c.learningGap.Analysis)
			learning.GET("/improvement-plan/:userId", c.learningGap.ImprovementPlan)
			learning.POST("/update-profile", c.learningGap.UpdateProfile)
		}

		// 媒体与练习
		public.POST("/media/resolve", c.media.Resolve)
		public.GET("/exercises", c.exercise.Get)

		// 评估会话
		assessment := public.Group("/assessment")
		{
			assessment.POST("/start", c.assessment.Start)
			assessment.POST("/:id/answer", c.assessment.Answer)
			assessment.GET("/:id", c.assessment.Get)
		}
	}
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	admin := router.Group("/api")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.AdminOnly())
	{
		admin.POST("/index", c.index.Upload)
		admin.POST("/admin/performance-test", c.admin.PerformanceTest)
	}
}
