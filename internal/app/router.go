package app

import (
	"thinking_styles_backend/docs"
	"thinking_styles_backend/internal/config"
	"thinking_styles_backend/internal/middleware"
	"thinking_styles_backend/internal/model"
	"thinking_styles_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerAccountRoutes(authGroup, c)
		a.registerAssessmentRoutes(authGroup, c)
		a.registerReportRoutes(authGroup, c)
		a.registerEducationRoutes(authGroup, c)
		authGroup.GET("/notifications/ws", c.notification.Connect)

		// 3. 管理员相关接口
		a.registerAdminRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)
	}
}

func (a *App) registerAccountRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/auth/profile", c.auth.GetProfile)
	rg.PUT("/auth/profile", c.auth.UpdateProfile)
	rg.PUT("/auth/change-password", c.auth.ChangePassword)
	rg.GET("/users/:id", c.user.GetUser)
}

func (a *App) registerAssessmentRoutes(rg *gin.RouterGroup, c *controllers) {
	assessments := rg.Group("/assessments")
	{
		assessments.GET("/types", c.assessment.GetTypes)
		assessments.GET("/questions/:type", c.assessment.GetQuestions)
		assessments.POST("/submit", c.assessment.Submit)
		assessments.GET("", c.assessment.List)
		assessments.GET("/my-assessments", c.assessment.MyAssessments)
		assessments.GET("/:id", c.assessment.Get)
	}
}

func (a *App) registerReportRoutes(rg *gin.RouterGroup, c *controllers) {
	reports := rg.Group("/reports")
	{
		reports.POST("/generate", c.report.Generate)
		reports.GET("", c.report.List)
		reports.GET("/my-reports", c.report.MyReports)
		reports.GET("/latest", c.report.Latest)
		reports.GET("/:id", c.report.Get)
		reports.GET("/:id/export", c.report.Render)
		reports.POST("/:id/export", c.report.Export)
		reports.GET("/:id/exports", c.report.ListExports)
		reports.POST("/:id/reflection", c.report.AddReflection)
		reports.GET("/:id/reflections", c.report.ListReflections)
	}
}

func (a *App) registerEducationRoutes(rg *gin.RouterGroup, c *controllers) {
	education := rg.Group("/education")
	{
		education.GET("/mapping", c.education.Mapping)
		education.GET("/study-tips", c.education.StudyTips)
		education.GET("/institutions", c.education.Institutions)
	}
}

func (a *App) registerAdminRoutes(rg *gin.RouterGroup, c *controllers) {
	admin := rg.Group("/admin")
	admin.Use(middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/users", c.user.ListUsers)
		admin.PUT("/users/:id", c.user.UpdateUser)
		admin.DELETE("/users/:id", c.user.DeactivateUser)
		admin.POST("/users/:id/students", c.user.LinkStudents)
	}
}
