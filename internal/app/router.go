package app

import (
	"coursehub_backend/docs"
	"coursehub_backend/internal/config"
	"coursehub_backend/internal/middleware"
	"coursehub_backend/internal/model"
	"coursehub_backend/pkg/monitoring"

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

	// 2. 课程浏览：可选认证，游客可访问，登录用户按选课记录放开
	a.registerCatalogRoutes(router, c, repos, cfg)

	// 3. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		authGroup.GET("/profile", c.auth.GetProfile)
		authGroup.GET("/enrollments", c.enrollment.GetMyEnrollments)
		authGroup.POST("/courses/:id/enroll", c.enrollment.Enroll)
		authGroup.GET("/courses/:id/feedback/history", c.feedback.GetFeedbackHistory)
	}

	// 4. 课程管理接口（教师/管理员）
	adminGroup := router.Group("/api/admin")
	adminGroup.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Teacher, model.Admin))
	{
		adminGroup.POST("/courses", c.course.CreateCourse)
		adminGroup.POST("/courses/:id/modules", c.course.AddModule)
		adminGroup.DELETE("/courses/:id", c.course.DeleteCourse)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)

		// 游客会话：纯记录，不参与鉴权
		guest := public.Group("/guest")
		{
			guest.POST("/session", c.guest.InitSession)
			guest.POST("/session/preview", c.guest.TrackPreview)
			guest.DELETE("/session", c.guest.ClearSession)
		}
	}
}

func (a *App) registerCatalogRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	catalog := router.Group("/api")
	catalog.Use(middleware.TryAuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		catalog.GET("/courses", c.course.ListCourses)
		catalog.GET("/courses/:id", c.course.GetCourseDetail)
		catalog.GET("/courses/:id/access", c.access.GetAccess)
		catalog.GET("/courses/:id/modules/:index/access", c.access.CheckModuleAccess)
		catalog.POST("/courses/:id/feedback", c.feedback.GenerateFeedback)
	}
}
