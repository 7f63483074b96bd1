package app

import (
	"tlms_backend/docs"
	"tlms_backend/internal/config"
	"tlms_backend/internal/middleware"
	"tlms_backend/internal/model"
	"tlms_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由（无需登录，带可选认证以区分课程所有者）
	a.registerPublicRoutes(router, c, repos, cfg)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerLearnerRoutes(authGroup, c)
		a.registerEducatorRoutes(authGroup, c)
	}

	// 3. 管理员相关接口
	a.registerAdminRoutes(router, c, repos, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)

		// 课程目录与详情对游客开放，登录用户可看到自己未发布的课程
		catalog := public.Group("/courses")
		catalog.Use(middleware.OptionalAuthMiddleware(cfg))
		{
			catalog.GET("", c.course.ListCourses)
			catalog.GET("/:id", c.course.GetCourse)
			catalog.GET("/:id/reviews", c.review.ListReviews)
		}
	}

	router.GET("/health", c.health.HealthCheck)
}

func (a *App) registerLearnerRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.GetProfile)
	rg.PUT("/profile", c.user.UpdateProfile)

	// 报名与学习进度
	rg.POST("/courses/:id/enroll", c.course.Enroll)
	rg.POST("/courses/:id/lessons/:lessonId/complete", c.course.CompleteLesson)
	rg.GET("/my/enrollments", c.course.MyEnrollments)

	// 评价
	rg.POST("/courses/:id/reviews", c.review.AddReview)

	// 支付
	rg.POST("/payments/orders", c.payment.CreateOrder)
	rg.POST("/payments/verify", c.payment.VerifyPayment)
}

func (a *App) registerEducatorRoutes(rg *gin.RouterGroup, c *controllers) {
	educator := rg.Group("/")
	educator.Use(middleware.RoleMiddleware(model.Educator))
	{
		educator.GET("/my/courses", c.course.MyCourses)
		educator.POST("/media", c.media.Upload)

		// 课程创作草稿
		authoring := educator.Group("/authoring")
		{
			authoring.GET("/draft", c.authoring.GetDraft)
			authoring.POST("/draft", c.authoring.StartDraft)
			authoring.DELETE("/draft", c.authoring.DiscardDraft)
			authoring.PUT("/draft/info", c.authoring.UpdateCourseInfo)
			authoring.GET("/draft/validity", c.authoring.Validity)

			authoring.POST("/modules", c.authoring.AddModule)
			authoring.PUT("/modules", c.authoring.UpdateModule)
			authoring.DELETE("/modules/:index", c.authoring.DeleteModule)

			authoring.POST("/lessons", c.authoring.AddLesson)
			authoring.PUT("/lessons", c.authoring.UpdateLesson)
			authoring.POST("/lessons/move", c.authoring.MoveLesson)
			authoring.POST("/lessons/delete", c.authoring.DeleteLesson)

			authoring.POST("/questions", c.authoring.AddQuestion)
			authoring.PUT("/questions", c.authoring.UpdateQuestion)
			authoring.POST("/questions/answer", c.authoring.ToggleAnswer)
			authoring.POST("/questions/delete", c.authoring.DeleteQuestion)

			authoring.POST("/save", c.authoring.SaveDraft)
			authoring.POST("/submit", c.authoring.SubmitForReview)
		}
	}
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user), middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/users", c.moderation.ListUsers)

		admin.GET("/educators/pending", c.moderation.PendingEducators)
		admin.POST("/educators/:id/approve", c.moderation.ApproveEducator)
		admin.POST("/educators/:id/reject", c.moderation.RejectEducator)

		admin.GET("/courses/pending", c.moderation.PendingCourses)
		admin.POST("/courses/:id/approve", c.moderation.ApproveCourse)
		admin.POST("/courses/:id/reject", c.moderation.RejectCourse)
		admin.POST("/courses/:id/remove", c.moderation.RemoveCourse)

		admin.PUT("/reviews/:id/visibility", c.moderation.SetReviewVisibility)

		admin.GET("/analytics/overview", c.analytics.Overview)
		admin.GET("/analytics/ranking", c.analytics.Ranking)
	}
}
