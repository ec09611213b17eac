package http

import (
	"time"

	"CourseMarket/internal/delivery/http/controllers"
	authcontroller "CourseMarket/internal/delivery/http/controllers/auth"
	coursecontroller "CourseMarket/internal/delivery/http/controllers/course"
	"CourseMarket/internal/delivery/http/controllers/middleware"
	"CourseMarket/internal/service"
	"CourseMarket/internal/service/pricing"
	"CourseMarket/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func InitRoutes(l logger.Log, u service.Collection, catalog pricing.Catalog) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// any origin may call the API, pre-flights included
	config := cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:   []string{"Content-Length"},
		MaxAge:          12 * time.Hour,
	}
	r.Use(cors.New(config))

	statusController := controllers.NewStatusHandler()
	authController := authcontroller.NewAuthHandler(l, u.AuthService)
	authMiddleware := middleware.NewAuthMiddlewareProvider(l, u.AuthService)
	queryController := coursecontroller.NewQueryHandler(l, u.CourseService)
	enrollmentController := coursecontroller.NewEnrollmentHandler(l, u.EnrollmentService, u.CourseService, catalog)

	v1 := r.Group("/v1", middleware.LoggingMiddleware(l))
	{
		v1.GET("/status", statusController.Status)

		v1.GET("/me", authMiddleware.AuthMiddleware, authController.Me)

		auth := v1.Group("/auth")
		{
			auth.POST("/login", authController.Login)
			auth.POST("/register", authController.Register)
			auth.POST("/refresh", authController.Refresh)
		}

		courses := v1.Group("/courses")
		{
			courses.GET("", queryController.ListCoursePreview)
			courses.GET("/subscriptions", authMiddleware.AuthMiddleware, queryController.GetSubscribedCourses)
			courses.GET("/:course_id", queryController.CourseByID)
			courses.POST("/:course_id/promo-preview", enrollmentController.PromoPreview)
			courses.POST("/:course_id/subscribe", authMiddleware.AuthMiddleware, enrollmentController.SubscribeCourse)
		}
	}
	return r
}
