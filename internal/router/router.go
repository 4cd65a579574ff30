package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/imon025/quizi-backend/internal/config"
	"github.com/imon025/quizi-backend/internal/handler"
	"github.com/imon025/quizi-backend/internal/middleware"
	"github.com/imon025/quizi-backend/internal/response"
	"github.com/imon025/quizi-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth         *handler.AuthHandler
	Course       *handler.CourseHandler
	Quiz         *handler.QuizHandler
	Question     *handler.QuestionHandler
	Attempt      *handler.AttemptHandler
	Result       *handler.ResultHandler
	Notification *handler.NotificationHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// If AllowedOrigins is set in config, restrict to that list; otherwise
	// allow all so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Request ID middleware runs globally so every response carries metadata.
	router.Use(response.RequestIDMiddleware())

	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/register", handlers.Auth.Register)
		auth.POST("/login", handlers.Auth.Login)
		auth.GET("/me", middleware.RequireJWT(authService), handlers.Auth.Me)
		auth.POST("/logout", middleware.RequireJWT(authService), handlers.Auth.Logout)
	}

	// Shared routes for either role.
	api := router.Group("/api/v1")
	api.Use(middleware.RequireJWT(authService))
	{
		api.GET("/courses", handlers.Course.List)
		api.GET("/courses/available", handlers.Course.ListAvailable)
		api.GET("/courses/:course_id", handlers.Course.Get)
		api.GET("/courses/:course_id/quizzes", handlers.Quiz.ListByCourse)

		api.GET("/notifications", handlers.Notification.List)
		api.PUT("/notifications/:notification_id/read", handlers.Notification.MarkRead)
	}

	studentAPI := router.Group("/api/v1/student")
	studentAPI.Use(middleware.RequireStudentJWT(authService))
	{
		studentAPI.POST("/courses/:course_id/enroll", handlers.Course.Enroll)

		studentAPI.GET("/quizzes/:quiz_id", handlers.Quiz.GetForStudent)
		studentAPI.POST("/quizzes/:quiz_id/validate-key", handlers.Attempt.ValidateKey)
		studentAPI.POST("/quizzes/:quiz_id/start", handlers.Attempt.Start)
		studentAPI.POST("/quizzes/:quiz_id/submit", handlers.Attempt.Submit)

		studentAPI.GET("/results", handlers.Result.ListMine)
		studentAPI.GET("/results/:result_id", handlers.Result.GetMine)
	}

	teacherAPI := router.Group("/api/v1/teacher")
	teacherAPI.Use(middleware.RequireTeacherJWT(authService))
	{
		teacherAPI.POST("/courses", handlers.Course.Create)
		teacherAPI.PUT("/courses/:course_id", handlers.Course.Update)
		teacherAPI.DELETE("/courses/:course_id", handlers.Course.Delete)
		teacherAPI.POST("/courses/:course_id/students/:student_id", handlers.Course.AddStudent)
		teacherAPI.POST("/courses/:course_id/quizzes", handlers.Quiz.Create)

		teacherAPI.GET("/quizzes/:quiz_id", handlers.Quiz.Get)
		teacherAPI.PUT("/quizzes/:quiz_id", handlers.Quiz.Update)
		teacherAPI.DELETE("/quizzes/:quiz_id", handlers.Quiz.Delete)

		teacherAPI.GET("/quizzes/:quiz_id/questions", handlers.Question.List)
		teacherAPI.POST("/quizzes/:quiz_id/questions", handlers.Question.Add)
		teacherAPI.POST("/quizzes/:quiz_id/questions/bulk", handlers.Question.BulkAdd)
		teacherAPI.PUT("/questions/:question_id", handlers.Question.Update)
		teacherAPI.DELETE("/questions/:question_id", handlers.Question.Delete)

		teacherAPI.GET("/results", handlers.Result.ListForTeacher)
		teacherAPI.GET("/results/:result_id", handlers.Result.GetForTeacher)
		teacherAPI.PUT("/results/:result_id/regrade", handlers.Attempt.Regrade)
	}

	return router
}
