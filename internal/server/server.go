package server

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/unlockedcoding/backend/internal/config"
	"github.com/unlockedcoding/backend/internal/handler"
	"github.com/unlockedcoding/backend/internal/middleware"
	"github.com/unlockedcoding/backend/internal/repository"
	"github.com/unlockedcoding/backend/internal/search"
	"github.com/unlockedcoding/backend/internal/service"
	"github.com/unlockedcoding/backend/internal/session"
	"github.com/unlockedcoding/backend/pkg/storage"
)

type Server struct {
	engine *gin.Engine
}

func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	lessonRepo := repository.NewLessonRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	contactRepo := repository.NewContactRepository(db)

	var sessions session.Store
	if redisClient != nil {
		sessions = session.NewRedisStore(redisClient)
	} else {
		sessions = session.NewSQLStore(db)
	}

	var courseIndex *search.CourseIndex
	if cfg.MeiliSearchHost != "" {
		meiliClient := meilisearch.New(cfg.MeiliSearchHost, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
		courseIndex = search.NewCourseIndex(meiliClient)
	}

	var imageStorage storage.ImageStorage
	if s, err := storage.NewCloudinaryStorage(); err != nil {
		zap.L().Warn("image storage unavailable", zap.Error(err))
	} else {
		imageStorage = s
	}

	authService := service.NewAuthService(userRepo, sessions, cfg.SessionTTL)
	profileService := service.NewProfileService(userRepo)
	categoryService := service.NewCategoryService(categoryRepo, courseIndex)
	courseService := service.NewCourseService(courseRepo, categoryRepo, userRepo, courseIndex)
	lessonService := service.NewLessonService(lessonRepo, courseRepo)
	enrollmentService := service.NewEnrollmentService(enrollmentRepo, courseRepo)
	reviewService := service.NewReviewService(reviewRepo, enrollmentRepo, courseRepo, cfg.ReviewsAllowMultiple)
	contactService := service.NewContactService(contactRepo, redisClient, cfg.ContactRateLimit)
	statService := service.NewStatService(userRepo, courseRepo, categoryRepo, enrollmentRepo, contactRepo)

	cookie := handler.SessionCookie{
		Name:   cfg.SessionCookieName,
		TTL:    cfg.SessionTTL,
		Secure: cfg.SessionCookieSecure,
	}

	authHandler := handler.NewAuthHandler(authService, cookie)
	profileHandler := handler.NewProfileHandler(profileService)
	categoryHandler := handler.NewCategoryHandler(categoryService, courseService)
	courseHandler := handler.NewCourseHandler(courseService, lessonService)
	lessonHandler := handler.NewLessonHandler(lessonService)
	enrollmentHandler := handler.NewEnrollmentHandler(enrollmentService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	contactHandler := handler.NewContactHandler(contactService)
	adminHandler := handler.NewAdminHandler(statService, imageStorage, cfg.UploadFolder)

	authMiddleware := middleware.NewAuthMiddleware(sessions, userRepo, cfg.SessionCookieName)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	setupCORS(router, cfg.AllowedOrigins)
	router.Use(authMiddleware.Resolve())

	api := router.Group("/api")

	// Public routes
	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)
	api.POST("/contact", contactHandler.Submit)

	api.GET("/categories", categoryHandler.List)
	api.GET("/categories/:slug", categoryHandler.GetBySlug)
	api.GET("/categories/:slug/courses", categoryHandler.ListCourses)

	api.GET("/courses", courseHandler.List)
	api.GET("/courses/:id", courseHandler.Get)
	api.GET("/courses/:id/lessons", courseHandler.ListLessons)
	api.GET("/courses/:id/reviews", reviewHandler.ListByCourse)

	// Authenticated routes
	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		protected.POST("/logout", authHandler.Logout)
		protected.GET("/user", authHandler.CurrentUser)

		protected.GET("/profile", profileHandler.GetOwn)
		protected.PUT("/profile", profileHandler.Upsert)

		protected.GET("/enrollments", enrollmentHandler.ListOwn)
		protected.GET("/courses/:id/enrollment", enrollmentHandler.Get)
		protected.POST("/courses/:id/enroll", enrollmentHandler.Enroll)
		protected.PUT("/courses/:id/progress", enrollmentHandler.SetProgress)

		protected.POST("/courses/:id/reviews", reviewHandler.Create)
		protected.PUT("/reviews/:id", reviewHandler.Update)
		protected.DELETE("/reviews/:id", reviewHandler.Delete)

		// Admin routes
		admin := protected.Group("/admin")
		admin.Use(authMiddleware.RequireAdmin())
		{
			admin.POST("/categories", categoryHandler.Create)
			admin.PUT("/categories/:id", categoryHandler.Update)
			admin.DELETE("/categories/:id", categoryHandler.Delete)

			admin.POST("/courses", courseHandler.Create)
			admin.PUT("/courses/:id", courseHandler.Update)
			admin.DELETE("/courses/:id", courseHandler.Delete)

			admin.POST("/courses/:id/lessons", lessonHandler.Create)
			admin.PUT("/lessons/:id", lessonHandler.Update)
			admin.DELETE("/lessons/:id", lessonHandler.Delete)

			admin.GET("/contact", contactHandler.List)
			admin.GET("/contact/:id", contactHandler.Get)
			admin.PUT("/contact/:id/read", contactHandler.MarkRead)
			admin.DELETE("/contact/:id", contactHandler.Delete)

			admin.GET("/dashboard/stats", adminHandler.DashboardStats)
			admin.GET("/users/count", adminHandler.UserCount)
			admin.GET("/courses/count", adminHandler.CourseCount)
			admin.GET("/categories/count", adminHandler.CategoryCount)
			admin.GET("/enrollments/count", adminHandler.EnrollmentCount)

			admin.POST("/upload", adminHandler.Upload)
		}
	}

	return &Server{engine: router}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

// Handler exposes the router, used by httptest in handler tests.
func (s *Server) Handler() *gin.Engine {
	return s.engine
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	origins := []string{"http://localhost:3000"}
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
