package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ooskills/formation-api/config"
	"github.com/ooskills/formation-api/database"
	adminctrl "github.com/ooskills/formation-api/internal/controller/admin"
	userctrl "github.com/ooskills/formation-api/internal/controller/user"
	"github.com/ooskills/formation-api/internal/logger"
	"github.com/ooskills/formation-api/internal/middleware"
	"github.com/ooskills/formation-api/internal/model"
	"github.com/ooskills/formation-api/internal/repository"
	"github.com/ooskills/formation-api/internal/service"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

func main() {
	logger.Init()

	app := fx.New(
		// Core application components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // Provides *gorm.DB
			NewGinEngine,         // Provides *gin.Engine
		),

		// Repositories layer
		fx.Provide(
			repository.NewCourseRepository,
			repository.NewLessonRepository,
			repository.NewEnrollmentRepository,
			repository.NewLessonProgressRepository,
			repository.NewLessonNoteRepository,
			repository.NewQuizRepository,
			repository.NewQuestionRepository,
			repository.NewQuizAttemptRepository,
			repository.NewFinalQuizRepository,
			repository.NewFinalQuizAttemptRepository,
			repository.NewCertificateRepository,
			repository.NewShareTokenRepository,
		),

		// Services layer
		fx.Provide(
			service.NewEnrollmentService,
			service.NewProgressService,
			service.NewQuizService,
			service.NewCertificateService,
			service.NewFinalQuizService,
			service.NewSharingService,
			service.NewAdminFormationService,
		),

		// API controllers layer
		fx.Provide(
			userctrl.NewCourseController,
			userctrl.NewEnrollmentController,
			userctrl.NewQuizController,
			userctrl.NewFinalQuizController,
			userctrl.NewCertificateController,
			userctrl.NewShareTokenController,
			adminctrl.NewFormationAdminController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(middleware.RequestID())

	// Access log through zerolog instead of Gin's default writer.
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // Be more specific in production
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages the server
// lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	courseCtrl *userctrl.CourseController,
	enrollmentCtrl *userctrl.EnrollmentController,
	quizCtrl *userctrl.QuizController,
	finalQuizCtrl *userctrl.FinalQuizController,
	certificateCtrl *userctrl.CertificateController,
	shareTokenCtrl *userctrl.ShareTokenController,
	formationAdminCtrl *adminctrl.FormationAdminController,
) {
	// Admin routes (prefixed with /api/v1/admin)
	adminAPIGroup := router.Group("/api/v1/admin")
	{
		adminAPIGroup.POST("/courses", formationAdminCtrl.CreateCourse)
		adminAPIGroup.GET("/courses/:course_id", formationAdminCtrl.GetCourse)
		adminAPIGroup.POST("/courses/:course_id/final-quiz", formationAdminCtrl.CreateFinalQuiz)
		adminAPIGroup.POST("/sections/:section_id/quiz", formationAdminCtrl.CreateQuiz)
	}

	// User routes (prefixed with /api/v1)
	userAPIGroup := router.Group("/api/v1")
	{
		// Catalog
		userAPIGroup.GET("/courses", courseCtrl.ListCourses)
		userAPIGroup.GET("/courses/:course_id", courseCtrl.GetCourse)

		// Enrollment and lesson progress
		userAPIGroup.POST("/enrollments", enrollmentCtrl.Enroll)
		userAPIGroup.GET("/users/:user_id/enrollments", enrollmentCtrl.GetUserEnrollments)
		userAPIGroup.PUT("/enrollments/:enrollment_id/progress", enrollmentCtrl.Autosave)
		userAPIGroup.GET("/enrollments/:enrollment_id/progress", enrollmentCtrl.GetCourseProgress)
		userAPIGroup.POST("/enrollments/:enrollment_id/notes", enrollmentCtrl.CreateNote)
		userAPIGroup.GET("/enrollments/:enrollment_id/notes", enrollmentCtrl.GetNotes)
		userAPIGroup.DELETE("/enrollments/:enrollment_id/notes/:note_id", enrollmentCtrl.DeleteNote)

		// Section quizzes
		userAPIGroup.POST("/quizzes/:quiz_id/attempts", quizCtrl.Submit)
		userAPIGroup.GET("/quizzes/:quiz_id/attempts", quizCtrl.GetAttempts)
		userAPIGroup.GET("/quizzes/:quiz_id/remaining-attempts", quizCtrl.RemainingAttempts)
		userAPIGroup.GET("/quizzes/:quiz_id/best-score", quizCtrl.BestScore)

		// Final quiz
		userAPIGroup.GET("/courses/:course_id/final-quiz", finalQuizCtrl.GetConfig)
		userAPIGroup.POST("/courses/:course_id/final-quiz/generate", finalQuizCtrl.Generate)
		userAPIGroup.POST("/courses/:course_id/final-quiz/attempts", finalQuizCtrl.Submit)
		userAPIGroup.GET("/users/:user_id/final-quiz-attempts", finalQuizCtrl.UserAttempts)

		// Certificates
		userAPIGroup.GET("/users/:user_id/certificates", certificateCtrl.GetUserCertificates)
		userAPIGroup.GET("/certificates/verify/:code", certificateCtrl.VerifyByCode)

		// Course sharing
		userAPIGroup.POST("/share-tokens", shareTokenCtrl.Create)
		userAPIGroup.POST("/share-tokens/validate", shareTokenCtrl.Validate)
		userAPIGroup.GET("/users/:user_id/share-tokens", shareTokenCtrl.List)
		userAPIGroup.DELETE("/share-tokens/:token_id", shareTokenCtrl.Revoke)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Formation API server starting on port %s", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.Course{},
		&model.Section{},
		&model.Lesson{},
		&model.Quiz{},
		&model.QuizQuestion{},
		&model.FinalQuiz{},
		&model.Enrollment{},
		&model.LessonProgress{},
		&model.LessonNote{},
		&model.QuizAttempt{},
		&model.FinalQuizAttempt{},
		&model.Certificate{},
		&model.ShareToken{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
