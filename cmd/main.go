package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lshigami/qams/config"
	"github.com/lshigami/qams/database"
	_ "github.com/lshigami/qams/docs"
	adminctrl "github.com/lshigami/qams/internal/controller/admin"
	authctrl "github.com/lshigami/qams/internal/controller/auth"
	coursectrl "github.com/lshigami/qams/internal/controller/course"
	moderationctrl "github.com/lshigami/qams/internal/controller/moderation"
	paperctrl "github.com/lshigami/qams/internal/controller/paper"
	"github.com/lshigami/qams/internal/logger"
	"github.com/lshigami/qams/internal/middleware"
	"github.com/lshigami/qams/internal/repository"
	"github.com/lshigami/qams/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Question Paper Moderation System API
// @version 1.0
// @description Courses, question papers and the paper-level and question-level moderation workflow.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
		),

		// Repositories
		fx.Provide(
			repository.NewUserRepository,
			repository.NewCourseRepository,
			repository.NewQuestionRepository,
			repository.NewPaperRepository,
			repository.NewPaperQuestionRepository,
			repository.NewModerationRepository,
			repository.NewAuditLogRepository,
		),

		// Services
		fx.Provide(
			service.NewAccessGate,
			service.NewAuditLogService,
			service.NewReconciler,
			service.NewAuthService,
			service.NewCourseService,
			service.NewQuestionService,
			service.NewPaperService,
			service.NewPaperQuestionService,
			service.NewModerationService,
		),

		// Controllers
		fx.Provide(
			authctrl.NewAuthController,
			coursectrl.NewCourseController,
			paperctrl.NewPaperController,
			moderationctrl.NewModerationController,
			adminctrl.NewAdminController,
		),

		fx.Invoke(ApplyLogLevel),
		fx.Invoke(AutoMigrateDB),
		fx.Invoke(SeedAdmin),
		fx.Invoke(RegisterRoutesAndStartServer),
		fx.WithLogger(newFxLogger),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")

	stopCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		log.Error().Err(err).Msg("Failed to stop application cleanly")
	}
}

func ApplyLogLevel(cfg *config.Config) {
	logger.SetLevel(cfg.LogLevel)
}

func NewGinEngine(cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("request_id", param.Request.Header.Get(middleware.RequestIDHeader)).
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

	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(cfg.Server.CORSOrigins) == 0 || contains(cfg.Server.CORSOrigins, "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.Server.CORSOrigins
		corsCfg.AllowCredentials = true
	}
	r.Use(cors.New(corsCfg))

	// URL: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// RegisterRoutesAndStartServer mounts every controller and ties the HTTP
// server to the fx lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	db *gorm.DB,
	authService service.AuthService,
	authCtrl *authctrl.AuthController,
	courseCtrl *coursectrl.CourseController,
	paperCtrl *paperctrl.PaperController,
	moderationCtrl *moderationctrl.ModerationController,
	adminCtrl *adminctrl.AdminController,
) {
	router.GET("/healthz", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	public := router.Group("/api/v1")
	protected := router.Group("/api/v1", middleware.Auth(authService))

	authCtrl.RegisterRoutes(public, protected)
	courseCtrl.RegisterRoutes(protected)
	paperCtrl.RegisterRoutes(protected)
	moderationCtrl.RegisterRoutes(protected)
	adminCtrl.RegisterRoutes(protected)

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("QAMS API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				return err
			}
			if sqlDB, err := db.DB(); err == nil {
				return sqlDB.Close()
			}
			return nil
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	return database.AutoMigrate(db)
}

func SeedAdmin(authService service.AuthService) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return authService.SeedAdmin(ctx)
}
