package main

import (
	"context"
	"errors"
	"log"
	"runtime"
	"time"

	"github.com/fadilmartias/ats-matcher/internal/config"
	"github.com/fadilmartias/ats-matcher/internal/domain/fiber/handler"
	"github.com/fadilmartias/ats-matcher/internal/logger"
	"github.com/fadilmartias/ats-matcher/internal/middleware"
	"github.com/fadilmartias/ats-matcher/internal/model"
	"github.com/fadilmartias/ats-matcher/internal/repository"
	"github.com/fadilmartias/ats-matcher/internal/service"
	"github.com/fadilmartias/ats-matcher/internal/usecase"
	"github.com/fadilmartias/ats-matcher/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	ctx := context.Background()
	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}

	appConfig := config.LoadAppConfig()
	zlog, err := logger.New(appConfig.LogLevel, appConfig.LogFormat)
	if err != nil {
		log.Fatalf("Could not build logger: %v", err)
	}
	defer zlog.Sync()

	upload := config.LoadUploadConfig()
	app := fiber.New(fiber.Config{
		AppName:   appConfig.Name,
		BodyLimit: upload.BodyLimit(),
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}

			message := err.Error()
			if code == fiber.StatusInternalServerError || message == "" {
				message = "Internal Server Error"
			}
			return util.ErrorResponse(c, util.ErrorResponseFormat{Code: code, Message: message}, err)
		},
	})
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: !appConfig.IsProduction(),
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.IsProduction()
		},
	}))
	app.Use(healthcheck.New(healthcheck.Config{
		LivenessEndpoint: "/healthz",
	}))
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Use(middleware.RateLimiter(50, 1*time.Minute))

	db := ConnectDB(zlog)

	llm, err := newLLM(ctx, zlog)
	if err != nil {
		zlog.Fatal("could not build LLM client", zap.Error(err))
	}

	strategy := config.LoadMatchingConfig().Strategy
	projectRepo := repository.NewProjectRepository(db)
	applicationRepo := repository.NewApplicationRepository(db)
	assessmentRepo := repository.NewAssessmentRepository(db)

	projectUC := usecase.NewProjectUsecase(
		projectRepo,
		applicationRepo,
		service.NewTranscriptAnalyzer(llm, zlog),
		strategy,
		zlog,
	)
	applicationUC := usecase.NewApplicationUsecase(
		projectRepo,
		applicationRepo,
		service.NewCVParser(llm, upload.CVMaxChars, zlog),
		util.ExtractText,
		strategy,
		upload,
		zlog,
	)

	assessmentUC := usecase.NewAssessmentUsecase(
		assessmentRepo,
		projectRepo,
		applicationRepo,
		service.NewAssessmentGenerator(llm, zlog),
		service.NewCandidateScorer(llm, upload.CVMaxChars, zlog),
		zlog,
	)

	handler.NewProjectHandler(projectUC).RegisterRoutes(app)
	handler.NewApplicationHandler(applicationUC).RegisterRoutes(app)
	handler.NewAssessmentHandler(assessmentUC).RegisterRoutes(app)
	handler.NewMatchHandler(usecase.NewMatchUsecase(strategy)).RegisterRoutes(app)

	go func() {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			zlog.Debug("runtime stats", zap.Int("goroutines", runtime.NumGoroutine()))
		}
	}()

	zlog.Info("server running",
		zap.String("port", appConfig.Port),
		zap.String("env", appConfig.Env),
		zap.String("match_strategy", string(strategy)))
	if err := app.Listen(appConfig.Port); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}

func newLLM(ctx context.Context, log *zap.Logger) (service.JSONGenerator, error) {
	provider := config.LoadLLMConfig().Provider
	log.Info("llm provider selected", zap.String("provider", provider))
	if provider == config.LLMProviderGemini {
		return service.NewGeminiService(ctx, log)
	}
	return service.NewOpenAIService(config.LoadOpenAIConfig(), log), nil
}

func ConnectDB(log *zap.Logger) *gorm.DB {
	appConfig := config.LoadAppConfig()

	db, err := gorm.Open(postgres.Open(config.LoadDBConfig().DSN()), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		log.Fatal("could not connect to database", zap.Error(err))
	}
	pgDB, err := db.DB()
	if err != nil {
		log.Fatal("could not get database instance", zap.Error(err))
	}
	if !appConfig.IsProduction() {
		pgDB.SetMaxIdleConns(5)
		pgDB.SetMaxOpenConns(10)
		pgDB.SetConnMaxLifetime(30 * time.Minute)
	} else {
		pgDB.SetMaxIdleConns(20)
		pgDB.SetMaxOpenConns(200)
		pgDB.SetConnMaxLifetime(time.Hour)
	}

	// uuid_generate_v4() backs the primary key defaults
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		log.Fatal("could not enable uuid-ossp", zap.Error(err))
	}
	if err := db.AutoMigrate(
		&model.Project{},
		&model.Application{},
		&model.Assessment{},
		&model.Question{},
		&model.Answer{},
	); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}
	return db
}
