package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/limva/limva-api/internal/config"
	"github.com/limva/limva-api/internal/database"
	"github.com/limva/limva-api/internal/handler"
	"github.com/limva/limva-api/internal/middleware"
	"github.com/limva/limva-api/internal/models"
	"github.com/limva/limva-api/internal/repository"
	"github.com/limva/limva-api/internal/router"
	"github.com/limva/limva-api/internal/service"
	cloud "github.com/limva/limva-api/pkg/cloudinary"
	"github.com/limva/limva-api/pkg/openrouter"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.HomeworkSubmission{},
		&models.PracticeQuestion{},
		&models.PracticeAttempt{},
		&models.MonthlyRanking{},
		&models.AISettings{},
		&models.Rating{},
		&models.Like{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	uploader, err := cloud.New(cloud.Config{
		CloudName: cfg.CloudinaryCloudName,
		APIKey:    cfg.CloudinaryAPIKey,
		APISecret: cfg.CloudinaryAPISecret,
		Folder:    cfg.CloudinaryUploadFolder,
	}, logger)
	if err != nil {
		log.Fatalf("failed to create cloudinary client: %v", err)
	}

	gateway, err := openrouter.New(openrouter.Config{
		APIKey:  cfg.OpenRouterAPIKey,
		BaseURL: cfg.OpenRouterBaseURL,
		Referer: cfg.OpenRouterReferer,
		Title:   cfg.OpenRouterTitle,
		Logger:  logger,
	})
	if err != nil {
		log.Fatalf("failed to create openrouter client: %v", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	homeworkRepo := repository.NewHomeworkRepository(db)
	practiceRepo := repository.NewPracticeRepository(db)
	rankingRepo := repository.NewRankingRepository(db)
	aiSettingsRepo := repository.NewAISettingsRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	ratingRepo := repository.NewRatingRepository(db)

	aiSettingsService := service.NewAISettingsService(aiSettingsRepo, logger)
	authService := service.NewAuthService(userRepo, validate, cfg.JWTSecret, logger)
	profileService := service.NewProfileService(userRepo, uploader, validate, cfg.AvatarMaxSizeMB, logger)
	postService := service.NewPostService(postRepo, commentRepo, aiSettingsService, gateway, validate, logger)
	commentService := service.NewCommentService(commentRepo, postRepo, validate, logger)
	engagementService := service.NewEngagementService(likeRepo, ratingRepo, validate, logger)
	homeworkService := service.NewHomeworkService(homeworkRepo, aiSettingsService, gateway, validate, logger)
	practiceService := service.NewPracticeService(practiceRepo, homeworkRepo, aiSettingsService, gateway, validate, cfg.PracticeScoreAward, logger)
	rankingService := service.NewRankingService(rankingRepo, userRepo, redisClient, cfg.RankingsCacheTTL, logger)
	adminService := service.NewAdminService(userRepo, validate, logger)

	authHandler := handler.NewAuthHandler(authService, logger)
	profileHandler := handler.NewProfileHandler(profileService, logger)
	postHandler := handler.NewPostHandler(postService, logger)
	commentHandler := handler.NewCommentHandler(commentService, logger)
	engagementHandler := handler.NewEngagementHandler(engagementService, logger)
	homeworkHandler := handler.NewHomeworkHandler(homeworkService, logger)
	practiceHandler := handler.NewPracticeHandler(practiceService, logger)
	rankingHandler := handler.NewRankingHandler(rankingService, logger)
	aiSettingsHandler := handler.NewAISettingsHandler(aiSettingsService, logger)
	adminHandler := handler.NewAdminHandler(adminService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:       authHandler,
		ProfileHandler:    profileHandler,
		PostHandler:       postHandler,
		CommentHandler:    commentHandler,
		EngagementHandler: engagementHandler,
		HomeworkHandler:   homeworkHandler,
		PracticeHandler:   practiceHandler,
		RankingHandler:    rankingHandler,
		AISettingsHandler: aiSettingsHandler,
		AdminHandler:      adminHandler,
		JWTMiddleware:     middleware.JWTProtected(cfg.JWTSecret),
	})

	schedulerCtx, stopScheduler := context.WithCancel(context.Background())
	defer stopScheduler()
	go rankingService.Start(schedulerCtx)

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app, stopScheduler)
}

func waitForShutdown(app *fiber.App, stopScheduler context.CancelFunc) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	stopScheduler()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
