package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi"
	"go.uber.org/zap"

	"github.com/hitkalariya/portfolio-api/internal/ai"
	"github.com/hitkalariya/portfolio-api/internal/config"
	"github.com/hitkalariya/portfolio-api/internal/db"
	"github.com/hitkalariya/portfolio-api/internal/handler"
	"github.com/hitkalariya/portfolio-api/internal/job"
	"github.com/hitkalariya/portfolio-api/internal/middleware"
	appErr "github.com/hitkalariya/portfolio-api/internal/pkg/errors"
	"github.com/hitkalariya/portfolio-api/internal/ratelimit"
	"github.com/hitkalariya/portfolio-api/internal/repo"
	"github.com/hitkalariya/portfolio-api/internal/schedule"
	"github.com/hitkalariya/portfolio-api/internal/service"
	"github.com/hitkalariya/portfolio-api/internal/uploads"
)

const mockTypingDelay = 30 * time.Millisecond

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "portfolio",
		Short: "portfolio backend server",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run portfolio server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, conn, err := setup(configPath)
			if err != nil {
				return err
			}
			return runServer(cfg, conn)
		},
	}
	runCmd.Flags().StringVar(&configPath, "config", "", "path to config.json")

	var adminEmail, adminPassword string
	createAdminCmd := &cobra.Command{
		Use:   "create-admin",
		Short: "create an admin user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if adminEmail == "" || adminPassword == "" {
				return fmt.Errorf("--email and --password are required")
			}
			cfg, conn, err := setup(configPath)
			if err != nil {
				return err
			}
			defer conn.Close()
			users := repo.NewUserRepo(conn)
			auth := service.NewAuthService(users, []byte(cfg.JWTSecret), time.Hour*time.Duration(cfg.JWTTTLHours))
			user, err := auth.CreateAdmin(cmd.Context(), adminEmail, adminPassword)
			if err != nil {
				if appErr.IsInvalid(err) {
					return fmt.Errorf("invalid email or password (minimum 8 characters)")
				}
				return err
			}
			logutil.GetLogger(context.Background()).Info("admin created", zap.String("id", user.ID), zap.String("email", user.Email))
			return nil
		},
	}
	createAdminCmd.Flags().StringVar(&configPath, "config", "", "path to config.json")
	createAdminCmd.Flags().StringVar(&adminEmail, "email", "", "admin email")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "admin password")

	rootCmd.AddCommand(runCmd, createAdminCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func setup(configPath string) (*config.Config, *sqlx.DB, error) {
	if configPath == "" {
		return nil, nil, fmt.Errorf("--config is required")
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	logger.Init(
		cfg.LogConfig.File,
		cfg.LogConfig.Level,
		int(cfg.LogConfig.FileCount),
		int(cfg.LogConfig.FileSize),
		int(cfg.LogConfig.KeepDays),
		cfg.LogConfig.Console,
	)
	logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", configPath))

	conn, err := db.Open(cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.ApplyMigrations(conn); err != nil {
		return nil, nil, fmt.Errorf("migrations: %w", err)
	}
	return cfg, conn, nil
}

func runServer(cfg *config.Config, conn *sqlx.DB) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logutil.GetLogger(ctx).Info(
		"starting server",
		zap.Int("port", cfg.Port),
		zap.String("model", cfg.AI.Model),
		zap.Bool("mock_mode", cfg.AI.MockMode),
	)

	profileRepo := repo.NewProfileRepo(conn)
	projectRepo := repo.NewProjectRepo(conn)
	postRepo := repo.NewPostRepo(conn)
	userRepo := repo.NewUserRepo(conn)

	contentService := service.NewContentService(profileRepo, projectRepo, postRepo)
	authService := service.NewAuthService(userRepo, []byte(cfg.JWTSecret), time.Hour*time.Duration(cfg.JWTTTLHours))

	builder := service.NewContextBuilder(contentService, cfg.Site.OwnerName)
	var real ai.Responder
	if cfg.AI.APIKey != "" {
		real = ai.NewGeminiResponder(cfg.AI.APIKey, cfg.AI.Model, ai.DefaultGenerationParams())
	}
	mock := ai.NewMockResponder(mockTypingDelay)
	chatService := service.NewChatService(builder, real, mock, cfg.AI.MockMode, time.Duration(cfg.AI.TimeoutSeconds)*time.Second)

	mailSender := service.NewEmailSender(cfg.Mail)
	contactService := service.NewContactService(mailSender, cfg.Mail, cfg.Site)

	httpClient := &http.Client{Timeout: 10 * time.Second}
	githubService := service.NewGitHubService(cfg.GitHub, httpClient, "https://api.github.com")

	window := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
	chatLimiter := ratelimit.NewLimiter(ratelimit.NewMemoryStore(), cfg.RateLimit.ChatPerMinute, window)
	contactLimiter := ratelimit.NewLimiter(ratelimit.NewMemoryStore(), cfg.RateLimit.ContactPerMinute, window)

	var signer *uploads.Signer
	if cfg.Uploads.Bucket != "" {
		var err error
		signer, err = uploads.NewSigner(ctx, cfg.Uploads)
		if err != nil {
			return fmt.Errorf("init upload signer: %w", err)
		}
	}

	deps := handler.RouterDeps{
		Auth:      handler.NewAuthHandler(authService),
		Chat:      handler.NewChatHandler(chatService, chatLimiter),
		Contact:   handler.NewContactHandler(contactService, contactLimiter),
		Content:   handler.NewContentHandler(contentService),
		GitHub:    handler.NewGitHubHandler(githubService),
		Uploads:   handler.NewUploadHandler(signer),
		JWTSecret: []byte(cfg.JWTSecret),
	}

	engine, err := webapi.NewEngine(
		"/api",
		fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.RequestID(),
			middleware.CORS(cfg.CORSOrigins),
			gzip.Gzip(gzip.DefaultCompression),
		),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}

	scheduler := schedule.NewCronScheduler()
	if err := scheduler.AddJob(job.NewRateLimitSweepJob(chatLimiter, contactLimiter), "* * * * *"); err != nil {
		return err
	}
	scheduler.Start(ctx)
	defer scheduler.Stop()

	logutil.GetLogger(ctx).Info("http server listening", zap.String("addr", fmt.Sprintf("0.0.0.0:%d", cfg.Port)))
	go func() {
		if err := engine.Run(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logutil.GetLogger(context.Background()).Info("server stopping...")
	return nil
}
