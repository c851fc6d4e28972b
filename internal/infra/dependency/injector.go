// Package dependency provides dependency injection for the application.
package dependency

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/cardwise/backend/config"
	"github.com/cardwise/backend/internal/application/usecase/auth"
	"github.com/cardwise/backend/internal/application/usecase/catalogue"
	"github.com/cardwise/backend/internal/application/usecase/digest"
	"github.com/cardwise/backend/internal/application/usecase/recommendation"
	"github.com/cardwise/backend/internal/application/usecase/transaction"
	"github.com/cardwise/backend/internal/application/usecase/user"
	"github.com/cardwise/backend/internal/application/usecase/wallet"
	"github.com/cardwise/backend/internal/infra/server/router"
	"github.com/cardwise/backend/internal/integration/adapters"
	"github.com/cardwise/backend/internal/integration/email"
	"github.com/cardwise/backend/internal/integration/email/templates"
	"github.com/cardwise/backend/internal/integration/entrypoint/controller"
	"github.com/cardwise/backend/internal/integration/entrypoint/middleware"
	"github.com/cardwise/backend/internal/integration/persistence"
	"github.com/cardwise/backend/internal/integration/scheduler"
)

// Injector holds all application dependencies.
type Injector struct {
	Config          *config.Config
	DB              *gorm.DB
	Router          *router.Router
	EmailWorker     *email.Worker
	DigestScheduler *scheduler.DigestScheduler
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Injector, error) {
	// Create repositories
	userRepo := persistence.NewUserRepository(db)
	tokenRepo := persistence.NewTokenRepository(db)
	catalogueRepo := persistence.NewCatalogueRepository(db)
	walletRepo := persistence.NewWalletRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)
	auditRepo := persistence.NewExplanationAuditRepository(db)
	emailQueueRepo := persistence.NewEmailQueueRepository(db)

	// Create adapters/services
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(adapters.TokenConfig{
		Secret:     cfg.JWT.Secret,
		AccessTTL:  cfg.JWT.AccessTokenExpiry,
		RefreshTTL: cfg.JWT.RefreshTokenExpiry,
	}, tokenRepo)
	resetTokenService := adapters.NewPasswordResetTokenService(tokenRepo)
	catalogueCache := adapters.NewRedisCatalogueCache(redisClient, cfg.Redis.CatalogueTTL)
	explanationService := adapters.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model)

	// Create email stack: queue-backed service, Resend sender, worker
	emailService := email.NewService(emailQueueRepo, cfg.Email.AppBaseURL)
	emailSender := email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, err
	}
	emailWorker := email.NewWorker(emailQueueRepo, emailSender, renderer, email.WorkerConfig{
		PollInterval: cfg.Email.PollInterval,
		BatchSize:    cfg.Email.BatchSize,
	})

	// Create auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)
	forgotPasswordUseCase := auth.NewForgotPasswordUseCase(userRepo, resetTokenService, emailService, cfg.Email.AppBaseURL)
	resetPasswordUseCase := auth.NewResetPasswordUseCase(userRepo, passwordService, resetTokenService)
	deleteAccountUseCase := auth.NewDeleteAccountUseCase(userRepo, passwordService, tokenService)

	// Create profile use cases
	getProfileUseCase := user.NewGetProfileUseCase(userRepo)
	updateProfileUseCase := user.NewUpdateProfileUseCase(userRepo)

	// Create catalogue use cases
	listCardsUseCase := catalogue.NewListCardsUseCase(catalogueRepo)
	getCardUseCase := catalogue.NewGetCardUseCase(catalogueRepo)
	createCardUseCase := catalogue.NewCreateCardUseCase(catalogueRepo, catalogueCache)
	updateCardUseCase := catalogue.NewUpdateCardUseCase(catalogueRepo, catalogueCache)
	deleteCardUseCase := catalogue.NewDeleteCardUseCase(catalogueRepo, walletRepo, catalogueCache)

	// Create wallet use cases
	listWalletUseCase := wallet.NewListWalletUseCase(walletRepo, catalogueRepo)
	addCardUseCase := wallet.NewAddCardUseCase(walletRepo, catalogueRepo)
	updateCardStatusUseCase := wallet.NewUpdateCardStatusUseCase(walletRepo, catalogueRepo)
	removeCardUseCase := wallet.NewRemoveCardUseCase(walletRepo)

	// Create transaction use cases
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo, walletRepo)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo)

	// Create recommendation use cases
	recommendUseCase := recommendation.NewRecommendUseCase(userRepo, walletRepo, catalogueRepo, catalogueCache)
	evaluateSpendUseCase := recommendation.NewEvaluateSpendUseCase(walletRepo, catalogueRepo, catalogueCache, transactionRepo)
	explainUseCase := recommendation.NewExplainRecommendationUseCase(recommendUseCase, explanationService, auditRepo)

	// Create digest use case and its scheduler
	buildDigestUseCase := digest.NewBuildMonthlyDigestUseCase(userRepo, transactionRepo, catalogueRepo, emailService)
	digestScheduler := scheduler.NewDigestScheduler(buildDigestUseCase, cfg.Digest.CheckInterval)

	// Create controllers
	healthController := controller.NewHealthController(func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	})

	authController := controller.NewAuthController(
		registerUseCase,
		loginUseCase,
		refreshTokenUseCase,
		logoutUseCase,
		forgotPasswordUseCase,
		resetPasswordUseCase,
	)

	userController := controller.NewUserController(
		getProfileUseCase,
		updateProfileUseCase,
		deleteAccountUseCase,
	)

	catalogueController := controller.NewCatalogueController(
		listCardsUseCase,
		getCardUseCase,
		createCardUseCase,
		updateCardUseCase,
		deleteCardUseCase,
	)

	walletController := controller.NewWalletController(
		listWalletUseCase,
		addCardUseCase,
		updateCardStatusUseCase,
		removeCardUseCase,
	)

	transactionController := controller.NewTransactionController(
		listTransactionsUseCase,
		createTransactionUseCase,
		deleteTransactionUseCase,
	)

	recommendationController := controller.NewRecommendationController(
		recommendUseCase,
		evaluateSpendUseCase,
		explainUseCase,
	)

	// Create middleware
	// Use higher rate limits for E2E/test environments to prevent flaky tests
	var loginRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		loginRateLimiter = middleware.NewRateLimiterWithConfig(1000, 1*time.Minute)
	} else {
		loginRateLimiter = middleware.NewRateLimiter()
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Create router
	r := router.NewRouter(
		healthController,
		authController,
		userController,
		catalogueController,
		walletController,
		transactionController,
		recommendationController,
		loginRateLimiter,
		authMiddleware,
	)

	return &Injector{
		Config:          cfg,
		DB:              db,
		Router:          r,
		EmailWorker:     emailWorker,
		DigestScheduler: digestScheduler,
	}, nil
}
