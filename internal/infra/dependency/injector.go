// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/lifescope/backend/config"
	"github.com/lifescope/backend/internal/application/adapter"
	"github.com/lifescope/backend/internal/application/usecase/activity"
	"github.com/lifescope/backend/internal/application/usecase/ai"
	"github.com/lifescope/backend/internal/application/usecase/auth"
	"github.com/lifescope/backend/internal/application/usecase/category"
	"github.com/lifescope/backend/internal/application/usecase/goal"
	"github.com/lifescope/backend/internal/application/usecase/nutrition"
	"github.com/lifescope/backend/internal/application/usecase/transaction"
	domainerror "github.com/lifescope/backend/internal/domain/error"
	database "github.com/lifescope/backend/internal/infra/db"
	"github.com/lifescope/backend/internal/infra/server/router"
	"github.com/lifescope/backend/internal/integration/adapters"
	"github.com/lifescope/backend/internal/integration/cache"
	"github.com/lifescope/backend/internal/integration/email"
	"github.com/lifescope/backend/internal/integration/email/templates"
	"github.com/lifescope/backend/internal/integration/entrypoint/controller"
	"github.com/lifescope/backend/internal/integration/entrypoint/middleware"
	"github.com/lifescope/backend/internal/integration/entrypoint/validation"
	"github.com/lifescope/backend/internal/integration/metrics"
	"github.com/lifescope/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config         *config.Config
	DB             *gorm.DB
	Router         *router.Router
	EmailWorker    *email.Worker
	RecomputeGoals *goal.RecomputeGoalsUseCase
}

// Option overrides a default collaborator of the injector.
type Option func(*options)

type options struct {
	clock adapter.Clock
}

// WithClock replaces the system clock used to evaluate completions.
func WithClock(clock adapter.Clock) Option {
	return func(o *options) {
		o.clock = clock
	}
}

// NewInjector creates a new dependency injector with all dependencies wired.
// redisClient may be nil, in which case life reports are not cached.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient redis.UniversalClient, opts ...Option) (*Injector, error) {
	o := &options{clock: adapter.SystemClock{}}
	for _, opt := range opts {
		opt(o)
	}
	clock := o.clock

	// DTO binding tags such as activity_frequency live on gin's validator.
	if err := validation.Register(); err != nil {
		return nil, fmt.Errorf("failed to register request validators: %w", err)
	}

	// Create repositories
	userRepo := persistence.NewUserRepository(db)
	tokenRepo := persistence.NewTokenRepository(db)
	categoryRepo := persistence.NewCategoryRepository(db)
	goalRepo := persistence.NewGoalRepository(db)
	activityRepo := persistence.NewActivityRepository(db)
	nutritionRepo := persistence.NewNutritionRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)
	emailQueueRepo := persistence.NewEmailQueueRepository(db)

	// Create adapters/services
	passwordService := adapters.NewPasswordService(cfg.JWT.BcryptCost)
	tokenService := adapters.NewTokenService(cfg.JWT, tokenRepo, clock)
	resetTokenService := adapters.NewPasswordResetTokenService(tokenRepo, clock)
	emailService := email.NewService(emailQueueRepo, clock, cfg.Email.AppBaseURL)
	aiService := adapters.NewAIService(cfg.AI)

	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to load email templates: %w", err)
	}
	var recorder adapter.MetricsRecorder = adapter.NopMetrics{}
	var deliveries email.DeliveryRecorder
	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
		recorder = m
		deliveries = m
	}

	emailWorker := email.NewWorker(emailQueueRepo, email.NewSender(cfg.Email), renderer, clock, deliveries, email.WorkerConfig{
		PollInterval: cfg.Email.PollInterval,
		BatchSize:    cfg.Email.BatchSize,
	})

	prompts, err := ai.LoadPrompts()
	if err != nil {
		return nil, fmt.Errorf("failed to load AI prompts: %w", err)
	}

	var reportCache adapter.ReportCache
	if redisClient != nil {
		reportCache = cache.NewReportCache(redisClient)
	}

	recalculator := goal.NewProgressRecalculator(goalRepo, activityRepo, clock, recorder).
		WithNotifier(email.NewGoalNotifier(userRepo, emailService, cfg.Email.AppBaseURL))

	// Create auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService, emailService, clock)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService, clock)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(userRepo, tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)
	forgotPasswordUseCase := auth.NewForgotPasswordUseCase(userRepo, resetTokenService, emailService, clock, cfg.Email.AppBaseURL)
	resetPasswordUseCase := auth.NewResetPasswordUseCase(userRepo, passwordService, resetTokenService, tokenService, clock)
	getProfileUseCase := auth.NewGetProfileUseCase(userRepo)
	updateProfileUseCase := auth.NewUpdateProfileUseCase(userRepo, clock)
	deleteAccountUseCase := auth.NewDeleteAccountUseCase(userRepo, passwordService, tokenService)

	// Create category use cases
	listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo)
	createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo, clock)
	updateCategoryUseCase := category.NewUpdateCategoryUseCase(categoryRepo, goalRepo, clock)
	deleteCategoryUseCase := category.NewDeleteCategoryUseCase(categoryRepo, goalRepo)

	// Create goal use cases
	listGoalsUseCase := goal.NewListGoalsUseCase(goalRepo, activityRepo)
	createGoalUseCase := goal.NewCreateGoalUseCase(goalRepo, categoryRepo, clock)
	getGoalUseCase := goal.NewGetGoalUseCase(goalRepo, activityRepo)
	updateGoalUseCase := goal.NewUpdateGoalUseCase(goalRepo, activityRepo, categoryRepo, clock)
	deleteGoalUseCase := goal.NewDeleteGoalUseCase(goalRepo, activityRepo)
	recomputeGoalsUseCase := goal.NewRecomputeGoalsUseCase(goalRepo, userRepo, recalculator)

	// Create activity use cases
	addActivityUseCase := activity.NewAddActivityUseCase(goalRepo, activityRepo, recalculator)
	updateActivityUseCase := activity.NewUpdateActivityUseCase(goalRepo, activityRepo, clock)
	removeActivityUseCase := activity.NewRemoveActivityUseCase(goalRepo, activityRepo, recalculator)
	toggleActivityUseCase := activity.NewToggleActivityUseCase(goalRepo, activityRepo, recalculator, recorder)

	// Create nutrition use cases
	createEntryUseCase := nutrition.NewCreateEntryUseCase(nutritionRepo, clock)
	listEntriesUseCase := nutrition.NewListEntriesUseCase(nutritionRepo, clock)
	deleteEntryUseCase := nutrition.NewDeleteEntryUseCase(nutritionRepo)
	dailySummaryUseCase := nutrition.NewDailySummaryUseCase(nutritionRepo, clock)

	// Create transaction use cases
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo, clock)
	updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(transactionRepo, clock)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo)
	previewImportUseCase := transaction.NewPreviewImportUseCase(transactionRepo)
	importStatementUseCase := transaction.NewImportStatementUseCase(transactionRepo, clock)
	monthlySummaryUseCase := transaction.NewMonthlySummaryUseCase(transactionRepo, clock)

	// Create AI use cases
	chatUseCase := ai.NewChatUseCase(aiService, prompts, clock)
	lifeReportUseCase := ai.NewLifeReportUseCase(
		goalRepo,
		activityRepo,
		nutritionRepo,
		transactionRepo,
		aiService,
		reportCache,
		prompts,
		clock,
		cfg.AI.ReportCacheTTL,
	)
	suggestActivitiesUseCase := ai.NewSuggestActivitiesUseCase(goalRepo, activityRepo, aiService, prompts)

	// Create controllers
	probes := []controller.Probe{{
		Name:     "database",
		Required: true,
		Check: func(ctx context.Context) error {
			return database.Ping(ctx, db)
		},
	}}
	if redisClient != nil {
		probes = append(probes, controller.Probe{
			Name: "redis",
			Check: func(ctx context.Context) error {
				return redisClient.Ping(ctx).Err()
			},
		})
	}
	healthController := controller.NewHealthController(clock, probes...)

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

	categoryController := controller.NewCategoryController(
		listCategoriesUseCase,
		createCategoryUseCase,
		updateCategoryUseCase,
		deleteCategoryUseCase,
	)

	goalController := controller.NewGoalController(
		listGoalsUseCase,
		createGoalUseCase,
		getGoalUseCase,
		updateGoalUseCase,
		deleteGoalUseCase,
		recalculator,
	)

	activityController := controller.NewActivityController(
		addActivityUseCase,
		updateActivityUseCase,
		removeActivityUseCase,
		toggleActivityUseCase,
		recalculator,
	)

	nutritionController := controller.NewNutritionController(
		createEntryUseCase,
		listEntriesUseCase,
		deleteEntryUseCase,
		dailySummaryUseCase,
	)

	transactionController := controller.NewTransactionController(
		listTransactionsUseCase,
		createTransactionUseCase,
		updateTransactionUseCase,
		deleteTransactionUseCase,
		previewImportUseCase,
		importStatementUseCase,
		monthlySummaryUseCase,
	)

	aiController := controller.NewAIController(
		chatUseCase,
		lifeReportUseCase,
		suggestActivitiesUseCase,
	)

	var rateCounter middleware.RateCounter = middleware.NewMemoryCounter(clock.Now)
	if redisClient != nil {
		rateCounter = cache.NewRateCounter(redisClient)
	}
	limits := router.RateLimits{
		AI: middleware.NewRateLimiter("ai", string(domainerror.ErrCodeAIRateLimited),
			cfg.RateLimit.AIRequests, cfg.RateLimit.Window, rateCounter, middleware.ByUser),
	}
	// Test suites sign in far more often than a person would.
	if cfg.Server.Environment != "e2e" && cfg.Server.Environment != "test" {
		limits.Auth = middleware.NewRateLimiter("auth", string(domainerror.ErrCodeRateLimited),
			cfg.RateLimit.AuthAttempts, cfg.RateLimit.Window, rateCounter, middleware.ByClientIP)
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	r := router.NewRouter(router.Controllers{
		Health:      healthController,
		Auth:        authController,
		User:        userController,
		Category:    categoryController,
		Goal:        goalController,
		Activity:    activityController,
		Nutrition:   nutritionController,
		Transaction: transactionController,
		AI:          aiController,
	}, limits, authMiddleware, m, cfg.Metrics.Path)

	return &Injector{
		Config:         cfg,
		DB:             db,
		Router:         r,
		EmailWorker:    emailWorker,
		RecomputeGoals: recomputeGoalsUseCase,
	}, nil
}
