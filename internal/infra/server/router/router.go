// Package router maps the LifeScope HTTP API onto its controllers.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/lifescope/backend/internal/integration/entrypoint/controller"
	"github.com/lifescope/backend/internal/integration/entrypoint/middleware"
	"github.com/lifescope/backend/internal/integration/metrics"
)

// Controllers lists the handlers behind every route.
type Controllers struct {
	Health      *controller.HealthController
	Auth        *controller.AuthController
	User        *controller.UserController
	Category    *controller.CategoryController
	Goal        *controller.GoalController
	Activity    *controller.ActivityController
	Nutrition   *controller.NutritionController
	Transaction *controller.TransactionController
	AI          *controller.AIController
}

// RateLimits groups the limiters applied to route families. A nil limiter
// leaves its routes unlimited.
type RateLimits struct {
	Auth *middleware.RateLimiter
	AI   *middleware.RateLimiter
}

func limited(limiter *middleware.RateLimiter, h gin.HandlerFunc) []gin.HandlerFunc {
	if limiter == nil {
		return []gin.HandlerFunc{h}
	}
	return []gin.HandlerFunc{limiter.Middleware(), h}
}

type Router struct {
	c           Controllers
	limits      RateLimits
	auth        *middleware.AuthMiddleware
	metrics     *metrics.Metrics
	metricsPath string
}

// NewRouter wires the routes. A nil m serves no /metrics and records nothing.
func NewRouter(c Controllers, limits RateLimits, auth *middleware.AuthMiddleware, m *metrics.Metrics, metricsPath string) *Router {
	if metricsPath == "" {
		metricsPath = "/metrics"
	}
	return &Router{c: c, limits: limits, auth: auth, metrics: m, metricsPath: metricsPath}
}

// Setup builds a fresh engine for environment.
func (r *Router) Setup(environment string) *gin.Engine {
	switch environment {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), middleware.RequestLogger())
	if r.metrics != nil {
		engine.Use(r.metrics.Middleware())
		engine.GET(r.metricsPath, gin.WrapH(r.metrics.Handler()))
	}
	engine.GET("/health", r.c.Health.Check)

	v1 := engine.Group("/api/v1")
	r.authRoutes(v1.Group("/auth"))
	r.userRoutes(r.private(v1, "/users"))
	r.categoryRoutes(r.private(v1, "/categories"))
	r.goalRoutes(r.private(v1, "/goals"))
	r.nutritionRoutes(r.private(v1, "/nutrition"))
	r.financeRoutes(r.private(v1, "/transactions"), r.private(v1, "/finance"))
	r.aiRoutes(r.private(v1, "/ai"))
	return engine
}

// private opens a group that requires a valid access token.
func (r *Router) private(parent *gin.RouterGroup, path string) *gin.RouterGroup {
	g := parent.Group(path)
	g.Use(r.auth.Authenticate())
	return g
}

func (r *Router) authRoutes(g *gin.RouterGroup) {
	a := r.c.Auth
	g.POST("/register", limited(r.limits.Auth, a.Register)...)
	g.POST("/login", limited(r.limits.Auth, a.Login)...)
	g.POST("/forgot-password", limited(r.limits.Auth, a.ForgotPassword)...)
	g.POST("/refresh", a.RefreshToken)
	g.POST("/logout", a.Logout)
	g.POST("/reset-password", a.ResetPassword)
}

func (r *Router) userRoutes(g *gin.RouterGroup) {
	g.GET("/me", r.c.User.GetProfile)
	g.PATCH("/me", r.c.User.UpdateProfile)
	g.DELETE("/me", r.c.User.DeleteAccount)
}

func (r *Router) categoryRoutes(g *gin.RouterGroup) {
	g.GET("", r.c.Category.List)
	g.POST("", r.c.Category.Create)
	g.PATCH("/:id", r.c.Category.Update)
	g.DELETE("/:id", r.c.Category.Delete)
}

func (r *Router) goalRoutes(g *gin.RouterGroup) {
	g.GET("", r.c.Goal.List)
	g.POST("", r.c.Goal.Create)
	g.GET("/:id", r.c.Goal.Get)
	g.PATCH("/:id", r.c.Goal.Update)
	g.DELETE("/:id", r.c.Goal.Delete)

	// Every activity write answers with the recomputed goal.
	g.POST("/:id/activities", r.c.Activity.Add)
	g.PATCH("/:id/activities/:activityId", r.c.Activity.Update)
	g.DELETE("/:id/activities/:activityId", r.c.Activity.Remove)
	g.POST("/:id/activities/:activityId/toggle", r.c.Activity.Toggle)
}

func (r *Router) nutritionRoutes(g *gin.RouterGroup) {
	g.GET("", r.c.Nutrition.List)
	g.POST("", r.c.Nutrition.Create)
	g.GET("/summary", r.c.Nutrition.Summary)
	g.DELETE("/:id", r.c.Nutrition.Delete)
}

func (r *Router) financeRoutes(transactions, finance *gin.RouterGroup) {
	t := r.c.Transaction
	transactions.GET("", t.List)
	transactions.POST("", t.Create)
	transactions.PATCH("/:id", t.Update)
	transactions.DELETE("/:id", t.Delete)
	transactions.POST("/import/preview", t.PreviewImport)
	transactions.POST("/import", t.Import)
	finance.GET("/summary", t.Summary)
}

func (r *Router) aiRoutes(g *gin.RouterGroup) {
	g.POST("/chat", limited(r.limits.AI, r.c.AI.Chat)...)
	g.GET("/report", limited(r.limits.AI, r.c.AI.Report)...)
	g.POST("/goals/:id/suggestions", limited(r.limits.AI, r.c.AI.SuggestActivities)...)
}
