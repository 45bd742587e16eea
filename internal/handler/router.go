package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/bimbel-api/internal/middleware"
	"github.com/noah-isme/bimbel-api/internal/models"
	"github.com/noah-isme/bimbel-api/internal/service"
	"github.com/noah-isme/bimbel-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/bimbel-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/bimbel-api/pkg/middleware/requestid"
)

// Handlers groups every route handler mounted by NewRouter.
type Handlers struct {
	Auth         *AuthHandler
	Users        *UserHandler
	Classes      *ClassHandler
	Attendance   *AttendanceHandler
	TestResults  *TestResultHandler
	Finance      *FinanceHandler
	Events       *EventHandler
	Publications *PublicationHandler
	Metrics      *MetricsHandler
}

// RouterOptions configures the engine built by NewRouter.
type RouterOptions struct {
	APIPrefix      string
	CookieName     string
	AllowedOrigins []string
	EnableMetrics  bool
	EnableDocs     bool
}

// NewRouter builds the gin engine with the shared middleware chain and every API route.
func NewRouter(h Handlers, store sessions.Store, auth *service.AuthService, metrics *service.MetricsService, logr *zap.Logger, opts RouterOptions) *gin.Engine {
	if logr == nil {
		logr = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(opts.AllowedOrigins))
	if opts.EnableMetrics {
		r.Use(middleware.Metrics(metrics, "/metrics", "/health", "/ready"))
		r.GET("/metrics", h.Metrics.Prometheus)
	}

	r.GET("/health", h.Metrics.Health)
	r.GET("/ready", h.Metrics.Ready)

	if opts.EnableDocs {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	admin := middleware.RequireRoles(models.RoleAdmin)
	staff := middleware.RequireRoles(models.RoleAdmin, models.RoleTeacher)

	api := r.Group(opts.APIPrefix)

	authGroup := api.Group("/auth")
	authGroup.POST("/login", h.Auth.Login)
	authGroup.POST("/logout", h.Auth.Logout)

	secured := api.Group("")
	secured.Use(middleware.RequireSession(store, opts.CookieName, auth))

	secured.GET("/auth/me", h.Auth.Me)
	secured.POST("/auth/change-password", h.Auth.ChangePassword)

	users := secured.Group("/users")
	users.GET("", admin, h.Users.List)
	users.POST("", admin, h.Users.Create)
	users.GET("/:id", middleware.RBAC(string(models.RoleAdmin), string(models.RoleTeacher), middleware.SelfParam), h.Users.Get)
	users.GET("/:id/student", h.Users.StudentProfile)

	secured.GET("/students", staff, h.Users.ListStudents)

	classes := secured.Group("/classes")
	classes.GET("", h.Classes.List)
	classes.GET("/:id", h.Classes.Get)
	classes.POST("", staff, h.Classes.Create)

	attendance := secured.Group("/attendance")
	attendance.GET("", h.Attendance.List)
	attendance.GET("/:id", h.Attendance.Get)
	attendance.POST("", staff, h.Attendance.Mark)
	attendance.PATCH("/:id", staff, h.Attendance.UpdateStatus)

	results := secured.Group("/test-results")
	results.GET("", h.TestResults.List)
	results.GET("/:id", h.TestResults.Get)
	results.POST("", staff, h.TestResults.Create)
	results.POST("/class", staff, h.TestResults.CreateForClass)
	results.PUT("/:id", staff, h.TestResults.Update)

	installments := secured.Group("/installments")
	installments.GET("", middleware.RequireRoles(models.RoleAdmin, models.RoleStudent), h.Finance.ListInstallments)
	installments.GET("/:id", middleware.RequireRoles(models.RoleAdmin, models.RoleStudent), h.Finance.GetInstallment)
	installments.POST("", admin, h.Finance.CreateInstallment)
	installments.PATCH("/:id", admin, h.Finance.UpdateInstallment)

	payments := secured.Group("/teacher-payments")
	payments.GET("", staff, h.Finance.ListTeacherPayments)
	payments.GET("/:id", staff, h.Finance.GetTeacherPayment)
	payments.POST("", admin, h.Finance.CreateTeacherPayment)
	payments.PATCH("/:id", admin, h.Finance.UpdateTeacherPayment)

	events := secured.Group("/events")
	events.GET("", h.Events.List)
	events.GET("/:id", h.Events.Get)
	events.POST("", staff, h.Events.Create)

	publications := secured.Group("/publications")
	publications.GET("", h.Publications.List)
	publications.GET("/:id", h.Publications.Get)
	publications.POST("", admin, h.Publications.Create)
	publications.PUT("/:id/stock", admin, h.Publications.Restock)

	lendings := secured.Group("/lendings")
	lendings.GET("", h.Publications.ListLendings)
	lendings.GET("/:id", h.Publications.GetLending)
	lendings.POST("", staff, h.Publications.Issue)
	lendings.POST("/:id/return", staff, h.Publications.Return)

	secured.GET("/metrics/summary", admin, h.Metrics.Summary)

	return r
}
