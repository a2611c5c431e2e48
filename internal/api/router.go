package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/ringsidehq/member-portal/docs"
	"github.com/ringsidehq/member-portal/internal/api/handler"
	"github.com/ringsidehq/member-portal/internal/api/middleware"
	"github.com/ringsidehq/member-portal/internal/core/domain"
	"github.com/ringsidehq/member-portal/internal/core/ports"
)

// Dependencies carries everything the router wires together. Mongo and Redis
// may be nil in demo mode; the readiness probe reports them as disabled.
type Dependencies struct {
	Auth      ports.AuthService
	Profiles  ports.ProfileService
	Medical   ports.MedicalService
	Audit     ports.AuditRecorder
	JWTSecret string
	Mongo     *mongo.Database
	Redis     *redis.Client
	Log       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("portal"))

	authMiddleware := middleware.Auth(deps.JWTSecret)
	medicOnly := middleware.RequireRole(string(domain.RoleMedic))

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	e.POST("/v1/auth/login", authHandler.Login)
	e.POST("/v1/auth/signup", authHandler.Signup)
	e.POST("/v1/auth/logout", authHandler.Logout, authMiddleware)

	// --- Profile routes ---
	profileHandler := handler.NewProfileHandler(deps.Profiles)
	profile := e.Group("/v1/profile", authMiddleware)
	profile.GET("/me", profileHandler.Get)
	profile.PUT("/me", profileHandler.Update)
	profile.PUT("/me/personalise", profileHandler.Personalise)

	// --- Medical record routes ---
	medicalHandler := handler.NewMedicalHandler(deps.Medical)
	records := e.Group("/v1/medical/records", authMiddleware)
	records.GET("/:subject_id", medicalHandler.GetRecord)
	records.POST("/:subject_id/entries", medicalHandler.AddEntry, medicOnly)
	records.PUT("/:subject_id/suspension", medicalHandler.SetSuspension, medicOnly)
	records.DELETE("/:subject_id/suspension", medicalHandler.ClearSuspension, medicOnly)

	// --- Public medical pass (scanned from the QR code, no auth) ---
	passHandler := handler.NewPassHandler(deps.Medical, deps.Audit)
	e.GET("/v1/medical/pass/:subject_id", passHandler.Get)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
