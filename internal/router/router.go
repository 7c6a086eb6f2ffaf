package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"parampara/internal/auth"
	"parampara/internal/config"
	"parampara/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	locationHandler *handler.LocationHandler,
	submissionHandler *handler.SubmissionHandler,
	metaHandler *handler.MetaHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)
	api.GET("/stats", submissionHandler.Stats)
	api.GET("/meta/languages", metaHandler.Languages)
	api.GET("/meta/regions", metaHandler.Regions)
	api.GET("/meta/categories", metaHandler.Categories)

	// Secured routes (require a Bearer access token)
	// The default token lookup strips the "Bearer " scheme from the
	// Authorization header before parsing.
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(cfg.SecretKey),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}))

	secured.DELETE("/me", authHandler.DeleteAccount)

	// Location routes
	secured.POST("/locations", locationHandler.Record)
	secured.GET("/locations/latest", locationHandler.Latest)

	// Submission routes
	secured.POST("/submissions", submissionHandler.Create)
	secured.GET("/submissions", submissionHandler.List)
	secured.GET("/submissions/export", submissionHandler.Export)
	secured.POST("/translate", submissionHandler.Translate)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
