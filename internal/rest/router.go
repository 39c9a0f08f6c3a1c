// Package rest wires the HTTP surface of the article API.
package rest

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/padmin-io/newsboard/internal/logger"
	"github.com/padmin-io/newsboard/internal/rest/handlers"
	custommw "github.com/padmin-io/newsboard/internal/rest/middleware"
)

// RouterConfig holds the collaborators the router needs.
type RouterConfig struct {
	Articles handlers.ArticleService
	Login    handlers.LoginService
	Tokens   custommw.TokenVerifier
	DB       handlers.Pinger
	Logger   logger.Logger
}

// NewRouter creates and configures the echo router: public reads, the
// login endpoint and the token-gated article mutations.
func NewRouter(cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = newRequestValidator()

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())

	articleHandler := handlers.NewArticleHandler(cfg.Articles, cfg.Logger)
	authHandler := handlers.NewAuthHandler(cfg.Login, cfg.Logger)
	healthHandler := handlers.NewHealthHandler(cfg.DB)

	v1 := e.Group("/v1")
	v1.GET("/health", healthHandler.Health)
	v1.POST("/login", authHandler.Login)
	v1.GET("/articles", articleHandler.List)
	v1.GET("/articles/:id", articleHandler.Get)

	admin := v1.Group("", custommw.RequireAuth(cfg.Tokens, cfg.Logger))
	admin.POST("/articles", articleHandler.Create)
	admin.PUT("/articles/:id", articleHandler.Update)
	admin.DELETE("/articles/:id", articleHandler.Delete)

	return e
}
