package httpserver

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/velmart/storefront/internal/logging"
	"github.com/velmart/storefront/internal/policy"
	"github.com/velmart/storefront/internal/token"
)

type Deps struct {
	APIRoot    string
	Tokens     *token.Service
	Policy     *policy.Engine
	Users      *UserHandler
	Products   *ProductHandler
	Categories *CategoryHandler
	Orders     *OrderHandler
	Uploads    *UploadHandler
	UploadDir  string
	Logger     *slog.Logger
}

func Register(e *echo.Echo, d *Deps) {
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), middleware.CORS())
	e.Use(requestLogger(d.Logger))
	e.Use(policy.Middleware(d.Policy, d.Tokens))

	e.Static("/uploads", d.UploadDir)

	api := e.Group(d.APIRoot)

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})

	api.POST("/users", d.Users.Register)
	api.POST("/users/login", d.Users.Login)
	api.GET("/users", d.Users.List)
	api.GET("/users/:id", d.Users.Get)

	api.GET("/products", d.Products.List)
	api.GET("/products/count", d.Products.Count)
	api.GET("/products/latest", d.Products.Latest)
	api.GET("/products/search", d.Products.Search)
	api.GET("/products/:id", d.Products.Get)
	api.POST("/products", d.Products.Create)
	api.PUT("/products/:id", d.Products.Update)
	api.DELETE("/products/:id", d.Products.Delete)

	api.GET("/categories", d.Categories.List)
	api.GET("/categories/:id", d.Categories.Get)
	api.POST("/categories", d.Categories.Create)
	api.PUT("/categories/:id", d.Categories.Update)
	api.DELETE("/categories/:id", d.Categories.Delete)

	api.POST("/orders", d.Orders.Place)
	api.GET("/orders", d.Orders.List)
	api.GET("/orders/count", d.Orders.Count)
	api.GET("/orders/myorder/:userId", d.Orders.My)
	api.GET("/orders/:id", d.Orders.Get)
	api.PUT("/orders/:id", d.Orders.UpdateStatus)
	api.DELETE("/orders/:id", d.Orders.Delete)

	api.POST("/upload", d.Uploads.Single)
	api.POST("/upload/multiple", d.Uploads.Multiple)
}

// requestLogger stashes a request-scoped logger into the request context
// so services and handlers can pick it up via logging.FromContext.
func requestLogger(l *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if l == nil {
				return next(c)
			}
			req := c.Request()
			rl := l.With("request_id", c.Response().Header().Get(echo.HeaderXRequestID))
			c.SetRequest(req.WithContext(logging.IntoContext(req.Context(), rl)))
			return next(c)
		}
	}
}
