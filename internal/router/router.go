package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"storefront/internal/auth"
	"storefront/internal/handler"
	"storefront/internal/service"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	sessions service.SessionService,
	authHandler *handler.AuthHandler,
	itemHandler *handler.ItemHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Every /api route runs through the session middleware: no cookie means
	// anonymous, a bad cookie fails the request. Handlers that mutate state
	// gate on the resolved identity themselves.
	api := e.Group("/api", auth.SessionMiddleware(sessions.Authenticate))

	api.POST("/signup", authHandler.Signup)
	api.POST("/signin", authHandler.Signin)
	api.POST("/signout", authHandler.Signout)
	api.POST("/request-reset", authHandler.RequestReset)
	api.POST("/reset-password", authHandler.ResetPassword)
	api.GET("/me", authHandler.Me)

	api.GET("/items", itemHandler.ListItems)
	api.GET("/items/:id", itemHandler.GetItem)
	api.POST("/items", itemHandler.CreateItem)
	api.PUT("/items/:id", itemHandler.UpdateItem)
	api.DELETE("/items/:id", itemHandler.DeleteItem)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
