package router

import (
	"net/http"
	"reflect"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/shopspring/decimal"
	echoSwagger "github.com/swaggo/echo-swagger"

	"shopadmin/internal/auth"
	"shopadmin/internal/config"
	apperrors "shopadmin/internal/errors"
	"shopadmin/internal/handler"
	appmiddleware "shopadmin/internal/middleware"
	"shopadmin/internal/model"
)

// CatalogMounter is satisfied by the per-entity catalog handlers.
type CatalogMounter interface {
	Mount(g *echo.Group, guard ...echo.MiddlewareFunc)
}

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth        *handler.AuthHandler
	Users       *handler.UserHandler
	Categories  CatalogMounter
	Discounts   CatalogMounter
	Inventories CatalogMounter
}

// Register wires routes and middleware.
func Register(e *echo.Echo, cfg *config.Config, tokens *auth.JWTService, revoked auth.RevocationStore, h Handlers) {
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = NewValidator()

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	bearer := echojwt.WithConfig(echojwt.Config{
		ContextKey:     auth.ClaimsContextKey,
		ParseTokenFunc: appmiddleware.BearerParser(tokens, revoked),
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
				Error: "missing or invalid token",
				Code:  "UNAUTHORIZED",
			})
		},
	})

	var adminOnly []echo.MiddlewareFunc
	if cfg.RequireAdminAuth {
		adminOnly = []echo.MiddlewareFunc{bearer, appmiddleware.RequireRole(model.RoleAdministrator)}
	}

	api := e.Group("/api")

	users := api.Group("/users")
	users.POST("/login", h.Auth.Login)
	users.POST("/register", h.Auth.Register)
	users.POST("/logout", h.Auth.Logout, bearer)
	users.GET("/visitors", h.Users.ListVisitors, adminOnly...)
	users.GET("/admins", h.Users.ListAdmins, adminOnly...)
	users.DELETE("/visitor/:id", h.Users.DeleteVisitor, adminOnly...)

	h.Categories.Mount(api.Group("/product-categories"), adminOnly...)
	h.Discounts.Mount(api.Group("/product-discounts"), adminOnly...)
	h.Inventories.Mount(api.Group("/product-inventories"), adminOnly...)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator returns a validator that also understands decimal.Decimal fields.
func NewValidator() *CustomValidator {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return &CustomValidator{validator: v}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
