package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"shopadmin/internal/model"
	"shopadmin/internal/service"
)

// CatalogRoutes names the per-entity paths under the entity's group.
// Paths keep the casing existing clients already call.
type CatalogRoutes struct {
	List    string
	Details string
	Create  string
	Update  string
	Delete  string
}

// catalogEndpoints is the handler set mounted for one catalog entity.
type catalogEndpoints interface {
	List(c echo.Context) error
	Get(c echo.Context) error
	Create(c echo.Context) error
	Update(c echo.Context) error
	Delete(c echo.Context) error
}

// mountCatalog registers h on g. Reads are public; writes run behind guard.
func mountCatalog(g *echo.Group, routes CatalogRoutes, h catalogEndpoints, guard ...echo.MiddlewareFunc) {
	g.GET(routes.List, h.List)
	g.GET(routes.Details, h.Get)
	g.POST(routes.Create, h.Create, guard...)
	g.PUT(routes.Update, h.Update, guard...)
	g.DELETE(routes.Delete, h.Delete, guard...)
}

// CatalogHandler implements the CRUD endpoints shared by every catalog entity.
type CatalogHandler[T any, P model.CatalogEntity[T]] struct {
	svc *service.CatalogService[T, P]
}

// NewCatalogHandler creates a catalog handler over svc.
func NewCatalogHandler[T any, P model.CatalogEntity[T]](svc *service.CatalogService[T, P]) *CatalogHandler[T, P] {
	return &CatalogHandler[T, P]{svc: svc}
}

func (h *CatalogHandler[T, P]) List(c echo.Context) error {
	items, err := h.svc.List(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CatalogHandler[T, P]) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	item, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, item)
}

func (h *CatalogHandler[T, P]) Create(c echo.Context) error {
	item, err := h.bind(c)
	if err != nil {
		return err
	}
	created, err := h.svc.Create(c.Request().Context(), item)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, created)
}

// Update replaces the editable fields. The body id must equal the path id.
func (h *CatalogHandler[T, P]) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	item, err := h.bind(c)
	if err != nil {
		return err
	}
	if err := h.svc.Update(c.Request().Context(), id, item); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CatalogHandler[T, P]) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CatalogHandler[T, P]) bind(c echo.Context) (*T, error) {
	item := new(T)
	if err := (&echo.DefaultBinder{}).BindBody(c, item); err != nil {
		return nil, badRequest("invalid request body")
	}
	if err := c.Validate(item); err != nil {
		return nil, badRequest(err.Error())
	}
	return item, nil
}
