package handler

import (
	"github.com/labstack/echo/v4"

	"shopadmin/internal/model"
	"shopadmin/internal/service"
)

var (
	CategoryRoutes = CatalogRoutes{
		List:    "/list",
		Details: "/details/:id",
		Create:  "/create",
		Update:  "/update/:id",
		Delete:  "/delete/:id",
	}
	DiscountRoutes = CatalogRoutes{
		List:    "/list-discount",
		Details: "/Discount/:id",
		Create:  "/Add-discount",
		Update:  "/update/:id",
		Delete:  "/delete/:id",
	}
	InventoryRoutes = CatalogRoutes{
		List:    "/inventory-list",
		Details: "/inventory-details/:id",
		Create:  "/create-inventory",
		Update:  "/update-inventory/:id",
		Delete:  "/delete-inventory/:id",
	}
)

// CategoryHandler serves /product-categories.
type CategoryHandler struct {
	*CatalogHandler[model.ProductCategory, *model.ProductCategory]
}

// NewCategoryHandler creates a category handler.
func NewCategoryHandler(svc *service.CatalogService[model.ProductCategory, *model.ProductCategory]) *CategoryHandler {
	return &CategoryHandler{NewCatalogHandler(svc)}
}

// Mount registers the category routes on g.
func (h *CategoryHandler) Mount(g *echo.Group, guard ...echo.MiddlewareFunc) {
	mountCatalog(g, CategoryRoutes, h, guard...)
}

// List godoc
// @Summary List live records
// @Tags product-categories
// @Produce json
// @Success 200 {array} model.ProductCategory
// @Failure 500 {object} errors.ErrorResponse
// @Router /product-categories/list [get]
func (h *CategoryHandler) List(c echo.Context) error { return h.CatalogHandler.List(c) }

// Get godoc
// @Summary Get a record by id
// @Tags product-categories
// @Produce json
// @Param id path int true "ID"
// @Success 200 {object} model.ProductCategory
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /product-categories/details/{id} [get]
func (h *CategoryHandler) Get(c echo.Context) error { return h.CatalogHandler.Get(c) }

// Create godoc
// @Summary Create a record
// @Tags product-categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.ProductCategory true "Record"
// @Success 201 {object} model.ProductCategory
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /product-categories/create [post]
func (h *CategoryHandler) Create(c echo.Context) error { return h.CatalogHandler.Create(c) }

// Update godoc
// @Summary Update a record
// @Tags product-categories
// @Accept json
// @Security BearerAuth
// @Param id path int true "ID"
// @Param request body model.ProductCategory true "Record"
// @Success 204
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /product-categories/update/{id} [put]
func (h *CategoryHandler) Update(c echo.Context) error { return h.CatalogHandler.Update(c) }

// Delete godoc
// @Summary Soft-delete a record
// @Tags product-categories
// @Security BearerAuth
// @Param id path int true "ID"
// @Success 204
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /product-categories/delete/{id} [delete]
func (h *CategoryHandler) Delete(c echo.Context) error { return h.CatalogHandler.Delete(c) }

// DiscountHandler serves /product-discounts.
type DiscountHandler struct {
	*CatalogHandler[model.ProductDiscount, *model.ProductDiscount]
}

// NewDiscountHandler creates a discount handler.
func NewDiscountHandler(svc *service.CatalogService[model.ProductDiscount, *model.ProductDiscount]) *DiscountHandler {
	return &DiscountHandler{NewCatalogHandler(svc)}
}

// Mount registers the discount routes on g.
func (h *DiscountHandler) Mount(g *echo.Group, guard ...echo.MiddlewareFunc) {
	mountCatalog(g, DiscountRoutes, h, guard...)
}

// List godoc
// @Summary List live records
// @Tags product-discounts
// @Produce json
// @Success 200 {array} model.ProductDiscount
// @Failure 500 {object} errors.ErrorResponse
// @Router /product-discounts/list-discount [get]
func (h *DiscountHandler) List(c echo.Context) error { return h.CatalogHandler.List(c) }

// Get godoc
// @Summary Get a record by id
// @Tags product-discounts
// @Produce json
// @Param id path int true "ID"
// @Success 200 {object} model.ProductDiscount
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /product-discounts/Discount/{id} [get]
func (h *DiscountHandler) Get(c echo.Context) error { return h.CatalogHandler.Get(c) }

// Create godoc
// @Summary Create a record
// @Tags product-discounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.ProductDiscount true "Record"
// @Success 201 {object} model.ProductDiscount
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /product-discounts/Add-discount [post]
func (h *DiscountHandler) Create(c echo.Context) error { return h.CatalogHandler.Create(c) }

// Update godoc
// @Summary Update a record
// @Tags product-discounts
// @Accept json
// @Security BearerAuth
// @Param id path int true "ID"
// @Param request body model.ProductDiscount true "Record"
// @Success 204
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /product-discounts/update/{id} [put]
func (h *DiscountHandler) Update(c echo.Context) error { return h.CatalogHandler.Update(c) }

// Delete godoc
// @Summary Soft-delete a record
// @Tags product-discounts
// @Security BearerAuth
// @Param id path int true "ID"
// @Success 204
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /product-discounts/delete/{id} [delete]
func (h *DiscountHandler) Delete(c echo.Context) error { return h.CatalogHandler.Delete(c) }

// InventoryHandler serves /product-inventories.
type InventoryHandler struct {
	*CatalogHandler[model.ProductInventory, *model.ProductInventory]
}

// NewInventoryHandler creates an inventory handler.
func NewInventoryHandler(svc *service.CatalogService[model.ProductInventory, *model.ProductInventory]) *InventoryHandler {
	return &InventoryHandler{NewCatalogHandler(svc)}
}

// Mount registers the inventory routes on g.
func (h *InventoryHandler) Mount(g *echo.Group, guard ...echo.MiddlewareFunc) {
	mountCatalog(g, InventoryRoutes, h, guard...)
}

// List godoc
// @Summary List live records
// @Tags product-inventories
// @Produce json
// @Success 200 {array} model.ProductInventory
// @Failure 500 {object} errors.ErrorResponse
// @Router /product-inventories/inventory-list [get]
func (h *InventoryHandler) List(c echo.Context) error { return h.CatalogHandler.List(c) }

// Get godoc
// @Summary Get a record by id
// @Tags product-inventories
// @Produce json
// @Param id path int true "ID"
// @Success 200 {object} model.ProductInventory
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /product-inventories/inventory-details/{id} [get]
func (h *InventoryHandler) Get(c echo.Context) error { return h.CatalogHandler.Get(c) }

// Create godoc
// @Summary Create a record
// @Tags product-inventories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.ProductInventory true "Record"
// @Success 201 {object} model.ProductInventory
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /product-inventories/create-inventory [post]
func (h *InventoryHandler) Create(c echo.Context) error { return h.CatalogHandler.Create(c) }

// Update godoc
// @Summary Update a record
// @Tags product-inventories
// @Accept json
// @Security BearerAuth
// @Param id path int true "ID"
// @Param request body model.ProductInventory true "Record"
// @Success 204
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /product-inventories/update-inventory/{id} [put]
func (h *InventoryHandler) Update(c echo.Context) error { return h.CatalogHandler.Update(c) }

// Delete godoc
// @Summary Soft-delete a record
// @Tags product-inventories
// @Security BearerAuth
// @Param id path int true "ID"
// @Success 204
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /product-inventories/delete-inventory/{id} [delete]
func (h *InventoryHandler) Delete(c echo.Context) error { return h.CatalogHandler.Delete(c) }
