package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "shopadmin/internal/errors"
	"shopadmin/internal/service"
)

// UserHandler serves user administration endpoints.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// ListVisitors godoc
// @Summary List visitors
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} service.UserSummary
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/visitors [get]
func (h *UserHandler) ListVisitors(c echo.Context) error {
	users, err := h.svc.ListVisitors(c.Request().Context())
	if err != nil {
		return listError(err, "No visitors found")
	}
	return c.JSON(http.StatusOK, users)
}

// ListAdmins godoc
// @Summary List administrators
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} service.UserSummary
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/admins [get]
func (h *UserHandler) ListAdmins(c echo.Context) error {
	users, err := h.svc.ListAdmins(c.Request().Context())
	if err != nil {
		return listError(err, "No administrators found")
	}
	return c.JSON(http.StatusOK, users)
}

// DeleteVisitor godoc
// @Summary Delete a visitor and its role links
// @Tags users
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 204
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users/visitor/{id} [delete]
func (h *UserHandler) DeleteVisitor(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.svc.DeleteVisitor(c.Request().Context(), id); err != nil {
		if !apperrors.IsDomain(err) {
			return echo.NewHTTPError(http.StatusInternalServerError, apperrors.ErrorResponse{
				Error: "an error occurred while deleting the visitor",
				Code:  "INTERNAL_ERROR",
			})
		}
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func listError(err error, emptyMessage string) *echo.HTTPError {
	if errors.Is(err, apperrors.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, apperrors.ErrorResponse{
			Error: emptyMessage,
			Code:  "NOT_FOUND",
		})
	}
	return httpError(err)
}
