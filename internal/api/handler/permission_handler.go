package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mikemajesty/admin-api/internal/core/ports"
)

type PermissionHandler struct {
	permissionService ports.PermissionService
}

func NewPermissionHandler(permissionService ports.PermissionService) *PermissionHandler {
	return &PermissionHandler{permissionService: permissionService}
}

// Create adds an entry to the permission catalog.
//
// @Summary      Create permission
// @Tags         permissions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      ports.CreatePermissionInput  true  "Permission"
// @Success      201   {object}  permissionResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/v1/permissions [post]
func (h *PermissionHandler) Create(c echo.Context) error {
	var in ports.CreatePermissionInput
	if err := bind(c, &in); err != nil {
		return err
	}
	if err := validate(c, &in); err != nil {
		return err
	}

	p, err := h.permissionService.Create(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toPermissionResponse(p))
}

// List returns the whole catalog.
//
// @Summary      List permissions
// @Tags         permissions
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  permissionResponse
// @Router       /api/v1/permissions [get]
func (h *PermissionHandler) List(c echo.Context) error {
	list, err := h.permissionService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPermissionList(list))
}

// @Summary      Get permission
// @Tags         permissions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Permission ID"
// @Success      200  {object}  permissionResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/permissions/{id} [get]
func (h *PermissionHandler) Get(c echo.Context) error {
	p, err := h.permissionService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPermissionResponse(p))
}

// Delete removes a catalog entry no live role references.
//
// @Summary      Delete permission
// @Tags         permissions
// @Security     BearerAuth
// @Param        id   path  string  true  "Permission ID"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /api/v1/permissions/{id} [delete]
func (h *PermissionHandler) Delete(c echo.Context) error {
	if err := h.permissionService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
