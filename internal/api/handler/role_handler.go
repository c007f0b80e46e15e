package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mikemajesty/admin-api/internal/core/ports"
)

type RoleHandler struct {
	roleService ports.RoleService
}

func NewRoleHandler(roleService ports.RoleService) *RoleHandler {
	return &RoleHandler{roleService: roleService}
}

// Create registers a role with an empty permission set.
//
// @Summary      Create role
// @Tags         roles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      ports.CreateRoleInput  true  "Role"
// @Success      201   {object}  roleResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/v1/roles [post]
func (h *RoleHandler) Create(c echo.Context) error {
	var in ports.CreateRoleInput
	if err := bind(c, &in); err != nil {
		return err
	}
	if err := validate(c, &in); err != nil {
		return err
	}

	role, err := h.roleService.Create(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toRoleResponse(role))
}

// List returns every live role.
//
// @Summary      List roles
// @Tags         roles
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   roleResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/v1/roles [get]
func (h *RoleHandler) List(c echo.Context) error {
	roles, err := h.roleService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toRoleList(roles))
}

// Get returns one role with its permissions.
//
// @Summary      Get role
// @Tags         roles
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Role ID"
// @Success      200  {object}  roleResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/roles/{id} [get]
func (h *RoleHandler) Get(c echo.Context) error {
	role, err := h.roleService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toRoleResponse(role))
}

// Rename changes a role's name.
//
// @Summary      Rename role
// @Tags         roles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Role ID"
// @Param        body  body      ports.RenameRoleInput  true  "New name"
// @Success      200   {object}  roleResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/v1/roles/{id} [put]
func (h *RoleHandler) Rename(c echo.Context) error {
	var in ports.RenameRoleInput
	if err := bind(c, &in); err != nil {
		return err
	}
	in.ID = c.Param("id")
	if err := validate(c, &in); err != nil {
		return err
	}

	role, err := h.roleService.Rename(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toRoleResponse(role))
}

// Delete tombstones a role that no longer carries permissions.
//
// @Summary      Delete role
// @Tags         roles
// @Security     BearerAuth
// @Param        id   path  string  true  "Role ID"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /api/v1/roles/{id} [delete]
func (h *RoleHandler) Delete(c echo.Context) error {
	if err := h.roleService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// AddPermissions attaches permissions to a role. Names missing from the
// catalog are created; names the role already holds are ignored.
//
// @Summary      Add permissions to role
// @Tags         roles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                      true  "Role ID"
// @Param        body  body      ports.RolePermissionsInput  true  "Permission names"
// @Success      200   {object}  roleResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/v1/roles/{id}/add-permissions [put]
func (h *RoleHandler) AddPermissions(c echo.Context) error {
	in, err := h.permissionsInput(c)
	if err != nil {
		return err
	}

	role, err := h.roleService.AddPermissions(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toRoleResponse(role))
}

// RemovePermissions detaches permissions from a role. The catalog is untouched.
//
// @Summary      Remove permissions from role
// @Tags         roles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                      true  "Role ID"
// @Param        body  body      ports.RolePermissionsInput  true  "Permission names"
// @Success      200   {object}  roleResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/v1/roles/{id}/remove-permissions [put]
func (h *RoleHandler) RemovePermissions(c echo.Context) error {
	in, err := h.permissionsInput(c)
	if err != nil {
		return err
	}

	role, err := h.roleService.RemovePermissions(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toRoleResponse(role))
}

func (h *RoleHandler) permissionsInput(c echo.Context) (ports.RolePermissionsInput, error) {
	var in ports.RolePermissionsInput
	if err := bind(c, &in); err != nil {
		return in, err
	}
	in.RoleID = c.Param("id")
	return in, validate(c, &in)
}
