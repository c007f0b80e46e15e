package handler

import (
	"time"

	"github.com/mikemajesty/admin-api/internal/core/domain"
)

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func toPermissionResponse(p *domain.Permission) permissionResponse {
	return permissionResponse{ID: p.ID, Name: p.Name, CreatedAt: formatTime(p.CreatedAt)}
}

func toPermissionList(list []*domain.Permission) []permissionResponse {
	out := make([]permissionResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toPermissionResponse(p))
	}
	return out
}

func toRoleResponse(r *domain.Role) roleResponse {
	return roleResponse{
		ID:          r.ID,
		Name:        r.Name,
		Permissions: r.PermissionNames(),
		CreatedAt:   formatTime(r.CreatedAt),
		UpdatedAt:   formatTime(r.UpdatedAt),
	}
}

func toRoleList(list []*domain.Role) []roleResponse {
	out := make([]roleResponse, 0, len(list))
	for _, r := range list {
		out = append(out, toRoleResponse(r))
	}
	return out
}

func toUserResponse(u *domain.User) userResponse {
	roles := make([]userRoleResponse, 0, len(u.Roles))
	for _, r := range u.Roles {
		roles = append(roles, userRoleResponse{ID: r.ID, Name: r.Name})
	}
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Roles:     roles,
		CreatedAt: formatTime(u.CreatedAt),
		UpdatedAt: formatTime(u.UpdatedAt),
	}
}

func toUserList(list []*domain.User) []userResponse {
	out := make([]userResponse, 0, len(list))
	for _, u := range list {
		out = append(out, toUserResponse(u))
	}
	return out
}
