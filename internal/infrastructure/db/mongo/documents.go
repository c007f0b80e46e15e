package mongo

import (
	"time"

	"github.com/mikemajesty/admin-api/internal/core/domain"
)

type permissionDoc struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	CreatedAt time.Time `bson:"created_at"`
}

type roleDoc struct {
	ID          string          `bson:"_id"`
	Name        string          `bson:"name"`
	Permissions []permissionDoc `bson:"permissions"`
	CreatedAt   time.Time       `bson:"created_at"`
	UpdatedAt   time.Time       `bson:"updated_at"`
	DeletedAt   *time.Time      `bson:"deleted_at,omitempty"`
	Deleted     bool            `bson:"deleted"`
}

// userDoc references roles by id; roles are resolved on read so permission
// changes are visible without touching user documents.
type userDoc struct {
	ID           string     `bson:"_id"`
	Name         string     `bson:"name"`
	Email        string     `bson:"email"`
	RoleIDs      []string   `bson:"role_ids"`
	PasswordHash string     `bson:"password_hash,omitempty"`
	CreatedAt    time.Time  `bson:"created_at"`
	UpdatedAt    time.Time  `bson:"updated_at"`
	DeletedAt    *time.Time `bson:"deleted_at,omitempty"`
	Deleted      bool       `bson:"deleted"`
}

type resetTokenDoc struct {
	ID        string    `bson:"_id"`
	Token     string    `bson:"token"`
	UserID    string    `bson:"user_id"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func toPermissionDoc(p domain.Permission) permissionDoc {
	return permissionDoc{ID: p.ID, Name: p.Name, CreatedAt: p.CreatedAt}
}

func (d permissionDoc) toDomain() domain.Permission {
	return domain.Permission{ID: d.ID, Name: d.Name, CreatedAt: d.CreatedAt}
}

func toRoleDoc(r *domain.Role) roleDoc {
	perms := make([]permissionDoc, 0, len(r.Permissions))
	for _, p := range r.Permissions {
		perms = append(perms, toPermissionDoc(p))
	}
	return roleDoc{
		ID:          r.ID,
		Name:        r.Name,
		Permissions: perms,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
		DeletedAt:   r.DeletedAt,
		Deleted:     r.DeletedAt != nil,
	}
}

func (d roleDoc) toDomain() *domain.Role {
	perms := make([]domain.Permission, 0, len(d.Permissions))
	for _, p := range d.Permissions {
		perms = append(perms, p.toDomain())
	}
	return &domain.Role{
		ID:          d.ID,
		Name:        d.Name,
		Permissions: perms,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
		DeletedAt:   d.DeletedAt,
	}
}

func toUserDoc(u *domain.User) userDoc {
	doc := userDoc{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		RoleIDs:   u.RoleIDs(),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
		DeletedAt: u.DeletedAt,
		Deleted:   u.DeletedAt != nil,
	}
	if u.Credential != nil {
		doc.PasswordHash = u.Credential.Password
	}
	return doc
}

// toDomain maps the document without roles; the credential is attached only
// when withCredential is set.
func (d userDoc) toDomain(withCredential bool) *domain.User {
	u := &domain.User{
		ID:        d.ID,
		Name:      d.Name,
		Email:     d.Email,
		Roles:     []domain.Role{},
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
		DeletedAt: d.DeletedAt,
	}
	if withCredential && d.PasswordHash != "" {
		u.Credential = &domain.Credential{ID: d.ID, Password: d.PasswordHash}
	}
	return u
}

func toResetTokenDoc(t *domain.ResetToken) resetTokenDoc {
	return resetTokenDoc{ID: t.ID, Token: t.Token, UserID: t.UserID, CreatedAt: t.CreatedAt, UpdatedAt: t.UpdatedAt}
}

func (d resetTokenDoc) toDomain() *domain.ResetToken {
	return &domain.ResetToken{ID: d.ID, Token: d.Token, UserID: d.UserID, CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt}
}
