package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/mikemajesty/admin-api/internal/core/domain"
	"github.com/mikemajesty/admin-api/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users     map[string]*domain.User
	roles     *stubRoleRepo
	updates   int
	updateErr error
}

func newStubUserRepo(roles *stubRoleRepo) *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User), roles: roles}
}

func cloneUser(u *domain.User) *domain.User {
	clone := *u
	clone.Roles = append([]domain.Role(nil), u.Roles...)
	if u.Credential != nil {
		cred := *u.Credential
		clone.Credential = &cred
	}
	return &clone
}

// load mirrors the relation handling of the real repository: roles are read
// fresh from the role store and the credential is only returned on request.
func (r *stubUserRepo) load(u *domain.User, relations []domain.Relation) *domain.User {
	out := cloneUser(u)
	withRoles, withCred := false, false
	for _, rel := range relations {
		switch rel {
		case domain.RelationRoles:
			withRoles = true
		case domain.RelationCredential:
			withCred = true
		}
	}
	if withRoles && r.roles != nil {
		roles := make([]domain.Role, 0, len(out.Roles))
		for _, ref := range out.Roles {
			if role, ok := r.roles.roles[ref.ID]; ok && role.DeletedAt == nil {
				roles = append(roles, *cloneRole(role))
			}
		}
		out.Roles = roles
	}
	if !withCred {
		out.Credential = nil
	}
	return out
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) error {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return domain.ErrUserExists
		}
	}
	r.users[u.ID] = cloneUser(u)
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string, relations ...domain.Relation) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok || u.DeletedAt != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.load(u, relations), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string, relations ...domain.Relation) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email && u.DeletedAt == nil {
			return r.load(u, relations), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.users {
		if u.DeletedAt == nil {
			out = append(out, r.load(u, nil))
		}
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *domain.User) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	stored, ok := r.users[u.ID]
	if !ok {
		return domain.ErrUserNotFound
	}
	next := cloneUser(u)
	if next.Credential == nil {
		next.Credential = stored.Credential
	}
	r.users[u.ID] = next
	r.updates++
	return nil
}

func (r *stubUserRepo) SoftDelete(_ context.Context, id string, at time.Time) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.DeletedAt = &at
	return nil
}

// ---------------------------------------------------------------------------
// Roles
// ---------------------------------------------------------------------------

type stubRoleRepo struct {
	roles map[string]*domain.Role
	saves int
}

func newStubRoleRepo() *stubRoleRepo {
	return &stubRoleRepo{roles: make(map[string]*domain.Role)}
}

func cloneRole(r *domain.Role) *domain.Role {
	clone := *r
	clone.Permissions = append([]domain.Permission(nil), r.Permissions...)
	return &clone
}

func (r *stubRoleRepo) Create(_ context.Context, role *domain.Role) error {
	for _, existing := range r.roles {
		if existing.Name == role.Name && existing.DeletedAt == nil {
			return domain.ErrRoleExists
		}
	}
	r.roles[role.ID] = cloneRole(role)
	return nil
}

func (r *stubRoleRepo) FindByID(_ context.Context, id string) (*domain.Role, error) {
	role, ok := r.roles[id]
	if !ok || role.DeletedAt != nil {
		return nil, domain.ErrRoleNotFound
	}
	return cloneRole(role), nil
}

func (r *stubRoleRepo) FindByName(_ context.Context, name string) (*domain.Role, error) {
	for _, role := range r.roles {
		if role.Name == name && role.DeletedAt == nil {
			return cloneRole(role), nil
		}
	}
	return nil, domain.ErrRoleNotFound
}

func (r *stubRoleRepo) FindByNames(ctx context.Context, names []string) ([]*domain.Role, error) {
	var out []*domain.Role
	for _, name := range names {
		if role, err := r.FindByName(ctx, name); err == nil {
			out = append(out, role)
		}
	}
	return out, nil
}

func (r *stubRoleRepo) List(_ context.Context) ([]*domain.Role, error) {
	var out []*domain.Role
	for _, role := range r.roles {
		if role.DeletedAt == nil {
			out = append(out, cloneRole(role))
		}
	}
	return out, nil
}

func (r *stubRoleRepo) Save(_ context.Context, role *domain.Role) error {
	r.roles[role.ID] = cloneRole(role)
	r.saves++
	return nil
}

func (r *stubRoleRepo) SoftDelete(_ context.Context, id string, at time.Time) error {
	role, ok := r.roles[id]
	if !ok {
		return domain.ErrRoleNotFound
	}
	role.DeletedAt = &at
	return nil
}

func (r *stubRoleRepo) ExistsWithPermission(_ context.Context, name string) (bool, error) {
	for _, role := range r.roles {
		if role.DeletedAt == nil && role.HasPermission(name) {
			return true, nil
		}
	}
	return false, nil
}

// ---------------------------------------------------------------------------
// Permissions
// ---------------------------------------------------------------------------

type stubPermissionRepo struct {
	byName map[string]*domain.Permission
}

func newStubPermissionRepo() *stubPermissionRepo {
	return &stubPermissionRepo{byName: make(map[string]*domain.Permission)}
}

func (r *stubPermissionRepo) FindIn(_ context.Context, names []string) ([]*domain.Permission, error) {
	var out []*domain.Permission
	for _, n := range names {
		if p, ok := r.byName[n]; ok {
			clone := *p
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubPermissionRepo) Create(_ context.Context, p *domain.Permission) error {
	if _, ok := r.byName[p.Name]; ok {
		return domain.ErrPermissionExists
	}
	clone := *p
	r.byName[p.Name] = &clone
	return nil
}

func (r *stubPermissionRepo) FindByID(_ context.Context, id string) (*domain.Permission, error) {
	for _, p := range r.byName {
		if p.ID == id {
			clone := *p
			return &clone, nil
		}
	}
	return nil, domain.ErrPermissionNotFound
}

func (r *stubPermissionRepo) List(_ context.Context) ([]*domain.Permission, error) {
	var out []*domain.Permission
	for _, p := range r.byName {
		clone := *p
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubPermissionRepo) Delete(_ context.Context, id string) error {
	for name, p := range r.byName {
		if p.ID == id {
			delete(r.byName, name)
			return nil
		}
	}
	return domain.ErrPermissionNotFound
}

// ---------------------------------------------------------------------------
// Reset tokens
// ---------------------------------------------------------------------------

type stubResetTokenRepo struct {
	rows        map[string]*domain.ResetToken // keyed by user id
	lookups     int
	createCalls int
}

func newStubResetTokenRepo() *stubResetTokenRepo {
	return &stubResetTokenRepo{rows: make(map[string]*domain.ResetToken)}
}

func (r *stubResetTokenRepo) FindByUserID(_ context.Context, userID string) (*domain.ResetToken, error) {
	r.lookups++
	row, ok := r.rows[userID]
	if !ok {
		return nil, nil
	}
	clone := *row
	return &clone, nil
}

func (r *stubResetTokenRepo) Create(_ context.Context, t *domain.ResetToken) error {
	r.createCalls++
	if _, ok := r.rows[t.UserID]; ok {
		return domain.ErrResetTokenExists
	}
	clone := *t
	r.rows[t.UserID] = &clone
	return nil
}

func (r *stubResetTokenRepo) Remove(_ context.Context, id string) error {
	for userID, row := range r.rows {
		if row.ID == id {
			delete(r.rows, userID)
		}
	}
	return nil
}

func (r *stubResetTokenRepo) RemoveCreatedBefore(_ context.Context, t time.Time) (int64, error) {
	var n int64
	for userID, row := range r.rows {
		if row.CreatedAt.Before(t) {
			delete(r.rows, userID)
			n++
		}
	}
	return n, nil
}

// ---------------------------------------------------------------------------
// Tokens, hashing, notifications, transactions
// ---------------------------------------------------------------------------

// stubTokens issues opaque handles and keeps their claims in memory.
type stubTokens struct {
	mu     sync.Mutex
	seq    int
	issued map[string]ports.TokenClaims
	now    func() time.Time
}

func newStubTokens() *stubTokens {
	return &stubTokens{issued: make(map[string]ports.TokenClaims), now: time.Now}
}

func (s *stubTokens) Sign(p ports.TokenPayload, opts ...ports.SignOption) (string, error) {
	o := ports.SignOptions{ExpiresIn: time.Hour}
	for _, opt := range opts {
		opt(&o)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	token := fmt.Sprintf("token-%d", s.seq)
	now := s.now()
	s.issued[token] = ports.TokenClaims{
		TokenPayload: p,
		TokenID:      fmt.Sprintf("jti-%d", s.seq),
		IssuedAt:     now,
		ExpiresAt:    now.Add(o.ExpiresIn),
	}
	return token, nil
}

func (s *stubTokens) Verify(token string) (*ports.TokenClaims, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.issued[token]
	if !ok || !s.now().Before(c.ExpiresAt) {
		return nil, domain.ErrInvalidToken
	}
	return &c, nil
}

func (s *stubTokens) Decode(token string, _ bool) (*ports.DecodedToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.issued[token]
	if !ok {
		return nil, domain.ErrInvalidToken
	}
	return &ports.DecodedToken{Claims: c}, nil
}

type stubHasher struct{}

func (stubHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }

func (stubHasher) Compare(hash, plain string) error {
	if hash != "hashed:"+plain {
		return fmt.Errorf("mismatch")
	}
	return nil
}

type stubEmitter struct {
	sent []domain.Notification
}

func (e *stubEmitter) Emit(_ context.Context, n domain.Notification) {
	e.sent = append(e.sent, n)
}

type stubTransactor struct {
	calls int
}

func (t *stubTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

type stubRevocations struct {
	revoked map[string]time.Time
}

func newStubRevocations() *stubRevocations {
	return &stubRevocations{revoked: make(map[string]time.Time)}
}

func (r *stubRevocations) Revoke(_ context.Context, id string, until time.Time) error {
	r.revoked[id] = until
	return nil
}

func (r *stubRevocations) IsRevoked(_ context.Context, id string) (bool, error) {
	_, ok := r.revoked[id]
	return ok, nil
}

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

func seedRole(repo *stubRoleRepo, id, name string, perms ...string) *domain.Role {
	role := &domain.Role{ID: id, Name: name, Permissions: []domain.Permission{}}
	for i, p := range perms {
		role.Permissions = append(role.Permissions, domain.Permission{ID: fmt.Sprintf("%s-p%d", id, i), Name: p})
	}
	repo.roles[id] = role
	return cloneRole(role)
}

func seedUser(repo *stubUserRepo, id, email, password string, roles ...*domain.Role) *domain.User {
	u := &domain.User{
		ID:         id,
		Name:       "User " + id,
		Email:      email,
		Credential: &domain.Credential{ID: id, Password: "hashed:" + password},
	}
	for _, r := range roles {
		u.Roles = append(u.Roles, domain.Role{ID: r.ID, Name: r.Name})
	}
	repo.users[id] = u
	return cloneUser(u)
}
