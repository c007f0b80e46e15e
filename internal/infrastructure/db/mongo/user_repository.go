package mongo

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mikemajesty/admin-api/internal/core/domain"
	"github.com/mikemajesty/admin-api/internal/core/ports"
)

type UserRepository struct {
	col   *mongo.Collection
	roles *RoleRepository
}

func NewUserRepository(db *mongo.Database, roles *RoleRepository) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers), roles: roles}
}

var _ ports.UserRepository = (*UserRepository)(nil)

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, toUserDoc(user)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string, relations ...domain.Relation) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id, "deleted": false}, relations)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string, relations ...domain.Relation) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email, "deleted": false}, relations)
}

// List returns live users with their roles; credentials are never included.
func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	findCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(findCtx, bson.M{"deleted": false},
		options.Find().
			SetSort(bson.D{{Key: "created_at", Value: 1}}).
			SetProjection(bson.M{"password_hash": 0}),
	)
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	var docs []userDoc
	if err := cur.All(findCtx, &docs); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}

	var roleIDs []string
	for _, d := range docs {
		for _, id := range d.RoleIDs {
			if !slices.Contains(roleIDs, id) {
				roleIDs = append(roleIDs, id)
			}
		}
	}
	roles, err := r.roles.findByIDs(ctx, roleIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*domain.Role, len(roles))
	for _, role := range roles {
		byID[role.ID] = role
	}

	out := make([]*domain.User, 0, len(docs))
	for _, d := range docs {
		u := d.toDomain(false)
		for _, id := range d.RoleIDs {
			if role, ok := byID[id]; ok {
				u.Roles = append(u.Roles, *role)
			}
		}
		out = append(out, u)
	}
	return out, nil
}

// Update replaces the profile and role references. The password hash is only
// written when a credential is attached.
func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{
		"name":       user.Name,
		"email":      user.Email,
		"role_ids":   user.RoleIDs(),
		"updated_at": user.UpdatedAt,
	}
	if user.Credential != nil {
		set["password_hash"] = user.Credential.Password
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": user.ID, "deleted": false}, bson.M{"$set": set})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) SoftDelete(ctx context.Context, id string, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "deleted": false},
		bson.M{"$set": bson.M{"deleted": true, "deleted_at": at, "updated_at": at}},
	)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M, relations []domain.Relation) (*domain.User, error) {
	withCredential := slices.Contains(relations, domain.RelationCredential)

	findCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOne()
	if !withCredential {
		opts.SetProjection(bson.M{"password_hash": 0})
	}

	var doc userDoc
	if err := r.col.FindOne(findCtx, filter, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	user := doc.toDomain(withCredential)
	if slices.Contains(relations, domain.RelationRoles) {
		roles, err := r.roles.findByIDs(ctx, doc.RoleIDs)
		if err != nil {
			return nil, err
		}
		for _, role := range roles {
			user.Roles = append(user.Roles, *role)
		}
	} else {
		for _, id := range doc.RoleIDs {
			user.Roles = append(user.Roles, domain.Role{ID: id})
		}
	}
	return user, nil
}
