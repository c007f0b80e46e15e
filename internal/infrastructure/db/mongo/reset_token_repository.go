package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mikemajesty/admin-api/internal/core/domain"
	"github.com/mikemajesty/admin-api/internal/core/ports"
)

// ResetTokenRepository keeps at most one row per user, enforced by the unique
// user_id index.
type ResetTokenRepository struct {
	col *mongo.Collection
}

func NewResetTokenRepository(db *mongo.Database) *ResetTokenRepository {
	return &ResetTokenRepository{col: db.Collection(collectionResetTokens)}
}

var _ ports.ResetTokenRepository = (*ResetTokenRepository)(nil)

func (r *ResetTokenRepository) FindByUserID(ctx context.Context, userID string) (*domain.ResetToken, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc resetTokenDoc
	if err := r.col.FindOne(ctx, bson.M{"user_id": userID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find reset token: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ResetTokenRepository) Create(ctx context.Context, t *domain.ResetToken) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, toResetTokenDoc(t)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrResetTokenExists
		}
		return fmt.Errorf("insert reset token: %w", err)
	}
	return nil
}

func (r *ResetTokenRepository) Remove(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete reset token: %w", err)
	}
	return nil
}

func (r *ResetTokenRepository) RemoveCreatedBefore(ctx context.Context, t time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteMany(ctx, bson.M{"created_at": bson.M{"$lt": t}})
	if err != nil {
		return 0, fmt.Errorf("delete expired reset tokens: %w", err)
	}
	return res.DeletedCount, nil
}
