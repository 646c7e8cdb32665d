package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/rocketiq/careers/api/internal/public/application"
)

// OrphanStatusPending marks ledger entries that have not been reconciled yet.
const OrphanStatusPending = "pending"

// OrphanRepository writes the orphaned attachment ledger.
type OrphanRepository struct {
	collection *mongo.Collection
}

func NewOrphanRepository(db *mongo.Database, collection string) *OrphanRepository {
	return &OrphanRepository{collection: db.Collection(collection)}
}

func (r *OrphanRepository) Record(ctx context.Context, orphans application.OrphanedAttachments) error {
	_, err := r.collection.InsertOne(ctx, OrphanedAttachmentDocument{
		ID:        primitive.NewObjectID(),
		JobSlug:   orphans.JobSlug,
		Email:     orphans.Email,
		Paths:     orphans.Paths,
		Cause:     orphans.Cause,
		Status:    OrphanStatusPending,
		CreatedAt: orphans.CreatedAt,
	})
	return err
}
