package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// IndexTargets names the collections EnsureIndexes works on.
type IndexTargets struct {
	Applications string
	Orphans      string
	GridFSBucket string
}

// EnsureIndexes creates the listing indexes and the unique GridFS filename index.
func EnsureIndexes(ctx context.Context, db *mongo.Database, targets IndexTargets) error {
	plan := map[string][]mongo.IndexModel{}
	if targets.Applications != "" {
		plan[targets.Applications] = []mongo.IndexModel{
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "job_slug", Value: 1}, {Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "email", Value: 1}}},
		}
	}
	if targets.Orphans != "" {
		plan[targets.Orphans] = []mongo.IndexModel{
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: 1}}},
		}
	}
	if targets.GridFSBucket != "" {
		plan[targets.GridFSBucket+".files"] = []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "filename", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("filename_unique"),
			},
		}
	}

	for collection, models := range plan {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", collection, err)
		}
	}
	return nil
}
