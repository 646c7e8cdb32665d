package mongo

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	adminapp "github.com/rocketiq/careers/api/internal/admin/application"
	"github.com/rocketiq/careers/api/internal/public/domain"
)

// ApplicationRepository stores and reads application records in MongoDB.
type ApplicationRepository struct {
	collection *mongo.Collection
}

// NewApplicationRepository binds the repository to the applications collection.
func NewApplicationRepository(db *mongo.Database, collection string) *ApplicationRepository {
	return &ApplicationRepository{collection: db.Collection(collection)}
}

// Create inserts app and assigns its ID.
func (r *ApplicationRepository) Create(ctx context.Context, app *domain.Application) error {
	if app == nil {
		return errors.New("application payload is nil")
	}
	doc := newApplicationDocument(app)
	doc.ID = primitive.NewObjectID()
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return err
	}
	app.ID = doc.ID.Hex()
	return nil
}

// Find filters by job slug and keyword and returns newest first.
func (r *ApplicationRepository) Find(ctx context.Context, filter adminapp.ApplicationFilter, paging adminapp.Paging) ([]domain.Application, error) {
	mongoFilter := bson.M{}
	if slug := strings.TrimSpace(filter.JobSlug); slug != "" {
		mongoFilter["job_slug"] = slug
	}
	if keyword := strings.TrimSpace(filter.Keyword); keyword != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(keyword), Options: "i"}
		mongoFilter["$or"] = bson.A{
			bson.M{"name": pattern},
			bson.M{"email": pattern},
			bson.M{"degree_name": pattern},
			bson.M{"motivation": pattern},
		}
	}

	findOpts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if paging.Limit > 0 {
		findOpts.SetLimit(int64(paging.Limit))
		if offset := paging.Offset(); offset > 0 {
			findOpts.SetSkip(int64(offset))
		}
	}

	cursor, err := r.collection.Find(ctx, mongoFilter, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	apps := make([]domain.Application, 0)
	for cursor.Next(ctx) {
		var doc ApplicationDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		apps = append(apps, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return apps, nil
}

// FindByID loads one record. A malformed id is reported as not found.
func (r *ApplicationRepository) FindByID(ctx context.Context, id string) (*domain.Application, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, adminapp.ErrApplicationNotFound
	}
	var doc ApplicationDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, adminapp.ErrApplicationNotFound
		}
		return nil, err
	}
	app := doc.toDomain()
	return &app, nil
}
