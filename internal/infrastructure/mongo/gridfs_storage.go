package mongo

import (
	"bytes"
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rocketiq/careers/api/internal/public/application"
)

// GridFSStorage stores attachments in a GridFS bucket.
// The storage path is used as the GridFS filename.
type GridFSStorage struct {
	db     *mongo.Database
	bucket string
}

func NewGridFSStorage(db *mongo.Database, bucket string) *GridFSStorage {
	return &GridFSStorage{db: db, bucket: bucket}
}

// FilesCollection is the GridFS metadata collection, indexed unique on filename by cmd/seed.
func (s *GridFSStorage) FilesCollection() string {
	return s.bucket + ".files"
}

func (s *GridFSStorage) Upload(ctx context.Context, object application.StorageObject) error {
	if object.NoOverwrite {
		count, err := s.db.Collection(s.FilesCollection()).CountDocuments(ctx, bson.M{"filename": object.Path})
		if err != nil {
			return fmt.Errorf("check %s: %w", object.Path, err)
		}
		if count > 0 {
			return fmt.Errorf("%w: %s", application.ErrObjectExists, object.Path)
		}
	}

	// Bucket deadlines are per instance, so every upload gets its own bucket.
	bucket, err := gridfs.NewBucket(s.db, options.GridFSBucket().SetName(s.bucket))
	if err != nil {
		return fmt.Errorf("open bucket %s: %w", s.bucket, err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		if err := bucket.SetWriteDeadline(deadline); err != nil {
			return err
		}
	}

	uploadOpts := options.GridFSUpload().SetMetadata(bson.M{"contentType": object.ContentType})
	if _, err := bucket.UploadFromStream(object.Path, bytes.NewReader(object.Body), uploadOpts); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s", application.ErrObjectExists, object.Path)
		}
		return fmt.Errorf("upload %s: %w", object.Path, err)
	}
	return nil
}
