package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/rocketiq/careers/api/internal/public/application"
)

// OrphanRepository writes the orphaned_attachments ledger.
type OrphanRepository struct {
	pool *pgxpool.Pool
}

func NewOrphanRepository(pool *pgxpool.Pool) *OrphanRepository {
	return &OrphanRepository{pool: pool}
}

func (r *OrphanRepository) Record(ctx context.Context, orphans application.OrphanedAttachments) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO orphaned_attachments (id, job_slug, email, paths, cause, status, created_at)
		VALUES ($1,$2,$3,$4,$5,'pending',$6)`,
		uuid.New(), orphans.JobSlug, orphans.Email, orphans.Paths, orphans.Cause, orphans.CreatedAt)
	return err
}
