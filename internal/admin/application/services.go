package application

import (
	"context"
	"errors"

	admindomain "github.com/rocketiq/careers/api/internal/admin/domain"
	publicdomain "github.com/rocketiq/careers/api/internal/public/domain"
)

// ErrApplicationNotFound is returned by repositories when no record matches an ID.
var ErrApplicationNotFound = errors.New("application not found")

// ApplicationRepository exposes recruiter reads on stored applications.
type ApplicationRepository interface {
	Find(ctx context.Context, filter ApplicationFilter, paging Paging) ([]publicdomain.Application, error)
	FindByID(ctx context.Context, id string) (*publicdomain.Application, error)
}

// ApplicationFilter expresses admin search criteria.
type ApplicationFilter struct {
	JobSlug string
	Keyword string
}

// Paging controls pagination.
type Paging struct {
	Page  int
	Limit int
}

// Offset returns the number of rows to skip for the current page.
func (p Paging) Offset() int {
	if p.Limit <= 0 || p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// ApplicationService describes recruiter use-cases.
type ApplicationService interface {
	List(ctx context.Context, filter ApplicationFilter, paging Paging) ([]admindomain.ApplicationSummary, error)
	Detail(ctx context.Context, id string) (*publicdomain.Application, error)
}
