package application

import (
	"context"
	"strings"

	admindomain "github.com/rocketiq/careers/api/internal/admin/domain"
	publicdomain "github.com/rocketiq/careers/api/internal/public/domain"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type applicationService struct {
	repo ApplicationRepository
}

func NewApplicationService(repo ApplicationRepository) ApplicationService {
	return &applicationService{repo: repo}
}

func (s *applicationService) List(ctx context.Context, filter ApplicationFilter, paging Paging) ([]admindomain.ApplicationSummary, error) {
	filter.JobSlug = strings.TrimSpace(filter.JobSlug)
	filter.Keyword = strings.TrimSpace(filter.Keyword)
	if paging.Limit <= 0 {
		paging.Limit = defaultPageSize
	}
	if paging.Limit > maxPageSize {
		paging.Limit = maxPageSize
	}
	if paging.Page < 1 {
		paging.Page = 1
	}

	apps, err := s.repo.Find(ctx, filter, paging)
	if err != nil {
		return nil, err
	}
	summaries := make([]admindomain.ApplicationSummary, 0, len(apps))
	for _, app := range apps {
		summaries = append(summaries, admindomain.SummarizeApplication(app))
	}
	return summaries, nil
}

func (s *applicationService) Detail(ctx context.Context, id string) (*publicdomain.Application, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrApplicationNotFound
	}
	return s.repo.FindByID(ctx, id)
}
