package domain

import (
	"time"

	publicdomain "github.com/rocketiq/careers/api/internal/public/domain"
)

// ApplicationSummary is the recruiter-facing list row for one application.
type ApplicationSummary struct {
	ID              string
	JobSlug         string
	Name            string
	Email           string
	Country         string
	Qualification   string
	AttachmentCount int
	CreatedAt       time.Time
}

// SummarizeApplication projects a stored application onto a list row.
func SummarizeApplication(app publicdomain.Application) ApplicationSummary {
	return ApplicationSummary{
		ID:              app.ID,
		JobSlug:         app.JobSlug,
		Name:            app.Applicant.Name,
		Email:           app.Applicant.Email,
		Country:         app.Applicant.Country,
		Qualification:   app.Qualification,
		AttachmentCount: len(app.Attachments),
		CreatedAt:       app.CreatedAt,
	}
}
