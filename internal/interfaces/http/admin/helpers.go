package admin

import (
	admindomain "github.com/rocketiq/careers/api/internal/admin/domain"
	publicdomain "github.com/rocketiq/careers/api/internal/public/domain"
)

// toSummaryResponse converts a list row and shifts CreatedAt into the display zone.
func (h *Handler) toSummaryResponse(summary admindomain.ApplicationSummary) applicationSummaryResponse {
	return applicationSummaryResponse{
		ID:              summary.ID,
		JobSlug:         summary.JobSlug,
		Name:            summary.Name,
		Email:           summary.Email,
		Country:         summary.Country,
		Qualification:   summary.Qualification,
		AttachmentCount: summary.AttachmentCount,
		CreatedAt:       summary.CreatedAt.In(h.location),
	}
}

func (h *Handler) toDetailResponse(app publicdomain.Application) applicationDetailResponse {
	experiences := make([]experienceResponse, 0, len(app.Experiences))
	for _, exp := range app.Experiences {
		experiences = append(experiences, experienceResponse{
			Role:         exp.Role,
			Organization: exp.Organization,
			Dates:        exp.Dates,
			Summary:      exp.Summary,
		})
	}
	attachments := make([]attachmentResponse, 0, len(app.Attachments))
	for _, att := range app.Attachments {
		attachments = append(attachments, attachmentResponse{
			Slot:        string(att.Slot),
			Label:       att.Slot.Label(),
			Path:        att.Path,
			Size:        att.Size,
			ContentType: att.ContentType,
		})
	}

	return applicationDetailResponse{
		ID:                 app.ID,
		JobSlug:            app.JobSlug,
		Name:               app.Applicant.Name,
		Email:              app.Applicant.Email,
		Age:                app.Applicant.Age,
		Country:            app.Applicant.Country,
		State:              app.Applicant.State,
		WhatsApp:           app.Applicant.WhatsApp,
		Qualification:      app.Qualification,
		QualificationOther: app.QualificationOther,
		DegreeName:         app.DegreeName,
		HeardFrom:          app.HeardFrom,
		HeardFromOther:     app.HeardFromOther,
		Motivation:         app.Motivation,
		Consent:            app.Consent,
		Experiences:        experiences,
		Attachments:        attachments,
		CustomAnswers:      app.CustomAnswers,
		SourceIP:           app.SourceIP,
		CreatedAt:          app.CreatedAt.In(h.location),
	}
}
