package application

import (
	"fmt"
	"strings"

	"github.com/rocketiq/careers/api/internal/public/domain"
)

const customFieldPrefix = "custom_"

var trackingFields = []string{"utm_source", "utm_medium", "utm_campaign", "utm_term", "utm_content"}

type formValues map[string]string

func (f formValues) get(key string) string {
	return strings.TrimSpace(f[key])
}

func buildApplication(posting domain.Posting, form formValues) *domain.Application {
	jobSlug := form.get(domain.FieldJobSlug)
	return &domain.Application{
		JobSlug: jobSlug,
		Applicant: domain.Applicant{
			Name:     form.get(domain.FieldName),
			Email:    form.get(domain.FieldEmail),
			Age:      domain.ParseAge(form.get(domain.FieldAge)),
			Country:  form.get(domain.FieldCountry),
			State:    form.get(domain.FieldState),
			WhatsApp: form.get(domain.FieldWhatsApp),
		},
		Qualification:      form.get(domain.FieldQualification),
		QualificationOther: form.get(domain.FieldQualificationOther),
		DegreeName:         form.get(domain.FieldDegreeName),
		HeardFrom:          form.get(domain.FieldHeardFrom),
		HeardFromOther:     form.get(domain.FieldHeardFromOther),
		Motivation:         resolveMotivation(posting, form),
		Consent:            form.get(domain.FieldConsent) != "",
		CustomAnswers:      customAnswers(posting, form),
	}
}

// resolveMotivation walks the posting's motivation field chain and falls back
// to the configured placeholder.
func resolveMotivation(posting domain.Posting, form formValues) string {
	for _, field := range posting.MotivationSources() {
		if value := form.get(field); value != "" {
			return value
		}
	}
	return strings.TrimSpace(posting.MotivationPlaceholder)
}

func customAnswers(posting domain.Posting, form formValues) map[string]string {
	answers := make(map[string]string)
	for key := range form {
		if name, ok := strings.CutPrefix(key, customFieldPrefix); ok && name != "" {
			if value := form.get(key); value != "" {
				answers[name] = value
			}
		}
	}
	for _, key := range posting.CustomFields {
		if value := form.get(key); value != "" {
			answers[key] = value
		}
	}
	for _, key := range trackingFields {
		if value := form.get(key); value != "" {
			answers[key] = value
		}
	}
	return answers
}

func missingFields(posting domain.Posting, app *domain.Application) []string {
	present := map[string]bool{
		domain.FieldJobSlug:       app.JobSlug != "",
		domain.FieldName:          app.Applicant.Name != "",
		domain.FieldEmail:         app.Applicant.Email != "",
		domain.FieldAge:           app.Applicant.Age != nil,
		domain.FieldCountry:       app.Applicant.Country != "",
		domain.FieldState:         app.Applicant.State != "",
		domain.FieldWhatsApp:      app.Applicant.WhatsApp != "",
		domain.FieldQualification: app.Qualification != "",
		domain.FieldDegreeName:    app.DegreeName != "",
		domain.FieldHeardFrom:     app.HeardFrom != "",
		domain.FieldMotivation:    app.Motivation != "",
		domain.FieldConsent:       app.Consent,
	}

	fields := append([]string{domain.FieldJobSlug, domain.FieldName, domain.FieldEmail}, domain.OptionalRequiredFields...)
	var missing []string
	for _, field := range fields {
		if posting.Requires(field) && !present[field] {
			missing = append(missing, field)
		}
	}
	return missing
}

func checkOtherSpecified(app *domain.Application) error {
	if app.Qualification == domain.OtherOption && app.QualificationOther == "" {
		return validationFailure("Please specify your qualification in the “If Other, specify” field.")
	}
	if app.HeardFrom == domain.OtherOption && app.HeardFromOther == "" {
		return validationFailure("Please specify how you heard about this role in the “If Other, specify” field.")
	}
	return nil
}

// collectAttachments validates the posting's slots in declaration order and
// returns the files to upload. Only the first failure is reported.
func collectAttachments(posting domain.Posting, files map[domain.Slot]*domain.FileUpload) ([]pendingUpload, error) {
	var pending []pendingUpload
	for _, slot := range domain.SlotOrder {
		req, ok := posting.Slot(slot)
		if !ok {
			continue
		}
		file := files[slot]
		if err := domain.ValidateAttachment(slot, file, req.Required); err != nil {
			return nil, validationFailure(err.Error())
		}
		if file != nil {
			pending = append(pending, pendingUpload{slot: slot, file: file})
		}
	}
	return pending, nil
}

func experienceRows(form formValues) []domain.Experience {
	rows := make([]domain.Experience, 0, domain.MaxExperienceRows)
	for i := 1; i <= domain.MaxExperienceRows; i++ {
		prefix := fmt.Sprintf("exp%d_", i)
		rows = append(rows, domain.Experience{
			Role:         form[prefix+"role"],
			Organization: form[prefix+"org"],
			Dates:        form[prefix+"dates"],
			Summary:      form[prefix+"summary"],
		})
	}
	return rows
}
