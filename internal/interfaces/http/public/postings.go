package public

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketiq/careers/api/internal/interfaces/http/common"
	"github.com/rocketiq/careers/api/internal/public/domain"
)

func (h *Handler) postingListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		listed := h.postings.Listed()
		items := make([]postingSummaryResponse, 0, len(listed))
		for _, posting := range listed {
			items = append(items, toPostingSummary(posting))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, postingListResponse{Items: items})
	}
}

func (h *Handler) postingDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		posting, ok := h.postings.Get(chi.URLParam(r, "slug"))
		if !ok {
			common.WriteJSON(h.logger, w, http.StatusNotFound, map[string]string{"error": "posting not found"})
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, toPostingDetail(posting))
	}
}

func toPostingSummary(p domain.Posting) postingSummaryResponse {
	return postingSummaryResponse{Slug: p.Slug, Title: p.Title, Blurb: p.Blurb, Meta: p.Meta}
}

func toPostingDetail(p domain.Posting) postingDetailResponse {
	required := []string{domain.FieldJobSlug, domain.FieldName, domain.FieldEmail}
	for _, field := range domain.OptionalRequiredFields {
		if p.Requires(field) {
			required = append(required, field)
		}
	}

	slots := make([]postingSlotResponse, 0, len(p.Slots))
	for _, slot := range domain.SlotOrder {
		req, ok := p.Slot(slot)
		if !ok {
			continue
		}
		slots = append(slots, postingSlotResponse{
			Name:     string(slot),
			Label:    slot.Label(),
			Required: req.Required,
			MaxBytes: domain.MaxAttachmentBytes,
			Accept:   domain.PDFContentType,
		})
	}

	return postingDetailResponse{
		postingSummaryResponse: toPostingSummary(p),
		RequiredFields:         required,
		Attachments:            slots,
		QualificationOptions:   p.QualificationOptions,
		HeardFromOptions:       p.HeardFromOptions,
		MotivationFields:       p.MotivationSources(),
		CustomFields:           p.CustomFields,
		MaxExperienceRows:      domain.MaxExperienceRows,
	}
}
