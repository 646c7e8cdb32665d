package admin

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	adminapp "github.com/rocketiq/careers/api/internal/admin/application"
	"github.com/rocketiq/careers/api/internal/interfaces/http/common"
)

func (h *Handler) applicationListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		limit, _ := common.ParsePositiveInt(query.Get("limit"), common.DefaultAdminPageSize)
		page, _ := common.ParsePositiveInt(query.Get("page"), 1)

		filter := adminapp.ApplicationFilter{
			JobSlug: strings.TrimSpace(query.Get("jobSlug")),
			Keyword: strings.TrimSpace(query.Get("keyword")),
		}
		paging := adminapp.Paging{Page: page, Limit: limit}

		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()

		summaries, err := h.applications.List(ctx, filter, paging)
		if err != nil {
			h.logger.Printf("admin application list fetch failed: %v", err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "failed to load applications"})
			return
		}

		items := make([]applicationSummaryResponse, 0, len(summaries))
		for _, summary := range summaries {
			items = append(items, h.toSummaryResponse(summary))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, applicationListResponse{Items: items, Page: page, Limit: limit})
	}
}

func (h *Handler) applicationDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idParam := strings.TrimSpace(chi.URLParam(r, "id"))
		if idParam == "" {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "application id is required"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()

		app, err := h.applications.Detail(ctx, idParam)
		if err != nil {
			if errors.Is(err, adminapp.ErrApplicationNotFound) {
				common.WriteJSON(h.logger, w, http.StatusNotFound, map[string]string{"error": "application not found"})
				return
			}
			h.logger.Printf("admin application detail fetch failed id=%s err=%v", idParam, err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "failed to load application"})
			return
		}

		if reviewer, ok := common.ReviewerFromContext(r.Context()); ok {
			h.logger.Printf("application %s viewed by %s", app.ID, reviewer.Subject)
		}
		common.WriteJSON(h.logger, w, http.StatusOK, h.toDetailResponse(*app))
	}
}
