package public

import (
	"log"

	"github.com/go-chi/chi/v5"

	"github.com/rocketiq/careers/api/internal/interfaces/http/common"
	publicapp "github.com/rocketiq/careers/api/internal/public/application"
)

// Handler wires public HTTP endpoints to application services.
type Handler struct {
	logger      *log.Logger
	submissions publicapp.SubmissionService
	postings    publicapp.PostingCatalog
	maxBody     int64
}

// Config defines dependencies required by Handler.
type Config struct {
	Logger      *log.Logger
	Submissions publicapp.SubmissionService
	Postings    publicapp.PostingCatalog
}

// NewHandler constructs a public HTTP handler set.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		logger:      cfg.Logger,
		submissions: cfg.Submissions,
		postings:    cfg.Postings,
		maxBody:     common.MaxApplyRequestBody,
	}
}

// Register mounts all public routes onto the router.
func (h *Handler) Register(r chi.Router) {
	r.With(h.recoverJSON).Post("/apply", h.applyHandler())
	r.Get("/postings", h.postingListHandler())
	r.Get("/postings/{slug}", h.postingDetailHandler())
}
