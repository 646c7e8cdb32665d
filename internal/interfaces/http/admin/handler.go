package admin

import (
	"log"
	"time"

	"github.com/go-chi/chi/v5"

	adminapp "github.com/rocketiq/careers/api/internal/admin/application"
)

// Handler wires admin HTTP endpoints to application services.
type Handler struct {
	logger       *log.Logger
	applications adminapp.ApplicationService
	location     *time.Location
	timeout      time.Duration
}

// Config provides dependencies for Handler.
type Config struct {
	Logger       *log.Logger
	Applications adminapp.ApplicationService
	Location     *time.Location
	Timeout      time.Duration
}

// NewHandler constructs an admin HTTP handler set.
func NewHandler(cfg Config) *Handler {
	h := &Handler{
		logger:       cfg.Logger,
		applications: cfg.Applications,
		location:     cfg.Location,
		timeout:      cfg.Timeout,
	}
	if h.logger == nil {
		h.logger = log.Default()
	}
	if h.location == nil {
		h.location = time.UTC
	}
	if h.timeout <= 0 {
		h.timeout = 5 * time.Second
	}
	return h
}

// Register mounts admin routes onto router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/applications", h.applicationListHandler())
	r.Get("/applications/{id}", h.applicationDetailHandler())
}
