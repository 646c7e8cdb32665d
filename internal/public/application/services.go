package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rocketiq/careers/api/internal/public/domain"
)

// HumanVerifier checks a challenge token with the bot-mitigation provider.
type HumanVerifier interface {
	Verify(ctx context.Context, secret, token, remoteIP string) (bool, error)
}

// StorageObject is one blob handed to ObjectStorage.
type StorageObject struct {
	Path        string
	Body        []byte
	ContentType string
	NoOverwrite bool
}

// ErrObjectExists is returned by ObjectStorage when NoOverwrite would be violated.
var ErrObjectExists = errors.New("storage object already exists")

// ObjectStorage persists attachment blobs. Upload must fail rather than replace
// an existing object when NoOverwrite is set.
type ObjectStorage interface {
	Upload(ctx context.Context, object StorageObject) error
}

// ApplicationRepository writes application records.
type ApplicationRepository interface {
	Create(ctx context.Context, application *domain.Application) error
}

// OrphanedAttachments describes uploads left without a record.
type OrphanedAttachments struct {
	JobSlug   string
	Email     string
	Paths     []string
	Cause     string
	CreatedAt time.Time
}

// OrphanLedger keeps track of orphaned uploads for later reconciliation.
type OrphanLedger interface {
	Record(ctx context.Context, orphans OrphanedAttachments) error
}

// ApplicationNotifier announces stored applications to recruiters.
type ApplicationNotifier interface {
	NotifyApplication(ctx context.Context, application domain.Application) error
}

// PostingCatalog resolves posting configuration.
type PostingCatalog interface {
	// Lookup returns the posting for slug, or the default posting when slug is unknown.
	Lookup(slug string) domain.Posting
	Get(slug string) (domain.Posting, bool)
	Listed() []domain.Posting
}

// RequestMetadata is the network information of the submitting request.
type RequestMetadata struct {
	ForwardedFor string
	ConnectingIP string
}

// SourceIP picks the first X-Forwarded-For entry, then CF-Connecting-IP, then "".
func (m RequestMetadata) SourceIP() string {
	if first, _, _ := strings.Cut(m.ForwardedFor, ","); strings.TrimSpace(first) != "" {
		return strings.TrimSpace(first)
	}
	return strings.TrimSpace(m.ConnectingIP)
}

// SubmitApplicationCommand carries one decoded application form.
type SubmitApplicationCommand struct {
	Values  map[string]string
	Files   map[domain.Slot]*domain.FileUpload
	Network RequestMetadata
}

// SubmissionService runs the ingestion pipeline for one application.
// A rejected submission is reported as a *Failure.
type SubmissionService interface {
	Submit(ctx context.Context, cmd SubmitApplicationCommand) error
}
