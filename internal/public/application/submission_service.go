package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rocketiq/careers/api/internal/public/domain"
)

const (
	defaultVerifyTimeout   = 5 * time.Second
	defaultStorageTimeout  = 15 * time.Second
	defaultDatabaseTimeout = 5 * time.Second
	defaultNotifyTimeout   = 30 * time.Second
)

// SubmissionConfig lists the collaborators of the submission pipeline.
// Storage and Applications may be nil when their backend is not configured;
// submissions then fail as misconfigured before anything is uploaded.
type SubmissionConfig struct {
	Postings        PostingCatalog
	Verifier        HumanVerifier
	TurnstileSecret string
	Storage         ObjectStorage
	Applications    ApplicationRepository
	Orphans         OrphanLedger
	Notifier        ApplicationNotifier
	Logger          *log.Logger
	VerifyTimeout   time.Duration
	StorageTimeout  time.Duration
	DatabaseTimeout time.Duration
	NotifyTimeout   time.Duration
	Now             func() time.Time
}

// NewSubmissionService builds the pipeline from cfg.
func NewSubmissionService(cfg SubmissionConfig) SubmissionService {
	s := &submissionService{
		postings:        cfg.Postings,
		verifier:        cfg.Verifier,
		secret:          strings.TrimSpace(cfg.TurnstileSecret),
		storage:         cfg.Storage,
		applications:    cfg.Applications,
		orphans:         cfg.Orphans,
		notifier:        cfg.Notifier,
		logger:          cfg.Logger,
		verifyTimeout:   cfg.VerifyTimeout,
		storageTimeout:  cfg.StorageTimeout,
		databaseTimeout: cfg.DatabaseTimeout,
		notifyTimeout:   cfg.NotifyTimeout,
		now:             cfg.Now,
	}
	if s.verifyTimeout <= 0 {
		s.verifyTimeout = defaultVerifyTimeout
	}
	if s.storageTimeout <= 0 {
		s.storageTimeout = defaultStorageTimeout
	}
	if s.databaseTimeout <= 0 {
		s.databaseTimeout = defaultDatabaseTimeout
	}
	if s.notifyTimeout <= 0 {
		s.notifyTimeout = defaultNotifyTimeout
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

type submissionService struct {
	postings        PostingCatalog
	verifier        HumanVerifier
	secret          string
	storage         ObjectStorage
	applications    ApplicationRepository
	orphans         OrphanLedger
	notifier        ApplicationNotifier
	logger          *log.Logger
	verifyTimeout   time.Duration
	storageTimeout  time.Duration
	databaseTimeout time.Duration
	notifyTimeout   time.Duration
	now             func() time.Time
}

func (s *submissionService) Submit(ctx context.Context, cmd SubmitApplicationCommand) error {
	if err := s.verifyHuman(ctx, cmd); err != nil {
		return err
	}

	form := formValues(cmd.Values)
	posting := s.lookupPosting(form.get(domain.FieldJobSlug))
	application := buildApplication(posting, form)
	application.SourceIP = cmd.Network.SourceIP()

	if missing := missingFields(posting, application); len(missing) > 0 {
		return validationFailure("Missing required fields: " + strings.Join(missing, ", "))
	}
	if err := checkOtherSpecified(application); err != nil {
		return err
	}

	files, err := collectAttachments(posting, cmd.Files)
	if err != nil {
		return err
	}

	application.Experiences = domain.NormalizeExperiences(experienceRows(form))

	if s.storage == nil {
		return misconfigured("object storage is not configured")
	}
	if s.applications == nil {
		return misconfigured("application store is not configured")
	}

	stored, err := s.uploadAttachments(ctx, application, files)
	application.Attachments = stored
	if err != nil {
		s.recordOrphans(ctx, application, err)
		return upstreamFailure(err)
	}

	application.CreatedAt = s.now().UTC()
	dbCtx, cancel := context.WithTimeout(ctx, s.databaseTimeout)
	defer cancel()
	if err := s.applications.Create(dbCtx, application); err != nil {
		err = fmt.Errorf("insert application: %w", err)
		s.recordOrphans(ctx, application, err)
		return persistenceFailure(err)
	}

	s.notify(ctx, *application)
	return nil
}

// notify is best-effort; the application is already stored.
func (s *submissionService) notify(ctx context.Context, application domain.Application) {
	if s.notifier == nil {
		return
	}
	notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.notifyTimeout)
	defer cancel()
	if err := s.notifier.NotifyApplication(notifyCtx, application); err != nil && s.logger != nil {
		s.logger.Printf("recruiter notification failed id=%s job=%s: %v", application.ID, application.JobSlug, err)
	}
}

func (s *submissionService) verifyHuman(ctx context.Context, cmd SubmitApplicationCommand) error {
	token := strings.TrimSpace(cmd.Values[domain.FieldTurnstileToken])
	if token == "" {
		return validationFailure("Turnstile token missing")
	}
	if s.secret == "" {
		return misconfigured("TURNSTILE_SECRET_KEY is not configured")
	}
	if s.verifier == nil {
		return misconfigured("human verifier is not configured")
	}

	verifyCtx, cancel := context.WithTimeout(ctx, s.verifyTimeout)
	defer cancel()

	ok, err := s.verifier.Verify(verifyCtx, s.secret, token, cmd.Network.SourceIP())
	if err != nil {
		return upstreamFailure(fmt.Errorf("turnstile verify: %w", err))
	}
	if !ok {
		return validationFailure("Turnstile verification failed")
	}
	return nil
}

func (s *submissionService) lookupPosting(slug string) domain.Posting {
	if s.postings == nil {
		return domain.Posting{Slug: slug}
	}
	return s.postings.Lookup(slug)
}

type pendingUpload struct {
	slot domain.Slot
	file *domain.FileUpload
}

// uploadAttachments stores every validated file concurrently. The returned slice
// holds the attachments that made it to storage, even when err is non-nil.
func (s *submissionService) uploadAttachments(ctx context.Context, application *domain.Application, files []pendingUpload) ([]domain.StoredAttachment, error) {
	if len(files) == 0 {
		return nil, nil
	}

	at := s.now()
	results := make([]*domain.StoredAttachment, len(files))
	group, groupCtx := errgroup.WithContext(ctx)
	for i, pending := range files {
		i, pending := i, pending
		path := domain.AttachmentPath(pending.slot, at, application.Applicant.Name)
		group.Go(func() error {
			body, err := readAttachment(pending.file)
			if err != nil {
				return fmt.Errorf("read %s: %w", pending.slot, err)
			}

			uploadCtx, cancel := context.WithTimeout(groupCtx, s.storageTimeout)
			defer cancel()

			err = s.storage.Upload(uploadCtx, StorageObject{
				Path:        path,
				Body:        body,
				ContentType: domain.PDFContentType,
				NoOverwrite: true,
			})
			if err != nil {
				return fmt.Errorf("upload %s: %w", path, err)
			}
			results[i] = &domain.StoredAttachment{
				Slot:        pending.slot,
				Path:        path,
				Size:        int64(len(body)),
				ContentType: domain.PDFContentType,
			}
			return nil
		})
	}
	err := group.Wait()

	stored := make([]domain.StoredAttachment, 0, len(results))
	for _, result := range results {
		if result != nil {
			stored = append(stored, *result)
		}
	}
	return stored, err
}

// recordOrphans notes uploads that no record will reference. Storage is never
// cleaned up here; the ledger is for a later reconciliation pass.
func (s *submissionService) recordOrphans(ctx context.Context, application *domain.Application, cause error) {
	if len(application.Attachments) == 0 || s.orphans == nil {
		return
	}
	paths := make([]string, 0, len(application.Attachments))
	for _, att := range application.Attachments {
		paths = append(paths, att.Path)
	}

	ledgerCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.databaseTimeout)
	defer cancel()

	err := s.orphans.Record(ledgerCtx, OrphanedAttachments{
		JobSlug:   application.JobSlug,
		Email:     application.Applicant.Email,
		Paths:     paths,
		Cause:     cause.Error(),
		CreatedAt: s.now().UTC(),
	})
	if err != nil && s.logger != nil {
		s.logger.Printf("orphan ledger write failed job=%s paths=%v: %v", application.JobSlug, paths, err)
	}
}

func readAttachment(file *domain.FileUpload) ([]byte, error) {
	if file.Open == nil {
		return nil, errors.New("attachment has no content")
	}
	rc, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(io.LimitReader(rc, domain.MaxAttachmentBytes+1))
}
