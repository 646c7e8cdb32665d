package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	adminapp "github.com/rocketiq/careers/api/internal/admin/application"
	"github.com/rocketiq/careers/api/internal/public/domain"
)

const applicationColumns = `id::text, job_slug, name, email, age, country, state, whatsapp,
	qualification, qualification_other, degree_name, heard_from, heard_from_other, motivation,
	consent, experiences, resume_path, cover_letter_path, project_summary_path, attachments,
	custom_answers, source_ip, created_at`

// ApplicationRepository stores application records in the applications table.
type ApplicationRepository struct {
	pool *pgxpool.Pool
}

func NewApplicationRepository(pool *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{pool: pool}
}

type experienceRow struct {
	Role         string `json:"role"`
	Organization string `json:"org"`
	Dates        string `json:"dates"`
	Summary      string `json:"summary"`
}

type attachmentRow struct {
	Slot        string `json:"slot"`
	Path        string `json:"path"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType"`
}

// Create inserts app with a fresh UUID and assigns it to app.ID.
func (r *ApplicationRepository) Create(ctx context.Context, app *domain.Application) error {
	if app == nil {
		return errors.New("application payload is nil")
	}

	experiences, attachments, answers, err := encodeApplicationJSON(app)
	if err != nil {
		return err
	}

	id := uuid.New()
	_, err = r.pool.Exec(ctx, `INSERT INTO applications (id, job_slug, name, email, age, country, state, whatsapp,
		qualification, qualification_other, degree_name, heard_from, heard_from_other, motivation, consent,
		experiences, resume_path, cover_letter_path, project_summary_path, attachments, custom_answers, source_ip, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23)`,
		insertArgs(id, app, experiences, attachments, answers)...)
	if err != nil {
		return err
	}
	app.ID = id.String()
	return nil
}

// Find lists applications newest first.
func (r *ApplicationRepository) Find(ctx context.Context, filter adminapp.ApplicationFilter, paging adminapp.Paging) ([]domain.Application, error) {
	query, args := buildFindQuery(filter, paging)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	apps := make([]domain.Application, 0)
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return apps, nil
}

// FindByID loads one application. Malformed IDs are reported as not found.
func (r *ApplicationRepository) FindByID(ctx context.Context, id string) (*domain.Application, error) {
	parsed, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return nil, adminapp.ErrApplicationNotFound
	}
	row := r.pool.QueryRow(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, parsed)
	app, err := scanApplication(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, adminapp.ErrApplicationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func buildFindQuery(filter adminapp.ApplicationFilter, paging adminapp.Paging) (string, []interface{}) {
	var (
		conditions []string
		args       []interface{}
	)
	if slug := strings.TrimSpace(filter.JobSlug); slug != "" {
		args = append(args, slug)
		conditions = append(conditions, fmt.Sprintf("job_slug = $%d", len(args)))
	}
	if keyword := strings.TrimSpace(filter.Keyword); keyword != "" {
		args = append(args, "%"+likeEscaper.Replace(keyword)+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%[1]d OR email ILIKE $%[1]d OR degree_name ILIKE $%[1]d OR motivation ILIKE $%[1]d)", n))
	}

	var b strings.Builder
	b.WriteString(`SELECT ` + applicationColumns + ` FROM applications`)
	if len(conditions) > 0 {
		b.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	b.WriteString(" ORDER BY created_at DESC")
	if paging.Limit > 0 {
		args = append(args, paging.Limit)
		fmt.Fprintf(&b, " LIMIT $%d", len(args))
		if offset := paging.Offset(); offset > 0 {
			args = append(args, offset)
			fmt.Fprintf(&b, " OFFSET $%d", len(args))
		}
	}
	return b.String(), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func scanApplication(row pgx.Row) (domain.Application, error) {
	var (
		app                                        domain.Application
		age                                        *int32
		resumePath, coverPath, projectPath         *string
		qualificationOther, heardFromOther         *string
		experiencesRaw, attachmentsRaw, answersRaw []byte
		createdAt                                  time.Time
	)
	err := row.Scan(
		&app.ID, &app.JobSlug, &app.Applicant.Name, &app.Applicant.Email, &age,
		&app.Applicant.Country, &app.Applicant.State, &app.Applicant.WhatsApp,
		&app.Qualification, &qualificationOther, &app.DegreeName, &app.HeardFrom, &heardFromOther,
		&app.Motivation, &app.Consent, &experiencesRaw, &resumePath, &coverPath, &projectPath,
		&attachmentsRaw, &answersRaw, &app.SourceIP, &createdAt,
	)
	if err != nil {
		return domain.Application{}, err
	}
	if age != nil {
		v := int(*age)
		app.Applicant.Age = &v
	}
	if qualificationOther != nil {
		app.QualificationOther = *qualificationOther
	}
	if heardFromOther != nil {
		app.HeardFromOther = *heardFromOther
	}
	app.CreatedAt = createdAt.UTC()

	var experiences []experienceRow
	if err := json.Unmarshal(experiencesRaw, &experiences); err != nil {
		return domain.Application{}, fmt.Errorf("decode experiences: %w", err)
	}
	app.Experiences = make([]domain.Experience, 0, len(experiences))
	for _, e := range experiences {
		app.Experiences = append(app.Experiences, domain.Experience{Role: e.Role, Organization: e.Organization, Dates: e.Dates, Summary: e.Summary})
	}

	var attachments []attachmentRow
	if err := json.Unmarshal(attachmentsRaw, &attachments); err != nil {
		return domain.Application{}, fmt.Errorf("decode attachments: %w", err)
	}
	for _, a := range attachments {
		app.Attachments = append(app.Attachments, domain.StoredAttachment{Slot: domain.Slot(a.Slot), Path: a.Path, Size: a.Size, ContentType: a.ContentType})
	}
	if len(app.Attachments) == 0 {
		paths := map[domain.Slot]*string{
			domain.SlotResume:         resumePath,
			domain.SlotCoverLetter:    coverPath,
			domain.SlotProjectSummary: projectPath,
		}
		for _, slot := range domain.SlotOrder {
			if p := paths[slot]; p != nil && *p != "" {
				app.Attachments = append(app.Attachments, domain.StoredAttachment{Slot: slot, Path: *p, ContentType: domain.PDFContentType})
			}
		}
	}

	if err := json.Unmarshal(answersRaw, &app.CustomAnswers); err != nil {
		return domain.Application{}, fmt.Errorf("decode custom answers: %w", err)
	}
	return app, nil
}

// insertArgs lists the INSERT parameters in column order. Empty clarification
// and path values are stored as NULL.
func insertArgs(id uuid.UUID, app *domain.Application, experiences, attachments, answers []byte) []interface{} {
	return []interface{}{
		id, app.JobSlug, app.Applicant.Name, app.Applicant.Email, app.Applicant.Age,
		app.Applicant.Country, app.Applicant.State, app.Applicant.WhatsApp,
		app.Qualification, nullable(app.QualificationOther), app.DegreeName, app.HeardFrom, nullable(app.HeardFromOther),
		app.Motivation, app.Consent, experiences,
		nullable(app.AttachmentPath(domain.SlotResume)),
		nullable(app.AttachmentPath(domain.SlotCoverLetter)),
		nullable(app.AttachmentPath(domain.SlotProjectSummary)),
		attachments, answers, app.SourceIP, app.CreatedAt,
	}
}

func encodeApplicationJSON(app *domain.Application) (experiences, attachments, answers []byte, err error) {
	expRows := make([]experienceRow, 0, len(app.Experiences))
	for _, e := range app.Experiences {
		expRows = append(expRows, experienceRow{Role: e.Role, Organization: e.Organization, Dates: e.Dates, Summary: e.Summary})
	}
	attRows := make([]attachmentRow, 0, len(app.Attachments))
	for _, a := range app.Attachments {
		attRows = append(attRows, attachmentRow{Slot: string(a.Slot), Path: a.Path, Size: a.Size, ContentType: a.ContentType})
	}
	custom := app.CustomAnswers
	if custom == nil {
		custom = map[string]string{}
	}

	if experiences, err = json.Marshal(expRows); err != nil {
		return nil, nil, nil, fmt.Errorf("encode experiences: %w", err)
	}
	if attachments, err = json.Marshal(attRows); err != nil {
		return nil, nil, nil, fmt.Errorf("encode attachments: %w", err)
	}
	if answers, err = json.Marshal(custom); err != nil {
		return nil, nil, nil, fmt.Errorf("encode custom answers: %w", err)
	}
	return experiences, attachments, answers, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
