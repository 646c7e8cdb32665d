package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/rocketiq/careers/api/internal/public/domain"
)

//go:embed postings.yaml
var defaultPostings []byte

//go:embed postings.schema.json
var postingsSchema string

type postingFile struct {
	Default  postingEntry   `yaml:"default"`
	Postings []postingEntry `yaml:"postings"`
}

type postingEntry struct {
	Slug                  string            `yaml:"slug"`
	Title                 string            `yaml:"title"`
	Blurb                 string            `yaml:"blurb"`
	Meta                  string            `yaml:"meta"`
	Listed                bool              `yaml:"listed"`
	RequiredFields        []string          `yaml:"required_fields"`
	Attachments           []attachmentEntry `yaml:"attachments"`
	QualificationOptions  []string          `yaml:"qualification_options"`
	HeardFromOptions      []string          `yaml:"heard_from_options"`
	MotivationFields      []string          `yaml:"motivation_fields"`
	MotivationPlaceholder string            `yaml:"motivation_placeholder"`
	CustomFields          []string          `yaml:"custom_fields"`
}

type attachmentEntry struct {
	Slot     string `yaml:"slot"`
	Required bool   `yaml:"required"`
}

// Postings is the immutable posting catalogue loaded at startup.
type Postings struct {
	fallback domain.Posting
	bySlug   map[string]domain.Posting
	order    []string
}

// LoadPostings reads the catalogue from path, or the embedded default when path is empty.
func LoadPostings(path string) (*Postings, error) {
	raw := defaultPostings
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		raw = b
	}
	return ParsePostings(raw)
}

// ParsePostings validates raw YAML against the catalogue schema and builds the catalogue.
func ParsePostings(raw []byte) (*Postings, error) {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode postings: %w", err)
	}
	if err := validatePostings(doc); err != nil {
		return nil, err
	}

	var file postingFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("decode postings: %w", err)
	}

	fallback, err := file.Default.toDomain()
	if err != nil {
		return nil, fmt.Errorf("default posting: %w", err)
	}

	catalog := &Postings{
		fallback: fallback,
		bySlug:   make(map[string]domain.Posting, len(file.Postings)),
		order:    make([]string, 0, len(file.Postings)),
	}
	for _, entry := range file.Postings {
		posting, err := entry.toDomain()
		if err != nil {
			return nil, fmt.Errorf("posting %q: %w", entry.Slug, err)
		}
		if _, dup := catalog.bySlug[posting.Slug]; dup {
			return nil, fmt.Errorf("posting %q is declared twice", posting.Slug)
		}
		catalog.bySlug[posting.Slug] = posting
		catalog.order = append(catalog.order, posting.Slug)
	}
	return catalog, nil
}

func validatePostings(doc any) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(postingsSchema),
		gojsonschema.NewGoLoader(doc),
	)
	if err != nil {
		return fmt.Errorf("validate postings: %w", err)
	}
	if result.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("postings schema validation failed: %s", strings.Join(msgs, "; "))
}

func (e postingEntry) toDomain() (domain.Posting, error) {
	slots := make([]domain.SlotRequirement, 0, len(e.Attachments))
	seen := make(map[domain.Slot]bool, len(e.Attachments))
	for _, a := range e.Attachments {
		slot := domain.Slot(strings.TrimSpace(a.Slot))
		if !slot.Valid() {
			return domain.Posting{}, fmt.Errorf("%w: %q", domain.ErrUnknownSlot, a.Slot)
		}
		if seen[slot] {
			return domain.Posting{}, fmt.Errorf("slot %q is declared twice", slot)
		}
		seen[slot] = true
		slots = append(slots, domain.SlotRequirement{Slot: slot, Required: a.Required})
	}

	return domain.Posting{
		Slug:                  strings.TrimSpace(e.Slug),
		Title:                 strings.TrimSpace(e.Title),
		Blurb:                 strings.TrimSpace(e.Blurb),
		Meta:                  strings.TrimSpace(e.Meta),
		Listed:                e.Listed,
		RequiredFields:        e.RequiredFields,
		Slots:                 slots,
		QualificationOptions:  e.QualificationOptions,
		HeardFromOptions:      e.HeardFromOptions,
		MotivationFields:      e.MotivationFields,
		MotivationPlaceholder: e.MotivationPlaceholder,
		CustomFields:          e.CustomFields,
	}, nil
}

// Lookup returns the posting for slug, falling back to the default posting.
func (p *Postings) Lookup(slug string) domain.Posting {
	if posting, ok := p.bySlug[strings.TrimSpace(slug)]; ok {
		return posting
	}
	return p.fallback
}

// Get returns the posting for slug without falling back.
func (p *Postings) Get(slug string) (domain.Posting, bool) {
	posting, ok := p.bySlug[strings.TrimSpace(slug)]
	return posting, ok
}

// Listed returns the postings shown on the careers index, in catalogue order.
func (p *Postings) Listed() []domain.Posting {
	listed := make([]domain.Posting, 0, len(p.order))
	for _, slug := range p.order {
		if posting := p.bySlug[slug]; posting.Listed {
			listed = append(listed, posting)
		}
	}
	return listed
}

// All returns every configured posting, in catalogue order.
func (p *Postings) All() []domain.Posting {
	all := make([]domain.Posting, 0, len(p.order))
	for _, slug := range p.order {
		all = append(all, p.bySlug[slug])
	}
	return all
}
