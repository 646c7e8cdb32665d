package domain

import (
	"errors"
	"fmt"
	"mime"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// MaxAttachmentBytes is the per-file ceiling (2 MiB).
	MaxAttachmentBytes = 2 * 1024 * 1024
	// PDFContentType is the only accepted media type.
	PDFContentType = "application/pdf"
	// MaxExperienceRows is the number of experience rows a form can carry.
	MaxExperienceRows = 3

	maxSafeNameLength = 60
	fallbackSafeName  = "applicant"
)

var unsafeNameChars = regexp.MustCompile(`[^a-z0-9_-]+`)

// SanitizeName turns an applicant name into a filename-safe segment.
func SanitizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = fallbackSafeName
	}
	safe := unsafeNameChars.ReplaceAllString(strings.ToLower(name), "_")
	if len(safe) > maxSafeNameLength {
		safe = safe[:maxSafeNameLength]
	}
	return safe
}

// AttachmentPath builds {category}/{unix-millis}_{sanitized-name}.pdf.
func AttachmentPath(slot Slot, at time.Time, applicantName string) string {
	return fmt.Sprintf("%s/%d_%s.pdf", slot.Category(), at.UnixMilli(), SanitizeName(applicantName))
}

// IsPDF accepts a file when either the declared media type or the filename says PDF.
// Client-declared content types are unreliable, so the checks are OR-ed.
func IsPDF(file *FileUpload) bool {
	if file == nil {
		return false
	}
	declared := strings.TrimSpace(file.ContentType)
	if mediaType, _, err := mime.ParseMediaType(declared); err == nil {
		declared = mediaType
	}
	if strings.EqualFold(declared, PDFContentType) {
		return true
	}
	return strings.HasSuffix(strings.ToLower(strings.TrimSpace(file.Filename)), ".pdf")
}

// ValidateAttachment checks presence, type and size for one slot.
// A nil file passes when the slot is optional.
func ValidateAttachment(slot Slot, file *FileUpload, required bool) error {
	label := slot.Label()
	if file == nil {
		if required {
			return fmt.Errorf("%s is required.", label)
		}
		return nil
	}
	if !IsPDF(file) {
		return fmt.Errorf("%s: please upload a PDF file.", label)
	}
	if file.Size > MaxAttachmentBytes {
		return errors.New(OversizeMessage(slot))
	}
	return nil
}

// OversizeMessage is the rejection shown when a file in slot exceeds MaxAttachmentBytes.
func OversizeMessage(slot Slot) string {
	return slot.Label() + ": file must be under 2 MB."
}

// NormalizeExperiences trims every field and drops rows whose role, organization
// and summary are all empty. Order is preserved and at most MaxExperienceRows are kept.
func NormalizeExperiences(rows []Experience) []Experience {
	result := make([]Experience, 0, len(rows))
	for i, row := range rows {
		if i >= MaxExperienceRows {
			break
		}
		row = Experience{
			Role:         strings.TrimSpace(row.Role),
			Organization: strings.TrimSpace(row.Organization),
			Dates:        strings.TrimSpace(row.Dates),
			Summary:      strings.TrimSpace(row.Summary),
		}
		if row.Role == "" && row.Organization == "" && row.Summary == "" {
			continue
		}
		result = append(result, row)
	}
	return result
}

// ParseAge returns nil for blank, non-numeric or non-positive input.
func ParseAge(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	age, err := strconv.Atoi(raw)
	if err != nil || age <= 0 {
		return nil
	}
	return &age
}

// ErrUnknownSlot is returned when a posting declares a slot that does not exist.
var ErrUnknownSlot = errors.New("unknown attachment slot")
