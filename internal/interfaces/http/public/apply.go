package public

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"runtime/debug"

	"github.com/rocketiq/careers/api/internal/interfaces/http/common"
	publicapp "github.com/rocketiq/careers/api/internal/public/application"
	"github.com/rocketiq/careers/api/internal/public/domain"
)

const invalidFormMessage = "Invalid form submission"

func (h *Handler) applyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBody)
		if err := r.ParseMultipartForm(common.ApplyFormMemory); err != nil {
			h.logf("apply: form parse failed: %v", err)
			message := invalidFormMessage
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				// The form never parsed, so attribute the overflow to the résumé slot.
				message = domain.OversizeMessage(domain.SlotResume)
			}
			h.writeApply(w, http.StatusBadRequest, applyResponse{OK: false, Error: message})
			return
		}
		defer func() {
			if err := r.MultipartForm.RemoveAll(); err != nil {
				h.logf("apply: cleanup multipart temp files: %v", err)
			}
		}()

		cmd := publicapp.SubmitApplicationCommand{
			Values: firstValues(r.MultipartForm),
			Files:  slotFiles(r.MultipartForm),
			Network: publicapp.RequestMetadata{
				ForwardedFor: r.Header.Get("X-Forwarded-For"),
				ConnectingIP: r.Header.Get("CF-Connecting-IP"),
			},
		}

		if err := h.submissions.Submit(r.Context(), cmd); err != nil {
			h.writeFailure(w, cmd, err)
			return
		}

		h.writeApply(w, http.StatusOK, applyResponse{OK: true})
	}
}

func (h *Handler) writeFailure(w http.ResponseWriter, cmd publicapp.SubmitApplicationCommand, err error) {
	var failure *publicapp.Failure
	if !errors.As(err, &failure) {
		h.logf("apply: unexpected error job=%q: %v", cmd.Values[domain.FieldJobSlug], err)
		h.writeApply(w, http.StatusInternalServerError, applyResponse{OK: false, Error: publicapp.MessageServerError})
		return
	}

	if failure.ClientError() {
		h.logf("apply: rejected job=%q: %s", cmd.Values[domain.FieldJobSlug], failure.Message)
		h.writeApply(w, http.StatusBadRequest, applyResponse{OK: false, Error: failure.Message})
		return
	}

	h.logf("apply: %s failure job=%q: %v", failure.Category, cmd.Values[domain.FieldJobSlug], failure.Err)
	h.writeApply(w, http.StatusInternalServerError, applyResponse{OK: false, Error: failure.Message})
}

// recoverJSON turns a panic into the generic apply error body.
func (h *Handler) recoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				h.logf("apply: panic: %v\n%s", rec, debug.Stack())
				h.writeApply(w, http.StatusInternalServerError, applyResponse{OK: false, Error: publicapp.MessageServerError})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) writeApply(w http.ResponseWriter, status int, payload applyResponse) {
	w.Header().Set("Cache-Control", "no-store")
	common.WriteJSON(h.logger, w, status, payload)
}

func (h *Handler) logf(format string, args ...any) {
	if h.logger != nil {
		h.logger.Printf(format, args...)
	}
}

func firstValues(form *multipart.Form) map[string]string {
	values := make(map[string]string, len(form.Value))
	for key, list := range form.Value {
		if len(list) > 0 {
			values[key] = list[0]
		}
	}
	return values
}

// slotFiles picks the first file part per known slot. A part with no filename
// and no content is how browsers send an empty file input, so it counts as absent.
func slotFiles(form *multipart.Form) map[domain.Slot]*domain.FileUpload {
	files := make(map[domain.Slot]*domain.FileUpload)
	for _, slot := range domain.SlotOrder {
		headers := form.File[string(slot)]
		if len(headers) == 0 {
			continue
		}
		header := headers[0]
		if header.Filename == "" && header.Size == 0 {
			continue
		}
		files[slot] = &domain.FileUpload{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Open: func() (io.ReadCloser, error) {
				return header.Open()
			},
		}
	}
	return files
}
