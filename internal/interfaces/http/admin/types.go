package admin

import "time"

type applicationSummaryResponse struct {
	ID              string    `json:"id"`
	JobSlug         string    `json:"jobSlug"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Country         string    `json:"country,omitempty"`
	Qualification   string    `json:"qualification,omitempty"`
	AttachmentCount int       `json:"attachmentCount"`
	CreatedAt       time.Time `json:"createdAt"`
}

type applicationListResponse struct {
	Items []applicationSummaryResponse `json:"items"`
	Page  int                          `json:"page"`
	Limit int                          `json:"limit"`
}

type experienceResponse struct {
	Role         string `json:"role"`
	Organization string `json:"org"`
	Dates        string `json:"dates,omitempty"`
	Summary      string `json:"summary,omitempty"`
}

type attachmentResponse struct {
	Slot        string `json:"slot"`
	Label       string `json:"label"`
	Path        string `json:"path"`
	Size        int64  `json:"size,omitempty"`
	ContentType string `json:"contentType,omitempty"`
}

type applicationDetailResponse struct {
	ID                 string               `json:"id"`
	JobSlug            string               `json:"jobSlug"`
	Name               string               `json:"name"`
	Email              string               `json:"email"`
	Age                *int                 `json:"age,omitempty"`
	Country            string               `json:"country,omitempty"`
	State              string               `json:"state,omitempty"`
	WhatsApp           string               `json:"whatsapp,omitempty"`
	Qualification      string               `json:"qualification,omitempty"`
	QualificationOther string               `json:"qualificationOther,omitempty"`
	DegreeName         string               `json:"degreeName,omitempty"`
	HeardFrom          string               `json:"heardFrom,omitempty"`
	HeardFromOther     string               `json:"heardFromOther,omitempty"`
	Motivation         string               `json:"motivation"`
	Consent            bool                 `json:"consent"`
	Experiences        []experienceResponse `json:"experiences"`
	Attachments        []attachmentResponse `json:"attachments"`
	CustomAnswers      map[string]string    `json:"customAnswers,omitempty"`
	SourceIP           string               `json:"sourceIp,omitempty"`
	CreatedAt          time.Time            `json:"createdAt"`
}
