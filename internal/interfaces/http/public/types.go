package public

type applyResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

type postingSummaryResponse struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
	Blurb string `json:"blurb,omitempty"`
	Meta  string `json:"meta,omitempty"`
}

type postingListResponse struct {
	Items []postingSummaryResponse `json:"items"`
}

type postingSlotResponse struct {
	Name     string `json:"name"`
	Label    string `json:"label"`
	Required bool   `json:"required"`
	MaxBytes int64  `json:"maxBytes"`
	Accept   string `json:"accept"`
}

type postingDetailResponse struct {
	postingSummaryResponse
	RequiredFields       []string              `json:"requiredFields"`
	Attachments          []postingSlotResponse `json:"attachments"`
	QualificationOptions []string              `json:"qualificationOptions,omitempty"`
	HeardFromOptions     []string              `json:"heardFromOptions,omitempty"`
	MotivationFields     []string              `json:"motivationFields"`
	CustomFields         []string              `json:"customFields,omitempty"`
	MaxExperienceRows    int                   `json:"maxExperienceRows"`
}
