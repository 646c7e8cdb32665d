package common

const (
	// MaxApplyRequestBody caps the multipart apply payload. It sits well above the
	// combined attachment ceilings so oversized files are rejected per slot.
	MaxApplyRequestBody = 32 << 20
	// ApplyFormMemory is how much of a multipart form is buffered in memory before spilling to disk.
	ApplyFormMemory = 8 << 20
	// DefaultAdminPageSize is the admin listing page size when none is given.
	DefaultAdminPageSize = 20
)
