package application

import "fmt"

// Category classifies why a submission was rejected.
type Category string

const (
	// CategoryValidation covers bad input, missing files and failed human verification.
	CategoryValidation Category = "validation"
	// CategoryMisconfiguration means a required secret or backend is not configured.
	CategoryMisconfiguration Category = "misconfiguration"
	// CategoryUpstream covers verification service and object storage failures.
	CategoryUpstream Category = "upstream"
	// CategoryPersistence covers record store failures.
	CategoryPersistence Category = "persistence"
)

// Messages shown to the applicant for server-side failures. Detail stays in the logs.
const (
	MessageServerError      = "Server error"
	MessageMisconfiguration = "Server misconfiguration"
)

// Failure is the terminal outcome of a rejected submission.
type Failure struct {
	Category Category
	Message  string
	Err      error
}

func (f *Failure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s: %s: %v", f.Category, f.Message, f.Err)
	}
	return fmt.Sprintf("%s: %s", f.Category, f.Message)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// ClientError reports whether the failure is the applicant's to fix.
func (f *Failure) ClientError() bool {
	return f.Category == CategoryValidation
}

func validationFailure(message string) *Failure {
	return &Failure{Category: CategoryValidation, Message: message}
}

func misconfigured(format string, args ...any) *Failure {
	return &Failure{Category: CategoryMisconfiguration, Message: MessageMisconfiguration, Err: fmt.Errorf(format, args...)}
}

func upstreamFailure(err error) *Failure {
	return &Failure{Category: CategoryUpstream, Message: MessageServerError, Err: err}
}

func persistenceFailure(err error) *Failure {
	return &Failure{Category: CategoryPersistence, Message: MessageServerError, Err: err}
}
