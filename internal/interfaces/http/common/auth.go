package common

import "context"

type contextKey string

const reviewerContextKey contextKey = "reviewer"

// Reviewer is the recruiter identity taken from a verified admin token.
type Reviewer struct {
	Subject string
	Name    string
	Email   string
}

// ContextWithReviewer stores the reviewer into context.
func ContextWithReviewer(ctx context.Context, reviewer Reviewer) context.Context {
	return context.WithValue(ctx, reviewerContextKey, reviewer)
}

// ReviewerFromContext extracts the reviewer placed by the admin auth middleware.
func ReviewerFromContext(ctx context.Context) (Reviewer, bool) {
	reviewer, ok := ctx.Value(reviewerContextKey).(Reviewer)
	return reviewer, ok
}
