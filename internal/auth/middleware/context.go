package auth

import "context"

type ctxKey int

const ctxKeySub ctxKey = iota

// WithSubject stamps the authenticated instructor onto the context.
func WithSubject(ctx context.Context, sub string) context.Context {
	return context.WithValue(ctx, ctxKeySub, sub)
}

// SubjectFromContext returns the authenticated instructor, or "" when the
// request was unauthenticated (local auth disabled).
func SubjectFromContext(ctx context.Context) string {
	if s, ok := ctx.Value(ctxKeySub).(string); ok {
		return s
	}
	return ""
}
