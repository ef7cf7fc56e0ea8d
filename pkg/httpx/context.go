package httpx

import "context"

type ctxKey string

const (
	CtxKeyUserID      ctxKey = "user_id"
	CtxKeyRole        ctxKey = "role"
	CtxKeyCommunities ctxKey = "communities"
)

// UserIDFromContext returns the authenticated caller's user id, if any.
func UserIDFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(CtxKeyUserID).(string)
	return v, ok && v != ""
}

// RoleFromContext returns the authenticated caller's platform role, if any.
func RoleFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(CtxKeyRole).(string)
	return v, ok && v != ""
}

// CommunitiesFromContext returns the community ids the caller administers.
func CommunitiesFromContext(ctx context.Context) []string {
	if v, ok := ctx.Value(CtxKeyCommunities).([]string); ok {
		return v
	}
	return nil
}
