package httpx

import "net/http"

// RequireAnyRole rejects the request unless the authenticated caller holds
// one of the listed platform roles. Finer-grained checks (is this caller the
// admin of this particular community?) belong to the service layer, not here.
func RequireAnyRole(required ...string) Middleware {
	want := make(map[string]struct{}, len(required))
	for _, r := range required {
		want[r] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := RoleFromContext(r.Context())
			if !ok {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			if _, ok := want[role]; !ok {
				WriteError(w, http.StatusForbidden, "forbidden",
					"caller role is not permitted to perform this operation")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
