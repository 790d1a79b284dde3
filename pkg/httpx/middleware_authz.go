package httpx

import (
	"net/http"
	"strings"
)

const ErrorCodeForbidden = "forbidden"

// RequireAnyScope lets the request through when the caller holds at least one
// of the listed scopes. It must run after AuthnMiddleware.
func RequireAnyScope(required ...string) Middleware {
	want := make(map[string]struct{}, len(required))
	for _, s := range required {
		want[s] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, s := range scopesFromCtx(r.Context()) {
				if _, ok := want[s]; ok {
					next.ServeHTTP(w, r)
					return
				}
			}

			w.Header().Set("WWW-Authenticate",
				`Bearer error="insufficient_scope", scope="`+strings.Join(required, " ")+`"`)
			WriteError(w, http.StatusForbidden, ErrorCodeForbidden,
				"this action requires one of: "+strings.Join(required, ", "))
		})
	}
}
