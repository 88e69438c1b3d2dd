package middleware

import (
	"context"
	"net/http"
)

// Authentication itself lives in front of this service; the proxy injects the
// resolved actor identity and role as headers. This middleware only lifts them
// into the request context and gates mutating routes by role.

type contextKey string

const (
	actorKey contextKey = "actor"
	roleKey  contextKey = "role"
)

const (
	RoleAdmin     = "admin"
	RoleModerator = "moderator"
)

func Actor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), actorKey, r.Header.Get("X-Actor-Email"))
		ctx = context.WithValue(ctx, roleKey, r.Header.Get("X-Actor-Role"))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole rejects the request unless the resolved role is one of the
// allowed ones.
func RequireRole(allowed ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := RoleFrom(r.Context())
			for _, a := range allowed {
				if role == a {
					next.ServeHTTP(w, r)
					return
				}
			}
			http.Error(w, "forbidden", http.StatusForbidden)
		})
	}
}

func ActorFrom(ctx context.Context) string {
	actor, _ := ctx.Value(actorKey).(string)
	return actor
}

func RoleFrom(ctx context.Context) string {
	role, _ := ctx.Value(roleKey).(string)
	return role
}
