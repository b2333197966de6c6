package auth

import (
	"net/http"
	"strings"

	"fairprice/core"
	"fairprice/handler/render"
	"fairprice/handler/request"

	"github.com/fox-one/pkg/logger"
)

// HandleAuthentication resolves the bearer token into an admin id
func HandleAuthentication(config *core.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			accessToken := getBearerToken(r)
			if accessToken == "" {
				next.ServeHTTP(w, r)
				return
			}

			adminID, ok := config.AdminByToken(accessToken)
			if !ok {
				logger.FromContext(ctx).Debugln("unknown access token")
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(request.NewContext(ctx).WithAdmin(adminID)))
		}

		return http.HandlerFunc(fn)
	}
}

// RequireAdmin rejects requests without an authenticated admin
func RequireAdmin(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		if _, ok := request.NewContext(r.Context()).GetAdmin(); !ok {
			render.Error(w, core.ErrUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	}

	return http.HandlerFunc(fn)
}

func getBearerToken(r *http.Request) string {
	s := r.Header.Get("Authorization")
	return strings.TrimPrefix(s, "Bearer ")
}
