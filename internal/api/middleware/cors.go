package middleware

import "net/http"

// CORS headers sent on every response. The API is consumed by a browser
// frontend served from a different origin.
const (
	corsAllowOrigin  = "*"
	corsAllowHeaders = "Authorization, Content-Type"
	corsAllowMethods = "POST,GET,PUT,DELETE,PATCH,OPTIONS"
)

// CORSMiddleware adds the access-control headers to every response and
// answers OPTIONS preflight requests directly.
func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := w.Header()
		header.Set("Access-Control-Allow-Origin", corsAllowOrigin)
		header.Set("Access-Control-Allow-Headers", corsAllowHeaders)
		header.Set("Access-Control-Allow-Methods", corsAllowMethods)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
