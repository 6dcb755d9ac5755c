package middleware

import (
	"net/http"
	"os"
	"strings"
)

// corsAllowedMethods matches the verbs the router actually serves. PUT is
// deliberately absent: status changes go through PATCH.
const corsAllowedMethods = "GET, POST, PATCH, DELETE, OPTIONS"

// allowedOrigins reads ALLOWED_ORIGINS (comma-separated) or falls back to the
// wildcard, which is only appropriate for development builds of the app.
func allowedOrigins() []string {
	if env := os.Getenv("ALLOWED_ORIGINS"); env != "" {
		origins := strings.Split(env, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		return origins
	}
	return []string{"*"}
}

// CORSMiddleware adds CORS headers so the mobile app's webview and local dev
// builds can reach the API. Preflights are answered without hitting the mux.
func CORSMiddleware(next http.Handler) http.Handler {
	origins := allowedOrigins()
	wildcard := len(origins) == 1 && origins[0] == "*"

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		switch {
		case wildcard:
			w.Header().Set("Access-Control-Allow-Origin", "*")
		case origin != "":
			for _, allowed := range origins {
				if allowed == origin {
					w.Header().Set("Access-Control-Allow-Origin", origin)
					w.Header().Add("Vary", "Origin")
					break
				}
			}
		}

		w.Header().Set("Access-Control-Allow-Methods", corsAllowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Max-Age", "600")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
