package mockapi

import (
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/mileusna/useragent"
	"github.com/rs/zerolog/log"
)

// CORS allows the browser frontends running on other origins to call the
// mock with credentials, which the cookie-based refresh flow requires.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID", "User-Agent"},
		AllowCredentials: true,
		MaxAge:           300,
	})
}

// Logger logs every request and response with a correlation ID. The incoming
// X-Request-ID is honored when present so a proxy's IDs survive; otherwise a
// fresh UUID is generated. The parsed User-Agent is included as a device
// field so requests from different clients are distinguishable in the logs.
func Logger() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			id := r.Header.Get("X-Request-ID")
			if id == "" {
				id = uuid.New().String()
			}
			r = r.WithContext(withRequestID(r.Context(), id))

			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			ww.Header().Set("X-Request-ID", id)

			ua := useragent.Parse(r.UserAgent())

			log.Info().
				Str("request_id", id).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("remote_addr", r.RemoteAddr).
				Str("device", deviceString(ua)).
				Msg("Request started")

			next.ServeHTTP(ww, r)

			log.Info().
				Str("request_id", id).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", time.Since(start)).
				Msg("Request completed")
		})
	}
}

// Recoverer converts panics into 500 responses instead of dropped
// connections.
func Recoverer() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.Error().
						Str("request_id", requestID(r.Context())).
						Interface("panic", rec).
						Str("path", r.URL.Path).
						Msg("Handler panicked")
					respondError(w, r, http.StatusInternalServerError, "Internal server error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

func deviceString(ua useragent.UserAgent) string {
	kind := "Desktop"
	switch {
	case ua.Mobile:
		kind = "Mobile"
	case ua.Tablet:
		kind = "Tablet"
	case ua.Bot:
		kind = "Bot"
	}

	name := ua.Name
	if name == "" {
		name = "Unknown"
	}
	os := ua.OS
	if os == "" {
		os = "Unknown"
	}
	return name + " · " + os + " · " + kind
}
