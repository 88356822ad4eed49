package middlewares

import (
	"log/slog"
	"net/http"

	common "github.com/sportlink/sportlink-api/pkg/domain"
)

// RecoveryMiddleware converts panics into 500 responses so one bad request
// never takes the process down.
func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.ErrorContext(r.Context(), "Panic recovered",
					"path", r.URL.Path,
					"panic", rec,
				)
				common.WriteErrorResponse(w, common.NewAPIError(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "internal server error"))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
