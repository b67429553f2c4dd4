package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gfranco93/bolsa-monitor/utils"
	"github.com/google/uuid"
)

// Logger assigns a request ID to every request and logs start/finish.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		now := time.Now()

		rqID := r.Header.Get("X-Request-ID")
		if rqID == "" {
			rqID = uuid.NewString()
		}

		ctx := utils.CtxWithGivenRqID(r.Context(), rqID)

		slog.Info(
			"start request",
			slog.String("rqID", rqID),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)

		defer func() {
			slog.Info(
				"request finished",
				slog.String("rqID", rqID),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("request duration", fmt.Sprintf("%.2fs", time.Since(now).Seconds())),
			)
		}()

		w.Header().Set("X-Request-ID", rqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
