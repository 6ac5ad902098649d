package middleware

import (
	"fmt"
	"net/http"

	"github.com/opencourier/client-provider/api/responses"
	"github.com/opencourier/client-provider/pkg/logger"
)

// Recoverer converts panics into the service's 500 body. Routes that do
// not handle collaborator failures themselves (the counterparty lookup)
// rely on this as their only error path.
func Recoverer(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					err := fmt.Errorf("panic: %v", rec)
					ctx := r.Context()
					if logg != nil {
						ctx = logg.WithField(ctx, "panic", fmt.Sprint(rec))
						logg.Error(ctx, "panic.recovered", err)
					}
					responses.WriteResult(w, http.StatusInternalServerError, fmt.Sprint(rec))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
