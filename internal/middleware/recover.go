package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"launchpad-api/internal/apperr"
	"launchpad-api/internal/transport"

	"go.uber.org/zap"
)

// Recoverer renders panics through the error stage instead of dropping the
// connection.
func Recoverer(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil || rec == http.ErrAbortHandler {
					if rec != nil {
						panic(rec)
					}
					return
				}
				stack := string(debug.Stack())
				ForRequest(log, r).Error("panic recovered",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Any("panic", rec),
					zap.String("stack", stack),
				)
				transport.WriteErrorWithStack(w, apperr.Internal(fmt.Errorf("panic: %v", rec)), stack)
			}()
			next.ServeHTTP(w, r)
		})
	}
}
