package steamauth

import (
	"net/http"

	"github.com/cccteam/logger"
	"github.com/go-playground/errors/v5"
)

// LogHandler wraps an error returning handler into an http.HandlerFunc
type LogHandler func(handler func(w http.ResponseWriter, r *http.Request) error) http.HandlerFunc

// handle returns a handler that logs any error coming from our custom handlers.
// Failures caused by the caller are logged at Info level.
func handle(handler func(w http.ResponseWriter, r *http.Request) error) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := handler(w, r); err != nil {
			if isClientError(err) {
				logger.Req(r).Infof("%s", err)
			} else {
				logger.Req(r).Error(err)
			}
		}
	})
}

func isClientError(err error) bool {
	return errors.Is(err, ErrMalformedClaim) || errors.Is(err, ErrAssertionRejected) || errors.Is(err, ErrProfileNotFound)
}
