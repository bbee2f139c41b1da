package host

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/aomurata/wordbridge/internal/command"
)

// NewHTTPBridge exposes the dispatcher over a localhost HTTP endpoint so
// the extension can be developed against the host without the browser's
// native-messaging plumbing. Not intended to face anything but loopback.
func NewHTTPBridge(dispatcher *command.Dispatcher, logger zerolog.Logger) http.Handler {
	router := chi.NewRouter()

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Post("/api/message", func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(io.LimitReader(r.Body, MaxMessageSize))
		if err != nil {
			http.Error(w, "failed to read request body", http.StatusBadRequest)
			return
		}

		response := dispatcher.Handle(r.Context(), raw)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			logger.Warn().Err(err).Msg("failed to write bridge response")
		}
	})

	return router
}
