// Package logging provides structured logging utilities with context propagation.
//
// Example usage:
//
//	logger := logging.New(os.Stdout, cfg.LogLevel)
//	slog.SetDefault(logger)
//
//	func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
//	    logging.WithRequestID(r.Context(), slog.Default()).Info("loading article")
//	}
package logging
