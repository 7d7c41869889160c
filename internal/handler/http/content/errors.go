package content

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"content-api/internal/domain/entity"
	"content-api/internal/handler/http/pathutil"
	"content-api/internal/handler/http/respond"
	"content-api/internal/observability/logging"
	artUC "content-api/internal/usecase/article"
)

var (
	errMalformedJSON = errors.New("malformed JSON body")
	errBodyTooLarge  = errors.New("request body too large")
)

// decodeJSON reads a single JSON value from the request body.
// An empty body is reported as io.EOF so callers can treat it as "no data".
func decodeJSON(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return err
	}
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return errBodyTooLarge
	}
	return errMalformedJSON
}

// writeError maps an error to its status code and JSON body.
// Every handler in this package reports failures through it.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verrs entity.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		details := make([]respond.FieldDetail, 0, len(verrs))
		for _, v := range verrs {
			details = append(details, respond.FieldDetail{Field: v.Field, Message: v.Message})
		}
		respond.JSON(w, http.StatusBadRequest, respond.ErrorBody{Error: "validation failed", Details: details})

	case errors.Is(err, artUC.ErrInvalidArticleID),
		errors.Is(err, pathutil.ErrInvalidID),
		errors.Is(err, entity.ErrInvalidID):
		respond.Error(w, http.StatusBadRequest, pathutil.ErrInvalidID)

	case errors.Is(err, artUC.ErrEmptyUpdate),
		errors.Is(err, pathutil.ErrMissingID),
		errors.Is(err, errMalformedJSON):
		respond.Error(w, http.StatusBadRequest, err)

	case errors.Is(err, errBodyTooLarge):
		respond.Error(w, http.StatusRequestEntityTooLarge, err)

	case errors.Is(err, artUC.ErrArticleNotFound), errors.Is(err, entity.ErrNotFound):
		respond.Error(w, http.StatusNotFound, artUC.ErrArticleNotFound)

	default:
		logging.WithRequestID(r.Context(), slog.Default()).Error("content request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", respond.SanitizeError(err)))
		respond.JSON(w, http.StatusInternalServerError, respond.ErrorBody{Error: "internal server error"})
	}
}
