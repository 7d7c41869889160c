package pathutil

import (
	"errors"
	"net/http"

	"content-api/internal/domain/entity"
)

// ErrInvalidID is returned when the ID in the URL path is invalid.
var ErrInvalidID = errors.New("invalid id")

// ErrMissingID is returned when the path carries no ID segment at all.
var ErrMissingID = errors.New("article id is required")

// ExtractID returns the named path value of r as a document identifier.
// The value must be exactly 24 hexadecimal characters.
//
// Example:
//
//	// route "GET /contents/{id}", path "/contents/654c609c1d32906852a3b01e"
//	id, err := ExtractID(r, "id")
//	// Returns: "654c609c1d32906852a3b01e", nil
func ExtractID(r *http.Request, name string) (string, error) {
	id := r.PathValue(name)
	if id == "" {
		return "", ErrMissingID
	}
	if !entity.IsValidID(id) {
		return "", ErrInvalidID
	}
	return id, nil
}
