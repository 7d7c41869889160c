// Package article holds the Article use cases behind /contents: listing with
// filters, CRUD and the like-count lookup. Validation and id checks happen
// here so the HTTP and import front ends share them.
package article

import "errors"

var (
	// ErrArticleNotFound is returned by Get, Update, Delete and LikeCount when
	// no document has the requested id.
	ErrArticleNotFound = errors.New("article not found")

	// ErrInvalidArticleID means the id is not 24 hexadecimal characters.
	// It is reported before any storage call.
	ErrInvalidArticleID = errors.New("invalid id")

	// ErrEmptyUpdate rejects a PUT whose body sets no field.
	ErrEmptyUpdate = errors.New("article id and updated data are required")
)
