package content

import (
	"errors"
	"io"
	"net/http"

	"content-api/internal/handler/http/respond"
)

type CreateHandler struct{ Svc ArticleService }

// ServeHTTP 記事作成
// @Summary      記事作成
// @Description  Creates an article. category and level are matched case-insensitively; english_level is accepted as an alias of level.
// @Tags         contents
// @Accept       json
// @Produce      json
// @Param        article body ArticleRequest true "Article"
// @Success      201 {object} CreatedResponse
// @Failure      400 {object} respond.ErrorBody "validation failed or malformed JSON"
// @Failure      429 {object} respond.ErrorBody "rate limit exceeded"
// @Failure      500 {object} respond.ErrorBody
// @Router       /contents [post]
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req ArticleRequest
	if err := decodeJSON(r, &req); err != nil {
		if errors.Is(err, io.EOF) {
			err = errMalformedJSON
		}
		writeError(w, r, err)
		return
	}

	created, err := h.Svc.Create(r.Context(), req.createInput())
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusCreated, CreatedResponse{ArticleID: created.ID})
}
