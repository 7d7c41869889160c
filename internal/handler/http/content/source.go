package content

import (
	"errors"
	"io"
	"net/http"

	"content-api/internal/handler/http/respond"
)

type CreateSourceHandler struct{ Svc SourceService }

// ServeHTTP ソース記事作成
// @Summary      ソース記事作成
// @Description  Stores a raw article captured from a publisher. title (at most 100 characters), content, sourceUrl (a URL) and source (BBC) are required.
// @Tags         contents
// @Accept       json
// @Produce      json
// @Param        article body SourceArticleRequest true "Source article"
// @Success      201 {object} CreatedResponse
// @Failure      400 {object} respond.ErrorBody "validation failed or malformed JSON"
// @Failure      500 {object} respond.ErrorBody
// @Router       /contents/source [post]
func (h CreateSourceHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req SourceArticleRequest
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
