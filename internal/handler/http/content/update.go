package content

import (
	"errors"
	"io"
	"net/http"

	"content-api/internal/handler/http/pathutil"
	"content-api/internal/handler/http/respond"
	artUC "content-api/internal/usecase/article"
)

type UpdateHandler struct{ Svc ArticleService }

// ServeHTTP 記事更新
// @Summary      記事更新
// @Description  Applies a partial update and returns the article as stored afterwards. Absent fields are left unchanged.
// @Tags         contents
// @Accept       json
// @Produce      json
// @Param        id path string true "24 hex character article id"
// @Param        article body ArticleRequest true "Fields to change"
// @Success      200 {object} ArticleDTO
// @Failure      400 {object} respond.ErrorBody "missing id, empty body, invalid id or validation failed"
// @Failure      404 {object} respond.ErrorBody "article not found"
// @Failure      500 {object} respond.ErrorBody
// @Router       /contents/{id} [put]
func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r, "id")
	if errors.Is(err, pathutil.ErrMissingID) {
		writeError(w, r, artUC.ErrEmptyUpdate)
		return
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req ArticleRequest
	if err := decodeJSON(r, &req); err != nil {
		if errors.Is(err, io.EOF) {
			err = artUC.ErrEmptyUpdate
		}
		writeError(w, r, err)
		return
	}

	updated, err := h.Svc.Update(r.Context(), id, req.patch())
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(updated))
}
