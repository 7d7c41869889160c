package content

import (
	"net/http"

	"content-api/internal/handler/http/pathutil"
	"content-api/internal/handler/http/respond"
)

type GetHandler struct{ Svc ArticleService }

// ServeHTTP 記事詳細取得
// @Summary      記事詳細取得
// @Tags         contents
// @Produce      json
// @Param        id path string true "24 hex character article id"
// @Success      200 {object} GetResponse
// @Failure      400 {object} respond.ErrorBody "invalid id"
// @Failure      404 {object} respond.ErrorBody "article not found"
// @Failure      500 {object} respond.ErrorBody
// @Router       /contents/{id} [get]
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	article, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, GetResponse{Data: toDTO(article)})
}
