package content

import (
	"net/http"

	"content-api/internal/handler/http/pathutil"
	"content-api/internal/handler/http/respond"
)

type LikeCountHandler struct{ Svc ArticleService }

// ServeHTTP いいね数取得
// @Summary      いいね数取得
// @Description  Counts likes referencing the article. The article itself need not exist.
// @Tags         contents
// @Produce      json
// @Param        articleId path string true "24 hex character article id"
// @Success      200 {object} LikeCountResponse
// @Failure      400 {object} respond.ErrorBody "invalid id"
// @Failure      500 {object} respond.ErrorBody
// @Router       /contents/{articleId}/like-count [get]
func (h LikeCountHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r, "articleId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	count, err := h.Svc.LikeCount(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, LikeCountResponse{ArticleID: id, Count: count})
}
