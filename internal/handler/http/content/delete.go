package content

import (
	"net/http"

	"content-api/internal/handler/http/pathutil"
)

type DeleteHandler struct{ Svc ArticleService }

// ServeHTTP 記事削除
// @Summary      記事削除
// @Tags         contents
// @Param        id path string true "24 hex character article id"
// @Success      204 "No Content"
// @Failure      400 {string} string "invalid id"
// @Failure      404 {string} string "article not found"
// @Failure      500 {string} string "internal server error"
// @Router       /contents/{id} [delete]
func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.Svc.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
