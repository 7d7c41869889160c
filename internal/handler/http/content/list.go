package content

import (
	"net/http"

	"content-api/internal/handler/http/respond"
	artUC "content-api/internal/usecase/article"
)

type ListHandler struct{ Svc ArticleService }

// ServeHTTP 記事一覧
// @Summary      記事一覧
// @Description  Lists articles, optionally filtered by category and level. Unknown filter values yield an empty list.
// @Tags         contents
// @Produce      json
// @Param        category query string false "Technology, History or News"
// @Param        level    query string false "Easy, Medium or Hard (english_level is accepted too)"
// @Success      200 {object} ListResponse
// @Failure      500 {object} respond.ErrorBody
// @Router       /contents [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	level := q.Get("level")
	if level == "" {
		level = q.Get("english_level")
	}

	articles, err := h.Svc.List(r.Context(), artUC.ListInput{
		Category: q.Get("category"),
		Level:    level,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]ArticleDTO, 0, len(articles))
	for _, a := range articles {
		out = append(out, toDTO(a))
	}
	respond.JSON(w, http.StatusOK, ListResponse{Data: out})
}
