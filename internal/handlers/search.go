package handlers

import (
	"net/http"

	"github.com/voguesoftware/projectdash/httpx"
	"github.com/voguesoftware/projectdash/internal/search"
)

type SearchHandler struct {
	Agg *search.Aggregator
}

func NewSearchHandler(agg *search.Aggregator) *SearchHandler {
	return &SearchHandler{Agg: agg}
}

// Search runs the three-collection aggregation for ?q=. The debounce
// window lives with the keystroke source; by the time a request reaches
// this handler the quiet period has already elapsed.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	res, err := h.Agg.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		remoteFail(w, err, "search_failed", "Search failed.")
		return
	}
	httpx.JSON(w, http.StatusOK, res)
}
