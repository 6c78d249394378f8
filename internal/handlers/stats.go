package handlers

import (
	"net/http"

	"github.com/crucial707/bloglist/internal/models"
	"github.com/crucial707/bloglist/internal/repo"
	"github.com/crucial707/bloglist/internal/stats"
)

// StatsHandler serves aggregate statistics over all posts.
type StatsHandler struct {
	Posts *repo.PostRepo
}

// statsResponse uses pointers so "no meaningful answer" serializes as null.
type statsResponse struct {
	TotalLikes         int                `json:"total_likes"`
	FavoritePost       *models.Post       `json:"favorite_post"`
	MostProlificAuthor *stats.AuthorPosts `json:"most_prolific_author"`
	MostLikedAuthor    *stats.AuthorLikes `json:"most_liked_author"`
}

// GetStats computes totals, the favorite post, and per-author aggregates.
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	posts, err := h.Posts.List(r.Context())
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	out := statsResponse{TotalLikes: stats.TotalLikes(posts)}
	if favorite, ok := stats.FavoritePost(posts); ok {
		out.FavoritePost = &favorite
	}
	if prolific, ok := stats.MostProlificAuthor(posts); ok {
		out.MostProlificAuthor = &prolific
	}
	if liked, ok := stats.MostLikedAuthor(posts); ok {
		out.MostLikedAuthor = &liked
	}

	writeJSON(w, http.StatusOK, out)
}
