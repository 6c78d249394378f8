package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/crucial707/bloglist/internal/middleware"
	"github.com/crucial707/bloglist/internal/models"
	"github.com/crucial707/bloglist/internal/repo"
)

var validate = validator.New()

// postInput is the request body for creating or replacing a post.
type postInput struct {
	Title  string `json:"title" validate:"required"`
	Author string `json:"author" validate:"max=255"`
	URL    string `json:"url" validate:"required"`
	Likes  int    `json:"likes" validate:"min=0"`
}

// ==========================
// PostHandler
// ==========================
type PostHandler struct {
	Repo  *repo.PostRepo
	Users *repo.UserRepo
	Audit *repo.AuditRepo
}

// ==========================
// List Posts
// ==========================
func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.Repo.List(r.Context())
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}
	if posts == nil {
		posts = []models.Post{}
	}

	writeJSON(w, http.StatusOK, posts)
}

// ==========================
// Get Post By ID
// ==========================
func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid post id", http.StatusBadRequest)
		return
	}

	post, err := h.Repo.GetByID(r.Context(), id)
	if errors.Is(err, repo.ErrNotFound) {
		JSONError(w, "post not found", http.StatusNotFound)
		return
	}
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, post)
}

// ==========================
// Create Post (token required; owner set from token subject)
// ==========================
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		JSONError(w, "token invalid", http.StatusUnauthorized)
		return
	}

	// The token may outlive its account; treat a vanished user like a bad token.
	owner, err := h.Users.GetByID(r.Context(), callerID)
	if errors.Is(err, repo.ErrNotFound) {
		JSONError(w, "token invalid", http.StatusUnauthorized)
		return
	}
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	var input postInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(input); err != nil {
		JSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	post, err := h.Repo.Create(r.Context(), input.Title, input.Author, input.URL, input.Likes, owner.ID)
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	if h.Audit != nil {
		_ = h.Audit.Log(r.Context(), callerID, "create", "post", post.ID, post.Title)
	}

	writeJSON(w, http.StatusCreated, post)
}

// ==========================
// Update Post (token required, author only; full-field replace)
// ==========================
func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid post id", http.StatusBadRequest)
		return
	}

	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		JSONError(w, "token invalid", http.StatusUnauthorized)
		return
	}

	post, err := h.Repo.GetByID(r.Context(), id)
	if errors.Is(err, repo.ErrNotFound) {
		JSONError(w, "post not found", http.StatusNotFound)
		return
	}
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	if post.UserID == nil || *post.UserID != callerID {
		JSONError(w, "You are not the author", http.StatusUnauthorized)
		return
	}

	var input postInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(input); err != nil {
		JSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := h.Repo.Update(r.Context(), id, input.Title, input.Author, input.URL, input.Likes)
	if errors.Is(err, repo.ErrNotFound) {
		JSONError(w, "post not found", http.StatusNotFound)
		return
	}
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	if h.Audit != nil {
		_ = h.Audit.Log(r.Context(), callerID, "update", "post", id, updated.Title)
	}

	writeJSON(w, http.StatusOK, updated)
}

// ==========================
// Delete Post (token required, author only)
// ==========================
func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid post id", http.StatusBadRequest)
		return
	}

	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		JSONError(w, "token invalid", http.StatusUnauthorized)
		return
	}

	post, err := h.Repo.GetByID(r.Context(), id)
	if errors.Is(err, repo.ErrNotFound) {
		JSONError(w, "post not found", http.StatusNotFound)
		return
	}
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	if post.UserID == nil || *post.UserID != callerID {
		JSONError(w, "You are not the author", http.StatusUnauthorized)
		return
	}

	if err := h.Repo.Delete(r.Context(), id); err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	if h.Audit != nil {
		_ = h.Audit.Log(r.Context(), callerID, "delete", "post", id, post.Title)
	}

	w.WriteHeader(http.StatusNoContent)
}
