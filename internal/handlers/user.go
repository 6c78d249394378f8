package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/crucial707/bloglist/internal/auth"
	"github.com/crucial707/bloglist/internal/middleware"
	"github.com/crucial707/bloglist/internal/models"
	"github.com/crucial707/bloglist/internal/repo"
)

// MinPasswordLength is the minimum accepted password length on registration
// and password change.
const MinPasswordLength = 3

// ==========================
// UserHandler
// ==========================
type UserHandler struct {
	Repo  *repo.UserRepo
	Audit *repo.AuditRepo
}

// ==========================
// List Users (owned posts resolved, password hash never included)
// ==========================
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Repo.List(r.Context())
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}
	if users == nil {
		users = []models.User{}
	}

	writeJSON(w, http.StatusOK, users)
}

// ==========================
// Get User
// ==========================
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid user id", http.StatusBadRequest)
		return
	}

	user, err := h.Repo.GetByID(r.Context(), id)
	if errors.Is(err, repo.ErrNotFound) {
		JSONError(w, "user not found", http.StatusNotFound)
		return
	}
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// ==========================
// Create User (registration, no auth)
// ==========================
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username"`
		Name     string `json:"name"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	fields := make(map[string]string)
	if input.Username == "" {
		fields["username"] = "required"
	}
	if len(input.Password) < MinPasswordLength {
		fields["password"] = "must be at least 3 characters long"
	}
	if len(fields) > 0 {
		JSONValidationError(w, "validation failed", fields, http.StatusBadRequest)
		return
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	user, err := h.Repo.Create(r.Context(), input.Username, input.Name, hash)
	if errors.Is(err, repo.ErrUsernameTaken) {
		JSONError(w, "expected username to be unique", http.StatusBadRequest)
		return
	}
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// ==========================
// Update User (token required, self only; replaces all fields and re-hashes)
// ==========================
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid user id", http.StatusBadRequest)
		return
	}

	callerID, ok := middleware.GetUserID(r.Context())
	if !ok || callerID != id {
		JSONError(w, "you can only modify your own account", http.StatusUnauthorized)
		return
	}

	var input struct {
		Username string `json:"username"`
		Name     string `json:"name"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	fields := make(map[string]string)
	if input.Username == "" {
		fields["username"] = "required"
	}
	if len(input.Password) < MinPasswordLength {
		fields["password"] = "must be at least 3 characters long"
	}
	if len(fields) > 0 {
		JSONValidationError(w, "validation failed", fields, http.StatusBadRequest)
		return
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	user, err := h.Repo.Update(r.Context(), id, input.Username, input.Name, hash)
	if errors.Is(err, repo.ErrNotFound) {
		JSONError(w, "user not found", http.StatusNotFound)
		return
	}
	if errors.Is(err, repo.ErrUsernameTaken) {
		JSONError(w, "expected username to be unique", http.StatusBadRequest)
		return
	}
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	if h.Audit != nil {
		_ = h.Audit.Log(r.Context(), callerID, "update", "user", id, "")
	}

	writeJSON(w, http.StatusOK, user)
}

// ==========================
// Delete User (token required, self only; idempotent, no cascade)
// ==========================
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid user id", http.StatusBadRequest)
		return
	}

	callerID, ok := middleware.GetUserID(r.Context())
	if !ok || callerID != id {
		JSONError(w, "you can only modify your own account", http.StatusUnauthorized)
		return
	}

	// Owned posts are kept on purpose; their user_id is nulled by the schema.
	if err := h.Repo.Delete(r.Context(), id); err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	if h.Audit != nil {
		_ = h.Audit.Log(r.Context(), callerID, "delete", "user", id, "")
	}

	w.WriteHeader(http.StatusNoContent)
}
