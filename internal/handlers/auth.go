package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/crucial707/bloglist/internal/auth"
	"github.com/crucial707/bloglist/internal/repo"
)

// ==========================
// Auth Handler
// ==========================
type AuthHandler struct {
	Users  *repo.UserRepo
	Tokens *auth.TokenService
}

// ==========================
// Login (verifies bcrypt digest, returns signed token)
// ==========================
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	user, err := h.Users.GetByUsername(r.Context(), input.Username)
	if errors.Is(err, repo.ErrNotFound) {
		JSONError(w, "invalid username or password", http.StatusUnauthorized)
		return
	}
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	if !auth.CheckPassword(input.Password, user.PasswordHash) {
		JSONError(w, "invalid username or password", http.StatusUnauthorized)
		return
	}

	token, err := h.Tokens.Issue(user.ID, user.Username)
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token":    token,
		"id":       user.ID,
		"username": user.Username,
		"name":     user.Name,
	})
}
