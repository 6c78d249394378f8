package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"

	"github.com/crucial707/bloglist/internal/middleware"
	"github.com/crucial707/bloglist/internal/repo"
)

func requestWithChiURLParams(method, path string, body []byte, params map[string]string) *http.Request {
	var r *http.Request
	if body != nil {
		r = httptest.NewRequest(method, path, bytes.NewReader(body))
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
	return r
}

// asUser marks the request as authenticated for the given user id.
func asUser(r *http.Request, userID int) *http.Request {
	return r.WithContext(middleware.WithUserID(r.Context(), userID))
}

func newPostHandler(t *testing.T) (*PostHandler, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	h := &PostHandler{Repo: repo.NewPostRepo(db), Users: repo.NewUserRepo(db)}
	return h, mock, func() { db.Close() }
}

func TestPostHandler_ListPosts(t *testing.T) {
	h, mock, done := newPostHandler(t)
	defer done()

	mock.ExpectQuery(`SELECT id, title, author, url, likes, user_id FROM posts ORDER BY id`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "author", "url", "likes", "user_id"}).
			AddRow(1, "async/await simplifies making async calls", "Test Author", "http://example.com", 5, 1))

	req := httptest.NewRequest("GET", "/posts", nil)
	rr := httptest.NewRecorder()
	h.ListPosts(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("ListPosts status: got %d, want 200", rr.Code)
	}
	var posts []struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&posts); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(posts) != 1 || posts[0].Title != "async/await simplifies making async calls" {
		t.Errorf("unexpected posts: %+v", posts)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestPostHandler_GetPost_NotFound(t *testing.T) {
	h, mock, done := newPostHandler(t)
	defer done()

	mock.ExpectQuery(`SELECT id, title, author, url, likes, user_id`).
		WithArgs(999).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "author", "url", "likes", "user_id"}))

	req := requestWithChiURLParams("GET", "/posts/999", nil, map[string]string{"id": "999"})
	rr := httptest.NewRecorder()
	h.GetPost(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("GetPost status: got %d, want 404", rr.Code)
	}
}

func TestPostHandler_CreatePost(t *testing.T) {
	h, mock, done := newPostHandler(t)
	defer done()

	mock.ExpectQuery(`SELECT id, username, name, password_hash`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "name", "password_hash"}).
			AddRow(1, "root", "Superuser", "digest"))
	mock.ExpectQuery(`INSERT INTO posts`).
		WithArgs("New Blog", "New Author", "http://newblog.com", 10, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "author", "url", "likes", "user_id"}).
			AddRow(2, "New Blog", "New Author", "http://newblog.com", 10, 1))

	body, _ := json.Marshal(map[string]interface{}{
		"title":  "New Blog",
		"author": "New Author",
		"url":    "http://newblog.com",
		"likes":  10,
	})
	req := asUser(httptest.NewRequest("POST", "/posts", bytes.NewReader(body)), 1)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.CreatePost(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("CreatePost status: got %d, want 201 (body: %s)", rr.Code, rr.Body.String())
	}
	var post struct {
		ID     int  `json:"id"`
		UserID *int `json:"user_id"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&post); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if post.ID != 2 || post.UserID == nil || *post.UserID != 1 {
		t.Errorf("unexpected post: %+v", post)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestPostHandler_CreatePost_MissingTitleOrURL(t *testing.T) {
	h, mock, done := newPostHandler(t)
	defer done()

	// Owner lookup happens before validation; no insert must follow.
	mock.ExpectQuery(`SELECT id, username, name, password_hash`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "name", "password_hash"}).
			AddRow(1, "root", "Superuser", "digest"))

	body, _ := json.Marshal(map[string]interface{}{"author": "New Author", "likes": 10})
	req := asUser(httptest.NewRequest("POST", "/posts", bytes.NewReader(body)), 1)
	rr := httptest.NewRecorder()
	h.CreatePost(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("CreatePost status: got %d, want 400", rr.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestPostHandler_CreatePost_OwnerGone(t *testing.T) {
	h, mock, done := newPostHandler(t)
	defer done()

	mock.ExpectQuery(`SELECT id, username, name, password_hash`).
		WithArgs(9).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "name", "password_hash"}))

	body, _ := json.Marshal(map[string]interface{}{"title": "t", "url": "http://u"})
	req := asUser(httptest.NewRequest("POST", "/posts", bytes.NewReader(body)), 9)
	rr := httptest.NewRecorder()
	h.CreatePost(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("CreatePost status: got %d, want 401", rr.Code)
	}
	var out struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil || out.Error != "token invalid" {
		t.Errorf("unexpected body: %s", rr.Body.String())
	}
}

func TestPostHandler_DeletePost_NotTheAuthor(t *testing.T) {
	h, mock, done := newPostHandler(t)
	defer done()

	mock.ExpectQuery(`SELECT id, title, author, url, likes, user_id`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "author", "url", "likes", "user_id"}).
			AddRow(1, "t", "a", "http://u", 0, 1))

	req := asUser(requestWithChiURLParams("DELETE", "/posts/1", nil, map[string]string{"id": "1"}), 2)
	rr := httptest.NewRecorder()
	h.DeletePost(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("DeletePost status: got %d, want 401", rr.Code)
	}
	var out struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil || out.Error != "You are not the author" {
		t.Errorf("unexpected body: %s", rr.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestPostHandler_DeletePost_Owner(t *testing.T) {
	h, mock, done := newPostHandler(t)
	defer done()

	mock.ExpectQuery(`SELECT id, title, author, url, likes, user_id`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "author", "url", "likes", "user_id"}).
			AddRow(1, "t", "a", "http://u", 0, 2))
	mock.ExpectExec(`DELETE FROM posts WHERE id = \$1`).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	req := asUser(requestWithChiURLParams("DELETE", "/posts/1", nil, map[string]string{"id": "1"}), 2)
	rr := httptest.NewRecorder()
	h.DeletePost(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Errorf("DeletePost status: got %d, want 204", rr.Code)
	}
	if rr.Body.Len() != 0 {
		t.Errorf("204 response must have no body, got %q", rr.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestPostHandler_DeletePost_Missing(t *testing.T) {
	h, mock, done := newPostHandler(t)
	defer done()

	mock.ExpectQuery(`SELECT id, title, author, url, likes, user_id`).
		WithArgs(404).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "author", "url", "likes", "user_id"}))

	req := asUser(requestWithChiURLParams("DELETE", "/posts/404", nil, map[string]string{"id": "404"}), 2)
	rr := httptest.NewRecorder()
	h.DeletePost(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("DeletePost status: got %d, want 404", rr.Code)
	}
}

func TestPostHandler_UpdatePost_RequiresOwnership(t *testing.T) {
	h, mock, done := newPostHandler(t)
	defer done()

	mock.ExpectQuery(`SELECT id, title, author, url, likes, user_id`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "author", "url", "likes", "user_id"}).
			AddRow(1, "t", "a", "http://u", 0, 1))

	body, _ := json.Marshal(map[string]interface{}{"title": "edited", "url": "http://u", "likes": 1})
	req := asUser(requestWithChiURLParams("PUT", "/posts/1", body, map[string]string{"id": "1"}), 5)
	rr := httptest.NewRecorder()
	h.UpdatePost(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("UpdatePost status: got %d, want 401", rr.Code)
	}
}

func TestPostHandler_UpdatePost_Owner(t *testing.T) {
	h, mock, done := newPostHandler(t)
	defer done()

	mock.ExpectQuery(`SELECT id, title, author, url, likes, user_id`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "author", "url", "likes", "user_id"}).
			AddRow(1, "t", "a", "http://u", 0, 5))
	mock.ExpectQuery(`UPDATE posts`).
		WithArgs("edited", "a", "http://u", 3, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "author", "url", "likes", "user_id"}).
			AddRow(1, "edited", "a", "http://u", 3, 5))

	body, _ := json.Marshal(map[string]interface{}{"title": "edited", "author": "a", "url": "http://u", "likes": 3})
	req := asUser(requestWithChiURLParams("PUT", "/posts/1", body, map[string]string{"id": "1"}), 5)
	rr := httptest.NewRecorder()
	h.UpdatePost(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("UpdatePost status: got %d, want 200 (body: %s)", rr.Code, rr.Body.String())
	}
	var post struct {
		Title string `json:"title"`
		Likes int    `json:"likes"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&post); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if post.Title != "edited" || post.Likes != 3 {
		t.Errorf("unexpected post: %+v", post)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
