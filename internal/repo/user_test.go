package repo

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
)

func TestUserRepo_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO users \(username, name, password_hash\)`).
		WithArgs("alice", "Alice A", "digest").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "name"}).AddRow(1, "alice", "Alice A"))

	repo := NewUserRepo(db)
	user, err := repo.Create(context.Background(), "alice", "Alice A", "digest")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if user.ID != 1 || user.Username != "alice" || user.Name != "Alice A" {
		t.Errorf("unexpected user: %+v", user)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestUserRepo_Create_UsernameTaken(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("root", "Superuser", "digest").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "users_username_key"})

	repo := NewUserRepo(db)
	_, err = repo.Create(context.Background(), "root", "Superuser", "digest")
	if !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("expected ErrUsernameTaken, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestUserRepo_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT id, username, name, password_hash`).
		WithArgs(999).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "name", "password_hash"}))

	repo := NewUserRepo(db)
	_, err = repo.GetByID(context.Background(), 999)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestUserRepo_GetByUsername(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT id, username, name, password_hash`).
		WithArgs("root").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "name", "password_hash"}).
			AddRow(1, "root", "Superuser", "digest"))

	repo := NewUserRepo(db)
	user, err := repo.GetByUsername(context.Background(), "root")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if user.ID != 1 || user.PasswordHash != "digest" {
		t.Errorf("unexpected user: %+v", user)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestUserRepo_List_ResolvesOwnedPosts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT id, username, name FROM users ORDER BY id`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "name"}).
			AddRow(1, "alice", "").
			AddRow(2, "bob", ""))
	mock.ExpectQuery(`SELECT id, title, author, url, likes, user_id\s+FROM posts`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "author", "url", "likes", "user_id"}).
			AddRow(10, "first", "Alice", "http://a", 3, 1).
			AddRow(11, "second", "Alice", "http://b", 1, 1))

	repo := NewUserRepo(db)
	users, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	if len(users[0].Posts) != 2 || users[0].Posts[0].Title != "first" {
		t.Errorf("alice's posts not resolved: %+v", users[0].Posts)
	}
	if len(users[1].Posts) != 0 {
		t.Errorf("bob should have no posts: %+v", users[1].Posts)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestUserRepo_Delete_MissingIDIsSuccess(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`DELETE FROM users WHERE id = \$1`).
		WithArgs(42).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewUserRepo(db)
	if err := repo.Delete(context.Background(), 42); err != nil {
		t.Errorf("Delete of a missing id should be idempotent, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
