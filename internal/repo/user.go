package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/crucial707/bloglist/internal/models"
)

// ==========================
// UserRepo
// ==========================
type UserRepo struct {
	DB *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db}
}

// ==========================
// Create User
// ==========================
func (r *UserRepo) Create(ctx context.Context, username, name, passwordHash string) (*models.User, error) {
	query := `
		INSERT INTO users (username, name, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, username, name
	`

	user := &models.User{}

	err := r.DB.QueryRowContext(ctx, query, username, name, passwordHash).
		Scan(&user.ID, &user.Username, &user.Name)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	return user, nil
}

// ==========================
// Get By ID
// ==========================
func (r *UserRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	query := `
		SELECT id, username, name, password_hash
		FROM users
		WHERE id = $1
	`

	user := &models.User{}

	err := r.DB.QueryRowContext(ctx, query, id).
		Scan(&user.ID, &user.Username, &user.Name, &user.PasswordHash)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}

// ==========================
// Get By Username
// ==========================
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `
		SELECT id, username, name, password_hash
		FROM users
		WHERE username = $1
	`

	user := &models.User{}

	err := r.DB.QueryRowContext(ctx, query, username).
		Scan(&user.ID, &user.Username, &user.Name, &user.PasswordHash)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}

// ==========================
// Update User
// ==========================
func (r *UserRepo) Update(ctx context.Context, id int, username, name, passwordHash string) (*models.User, error) {
	query := `
		UPDATE users
		SET username = $1, name = $2, password_hash = $3
		WHERE id = $4
		RETURNING id, username, name
	`

	user := &models.User{}

	err := r.DB.QueryRowContext(ctx, query, username, name, passwordHash, id).
		Scan(&user.ID, &user.Username, &user.Name)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	return user, nil
}

// ==========================
// Delete User
// ==========================
// Delete removes a user by id. Deleting an id that does not exist is treated
// as success, so the operation is idempotent. Owned posts are kept; their
// user_id becomes NULL via the foreign key.
func (r *UserRepo) Delete(ctx context.Context, id int) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	return err
}

// ==========================
// List Users (owned posts resolved)
// ==========================
func (r *UserRepo) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, username, name FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Name); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachPosts(ctx, users); err != nil {
		return nil, err
	}

	return users, nil
}

// attachPosts resolves each user's owned posts with a single query.
func (r *UserRepo) attachPosts(ctx context.Context, users []models.User) error {
	if len(users) == 0 {
		return nil
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, title, author, url, likes, user_id
		FROM posts
		WHERE user_id IS NOT NULL
		ORDER BY id`)
	if err != nil {
		return err
	}
	defer rows.Close()

	byOwner := make(map[int][]models.Post)
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Author, &p.URL, &p.Likes, &p.UserID); err != nil {
			return err
		}
		byOwner[*p.UserID] = append(byOwner[*p.UserID], p)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range users {
		users[i].Posts = byOwner[users[i].ID]
	}
	return nil
}
