package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/crucial707/bloglist/internal/models"
)

// ==========================
// PostRepo
// ==========================
type PostRepo struct {
	DB *sql.DB
}

func NewPostRepo(db *sql.DB) *PostRepo {
	return &PostRepo{DB: db}
}

// ==========================
// Create Post
// ==========================
func (r *PostRepo) Create(ctx context.Context, title, author, url string, likes, userID int) (*models.Post, error) {
	query := `
		INSERT INTO posts (title, author, url, likes, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, title, author, url, likes, user_id
	`

	post := &models.Post{}

	err := r.DB.QueryRowContext(ctx, query, title, author, url, likes, userID).
		Scan(&post.ID, &post.Title, &post.Author, &post.URL, &post.Likes, &post.UserID)

	if err != nil {
		return nil, err
	}

	return post, nil
}

// ==========================
// Get By ID
// ==========================
func (r *PostRepo) GetByID(ctx context.Context, id int) (*models.Post, error) {
	query := `
		SELECT id, title, author, url, likes, user_id
		FROM posts
		WHERE id = $1
	`

	post := &models.Post{}

	err := r.DB.QueryRowContext(ctx, query, id).
		Scan(&post.ID, &post.Title, &post.Author, &post.URL, &post.Likes, &post.UserID)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return post, nil
}

// ==========================
// Update Post (full-field replace)
// ==========================
func (r *PostRepo) Update(ctx context.Context, id int, title, author, url string, likes int) (*models.Post, error) {
	query := `
		UPDATE posts
		SET title = $1, author = $2, url = $3, likes = $4
		WHERE id = $5
		RETURNING id, title, author, url, likes, user_id
	`

	post := &models.Post{}

	err := r.DB.QueryRowContext(ctx, query, title, author, url, likes, id).
		Scan(&post.ID, &post.Title, &post.Author, &post.URL, &post.Likes, &post.UserID)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return post, nil
}

// ==========================
// Delete Post
// ==========================
func (r *PostRepo) Delete(ctx context.Context, id int) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// ==========================
// List Posts
// ==========================
func (r *PostRepo) List(ctx context.Context) ([]models.Post, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, title, author, url, likes, user_id FROM posts ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Author, &p.URL, &p.Likes, &p.UserID); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}

	return posts, rows.Err()
}
