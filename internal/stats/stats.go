// Package stats computes aggregates over a slice of posts. All functions are
// pure and deterministic; functions that can have no meaningful answer return
// a second boolean result, false for an empty input or when every like count
// is zero.
package stats

import "github.com/crucial707/bloglist/internal/models"

// AuthorPosts is an author together with how many posts they wrote.
type AuthorPosts struct {
	Author string `json:"author"`
	Posts  int    `json:"posts"`
}

// AuthorLikes is an author together with the sum of likes across their posts.
type AuthorLikes struct {
	Author string `json:"author"`
	Likes  int    `json:"likes"`
}

// TotalLikes returns the sum of like counts. Empty input sums to 0.
func TotalLikes(posts []models.Post) int {
	sum := 0
	for _, p := range posts {
		sum += p.Likes
	}
	return sum
}

// FavoritePost returns the post with the highest like count. Ties go to the
// first post reaching the maximum in input order.
func FavoritePost(posts []models.Post) (models.Post, bool) {
	if len(posts) == 0 {
		return models.Post{}, false
	}

	best := posts[0]
	for _, p := range posts[1:] {
		if p.Likes > best.Likes {
			best = p
		}
	}
	if best.Likes == 0 {
		return models.Post{}, false
	}
	return best, true
}

// MostProlificAuthor returns the author with the most posts and that count.
// Ties go to the author appearing first in the input.
func MostProlificAuthor(posts []models.Post) (AuthorPosts, bool) {
	if len(posts) == 0 {
		return AuthorPosts{}, false
	}

	counts := make(map[string]int)
	var order []string
	for _, p := range posts {
		if _, seen := counts[p.Author]; !seen {
			order = append(order, p.Author)
		}
		counts[p.Author]++
	}

	best := AuthorPosts{}
	for _, author := range order {
		if counts[author] > best.Posts {
			best = AuthorPosts{Author: author, Posts: counts[author]}
		}
	}
	if best.Posts == 0 {
		return AuthorPosts{}, false
	}
	return best, true
}

// MostLikedAuthor returns the author with the highest total like count.
// Ties go to the author appearing first in the input.
func MostLikedAuthor(posts []models.Post) (AuthorLikes, bool) {
	if len(posts) == 0 {
		return AuthorLikes{}, false
	}

	likes := make(map[string]int)
	var order []string
	for _, p := range posts {
		if _, seen := likes[p.Author]; !seen {
			order = append(order, p.Author)
		}
		likes[p.Author] += p.Likes
	}

	best := AuthorLikes{Likes: -1}
	for _, author := range order {
		if likes[author] > best.Likes {
			best = AuthorLikes{Author: author, Likes: likes[author]}
		}
	}
	if best.Likes == 0 {
		return AuthorLikes{}, false
	}
	return best, true
}
