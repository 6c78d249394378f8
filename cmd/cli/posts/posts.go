package posts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/crucial707/bloglist/cmd/cli/config"
	"github.com/crucial707/bloglist/cmd/cli/output"
	"github.com/crucial707/bloglist/cmd/cli/root"
	"github.com/crucial707/bloglist/internal/models"
)

func init() {
	postsCmd := &cobra.Command{
		Use:   "posts",
		Short: "Manage blog posts",
	}

	postsCmd.AddCommand(listPostsCmd(), createPostCmd(), deletePostCmd())
	root.GetRoot().AddCommand(postsCmd)
}

// listPostsCmd prints all posts as a table, or raw JSON with --json.
func listPostsCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all posts",
		Run: func(cmd *cobra.Command, args []string) {
			var posts []models.Post
			if err := apiGet("/posts", &posts); err != nil {
				fmt.Println("Error:", err)
				return
			}

			if asJSON {
				data, _ := json.MarshalIndent(posts, "", "  ")
				fmt.Println(string(data))
				return
			}

			rows := make([][]interface{}, 0, len(posts))
			for _, p := range posts {
				rows = append(rows, []interface{}{p.ID, p.Title, p.Author, p.URL, p.Likes})
			}
			output.RenderTable([]string{"ID", "Title", "Author", "URL", "Likes"}, rows)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print raw JSON instead of a table")
	return cmd
}

// createPostCmd creates a post using the stored token.
func createPostCmd() *cobra.Command {
	var title, author, url string
	var likes int

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new post",
		RunE: func(cmd *cobra.Command, args []string) error {
			if title == "" || url == "" {
				return fmt.Errorf("title and url are required")
			}

			payload := map[string]interface{}{
				"title":  title,
				"author": author,
				"url":    url,
				"likes":  likes,
			}

			var post models.Post
			if err := apiSend("POST", "/posts", payload, &post); err != nil {
				return err
			}

			fmt.Printf("Created post %d: %s\n", post.ID, post.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Post title")
	cmd.Flags().StringVar(&author, "author", "", "Author display name")
	cmd.Flags().StringVar(&url, "url", "", "Post URL")
	cmd.Flags().IntVar(&likes, "likes", 0, "Initial like count")

	return cmd
}

// deletePostCmd deletes an owned post by id.
func deletePostCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one of your posts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := apiSend("DELETE", "/posts/"+args[0], nil, nil); err != nil {
				return err
			}
			fmt.Println("Post deleted.")
			return nil
		},
	}
}

// apiGet fetches path without authentication and decodes JSON into out.
func apiGet(path string, out interface{}) error {
	resp, err := http.Get(config.APIURL() + path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}
	return json.Unmarshal(body, out)
}

// apiSend performs an authenticated request with an optional JSON payload.
func apiSend(method, path string, payload, out interface{}) error {
	token, err := config.LoadToken()
	if err != nil {
		return fmt.Errorf("not logged in (run `blog login` first)")
	}

	var bodyReader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, config.APIURL()+path, bodyReader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}

	if out != nil && len(body) > 0 {
		return json.Unmarshal(body, out)
	}
	return nil
}
