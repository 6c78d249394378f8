package stats

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/crucial707/bloglist/cmd/cli/config"
	"github.com/crucial707/bloglist/cmd/cli/output"
	"github.com/crucial707/bloglist/cmd/cli/root"
)

func init() {
	root.GetRoot().AddCommand(statsCmd())
}

// statsCmd prints blog-wide aggregates.
func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show blog-wide statistics",
		Run: func(cmd *cobra.Command, args []string) {
			var out struct {
				TotalLikes   int `json:"total_likes"`
				FavoritePost *struct {
					Title string `json:"title"`
					Likes int    `json:"likes"`
				} `json:"favorite_post"`
				MostProlificAuthor *struct {
					Author string `json:"author"`
					Posts  int    `json:"posts"`
				} `json:"most_prolific_author"`
				MostLikedAuthor *struct {
					Author string `json:"author"`
					Likes  int    `json:"likes"`
				} `json:"most_liked_author"`
			}

			resp, err := http.Get(config.APIURL() + "/stats")
			if err != nil {
				fmt.Println("Error:", err)
				return
			}
			defer resp.Body.Close()

			body, _ := io.ReadAll(resp.Body)
			if resp.StatusCode != http.StatusOK {
				fmt.Printf("Error: status %d: %s\n", resp.StatusCode, string(body))
				return
			}
			if err := json.Unmarshal(body, &out); err != nil {
				fmt.Println("Error:", err)
				return
			}

			rows := [][]interface{}{
				{"Total likes", fmt.Sprintf("%d", out.TotalLikes)},
			}
			if out.FavoritePost != nil {
				rows = append(rows, []interface{}{"Favorite post", fmt.Sprintf("%s (%d likes)", out.FavoritePost.Title, out.FavoritePost.Likes)})
			}
			if out.MostProlificAuthor != nil {
				rows = append(rows, []interface{}{"Most posts", fmt.Sprintf("%s (%d)", out.MostProlificAuthor.Author, out.MostProlificAuthor.Posts)})
			}
			if out.MostLikedAuthor != nil {
				rows = append(rows, []interface{}{"Most liked author", fmt.Sprintf("%s (%d likes)", out.MostLikedAuthor.Author, out.MostLikedAuthor.Likes)})
			}
			output.RenderTable([]string{"Metric", "Value"}, rows)
		},
	}
}
