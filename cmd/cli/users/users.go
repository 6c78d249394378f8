package users

import (
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
	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "Inspect registered users",
	}

	usersCmd.AddCommand(listUsersCmd())
	root.GetRoot().AddCommand(usersCmd)
}

// listUsersCmd prints all users with their post counts.
func listUsersCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all users",
		Run: func(cmd *cobra.Command, args []string) {
			var users []models.User
			if err := fetchUsers(&users); err != nil {
				fmt.Println("Error:", err)
				return
			}

			if asJSON {
				data, _ := json.MarshalIndent(users, "", "  ")
				fmt.Println(string(data))
				return
			}

			rows := make([][]interface{}, 0, len(users))
			for _, u := range users {
				rows = append(rows, []interface{}{u.ID, u.Username, u.Name, len(u.Posts)})
			}
			output.RenderTable([]string{"ID", "Username", "Name", "Posts"}, rows)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print raw JSON instead of a table")
	return cmd
}

func fetchUsers(out *[]models.User) error {
	resp, err := http.Get(config.APIURL() + "/users")
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
