package main

import (
	"fmt"
	"os"

	"github.com/crucial707/bloglist/cmd/cli/root"

	_ "github.com/crucial707/bloglist/cmd/cli/auth"
	_ "github.com/crucial707/bloglist/cmd/cli/posts"
	_ "github.com/crucial707/bloglist/cmd/cli/stats"
	_ "github.com/crucial707/bloglist/cmd/cli/users"
)

func main() {
	if err := root.GetRoot().Execute(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
