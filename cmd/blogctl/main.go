package main

import (
	"fmt"
	"os"

	"github.com/parvez-irfan/BlogSite/cmd/blogctl/root"

	_ "github.com/parvez-irfan/BlogSite/cmd/blogctl/posts"
	_ "github.com/parvez-irfan/BlogSite/cmd/blogctl/users"
)

func main() {
	// Execute the root Cobra command
	if err := root.GetRoot().Execute(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
