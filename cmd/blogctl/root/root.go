package root

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/parvez-irfan/BlogSite/internal/config"
	"github.com/parvez-irfan/BlogSite/internal/db"
)

// Exported RootCmd
var RootCmd = &cobra.Command{
	Use:   "blogctl",
	Short: "BlogSite admin CLI",
	Long:  "Administrative command line interface for the BlogSite database: inspect posts and users, manage author roles.",
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// Optional helper to return the RootCmd
func GetRoot() *cobra.Command {
	return RootCmd
}

// ConnectDB opens the blog database using the same environment configuration
// as the server. Callers own closing it.
func ConnectDB() (*sql.DB, error) {
	cfg := config.Load()
	return db.Connect(cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBUser, cfg.DBPass)
}
