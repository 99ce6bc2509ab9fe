package posts

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/parvez-irfan/BlogSite/cmd/blogctl/output"
	"github.com/parvez-irfan/BlogSite/cmd/blogctl/root"
	"github.com/parvez-irfan/BlogSite/internal/repo"
)

// ==========================
// CLI Command Init
// ==========================
func init() {
	postsCmd := &cobra.Command{
		Use:   "posts",
		Short: "Inspect and manage blog posts",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all posts",
		RunE:  runList,
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a post by id (comments cascade)",
		Args:  cobra.ExactArgs(1),
		RunE:  runDelete,
	}
	deleteCmd.Flags().IntVar(&deletedBy, "by", 0, "operator user id recorded in the audit log")

	postsCmd.AddCommand(listCmd, deleteCmd)
	root.GetRoot().AddCommand(postsCmd)
}

// ==========================
// List Posts
// ==========================
func runList(cmd *cobra.Command, args []string) error {
	db, err := root.ConnectDB()
	if err != nil {
		return err
	}
	defer db.Close()

	posts, err := repo.NewPostRepo(db).List(context.Background())
	if err != nil {
		return err
	}

	rows := make([][]interface{}, 0, len(posts))
	for _, p := range posts {
		rows = append(rows, []interface{}{p.ID, p.Title, p.AuthorName, p.Date})
	}
	output.RenderTable([]string{"ID", "Title", "Author", "Date"}, rows)
	return nil
}

// ==========================
// Delete Post
// ==========================
// Operator identity for the audit entry; 0 means unattributed.
var deletedBy int

// The delete and its audit entry commit together, as in the web pipeline.
func runDelete(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid post id %q", args[0])
	}

	db, err := root.ConnectDB()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := deletePost(context.Background(), db, id, deletedBy); err != nil {
		return err
	}

	fmt.Printf("Post %d deleted.\n", id)
	return nil
}

// deletePost removes the post and records the audit entry in one transaction.
func deletePost(ctx context.Context, db *sql.DB, id, by int) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := repo.NewPostRepo(tx).Delete(ctx, id); err != nil {
		return err
	}

	if err := repo.NewAuditRepo(tx).Log(ctx, by, "delete", "post", id, ""); err != nil {
		return err
	}

	return tx.Commit()
}
