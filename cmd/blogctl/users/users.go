package users

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/parvez-irfan/BlogSite/cmd/blogctl/output"
	"github.com/parvez-irfan/BlogSite/cmd/blogctl/root"
	"github.com/parvez-irfan/BlogSite/internal/models"
	"github.com/parvez-irfan/BlogSite/internal/repo"
)

// ==========================
// CLI Command Init
// ==========================
func init() {
	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "Inspect users and manage author roles",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all users",
		RunE:  runList,
	}

	promoteCmd := &cobra.Command{
		Use:   "promote <id>",
		Short: "Grant the author role to a user",
		Args:  cobra.ExactArgs(1),
		RunE:  setRole(models.RoleAuthor),
	}

	demoteCmd := &cobra.Command{
		Use:   "demote <id>",
		Short: "Revoke the author role from a user",
		Args:  cobra.ExactArgs(1),
		RunE:  setRole(models.RoleReader),
	}

	usersCmd.AddCommand(listCmd, promoteCmd, demoteCmd)
	root.GetRoot().AddCommand(usersCmd)
}

// ==========================
// List Users
// ==========================
func runList(cmd *cobra.Command, args []string) error {
	db, err := root.ConnectDB()
	if err != nil {
		return err
	}
	defer db.Close()

	users, err := repo.NewUserRepo(db).List(context.Background())
	if err != nil {
		return err
	}

	rows := make([][]interface{}, 0, len(users))
	for _, u := range users {
		rows = append(rows, []interface{}{u.ID, u.Name, u.Email, u.Role})
	}
	output.RenderTable([]string{"ID", "Name", "Email", "Role"}, rows)
	return nil
}

// ==========================
// Promote / Demote
// ==========================
// The role change and its audit entry commit together.
func setRole(role string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid user id %q", args[0])
		}

		db, err := root.ConnectDB()
		if err != nil {
			return err
		}
		defer db.Close()

		ctx := context.Background()
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		defer tx.Rollback()

		user, err := repo.NewUserRepo(tx).SetRole(ctx, id, role)
		if err != nil {
			return err
		}

		action := "promote"
		if role == models.RoleReader {
			action = "demote"
		}
		if err := repo.NewAuditRepo(tx).Log(ctx, user.ID, action, "user", user.ID, role); err != nil {
			return err
		}

		if err := tx.Commit(); err != nil {
			return err
		}

		fmt.Printf("User %d (%s) is now %s.\n", user.ID, user.Name, user.Role)
		return nil
	}
}
