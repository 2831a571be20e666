package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"taskboard/internal/pkg/database"
)

// MigrateCmd returns the migrate subcommand
func MigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE:  runMigrate,
	}
}

func runMigrate(cmd *cobra.Command, args []string) error {
	db, err := openDatabase(cmd)
	if err != nil {
		return err
	}
	defer func() {
		_ = database.Close(db)
	}()

	if err := database.Migrate(db); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
	return nil
}
