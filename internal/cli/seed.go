package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"taskboard/internal/pkg/database"
	"taskboard/internal/repository"
	"taskboard/internal/seed"
)

// SeedCmd returns the seed subcommand
func SeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load demo users, labels and a sample project",
		Long: `Load demo data. Existing users, labels and projects are left untouched,
so the command can be run repeatedly.

Examples:
  # Built-in demo data (alice, bob, charlie / password123)
  taskboardctl seed

  # Custom fixtures
  taskboardctl seed --file=fixtures.yaml
`,
		RunE: runSeed,
	}

	cmd.Flags().String("file", "", "YAML fixtures file (defaults to the built-in demo data)")

	return cmd
}

func runSeed(cmd *cobra.Command, args []string) error {
	fixtures, err := loadFixtures(cmd)
	if err != nil {
		return err
	}

	db, err := openDatabase(cmd)
	if err != nil {
		return err
	}
	defer func() {
		_ = database.Close(db)
	}()

	// seed 依赖表结构, 先迁移
	if err := database.Migrate(db); err != nil {
		return err
	}

	result, err := seed.Run(cmd.Context(), repository.NewStore(db), fixtures)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "created %d users, %d labels, %d projects, %d tasks\n",
		result.Users, result.Labels, result.Projects, result.Tasks)
	fmt.Fprintf(out, "login with %v / %s\n", fixtures.Users, fixtures.Password)
	return nil
}

func loadFixtures(cmd *cobra.Command) (*seed.Fixtures, error) {
	file, _ := cmd.Flags().GetString("file")
	if file == "" {
		return seed.DefaultFixtures()
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read fixtures: %w", err)
	}
	return seed.Parse(data)
}
