// Package cli holds the taskboardctl maintenance commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"taskboard/internal/pkg/config"
	"taskboard/internal/pkg/database"
	"taskboard/internal/pkg/logger"
)

// RootCmd returns the taskboardctl root command
func RootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "taskboardctl",
		Short:         "Taskboard maintenance commands",
		Long:          `taskboardctl prepares the taskboard database: schema migration and demo data.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("config", "", "Config file (defaults to CONFIG_FILE or configs/config.yaml)")

	cmd.AddCommand(MigrateCmd())
	cmd.AddCommand(SeedCmd())

	return cmd
}

// openDatabase 读取配置, 初始化日志并连接数据库
func openDatabase(cmd *cobra.Command) (*gorm.DB, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}

	cfg, err := config.Read(path)
	if err != nil {
		return nil, err
	}
	if err := logger.Init(&cfg.Log); err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	db, err := database.Open(&cfg.Database)
	if err != nil {
		return nil, err
	}
	return db, nil
}
