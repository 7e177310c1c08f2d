// Command forumctl runs maintenance tasks against the forum database.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/yukikurage/qa-forum-api/internal/config"
	"github.com/yukikurage/qa-forum-api/internal/database"
	"github.com/yukikurage/qa-forum-api/internal/logging"
	"gorm.io/gorm"
)

var rootCmd = &cobra.Command{
	Use:           "forumctl",
	Short:         "Operate the Q&A forum database",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	rootCmd.AddCommand(migrateCmd, seedCmd, createAdminCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// openDatabase loads configuration from the environment and connects to the database.
func openDatabase() (*gorm.DB, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	log := logging.New(cfg)
	db, err := database.Connect(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return db, log, nil
}
