package main

import (
	"github.com/spf13/cobra"
	"github.com/yukikurage/qa-forum-api/internal/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, log, err := openDatabase()
		if err != nil {
			return err
		}
		return database.Migrate(db, log)
	},
}
