package cmd

import (
	"github.com/spf13/cobra"

	"photogram-api/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase()
		if err != nil {
			return err
		}
		defer database.Close(db)

		log.Info("Database migrated")
		return nil
	},
}

func init() {
	RootCmd.AddCommand(migrateCmd)
}
