package cmd

import (
	"github.com/spf13/cobra"

	"photogram-api/database"
	"photogram-api/seed"
	"photogram-api/services"
)

var seedOpts = seed.DefaultOptions()

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill an empty database with fake users, posts and comments",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase()
		if err != nil {
			return err
		}
		defer database.Close(db)

		_, err = seed.Run(cmd.Context(), db, services.NewTagService(db), seedOpts, log)
		return err
	},
}

func init() {
	seedCmd.Flags().IntVar(&seedOpts.Users, "users", seedOpts.Users, "number of users to create")
	seedCmd.Flags().IntVar(&seedOpts.PostsPerUser, "posts", seedOpts.PostsPerUser, "posts per user")
	seedCmd.Flags().IntVar(&seedOpts.CommentsPerPost, "comments", seedOpts.CommentsPerPost, "comments per post")
	seedCmd.Flags().Int64Var(&seedOpts.Seed, "seed", 0, "random seed, 0 for a random one")

	RootCmd.AddCommand(seedCmd)
}
