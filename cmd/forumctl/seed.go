package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yukikurage/qa-forum-api/internal/database"
	"github.com/yukikurage/qa-forum-api/internal/seed"
)

var seedOpts = seed.DefaultOptions()

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill the database with demo content",
	Long: `Insert generated categories, tags, users, questions and answers.

Every generated user has the password "` + seed.DefaultPassword + `". Run this against
development databases only.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, log, err := openDatabase()
		if err != nil {
			return err
		}
		if err := database.Migrate(db, log); err != nil {
			return err
		}

		result, err := seed.Seed(db, seedOpts, log)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d categories, %d tags, %d users, %d questions and %d answers\n",
			result.Categories, result.Tags, result.Users, result.Questions, result.Answers)
		return nil
	},
}

func init() {
	flags := seedCmd.Flags()
	flags.IntVar(&seedOpts.Categories, "categories", seedOpts.Categories, "number of categories")
	flags.IntVar(&seedOpts.Tags, "tags", seedOpts.Tags, "number of tags")
	flags.IntVar(&seedOpts.Users, "users", seedOpts.Users, "number of users")
	flags.IntVar(&seedOpts.Questions, "questions", seedOpts.Questions, "number of questions")
	flags.IntVar(&seedOpts.MaxAnswers, "max-answers", seedOpts.MaxAnswers, "maximum answers per question")
	flags.Int64Var(&seedOpts.Seed, "seed", 0, "random seed (0 picks one)")
}
