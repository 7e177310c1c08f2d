package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yukikurage/qa-forum-api/internal/repository"
	"github.com/yukikurage/qa-forum-api/internal/services"
)

var adminInput services.SignupInput

var createAdminCmd = &cobra.Command{
	Use:     "create-admin",
	Short:   "Create a user with the administrator role",
	Example: `  forumctl create-admin --email admin@example.com --nickname admin --password 's3cret-pass'`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, log, err := openDatabase()
		if err != nil {
			return err
		}

		auth := services.NewAuthService(repository.NewUserRepository(db), log)
		user, err := auth.CreateAdmin(cmd.Context(), adminInput)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "created administrator %s (id %d)\n", user.Email, user.ID)
		return nil
	},
}

func init() {
	flags := createAdminCmd.Flags()
	flags.StringVar(&adminInput.Email, "email", "", "administrator email")
	flags.StringVar(&adminInput.Nickname, "nickname", "", "administrator nickname")
	flags.StringVar(&adminInput.Password, "password", "", "administrator password")
	_ = createAdminCmd.MarkFlagRequired("email")
	_ = createAdminCmd.MarkFlagRequired("nickname")
	_ = createAdminCmd.MarkFlagRequired("password")
}
