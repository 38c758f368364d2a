package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"doccms/internal/auth"
	"doccms/internal/config"
)

var userFlags = struct {
	Password string
}{}

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage the credential file",
}

var userAddCmd = &cobra.Command{
	Use:   "add <username>",
	Short: "Add a user or replace their password",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if userFlags.Password == "" {
			return errors.New("--password is required")
		}

		cfg := config.Load()
		creds, err := auth.LoadCredentials(cfg.Auth.UsersFile)
		if err != nil {
			return err
		}
		if err := creds.Set(args[0], userFlags.Password); err != nil {
			return err
		}
		if err := creds.Save(); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "saved %s to %s\n", args[0], cfg.Auth.UsersFile)
		return nil
	},
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the usernames in the credential file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		creds, err := auth.LoadCredentials(config.Load().Auth.UsersFile)
		if err != nil {
			return err
		}
		for _, u := range creds.Usernames() {
			fmt.Fprintln(cmd.OutOrStdout(), u)
		}
		return nil
	},
}

func init() {
	userAddCmd.Flags().StringVarP(&userFlags.Password, "password", "p", "", "password to hash and store")
	userCmd.AddCommand(userAddCmd, userListCmd)
}
