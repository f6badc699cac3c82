package cli

import (
	"bufio"

	"github.com/dmitrijs2005/calcapi/internal/shared"
	"github.com/spf13/cobra"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func (a *App) newRegisterCmd() *cobra.Command {
	var username, email string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and print its access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reader := bufio.NewReader(cmd.InOrStdin())
			out := cmd.OutOrStdout()

			var err error
			if username == "" {
				if username, err = getSimpleText(reader, "Enter username", out); err != nil {
					return err
				}
			}
			if email == "" {
				if email, err = getSimpleText(reader, "Enter email", out); err != nil {
					return err
				}
			}

			password, err := getPassword(out)
			if err != nil {
				return err
			}
			defer shared.WipeByteArray(password)

			token, err := a.client.Register(cmd.Context(), username, email, string(password))
			if err != nil {
				return explain(err)
			}

			cmd.Println("Registered.")
			cmd.Println(token)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "account username (prompted if empty)")
	cmd.Flags().StringVar(&email, "email", "", "account email (prompted if empty)")

	return cmd
}

func (a *App) newLoginCmd() *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and print a fresh access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reader := bufio.NewReader(cmd.InOrStdin())
			out := cmd.OutOrStdout()

			var err error
			if username == "" {
				if username, err = getSimpleText(reader, "Enter username", out); err != nil {
					return err
				}
			}

			password, err := getPassword(out)
			if err != nil {
				return err
			}
			defer shared.WipeByteArray(password)

			token, err := a.client.Login(cmd.Context(), username, string(password))
			if err != nil {
				return explain(err)
			}

			cmd.Println("Login successful.")
			cmd.Println(token)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "account username (prompted if empty)")

	return cmd
}
