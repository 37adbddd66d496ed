package main

import (
	"bufio"
	"context"
	"fmt"

	"github.com/ErlanBelekov/taskboard/internal/client/api"
	"github.com/spf13/cobra"
)

type credentialFlags struct {
	email    string
	password string
}

func (f *credentialFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.email, "email", "", "account email (prompted when empty)")
	cmd.Flags().StringVar(&f.password, "password", "", "account password (prompted when empty)")
}

func (f *credentialFlags) fill(cmd *cobra.Command, r *bufio.Reader) error {
	var err error
	if f.email == "" {
		if f.email, err = promptLine(cmd.OutOrStdout(), r, "Email"); err != nil {
			return err
		}
	}
	if f.password == "" {
		if f.password, err = promptPassword(cmd.OutOrStdout(), r, "Password"); err != nil {
			return err
		}
	}
	return nil
}

func newRegisterCmd(a *app) *cobra.Command {
	creds := &credentialFlags{}
	var name, confirm string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r := bufio.NewReader(cmd.InOrStdin())
			if err := creds.fill(cmd, r); err != nil {
				return err
			}
			if confirm == "" {
				var err error
				if confirm, err = promptPassword(cmd.OutOrStdout(), r, "Confirm password"); err != nil {
					return err
				}
			}

			user, err := a.client.Register(cmd.Context(), api.RegisterRequest{
				Email:           creds.email,
				Password:        creds.password,
				ConfirmPassword: confirm,
				Name:            name,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered %s. Run \"taskboard login\" to sign in.\n", user.Email)
			return nil
		},
	}

	creds.register(cmd)
	cmd.Flags().StringVar(&confirm, "confirm", "", "password confirmation (prompted when empty)")
	cmd.Flags().StringVar(&name, "name", "", "display name")
	return cmd
}

func newLoginCmd(a *app) *cobra.Command {
	creds := &credentialFlags{}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and remember the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := creds.fill(cmd, bufio.NewReader(cmd.InOrStdin())); err != nil {
				return err
			}

			resp, err := a.client.Login(cmd.Context(), api.LoginRequest{Email: creds.email, Password: creds.password})
			if err != nil {
				return err
			}
			if err := a.store.Login(resp.Token, resp.User); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (session expires %s).\n", resp.User.Email, resp.ExpiresAt.Local().Format("15:04"))
			return nil
		},
	}

	creds.register(cmd)
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.store.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.protected(cmd.Context(), func(_ context.Context, user api.User) error {
				out := cmd.OutOrStdout()
				if user.Name != "" {
					fmt.Fprintf(out, "%s <%s>\n", user.Name, user.Email)
				} else {
					fmt.Fprintln(out, user.Email)
				}
				fmt.Fprintf(out, "id: %s\n", user.ID)
				return nil
			})
		},
	}
}
