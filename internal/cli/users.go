package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/libris/internal/domain"
)

func usersCmd(opts *rootOptions) *cobra.Command {
	c := &cobra.Command{
		Use:   "users",
		Short: "Browse and manage library members",
	}

	c.AddCommand(
		usersListCmd(opts),
		usersShowCmd(opts),
		usersAddCmd(opts),
		usersDeleteCmd(opts),
	)
	return c
}

func usersListCmd(opts *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			app, err := loadApp(opts)
			if err != nil {
				return err
			}
			defer app.Close()

			ctx := cmd.Context()
			app.lib.Restore(ctx)
			syncErr := app.lib.FetchUsers(ctx)

			if err := printUsers(cmd.OutOrStdout(), app.lib.State().Users, format); err != nil {
				return err
			}
			return syncErr
		},
	}

	addFormatFlag(cmd, &format)
	return cmd
}

func usersShowCmd(opts *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one user and their loans",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			id, err := parseID(args[0], "user")
			if err != nil {
				return err
			}
			app, err := loadApp(opts)
			if err != nil {
				return err
			}
			defer app.Close()

			ctx := cmd.Context()
			app.lib.Restore(ctx)
			syncErr := app.lib.RefreshData(ctx)

			u, ok := app.lib.User(id)
			if !ok {
				return fmt.Errorf("user %d: %w", id, domain.ErrNotFound)
			}
			if err := printUser(cmd.OutOrStdout(), u, app.lib.State().Loans, format); err != nil {
				return err
			}
			return syncErr
		},
	}

	addFormatFlag(cmd, &format)
	return cmd
}

func usersAddCmd(opts *rootOptions) *cobra.Command {
	var username, password, email, phone string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			u := domain.User{
				Username: strings.TrimSpace(username),
				Password: &password,
				Email:    strings.TrimSpace(email),
			}
			if phone != "" {
				u.Phone = &phone
			}

			app, err := loadApp(opts)
			if err != nil {
				return err
			}
			defer app.Close()

			ctx := cmd.Context()
			app.lib.Restore(ctx)
			created, err := app.lib.AddUser(ctx, u)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added user %d: %s\n", created.ID, created.Username)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username (required)")
	cmd.Flags().StringVar(&password, "password", "", "Password (required)")
	cmd.Flags().StringVar(&email, "email", "", "Email (required)")
	cmd.Flags().StringVar(&phone, "phone", "", "Phone")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func usersDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "user")
			if err != nil {
				return err
			}
			app, err := loadApp(opts)
			if err != nil {
				return err
			}
			defer app.Close()

			ctx := cmd.Context()
			app.lib.Restore(ctx)
			if err := app.lib.DeleteUser(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted user %d\n", id)
			return nil
		},
	}
}
