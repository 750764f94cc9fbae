package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/libris/internal/domain"
)

func loansCmd(opts *rootOptions) *cobra.Command {
	c := &cobra.Command{
		Use:   "loans",
		Short: "Issue and return books",
	}

	c.AddCommand(
		loansListCmd(opts),
		loansIssueCmd(opts),
		loansReturnCmd(opts),
	)
	return c
}

func loansListCmd(opts *rootOptions) *cobra.Command {
	var format string
	var mine bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List loans",
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
			syncErr := app.lib.RefreshData(ctx)

			st := app.lib.State()
			loans := st.Loans
			if mine {
				if st.CurrentUser == nil {
					return fmt.Errorf("--mine: %w (run `libris login`)", domain.ErrNotLoggedIn)
				}
				loans = app.lib.LoansForCurrentUser()
			}
			if err := printLoans(cmd.OutOrStdout(), loans, st.Books, st.Users, format); err != nil {
				return err
			}
			return syncErr
		},
	}

	addFormatFlag(cmd, &format)
	cmd.Flags().BoolVar(&mine, "mine", false, "Only active loans of the logged-in user")
	return cmd
}

func loansIssueCmd(opts *rootOptions) *cobra.Command {
	var bookID, userID int

	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Lend a book to a user (defaults to the logged-in user)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(opts)
			if err != nil {
				return err
			}
			defer app.Close()

			ctx := cmd.Context()
			app.lib.Restore(ctx)
			// Availability is checked against fresh data when the service answers.
			syncErr := app.lib.FetchBooks(ctx)

			uid := userID
			if uid == 0 {
				cur := app.lib.State().CurrentUser
				if cur == nil {
					return fmt.Errorf("--user not set: %w (run `libris login`)", domain.ErrNotLoggedIn)
				}
				uid = cur.ID
			}

			loan, err := app.lib.IssueBook(ctx, bookID, uid)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Issued book %d to user %d (loan %d, %s)\n", loan.BookID, loan.UserID, loan.ID, loan.IssueDate)
			return syncErr
		},
	}

	cmd.Flags().IntVar(&bookID, "book", 0, "Book id (required)")
	cmd.Flags().IntVar(&userID, "user", 0, "User id")
	_ = cmd.MarkFlagRequired("book")
	return cmd
}

func loansReturnCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "return <loan-id>",
		Short: "Return a borrowed book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "loan")
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
			syncErr := app.lib.FetchLoans(ctx)

			if err := app.lib.ReturnBook(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Returned loan %d\n", id)
			return syncErr
		},
	}
}
