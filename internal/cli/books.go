package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/libris/internal/domain"
)

func booksCmd(opts *rootOptions) *cobra.Command {
	c := &cobra.Command{
		Use:   "books",
		Short: "Browse and manage the catalogue",
	}

	c.AddCommand(
		booksListCmd(opts),
		booksShowCmd(opts),
		booksSearchCmd(opts),
		booksAddCmd(opts),
		booksDeleteCmd(opts),
	)
	return c
}

func booksListCmd(opts *rootOptions) *cobra.Command {
	var format string
	var availableOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List books",
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
			books := st.Books
			if availableOnly {
				books = domain.AvailableBooks(books)
			}
			if err := printBooks(cmd.OutOrStdout(), books, st.Loans, format); err != nil {
				return err
			}
			return syncErr
		},
	}

	addFormatFlag(cmd, &format)
	cmd.Flags().BoolVar(&availableOnly, "available", false, "Only books that can be issued")
	return cmd
}

func booksShowCmd(opts *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			id, err := parseID(args[0], "book")
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

			b, ok := app.lib.Book(id)
			if !ok {
				return fmt.Errorf("book %d: %w", id, domain.ErrNotFound)
			}
			if err := printBook(cmd.OutOrStdout(), b, app.lib.State().Loans, format); err != nil {
				return err
			}
			return syncErr
		},
	}

	addFormatFlag(cmd, &format)
	return cmd
}

func booksSearchCmd(opts *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Find books by title or author",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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

			found := app.lib.SearchBooks(strings.Join(args, " "))
			if err := printBooks(cmd.OutOrStdout(), found, app.lib.State().Loans, format); err != nil {
				return err
			}
			return syncErr
		},
	}

	addFormatFlag(cmd, &format)
	return cmd
}

func booksAddCmd(opts *rootOptions) *cobra.Command {
	var title, author, isbn, description, imageURL string
	var year int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a book to the catalogue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			book := domain.NewBook(strings.TrimSpace(title), strings.TrimSpace(author), year, strings.TrimSpace(isbn))
			if description != "" {
				book.Description = &description
			}
			if imageURL != "" {
				book.ImageURL = &imageURL
			}

			app, err := loadApp(opts)
			if err != nil {
				return err
			}
			defer app.Close()

			ctx := cmd.Context()
			app.lib.Restore(ctx)
			created, err := app.lib.AddBook(ctx, book)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added book %d: %s\n", created.ID, created.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Title (required)")
	cmd.Flags().StringVar(&author, "author", "", "Author (required)")
	cmd.Flags().IntVar(&year, "year", 0, "Publication year")
	cmd.Flags().StringVar(&isbn, "isbn", "", "ISBN")
	cmd.Flags().StringVar(&description, "description", "", "Short description")
	cmd.Flags().StringVar(&imageURL, "image-url", "", "Cover image URL")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("author")
	return cmd
}

func booksDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "book")
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
			if err := app.lib.DeleteBook(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted book %d\n", id)
			return nil
		},
	}
}
