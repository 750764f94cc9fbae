package tui

import (
	"context"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aalvaropc/libris/internal/domain"
	"github.com/aalvaropc/libris/internal/usecase"
)

const (
	opTimeout   = 30 * time.Second
	toastLength = 4 * time.Second
)

// listenState waits for the next published state.
func listenState(ch <-chan usecase.State) tea.Cmd {
	return func() tea.Msg {
		st, ok := <-ch
		if !ok {
			return stateMsg{closed: true}
		}
		return stateMsg{state: st}
	}
}

// runOp executes a blocking view-model call off the update loop.
func runOp(log *slog.Logger, o op, fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		start := time.Now()
		err := fn(ctx)
		if err != nil {
			log.Warn("tui.op.failed", "op", string(o), "duration_ms", time.Since(start).Milliseconds(), "error", err)
		} else {
			log.Debug("tui.op.done", "op", string(o), "duration_ms", time.Since(start).Milliseconds())
		}
		return opDoneMsg{op: o, err: err}
	}
}

func cmdRefresh(lib *usecase.Library, log *slog.Logger) tea.Cmd {
	return runOp(log, opRefresh, lib.RefreshData)
}

func cmdLogin(lib *usecase.Library, log *slog.Logger, username, password string) tea.Cmd {
	return runOp(log, opLogin, func(ctx context.Context) error {
		return lib.Login(ctx, username, password)
	})
}

func cmdRegister(lib *usecase.Library, log *slog.Logger, u domain.User) tea.Cmd {
	return runOp(log, opRegister, func(ctx context.Context) error {
		return lib.Register(ctx, u)
	})
}

func cmdLogout(lib *usecase.Library, log *slog.Logger) tea.Cmd {
	return runOp(log, opLogout, lib.Logout)
}

func cmdAddBook(lib *usecase.Library, log *slog.Logger, b domain.Book) tea.Cmd {
	return runOp(log, opAddBook, func(ctx context.Context) error {
		_, err := lib.AddBook(ctx, b)
		return err
	})
}

func cmdUpdateBook(lib *usecase.Library, log *slog.Logger, b domain.Book) tea.Cmd {
	return runOp(log, opUpdateBook, func(ctx context.Context) error {
		_, err := lib.UpdateBook(ctx, b)
		return err
	})
}

func cmdDeleteBook(lib *usecase.Library, log *slog.Logger, id int) tea.Cmd {
	return runOp(log, opDeleteBook, func(ctx context.Context) error {
		return lib.DeleteBook(ctx, id)
	})
}

func cmdAddUser(lib *usecase.Library, log *slog.Logger, u domain.User) tea.Cmd {
	return runOp(log, opAddUser, func(ctx context.Context) error {
		_, err := lib.AddUser(ctx, u)
		return err
	})
}

func cmdDeleteUser(lib *usecase.Library, log *slog.Logger, id int) tea.Cmd {
	return runOp(log, opDeleteUser, func(ctx context.Context) error {
		return lib.DeleteUser(ctx, id)
	})
}

func cmdIssue(lib *usecase.Library, log *slog.Logger, bookID, userID int) tea.Cmd {
	return runOp(log, opIssue, func(ctx context.Context) error {
		_, err := lib.IssueBook(ctx, bookID, userID)
		return err
	})
}

func cmdReturn(lib *usecase.Library, log *slog.Logger, loanID int) tea.Cmd {
	return runOp(log, opReturn, func(ctx context.Context) error {
		return lib.ReturnBook(ctx, loanID)
	})
}

func cmdUpdateEmail(lib *usecase.Library, log *slog.Logger, email string) tea.Cmd {
	return runOp(log, opUpdateEmail, func(ctx context.Context) error {
		return lib.UpdateUserEmail(ctx, email)
	})
}

// cmdClearError resets the published error once it has been copied into a toast.
func cmdClearError(lib *usecase.Library) tea.Cmd {
	return func() tea.Msg {
		lib.ClearError()
		return nil
	}
}

func cmdClearNotice(lib *usecase.Library) tea.Cmd {
	return func() tea.Msg {
		lib.ClearNotice()
		return nil
	}
}

func expireToast(seq int) tea.Cmd {
	return tea.Tick(toastLength, func(time.Time) tea.Msg {
		return toastExpiredMsg{seq: seq}
	})
}
