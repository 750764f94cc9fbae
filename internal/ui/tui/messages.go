package tui

import "github.com/aalvaropc/libris/internal/usecase"

// stateMsg carries a snapshot from Library.Subscribe. closed is set when
// the subscription ended.
type stateMsg struct {
	state  usecase.State
	closed bool
}

// op identifies the intent that produced an opDoneMsg.
type op string

const (
	opRefresh     op = "refresh"
	opLogin       op = "login"
	opRegister    op = "register"
	opLogout      op = "logout"
	opAddBook     op = "books.add"
	opUpdateBook  op = "books.update"
	opDeleteBook  op = "books.delete"
	opAddUser     op = "users.add"
	opDeleteUser  op = "users.delete"
	opIssue       op = "loans.issue"
	opReturn      op = "loans.return"
	opUpdateEmail op = "profile.email"
)

// initDoneMsg ends the startup sync. authenticated skips the login screen.
type initDoneMsg struct {
	authenticated bool
}

type opDoneMsg struct {
	op  op
	err error
}

// toastExpiredMsg hides the toast with the same sequence number.
type toastExpiredMsg struct {
	seq int
}
