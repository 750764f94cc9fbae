package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/aalvaropc/libris/internal/domain"
)

func (m model) View() string {
	wrap := lipgloss.NewStyle().Padding(1, 2)

	parts := []string{m.header()}
	parts = append(parts, m.theme.Card.Render(m.body()))
	if m.toast != "" {
		style := m.theme.NoticeToast
		if m.toastErr {
			style = m.theme.ErrorToast
		}
		parts = append(parts, style.Render(m.toast))
	}
	parts = append(parts, m.theme.Help.Render(m.help()))
	return wrap.Render(strings.Join(parts, "\n\n"))
}

func (m model) header() string {
	title := m.theme.Title.Render("Libris")
	if m.busy > 0 {
		title += " " + m.spinner.View()
	}

	who := "not signed in"
	if u := m.state.CurrentUser; u != nil {
		who = "signed in as " + u.Username
	}
	sub := m.theme.Subtitle.Render(who + " · " + m.deps.Config.API.BaseURL)
	return title + "\n" + sub
}

func (m model) body() string {
	st := m.state

	switch m.scr {
	case screenLogin:
		out := m.loginForm.View(m.theme)
		switch st.Login.Status {
		case domain.LoginLoading:
			out += "\n\n" + m.theme.Subtitle.Render("Signing in…")
		case domain.LoginError:
			out += "\n\n" + m.theme.Taken.Render(st.Login.Message)
		}
		return out

	case screenRegister:
		return m.registerForm.View(m.theme)

	case screenHome:
		return m.menu.View()

	case screenBooks:
		return m.books.View()

	case screenBookDetail:
		b, ok := domain.FindBook(st.Books, m.bookID)
		if !ok {
			return "Book not found"
		}
		return renderBookDetail(m.theme, b, st.Loans, m.width)

	case screenBookForm:
		return m.bookForm.View(m.theme)

	case screenUsers:
		return m.users.View()

	case screenUserDetail:
		u, ok := domain.FindUser(st.Users, m.userID)
		if !ok {
			return "User not found"
		}
		return renderUserDetail(m.theme, u, st.Loans, st.Books)

	case screenUserForm:
		return m.userForm.View(m.theme)

	case screenLoans:
		return m.loans.View()

	case screenIssueBook:
		return m.issueBooks.View()

	case screenIssueUser:
		head := "Book #" + strconv.Itoa(m.issueBookID)
		if b, ok := domain.FindBook(st.Books, m.issueBookID); ok {
			head = b.Title
		}
		return m.theme.Subtitle.Render("Issuing: "+head) + "\n\n" + m.issueUsers.View()

	case screenReturn:
		if st.CurrentUser == nil {
			return "Sign in to see your loans."
		}
		if len(m.returns.Items()) == 0 {
			return m.theme.Title.Render("Return a book") + "\n\n" + "You have no books on loan."
		}
		return m.returns.View()

	case screenProfile:
		u := st.CurrentUser
		if u == nil {
			return "Not signed in.\n\n" + m.theme.Help.Render("enter sign in")
		}
		return renderUserDetail(m.theme, *u, st.Loans, st.Books) + "\n\n" + m.emailForm.View(m.theme)

	case screenStats:
		return renderStats(m.theme, domain.ComputeStats(st.Books, st.Users, st.Loans))

	case screenSettings:
		return renderSettings(m.theme, m.deps)
	}
	return "unknown state"
}

func (m model) help() string {
	switch m.scr {
	case screenLogin:
		return "tab next field • enter sign in • ctrl+r create account • ctrl+c quit"
	case screenRegister:
		return "tab next field • enter register • esc back"
	case screenHome:
		return "↑/↓ navigate • enter open • / search • r refresh • q quit"
	case screenBooks:
		return "enter details • a add • / search • r refresh • esc back"
	case screenBookDetail:
		return "i issue • e edit • x delete • esc back"
	case screenBookForm, screenUserForm:
		return "tab next field • enter save • esc cancel"
	case screenUsers:
		return "enter details • a add • / search • esc back"
	case screenUserDetail:
		return "x delete • esc back"
	case screenLoans, screenReturn:
		return "enter return selected • / search • r refresh • esc back"
	case screenIssueBook, screenIssueUser:
		return "enter select • / search • esc back"
	case screenProfile:
		return "enter update email • ctrl+l logout • esc back"
	default:
		return "esc back • q home"
	}
}
