package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aalvaropc/libris/internal/domain"
)

func (m model) onKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "esc" {
		if l := m.activeList(); l != nil && l.FilterState() != list.Unfiltered {
			return m.forward(msg)
		}
		if m.back() {
			return m, nil
		}
	}

	if !m.capturesText() {
		switch key {
		case "q":
			if m.scr == screenHome || m.scr == screenLogin {
				return m, tea.Quit
			}
			m.scr = screenHome
			return m, nil
		case "r":
			return m, m.start(cmdRefresh(m.lib, m.log))
		}
	}

	switch m.scr {
	case screenLogin:
		return m.keyLogin(msg)
	case screenRegister:
		return m.keyRegister(msg)
	case screenHome:
		return m.keyHome(msg)
	case screenBooks:
		return m.keyBooks(msg)
	case screenBookDetail:
		return m.keyBookDetail(msg)
	case screenBookForm:
		return m.keyBookForm(msg)
	case screenUsers:
		return m.keyUsers(msg)
	case screenUserDetail:
		return m.keyUserDetail(msg)
	case screenUserForm:
		return m.keyUserForm(msg)
	case screenLoans, screenReturn:
		return m.keyLoans(msg)
	case screenIssueBook:
		return m.keyIssueBook(msg)
	case screenIssueUser:
		return m.keyIssueUser(msg)
	case screenProfile:
		return m.keyProfile(msg)
	}
	return m.forward(msg)
}

// back moves one level up. It reports false where esc has no meaning.
func (m *model) back() bool {
	switch m.scr {
	case screenLogin, screenHome:
		return false
	case screenRegister:
		m.scr = screenLogin
	case screenBookDetail:
		m.scr = screenBooks
	case screenBookForm:
		if m.editingBook {
			m.scr = screenBookDetail
		} else {
			m.scr = screenBooks
		}
		m.editingBook = false
		m.bookForm.Reset()
	case screenUserDetail, screenUserForm:
		m.scr = screenUsers
	case screenIssueUser:
		m.scr = m.issueFrom
	default:
		m.scr = screenHome
	}
	return true
}

func (m model) keyLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if m.state.Login.Status == domain.LoginLoading {
			return m, nil
		}
		username, password := m.loginForm.Value(0), m.loginForm.Raw(1)
		if username == "" || password == "" {
			return m, m.showToast("Username and password are required", true)
		}
		return m, m.start(cmdLogin(m.lib, m.log, username, password))
	case "ctrl+r":
		m.scr = screenRegister
		return m, nil
	}
	return m.forward(msg)
}

func (m model) keyRegister(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() != "enter" {
		return m.forward(msg)
	}
	u, ok := userFromForm(m.registerForm)
	if !ok {
		return m, m.showToast("Username, password and email are required", true)
	}
	return m, m.start(cmdRegister(m.lib, m.log, u))
}

func (m model) keyHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() != "enter" || m.menu.FilterState() == list.Filtering {
		return m.forward(msg)
	}
	it, ok := m.menu.SelectedItem().(menuItem)
	if !ok {
		return m, nil
	}
	switch it.title {
	case "Quit":
		return m, tea.Quit
	case "Refresh":
		return m, m.start(cmdRefresh(m.lib, m.log))
	}
	m.scr = it.target
	return m, nil
}

func (m model) keyBooks(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.books.FilterState() == list.Filtering {
		return m.forward(msg)
	}
	switch msg.String() {
	case "enter":
		if it, ok := m.books.SelectedItem().(bookItem); ok {
			m.bookID = it.book.ID
			m.scr = screenBookDetail
		}
		return m, nil
	case "a":
		m.editingBook = false
		m.bookForm.Reset()
		m.bookForm.title = "Add book"
		m.scr = screenBookForm
		return m, nil
	}
	return m.forward(msg)
}

func (m model) keyBookDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	b, ok := domain.FindBook(m.state.Books, m.bookID)
	if !ok {
		m.scr = screenBooks
		return m, nil
	}

	switch msg.String() {
	case "i":
		m.issueBookID = b.ID
		m.issueFrom = screenBookDetail
		m.scr = screenIssueUser
	case "e":
		m.editingBook = true
		m.bookForm.Reset()
		m.bookForm.title = "Edit book"
		m.bookForm.SetValue(0, b.Title)
		m.bookForm.SetValue(1, b.Author)
		if b.PublicationYear != 0 {
			m.bookForm.SetValue(2, strconv.Itoa(b.PublicationYear))
		}
		m.bookForm.SetValue(3, b.ISBN)
		m.bookForm.SetValue(4, deref(b.Description))
		m.bookForm.SetValue(5, deref(b.ImageURL))
		m.scr = screenBookForm
	case "x":
		return m, m.start(cmdDeleteBook(m.lib, m.log, b.ID))
	}
	return m, nil
}

func (m model) keyBookForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() != "enter" {
		return m.forward(msg)
	}

	var base domain.Book
	if m.editingBook {
		b, ok := domain.FindBook(m.state.Books, m.bookID)
		if !ok {
			m.editingBook = false
			m.scr = screenBooks
			return m, m.showToast("Book no longer exists", true)
		}
		base = b
	}

	b, problem := bookFromForm(m.bookForm, base)
	if problem != "" {
		return m, m.showToast(problem, true)
	}
	if m.editingBook {
		return m, m.start(cmdUpdateBook(m.lib, m.log, b))
	}
	return m, m.start(cmdAddBook(m.lib, m.log, b))
}

func (m model) keyUsers(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.users.FilterState() == list.Filtering {
		return m.forward(msg)
	}
	switch msg.String() {
	case "enter":
		if it, ok := m.users.SelectedItem().(userItem); ok {
			m.userID = it.user.ID
			m.scr = screenUserDetail
		}
		return m, nil
	case "a":
		m.userForm.Reset()
		m.scr = screenUserForm
		return m, nil
	}
	return m.forward(msg)
}

func (m model) keyUserDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "x" {
		return m, m.start(cmdDeleteUser(m.lib, m.log, m.userID))
	}
	return m, nil
}

func (m model) keyUserForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() != "enter" {
		return m.forward(msg)
	}
	u, ok := userFromForm(m.userForm)
	if !ok {
		return m, m.showToast("Username, password and email are required", true)
	}
	return m, m.start(cmdAddUser(m.lib, m.log, u))
}

// keyLoans serves both the full loan list and the return screen: enter
// returns the selected loan.
func (m model) keyLoans(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	l := m.activeList()
	if msg.String() != "enter" || l.FilterState() == list.Filtering {
		return m.forward(msg)
	}
	it, ok := l.SelectedItem().(loanItem)
	if !ok {
		return m, nil
	}
	if !it.loan.Active() {
		return m, m.showToast("Already returned", true)
	}
	return m, m.start(cmdReturn(m.lib, m.log, it.loan.ID))
}

func (m model) keyIssueBook(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() != "enter" || m.issueBooks.FilterState() == list.Filtering {
		return m.forward(msg)
	}
	if it, ok := m.issueBooks.SelectedItem().(bookItem); ok {
		m.issueBookID = it.book.ID
		m.issueFrom = screenIssueBook
		m.scr = screenIssueUser
	}
	return m, nil
}

func (m model) keyIssueUser(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() != "enter" || m.issueUsers.FilterState() == list.Filtering {
		return m.forward(msg)
	}
	it, ok := m.issueUsers.SelectedItem().(userItem)
	if !ok {
		return m, nil
	}
	return m, m.start(cmdIssue(m.lib, m.log, m.issueBookID, it.user.ID))
}

func (m model) keyProfile(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.state.CurrentUser == nil {
		if msg.String() == "enter" {
			m.scr = screenLogin
		}
		return m, nil
	}

	switch msg.String() {
	case "enter":
		email := m.emailForm.Value(0)
		if !strings.Contains(email, "@") {
			return m, m.showToast("Enter a valid email", true)
		}
		return m, m.start(cmdUpdateEmail(m.lib, m.log, email))
	case "ctrl+l":
		return m, m.start(cmdLogout(m.lib, m.log))
	}
	return m.forward(msg)
}

func userFromForm(f form) (domain.User, bool) {
	u := domain.User{
		Username: f.Value(0),
		Email:    f.Value(2),
	}
	pw := f.Raw(1)
	if u.Username == "" || pw == "" || u.Email == "" {
		return domain.User{}, false
	}
	u.Password = &pw
	if phone := f.Value(3); phone != "" {
		u.Phone = &phone
	}
	return u, true
}

// bookFromForm overlays the form on base. A non-empty problem is shown to
// the user instead of submitting.
func bookFromForm(f form, base domain.Book) (domain.Book, string) {
	b := base
	if b.ID == 0 {
		b = domain.NewBook("", "", 0, "")
	}
	b.Title = f.Value(0)
	b.Author = f.Value(1)
	b.ISBN = f.Value(3)
	if b.Title == "" || b.Author == "" {
		return domain.Book{}, "Title and author are required"
	}

	b.PublicationYear = 0
	if y := f.Value(2); y != "" {
		year, err := strconv.Atoi(y)
		if err != nil || year < 0 {
			return domain.Book{}, "Publication year must be a number"
		}
		b.PublicationYear = year
	}

	b.Description = optional(f.Value(4))
	b.ImageURL = optional(f.Value(5))
	return b, ""
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
