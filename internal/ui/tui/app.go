package tui

import (
	"context"
	"errors"
	"log/slog"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aalvaropc/libris/internal/domain"
	"github.com/aalvaropc/libris/internal/usecase"
)

type screen int

const (
	screenLogin screen = iota
	screenRegister
	screenHome
	screenBooks
	screenBookDetail
	screenBookForm
	screenUsers
	screenUserDetail
	screenUserForm
	screenLoans
	screenIssueBook
	screenIssueUser
	screenReturn
	screenProfile
	screenStats
	screenSettings
)

type model struct {
	theme Theme
	deps  Deps
	lib   *usecase.Library
	log   *slog.Logger

	sub   <-chan usecase.State
	state usecase.State

	scr           screen
	width, height int

	busy    int
	spinner spinner.Model

	toast    string
	toastErr bool
	toastSeq int

	menu       list.Model
	books      list.Model
	users      list.Model
	loans      list.Model
	issueBooks list.Model
	issueUsers list.Model
	returns    list.Model

	loginForm    form
	registerForm form
	bookForm     form
	userForm     form
	emailForm    form

	bookID      int
	editingBook bool
	userID      int
	issueBookID int
	issueFrom   screen
}

func Run(deps Deps) error {
	if deps.Library == nil {
		return errors.New("tui: library is nil")
	}
	log := deps.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	ch, unsubscribe := deps.Library.Subscribe()
	defer unsubscribe()

	m := newModel(deps, ch)
	p := tea.NewProgram(wrapSafe(m, log), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newModel(deps Deps, sub <-chan usecase.State) model {
	log := deps.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	menu := newList("Libris", true)
	menu.SetItems(menuItems())

	m := model{
		theme:   DefaultTheme(),
		deps:    deps,
		lib:     deps.Library,
		log:     log,
		sub:     sub,
		state:   deps.Library.State(),
		scr:     screenLogin,
		busy:    1,
		spinner: sp,

		menu:       menu,
		books:      newList("Books", true),
		users:      newList("Users", true),
		loans:      newList("Loans", true),
		issueBooks: newList("Issue: pick a book", true),
		issueUsers: newList("Issue: pick a borrower", true),
		returns:    newList("Return a book", false),

		loginForm: newForm("Sign in",
			field{label: "Username", placeholder: "john_doe"},
			field{label: "Password", secret: true},
		),
		registerForm: newForm("Create account",
			field{label: "Username"},
			field{label: "Password", secret: true},
			field{label: "Email", placeholder: "you@example.com"},
			field{label: "Phone (optional)"},
		),
		bookForm: newBookForm(),
		userForm: newForm("Add user",
			field{label: "Username"},
			field{label: "Password", secret: true},
			field{label: "Email"},
			field{label: "Phone (optional)"},
		),
		emailForm: newForm("Change email",
			field{label: "New email", placeholder: "you@example.com"},
		),
	}
	m.syncLists()
	return m
}

func newBookForm() form {
	return newForm("Add book",
		field{label: "Title"},
		field{label: "Author"},
		field{label: "Publication year", placeholder: "1949", limit: 4},
		field{label: "ISBN"},
		field{label: "Description (optional)"},
		field{label: "Image URL (optional)"},
	)
}

// Init restores the cache and refreshes from the service; the result decides
// whether the login screen is skipped.
func (m model) Init() tea.Cmd {
	return tea.Batch(
		listenState(m.sub),
		m.initCmd(),
		m.spinner.Tick,
		textinput.Blink,
	)
}

func (m model) initCmd() tea.Cmd {
	lib, log := m.lib, m.log
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		if err := lib.Init(ctx); err != nil {
			log.Warn("tui.init.failed", "error", err)
		}
		return initDoneMsg{authenticated: lib.IsAuthenticated(ctx)}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case stateMsg:
		return m.onState(msg)

	case initDoneMsg:
		if m.busy > 0 {
			m.busy--
		}
		if msg.authenticated && m.scr == screenLogin {
			m.scr = screenHome
		}
		return m, nil

	case opDoneMsg:
		return m.onOpDone(msg)

	case toastExpiredMsg:
		if msg.seq == m.toastSeq {
			m.toast = ""
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m.onKey(msg)
	}

	return m.forward(msg)
}

func (m model) onState(msg stateMsg) (tea.Model, tea.Cmd) {
	if msg.closed {
		return m, nil
	}
	m.state = msg.state

	cmds := []tea.Cmd{listenState(m.sub), m.syncLists()}
	if e := msg.state.Error; e != "" {
		cmds = append(cmds, m.showToast(e, true), cmdClearError(m.lib))
	}
	if n := msg.state.Notice; n != "" {
		cmds = append(cmds, m.showToast(n, false), cmdClearNotice(m.lib))
	}
	return m, tea.Batch(cmds...)
}

func (m model) onOpDone(msg opDoneMsg) (tea.Model, tea.Cmd) {
	if m.busy > 0 {
		m.busy--
	}
	if msg.err != nil {
		return m, m.showToast(userMessage(msg.err), true)
	}

	switch msg.op {
	case opLogin:
		m.loginForm.Reset()
		m.scr = screenHome
	case opRegister:
		m.registerForm.Reset()
		m.scr = screenLogin
	case opLogout:
		m.scr = screenLogin
	case opAddBook:
		m.bookForm.Reset()
		m.scr = screenBooks
	case opUpdateBook:
		m.bookForm.Reset()
		m.editingBook = false
		m.scr = screenBookDetail
	case opDeleteBook:
		m.scr = screenBooks
	case opAddUser:
		m.userForm.Reset()
		m.scr = screenUsers
	case opDeleteUser:
		m.scr = screenUsers
	case opIssue:
		m.scr = screenLoans
	case opUpdateEmail:
		m.emailForm.Reset()
	}
	return m, nil
}

// start marks an operation in flight and returns its command.
func (m *model) start(cmd tea.Cmd) tea.Cmd {
	m.busy++
	return cmd
}

func (m *model) showToast(text string, isErr bool) tea.Cmd {
	m.toastSeq++
	m.toast = text
	m.toastErr = isErr
	return expireToast(m.toastSeq)
}

// syncLists rebuilds every list from the current state.
func (m *model) syncLists() tea.Cmd {
	st := m.state
	var mine []domain.Loan
	if st.CurrentUser != nil {
		mine = domain.ActiveLoansForUser(st.Loans, st.CurrentUser.ID)
	}
	return tea.Batch(
		m.books.SetItems(bookItems(st.Books, st.Loans, false)),
		m.users.SetItems(userItems(st.Users, st.Loans)),
		m.loans.SetItems(loanItems(st.Loans, st.Books, st.Users)),
		m.issueBooks.SetItems(bookItems(st.Books, st.Loans, true)),
		m.issueUsers.SetItems(userItems(st.Users, st.Loans)),
		m.returns.SetItems(loanItems(mine, st.Books, st.Users)),
	)
}

func (m *model) resize() {
	w, h := m.width-4, m.height-12
	if w < 20 {
		w = 20
	}
	if h < 5 {
		h = 5
	}
	for _, l := range []*list.Model{&m.menu, &m.books, &m.users, &m.loans, &m.issueBooks, &m.issueUsers, &m.returns} {
		l.SetSize(w, h)
	}
	for _, f := range []*form{&m.loginForm, &m.registerForm, &m.bookForm, &m.userForm, &m.emailForm} {
		f.SetWidth(w - 8)
	}
}

// activeList returns the list shown on the current screen, if any.
func (m *model) activeList() *list.Model {
	switch m.scr {
	case screenHome:
		return &m.menu
	case screenBooks:
		return &m.books
	case screenUsers:
		return &m.users
	case screenLoans:
		return &m.loans
	case screenIssueBook:
		return &m.issueBooks
	case screenIssueUser:
		return &m.issueUsers
	case screenReturn:
		return &m.returns
	}
	return nil
}

// activeForm returns the form shown on the current screen, if any.
func (m *model) activeForm() *form {
	switch m.scr {
	case screenLogin:
		return &m.loginForm
	case screenRegister:
		return &m.registerForm
	case screenBookForm:
		return &m.bookForm
	case screenUserForm:
		return &m.userForm
	case screenProfile:
		if m.state.CurrentUser != nil {
			return &m.emailForm
		}
	}
	return nil
}

// forward hands msg to the focused component.
func (m model) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if l := m.activeList(); l != nil {
		*l, cmd = l.Update(msg)
		return m, cmd
	}
	if f := m.activeForm(); f != nil {
		*f, cmd = f.Update(msg)
		return m, cmd
	}
	return m, nil
}

// capturesText reports whether printable keys belong to an input.
func (m *model) capturesText() bool {
	if m.activeForm() != nil {
		return true
	}
	if l := m.activeList(); l != nil {
		return l.FilterState() == list.Filtering
	}
	return false
}

var _ tea.Model = model{}
