package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type field struct {
	label       string
	placeholder string
	secret      bool
	limit       int
}

// form is a vertical stack of text inputs with one focused at a time.
type form struct {
	title  string
	labels []string
	inputs []textinput.Model
	focus  int
}

func newForm(title string, fields ...field) form {
	f := form{title: title}
	for _, fd := range fields {
		ti := textinput.New()
		ti.Prompt = "› "
		ti.Placeholder = fd.placeholder
		ti.CharLimit = fd.limit
		if ti.CharLimit == 0 {
			ti.CharLimit = 256
		}
		if fd.secret {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
		}
		f.labels = append(f.labels, fd.label)
		f.inputs = append(f.inputs, ti)
	}
	if len(f.inputs) > 0 {
		f.inputs[0].Focus()
	}
	return f
}

// Update moves focus on tab/shift+tab/up/down and feeds everything else to
// the focused input.
func (f form) Update(msg tea.Msg) (form, tea.Cmd) {
	if len(f.inputs) == 0 {
		return f, nil
	}
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "tab", "down":
			cmd := f.setFocus((f.focus + 1) % len(f.inputs))
			return f, cmd
		case "shift+tab", "up":
			cmd := f.setFocus((f.focus - 1 + len(f.inputs)) % len(f.inputs))
			return f, cmd
		}
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f *form) setFocus(i int) tea.Cmd {
	f.inputs[f.focus].Blur()
	f.focus = i
	return f.inputs[f.focus].Focus()
}

// Value returns the trimmed content of input i.
func (f form) Value(i int) string {
	if i < 0 || i >= len(f.inputs) {
		return ""
	}
	return strings.TrimSpace(f.inputs[i].Value())
}

// Raw returns input i untrimmed, for passwords.
func (f form) Raw(i int) string {
	if i < 0 || i >= len(f.inputs) {
		return ""
	}
	return f.inputs[i].Value()
}

func (f *form) SetValue(i int, v string) {
	if i >= 0 && i < len(f.inputs) {
		f.inputs[i].SetValue(v)
	}
}

func (f *form) SetWidth(w int) {
	if w < 10 {
		w = 10
	}
	for i := range f.inputs {
		f.inputs[i].Width = w
	}
}

func (f *form) Reset() {
	for i := range f.inputs {
		f.inputs[i].Reset()
	}
	if len(f.inputs) > 0 {
		f.setFocus(0)
	}
}

func (f form) View(t Theme) string {
	var b strings.Builder
	b.WriteString(t.Title.Render(f.title))
	b.WriteString("\n\n")
	for i, ti := range f.inputs {
		label := f.labels[i]
		if i == f.focus {
			label = t.Selected.Render(label)
		} else {
			label = t.Subtitle.Render(label)
		}
		b.WriteString(label)
		b.WriteString("\n")
		b.WriteString(ti.View())
		b.WriteString("\n\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
