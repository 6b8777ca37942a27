package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// loginForm is the in-TUI credential form: email and password inputs with
// client-side validation matching the server's minimums.
type loginForm struct {
	inputs  []textinput.Model
	focused int
	errs    []string
	busy    bool
}

const (
	loginFieldEmail = iota
	loginFieldPassword
)

func newLoginForm() loginForm {
	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.Prompt = "Email    > "
	email.CharLimit = 254

	password := textinput.New()
	password.Placeholder = "password"
	password.Prompt = "Password > "
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.CharLimit = 128

	return loginForm{
		inputs: []textinput.Model{email, password},
		errs:   make([]string, 2),
	}
}

func (f *loginForm) focusCmd() tea.Cmd {
	return f.inputs[f.focused].Focus()
}

func (f *loginForm) email() string {
	return strings.TrimSpace(f.inputs[loginFieldEmail].Value())
}

func (f *loginForm) password() string {
	return f.inputs[loginFieldPassword].Value()
}

// validate fills errs and reports whether the form may be submitted.
func (f *loginForm) validate() bool {
	f.errs = make([]string, 2)
	ok := true

	email := f.email()
	switch {
	case email == "":
		f.errs[loginFieldEmail] = "Email is required."
		ok = false
	case !looksLikeEmail(email):
		f.errs[loginFieldEmail] = "Invalid email format."
		ok = false
	}

	if f.password() == "" {
		f.errs[loginFieldPassword] = "Password is required."
		ok = false
	}

	return ok
}

// looksLikeEmail is the same lightweight shape check the server's clients
// use: something, an @, something, a dot, something.
func looksLikeEmail(s string) bool {
	at := strings.Index(s, "@")
	if at <= 0 || at == len(s)-1 {
		return false
	}
	domain := s[at+1:]
	dot := strings.Index(domain, ".")
	return dot > 0 && dot < len(domain)-1 && !strings.ContainsAny(s, " \t")
}

// updateLogin drives the login form.
func (m Model) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, isKey := msg.(tea.KeyMsg)
	if isKey && !m.login.busy {
		switch key.String() {
		case "esc":
			return withCmd(m.navigate(ViewHome))
		case "tab", "shift+tab", "up", "down":
			m.login.inputs[m.login.focused].Blur()
			if key.String() == "shift+tab" || key.String() == "up" {
				m.login.focused--
			} else {
				m.login.focused++
			}
			if m.login.focused < 0 {
				m.login.focused = len(m.login.inputs) - 1
			}
			m.login.focused %= len(m.login.inputs)
			return m, m.login.inputs[m.login.focused].Focus()
		case "enter":
			if m.login.focused == loginFieldEmail {
				m.login.inputs[loginFieldEmail].Blur()
				m.login.focused = loginFieldPassword
				return m, m.login.inputs[loginFieldPassword].Focus()
			}
			if !m.login.validate() {
				return m, nil
			}
			m.login.busy = true
			m.notice = ""
			return m, m.loginCmd(m.login.email(), m.login.password())
		}
	}

	var cmd tea.Cmd
	m.login.inputs[m.login.focused], cmd = m.login.inputs[m.login.focused].Update(msg)
	return m, cmd
}

// handleLoginResult stores the credential on success and surfaces the
// server's message on failure.
func (m Model) handleLoginResult(msg loginResultMsg) (tea.Model, tea.Cmd) {
	m.login.busy = false

	if msg.err != nil {
		m.lastErr = msg.err.Error()
		return m, nil
	}

	if err := m.store.Login(msg.resp.User, msg.resp.Token); err != nil {
		m.lastErr = err.Error()
		return m, nil
	}

	m.lastErr = ""
	m.notice = "Welcome back, " + msg.resp.User.Name + "!"
	return withCmd(m.navigate(ViewDashboard))
}
