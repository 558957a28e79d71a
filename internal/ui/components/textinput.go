package components

import (
	"strconv"
	"strings"
	"unicode"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/unitutor/internal/ui/theme"
)

// InputKind restricts what a TextInput accepts and how its value is read.
type InputKind int

const (
	// InputText accepts anything.
	InputText InputKind = iota

	// InputDigits drops every keystroke that is not 0-9.
	InputDigits

	// InputPath strips the quotes terminals add when a file is dropped
	// onto them.
	InputPath
)

// TextInput is a focused bubbles/textinput with a validity mark.
type TextInput struct {
	model textinput.Model
	kind  InputKind
	mark  int // 0 unmarked, 1 accepted, -1 rejected
}

// NewTextInput returns a focused input. limit caps the number of
// characters and width the visible field; zero leaves either unset.
func NewTextInput(kind InputKind, placeholder string, limit, width int) TextInput {
	m := textinput.New()
	m.Placeholder = placeholder
	if limit > 0 {
		m.CharLimit = limit
	}
	if width > 0 {
		m.SetWidth(width)
	}
	m.Focus()
	return TextInput{model: m, kind: kind}
}

func (t TextInput) Init() tea.Cmd {
	return t.model.Focus()
}

func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if key, ok := msg.(tea.KeyPressMsg); ok && t.kind == InputDigits && !digitsOnly(key.Text) {
		return t, nil
	}
	t.mark = 0

	var cmd tea.Cmd
	t.model, cmd = t.model.Update(msg)
	return t, cmd
}

func (t TextInput) View() string {
	v := t.model.View()
	switch t.mark {
	case 1:
		v += " " + lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
	case -1:
		v += " " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
	}
	return v
}

// Value returns the trimmed input.
func (t TextInput) Value() string {
	v := strings.TrimSpace(t.model.Value())
	if t.kind == InputPath {
		v = strings.Trim(v, `"'`)
	}
	return v
}

// Int parses the input as a base 10 integer.
func (t TextInput) Int() (int, error) {
	return strconv.Atoi(t.Value())
}

func (t *TextInput) SetValue(v string) {
	t.model.SetValue(v)
}

func (t *TextInput) SetPlaceholder(p string) {
	t.model.Placeholder = p
}

// Mark shows ✓ or ✗ next to the field until the next edit.
func (t *TextInput) Mark(ok bool) {
	t.mark = -1
	if ok {
		t.mark = 1
	}
}

// Reset clears the value and the mark.
func (t *TextInput) Reset() {
	t.model.SetValue("")
	t.mark = 0
}

// digitsOnly reports whether text holds no runes other than 0-9. Keys
// without text, like backspace, pass.
func digitsOnly(text string) bool {
	for _, r := range text {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
