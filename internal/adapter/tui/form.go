package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type field struct {
	label string
	input textinput.Model
}

// fields is a vertical list of inputs with one focused at a time.
type fields struct {
	items []field
	idx   int
}

func newFields(labels ...string) fields {
	fs := fields{items: make([]field, len(labels))}
	for i, l := range labels {
		in := textinput.New()
		in.CharLimit = 64
		in.Width = 32
		if strings.Contains(strings.ToLower(l), "password") {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '•'
		}
		fs.items[i] = field{label: l, input: in}
	}
	return fs
}

func (fs *fields) focus() tea.Cmd {
	for i := range fs.items {
		fs.items[i].input.Blur()
	}
	return fs.items[fs.idx].input.Focus()
}

func (fs *fields) next() tea.Cmd {
	fs.idx = (fs.idx + 1) % len(fs.items)
	return fs.focus()
}

func (fs *fields) prev() tea.Cmd {
	fs.idx = (fs.idx - 1 + len(fs.items)) % len(fs.items)
	return fs.focus()
}

func (fs *fields) reset() {
	for i := range fs.items {
		fs.items[i].input.Reset()
	}
	fs.idx = 0
}

func (fs *fields) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	fs.items[fs.idx].input, cmd = fs.items[fs.idx].input.Update(msg)
	return cmd
}

func (fs fields) value(i int) string {
	return fs.items[i].input.Value()
}

func (fs fields) view(st styles) string {
	var b strings.Builder
	for _, f := range fs.items {
		b.WriteString(st.formLabel.Render(f.label))
		b.WriteString(f.input.View())
		b.WriteByte('\n')
	}
	return b.String()
}
