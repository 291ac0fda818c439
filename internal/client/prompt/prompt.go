// Package prompt renders the bulk-action confirmation as a terminal dialog.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	clientBulk "github.com/horilla-hris/hris-bulk-go/internal/client/bulk"
)

type model struct {
	dialog    clientBulk.Dialog
	styles    Styles
	confirmed bool
	done      bool
}

func newModel(dialog clientBulk.Dialog, styles Styles) model {
	return model{dialog: dialog, styles: styles}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "y", "Y", "enter":
		m.confirmed = true
		m.done = true
		return m, tea.Quit
	case "n", "N", "esc", "q", "ctrl+c":
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m model) View() string {
	if m.done {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.styles.ForSeverity(m.dialog.Severity).Render(m.dialog.Text))
	if m.dialog.Badge != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Badge.Render(m.dialog.Badge))
	}
	b.WriteString("\n\n")
	b.WriteString(m.styles.Help.Render(fmt.Sprintf("[y/enter] %s   [n/esc] %s", m.dialog.ConfirmLabel, m.dialog.CancelLabel)))
	return m.styles.Box.Render(b.String()) + "\n"
}

// Prompt asks for confirmation on a terminal.
type Prompt struct {
	in     io.Reader
	out    io.Writer
	styles Styles
}

func New(in io.Reader, out io.Writer) *Prompt {
	return &Prompt{in: in, out: out, styles: NewStyles()}
}

// Confirm implements bulk.Confirmer.
func (p *Prompt) Confirm(ctx context.Context, dialog clientBulk.Dialog) (bool, error) {
	program := tea.NewProgram(
		newModel(dialog, p.styles),
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
		tea.WithContext(ctx),
	)
	final, err := program.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return false, ctx.Err()
		}
		return false, err
	}
	m, ok := final.(model)
	return ok && m.confirmed, nil
}

// AutoConfirm accepts every dialog, echoing it to Out.
type AutoConfirm struct {
	Out io.Writer
}

// Confirm implements bulk.Confirmer.
func (a AutoConfirm) Confirm(ctx context.Context, dialog clientBulk.Dialog) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if a.Out != nil {
		fmt.Fprintf(a.Out, "%s [%s]\n", dialog.Text, dialog.ConfirmLabel)
	}
	return true, nil
}

// Notifier prints toasts as styled lines.
type Notifier struct {
	out    io.Writer
	styles Styles
}

func NewNotifier(out io.Writer) *Notifier {
	return &Notifier{out: out, styles: NewStyles()}
}

// Notify implements bulk.Notifier.
func (n *Notifier) Notify(notice clientBulk.Notice) {
	fmt.Fprintln(n.out, n.styles.ForLevel(notice.Level).Render(notice.Text))
}

var (
	_ clientBulk.Confirmer = (*Prompt)(nil)
	_ clientBulk.Confirmer = AutoConfirm{}
	_ clientBulk.Notifier  = (*Notifier)(nil)
)
