package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/DoyleJ11/vote-reveal/internal/view"
)

// View implements tea.Model.
func (m Model) View() string {
	screen := m.Screen()
	width := m.width
	if width <= 0 {
		width = 80
	}
	boxWidth := min(width-2, 72)

	var sections []string

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(m.theme.Text)
	if screen.Title != "" {
		sections = append(sections, titleStyle.Render(screen.Title))
	}

	if screen.ShowProgress {
		m.progress.Width = boxWidth
		sections = append(sections, m.progress.ViewAs(screen.Progress))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Border).
		Padding(1, 2).
		Width(boxWidth).
		Align(lipgloss.Center)

	switch screen.Kind {
	case view.KindHalted:
		errStyle := lipgloss.NewStyle().Foreground(m.theme.Error).Bold(true)
		sections = append(sections, box.BorderForeground(m.theme.Error).Render(errStyle.Render(screen.Error)))

	case view.KindComplete:
		banner := lipgloss.NewStyle().Foreground(m.theme.Success).Bold(true).Render(screen.Banner)
		sections = append(sections, banner, m.tallyTable(screen))

	default:
		header := lipgloss.JoinVertical(lipgloss.Center,
			lipgloss.NewStyle().Bold(true).Foreground(m.theme.Text).Render(screen.Heading),
			lipgloss.NewStyle().Foreground(m.theme.Timestamp).Render(screen.ReceivedLabel+" "+screen.Timestamp),
		)
		sections = append(sections, box.Render(header))

		label := lipgloss.NewStyle().Foreground(m.theme.Faint).Bold(true)
		if screen.Kind == view.KindSealed {
			sections = append(sections, box.Render(lipgloss.JoinVertical(lipgloss.Center,
				"🔒",
				label.Render(strings.ToUpper(screen.SealedLabel)),
			)))
		} else {
			candidate := lipgloss.NewStyle().
				Bold(true).
				Foreground(m.theme.Candidate).
				Background(m.theme.Glow).
				Padding(1, 4)
			sections = append(sections, box.Render(lipgloss.JoinVertical(lipgloss.Center,
				label.Render(strings.ToUpper(screen.ChoiceLabel)),
				"",
				candidate.Render(screen.Candidate),
			)))
		}
	}

	if screen.Control != nil {
		button := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color(m.theme.ButtonStart)).
			Padding(0, 2)
		sections = append(sections, button.Render(screen.Control.Label))
	}

	sections = append(sections, m.help(screen))

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	if m.height > 0 {
		return lipgloss.Place(width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}

func (m Model) tallyTable(screen view.Screen) string {
	rows := make([][]string, 0, len(screen.Tally))
	for _, r := range screen.Tally {
		rows = append(rows, []string{r.Candidate, r.Display})
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(m.theme.Border)).
		Headers(screen.TallyHeaders[0], screen.TallyHeaders[1]).
		Rows(rows...).
		String()
}

func (m Model) help(screen view.Screen) string {
	bindings := []string{m.keys.Quit.Help().Key + " " + m.keys.Quit.Help().Desc}
	if screen.Control != nil {
		bindings = append([]string{m.keys.Primary.Help().Key + " " + strings.ToLower(string(screen.Control.Command))}, bindings...)
	}
	return lipgloss.NewStyle().Foreground(m.theme.Faint).Render(strings.Join(bindings, " • "))
}
