package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const maxJobRows = 5

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Store-3D Bridge"))
	b.WriteString("\n\n")
	b.WriteString(m.viewConfig())
	b.WriteString("\n")
	b.WriteString(m.viewJobs())
	b.WriteString("\n")

	if m.pairing {
		b.WriteString(m.styles.Label.Render("Pair code: "))
		b.WriteString(m.pairInput.View())
		b.WriteString("\n")
		b.WriteString(m.styles.Help.Render("enter confirm · esc cancel"))
		b.WriteString("\n")
	} else {
		b.WriteString(m.viewStatus())
		b.WriteString("\n")
		b.WriteString(m.styles.Help.Render("p pair · t test · f fetch · i import · r reload · q quit"))
		b.WriteString("\n")
	}

	return m.styles.Panel.Render(b.String())
}

func (m Model) viewConfig() string {
	if !m.hasCfg {
		return m.styles.Muted.Render("Loading config...") + "\n"
	}

	token := m.styles.Danger.Render("not set")
	if m.cfg.APIToken != "" {
		token = m.styles.Success.Render("set")
	}

	lines := []string{
		m.styles.Label.Render("Server:     ") + m.styles.Value.Render(m.cfg.ServerURL),
		m.styles.Label.Render("API token:  ") + token,
		m.styles.Label.Render("Collection: ") + m.styles.Value.Render(m.cfg.ImportCollection),
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...) + "\n"
}

func (m Model) viewJobs() string {
	jobs := m.snapshot.Jobs

	header := m.styles.Label.Render(fmt.Sprintf("Queued (cached): %d", len(jobs)))
	if len(jobs) == 0 {
		return header + "\n" + m.styles.Muted.Render("No cached jobs.") + "\n"
	}

	lines := []string{header}
	for i, job := range jobs {
		if i >= maxJobRows {
			lines = append(lines, m.styles.Muted.Render(fmt.Sprintf("... and %d more", len(jobs)-maxJobRows)))
			break
		}
		format := job.Format
		if format == "" {
			format = "?"
		}
		lines = append(lines, m.styles.Value.Render(
			fmt.Sprintf("%-18s %-18s %s", shorten(job.JobID, 16), shorten(job.AssetID, 16), format),
		))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...) + "\n"
}

func (m Model) viewStatus() string {
	style := m.styles.Value
	switch {
	case m.busy:
		style = m.styles.Busy
	case m.statusKind == statusSuccess:
		style = m.styles.Success
	case m.statusKind == statusError:
		style = m.styles.Danger
	}
	return style.Render(m.status)
}

func shorten(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
