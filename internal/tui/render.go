package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-pass-guard/internal/session"
	"github.com/MKhiriev/go-pass-guard/models"
	"github.com/charmbracelet/lipgloss"
)

const timeLayout = "2006-01-02 15:04"

// RenderSession describes who is signed in and what to do next.
func RenderSession(s session.Session) string {
	lines := []string{"phase: " + phaseStyle.Render(s.Phase.String())}

	if s.Principal != nil {
		who := s.Principal.Email
		if who == "" {
			who = s.Principal.UID
		}
		lines = append(lines, fmt.Sprintf("principal: %s (%s)", who, s.Principal.Provider))
	}
	if s.Owner != nil {
		lines = append(lines, "owner: "+s.Owner.OwnerID)
	}

	switch s.Phase {
	case session.Unauthenticated:
		lines = append(lines, helpStyle.Render("run login, signup or federated <google|github>"))
	case session.AuthPending:
		lines = append(lines, helpStyle.Render("finish the sign-in in your browser, then run status"))
	case session.Unlinked:
		lines = append(lines, helpStyle.Render("no owner record yet, run signup to create it"))
	}

	return boxStyle.Render(strings.Join(lines, "\n"))
}

// RenderEntries renders entries as a table with masked passwords.
func RenderEntries(entries []models.CredentialEntry) string {
	if len(entries) == 0 {
		return helpStyle.Render("no entries")
	}

	rows := [][]string{{"ID", "WEBSITE", "USERNAME", "PASSWORD", "UPDATED"}}
	for _, e := range entries {
		rows = append(rows, []string{
			e.EntryID,
			fitText(e.Website, 32),
			fitText(e.Username, 24),
			models.MaskPassword(e.Password),
			e.UpdatedAt.Local().Format(timeLayout),
		})
	}

	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	var b strings.Builder
	for r, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = lipgloss.NewStyle().Width(widths[i]).Render(cell)
		}
		line := strings.Join(cells, "  ")
		if r == 0 {
			line = titleStyle.Render(line)
		}
		b.WriteString(strings.TrimRight(line, " "))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderEntry renders a single entry. The password is shown only when
// reveal is set.
func RenderEntry(e models.CredentialEntry, reveal bool) string {
	password := models.MaskPassword(e.Password)
	if reveal {
		password = e.Password
	}

	lines := []string{
		titleStyle.Render(e.Website),
		labelStyle.Render("id") + e.EntryID,
		labelStyle.Render("username") + e.Username,
		labelStyle.Render("password") + password,
		labelStyle.Render("created") + formatTime(e.CreatedAt),
		labelStyle.Render("updated") + formatTime(e.UpdatedAt),
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}

func RenderError(err error) string {
	return errorStyle.Render("error: " + humanizeError(err))
}

func RenderSuccess(msg string) string {
	return successStyle.Render(msg)
}

func RenderHint(msg string) string {
	return helpStyle.Render(msg)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(timeLayout)
}

func fitText(v string, limit int) string {
	r := []rune(v)
	if limit <= 0 || len(r) <= limit {
		return v
	}
	if limit <= 3 {
		return string(r[:limit])
	}
	return string(r[:limit-3]) + "..."
}
