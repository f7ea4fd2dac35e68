package ui

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/desertthunder/ytlive/internal/models"
)

const timeLayout = "2006-01-02 15:04"

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styles.help).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.title.MarginBottom(0).Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}

// StreamTable renders registered streams with their redirect paths.
func StreamTable(entries []*models.StreamEntry) string {
	t := newTable("ID", "NAME", "URL", "HLS", "CREATED")
	for _, e := range entries {
		t.Row(
			strconv.FormatInt(e.ID, 10),
			e.Name,
			e.URL,
			"/hls/"+e.Name+".m3u8",
			e.CreatedAt.Local().Format(timeLayout),
		)
	}
	return t.String()
}

// UserTable renders login accounts. Hashes are never shown.
func UserTable(users []*models.User) string {
	t := newTable("ID", "USERNAME", "CREATED")
	for _, u := range users {
		t.Row(strconv.FormatInt(u.ID, 10), u.Username, u.CreatedAt.Local().Format(timeLayout))
	}
	return t.String()
}
