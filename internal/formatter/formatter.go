// package formatter provides functions to export registered streams to various formats (CSV, Markdown, M3U)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/ytlive/internal/models"
	"github.com/desertthunder/ytlive/internal/shared"
)

// Format names accepted by [Export].
const (
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
	FormatM3U      = "m3u"
)

// ExportToCSV converts entries to CSV format with columns: ID, Name, URL, Created
func ExportToCSV(entries []*models.StreamEntry) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Name", "URL", "Created"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, e := range entries {
		record := []string{
			strconv.FormatInt(e.ID, 10),
			e.Name,
			e.URL,
			e.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts entries to a Markdown table linking each watch page and its redirect endpoints on baseURL
func ExportToMarkdown(entries []*models.StreamEntry, baseURL string) ([]byte, error) {
	base := strings.TrimRight(baseURL, "/")
	var buf bytes.Buffer

	buf.WriteString("# Streams\n\n")
	buf.WriteString(fmt.Sprintf("**Entries**: %d\n\n", len(entries)))

	if len(entries) == 0 {
		return buf.Bytes(), nil
	}

	buf.WriteString("| ID | Name | Page | DASH | HLS |\n")
	buf.WriteString("|---|---|---|---|---|\n")
	for _, e := range entries {
		buf.WriteString(fmt.Sprintf("| %d | %s | [watch](%s) | [mpd](%s) | [m3u8](%s) |\n",
			e.ID, escapeCell(e.Name), e.URL, StreamLink(base, e, models.FormatDash), StreamLink(base, e, models.FormatHLS)))
	}

	return buf.Bytes(), nil
}

// ExportToM3U builds an extended M3U playlist whose items are the HLS redirect endpoints on baseURL.
//
// Players load the playlist once and follow each redirect to the live manifest when an item is opened.
func ExportToM3U(entries []*models.StreamEntry, baseURL string) ([]byte, error) {
	base := strings.TrimRight(baseURL, "/")
	var buf bytes.Buffer

	buf.WriteString("#EXTM3U\n")
	for _, e := range entries {
		title := e.Name
		if title == "" {
			title = e.URL
		}
		buf.WriteString(fmt.Sprintf("#EXTINF:-1,%s\n", strings.ReplaceAll(title, "\n", " ")))
		buf.WriteString(StreamLink(base, e, models.FormatHLS) + "\n")
	}

	return buf.Bytes(), nil
}

// StreamLink returns the id based redirect endpoint for entry on base.
func StreamLink(base string, e *models.StreamEntry, format models.Format) string {
	ext := "m3u8"
	if format == models.FormatDash {
		ext = "mpd"
	}
	return fmt.Sprintf("%s/stream/%d/master.%s", strings.TrimRight(base, "/"), e.ID, ext)
}

// Export renders entries in the named format.
func Export(entries []*models.StreamEntry, format, baseURL string) ([]byte, error) {
	switch strings.ToLower(format) {
	case FormatCSV:
		return ExportToCSV(entries)
	case FormatMarkdown, "md":
		return ExportToMarkdown(entries, baseURL)
	case FormatM3U, "m3u8":
		return ExportToM3U(entries, baseURL)
	default:
		return nil, fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidArgument, format)
	}
}

// DefaultFilename returns the file name used when no output path is given.
func DefaultFilename(format string) string {
	switch strings.ToLower(format) {
	case FormatMarkdown, "md":
		return "streams.md"
	case FormatM3U, "m3u8":
		return "streams.m3u"
	default:
		return "streams.csv"
	}
}

// WriteExport renders entries and writes them to path, creating parent directories as needed.
//
// Defaults to [DefaultFilename] in the working directory.
func WriteExport(entries []*models.StreamEntry, format, baseURL, path string) (string, error) {
	if path == "" {
		path = DefaultFilename(format)
	}

	data, err := Export(entries, format, baseURL)
	if err != nil {
		return "", err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return path, nil
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
