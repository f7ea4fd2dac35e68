package formatter

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/ytlive/internal/models"
	"github.com/desertthunder/ytlive/internal/shared"
)

func testEntries() []*models.StreamEntry {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return []*models.StreamEntry{
		{ID: 1, Name: "news", URL: "https://www.youtube.com/watch?v=abc", CreatedAt: created},
		{ID: 2, Name: "lofi|beats", URL: "https://www.youtube.com/watch?v=def", CreatedAt: created},
	}
}

func TestExporters(t *testing.T) {
	t.Run("ExportToCSV", func(t *testing.T) {
		data, err := ExportToCSV(testEntries())
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		output := string(data)

		if !strings.HasPrefix(output, "ID,Name,URL,Created\n") {
			t.Errorf("CSV missing headers, got: %s", output)
		}
		if !strings.Contains(output, "1,news,https://www.youtube.com/watch?v=abc,2024-03-01T12:00:00Z") {
			t.Errorf("CSV missing first row, got: %s", output)
		}
		if lines := strings.Count(output, "\n"); lines != 3 {
			t.Errorf("expected 3 lines, got %d", lines)
		}
	})

	t.Run("ExportToMarkdown", func(t *testing.T) {
		data, err := ExportToMarkdown(testEntries(), "http://localhost:3000/")
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "**Entries**: 2") {
			t.Errorf("Markdown missing entry count, got: %s", output)
		}
		if !strings.Contains(output, "[mpd](http://localhost:3000/stream/1/master.mpd)") {
			t.Errorf("Markdown missing DASH link, got: %s", output)
		}
		if !strings.Contains(output, "[m3u8](http://localhost:3000/stream/2/master.m3u8)") {
			t.Errorf("Markdown missing HLS link, got: %s", output)
		}
		if !strings.Contains(output, `lofi\|beats`) {
			t.Errorf("expected pipe in name to be escaped, got: %s", output)
		}
	})

	t.Run("ExportToMarkdown empty", func(t *testing.T) {
		data, _ := ExportToMarkdown(nil, "http://localhost:3000")
		if strings.Contains(string(data), "| ID |") {
			t.Errorf("expected no table for empty registry, got: %s", data)
		}
	})

	t.Run("ExportToM3U", func(t *testing.T) {
		entries := append(testEntries(), &models.StreamEntry{ID: 3, URL: "https://www.youtube.com/watch?v=ghi"})
		data, err := ExportToM3U(entries, "http://localhost:3000")
		if err != nil {
			t.Fatalf("ExportToM3U failed: %v", err)
		}

		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		if lines[0] != "#EXTM3U" {
			t.Errorf("expected #EXTM3U header, got %q", lines[0])
		}
		if len(lines) != 7 {
			t.Fatalf("expected 7 lines, got %d: %v", len(lines), lines)
		}
		if lines[1] != "#EXTINF:-1,news" || lines[2] != "http://localhost:3000/stream/1/master.m3u8" {
			t.Errorf("unexpected first item %q %q", lines[1], lines[2])
		}
		if lines[5] != "#EXTINF:-1,https://www.youtube.com/watch?v=ghi" {
			t.Errorf("expected url as title for unnamed entry, got %q", lines[5])
		}
	})
}

func TestExport(t *testing.T) {
	t.Run("dispatches by format", func(t *testing.T) {
		for format, want := range map[string]string{
			"csv":      "ID,Name",
			"markdown": "# Streams",
			"md":       "# Streams",
			"m3u":      "#EXTM3U",
			"M3U8":     "#EXTM3U",
		} {
			data, err := Export(testEntries(), format, "http://x")
			if err != nil {
				t.Errorf("%s: unexpected error: %v", format, err)
				continue
			}
			if !strings.HasPrefix(string(data), want) {
				t.Errorf("%s: expected prefix %q, got %q", format, want, data)
			}
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := Export(testEntries(), "xml", "http://x")
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})
}

func TestWriteExport(t *testing.T) {
	t.Run("writes to nested path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out", "streams.m3u")

		got, err := WriteExport(testEntries(), FormatM3U, "http://x", path)
		if err != nil {
			t.Fatalf("WriteExport failed: %v", err)
		}
		if got != path {
			t.Errorf("expected %s, got %s", path, got)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read export: %v", err)
		}
		if !strings.HasPrefix(string(data), "#EXTM3U") {
			t.Errorf("unexpected content %q", data)
		}
	})

	t.Run("default filename", func(t *testing.T) {
		t.Chdir(t.TempDir())

		got, err := WriteExport(testEntries(), FormatMarkdown, "http://x", "")
		if err != nil {
			t.Fatalf("WriteExport failed: %v", err)
		}
		if got != "streams.md" {
			t.Errorf("expected streams.md, got %s", got)
		}
	})

	t.Run("unknown format writes nothing", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "streams.xml")
		if _, err := WriteExport(testEntries(), "xml", "http://x", path); err == nil {
			t.Error("expected error")
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Error("expected no file to be written")
		}
	})
}
