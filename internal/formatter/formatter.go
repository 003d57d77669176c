// package formatter renders track listings (CSV, Markdown, plain text, JSON) and names download destinations
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/desertthunder/scx/internal/models"
	"github.com/desertthunder/scx/internal/shared"
)

// Format names a listing export format.
type Format string

const (
	FormatText     Format = "text"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "md"
	FormatJSON     Format = "json"
)

// ParseFormat accepts a format name or common alias.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "text", "txt":
		return FormatText, nil
	case "csv":
		return FormatCSV, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, s)
	}
}

// Render converts a page in the given format
func Render(page *models.ListingPage, format Format) ([]byte, error) {
	switch format {
	case FormatCSV:
		return ListingToCSV(page)
	case FormatMarkdown:
		return ListingToMarkdown(page), nil
	case FormatJSON:
		return shared.MarshalJSON(page, true)
	default:
		return ListingToText(page), nil
	}
}

// ListingToCSV converts a page to CSV with columns: ID, Title, Date, Thumbnail
func ListingToCSV(page *models.ListingPage) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"ID", "Title", "Date", "Thumbnail"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, track := range page.Tracks {
		record := []string{strconv.FormatInt(track.Source, 10), track.Title, track.Date, track.Thumbnail}
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

// ListingToMarkdown renders a page as a Markdown table with artwork thumbnails
func ListingToMarkdown(page *models.ListingPage) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# SoundCloud tracks (page %d of %d)\n\n", page.Page, max(page.TotalPages, 1))
	fmt.Fprintf(&buf, "**Tracks**: %d\n\n", page.Total)

	if len(page.Tracks) == 0 {
		buf.WriteString("_No tracks._\n")
		return buf.Bytes()
	}

	buf.WriteString("| | ID | Title | Date |\n|---|---|---|---|\n")
	for _, track := range page.Tracks {
		fmt.Fprintf(&buf, "| ![](%s) | %d | %s | %s |\n",
			track.Thumbnail, track.Source, strings.ReplaceAll(track.Title, "|", `\|`), track.Date)
	}

	return buf.Bytes()
}

// ListingToText renders a page as numbered lines
func ListingToText(page *models.ListingPage) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Page %d of %d (%d tracks)\n\n", page.Page, max(page.TotalPages, 1), page.Total)
	offset := (page.Page - 1) * models.PageSize
	for i, track := range page.Tracks {
		fmt.Fprintf(&buf, "%d. [%d] %s\n", offset+i+1, track.Source, track.Title)
	}

	return buf.Bytes()
}

// WriteListing renders a page to path, inferring the format from the extension when format is empty.
func WriteListing(page *models.ListingPage, path string, format Format) error {
	if format == "" {
		var err error
		if format, err = ParseFormat(strings.TrimPrefix(filepath.Ext(path), ".")); err != nil {
			format = FormatText
		}
	}

	data, err := Render(page, format)
	if err != nil {
		return fmt.Errorf("failed to render listing: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write listing: %w", err)
	}
	return nil
}

// SanitizeFilename replaces characters that are unsafe in file names on common filesystems.
//
// Empty results become "track".
func SanitizeFilename(name string) string {
	name = strings.Map(func(r rune) rune {
		switch {
		case r < 0x20, strings.ContainsRune(`<>:"/\|?*`, r):
			return '_'
		default:
			return r
		}
	}, name)

	name = strings.Trim(name, " .")
	if name == "" {
		return "track"
	}
	return name
}

// DestinationPath returns dir/filename with a sanitized file name.
//
// When the file already exists a numeric suffix is added before the extension, "Foo (1).mp3".
func DestinationPath(dir, filename string) string {
	name := SanitizeFilename(filename)
	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); err != nil {
		return path
	}

	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	for i := 1; ; i++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s (%d)%s", base, i, ext))
		if _, err := os.Stat(candidate); err != nil {
			return candidate
		}
	}
}
