// Package exporter renders generated content into downloadable files.
package exporter

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"ai_content_studio/generator"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported export format")
	ErrNoCalendar        = errors.New("no calendar rows to export")
	ErrEmptyContent      = errors.New("nothing to export")
)

type Format string

const (
	FormatText     Format = "txt"
	FormatMarkdown Format = "md"
	FormatHTML     Format = "html"
	FormatCSV      Format = "csv"
)

// Formats lists every supported download format.
func Formats() []Format {
	return []Format{FormatText, FormatMarkdown, FormatHTML, FormatCSV}
}

func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")))
	switch f {
	case FormatText, FormatMarkdown, FormatHTML, FormatCSV:
		return f, nil
	case "markdown":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// Document is what a download is rendered from.
type Document struct {
	Title    string                  `json:"title,omitempty"`
	Content  string                  `json:"content"`
	Calendar []generator.CalendarRow `json:"calendar,omitempty"`
}

// File is a rendered download.
type File struct {
	Name        string
	ContentType string
	Body        []byte
}

var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

func Export(format Format, doc Document) (File, error) {
	switch format {
	case FormatText:
		if strings.TrimSpace(doc.Content) == "" {
			return File{}, ErrEmptyContent
		}
		return File{Name: "ai_content.txt", ContentType: "text/plain; charset=utf-8", Body: []byte(doc.Content)}, nil
	case FormatMarkdown:
		if strings.TrimSpace(doc.Content) == "" {
			return File{}, ErrEmptyContent
		}
		return File{Name: "ai_content.md", ContentType: "text/markdown; charset=utf-8", Body: []byte(doc.Content)}, nil
	case FormatHTML:
		if strings.TrimSpace(doc.Content) == "" {
			return File{}, ErrEmptyContent
		}
		body, err := toHTML(doc)
		if err != nil {
			return File{}, err
		}
		return File{Name: "ai_content.html", ContentType: "text/html; charset=utf-8", Body: body}, nil
	case FormatCSV:
		if len(doc.Calendar) == 0 {
			return File{}, ErrNoCalendar
		}
		body, err := calendarCSV(doc.Calendar)
		if err != nil {
			return File{}, err
		}
		return File{Name: "content_calendar.csv", ContentType: "text/csv; charset=utf-8", Body: body}, nil
	default:
		return File{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, string(format))
	}
}

// MarkdownToHTML converts a Markdown fragment.
func MarkdownToHTML(src string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func toHTML(doc Document) ([]byte, error) {
	content, err := MarkdownToHTML(doc.Content)
	if err != nil {
		return nil, err
	}
	title := doc.Title
	if title == "" {
		title = "AI Content"
	}
	var b bytes.Buffer
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>")
	b.WriteString(escape(title))
	b.WriteString("</title>\n</head>\n<body>\n")
	b.WriteString(content)
	if len(doc.Calendar) > 0 {
		b.WriteString(CalendarTable(doc.Calendar))
	}
	b.WriteString("</body>\n</html>\n")
	return b.Bytes(), nil
}

// CalendarTable renders rows as an HTML table.
func CalendarTable(rows []generator.CalendarRow) string {
	var b strings.Builder
	b.WriteString("<table>\n<thead><tr><th>Day</th><th>Idea</th><th>Caption</th></tr></thead>\n<tbody>\n")
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("<tr><td>%d</td><td>%s</td><td>%s</td></tr>\n", r.Day, escape(r.Idea), escape(r.Caption)))
	}
	b.WriteString("</tbody>\n</table>\n")
	return b.String()
}

// CalendarMarkdown renders rows as a GFM table.
func CalendarMarkdown(rows []generator.CalendarRow) string {
	var b strings.Builder
	b.WriteString("| Day | Idea | Caption |\n| --- | --- | --- |\n")
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("| %d | %s | %s |\n", r.Day, pipeEscape(r.Idea), pipeEscape(r.Caption)))
	}
	return b.String()
}

func calendarCSV(rows []generator.CalendarRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Day", "Idea", "Caption"}); err != nil {
		return nil, err
	}
	for _, r := range rows {
		if err := w.Write([]string{strconv.Itoa(r.Day), r.Idea, r.Caption}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func escape(s string) string { return html.EscapeString(s) }

func pipeEscape(s string) string { return strings.ReplaceAll(s, "|", `\|`) }
