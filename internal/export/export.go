// Package export renders report tables as CSV, Markdown or HTML.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/TobiSchelling/billtally/internal/tabulate"
)

// Format is an output encoding.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

var md = goldmark.New(goldmark.WithExtensions(extension.Table))

// ParseFormat accepts csv, markdown (or md) and html.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "csv":
		return FormatCSV, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "html":
		return FormatHTML, nil
	}
	return "", &tabulate.ArgumentError{Name: "output format", Value: s}
}

// Render encodes r in the given format.
func Render(r tabulate.Report, f Format) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	switch f {
	case FormatCSV, "":
		err = writeCSV(&buf, r)
	case FormatMarkdown:
		err = writeMarkdown(&buf, r)
	case FormatHTML:
		err = writeHTML(&buf, r)
	default:
		return nil, &tabulate.ArgumentError{Name: "output format", Value: string(f)}
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile renders r fully before touching path, so a failed render never
// leaves a partial file behind.
func WriteFile(path string, r tabulate.Report, f Format) error {
	data, err := Render(r, f)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// writeCSV quotes fields with a leading space as well as the usual comma,
// quote and newline cases.
func writeCSV(w io.Writer, r tabulate.Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(r.Columns); err != nil {
		return err
	}
	if err := cw.WriteAll(r.Rows); err != nil {
		return fmt.Errorf("encoding csv: %w", err)
	}
	return nil
}

func writeMarkdown(w io.Writer, r tabulate.Report) error {
	var sb strings.Builder
	sb.WriteString(markdownRow(r.Columns))
	seps := make([]string, len(r.Columns))
	for i := range seps {
		seps[i] = "---"
	}
	sb.WriteString("| " + strings.Join(seps, " | ") + " |\n")
	for _, row := range r.Rows {
		sb.WriteString(markdownRow(row))
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func markdownRow(cells []string) string {
	escaped := make([]string, len(cells))
	for i, c := range cells {
		escaped[i] = escapeMarkdown(c)
	}
	return "| " + strings.Join(escaped, " | ") + " |\n"
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	"|", `\|`,
	"*", `\*`,
	"_", `\_`,
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	">", `\>`,
	"&", `\&`,
	"\r\n", " ",
	"\n", " ",
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

func writeHTML(w io.Writer, r tabulate.Report) error {
	var src bytes.Buffer
	if err := writeMarkdown(&src, r); err != nil {
		return err
	}
	if err := md.Convert(src.Bytes(), w); err != nil {
		return fmt.Errorf("rendering html: %w", err)
	}
	return nil
}
