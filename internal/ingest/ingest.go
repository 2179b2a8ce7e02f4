// Package ingest turns uploaded resume files into plain text. PDF, HTML,
// and plain-text/markdown inputs are supported; the format is chosen from
// the filename extension with a content sniff as backup.
package ingest

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ledongthuc/pdf"
)

// Format identifies a supported upload format.
type Format string

// Supported upload formats.
const (
	FormatPDF  Format = "pdf"
	FormatHTML Format = "html"
	FormatText Format = "text"
)

// DetectFormat picks the format for a filename and its content. Unknown
// extensions fall back to content sniffing, then to plain text.
func DetectFormat(filename string, content []byte) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return FormatPDF
	case ".html", ".htm":
		return FormatHTML
	case ".txt", ".md", ".markdown":
		return FormatText
	}

	if bytes.HasPrefix(content, []byte("%PDF-")) {
		return FormatPDF
	}
	trimmed := bytes.TrimSpace(content)
	if bytes.HasPrefix(trimmed, []byte("<!DOCTYPE")) || bytes.HasPrefix(trimmed, []byte("<html")) {
		return FormatHTML
	}
	return FormatText
}

// ExtractText converts an uploaded resume into cleaned plain text.
func ExtractText(filename string, content []byte) (string, error) {
	switch DetectFormat(filename, content) {
	case FormatPDF:
		return extractPDF(content)
	case FormatHTML:
		return extractHTML(content)
	default:
		return CleanText(string(content)), nil
	}
}

// extractPDF pulls text from every page in order.
func extractPDF(content []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	var sb strings.Builder
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to extract text from page %d: %w", pageNum, err)
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	cleaned := CleanText(sb.String())
	if cleaned == "" {
		return "", fmt.Errorf("PDF contains no extractable text")
	}
	return cleaned, nil
}

// extractHTML renders the document's visible text, dropping script and
// style content.
func extractHTML(content []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("script, style, noscript").Remove()

	var sb strings.Builder
	doc.Find("body").Each(func(_ int, s *goquery.Selection) {
		sb.WriteString(s.Text())
	})
	if sb.Len() == 0 {
		sb.WriteString(doc.Text())
	}

	cleaned := CleanText(sb.String())
	if cleaned == "" {
		return "", fmt.Errorf("HTML contains no extractable text")
	}
	return cleaned, nil
}

// CleanText normalizes whitespace: line endings become \n, intra-line runs
// of spaces and tabs collapse to one space, and runs of blank lines
// collapse to a single blank line.
func CleanText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			if !blank && len(cleaned) > 0 {
				cleaned = append(cleaned, "")
			}
			blank = true
			continue
		}
		blank = false
		cleaned = append(cleaned, line)
	}

	return strings.TrimRight(strings.Join(cleaned, "\n"), "\n")
}
