// Package render: PDF renderer.
// Lays out the note's Markdown view with gofpdf: headings in bold at
// decreasing sizes, fenced code in a shaded monospace block, list items
// with bullets. Images are not embedded.
package render

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/LaffeyOvO/notesnook/core"
	"github.com/jung-kurt/gofpdf"
)

// PDFRenderer renders a note as a PDF document.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// lineKind classifies one line of Markdown for layout.
type lineKind int

const (
	lineText lineKind = iota
	lineBlank
	lineFence
	lineHeading
	lineBullet
	lineNumbered
	lineQuote
	lineRule
)

var numberedRegex = regexp.MustCompile(`^\d+\.\s`)

func classify(line string) (lineKind, int) {
	trimmed := strings.TrimSpace(line)
	switch {
	case trimmed == "":
		return lineBlank, 0
	case strings.HasPrefix(trimmed, "```"):
		return lineFence, 0
	case trimmed == "---":
		return lineRule, 0
	case strings.HasPrefix(line, "#"):
		level := len(line) - len(strings.TrimLeft(line, "#"))
		return lineHeading, level
	case strings.HasPrefix(trimmed, "- "), strings.HasPrefix(trimmed, "* "):
		return lineBullet, len(line) - len(strings.TrimLeft(line, " "))
	case numberedRegex.MatchString(trimmed):
		return lineNumbered, len(line) - len(strings.TrimLeft(line, " "))
	case strings.HasPrefix(trimmed, ">"):
		return lineQuote, 0
	}
	return lineText, 0
}

// Render lays out the note. The title comes from the metadata, falling
// back to the note's headline.
func (r *PDFRenderer) Render(note core.Note, meta core.NoteMetadata) ([]byte, error) {
	markdown, err := note.Markdown()
	if err != nil {
		return nil, fmt.Errorf("converting to markdown: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	title := meta.Title
	if title == "" {
		title = note.Headline()
	}
	if title != "" {
		pdf.SetFont("Helvetica", "B", 18)
		pdf.MultiCell(0, 8, tr(title), "", "L", false)
		pdf.Ln(4)
	}
	if meta.Source != "" {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetTextColor(100, 100, 100)
		pdf.MultiCell(0, 5, tr("Source: "+meta.Source), "", "L", false)
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(6)
	}

	inCode := false
	for _, line := range strings.Split(markdown, "\n") {
		kind, level := classify(line)
		if kind == lineFence {
			inCode = !inCode
			pdf.Ln(2)
			continue
		}
		if inCode {
			pdf.SetFont("Courier", "", 9)
			pdf.SetFillColor(245, 245, 245)
			pdf.MultiCell(0, 4.5, tr(line), "", "L", true)
			continue
		}

		switch kind {
		case lineBlank:
			pdf.Ln(3)
		case lineRule:
			x, y := pdf.GetXY()
			w, _ := pdf.GetPageSize()
			left, _, right, _ := pdf.GetMargins()
			pdf.Line(x, y+2, w-right, y+2)
			pdf.SetX(left)
			pdf.Ln(4)
		case lineHeading:
			renderHeading(pdf, tr(cleanInline(strings.TrimLeft(line, "# "))), level)
		case lineBullet:
			indent(pdf, level)
			text := strings.TrimSpace(line)[2:]
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, tr("• "+cleanInline(text)), "", "L", false)
			indent(pdf, -level)
		case lineNumbered:
			indent(pdf, level)
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, tr(cleanInline(strings.TrimSpace(line))), "", "L", false)
			indent(pdf, -level)
		case lineQuote:
			pdf.SetFont("Helvetica", "I", 10)
			pdf.SetTextColor(80, 80, 80)
			text := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), ">"))
			pdf.MultiCell(0, 5, tr(cleanInline(text)), "", "L", false)
			pdf.SetTextColor(0, 0, 0)
		default:
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, tr(cleanInline(line)), "", "L", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

var headingSizes = map[int]float64{1: 18, 2: 15, 3: 13, 4: 12, 5: 11, 6: 10}

func renderHeading(pdf *gofpdf.Fpdf, text string, level int) {
	size, ok := headingSizes[level]
	if !ok {
		size = 10
	}
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", size)
	pdf.MultiCell(0, size*0.6, text, "", "L", false)
	pdf.Ln(2)
}

// indent moves the left margin right by spaces millimetres, or left when
// spaces is negative.
func indent(pdf *gofpdf.Fpdf, spaces int) {
	left, _, _, _ := pdf.GetMargins()
	pdf.SetLeftMargin(left + float64(spaces))
	pdf.SetX(left + float64(spaces))
}

var (
	italicRegex = regexp.MustCompile(`(^|\s)\*([^*]+)\*(\s|$)`)
	codeRegex   = regexp.MustCompile("`([^`]+)`")
	linkRegex   = regexp.MustCompile(`\[([^\]]*)\]\([^)]+\)`)
	escapeRegex = regexp.MustCompile(`\\([\\*_#\[\]()>` + "`" + `.!-])`)
)

// cleanInline strips inline Markdown formatting.
func cleanInline(text string) string {
	text = strings.ReplaceAll(text, "**", "")
	text = italicRegex.ReplaceAllString(text, "$1$2$3")
	text = codeRegex.ReplaceAllString(text, "$1")
	text = linkRegex.ReplaceAllString(text, "$1")
	text = escapeRegex.ReplaceAllString(text, "$1")
	return strings.TrimSpace(text)
}
