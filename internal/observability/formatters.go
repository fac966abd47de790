// Package observability provides logging setup and formatted output for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/jonathan/cv-genie/internal/rendering"
	"github.com/jonathan/cv-genie/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	inner := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", fit(title, inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", fit(line, inner))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// fit truncates or pads s to exactly width terminal cells
func fit(s string, width int) string {
	s = runewidth.Truncate(s, width, "...")
	return runewidth.FillRight(s, width)
}

// PrintRecordSummary outputs a short overview of a CV record.
func (p *Printer) PrintRecordSummary(r types.Record) {
	var sb strings.Builder

	name := r.FullName()
	if name == "" {
		name = "(no name)"
	}
	sb.WriteString(fmt.Sprintf("Name:     %s\n", name))
	if title := r.Field(types.SectionPersonalInfo, types.FieldJobTitle); title != "" {
		sb.WriteString(fmt.Sprintf("Title:    %s\n", title))
	}

	contact := r.Object(types.SectionContactInfo)
	var channels []string
	for _, f := range types.SectionContactInfo.Fields() {
		if contact.Get(f) != "" {
			channels = append(channels, f)
		}
	}
	if len(channels) > 0 {
		sb.WriteString(fmt.Sprintf("Contact:  %s\n", strings.Join(channels, ", ")))
	}

	if summary := r.Text(types.SectionProfessionalSummary); summary != "" {
		sb.WriteString(fmt.Sprintf("Summary:  %d characters\n", runewidth.StringWidth(summary)))
	}
	sb.WriteString("\n")

	for _, id := range types.ListSections() {
		items := r.Items(id)
		if len(items) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("%s: %d\n", id, len(items)))
		count := min(len(items), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", itemLabel(id, items[i])))
		}
		if len(items) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
		}
	}

	p.printBox("CV SUMMARY", strings.TrimSuffix(sb.String(), "\n"))
}

// itemLabel picks the most descriptive non-empty field of an item
func itemLabel(id types.SectionID, item types.Fields) string {
	var candidates []string
	switch id {
	case types.SectionWorkExperience:
		candidates = []string{types.FieldPosition, types.FieldCompany}
	case types.SectionEducation:
		candidates = []string{types.FieldDegree, types.FieldInstitution}
	default:
		candidates = []string{types.FieldName}
	}
	for _, f := range candidates {
		if v := item.Get(f); v != "" {
			return v
		}
	}
	return "(empty)"
}

// PrintTemplates outputs the template catalogue, marking the default.
func (p *Printer) PrintTemplates(templates []rendering.Info, defaultID string) {
	if len(templates) == 0 {
		return
	}

	var sb strings.Builder
	for _, info := range templates {
		marker := " "
		if info.ID == defaultID {
			marker = "*"
		}
		sb.WriteString(fmt.Sprintf("%s %-14s %s\n", marker, info.ID, info.Description))
	}
	p.printBox("TEMPLATES", strings.TrimSuffix(sb.String(), "\n"))
}

// ExportSummary describes one written export file
type ExportSummary struct {
	Template string
	Path     string
	Bytes    int
	Err      error
}

// PrintExports outputs the result of each export, failures included.
func (p *Printer) PrintExports(results []ExportSummary) {
	if len(results) == 0 {
		return
	}

	var sb strings.Builder
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			sb.WriteString(fmt.Sprintf("✗ %-14s %v\n", r.Template, r.Err))
			continue
		}
		sb.WriteString(fmt.Sprintf("✓ %-14s %s (%d bytes)\n", r.Template, r.Path, r.Bytes))
	}
	sb.WriteString(fmt.Sprintf("\n%d written, %d failed", len(results)-failed, failed))

	p.printBox("EXPORTS", sb.String())
}
