// Package tui provides the Bubble Tea CV editor.
package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/jonathan/cv-genie/internal/editing"
	"github.com/jonathan/cv-genie/internal/rendering"
	"github.com/jonathan/cv-genie/internal/schemas"
	"github.com/jonathan/cv-genie/internal/types"
)

type pane int

const (
	paneSections pane = iota
	paneFields
)

// row is one editable value of the selected section
type row struct {
	index *int
	field string
	label string
}

// Model implements the Bubble Tea editor.
type Model struct {
	record   types.Record
	path     string
	registry *rendering.Registry
	template string

	sections []types.SectionID
	section  int
	cursor   int
	focus    pane

	input   textinput.Model
	editing bool

	renderer *glamour.TermRenderer
	preview  string

	dirty       bool
	confirmQuit bool
	status      string

	width  int
	height int
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C89A3A"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Background(lipgloss.Color("#3A3A3A"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	paneStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#6E6E6E")).Padding(0, 1)
	activeStyle   = paneStyle.BorderForeground(lipgloss.Color("#C89A3A"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// NewModel constructs an editor for r. path is where ctrl+s saves; its
// extension picks JSON or YAML.
func NewModel(r types.Record, path string, registry *rendering.Registry, template string) *Model {
	if registry == nil {
		registry = rendering.DefaultRegistry()
	}

	ti := textinput.New()
	ti.Prompt = "│ "
	ti.CharLimit = 4096
	ti.Width = 60

	m := &Model{
		record:   r,
		path:     path,
		registry: registry,
		template: registry.ResolveID(template),
		sections: types.Sections(),
		input:    ti,
	}
	m.renderer = newRenderer(80)
	m.refreshPreview()
	return m
}

func newRenderer(width int) *glamour.TermRenderer {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	return renderer
}

// Record returns the record as edited so far.
func (m *Model) Record() types.Record {
	return m.record
}

// Template returns the selected template id.
func (m *Model) Template() string {
	return m.template
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if w := m.previewWidth() - 4; w > 20 {
			m.renderer = newRenderer(w)
			m.refreshPreview()
		}
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.editing {
			return m.updateEditing(msg)
		}
		return m.updateBrowsing(msg)
	}
	return m, nil
}

func (m *Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.commit()
		return m, nil
	case tea.KeyEsc:
		m.editing = false
		m.input.Blur()
		m.status = "edit cancelled"
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key != "q" {
		m.confirmQuit = false
	}

	switch key {
	case "q":
		if m.dirty && !m.confirmQuit {
			m.confirmQuit = true
			m.status = "unsaved changes: press q again to quit, ctrl+s to save"
			return m, nil
		}
		return m, tea.Quit
	case "ctrl+s":
		m.save()
	case "tab", "right", "l":
		if m.focus == paneSections && len(m.rows()) > 0 {
			m.focus = paneFields
			m.cursor = 0
		}
	case "shift+tab", "left", "h":
		m.focus = paneSections
	case "up", "k":
		m.move(-1)
	case "down", "j":
		m.move(1)
	case "enter":
		if m.focus == paneSections {
			if len(m.rows()) > 0 {
				m.focus = paneFields
				m.cursor = 0
			}
			return m, nil
		}
		return m, m.startEditing()
	case "a":
		m.addItem()
	case "d":
		m.removeItem()
	case "t":
		m.cycleTemplate()
	}
	return m, nil
}

func (m *Model) move(delta int) {
	if m.focus == paneSections {
		m.section = clamp(m.section+delta, 0, len(m.sections)-1)
		m.cursor = 0
		return
	}
	m.cursor = clamp(m.cursor+delta, 0, len(m.rows())-1)
}

func (m *Model) current() types.SectionID {
	return m.sections[m.section]
}

// rows lists the editable values of the selected section in display order.
// The layout follows the value the section holds, not its declared kind.
func (m *Model) rows() []row {
	id := m.current()
	switch v := m.record.Section(id).(type) {
	case types.Object:
		out := make([]row, 0, len(id.Fields()))
		for _, f := range fieldOrder(id, v) {
			out = append(out, row{field: f, label: f})
		}
		return out
	case types.List:
		var out []row
		for i, item := range v {
			for _, f := range fieldOrder(id, item) {
				out = append(out, row{index: editing.At(i), field: f, label: fmt.Sprintf("#%d %s", i+1, f)})
			}
		}
		return out
	default:
		return []row{{label: id.String()}}
	}
}

func fieldOrder(id types.SectionID, values map[string]string) []string {
	declared := id.Fields()
	out := append([]string(nil), declared...)
	seen := make(map[string]bool, len(declared))
	for _, f := range declared {
		seen[f] = true
	}
	for f := range values {
		if !seen[f] {
			out = append(out, f)
		}
	}
	if len(out) > len(declared) {
		sort.Strings(out[len(declared):])
	}
	return out
}

func (m *Model) value(r row) string {
	switch v := m.record.Section(m.current()).(type) {
	case types.Scalar:
		return string(v)
	case types.Object:
		return v.Get(r.field)
	case types.List:
		if r.index != nil && *r.index < len(v) {
			return v[*r.index].Get(r.field)
		}
	}
	return ""
}

func (m *Model) startEditing() tea.Cmd {
	rows := m.rows()
	if len(rows) == 0 {
		return nil
	}
	m.input.SetValue(m.value(rows[m.cursor]))
	m.input.CursorEnd()
	m.editing = true
	m.status = "enter to apply, esc to cancel"
	return m.input.Focus()
}

func (m *Model) commit() {
	rows := m.rows()
	m.editing = false
	m.input.Blur()
	if len(rows) == 0 {
		return
	}
	r := rows[m.cursor]
	m.apply(editing.SetText(m.record, m.current(), r.index, r.field, m.input.Value()))
	m.status = "updated " + r.label
}

func (m *Model) addItem() {
	id := m.current()
	if _, ok := m.record.Section(id).(types.List); !ok {
		m.status = id.String() + " has no items"
		return
	}
	m.apply(editing.AddItem(m.record, id))
	m.focus = paneFields
	m.cursor = len(m.rows()) - len(id.Fields())
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.status = "added item to " + id.String()
}

func (m *Model) removeItem() {
	rows := m.rows()
	if m.focus != paneFields || len(rows) == 0 || rows[m.cursor].index == nil {
		m.status = "select an item to delete"
		return
	}
	index := *rows[m.cursor].index
	m.apply(editing.RemoveItem(m.record, m.current(), index))
	if n := len(m.rows()); n == 0 {
		m.focus = paneSections
		m.cursor = 0
	} else {
		m.cursor = clamp(m.cursor, 0, n-1)
	}
	m.status = fmt.Sprintf("removed item #%d", index+1)
}

func (m *Model) cycleTemplate() {
	templates := m.registry.Templates()
	for i, info := range templates {
		if info.ID == m.template {
			m.template = templates[(i+1)%len(templates)].ID
			break
		}
	}
	m.status = "template: " + m.template
	m.refreshPreview()
}

func (m *Model) save() {
	if m.path == "" {
		m.status = "no file to save to"
		return
	}
	if err := schemas.SaveRecord(m.path, m.record); err != nil {
		m.status = "save failed: " + err.Error()
		return
	}
	m.dirty = false
	m.status = "saved " + m.path
}

func (m *Model) apply(next types.Record) {
	if next.Equal(m.record) {
		return
	}
	m.record = next
	m.dirty = true
	m.refreshPreview()
}

func (m *Model) refreshPreview() {
	md := rendering.Markdown(m.registry.Render(m.record, m.template))
	if m.renderer == nil {
		m.preview = md
		return
	}
	out, err := m.renderer.Render(md)
	if err != nil {
		m.preview = md
		return
	}
	m.preview = out
}

// View implements tea.Model.
func (m *Model) View() string {
	left := m.renderSections()
	middle := m.renderFields()
	right := strings.TrimRight(m.preview, "\n")

	sectionPane, fieldPane := paneStyle, paneStyle
	if m.focus == paneSections {
		sectionPane = activeStyle
	} else {
		fieldPane = activeStyle
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		sectionPane.Render(left),
		fieldPane.Width(m.fieldsWidth()).Render(middle),
		paneStyle.Width(m.previewWidth()).Render(right),
	)
	return body + "\n" + m.renderStatus()
}

func (m *Model) renderSections() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Sections") + "\n")
	for i, id := range m.sections {
		line := id.String()
		if i == m.section {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) renderFields() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.current().String()) + "\n")

	rows := m.rows()
	if len(rows) == 0 {
		b.WriteString(dimStyle.Render("no items; press a to add"))
		return b.String()
	}

	labelWidth := 0
	for _, r := range rows {
		labelWidth = max(labelWidth, runewidth.StringWidth(r.label))
	}
	valueWidth := max(m.fieldsWidth()-labelWidth-6, 8)

	for i, r := range rows {
		label := runewidth.FillRight(r.label, labelWidth)
		if m.editing && i == m.cursor {
			b.WriteString(label + " " + m.input.View() + "\n")
			continue
		}
		value := runewidth.Truncate(m.value(r), valueWidth, "…")
		if value == "" {
			value = dimStyle.Render("-")
		}
		line := label + "  " + value
		if m.focus == paneFields && i == m.cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) renderStatus() string {
	state := "saved"
	if m.dirty {
		state = "modified"
	}
	help := "tab switch · enter edit · a add · d delete · t template · ctrl+s save · q quit"
	parts := []string{m.template, state, help}
	if m.status != "" {
		parts = append([]string{m.status}, parts...)
	}
	return statusStyle.Render(strings.Join(parts, " | "))
}

func (m *Model) fieldsWidth() int {
	if m.width == 0 {
		return 48
	}
	return max(m.width*2/5, 32)
}

func (m *Model) previewWidth() int {
	if m.width == 0 {
		return 60
	}
	return max(m.width-m.fieldsWidth()-24, 24)
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}
