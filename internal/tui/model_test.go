package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-genie/internal/rendering"
	"github.com/jonathan/cv-genie/internal/schemas"
	"github.com/jonathan/cv-genie/internal/types"
)

func press(m *Model, keys ...string) {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "ctrl+s":
			msg = tea.KeyMsg{Type: tea.KeyCtrlS}
		case "ctrl+u":
			msg = tea.KeyMsg{Type: tea.KeyCtrlU}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m.Update(msg)
	}
}

func selectSection(t *testing.T, m *Model, id types.SectionID) {
	t.Helper()
	for m.current() != id {
		before := m.section
		press(m, "down")
		require.NotEqual(t, before, m.section, "section %s not reachable", id)
	}
}

func TestEditObjectField(t *testing.T) {
	m := NewModel(types.DefaultRecord(), "", nil, "")

	press(m, "tab", "enter", "A", "d", "a", "enter")

	assert.Equal(t, "Ada", m.Record().FullName())
	assert.True(t, m.dirty)
	assert.Contains(t, m.preview, "Ada")
}

func TestEditCancel(t *testing.T) {
	m := NewModel(types.DefaultRecord(), "", nil, "")

	press(m, "tab", "enter", "x", "esc")

	assert.Equal(t, "", m.Record().FullName())
	assert.False(t, m.dirty)
}

func TestAddEditRemoveItem(t *testing.T) {
	m := NewModel(types.DefaultRecord(), "", nil, "")
	selectSection(t, m, types.SectionSkills)

	press(m, "a")
	require.Len(t, m.Record().Items(types.SectionSkills), 1)
	assert.Equal(t, paneFields, m.focus)

	press(m, "enter", "G", "o", "enter")
	press(m, "a", "enter", "R", "u", "s", "t", "enter")

	items := m.Record().Items(types.SectionSkills)
	require.Len(t, items, 2)
	assert.Equal(t, "Go", items[0].Get(types.FieldName))
	assert.Equal(t, "", items[0].Get(types.FieldLevel))
	assert.Equal(t, "Rust", items[1].Get(types.FieldName))

	// cursor is on the second item; delete it
	press(m, "d")
	items = m.Record().Items(types.SectionSkills)
	require.Len(t, items, 1)
	assert.Equal(t, "Go", items[0].Get(types.FieldName))

	press(m, "d")
	assert.Empty(t, m.Record().Items(types.SectionSkills))
	assert.Equal(t, paneSections, m.focus)
}

func TestAddItemOnObjectSection(t *testing.T) {
	m := NewModel(types.DefaultRecord(), "", nil, "")

	press(m, "a")
	assert.True(t, m.Record().Equal(types.DefaultRecord()))
	assert.Contains(t, m.status, "has no items")
}

func TestScalarSection(t *testing.T) {
	m := NewModel(types.DefaultRecord(), "", nil, "")
	selectSection(t, m, types.SectionProfessionalSummary)

	press(m, "tab", "enter", "H", "i", "enter")
	assert.Equal(t, "Hi", m.Record().Text(types.SectionProfessionalSummary))
}

func TestCycleTemplate(t *testing.T) {
	m := NewModel(types.DefaultRecord(), "", nil, "unknown")
	assert.Equal(t, rendering.TemplateProfessional, m.Template())

	var seen []string
	for i := 0; i < 3; i++ {
		press(m, "t")
		seen = append(seen, m.Template())
	}
	assert.Equal(t, []string{rendering.TemplateGradient, rendering.TemplateMinimalist, rendering.TemplateProfessional}, seen)
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cv.yaml")
	m := NewModel(types.DefaultRecord(), path, nil, "")

	press(m, "tab", "enter", "A", "d", "a", "enter", "ctrl+s")
	assert.False(t, m.dirty)
	assert.Contains(t, m.status, "saved")

	loaded, err := schemas.LoadRecord(path)
	require.NoError(t, err)
	assert.True(t, loaded.Equal(m.Record()))
}

func TestQuitConfirmsUnsavedChanges(t *testing.T) {
	m := NewModel(types.DefaultRecord(), "", nil, "")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	press(m, "tab", "enter", "A", "enter")
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.Nil(t, cmd)
	assert.Contains(t, m.status, "unsaved")

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestView(t *testing.T) {
	r := types.DefaultRecord().With(types.SectionPersonalInfo, types.Object{types.FieldFullName: "Ada Lovelace"})
	m := NewModel(r, "", nil, "")
	m.Update(tea.WindowSizeMsg{Width: 160, Height: 40})

	out := m.View()
	for _, id := range types.Sections() {
		assert.Contains(t, out, id.String())
	}
	assert.Contains(t, out, "Ada Lovelace")
	assert.True(t, strings.Contains(out, "professional"))
}

func TestFieldOrder(t *testing.T) {
	got := fieldOrder(types.SectionSkills, map[string]string{"name": "Go", "zeta": "1", "alpha": "2"})
	assert.Equal(t, []string{"name", "level", "alpha", "zeta"}, got)
}
