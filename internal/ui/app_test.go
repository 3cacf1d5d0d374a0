package ui

import (
	"errors"
	"regexp"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabula/internal/dataset"
	"tabula/internal/model"
	"tabula/internal/pagination"
	"tabula/internal/sorting"
	"tabula/internal/table"
)

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*[A-Za-z]`)

func stripANSI(s string) string { return ansi.ReplaceAllString(s, "") }

func newTestModel(t *testing.T, cfg Config) Model {
	t.Helper()
	ds := dataset.Sample()
	m := New(func() (model.Dataset, error) { return ds, nil }, cfg)

	msg := m.Init()()
	require.IsType(t, model.DatasetLoadedMsg{}, msg)

	updated, _ := m.Update(msg)
	updated, _ = updated.Update(tea.WindowSizeMsg{Width: 140, Height: 30})
	return updated.(Model)
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func press(m Model, keys ...string) (Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(keyMsg(k))
		m = next.(Model)
	}
	return m, cmd
}

func typeText(m Model, text string) Model {
	for _, r := range text {
		m, _ = press(m, string(r))
	}
	return m
}

func click(m Model, x, y int) (Model, tea.Cmd) {
	next, cmd := m.Update(tea.MouseMsg{
		X:      x,
		Y:      y,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonLeft,
	})
	return next.(Model), cmd
}

func tableView(t *testing.T, m Model) table.View {
	t.Helper()
	v, ok := m.TableView()
	require.True(t, ok)
	return v
}

func TestModel_LoadsDataset(t *testing.T) {
	m := newTestModel(t, Config{})
	v := tableView(t, m)

	assert.Equal(t, 1, v.Page)
	assert.Equal(t, 10, v.PageSize)
	assert.Equal(t, 6, v.TotalPages)
	assert.Len(t, v.Rows, 10)
	assert.Equal(t, model.ModeNav, m.mode)
}

func TestModel_LoadError(t *testing.T) {
	m := New(func() (model.Dataset, error) { return model.Dataset{}, errors.New("boom") }, Config{})
	next, _ := m.Update(m.Init()())
	next, _ = next.Update(tea.WindowSizeMsg{Width: 80, Height: 20})

	_, ok := next.(Model).TableView()
	assert.False(t, ok)
	assert.Contains(t, stripANSI(next.View()), "failed to load dataset: boom")
}

func TestModel_InitialActionsAndPageSize(t *testing.T) {
	spec, err := sorting.ParseSpec("age:desc")
	require.NoError(t, err)

	m := newTestModel(t, Config{
		PageSize: 20,
		Initial:  []table.Action{table.ReplaceSort{Spec: spec}},
	})
	v := tableView(t, m)
	assert.Equal(t, 20, v.PageSize)
	assert.Equal(t, 3, v.TotalPages)
	assert.Equal(t, "age:desc", v.Sort.String())

	// Initial actions are not undoable.
	m, _ = press(m, "u")
	assert.Equal(t, "age:desc", tableView(t, m).Sort.String())
	assert.Equal(t, "Nothing to undo", m.info)
}

func TestModel_UnknownInitialColumnsAreReported(t *testing.T) {
	spec, err := sorting.ParseSpec("shoe_size:asc,age:desc")
	require.NoError(t, err)

	m := newTestModel(t, Config{
		Initial: []table.Action{
			table.ReplaceSort{Spec: spec},
			table.SetColumns{Columns: []string{"name", "shoe_size", "hat"}},
		},
	})
	v := tableView(t, m)
	assert.Equal(t, "age:desc", v.Sort.String())
	assert.Equal(t, []string{"name"}, v.Columns)
	assert.Equal(t, "Unknown columns ignored: shoe_size, hat", m.error)
	assert.Contains(t, stripANSI(m.View()), "Unknown columns ignored")
}

func TestModel_SiblingsDefault(t *testing.T) {
	tests := []struct {
		name     string
		siblings int
		want     string
	}{
		{"zero uses default", 0, "1 2 3 4 … 6"},
		{"explicit none", NoSiblings, "1 2 … 6"},
		{"two", 2, "1 2 3 4 5 6"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t, Config{Siblings: tt.siblings})
			assert.Equal(t, tt.want, pagination.Format(m.PageRange()))
		})
	}
}

func TestModel_PageNavigationEmitsPageChanged(t *testing.T) {
	var pages []int
	m := newTestModel(t, Config{OnPageChange: func(p int) { pages = append(pages, p) }})

	m, cmd := press(m, "l")
	assert.Equal(t, 2, tableView(t, m).Page)
	require.NotNil(t, cmd)
	msg := cmd()
	assert.Equal(t, model.PageChangedMsg{Page: 2}, msg)

	next, _ := m.Update(msg)
	m = next.(Model)
	assert.Equal(t, []int{2}, pages)

	m, _ = press(m, "L")
	assert.Equal(t, 6, tableView(t, m).Page)

	// Already on the last page: nothing changes, nothing is emitted.
	m, cmd = press(m, "l")
	assert.Equal(t, 6, tableView(t, m).Page)
	assert.Nil(t, cmd)
	assert.Len(t, tableView(t, m).Rows, 7)

	m, _ = press(m, "H")
	assert.Equal(t, 1, tableView(t, m).Page)
	m, cmd = press(m, "h")
	assert.Equal(t, 1, tableView(t, m).Page)
	assert.Nil(t, cmd)
}

func TestModel_RowCursor(t *testing.T) {
	m := newTestModel(t, Config{})

	m, _ = press(m, "j", "j", "j")
	assert.Equal(t, 3, m.cursor)
	m, _ = press(m, "G")
	assert.Equal(t, 9, m.cursor)
	m, _ = press(m, "g", "g")
	assert.Equal(t, 0, m.cursor)
	m, _ = press(m, "k")
	assert.Equal(t, 0, m.cursor)
}

func TestModel_SortCycleOnActiveColumn(t *testing.T) {
	m := newTestModel(t, Config{})

	m, _ = press(m, "tab", "tab", "tab", "tab") // age
	col, ok := m.activeColumnName()
	require.True(t, ok)
	require.Equal(t, "age", col)

	m, _ = press(m, "enter")
	assert.Equal(t, "age:asc", tableView(t, m).Sort.String())
	m, _ = press(m, "enter")
	assert.Equal(t, "age:desc", tableView(t, m).Sort.String())
	m, _ = press(m, "enter")
	assert.Equal(t, "", tableView(t, m).Sort.String())

	m, _ = press(m, "shift+tab", "S")
	assert.Equal(t, "role:desc", tableView(t, m).Sort.String())
	m, _ = press(m, "x")
	assert.Equal(t, 0, tableView(t, m).Sort.Len())
}

func TestModel_MultiSortRankBadges(t *testing.T) {
	m := newTestModel(t, Config{})

	m, _ = press(m, "s")
	out := stripANSI(m.View())
	assert.Contains(t, out, "id ↑")
	assert.NotContains(t, out, "id ↑1")

	m, _ = press(m, "tab", "S")
	assert.Equal(t, "id:asc,name:desc", tableView(t, m).Sort.String())
	out = stripANSI(m.View())
	assert.Contains(t, out, "id ↑1")
	assert.Contains(t, out, "name ↓2")
}

func TestModel_FilterIsLiveAndEscRestores(t *testing.T) {
	m := newTestModel(t, Config{})
	m, _ = press(m, "l")
	require.Equal(t, 2, tableView(t, m).Page)

	m, _ = press(m, "/")
	require.Equal(t, model.ModeFilter, m.mode)
	m = typeText(m, "ADMIN")

	v := tableView(t, m)
	assert.Equal(t, "ADMIN", v.Filter)
	assert.Equal(t, 1, v.Page)
	assert.Equal(t, 15, v.FilteredCount)
	assert.Contains(t, stripANSI(m.View()), "15 results of 57")

	m, _ = press(m, "esc")
	v = tableView(t, m)
	assert.Equal(t, model.ModeNav, m.mode)
	assert.Equal(t, "", v.Filter)
	assert.Equal(t, 2, v.Page)
}

func TestModel_FilterEnterKeepsAndUndoes(t *testing.T) {
	m := newTestModel(t, Config{})

	m, _ = press(m, "/")
	m = typeText(m, "admin")
	m, _ = press(m, "enter")
	assert.Equal(t, model.ModeNav, m.mode)
	assert.Equal(t, "admin", tableView(t, m).Filter)

	m, _ = press(m, "u")
	assert.Equal(t, "", tableView(t, m).Filter)
	m, _ = press(m, "ctrl+r")
	assert.Equal(t, "admin", tableView(t, m).Filter)

	m, _ = press(m, "N")
	assert.Equal(t, "", tableView(t, m).Filter)
}

func TestModel_UndoRedoPage(t *testing.T) {
	m := newTestModel(t, Config{})

	m, _ = press(m, "l", "l")
	require.Equal(t, 3, tableView(t, m).Page)

	m, _ = press(m, "u")
	assert.Equal(t, 2, tableView(t, m).Page)
	m, _ = press(m, "u")
	assert.Equal(t, 1, tableView(t, m).Page)
	m, _ = press(m, "u")
	assert.Equal(t, "Nothing to undo", m.info)

	m, _ = press(m, "ctrl+r")
	assert.Equal(t, 2, tableView(t, m).Page)

	// A fresh change drops the redo history.
	m, _ = press(m, "H")
	m, _ = press(m, "ctrl+r")
	assert.Equal(t, "Nothing to redo", m.info)
}

func TestModel_ColumnSelectorToggle(t *testing.T) {
	m := newTestModel(t, Config{})

	m, _ = press(m, "c")
	require.Equal(t, model.ModeColumns, m.mode)
	assert.Contains(t, stripANSI(m.View()), "[✓] id")

	m, _ = press(m, " ")
	v := tableView(t, m)
	assert.NotContains(t, v.Columns, "id")
	assert.NotContains(t, v.Rows[0], "id")
	assert.Contains(t, stripANSI(m.View()), "[ ] id")

	m, _ = press(m, " ")
	assert.Equal(t, dataset.Sample().Columns, tableView(t, m).Columns)

	m, _ = press(m, "esc")
	assert.Equal(t, model.ModeNav, m.mode)
}

func TestModel_ColumnSelectorClickInsideTogglesOutsideCloses(t *testing.T) {
	m := newTestModel(t, Config{})
	m, _ = press(m, "c")

	x, y, w, h := m.dialogRect()
	require.Positive(t, w)
	require.Greater(t, h, dialogChromeTop+1)

	// Second item is "name".
	m, _ = click(m, x+2, y+dialogChromeTop+1)
	assert.Equal(t, model.ModeColumns, m.mode)
	assert.NotContains(t, tableView(t, m).Columns, "name")

	m, _ = click(m, 0, y+4)
	assert.Equal(t, model.ModeNav, m.mode)
	assert.False(t, m.columns.IsOpen())

	// Closed dialog: a click on the same spot no longer toggles anything.
	before := tableView(t, m).Columns
	m, _ = click(m, x+2, y+dialogChromeTop+1)
	assert.Equal(t, before, tableView(t, m).Columns)
}

func TestModel_PageSizeMenuKeyboard(t *testing.T) {
	var sizes []int
	m := newTestModel(t, Config{OnPageSizeChange: func(s int) { sizes = append(sizes, s) }})
	m, _ = press(m, "l")

	m, _ = press(m, "p")
	require.Equal(t, model.ModeMenu, m.mode)
	assert.True(t, m.menu.IsOpen())
	assert.Equal(t, 10, m.menu.Selected())

	m, cmd := press(m, "l", "enter")
	v := tableView(t, m)
	assert.Equal(t, model.ModeNav, m.mode)
	assert.False(t, m.menu.IsOpen())
	assert.Equal(t, 15, v.PageSize)
	assert.Equal(t, 1, v.Page)

	require.NotNil(t, cmd)
	for _, msg := range runSequence(cmd) {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	assert.Equal(t, []int{15}, sizes)
	assert.Equal(t, "Showing 15 rows per page", m.info)
}

func TestModel_PageSizeMenuMouse(t *testing.T) {
	m := newTestModel(t, Config{PageSizeOptions: []int{5, 25}})

	_, regions := renderPager(tableView(t, m), m.cfg.Siblings, false)
	button, ok := regionOf(regions, hitMenuButton, 10)
	require.True(t, ok)

	m, _ = click(m, button.x0, m.pagerY())
	require.Equal(t, model.ModeMenu, m.mode)

	_, options := m.menu.Render(10)
	opt, ok := regionOf(options, hitMenuOption, 25)
	require.True(t, ok)
	m, _ = click(m, opt.x0, m.menuY())
	assert.Equal(t, model.ModeNav, m.mode)
	assert.Equal(t, 25, tableView(t, m).PageSize)

	m, _ = press(m, "p")
	m, _ = click(m, 0, 0)
	assert.Equal(t, model.ModeNav, m.mode)
	assert.Equal(t, 25, tableView(t, m).PageSize)
}

func TestModel_HeaderClickSorts(t *testing.T) {
	m := newTestModel(t, Config{})

	m, _ = click(m, 1, tableHeaderY)
	assert.Equal(t, "id:asc", tableView(t, m).Sort.String())
	m, _ = click(m, 1, tableHeaderY)
	assert.Equal(t, "id:desc", tableView(t, m).Sort.String())
}

func TestModel_PagerClick(t *testing.T) {
	m := newTestModel(t, Config{})

	_, regions := renderPager(tableView(t, m), m.cfg.Siblings, false)
	last, ok := regionOf(regions, hitPage, 6)
	require.True(t, ok)

	m, _ = click(m, last.x0, m.pagerY())
	assert.Equal(t, 6, tableView(t, m).Page)

	_, regions = renderPager(tableView(t, m), m.cfg.Siblings, false)
	prev, ok := regionOf(regions, hitPrev, 5)
	require.True(t, ok)
	m, _ = click(m, prev.x0, m.pagerY())
	assert.Equal(t, 5, tableView(t, m).Page)
}

func TestModel_RowClickMovesCursor(t *testing.T) {
	m := newTestModel(t, Config{})
	m, _ = click(m, 3, firstRowY+4)
	assert.Equal(t, 4, m.cursor)
}

func TestView_Layout(t *testing.T) {
	m := newTestModel(t, Config{})
	out := stripANSI(m.View())

	assert.Contains(t, out, "tabula")
	assert.Contains(t, out, "users")
	assert.Contains(t, out, "57 results")
	assert.Contains(t, out, "Rows per page")
	assert.Contains(t, out, "‹ 1 2 3 4 … 6 ›")
	assert.Contains(t, out, "page 1 of 6")
	assert.Contains(t, out, "Ada Lovelace")
	assert.Contains(t, out, "04-Jan-2021")
	assert.Equal(t, m.height, len(regexp.MustCompile("\n").FindAllString(out, -1))+1)
}

func TestView_PagerHiddenForSinglePage(t *testing.T) {
	m := newTestModel(t, Config{PageSize: 100})
	out := stripANSI(m.View())
	assert.NotContains(t, out, "‹")
	assert.Contains(t, out, "page 1 of 1")
	assert.Len(t, m.PageRange(), 1)
}

func TestView_Help(t *testing.T) {
	m := newTestModel(t, Config{})
	m, _ = press(m, "?")
	assert.Contains(t, stripANSI(m.View()), "Cycle sort")
	m, _ = press(m, "esc")
	assert.False(t, m.showingHelp)
}

func TestHitAt(t *testing.T) {
	regions := []hitRegion{{kind: hitPage, x0: 2, x1: 4, value: 3}}

	r, ok := hitAt(regions, 3)
	assert.True(t, ok)
	assert.Equal(t, 3, r.value)

	r, ok = hitAt(regions, 4)
	assert.False(t, ok)
	assert.Equal(t, hitNone, r.kind)
}

func regionOf(regions []hitRegion, kind hitKind, value int) (hitRegion, bool) {
	for _, r := range regions {
		if r.kind == kind && r.value == value {
			return r, true
		}
	}
	return hitRegion{}, false
}

// runSequence flattens a command into the messages it produces.
func runSequence(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, runSequence(c)...)
		}
		return out
	default:
		return []tea.Msg{msg}
	}
}
