package ui

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"tabula/internal/model"
	"tabula/internal/pagination"
	"tabula/internal/sorting"
	"tabula/internal/table"
	"tabula/internal/util"
)

// Screen layout, top to bottom: header (2 lines), toolbar, table header,
// divider, rows, menu line, pager, status, footer (2 lines).
const (
	toolbarY     = 2
	tableHeaderY = 3
	firstRowY    = 5
	bottomLines  = 5 // menu, pager, status, footer
)

// Config configures the table screen.
type Config struct {
	Title           string
	PageSize        int
	PageSizeOptions []int
	// Siblings is the number of page buttons on each side of the current
	// page. Zero means pagination.DefaultSiblings; use NoSiblings for none.
	Siblings   int
	FormatDate func(time.Time) string
	Logger     zerolog.Logger
	// Initial actions are applied once the dataset is loaded and cannot be
	// undone.
	Initial []table.Action

	OnPageChange     func(page int)
	OnPageSizeChange func(size int)
}

// NoSiblings asks for a page bar without sibling pages around the current one.
const NoSiblings = -1

// pageEvents collects controller callbacks until Update turns them into
// messages.
type pageEvents struct {
	msgs []tea.Msg
}

// Model is the root Bubble Tea model.
type Model struct {
	load   func() (model.Dataset, error)
	cfg    Config
	logger zerolog.Logger
	table  tableController
	events *pageEvents

	mode   model.Mode
	gState GState

	width  int
	height int

	cursor       int
	activeColumn int

	filter       textinput.Model
	filterBefore table.State
	menu         *PageSizeMenu
	columns      *ColumnSelector

	error       string
	info        string
	showingHelp bool

	keys        KeyMap
	overlayKeys OverlayKeyMap
	undoStack   []undoAction
	redoStack   []undoAction
}

// New creates a new root model. load runs once from Init.
func New(load func() (model.Dataset, error), cfg Config) Model {
	if cfg.FormatDate == nil {
		cfg.FormatDate = util.FormatDate
	}
	switch {
	case cfg.Siblings == 0:
		cfg.Siblings = pagination.DefaultSiblings
	case cfg.Siblings < 0:
		cfg.Siblings = 0
	}
	filter := textinput.New()
	filter.Prompt = "/ "
	filter.Placeholder = "search all columns"
	filter.CharLimit = 256

	return Model{
		load:        load,
		cfg:         cfg,
		logger:      cfg.Logger.With().Str("component", "ui").Logger(),
		events:      &pageEvents{},
		mode:        model.ModeNav,
		gState:      GStateIdle,
		filter:      filter,
		menu:        NewPageSizeMenu(cfg.PageSizeOptions),
		columns:     NewColumnSelector(),
		keys:        DefaultKeyMap(),
		overlayKeys: DefaultOverlayKeyMap(),
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return loadDatasetCmd(m.load)
}

func loadDatasetCmd(load func() (model.Dataset, error)) tea.Cmd {
	return func() tea.Msg {
		ds, err := load()
		if err != nil {
			return model.ErrorMsg{Err: fmt.Errorf("failed to load dataset: %w", err)}
		}
		return model.DatasetLoadedMsg{Dataset: ds}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case model.ErrorMsg:
		m.error = msg.Err.Error()
		m.logger.Error().Err(msg.Err).Msg("error")
		return m, nil

	case model.DatasetLoadedMsg:
		m.mount(msg.Dataset)
		return m, m.drainEvents()

	case model.PageChangedMsg:
		if m.cfg.OnPageChange != nil {
			m.cfg.OnPageChange(msg.Page)
		}
		return m, nil

	case model.PageSizeChangedMsg:
		m.info = fmt.Sprintf("Showing %d rows per page", msg.Size)
		if m.cfg.OnPageSizeChange != nil {
			m.cfg.OnPageSizeChange(msg.Size)
		}
		return m, nil

	case tea.MouseMsg:
		if m.table == nil || m.showingHelp {
			return m, nil
		}
		return m.handleMouse(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.showingHelp {
			if msg.String() == "esc" || msg.String() == "?" {
				m.showingHelp = false
			}
			return m, nil
		}

		if m.table == nil {
			if key.Matches(msg, m.keys.Quit) {
				return m, tea.Quit
			}
			return m, nil
		}

		switch m.mode {
		case model.ModeFilter:
			return m.handleFilterMode(msg)
		case model.ModeColumns:
			return m.handleColumnsMode(msg)
		case model.ModeMenu:
			return m.handleMenuMode(msg)
		default:
			return m.handleNavMode(msg)
		}
	}

	if m.mode == model.ModeFilter {
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		return m, cmd
	}
	return m, nil
}

// mount builds the table controller for a freshly loaded dataset.
func (m *Model) mount(ds model.Dataset) {
	events := m.events
	opts := []table.Option{
		table.WithPageSize(m.cfg.PageSize),
		table.WithDateFormatter(m.cfg.FormatDate),
		table.WithLogger(m.cfg.Logger),
		table.OnPageChange(func(page int) {
			events.msgs = append(events.msgs, model.PageChangedMsg{Page: page})
		}),
		table.OnPageSizeChange(func(size int) {
			events.msgs = append(events.msgs, model.PageSizeChangedMsg{Size: size})
		}),
	}
	m.table = table.New(ds, opts...)
	initial, unknown := knownColumnsOnly(ds, m.cfg.Initial)
	for _, action := range initial {
		m.apply(action)
	}
	m.undoStack, m.redoStack = nil, nil
	m.error = ""
	if v := m.table.View(); v.Err != nil {
		m.error = v.Err.Error()
	}
	if len(unknown) > 0 {
		m.logger.Warn().Strs("columns", unknown).Msg("unknown columns ignored")
		if m.error == "" {
			m.error = fmt.Sprintf("Unknown columns ignored: %s", strings.Join(unknown, ", "))
		}
	}
	m.logger.Info().
		Str("dataset", ds.Name).
		Int("rows", len(ds.Records)).
		Int("columns", len(ds.Columns)).
		Msg("dataset mounted")
}

// knownColumnsOnly strips sort entries naming columns ds does not have and
// returns every unknown name used by the sort and column actions.
func knownColumnsOnly(ds model.Dataset, actions []table.Action) ([]table.Action, []string) {
	var unknown []string
	note := func(col string) {
		if !ds.HasColumn(col) && !slices.Contains(unknown, col) {
			unknown = append(unknown, col)
		}
	}

	out := make([]table.Action, 0, len(actions))
	for _, action := range actions {
		switch a := action.(type) {
		case table.ReplaceSort:
			spec := a.Spec
			for _, e := range a.Spec.Active() {
				if !ds.HasColumn(e.Column) {
					note(e.Column)
					spec = spec.Remove(e.Column)
				}
			}
			action = table.ReplaceSort{Spec: spec}
		case table.SetColumns:
			for _, c := range a.Columns {
				note(c)
			}
		}
		out = append(out, action)
	}
	return out, unknown
}

// apply dispatches action and keeps cursors and banners in step with the new
// view.
func (m *Model) apply(action table.Action) table.View {
	view := m.table.Dispatch(action)
	m.cursor = min(max(m.cursor, 0), max(len(view.Rows)-1, 0))
	m.activeColumn = min(max(m.activeColumn, 0), max(len(view.Columns)-1, 0))
	if view.Err != nil {
		m.error = view.Err.Error()
	} else {
		m.error = ""
	}
	return view
}

// change applies a user action and records it for undo.
func (m *Model) change(label string, action table.Action) table.View {
	before := m.table.State()
	view := m.apply(action)
	m.pushUndoAction(undoAction{label: label, before: before, after: m.table.State()})
	return view
}

// drainEvents turns queued controller callbacks into messages.
func (m *Model) drainEvents() tea.Cmd {
	if len(m.events.msgs) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(m.events.msgs))
	for _, msg := range m.events.msgs {
		msg := msg
		cmds = append(cmds, func() tea.Msg { return msg })
	}
	m.events.msgs = nil
	if len(cmds) == 1 {
		return cmds[0]
	}
	return tea.Batch(cmds...)
}

func (m Model) activeColumnName() (string, bool) {
	cols := m.table.View().Columns
	if m.activeColumn < 0 || m.activeColumn >= len(cols) {
		return "", false
	}
	return cols[m.activeColumn], true
}

// handleNavMode handles navigation mode input.
func (m Model) handleNavMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	view := m.table.View()

	if m.gState == GStateFirstG {
		m.gState = GStateIdle
		if key.Matches(msg, m.keys.Top) {
			m.cursor = 0
			return m, nil
		}
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showingHelp = true
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(view.Rows)-1 {
			m.cursor++
		}
		return m, nil
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case key.Matches(msg, m.keys.Top):
		m.gState = GStateFirstG
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.cursor = max(len(view.Rows)-1, 0)
		return m, nil
	case key.Matches(msg, m.keys.NextPage):
		if view.Page < view.TotalPages {
			m.change("page change", table.NextPage{})
		}
		return m, m.drainEvents()
	case key.Matches(msg, m.keys.PrevPage):
		m.change("page change", table.PrevPage{})
		return m, m.drainEvents()
	case key.Matches(msg, m.keys.FirstPage):
		m.change("page change", table.GoToPage{Page: 1})
		return m, m.drainEvents()
	case key.Matches(msg, m.keys.LastPage):
		m.change("page change", table.GoToPage{Page: view.TotalPages})
		return m, m.drainEvents()
	case key.Matches(msg, m.keys.NextColumn):
		if n := len(view.Columns); n > 0 {
			m.activeColumn = (m.activeColumn + 1) % n
		}
		return m, nil
	case key.Matches(msg, m.keys.PrevColumn):
		if n := len(view.Columns); n > 0 {
			m.activeColumn = (m.activeColumn - 1 + n) % n
		}
		return m, nil
	case key.Matches(msg, m.keys.ToggleSort):
		if col, ok := m.activeColumnName(); ok {
			m.toggleSort(col)
		}
		return m, m.drainEvents()
	case key.Matches(msg, m.keys.SortAsc), key.Matches(msg, m.keys.SortDesc):
		if col, ok := m.activeColumnName(); ok {
			dir := sorting.Asc
			if key.Matches(msg, m.keys.SortDesc) {
				dir = sorting.Desc
			}
			m.change("sort", table.SetSort{Column: col, Direction: dir})
			m.info = fmt.Sprintf("Sorted by %s %s", col, dir)
		}
		return m, m.drainEvents()
	case key.Matches(msg, m.keys.ClearSort):
		m.change("sort", table.ClearSort{})
		m.info = "Sort cleared"
		return m, m.drainEvents()
	case key.Matches(msg, m.keys.Filter):
		return m.openFilter()
	case key.Matches(msg, m.keys.ClearFilter):
		if view.Filter != "" {
			m.change("search", table.SetFilter{Text: ""})
			m.info = "Search cleared"
		}
		return m, m.drainEvents()
	case key.Matches(msg, m.keys.Columns):
		m.openColumns()
		return m, nil
	case key.Matches(msg, m.keys.ShowColumns):
		m.change("columns", table.ShowAllColumns{})
		m.info = "All columns shown"
		return m, m.drainEvents()
	case key.Matches(msg, m.keys.PageSize):
		m.openMenu()
		return m, nil
	case key.Matches(msg, m.keys.Undo):
		m.undo()
		return m, m.drainEvents()
	case key.Matches(msg, m.keys.Redo):
		m.redo()
		return m, m.drainEvents()
	}
	return m, nil
}

func (m *Model) toggleSort(column string) {
	view := m.change("sort", table.ToggleSort{Column: column})
	if entry, ok := view.Sort.Lookup(column); ok {
		m.info = fmt.Sprintf("Sorted by %s %s", column, entry.Direction)
	} else {
		m.info = fmt.Sprintf("Sort on %s removed", column)
	}
}

func (m Model) openFilter() (tea.Model, tea.Cmd) {
	m.mode = model.ModeFilter
	m.filterBefore = m.table.State()
	m.filter.SetValue(m.filterBefore.Filter)
	m.filter.CursorEnd()
	return m, m.filter.Focus()
}

func (m *Model) closeFilter() {
	m.mode = model.ModeNav
	m.filter.Blur()
	m.pushUndoAction(undoAction{label: "search", before: m.filterBefore, after: m.table.State()})
}

// handleFilterMode feeds keys to the search box and re-filters on every edit.
func (m Model) handleFilterMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.apply(table.Restore{State: m.filterBefore})
		m.mode = model.ModeNav
		m.filter.Blur()
		return m, m.drainEvents()
	case "enter":
		m.closeFilter()
		return m, m.drainEvents()
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	if text := m.filter.Value(); text != m.table.State().Filter {
		m.apply(table.SetFilter{Text: text})
	}
	return m, tea.Batch(cmd, m.drainEvents())
}

func (m *Model) openColumns() {
	state := m.table.State()
	cursor := 0
	if col, ok := m.activeColumnName(); ok {
		cursor = m.table.Dataset().ColumnIndex(col)
	}
	m.columns.Open(state.AllColumns, cursor)
	m.mode = model.ModeColumns
}

func (m *Model) closeColumns() {
	m.columns.Close()
	m.mode = model.ModeNav
}

func (m *Model) toggleColumn(column string) {
	before := m.table.State()
	m.change("columns", table.ToggleColumn{Column: column})
	if sameState(before, m.table.State()) {
		m.info = "Cannot hide last visible column"
		return
	}
	if m.table.State().IsVisible(column) {
		m.info = fmt.Sprintf("Column %s shown", column)
	} else {
		m.info = fmt.Sprintf("Column %s hidden", column)
	}
}

func (m Model) handleColumnsMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.overlayKeys.Close), msg.String() == "c":
		m.closeColumns()
	case key.Matches(msg, m.overlayKeys.Prev):
		m.columns.Move(-1)
	case key.Matches(msg, m.overlayKeys.Next):
		m.columns.Move(1)
	case key.Matches(msg, m.overlayKeys.Select):
		if col, ok := m.columns.Current(); ok {
			m.toggleColumn(col)
		}
	}
	return m, m.drainEvents()
}

func (m *Model) openMenu() {
	m.menu.Open(m.table.View().PageSize)
	m.mode = model.ModeMenu
}

func (m *Model) closeMenu() {
	m.menu.Close()
	m.mode = model.ModeNav
}

func (m *Model) selectPageSize(size int) {
	m.closeMenu()
	m.change("page size", table.SetPageSize{Size: size})
}

func (m Model) handleMenuMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.overlayKeys.Close), msg.String() == "p":
		m.closeMenu()
	case key.Matches(msg, m.overlayKeys.Prev):
		m.menu.Move(-1)
	case key.Matches(msg, m.overlayKeys.Next):
		m.menu.Move(1)
	case key.Matches(msg, m.overlayKeys.Select):
		m.selectPageSize(m.menu.Selected())
	}
	return m, m.drainEvents()
}

// handleMouse routes left presses. While an overlay is open it owns the
// mouse: a press inside acts on it, a press anywhere else closes it.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress {
		return m, nil
	}

	switch m.mode {
	case model.ModeColumns:
		x0, y0, w, h := m.dialogRect()
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if msg.X < x0 || msg.X >= x0+w || msg.Y < y0 || msg.Y >= y0+h {
			m.closeColumns()
			return m, nil
		}
		if idx, ok := m.columns.ItemAt(msg.Y - y0); ok {
			m.columns.Select(idx)
			if col, ok := m.columns.Current(); ok {
				m.toggleColumn(col)
			}
		}
		return m, m.drainEvents()

	case model.ModeMenu:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if msg.Y == m.menuY() {
			_, regions := m.menu.Render(m.table.View().PageSize)
			if r, ok := hitAt(regions, msg.X); ok {
				m.selectPageSize(r.value)
				return m, m.drainEvents()
			}
		}
		m.closeMenu()
		return m, nil

	case model.ModeFilter:
		m.closeFilter()
	}

	view := m.table.View()
	switch msg.Button {
	case tea.MouseButtonWheelDown:
		if m.cursor < len(view.Rows)-1 {
			m.cursor++
		}
		return m, nil
	case tea.MouseButtonWheelUp:
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case tea.MouseButtonLeft:
	default:
		return m, nil
	}

	switch {
	case msg.Y == toolbarY:
		return m.openFilter()
	case msg.Y == tableHeaderY:
		widths := columnWidths(view, m.table.FormatDate, m.width)
		if idx := columnAt(widths, msg.X); idx >= 0 {
			m.activeColumn = idx
			m.toggleSort(view.Columns[idx])
		}
	case msg.Y >= firstRowY && msg.Y < firstRowY+len(view.Rows):
		m.cursor = msg.Y - firstRowY
	case msg.Y == m.pagerY():
		_, regions := renderPager(view, m.cfg.Siblings, false)
		r, ok := hitAt(regions, msg.X)
		if !ok {
			break
		}
		switch r.kind {
		case hitMenuButton:
			m.openMenu()
		case hitPrev, hitNext, hitPage:
			if r.value >= 1 && r.value <= view.TotalPages && r.value != view.Page {
				m.change("page change", table.GoToPage{Page: r.value})
			}
		}
	}
	return m, m.drainEvents()
}

func (m Model) menuY() int      { return m.height - bottomLines }
func (m Model) pagerY() int     { return m.menuY() + 1 }
func (m Model) bodyHeight() int { return max(m.menuY()-tableHeaderY, 0) }

// dialogRect is the screen rectangle of the column selector.
func (m Model) dialogRect() (x, y, w, h int) {
	w, h = m.columns.Size(m.table.State())
	return max(m.width-w, 0), tableHeaderY, w, h
}

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if m.showingHelp {
		return RenderFullHelp(m.width, m.height)
	}

	if m.table == nil {
		header := renderHeader(m.cfg.Title, "", m.width)
		body := EmptyStateStyle.Render("Loading…")
		if m.error != "" {
			body = ErrorStyle.Padding(1, 2).Render("Error: " + m.error)
		}
		return lipgloss.JoinVertical(lipgloss.Left, header, body)
	}

	view := m.table.View()
	ds := m.table.Dataset()

	title := m.cfg.Title
	if title == "" {
		title = ds.Name
	}
	header := renderHeader(title, fmt.Sprintf("%d rows · %d columns", len(ds.Records), len(ds.Columns)), m.width)
	toolbar := m.renderToolbar(view)

	bodyHeight := m.bodyHeight()
	tableWidth := m.width
	var dialog string
	if m.columns.IsOpen() {
		dialog = m.columns.Render(m.table.State())
		tableWidth = max(m.width-lipgloss.Width(dialog), 0)
	}
	body := renderTable(view, m.table.FormatDate, m.activeColumn, m.cursor, tableWidth, bodyHeight)
	if dialog != "" {
		body = lipgloss.NewStyle().MaxHeight(bodyHeight).
			Render(lipgloss.JoinHorizontal(lipgloss.Top, body, dialog))
	}

	var menuLine string
	if m.menu.IsOpen() {
		menuLine, _ = m.menu.Render(view.PageSize)
	}
	pagerLine, _ := renderPager(view, m.cfg.Siblings, m.menu.IsOpen())

	var status string
	switch {
	case m.error != "":
		status = ErrorStyle.Render("Error: " + m.error)
	case m.info != "":
		status = SuccessStyle.Render(m.info)
	}

	parts := []string{header, m.line(toolbar)}
	if bodyHeight > 0 {
		parts = append(parts, body)
	}
	parts = append(parts,
		m.line(menuLine),
		m.line(pagerLine),
		m.line(status),
		RenderHelp(m.mode, m.width),
	)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// line renders s as exactly one screen line.
func (m Model) line(s string) string {
	return lipgloss.NewStyle().Width(m.width).MaxWidth(m.width).MaxHeight(1).Render(s)
}

func (m Model) renderToolbar(view table.View) string {
	results := ToolbarStyle.Render(resultsLine(view))
	switch {
	case m.mode == model.ModeFilter:
		return m.filter.View() + "  " + results
	case view.Filter != "":
		return ToolbarStyle.Render(fmt.Sprintf("/ %s", view.Filter)) + "  " + results
	default:
		return results
	}
}

func renderHeader(title, meta string, width int) string {
	left := "  " + HeaderStyle.Render("tabula")
	if title != "" {
		left += ToolbarStyle.Render(" › ") + NormalRowStyle.Render(title)
	}
	right := ToolbarStyle.Render(meta) + "  "

	padding := max(width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	return TitleStyle.Width(width).MaxHeight(2).Render(left + strings.Repeat(" ", padding) + right)
}

// PageRange exposes the token bar for the current view, mainly for tests and
// non-interactive output.
func (m Model) PageRange() []pagination.PageToken {
	if m.table == nil {
		return nil
	}
	v := m.table.View()
	return pagination.ComputeRange(v.Page, v.TotalPages, m.cfg.Siblings)
}

// TableView returns the current table view, or false before the dataset is
// loaded.
func (m Model) TableView() (table.View, bool) {
	if m.table == nil {
		return table.View{}, false
	}
	return m.table.View(), true
}
