package ui

import (
	"slices"

	"tabula/internal/table"
)

// undoAction records the table state on either side of one user change.
type undoAction struct {
	label  string
	before table.State
	after  table.State
}

func (m *Model) pushUndoAction(action undoAction) {
	if sameState(action.before, action.after) {
		return
	}
	m.undoStack = append(m.undoStack, action)
	m.redoStack = nil
}

func (m *Model) undo() {
	if len(m.undoStack) == 0 {
		m.info = "Nothing to undo"
		return
	}
	action := m.undoStack[len(m.undoStack)-1]
	m.undoStack = m.undoStack[:len(m.undoStack)-1]
	m.apply(table.Restore{State: action.before})
	m.redoStack = append(m.redoStack, action)
	m.info = "Undid " + action.label
}

func (m *Model) redo() {
	if len(m.redoStack) == 0 {
		m.info = "Nothing to redo"
		return
	}
	action := m.redoStack[len(m.redoStack)-1]
	m.redoStack = m.redoStack[:len(m.redoStack)-1]
	m.apply(table.Restore{State: action.after})
	m.undoStack = append(m.undoStack, action)
	m.info = "Redid " + action.label
}

func sameState(a, b table.State) bool {
	return a.Filter == b.Filter &&
		a.Page == b.Page &&
		a.PageSize == b.PageSize &&
		a.Sort.String() == b.Sort.String() &&
		slices.Equal(a.Columns, b.Columns)
}
