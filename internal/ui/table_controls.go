package ui

import (
	"time"

	"tabula/internal/model"
	"tabula/internal/table"
)

// tableController is the part of *table.Controller the screen drives.
type tableController interface {
	Dispatch(action table.Action) table.View
	State() table.State
	View() table.View
	Dataset() model.Dataset
	FormatDate(t time.Time) string
}

var _ tableController = (*table.Controller)(nil)
