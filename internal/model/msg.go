package model

// Bubble Tea message types

// ErrorMsg represents an error message.
type ErrorMsg struct {
	Err error
}

// DatasetLoadedMsg is sent when a dataset finished loading.
type DatasetLoadedMsg struct {
	Dataset Dataset
}

// PageChangedMsg is sent after the current page changed.
type PageChangedMsg struct {
	Page int
}

// PageSizeChangedMsg is sent after the page size changed.
type PageSizeChangedMsg struct {
	Size int
}

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNav Mode = iota
	ModeFilter
	ModeColumns
	ModeMenu
)
