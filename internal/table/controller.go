// Package table holds the state machine behind the data table widget: an
// immutable State, a pure Reduce function, the Derive pipeline and a
// Controller that ties them to a dataset.
package table

import (
	"time"

	"github.com/rs/zerolog"

	"tabula/internal/model"
	"tabula/internal/util"
)

// Option configures a Controller.
type Option func(*Controller)

// WithPageSize sets the initial page size. Non-positive values are ignored.
func WithPageSize(size int) Option {
	return func(c *Controller) {
		if size > 0 {
			c.state.PageSize = size
		}
	}
}

// WithDateFormatter sets the formatDate collaborator used for filtering and
// display.
func WithDateFormatter(formatDate func(time.Time) string) Option {
	return func(c *Controller) {
		if formatDate != nil {
			c.formatDate = formatDate
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger.With().Str("component", "table").Logger()
	}
}

// OnPageChange registers a callback fired with the new page after it changed.
func OnPageChange(fn func(page int)) Option {
	return func(c *Controller) { c.onPageChange = fn }
}

// OnPageSizeChange registers a callback fired with the new page size after it
// changed.
func OnPageSizeChange(fn func(size int)) Option {
	return func(c *Controller) { c.onPageSizeChange = fn }
}

// Controller owns a dataset and the table state derived from it. Every
// Dispatch computes the next state and view before installing both, so
// callers never observe a half-updated table.
type Controller struct {
	dataset    model.Dataset
	state      State
	view       View
	formatDate func(time.Time) string
	logger     zerolog.Logger

	onPageChange     func(int)
	onPageSizeChange func(int)
}

// New creates a controller in the default state for ds.
func New(ds model.Dataset, opts ...Option) *Controller {
	c := &Controller{
		dataset:    ds,
		state:      DefaultState(ds.Columns),
		formatDate: util.FormatDate,
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.state, c.view = c.derive(c.state)
	return c
}

// Dispatch applies action and returns the resulting view.
func (c *Controller) Dispatch(action Action) View {
	prev := c.state
	state, view := c.derive(Reduce(prev, action))

	c.state, c.view = state, view

	c.logger.Debug().
		Str("action", action.Name()).
		Int("page", view.Page).
		Int("total_pages", view.TotalPages).
		Int("filtered", view.FilteredCount).
		Str("sort", view.Sort.String()).
		Msg("table state updated")
	if view.Err != nil {
		c.logger.Warn().Err(view.Err).Msg("sort skipped")
	}

	if state.PageSize != prev.PageSize && c.onPageSizeChange != nil {
		c.onPageSizeChange(state.PageSize)
	}
	if state.Page != prev.Page && c.onPageChange != nil {
		c.onPageChange(state.Page)
	}
	return view
}

// derive computes the view and writes the clamped page back into state.
func (c *Controller) derive(state State) (State, View) {
	view := Derive(c.dataset, state, c.formatDate)
	state.Page = view.Page
	state.PageSize = view.PageSize
	return state, view
}

// State returns the current state.
func (c *Controller) State() State { return c.state.clone() }

// View returns the current view.
func (c *Controller) View() View { return c.view }

// Dataset returns the dataset the controller renders.
func (c *Controller) Dataset() model.Dataset { return c.dataset }

// FormatDate exposes the configured date formatter to renderers.
func (c *Controller) FormatDate(t time.Time) string { return c.formatDate(t) }
