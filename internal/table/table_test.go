package table

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabula/internal/model"
	"tabula/internal/sorting"
)

var people = model.Dataset{
	Name:    "people",
	Columns: []string{"id", "name", "city", "joined"},
}

func init() {
	cities := []string{"Oslo", "Lima", "Pune"}
	for i := 1; i <= 25; i++ {
		people.Records = append(people.Records, model.Record{
			"id":     model.Number(float64(i)),
			"name":   model.String(fmt.Sprintf("user%02d", i)),
			"city":   model.String(cities[i%len(cities)]),
			"joined": model.Date(time.Date(2020, time.January, i, 0, 0, 0, 0, time.UTC)),
		})
	}
}

func rowIDs(v View) []float64 {
	out := make([]float64, len(v.Rows))
	for i, r := range v.Rows {
		out[i] = r.Get("id").Num()
	}
	return out
}

func TestNew_Defaults(t *testing.T) {
	c := New(people)
	v := c.View()

	assert.Equal(t, 1, v.Page)
	assert.Equal(t, 10, v.PageSize)
	assert.Equal(t, 3, v.TotalPages)
	assert.Equal(t, 25, v.FilteredCount)
	assert.Equal(t, people.Columns, v.Columns)
	assert.Equal(t, 0, v.Sort.Len())
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, rowIDs(v))
}

func TestDispatch_EmptyFilterKeepsOrder(t *testing.T) {
	c := New(people, WithPageSize(100))
	v := c.Dispatch(SetFilter{Text: ""})

	require.Len(t, v.Rows, 25)
	for i, r := range v.Rows {
		assert.Equal(t, float64(i+1), r.Get("id").Num())
	}
}

func TestDispatch_FilterCaseInsensitive(t *testing.T) {
	c := New(people, WithPageSize(100))
	v := c.Dispatch(SetFilter{Text: "oSLo"})

	assert.Equal(t, 8, v.FilteredCount)
	for _, r := range v.Rows {
		assert.Equal(t, "Oslo", r.Get("city").Str())
	}
}

func TestDispatch_FilterMatchesFormattedDates(t *testing.T) {
	c := New(people)
	v := c.Dispatch(SetFilter{Text: "07-jan-2020"})

	require.Equal(t, 1, v.FilteredCount)
	assert.Equal(t, float64(7), v.Rows[0].Get("id").Num())
}

func TestDispatch_FilterResetsPage(t *testing.T) {
	c := New(people)
	c.Dispatch(GoToPage{Page: 3})
	require.Equal(t, 3, c.State().Page)

	v := c.Dispatch(SetFilter{Text: "user"})
	assert.Equal(t, 1, v.Page)
	assert.Equal(t, 1, c.State().Page)
}

func TestDispatch_PageClamping(t *testing.T) {
	c := New(people)

	assert.Equal(t, 3, c.Dispatch(GoToPage{Page: 99}).Page)
	assert.Equal(t, 3, c.Dispatch(NextPage{}).Page)
	assert.Equal(t, 2, c.Dispatch(PrevPage{}).Page)
	assert.Equal(t, 1, c.Dispatch(GoToPage{Page: -4}).Page)
	assert.Equal(t, 1, c.Dispatch(PrevPage{}).Page)
}

func TestDispatch_LastPageSlice(t *testing.T) {
	c := New(people)
	v := c.Dispatch(GoToPage{Page: 3})

	assert.Equal(t, []float64{21, 22, 23, 24, 25}, rowIDs(v))
}

func TestDispatch_PageSize(t *testing.T) {
	c := New(people)
	c.Dispatch(GoToPage{Page: 2})

	v := c.Dispatch(SetPageSize{Size: 5})
	assert.Equal(t, 1, v.Page)
	assert.Equal(t, 5, v.TotalPages)

	v = c.Dispatch(SetPageSize{Size: 0})
	assert.Equal(t, 5, v.PageSize)
}

func TestDispatch_SortToggleThroughHeaderClicks(t *testing.T) {
	c := New(people, WithPageSize(100))

	v := c.Dispatch(ToggleSort{Column: "id"})
	assert.Equal(t, float64(1), v.Rows[0].Get("id").Num())

	v = c.Dispatch(ToggleSort{Column: "id"})
	assert.Equal(t, float64(25), v.Rows[0].Get("id").Num())

	v = c.Dispatch(ToggleSort{Column: "id"})
	assert.Equal(t, 0, v.Sort.Len())
	assert.Equal(t, float64(1), v.Rows[0].Get("id").Num())
}

func TestDispatch_MultiSort(t *testing.T) {
	c := New(people, WithPageSize(100))
	c.Dispatch(ToggleSort{Column: "city"})
	c.Dispatch(ToggleSort{Column: "id"})
	v := c.Dispatch(ToggleSort{Column: "id"})

	assert.Equal(t, "city:asc,id:desc", v.Sort.String())
	// Lima first, highest id first inside each city.
	assert.Equal(t, "Lima", v.Rows[0].Get("city").Str())
	assert.Equal(t, float64(25), v.Rows[0].Get("id").Num())
	for i := 1; i < len(v.Rows); i++ {
		prev, cur := v.Rows[i-1], v.Rows[i]
		if prev.Get("city").Str() == cur.Get("city").Str() {
			assert.Greater(t, prev.Get("id").Num(), cur.Get("id").Num())
		} else {
			assert.Less(t, prev.Get("city").Str(), cur.Get("city").Str())
		}
	}
}

func TestDispatch_ColumnToggleRestoresOriginalPosition(t *testing.T) {
	c := New(people)

	v := c.Dispatch(ToggleColumn{Column: "name"})
	assert.Equal(t, []string{"id", "city", "joined"}, v.Columns)
	_, has := v.Rows[0]["name"]
	assert.False(t, has, "hidden column must be removed from projected rows")

	c.Dispatch(ToggleColumn{Column: "id"})
	v = c.Dispatch(ToggleColumn{Column: "name"})
	assert.Equal(t, []string{"name", "city", "joined"}, v.Columns)

	v = c.Dispatch(ToggleColumn{Column: "id"})
	assert.Equal(t, []string{"id", "name", "city", "joined"}, v.Columns)
}

func TestDispatch_CannotHideLastColumn(t *testing.T) {
	c := New(people)
	c.Dispatch(SetColumns{Columns: []string{"city"}})

	v := c.Dispatch(ToggleColumn{Column: "city"})
	assert.Equal(t, []string{"city"}, v.Columns)

	v = c.Dispatch(ShowAllColumns{})
	assert.Equal(t, people.Columns, v.Columns)
}

func TestDispatch_SetColumnsUsesOriginalOrder(t *testing.T) {
	c := New(people)

	v := c.Dispatch(SetColumns{Columns: []string{"joined", "nope", "id"}})
	assert.Equal(t, []string{"id", "joined"}, v.Columns)

	v = c.Dispatch(SetColumns{Columns: []string{"nope"}})
	assert.Equal(t, []string{"id", "joined"}, v.Columns)
}

func TestDispatch_TypeMismatchSurfaces(t *testing.T) {
	ds := model.Dataset{
		Columns: []string{"v"},
		Records: []model.Record{
			{"v": model.Number(2)},
			{"v": model.String("x")},
			{"v": model.Number(1)},
		},
	}
	c := New(ds)

	v := c.Dispatch(ToggleSort{Column: "v"})
	require.ErrorIs(t, v.Err, sorting.ErrTypeMismatch)
	require.Len(t, v.Rows, 3)
	assert.Equal(t, float64(2), v.Rows[0].Get("v").Num())

	v = c.Dispatch(ClearSort{})
	assert.NoError(t, v.Err)
}

func TestDispatch_EmptyDataset(t *testing.T) {
	c := New(model.Dataset{Columns: []string{"a"}})
	v := c.Dispatch(SetFilter{Text: "x"})

	assert.Equal(t, 0, v.TotalPages)
	assert.Equal(t, 1, v.Page)
	assert.Empty(t, v.Rows)
	assert.NoError(t, v.Err)
}

func TestDispatch_ClampsWhenFilterShrinksResult(t *testing.T) {
	c := New(people, WithPageSize(5))
	c.Dispatch(GoToPage{Page: 5})

	// Filtering resets to page 1 anyway; shrinking through the page size must
	// still clamp.
	v := c.Dispatch(Restore{State: State{Filter: "Pune", Page: 5, PageSize: 5, Columns: people.Columns}})
	assert.Equal(t, 2, v.TotalPages)
	assert.Equal(t, 2, v.Page)
	assert.Equal(t, 2, c.State().Page)
}

func TestCallbacks(t *testing.T) {
	var pages, sizes []int
	c := New(people,
		OnPageChange(func(p int) { pages = append(pages, p) }),
		OnPageSizeChange(func(s int) { sizes = append(sizes, s) }),
	)

	c.Dispatch(NextPage{})
	c.Dispatch(NextPage{})
	c.Dispatch(NextPage{}) // already on the last page
	c.Dispatch(SetPageSize{Size: 20})
	c.Dispatch(SetPageSize{Size: 20})

	assert.Equal(t, []int{2, 3, 1}, pages)
	assert.Equal(t, []int{20}, sizes)
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	state := DefaultState(people.Columns)
	before := state.clone()

	_ = Reduce(state, ToggleColumn{Column: "name"})
	_ = Reduce(state, ToggleSort{Column: "name"})
	_ = Reduce(state, SetFilter{Text: "x"})

	assert.Equal(t, before, state)
}

func TestMatcher(t *testing.T) {
	r := model.Record{"a": model.String("Straße"), "b": model.Null(), "c": model.Bool(true)}

	assert.True(t, NewMatcher("STRASSE", []string{"a"}, nil).Match(r))
	assert.True(t, NewMatcher("tru", []string{"a", "b", "c"}, nil).Match(r))
	assert.False(t, NewMatcher("-", []string{"b"}, nil).Match(r))
	assert.True(t, NewMatcher("", nil, nil).Match(r))
}
