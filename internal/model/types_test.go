package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValue_Format(t *testing.T) {
	day := time.Date(2021, time.January, 4, 0, 0, 0, 0, time.UTC)
	short := func(t time.Time) string { return t.Format("2006-01-02") }

	tests := []struct {
		name  string
		value Value
		want  string
	}{
		{"null", Null(), ""},
		{"string", String("Ada"), "Ada"},
		{"integer", Number(36), "36"},
		{"fraction", Number(2.5), "2.5"},
		{"bool", Bool(true), "true"},
		{"date", Date(day), "2021-01-04"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.value.Format(short))
		})
	}

	assert.Equal(t, "2021-01-04T00:00:00Z", Date(day).Format(nil))
}

func TestValue_Equal(t *testing.T) {
	day := time.Date(2021, time.January, 4, 0, 0, 0, 0, time.UTC)

	assert.True(t, Null().Equal(Value{}))
	assert.True(t, Number(1).Equal(Number(1)))
	assert.True(t, Date(day).Equal(Date(day.In(time.FixedZone("x", 3600)))))
	assert.False(t, Number(1).Equal(String("1")))
	assert.False(t, Bool(true).Equal(Bool(false)))
	assert.True(t, Null().IsNull())
	assert.Equal(t, "number", Number(1).Kind().String())
}

func TestRecord(t *testing.T) {
	r := Record{"name": String("Ada"), "age": Number(36)}

	assert.True(t, r.Get("missing").IsNull())
	assert.Equal(t, "Ada", r.Get("name").Str())

	p := r.Project([]string{"age", "email"})
	assert.Len(t, p, 2)
	assert.Equal(t, 36.0, p.Get("age").Num())
	assert.True(t, p.Get("email").IsNull())
	assert.Len(t, r, 2)
}

func TestDataset_ColumnIndex(t *testing.T) {
	ds := Dataset{Columns: []string{"id", "name"}}

	assert.Equal(t, 1, ds.ColumnIndex("name"))
	assert.Equal(t, -1, ds.ColumnIndex("email"))
	assert.True(t, ds.HasColumn("id"))
	assert.False(t, ds.HasColumn("email"))
}
