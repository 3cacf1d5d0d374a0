package dataset

import (
	"strconv"
	"strings"

	"tabula/internal/model"
	"tabula/internal/util"
)

// inferColumn picks one kind for a column of raw text cells: number, bool or
// date when every non-empty cell parses as that kind, string otherwise. Empty
// cells become Null.
func inferColumn(cells []string) []model.Value {
	parsers := []func(string) (model.Value, bool){
		parseNumber,
		parseBool,
		parseDate,
	}

	for _, parse := range parsers {
		if out, ok := parseAll(cells, parse); ok {
			return out
		}
	}

	out := make([]model.Value, len(cells))
	for i, c := range cells {
		if strings.TrimSpace(c) == "" {
			continue
		}
		out[i] = model.String(c)
	}
	return out
}

func parseAll(cells []string, parse func(string) (model.Value, bool)) ([]model.Value, bool) {
	out := make([]model.Value, len(cells))
	seen := false
	for i, c := range cells {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		v, ok := parse(c)
		if !ok {
			return nil, false
		}
		out[i] = v
		seen = true
	}
	return out, seen
}

func parseNumber(s string) (model.Value, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return model.Value{}, false
	}
	return model.Number(f), true
}

func parseBool(s string) (model.Value, bool) {
	switch strings.ToLower(s) {
	case "true", "yes":
		return model.Bool(true), true
	case "false", "no":
		return model.Bool(false), true
	}
	return model.Value{}, false
}

func parseDate(s string) (model.Value, bool) {
	t, ok := util.ParseDate(s)
	if !ok {
		return model.Value{}, false
	}
	return model.Date(t), true
}

// fromColumns builds records from column-major values.
func fromColumns(name string, columns []string, values [][]model.Value, n int) model.Dataset {
	ds := model.Dataset{Name: name, Columns: columns, Records: make([]model.Record, n)}
	for r := 0; r < n; r++ {
		rec := make(model.Record, len(columns))
		for c, col := range columns {
			rec[col] = values[c][r]
		}
		ds.Records[r] = rec
	}
	return ds
}
