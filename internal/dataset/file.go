// Package dataset loads tabular data from SQLite databases and CSV, TSV,
// JSON or YAML files into a model.Dataset.
package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"tabula/internal/model"
)

// Loader errors.
var (
	ErrUnsupportedFormat = errors.New("unsupported dataset format")
	ErrUnknownTable      = errors.New("unknown table")
	ErrMissingTable      = errors.New("a table name is required for SQLite datasets")
	ErrNotATable         = errors.New("document must be a list of objects")
)

// FileOptions tune LoadFile.
type FileOptions struct {
	// Table selects the table of a SQLite file.
	Table string
}

// LoadFile loads path, choosing the format from its extension.
func LoadFile(ctx context.Context, path string, opts FileOptions) (model.Dataset, error) {
	ext := strings.ToLower(filepath.Ext(path))
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	switch ext {
	case ".db", ".sqlite", ".sqlite3":
		if opts.Table == "" {
			return model.Dataset{}, ErrMissingTable
		}
		return LoadSQLite(ctx, path, opts.Table)
	case ".csv", ".tsv", ".json", ".yaml", ".yml":
	default:
		return model.Dataset{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return model.Dataset{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	switch ext {
	case ".csv":
		return LoadCSV(f, name, ',')
	case ".tsv":
		return LoadCSV(f, name, '\t')
	default:
		return LoadYAML(f, name)
	}
}

// LoadCSV reads a delimited file whose first record is the header. Column
// kinds are inferred from the cells.
func LoadCSV(r io.Reader, name string, comma rune) (model.Dataset, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return model.Dataset{}, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(records) == 0 {
		return model.Dataset{Name: name}, nil
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.TrimSpace(h)
	}
	body := records[1:]

	values := make([][]model.Value, len(header))
	for c := range header {
		cells := make([]string, len(body))
		for r, row := range body {
			if c < len(row) {
				cells[r] = row[c]
			}
		}
		values[c] = inferColumn(cells)
	}
	return fromColumns(name, header, values, len(body)), nil
}

// LoadJSON reads a JSON array of objects. JSON is parsed as YAML so the key
// order of the objects is kept as column order.
func LoadJSON(r io.Reader, name string) (model.Dataset, error) {
	return LoadYAML(r, name)
}

// LoadYAML reads a sequence of mappings. Columns appear in first-seen key
// order; a key missing from a record is Null.
func LoadYAML(r io.Reader, name string) (model.Dataset, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return model.Dataset{Name: name}, nil
		}
		return model.Dataset{}, fmt.Errorf("failed to parse %s: %w", name, err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.SequenceNode {
		return model.Dataset{}, ErrNotATable
	}

	ds := model.Dataset{Name: name}
	seen := map[string]bool{}
	for _, item := range root.Content {
		if item.Kind != yaml.MappingNode {
			return model.Dataset{}, ErrNotATable
		}
		rec := model.Record{}
		for i := 0; i+1 < len(item.Content); i += 2 {
			key := item.Content[i].Value
			if !seen[key] {
				seen[key] = true
				ds.Columns = append(ds.Columns, key)
			}
			v, err := nodeValue(item.Content[i+1])
			if err != nil {
				return model.Dataset{}, fmt.Errorf("field %q: %w", key, err)
			}
			rec[key] = v
		}
		ds.Records = append(ds.Records, rec)
	}

	promoteDateColumns(&ds)
	return ds, nil
}

func nodeValue(n *yaml.Node) (model.Value, error) {
	if n.Kind != yaml.ScalarNode {
		out, err := yaml.Marshal(n)
		if err != nil {
			return model.Value{}, err
		}
		return model.String(strings.TrimSpace(string(out))), nil
	}

	switch n.ShortTag() {
	case "!!null":
		return model.Null(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return model.Value{}, err
		}
		return model.Bool(b), nil
	case "!!int", "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return model.Value{}, err
		}
		return model.Number(f), nil
	case "!!timestamp":
		var t time.Time
		if err := n.Decode(&t); err != nil {
			return model.Value{}, err
		}
		return model.Date(t), nil
	default:
		return model.String(n.Value), nil
	}
}

// promoteDateColumns turns string columns whose every value is a date into
// date columns. JSON has no date type, so dates arrive as strings.
func promoteDateColumns(ds *model.Dataset) {
	for _, col := range ds.Columns {
		cells := make([]string, len(ds.Records))
		allStrings := true
		for i, r := range ds.Records {
			v := r.Get(col)
			switch v.Kind() {
			case model.KindNull:
			case model.KindString:
				cells[i] = v.Str()
			default:
				allStrings = false
			}
		}
		if !allStrings {
			continue
		}
		dates, ok := parseAll(cells, parseDate)
		if !ok {
			continue
		}
		for i, r := range ds.Records {
			if !dates[i].IsNull() {
				r[col] = dates[i]
			}
		}
	}
}
