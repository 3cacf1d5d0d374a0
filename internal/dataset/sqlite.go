package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"tabula/internal/model"
	"tabula/internal/util"
)

// OpenSQLite opens an existing SQLite database read-only.
func OpenSQLite(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", "file:"+dbPath+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// ListSQLiteTables returns the user tables and views of db, sorted by name.
func ListSQLiteTables(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT name FROM sqlite_master
		WHERE type IN ('table', 'view') AND name NOT LIKE 'sqlite_%'
		ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// LoadSQLiteTable reads every row of table. The table name is checked against
// sqlite_master before it is used in a query.
func LoadSQLiteTable(ctx context.Context, db *sql.DB, table string) (model.Dataset, error) {
	tables, err := ListSQLiteTables(ctx, db)
	if err != nil {
		return model.Dataset{}, err
	}
	found := false
	for _, t := range tables {
		if t == table {
			found = true
			break
		}
	}
	if !found {
		return model.Dataset{}, fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}

	query := fmt.Sprintf(`SELECT * FROM "%s"`, strings.ReplaceAll(table, `"`, `""`))
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return model.Dataset{}, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return model.Dataset{}, fmt.Errorf("failed to read columns: %w", err)
	}
	types, err := rows.ColumnTypes()
	if err != nil {
		return model.Dataset{}, fmt.Errorf("failed to read column types: %w", err)
	}

	ds := model.Dataset{Name: table, Columns: columns}
	for rows.Next() {
		if err := ctx.Err(); err != nil {
			return model.Dataset{}, err
		}
		raw := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return model.Dataset{}, fmt.Errorf("failed to scan row: %w", err)
		}

		rec := make(model.Record, len(columns))
		for i, c := range columns {
			rec[c] = sqliteValue(raw[i], types[i].DatabaseTypeName())
		}
		ds.Records = append(ds.Records, rec)
	}
	if err := rows.Err(); err != nil {
		return model.Dataset{}, fmt.Errorf("failed to read rows: %w", err)
	}
	return ds, nil
}

// LoadSQLite opens dbPath and loads table from it.
func LoadSQLite(ctx context.Context, dbPath, table string) (model.Dataset, error) {
	db, err := OpenSQLite(dbPath)
	if err != nil {
		return model.Dataset{}, err
	}
	defer db.Close()

	return LoadSQLiteTable(ctx, db, table)
}

func sqliteValue(v any, declType string) model.Value {
	switch x := v.(type) {
	case nil:
		return model.Null()
	case int64:
		if declType == "BOOLEAN" || declType == "BOOL" {
			return model.Bool(x != 0)
		}
		return model.Number(float64(x))
	case float64:
		return model.Number(x)
	case bool:
		return model.Bool(x)
	case time.Time:
		return model.Date(x)
	case []byte:
		return model.String(string(x))
	case string:
		switch declType {
		case "DATE", "DATETIME", "TIMESTAMP":
			if t, ok := util.ParseDate(x); ok {
				return model.Date(t)
			}
		}
		return model.String(x)
	default:
		return model.String(fmt.Sprint(x))
	}
}
