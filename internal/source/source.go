// Package source loads table rows from data files.
package source

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	fs "github.com/ungerik/go-fs"
	_ "modernc.org/sqlite" // database/sql driver "sqlite"

	simpletable "github.com/domonda/go-simpletable"
	"github.com/domonda/go-simpletable/csvtable"
	"github.com/domonda/go-simpletable/exceltable"
	"github.com/domonda/go-simpletable/sqltable"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported data format")
	ErrNotLocalFile      = errors.New("database is not a local file")
	ErrMissingQuery      = errors.New("missing SQL query")
)

// Options for Load
type Options struct {
	// Query is the SQL query for database files.
	Query string
	// Sheet of a spreadsheet, empty for the first sheet.
	Sheet string
	// CSVFormat is detected if nil.
	CSVFormat *csvtable.Format
	// Columns selects the displayed columns by row key.
	// Keys with dots address nested values like "metadata.name".
	// All columns of the data are used if empty.
	Columns []string
}

// Data is the result of Load
type Data struct {
	Rows    []simpletable.Row
	Columns simpletable.Columns
}

// Load reads the rows of file using the format
// indicated by the file's extension:
// .json for an array of objects, .csv, .xlsx,
// or .db, .sqlite, .sqlite3 for SQLite databases
// queried with Options.Query.
func Load(ctx context.Context, file fs.FileReader, opts Options) (*Data, error) {
	var (
		data *Data
		err  error
	)
	switch ext := strings.ToLower(file.Ext()); ext {
	case ".json":
		data, err = loadJSON(ctx, file)
	case ".csv":
		data, err = loadCSV(ctx, file, opts.CSVFormat)
	case ".xlsx":
		data, err = loadSpreadsheet(ctx, file, opts.Sheet)
	case ".db", ".sqlite", ".sqlite3":
		data, err = loadSQLite(ctx, file, opts.Query)
	default:
		return nil, fmt.Errorf("%w: %q of %s", ErrUnsupportedFormat, ext, file.Name())
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", file.Name(), err)
	}
	if len(opts.Columns) > 0 {
		data.Columns = Columns(opts.Columns...)
	}
	return data, nil
}

func loadJSON(ctx context.Context, file fs.FileReader) (*Data, error) {
	content, err := file.ReadAllContext(ctx)
	if err != nil {
		return nil, err
	}
	return ParseJSON(content)
}

// ParseJSON parses an array of JSON objects into rows.
// Numbers are kept as json.Number so integers keep their exact text.
// The columns are the sorted union of the top-level keys of all objects.
func ParseJSON(content []byte) (*Data, error) {
	dec := json.NewDecoder(bytes.NewReader(content))
	dec.UseNumber()
	var objects []map[string]any
	if err := dec.Decode(&objects); err != nil {
		return nil, err
	}
	keys := make(map[string]struct{})
	rows := make([]simpletable.Row, len(objects))
	for i, obj := range objects {
		rows[i] = simpletable.Row(obj)
		for key := range obj {
			keys[key] = struct{}{}
		}
	}
	if rows == nil {
		rows = []simpletable.Row{}
	}
	return &Data{
		Rows:    rows,
		Columns: simpletable.DatumColumns(slices.Sorted(maps.Keys(keys))...),
	}, nil
}

func loadCSV(ctx context.Context, file fs.FileReader, format *csvtable.Format) (*Data, error) {
	content, err := file.ReadAllContext(ctx)
	if err != nil {
		return nil, err
	}
	rows, cols, _, err := csvtable.ReadRows(content, format)
	if err != nil {
		return nil, err
	}
	return &Data{Rows: nonNilRows(rows), Columns: cols}, nil
}

func loadSpreadsheet(ctx context.Context, file fs.FileReader, sheet string) (*Data, error) {
	content, err := file.ReadAllContext(ctx)
	if err != nil {
		return nil, err
	}
	rows, cols, err := exceltable.ReadRows(bytes.NewReader(content), sheet)
	if err != nil {
		return nil, err
	}
	return &Data{Rows: nonNilRows(rows), Columns: cols}, nil
}

func loadSQLite(ctx context.Context, file fs.FileReader, query string) (data *Data, err error) {
	if query == "" {
		return nil, ErrMissingQuery
	}
	localFile, ok := file.(fs.File)
	if !ok || localFile.LocalPath() == "" {
		return nil, ErrNotLocalFile
	}
	if !localFile.Exists() {
		return nil, fs.NewErrDoesNotExist(localFile)
	}
	db, err := sql.Open("sqlite", "file:"+localFile.LocalPath()+"?mode=ro")
	if err != nil {
		return nil, err
	}
	defer func() {
		err = errors.Join(err, db.Close())
	}()
	rows, cols, err := sqltable.Query(ctx, db, query)
	if err != nil {
		return nil, err
	}
	return &Data{Rows: nonNilRows(rows), Columns: cols}, nil
}

// An empty slice marks the data as loaded.
func nonNilRows(rows []simpletable.Row) []simpletable.Row {
	if rows == nil {
		return []simpletable.Row{}
	}
	return rows
}

// Columns returns a column for every key.
// Keys without dots become Datum columns,
// keys with dots Getter columns reading nested objects.
func Columns(keys ...string) simpletable.Columns {
	cols := make(simpletable.Columns, len(keys))
	for i, key := range keys {
		if !strings.Contains(key, ".") {
			cols[i] = simpletable.Datum(key, key)
			continue
		}
		path := strings.Split(key, ".")
		cols[i] = simpletable.Getter(key, func(row simpletable.Row) any {
			return Lookup(row, path...)
		})
	}
	return cols
}

// Lookup returns the value of row at the path of nested object keys
// or nil if the path does not exist.
// A row key containing the complete dotted path takes precedence.
func Lookup(row simpletable.Row, path ...string) any {
	if len(path) == 0 {
		return nil
	}
	if v, ok := row[strings.Join(path, ".")]; ok {
		return v
	}
	var current any = map[string]any(row)
	for _, key := range path {
		switch obj := current.(type) {
		case map[string]any:
			current = obj[key]
		case simpletable.Row:
			current = obj[key]
		default:
			return nil
		}
	}
	return current
}
