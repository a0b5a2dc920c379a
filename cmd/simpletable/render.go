package main

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"
	fs "github.com/ungerik/go-fs"
	"golang.org/x/text/language"

	simpletable "github.com/domonda/go-simpletable"
	"github.com/domonda/go-simpletable/aipfilter"
	"github.com/domonda/go-simpletable/csvtable"
	"github.com/domonda/go-simpletable/exceltable"
	"github.com/domonda/go-simpletable/htmltable"
	"github.com/domonda/go-simpletable/internal/source"
	"github.com/domonda/go-simpletable/localeselect"
	"github.com/domonda/go-simpletable/textfilter"
)

type renderFlags struct {
	data       string
	query      string
	sheet      string
	title      string
	columns    []string
	search     string
	criteria   []string
	namespaces []string
	filter     string
	sort       int
	url        string
	prefix     string
	page       int
	rows       int
	format     string
	locale     string
	ignoreCase bool
	empty      string
	all        bool
}

func newRenderCmd(a *app) *cobra.Command {
	var f renderFlags
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render one page of a data file as table",
		Long: `Render filters, sorts and paginates the rows of a data file
and writes the resulting page to stdout.

The page and page size are read from the query of --url
and the URL with the updated query is written to stderr.
Pass --prefix to namespace the query parameters when several
tables share one URL.

Example:
  simpletable render --data pods.json --columns metadata.name,metadata.namespace --search kube
  simpletable render --data pods.csv --filter 'restarts > 2' --sort -3
  simpletable render --data pods.db --query 'select * from pods' --url '/pods?foo_p=2' --prefix foo
  simpletable render --data pods.xlsx --format html --rows 25`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.render(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), &f)
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&f.data, "data", "d", "", "data file (.json, .csv, .xlsx, .db, .sqlite)")
	flags.StringVarP(&f.query, "query", "q", "", "SQL query for database files")
	flags.StringVar(&f.sheet, "sheet", "", "spreadsheet sheet (default first sheet)")
	flags.StringVar(&f.title, "title", "", "table title")
	flags.StringSliceVarP(&f.columns, "columns", "c", nil, "displayed columns, dots address nested values")
	flags.StringVarP(&f.search, "search", "s", "", "show rows containing the search text")
	flags.StringSliceVar(&f.criteria, "criteria", nil, "row paths matched by --search (default from config or metadata fields)")
	flags.StringSliceVarP(&f.namespaces, "namespace", "n", nil, "show only rows in these namespaces")
	flags.StringVarP(&f.filter, "filter", "f", "", `AIP-160 filter like 'namespace = "default" AND restarts > 2'`)
	flags.IntVar(&f.sort, "sort", 0, "1-based column to sort by, negative for descending")
	flags.StringVar(&f.url, "url", "/", "URL holding the pagination state in its query")
	flags.StringVar(&f.prefix, "prefix", "", "prefix of the URL query parameters (default from config)")
	flags.IntVarP(&f.page, "page", "p", 0, "1-based page to navigate to")
	flags.IntVarP(&f.rows, "rows", "r", 0, "rows per page")
	flags.StringVar(&f.format, "format", "", "output format: text, html, csv or xlsx (default from config)")
	flags.StringVar(&f.locale, "locale", "", "locale for sorting text (default from config)")
	flags.BoolVarP(&f.ignoreCase, "ignore-case", "i", false, "sort text case-insensitively")
	flags.StringVar(&f.empty, "empty-message", "", "message when no row is visible (default from config)")
	flags.BoolVar(&f.all, "all", false, "write the rows of all pages")
	_ = cmd.MarkFlagRequired("data")
	return cmd
}

func (a *app) render(ctx context.Context, stdout, stderr io.Writer, f *renderFlags) error {
	if ctx == nil {
		ctx = context.Background()
	}
	d := a.defaults
	format := firstNonEmpty(f.format, d.Format, "text")
	prefix := firstNonEmpty(f.prefix, d.Prefix)
	locale := firstNonEmpty(f.locale, d.Locale)
	criteria := f.criteria
	if len(criteria) == 0 {
		criteria = d.SearchCriteria
	}

	data, err := source.Load(ctx, fs.File(f.data), source.Options{
		Query:   f.query,
		Sheet:   f.sheet,
		Columns: f.columns,
	})
	if err != nil {
		return err
	}
	a.logger.Debug("Loaded data", "file", f.data, "rows", len(data.Rows), "columns", data.Columns.Labels())

	matcher := textfilter.New(criteria...).WithNamespaces(f.namespaces...)
	expr, err := aipfilter.Compile(f.filter, aipfilter.InferFields(data.Rows, rowKeys(data.Rows)...))
	if err != nil {
		return err
	}

	store, err := simpletable.NewURLQueryStore(f.url)
	if err != nil {
		return fmt.Errorf("invalid --url: %w", err)
	}

	var comparer simpletable.Comparer
	switch tag := localeselect.Tag(locale); {
	case f.ignoreCase || d.IgnoreCase:
		comparer = simpletable.CaseInsensitive()
	case tag != language.Und:
		comparer = simpletable.Collated(tag)
	}

	table := simpletable.New(
		simpletable.Config{
			Title:                f.title,
			Columns:              data.Columns,
			Data:                 data.Rows,
			RowsPerPage:          d.RowsPerPage,
			DefaultSortingColumn: f.sort,
			Filter:               simpletable.AllOf(matcher.Predicate(f.search), expr),
			ReflectInURL:         simpletable.ReflectInURLWithPrefix(prefix),
			EmptyMessage:         firstNonEmpty(f.empty, d.EmptyMessage),
		},
		simpletable.WithQueryStore(store),
		simpletable.WithLogger(a.logger),
		simpletable.WithComparer(comparer),
	)
	if f.rows > 0 {
		table.SetPageSize(f.rows)
	}
	if f.page > 0 {
		table.SetPage(f.page - 1)
	}
	render := table.Render()
	a.logger.Debug("Rendered table",
		"status", render.Status,
		"visible", table.VisibleCount(),
		"pagination", render.Pagination,
		"sort", render.Sort,
	)

	// The URL always shows the effective pagination,
	// even if it was not changed by a flag.
	table.URLSync().Write(render.Pagination)

	if f.all {
		view := &simpletable.RowsView{Tit: f.title, Cols: data.Columns, Rows: table.VisibleRows()}
		if err = writeAll(ctx, stdout, format, view, render.Pagination.PageSize); err != nil {
			return err
		}
		_, err = fmt.Fprintln(stderr, store.String())
		return err
	}

	switch format {
	case "text":
		err = writeText(ctx, stdout, render)
	case "html":
		links := &htmltable.PageLinks{Path: store.URL().Path, Sync: table.URLSync()}
		err = htmltable.NewWriter().WriteRender(ctx, stdout, render, links)
	case "csv":
		err = csvtable.NewWriter().WithHeaderRow(true).WriteView(ctx, stdout, render)
	case "xlsx":
		err = exceltable.Write(ctx, stdout, render)
	default:
		return fmt.Errorf("unsupported --format %q", format)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stderr, store.String())
	return err
}

func writeText(ctx context.Context, w io.Writer, render *simpletable.Render) error {
	if render.Title() != "" {
		if _, err := fmt.Fprintln(w, render.Title()); err != nil {
			return err
		}
	}
	if render.Status != simpletable.StatusRows {
		message := render.Message
		if render.Status == simpletable.StatusLoading {
			message = "Loading…"
		}
		_, err := fmt.Fprintln(w, message)
		return err
	}

	rows, err := simpletable.FormatViewAsStrings(ctx, render, nil, simpletable.OptionAddHeaderRow|simpletable.OptionNumberRows)
	if err != nil {
		return err
	}
	for i, header := range render.Headers {
		switch {
		case header.Sorted && header.Direction == simpletable.Descending:
			rows[0][i+1] += " ▼"
		case header.Sorted:
			rows[0][i+1] += " ▲"
		}
	}
	if err = writeTextRows(w, rows); err != nil {
		return err
	}
	page := render.Page
	_, err = fmt.Fprintf(w, "%d-%d of %d, page %d of %d, %d rows per page\n",
		page.Offset+1,
		page.Offset+len(page.Rows),
		page.Total,
		page.PageIndex+1,
		page.PageCount,
		page.PageSize,
	)
	return err
}

// writeAll writes all rows of view, the text format page by page.
func writeAll(ctx context.Context, w io.Writer, format string, view *simpletable.RowsView, pageSize int) error {
	switch format {
	case "text":
		pageCount := simpletable.PageCount(view.NumRows(), pageSize)
		for index := range pageCount {
			page := simpletable.NewPageView(view, simpletable.PaginationState{PageIndex: index, PageSize: pageSize})
			rows, err := simpletable.FormatViewAsStrings(ctx, page, nil, simpletable.OptionAddHeaderRow|simpletable.OptionNumberRows)
			if err != nil {
				return err
			}
			if _, err = fmt.Fprintf(w, "Page %d of %d\n", index+1, pageCount); err != nil {
				return err
			}
			if err = writeTextRows(w, rows); err != nil {
				return err
			}
		}
		return nil
	case "html":
		return htmltable.NewWriter().WithHeaderRow(true).WriteView(ctx, w, view)
	case "csv":
		return csvtable.NewWriter().WithHeaderRow(true).WriteView(ctx, w, view)
	case "xlsx":
		return exceltable.Write(ctx, w, view)
	default:
		return fmt.Errorf("unsupported --format %q", format)
	}
}

// writeTextRows writes rows with left aligned columns
// separated by two spaces.
func writeTextRows(w io.Writer, rows [][]string) error {
	widths := simpletable.StringColumnWidths(rows, -1)
	var line strings.Builder
	for _, row := range rows {
		line.Reset()
		for col, str := range row {
			if col > 0 {
				line.WriteString("  ")
			}
			line.WriteString(str)
			if col < len(row)-1 {
				line.WriteString(strings.Repeat(" ", widths[col]-utf8.RuneCountInString(str)))
			}
		}
		line.WriteByte('\n')
		if _, err := io.WriteString(w, line.String()); err != nil {
			return err
		}
	}
	return nil
}

// rowKeys returns the sorted union of the keys of rows.
func rowKeys(rows []simpletable.Row) []string {
	keys := make(map[string]struct{})
	for _, row := range rows {
		for key := range row {
			keys[key] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(keys))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
