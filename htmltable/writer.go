// Package htmltable writes simpletable views and
// rendered table pages as HTML tables.
package htmltable

import (
	"context"
	"errors"
	"html/template"
	"io"
	"net/url"
	"reflect"

	simpletable "github.com/domonda/go-simpletable"
)

// Writer writes HTML tables.
//
// The With methods return modified copies,
// a Writer is never changed after creation.
type Writer struct {
	tableClass       string
	columnFormatters simpletable.ColumnFormatters
	typeFormatters   *simpletable.TypeFormatters
	nilValue         template.HTML
	headerRow        bool
	headerTemplate   *template.Template
	columnTemplate   *template.Template
	rowTemplate      *template.Template
	messageTemplate  *template.Template
	footerTemplate   *template.Template
	pagerTemplate    *template.Template
}

func NewWriter() *Writer {
	return &Writer{
		headerTemplate:  HeaderTemplate,
		columnTemplate:  ColumnHeaderTemplate,
		rowTemplate:     RowTemplate,
		messageTemplate: MessageTemplate,
		footerTemplate:  FooterTemplate,
		pagerTemplate:   PagerTemplate,
	}
}

var errNoRender = errors.New("htmltable: nil Render")

// WriteView writes all rows of view as HTML table
// with the view title as caption.
func (w *Writer) WriteView(ctx context.Context, dest io.Writer, view simpletable.View) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	templData := w.rowContext(view)

	err := w.headerTemplate.Execute(dest, templData.TemplateContext)
	if err != nil {
		return err
	}
	if w.headerRow {
		templData.IsHeaderRow = true
		for i, column := range view.Columns() {
			templData.RawCells[i] = template.HTML(template.HTMLEscapeString(column)) //#nosec G203
		}
		err = w.rowTemplate.Execute(dest, templData)
		if err != nil {
			return err
		}
		templData.IsHeaderRow = false
		templData.RowIndex++
	}
	err = w.writeRows(ctx, dest, view, templData)
	if err != nil {
		return err
	}
	return w.footerTemplate.Execute(dest, templData.TemplateContext)
}

// WriteRender writes the page of a rendered table
// with sort indicators in the column headers,
// the status message instead of rows if there are none,
// followed by pagination controls.
//
// The page links of the controls are built from links
// and are omitted if links is nil or has no URLSync.
func (w *Writer) WriteRender(ctx context.Context, dest io.Writer, render *simpletable.Render, links *PageLinks) error {
	if render == nil {
		return errNoRender
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	templData := w.rowContext(render)

	err := w.headerTemplate.Execute(dest, templData.TemplateContext)
	if err != nil {
		return err
	}
	columnData := ColumnHeaderTemplateContext{TemplateContext: templData.TemplateContext}
	for _, h := range render.Headers {
		columnData.Headers = append(columnData.Headers, ColumnHeader{
			Label:      h.Label,
			Sorted:     h.Sorted,
			Descending: h.Direction == simpletable.Descending,
		})
	}
	err = w.columnTemplate.Execute(dest, columnData)
	if err != nil {
		return err
	}

	if render.Status == simpletable.StatusRows {
		err = w.writeRows(ctx, dest, render, templData)
	} else {
		err = w.messageTemplate.Execute(dest, MessageTemplateContext{
			TemplateContext: templData.TemplateContext,
			Class:           statusClass(render.Status),
			ColSpan:         max(len(render.Headers), 1),
			Message:         statusMessage(render),
		})
	}
	if err != nil {
		return err
	}
	err = w.footerTemplate.Execute(dest, templData.TemplateContext)
	if err != nil {
		return err
	}
	if render.Status == simpletable.StatusError || render.Status == simpletable.StatusLoading {
		return nil
	}
	return w.pagerTemplate.Execute(dest, pagerContext(render, links))
}

func (w *Writer) rowContext(view simpletable.View) *RowTemplateContext {
	return &RowTemplateContext{
		TemplateContext: TemplateContext{
			TableClass: w.tableClass,
			Caption:    view.Title(),
		},
		RawCells: make([]template.HTML, len(view.Columns())),
	}
}

func (w *Writer) writeRows(ctx context.Context, dest io.Writer, view simpletable.View, templData *RowTemplateContext) error {
	formatter := simpletable.TryFormattersOrDisplayString(w.columnFormatters, w.typeFormatters)
	for row, numRows := 0, view.NumRows(); row < numRows; row++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		for col := range templData.RawCells {
			if simpletable.ValueIsNil(reflect.ValueOf(view.Cell(row, col))) {
				templData.RawCells[col] = w.nilValue
				continue
			}
			str, isRaw, err := formatter.FormatCell(ctx, view, row, col)
			if err != nil {
				return err
			}
			if !isRaw {
				str = template.HTMLEscapeString(str)
			}
			templData.RawCells[col] = template.HTML(str) //#nosec G203
		}
		err := w.rowTemplate.Execute(dest, templData)
		if err != nil {
			return err
		}
		templData.RowIndex++
	}
	return nil
}

func statusClass(status simpletable.RenderStatus) string {
	switch status {
	case simpletable.StatusEmpty:
		return "empty"
	case simpletable.StatusError:
		return "error"
	case simpletable.StatusLoading:
		return "loading"
	}
	return ""
}

func statusMessage(render *simpletable.Render) string {
	if render.Status == simpletable.StatusLoading && render.Message == "" {
		return "Loading…"
	}
	return render.Message
}

// PageLinks builds the links of pagination controls.
type PageLinks struct {
	// Path of the page the table is displayed on
	Path string
	// Sync sets the page parameters of the links
	Sync *simpletable.URLSync
}

// Href returns the link to the page selected by state
// keeping all other query parameters of Sync,
// or an empty string if p or p.Sync is nil.
func (p *PageLinks) Href(state simpletable.PaginationState) string {
	if p == nil || p.Sync == nil {
		return ""
	}
	u := url.URL{
		Path:     p.Path,
		RawQuery: p.Sync.PageQuery(p.Sync.Query(), state).Encode(),
	}
	return u.String()
}

func pagerContext(render *simpletable.Render, links *PageLinks) PagerTemplateContext {
	page := render.Page
	data := PagerTemplateContext{Total: page.Total}
	if len(page.Rows) > 0 {
		data.First = page.Offset + 1
		data.Last = page.Offset + len(page.Rows)
	}
	state := render.Pagination
	if render.HasPrevious() {
		data.PreviousHref = links.Href(simpletable.PaginationState{PageIndex: state.PageIndex - 1, PageSize: state.PageSize})
	}
	if render.HasNext() {
		data.NextHref = links.Href(simpletable.PaginationState{PageIndex: state.PageIndex + 1, PageSize: state.PageSize})
	}
	for _, size := range render.RowsPerPage {
		link := PageSizeLink{Size: size, Current: size == state.PageSize}
		if !link.Current {
			link.Href = links.Href(state.WithPageSize(size, page.Total, render.RowsPerPage))
		}
		data.Sizes = append(data.Sizes, link)
	}
	return data
}

func (w *Writer) clone() *Writer {
	c := new(Writer)
	*c = *w
	return c
}

func (w *Writer) WithHeaderRow(headerRow bool) *Writer {
	mod := w.clone()
	mod.headerRow = headerRow
	return mod
}

func (w *Writer) WithTableClass(tableClass string) *Writer {
	mod := w.clone()
	mod.tableClass = tableClass
	return mod
}

// WithNilValue returns a Writer that writes nilValue for nil cells.
func (w *Writer) WithNilValue(nilValue template.HTML) *Writer {
	mod := w.clone()
	mod.nilValue = nilValue
	return mod
}

func (w *Writer) WithColumnFormatter(columnIndex int, formatter simpletable.CellFormatter) *Writer {
	mod := w.clone()
	mod.columnFormatters = make(simpletable.ColumnFormatters, len(w.columnFormatters)+1)
	for key, val := range w.columnFormatters {
		mod.columnFormatters[key] = val
	}
	if formatter != nil {
		mod.columnFormatters[columnIndex] = formatter
	} else {
		delete(mod.columnFormatters, columnIndex)
	}
	return mod
}

// WithRawColumn returns a Writer that writes the cells
// of the column unescaped as HTML.
func (w *Writer) WithRawColumn(columnIndex int) *Writer {
	return w.WithColumnFormatter(columnIndex, simpletable.PrintfRawCellFormatter("%v"))
}

func (w *Writer) WithTypeFormatters(formatters *simpletable.TypeFormatters) *Writer {
	mod := w.clone()
	mod.typeFormatters = formatters
	return mod
}

func (w *Writer) WithTypeFormatter(typ reflect.Type, fmt simpletable.CellFormatter) *Writer {
	mod := w.clone()
	mod.typeFormatters = w.typeFormatters.WithTypeFormatter(typ, fmt)
	return mod
}

func (w *Writer) WithInterfaceTypeFormatter(typ reflect.Type, fmt simpletable.CellFormatter) *Writer {
	mod := w.clone()
	mod.typeFormatters = w.typeFormatters.WithInterfaceTypeFormatter(typ, fmt)
	return mod
}

// WithTemplates returns a Writer using custom templates,
// nil templates keep the current ones.
func (w *Writer) WithTemplates(header, columnHeader, row, message, footer, pager *template.Template) *Writer {
	mod := w.clone()
	for _, t := range []struct {
		dst **template.Template
		src *template.Template
	}{
		{&mod.headerTemplate, header},
		{&mod.columnTemplate, columnHeader},
		{&mod.rowTemplate, row},
		{&mod.messageTemplate, message},
		{&mod.footerTemplate, footer},
		{&mod.pagerTemplate, pager},
	} {
		if t.src != nil {
			*t.dst = t.src
		}
	}
	return mod
}
