package csvtable

import (
	"bytes"
	"context"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/domonda/go-types/charset"

	simpletable "github.com/domonda/go-simpletable"
)

// Padding of padded CSV columns.
type Padding int

const (
	NoPadding Padding = iota
	AlignLeft
	AlignRight
	AlignCenter
)

// Writer writes a simpletable.View as CSV.
//
// The With methods return modified copies,
// a Writer is never changed after creation.
type Writer struct {
	formatter        simpletable.CellFormatter
	padding          Padding
	headerRow        bool
	numberRows       bool
	quoteAllFields   bool
	quoteEmptyFields bool
	escapeQuotes     string
	nilValue         string
	delimiter        rune
	newLine          string
	encoding         charset.Encoding
}

// NewWriter returns a Writer for UTF-8 CSV
// with semicolon delimiters and "\r\n" newlines.
func NewWriter() *Writer {
	return &Writer{
		escapeQuotes: `""`,
		delimiter:    ';',
		newLine:      "\r\n",
	}
}

func (w *Writer) clone() *Writer {
	c := new(Writer)
	*c = *w
	return c
}

// WriteView writes all rows of view to dest.
func (w *Writer) WriteView(ctx context.Context, dest io.Writer, view simpletable.View) error {
	var options []simpletable.Option
	if w.numberRows {
		options = append(options, simpletable.OptionNumberRows)
	}
	rows, err := simpletable.FormatViewAsStrings(ctx, view, w.cellFormatter(), options...)
	if err != nil {
		return err
	}
	if w.headerRow {
		header := make([]string, 0, len(view.Columns())+1)
		if w.numberRows {
			header = append(header, w.escapeString("#", false))
		}
		for _, title := range view.Columns() {
			header = append(header, w.escapeString(title, false))
		}
		rows = append([][]string{header}, rows...)
	}

	var colWidths []int
	if w.padding != NoPadding {
		colWidths = simpletable.StringColumnWidths(rows, -1)
	}

	var rowBuf bytes.Buffer
	for _, row := range rows {
		rowBuf.Reset()
		for col, str := range row {
			if col > 0 {
				rowBuf.WriteRune(w.delimiter)
			}
			if colWidths != nil {
				str = pad(str, colWidths[col], w.padding)
			}
			rowBuf.WriteString(str)
		}
		rowBuf.WriteString(w.newLine)

		line := rowBuf.Bytes()
		if w.encoding != nil {
			line, err = w.encoding.Encode(line)
			if err != nil {
				return err
			}
		}
		if _, err = dest.Write(line); err != nil {
			return err
		}
	}
	return nil
}

// cellFormatter escapes the formatted cells
// and writes nil cells as nilValue.
func (w *Writer) cellFormatter() simpletable.CellFormatter {
	return simpletable.CellFormatterFunc(func(ctx context.Context, view simpletable.View, row, col int) (string, bool, error) {
		if view.Cell(row, col) == nil {
			return w.escapeString(w.nilValue, false), false, nil
		}
		str, raw, err := simpletable.TryFormattersOrDisplayString(w.formatter).FormatCell(ctx, view, row, col)
		if err != nil {
			return "", false, err
		}
		return w.escapeString(str, raw), false, nil
	})
}

func (w *Writer) escapeString(str string, isRaw bool) string {
	if isRaw {
		return str
	}
	str = strings.ReplaceAll(str, "\r", "")
	switch {
	case w.quoteAllFields || strings.ContainsRune(str, w.delimiter) || strings.ContainsAny(str, "\n\""):
		return `"` + strings.ReplaceAll(str, `"`, w.escapeQuotes) + `"`
	case w.quoteEmptyFields && str == "":
		return `""`
	}
	return str
}

func pad(str string, width int, padding Padding) string {
	total := width - utf8.RuneCountInString(str)
	if total <= 0 {
		return str
	}
	var left, right int
	switch padding {
	case AlignLeft:
		right = total
	case AlignRight:
		left = total
	case AlignCenter:
		left = total / 2
		right = (total + 1) / 2
	}
	return strings.Repeat(" ", left) + str + strings.Repeat(" ", right)
}

// WithHeaderRow returns a Writer that writes the column titles as first row.
func (w *Writer) WithHeaderRow(headerRow bool) *Writer {
	mod := w.clone()
	mod.headerRow = headerRow
	return mod
}

// WithNumberRows returns a Writer that prepends the row numbers.
func (w *Writer) WithNumberRows(numberRows bool) *Writer {
	mod := w.clone()
	mod.numberRows = numberRows
	return mod
}

// WithFormatter returns a Writer that formats cells with formatter
// falling back to simpletable.DisplayString for unsupported cells.
func (w *Writer) WithFormatter(formatter simpletable.CellFormatter) *Writer {
	mod := w.clone()
	mod.formatter = formatter
	return mod
}

func (w *Writer) WithPadding(padding Padding) *Writer {
	mod := w.clone()
	mod.padding = padding
	return mod
}

func (w *Writer) WithQuoteAllFields(quoteAllFields bool) *Writer {
	mod := w.clone()
	mod.quoteAllFields = quoteAllFields
	return mod
}

func (w *Writer) WithQuoteEmptyFields(quoteEmptyFields bool) *Writer {
	mod := w.clone()
	mod.quoteEmptyFields = quoteEmptyFields
	return mod
}

func (w *Writer) WithNilValue(nilValue string) *Writer {
	mod := w.clone()
	mod.nilValue = nilValue
	return mod
}

func (w *Writer) WithEscapeQuotes(escapeQuotes string) *Writer {
	mod := w.clone()
	mod.escapeQuotes = escapeQuotes
	return mod
}

func (w *Writer) WithDelimiter(delimiter rune) *Writer {
	mod := w.clone()
	mod.delimiter = delimiter
	return mod
}

func (w *Writer) WithNewLine(newLine string) *Writer {
	mod := w.clone()
	mod.newLine = newLine
	return mod
}

// WithFormat returns a Writer using the separator, newline
// and encoding of format.
func (w *Writer) WithFormat(format *Format) (*Writer, error) {
	if err := format.Validate(); err != nil {
		return nil, err
	}
	mod := w.clone()
	mod.delimiter = rune(format.Separator[0])
	mod.newLine = format.Newline
	mod.encoding = nil
	if format.Encoding != "UTF-8" {
		enc, err := charset.GetEncoding(format.Encoding)
		if err != nil {
			return nil, err
		}
		mod.encoding = enc
	}
	return mod, nil
}

func (w *Writer) Delimiter() rune      { return w.delimiter }
func (w *Writer) NewLine() string      { return w.newLine }
func (w *Writer) NilValue() string     { return w.nilValue }
func (w *Writer) EscapeQuotes() string { return w.escapeQuotes }
