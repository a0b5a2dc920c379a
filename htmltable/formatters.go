package htmltable

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"

	simpletable "github.com/domonda/go-simpletable"
)

var (
	HTMLPreCellFormatter simpletable.CellFormatterFunc = func(ctx context.Context, view simpletable.View, row, col int) (str string, raw bool, err error) {
		value := template.HTMLEscapeString(simpletable.DisplayString(view.Cell(row, col)))
		return "<pre>" + value + "</pre>", true, nil
	}

	HTMLCodeCellFormatter simpletable.CellFormatterFunc = func(ctx context.Context, view simpletable.View, row, col int) (str string, raw bool, err error) {
		value := template.HTMLEscapeString(simpletable.DisplayString(view.Cell(row, col)))
		return "<code>" + value + "</code>", true, nil
	}

	// ValueAsHTMLAnchorCellFormatter returns an HTML anchor element
	// with the escaped display string of the cell as id and inner text.
	ValueAsHTMLAnchorCellFormatter simpletable.CellFormatterFunc = func(ctx context.Context, view simpletable.View, row, col int) (str string, raw bool, err error) {
		value := template.HTMLEscapeString(simpletable.DisplayString(view.Cell(row, col)))
		return fmt.Sprintf("<a id='%[1]s'>%[1]s</a>", value), true, nil
	}

	_ simpletable.CellFormatter = JSONCellFormatter("")
	_ simpletable.CellFormatter = HTMLSpanClassCellFormatter("")
)

// JSONCellFormatter formats JSON cell values within a pre element.
// The string value of JSONCellFormatter is used as indent,
// an empty indent compacts the JSON.
//
// Strings and byte slices are treated as JSON text,
// other values are marshalled as JSON.
// Nil and empty values result in an empty string.
type JSONCellFormatter string

func (indent JSONCellFormatter) FormatCell(ctx context.Context, view simpletable.View, row, col int) (str string, raw bool, err error) {
	var src []byte
	switch x := view.Cell(row, col).(type) {
	case nil:
		return "", false, nil
	case string:
		src = []byte(x)
	case []byte:
		src = x
	case json.RawMessage:
		src = x
	default:
		src, err = json.Marshal(x)
		if err != nil {
			return "", false, err
		}
	}
	if len(bytes.TrimSpace(src)) == 0 {
		return "", false, nil
	}

	buf := bytes.NewBufferString("<pre>")
	if indent == "" {
		err = json.Compact(buf, src)
	} else {
		err = json.Indent(buf, src, "", string(indent))
	}
	if err != nil {
		return "", false, err
	}
	buf.WriteString("</pre>")
	return buf.String(), true, nil
}

// HTMLSpanClassCellFormatter formats the cell value within an HTML span element
// with the class of the underlying string value.
type HTMLSpanClassCellFormatter string

func (class HTMLSpanClassCellFormatter) FormatCell(ctx context.Context, view simpletable.View, row, col int) (str string, raw bool, err error) {
	text := template.HTMLEscapeString(simpletable.DisplayString(view.Cell(row, col)))
	return fmt.Sprintf("<span class='%s'>%s</span>", template.HTMLEscapeString(string(class)), text), true, nil
}
