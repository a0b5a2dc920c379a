package htmltable

import "html/template"

var (
	HeaderTemplate = template.Must(template.New("header").Parse(
		"<table{{if .TableClass}} class='{{.TableClass}}'{{end}}>\n" +
			"{{if .Caption}}  <caption>{{.Caption}}</caption>\n{{end}}",
	))

	ColumnHeaderTemplate = template.Must(template.New("columnHeader").Parse("" +
		"  <tr>{{range .Headers}}" +
		"<th{{if .Sorted}} aria-sort='{{if .Descending}}descending{{else}}ascending{{end}}'{{end}}>" +
		"{{.Label}}{{if .Sorted}} {{if .Descending}}&#9660;{{else}}&#9650;{{end}}{{end}}" +
		"</th>{{end}}</tr>\n",
	))

	RowTemplate = template.Must(template.New("row").Parse("" +
		"{{if .IsHeaderRow}}" +
		"  <tr>{{range $cell := .RawCells}}<th>{{$cell}}</th>{{end}}</tr>\n" +
		"{{else}}" +
		"  <tr>{{range $cell := .RawCells}}<td>{{$cell}}</td>{{end}}</tr>\n" +
		"{{end}}",
	))

	MessageTemplate = template.Must(template.New("message").Parse(
		"  <tr class='{{.Class}}'><td colspan='{{.ColSpan}}'>{{.Message}}</td></tr>\n",
	))

	FooterTemplate = template.Must(template.New("footer").Parse(
		"</table>\n",
	))

	PagerTemplate = template.Must(template.New("pager").Parse("" +
		"<nav class='pagination'>\n" +
		"  {{if .PreviousHref}}<a rel='prev' href='{{.PreviousHref}}'>Previous</a>{{else}}<span>Previous</span>{{end}}\n" +
		"  <span>{{.First}}-{{.Last}} of {{.Total}}</span>\n" +
		"  {{if .NextHref}}<a rel='next' href='{{.NextHref}}'>Next</a>{{else}}<span>Next</span>{{end}}\n" +
		"  <span>Rows per page:{{range .Sizes}} " +
		"{{if .Current}}<b>{{.Size}}</b>{{else if .Href}}<a href='{{.Href}}'>{{.Size}}</a>{{else}}<span>{{.Size}}</span>{{end}}" +
		"{{end}}</span>\n" +
		"</nav>\n",
	))
)

type TemplateContext struct {
	TableClass string
	Caption    string
}

type RowTemplateContext struct {
	TemplateContext

	IsHeaderRow bool
	RowIndex    int
	RawCells    []template.HTML
}

type ColumnHeader struct {
	Label      string
	Sorted     bool
	Descending bool
}

type ColumnHeaderTemplateContext struct {
	TemplateContext

	Headers []ColumnHeader
}

type MessageTemplateContext struct {
	TemplateContext

	// Class is "empty", "error" or "loading"
	Class   string
	ColSpan int
	Message string
}

type PageSizeLink struct {
	Size    int
	Current bool
	Href    string
}

type PagerTemplateContext struct {
	// First and Last are the 1-based numbers of the
	// first and last visible row, both 0 for an empty table.
	First, Last  int
	Total        int
	PreviousHref string
	NextHref     string
	Sizes        []PageSizeLink
}
