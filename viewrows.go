package simpletable

import "strconv"

// ViewRows converts the cells of a View into rows
// keyed by column title together with matching Datum columns.
//
// Empty column titles are replaced by "Column N"
// with N being the 1-based column number,
// repeated titles get the suffix " (N)"
// so that every column has its own key.
func ViewRows(view View) ([]Row, Columns) {
	titles := view.Columns()
	keys := make([]string, len(titles))
	seen := make(map[string]bool, len(titles))
	for i, title := range titles {
		key := title
		if key == "" {
			key = "Column " + strconv.Itoa(i+1)
		}
		base := key
		for n := 2; seen[key]; n++ {
			key = base + " (" + strconv.Itoa(n) + ")"
		}
		seen[key] = true
		keys[i] = key
	}

	rows := make([]Row, view.NumRows())
	for r := range rows {
		row := make(Row, len(keys))
		for c, key := range keys {
			row[key] = view.Cell(r, c)
		}
		rows[r] = row
	}
	return rows, DatumColumns(keys...)
}
