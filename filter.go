package simpletable

// Predicate reports if a row is visible.
// A nil Predicate shows all rows.
type Predicate func(Row) bool

// Filter returns the rows for which pred returns true
// in their original order.
// If pred is nil then rows is returned unchanged.
func Filter(rows []Row, pred Predicate) []Row {
	if pred == nil {
		return rows
	}
	filtered := make([]Row, 0, len(rows))
	for _, row := range rows {
		if pred(row) {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

// AllOf returns a Predicate that requires all non nil preds to pass.
// Without non nil preds the result is nil.
func AllOf(preds ...Predicate) Predicate {
	preds = nonNilPredicates(preds)
	switch len(preds) {
	case 0:
		return nil
	case 1:
		return preds[0]
	}
	return func(row Row) bool {
		for _, pred := range preds {
			if !pred(row) {
				return false
			}
		}
		return true
	}
}

// AnyOf returns a Predicate that requires at least one of the non nil preds to pass.
// Without non nil preds the result is nil.
func AnyOf(preds ...Predicate) Predicate {
	preds = nonNilPredicates(preds)
	switch len(preds) {
	case 0:
		return nil
	case 1:
		return preds[0]
	}
	return func(row Row) bool {
		for _, pred := range preds {
			if pred(row) {
				return true
			}
		}
		return false
	}
}

// Not negates pred. Not(nil) hides every row.
func Not(pred Predicate) Predicate {
	if pred == nil {
		return func(Row) bool { return false }
	}
	return func(row Row) bool { return !pred(row) }
}

func nonNilPredicates(preds []Predicate) []Predicate {
	result := make([]Predicate, 0, len(preds))
	for _, pred := range preds {
		if pred != nil {
			result = append(result, pred)
		}
	}
	return result
}
