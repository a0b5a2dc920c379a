package simpletable

import (
	"math"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Comparer defines the total order used to sort resolved cell values.
type Comparer interface {
	// Compare returns a negative number if a sorts before b,
	// a positive number if a sorts after b and zero if both are equal.
	Compare(a, b any) int
}

// CompareFunc implements Comparer for a function.
type CompareFunc func(a, b any) int

func (f CompareFunc) Compare(a, b any) int { return f(a, b) }

// DefaultComparer compares with CompareValues.
var DefaultComparer Comparer = CompareFunc(CompareValues)

// CompareValues implements the default total order of resolved values:
// nil values sort first, followed by numeric values, followed by text.
//
// Values of Go integer and float kinds as well as strings
// that parse as finite float64 numbers are numeric
// and compare numerically.
// All other values compare as case-sensitive text
// using their DisplayString.
func CompareValues(a, b any) int {
	return compareRanked(a, b, strings.Compare)
}

// CaseInsensitive returns a Comparer like CompareValues
// that compares text after Unicode case folding.
func CaseInsensitive() Comparer {
	c := &foldComparer{caser: cases.Fold()}
	return CompareFunc(func(a, b any) int {
		return compareRanked(a, b, c.compare)
	})
}

type foldComparer struct {
	mtx   sync.Mutex
	caser cases.Caser
}

func (c *foldComparer) compare(a, b string) int {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	return strings.Compare(c.caser.String(a), c.caser.String(b))
}

// Collated returns a Comparer like CompareValues
// that compares text with the collation rules of the language tag.
func Collated(tag language.Tag, options ...collate.Option) Comparer {
	c := &collateComparer{collator: collate.New(tag, options...)}
	return CompareFunc(func(a, b any) int {
		return compareRanked(a, b, c.compare)
	})
}

type collateComparer struct {
	mtx      sync.Mutex
	collator *collate.Collator
}

func (c *collateComparer) compare(a, b string) int {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	return c.collator.CompareString(a, b)
}

const (
	rankNil = iota
	rankNumber
	rankText
)

func compareRanked(a, b any, compareText func(a, b string) int) int {
	rankA, numA := rankValue(a)
	rankB, numB := rankValue(b)
	switch {
	case rankA < rankB:
		return -1
	case rankA > rankB:
		return 1
	}
	switch rankA {
	case rankNumber:
		switch {
		case numA < numB:
			return -1
		case numA > numB:
			return 1
		}
		return 0
	case rankText:
		return compareText(DisplayString(a), DisplayString(b))
	}
	return 0
}

func rankValue(value any) (rank int, number float64) {
	v := reflect.ValueOf(value)
	if ValueIsNil(v) {
		return rankNil, 0
	}
	for v.Kind() == reflect.Ptr {
		v = v.Elem()
		if ValueIsNil(v) {
			return rankNil, 0
		}
	}
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rankNumber, float64(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rankNumber, float64(v.Uint())
	case reflect.Float32, reflect.Float64:
		f := v.Float()
		if math.IsNaN(f) {
			return rankText, 0
		}
		return rankNumber, f
	case reflect.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.String()), 64)
		if err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
			return rankNumber, f
		}
	}
	return rankText, 0
}
