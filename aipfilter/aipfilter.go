// Package aipfilter compiles AIP-160 filter expressions
// like `namespace = "default" AND restarts > 2`
// into predicates over table rows.
//
// See https://google.aip.dev/160 for the filter syntax.
package aipfilter

import (
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"go.einride.tech/aip/filtering"
	expr "google.golang.org/genproto/googleapis/api/expr/v1alpha1"

	simpletable "github.com/domonda/go-simpletable"
)

// ErrInvalidFilter is wrapped by all errors
// returned for filters that can't be compiled.
var ErrInvalidFilter = errors.New("invalid filter")

// FieldType is the declared type of a row field.
type FieldType int

const (
	FieldString FieldType = iota
	FieldInt
	FieldFloat
	FieldBool
)

func (t FieldType) String() string {
	switch t {
	case FieldString:
		return "string"
	case FieldInt:
		return "int"
	case FieldFloat:
		return "float"
	case FieldBool:
		return "bool"
	default:
		return "FieldType(" + strconv.Itoa(int(t)) + ")"
	}
}

// ParseFieldType parses the names returned by FieldType.String.
func ParseFieldType(s string) (FieldType, error) {
	switch strings.ToLower(s) {
	case "string", "text":
		return FieldString, nil
	case "int", "integer":
		return FieldInt, nil
	case "float", "double", "number":
		return FieldFloat, nil
	case "bool", "boolean":
		return FieldBool, nil
	}
	return 0, fmt.Errorf("unknown field type %q", s)
}

func (t FieldType) declaration() *expr.Type {
	switch t {
	case FieldInt:
		return filtering.TypeInt
	case FieldFloat:
		return filtering.TypeFloat
	case FieldBool:
		return filtering.TypeBool
	default:
		return filtering.TypeString
	}
}

// Fields maps the row keys that can be used
// as identifiers in a filter to their types.
type Fields map[string]FieldType

// InferFields returns the Fields for keys using the values of rows.
// A key is FieldInt or FieldFloat if all its non nil values are numbers
// or strings of numbers, FieldBool if all are bools, else FieldString.
func InferFields(rows []simpletable.Row, keys ...string) Fields {
	fields := make(Fields, len(keys))
	for _, key := range keys {
		fields[key] = inferFieldType(rows, key)
	}
	return fields
}

func inferFieldType(rows []simpletable.Row, key string) FieldType {
	seen := false
	allInt, allFloat, allBool := true, true, true
	for _, row := range rows {
		switch v := row.Field(key).(type) {
		case nil:
			continue
		case bool:
			allInt, allFloat = false, false
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
			allBool = false
		case float32, float64:
			allInt, allBool = false, false
		default:
			// Includes string types like json.Number
			rv := reflect.ValueOf(v)
			if rv.Kind() != reflect.String {
				allInt, allFloat, allBool = false, false, false
				break
			}
			allBool = false
			if _, err := strconv.ParseInt(rv.String(), 10, 64); err != nil {
				allInt = false
			}
			if _, err := strconv.ParseFloat(rv.String(), 64); err != nil {
				allFloat = false
			}
		}
		seen = true
	}
	switch {
	case !seen:
		return FieldString
	case allBool:
		return FieldBool
	case allInt:
		return FieldInt
	case allFloat:
		return FieldFloat
	default:
		return FieldString
	}
}

func declarations(fields Fields) (*filtering.Declarations, error) {
	opts := []filtering.DeclarationOption{filtering.DeclareStandardFunctions()}
	for _, name := range slices.Sorted(maps.Keys(fields)) {
		opts = append(opts, filtering.DeclareIdent(name, fields[name].declaration()))
	}
	return filtering.NewDeclarations(opts...)
}

// Compile parses filter and returns a predicate evaluating it
// against rows. Identifiers must be declared in fields.
// An empty filter returns a nil predicate matching all rows.
func Compile(filter string, fields Fields) (simpletable.Predicate, error) {
	if strings.TrimSpace(filter) == "" {
		return nil, nil
	}
	decls, err := declarations(fields)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFilter, err)
	}
	parsed, err := filtering.ParseFilterString(filter, decls)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFilter, err)
	}
	if parsed.CheckedExpr == nil || parsed.CheckedExpr.Expr == nil {
		return nil, nil
	}
	pred, err := compileExpr(parsed.CheckedExpr.Expr)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrInvalidFilter, filter, err)
	}
	return pred, nil
}

func compileExpr(e *expr.Expr) (simpletable.Predicate, error) {
	switch kind := e.ExprKind.(type) {
	case *expr.Expr_CallExpr:
		return compileCall(kind.CallExpr)
	case *expr.Expr_IdentExpr:
		// A bare bool identifier like `ready`
		name := kind.IdentExpr.Name
		return func(row simpletable.Row) bool {
			return simpletable.CompareValues(row.Field(name), true) == 0
		}, nil
	default:
		return nil, fmt.Errorf("unsupported expression %T", e.ExprKind)
	}
}

func compileCall(call *expr.Expr_Call) (simpletable.Predicate, error) {
	switch call.Function {
	case "AND", "FUZZY", "_&&_":
		preds, err := compileArgs(call.Args)
		if err != nil {
			return nil, err
		}
		return simpletable.AllOf(preds...), nil

	case "OR", "_||_":
		preds, err := compileArgs(call.Args)
		if err != nil {
			return nil, err
		}
		return simpletable.AnyOf(preds...), nil

	case "NOT", "-":
		if len(call.Args) != 1 {
			return nil, fmt.Errorf("%s expects 1 argument, got %d", call.Function, len(call.Args))
		}
		pred, err := compileExpr(call.Args[0])
		if err != nil {
			return nil, err
		}
		return simpletable.Not(pred), nil

	case "=", "!=", "<", "<=", ">", ">=", ":":
		return compileComparison(call)

	default:
		return nil, fmt.Errorf("unsupported function %q", call.Function)
	}
}

func compileArgs(args []*expr.Expr) ([]simpletable.Predicate, error) {
	preds := make([]simpletable.Predicate, len(args))
	for i, arg := range args {
		pred, err := compileExpr(arg)
		if err != nil {
			return nil, err
		}
		preds[i] = pred
	}
	return preds, nil
}

func compileComparison(call *expr.Expr_Call) (simpletable.Predicate, error) {
	if len(call.Args) != 2 {
		return nil, fmt.Errorf("%s expects 2 arguments, got %d", call.Function, len(call.Args))
	}
	ident, ok := call.Args[0].ExprKind.(*expr.Expr_IdentExpr)
	if !ok {
		return nil, fmt.Errorf("left side of %s must be a field", call.Function)
	}
	constant, ok := call.Args[1].ExprKind.(*expr.Expr_ConstExpr)
	if !ok {
		return nil, fmt.Errorf("right side of %s must be a value", call.Function)
	}
	name := ident.IdentExpr.Name
	value, err := constantValue(constant.ConstExpr)
	if err != nil {
		return nil, err
	}

	if text, isText := value.(string); isText {
		switch call.Function {
		case "=":
			return func(row simpletable.Row) bool {
				return matchWildcard(row.Field(name), text)
			}, nil
		case "!=":
			return func(row simpletable.Row) bool {
				v := row.Field(name)
				return v == nil || !matchWildcard(v, text)
			}, nil
		case ":":
			text = strings.ToLower(text)
			return func(row simpletable.Row) bool {
				v := row.Field(name)
				return v != nil && strings.Contains(strings.ToLower(simpletable.DisplayString(v)), text)
			}, nil
		}
	}

	var accept func(cmp int) bool
	switch call.Function {
	case "=", ":":
		accept = func(cmp int) bool { return cmp == 0 }
	case "!=":
		accept = func(cmp int) bool { return cmp != 0 }
	case "<":
		accept = func(cmp int) bool { return cmp < 0 }
	case "<=":
		accept = func(cmp int) bool { return cmp <= 0 }
	case ">":
		accept = func(cmp int) bool { return cmp > 0 }
	case ">=":
		accept = func(cmp int) bool { return cmp >= 0 }
	}
	return func(row simpletable.Row) bool {
		v := row.Field(name)
		if v == nil {
			// Missing values only satisfy inequality
			return call.Function == "!="
		}
		return accept(simpletable.CompareValues(v, value))
	}, nil
}

func constantValue(c *expr.Constant) (any, error) {
	switch kind := c.ConstantKind.(type) {
	case *expr.Constant_StringValue:
		return kind.StringValue, nil
	case *expr.Constant_Int64Value:
		return kind.Int64Value, nil
	case *expr.Constant_Uint64Value:
		return kind.Uint64Value, nil
	case *expr.Constant_DoubleValue:
		return kind.DoubleValue, nil
	case *expr.Constant_BoolValue:
		return kind.BoolValue, nil
	default:
		return nil, fmt.Errorf("unsupported constant %T", c.ConstantKind)
	}
}

// matchWildcard compares the display string of value with pattern.
// A leading or trailing "*" of pattern matches any suffix or prefix.
func matchWildcard(value any, pattern string) bool {
	if value == nil {
		return false
	}
	s := simpletable.DisplayString(value)
	prefix := strings.HasSuffix(pattern, "*")
	suffix := strings.HasPrefix(pattern, "*")
	pattern = strings.TrimSuffix(strings.TrimPrefix(pattern, "*"), "*")
	switch {
	case prefix && suffix:
		return strings.Contains(s, pattern)
	case prefix:
		return strings.HasPrefix(s, pattern)
	case suffix:
		return strings.HasSuffix(s, pattern)
	default:
		return s == pattern
	}
}
