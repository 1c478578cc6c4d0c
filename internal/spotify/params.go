package spotify

import (
	"fmt"
	"net/url"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"spotweb/internal/domain"
)

// SerializeParams encodes params as a query string in the comma format the
// Web API expects for list parameters: {"ids": ["a", "b"]} becomes ids=a%2Cb.
// Keys are emitted in sorted order. Empty lists are omitted and nil values,
// including nil pointers, produce an empty value ("key="). Values should be
// scalars or lists of scalars; anything else is formatted with fmt.Sprint.
func SerializeParams(params domain.Params) string {
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		value, ok := joinValue(params[key])
		if !ok {
			continue
		}
		pairs = append(pairs, escape(key)+"="+escape(value))
	}
	return strings.Join(pairs, "&")
}

// joinValue flattens a list value into a single comma-separated string.
// The boolean is false for empty lists, which are left out of the query.
func joinValue(value any) (string, bool) {
	if b, ok := value.([]byte); ok {
		return string(b), true
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return "", true
	}
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return formatScalar(value), true
	}
	if rv.Len() == 0 {
		return "", false
	}

	items := make([]string, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		items[i] = formatScalar(rv.Index(i).Interface())
	}
	return strings.Join(items, ","), true
}

func formatScalar(value any) string {
	if rv := reflect.ValueOf(value); rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return ""
		}
		if _, ok := value.(fmt.Stringer); !ok {
			return formatScalar(rv.Elem().Interface())
		}
	}

	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// escape percent-encodes everything outside the RFC 3986 unreserved set.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
