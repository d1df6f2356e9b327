package statusengine

import "strconv"

// coerceBool implements the spec's bool coercion rule: bool literal,
// nonzero number, or a recognized string literal; anything else falls
// back to def.
func coerceBool(v interface{}, def bool) bool {
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		switch t {
		case "true", "TRUE", "1":
			return true
		case "false", "FALSE", "0":
			return false
		default:
			return def
		}
	default:
		return def
	}
}

// coerceInt implements the spec's int coercion rule: an integer, or a
// parseable decimal string. Missing/uncoercible values are nil.
func coerceInt(v interface{}) *int {
	switch t := v.(type) {
	case float64:
		n := int(t)
		return &n
	case string:
		if n, err := strconv.Atoi(t); err == nil {
			return &n
		}
		if f, err := strconv.ParseFloat(t, 64); err == nil {
			n := int(f)
			return &n
		}
		return nil
	default:
		return nil
	}
}

// coerceStr implements the spec's string coercion: the JSON string value
// verbatim, else def.
func coerceStr(v interface{}, def string) string {
	if s, ok := v.(string); ok {
		return s
	}
	return def
}
