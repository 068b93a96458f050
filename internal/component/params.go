package component

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Params carries the untyped arguments of an action request, typically
// decoded from JSON or parsed from command-line key=value pairs.
type Params map[string]any

// Number extracts a finite numeric parameter. Numeric Go kinds, json.Number
// and numeric strings are accepted; anything else reports false.
func (p Params) Number(key string) (float64, bool) {
	raw, ok := p[key]
	if !ok || raw == nil {
		return 0, false
	}

	var v float64
	switch n := raw.(type) {
	case float64:
		v = n
	case float32:
		v = float64(n)
	case int:
		v = float64(n)
	case int8:
		v = float64(n)
	case int16:
		v = float64(n)
	case int32:
		v = float64(n)
	case int64:
		v = float64(n)
	case uint:
		v = float64(n)
	case uint8:
		v = float64(n)
	case uint16:
		v = float64(n)
	case uint32:
		v = float64(n)
	case uint64:
		v = float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		v = f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		v = f
	default:
		return 0, false
	}

	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// Int extracts an integral numeric parameter. Fractional values report false.
func (p Params) Int(key string) (int, bool) {
	v, ok := p.Number(key)
	if !ok || v != math.Trunc(v) {
		return 0, false
	}
	if v > math.MaxInt32 || v < math.MinInt32 {
		return 0, false
	}
	return int(v), true
}
