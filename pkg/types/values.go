package types

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// Values is a field map: column name to new value, used for Insert and
// Update. A key mapped to nil is present but null.
type Values map[string]any

// Present reports whether key is set to a non-nil value.
func (v Values) Present(key string) bool {
	val, ok := v[key]
	return ok && val != nil
}

// AsString returns the value for key as a string. The boolean is false when
// the key is absent, null, or not convertible.
func (v Values) AsString(key string) (string, bool) {
	if !v.Present(key) {
		return "", false
	}
	s, err := cast.ToStringE(v[key])
	if err != nil {
		return "", false
	}
	return s, true
}

// AsFloat converts the value for key to float64. Numeric strings are
// accepted. Callers check Present first; an absent key converts to 0.
func (v Values) AsFloat(key string) (float64, error) {
	return cast.ToFloat64E(v[key])
}

// AsInt converts the value for key to int64 with ToInt64.
func (v Values) AsInt(key string) (int64, error) {
	return ToInt64(v[key])
}

// ToInt64 converts v to int64. Strings are read in base 10, so "010" is ten;
// a string with a zero fraction such as "6.0" is accepted too. Other values
// go through cast.
func ToInt64(v any) (int64, error) {
	s, ok := v.(string)
	if !ok {
		return cast.ToInt64E(v)
	}
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, fmt.Errorf("%q is not a whole number", s)
	}
	return int64(f), nil
}

// Keys returns the keys in sorted order so generated SQL is stable.
func (v Values) Keys() []string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
