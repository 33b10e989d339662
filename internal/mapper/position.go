package mapper

import (
	"math"
	"strconv"
)

// PositionOf interprets a composite-identifier key as an index into a
// candidate set of length n. Form submissions deliver indexes as strings and
// JSON bodies as float64, so both are accepted alongside integer kinds.
func PositionOf(key Key, n int) (int, bool) {
	var idx int
	switch v := key.(type) {
	case int:
		idx = v
	case int32:
		idx = int(v)
	case int64:
		idx = int(v)
	case uint:
		idx = int(v)
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		idx = int(v)
	case string:
		i, err := strconv.Atoi(v)
		if err != nil {
			return 0, false
		}
		idx = i
	default:
		return 0, false
	}
	if idx < 0 || idx >= n {
		return 0, false
	}
	return idx, true
}
