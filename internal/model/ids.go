package model

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// IDList is a list of item ids that decodes from any JSON value without failing.
// Integral numbers are kept, so 7, 7.0 and 7e0 all mean id 7. Other elements
// cannot name an item and are skipped. A value that is not an array decodes as
// an empty list.
type IDList []int64

func (l *IDList) UnmarshalJSON(b []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		*l = IDList{}
		return nil
	}
	if raw == nil {
		*l = nil
		return nil
	}
	ids := make(IDList, 0, len(raw))
	for _, r := range raw {
		if id, ok := integralID(r); ok {
			ids = append(ids, id)
		}
	}
	*l = ids
	return nil
}

func integralID(r json.RawMessage) (int64, bool) {
	r = bytes.TrimSpace(r)
	if len(r) == 0 || (r[0] != '-' && (r[0] < '0' || r[0] > '9')) {
		return 0, false
	}
	s := string(r)
	if id, err := strconv.ParseInt(s, 10, 64); err == nil {
		return id, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) {
		return 0, false
	}
	// 2^63 is exact as a float64; anything at or past it does not fit.
	if f < math.MinInt64 || f >= -math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}
