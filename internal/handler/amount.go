package handler

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

var errInvalidAmount = errors.New("invalid amount type")

// Amount is the single parse-and-validate step for monetary values at the
// boundary. Clients send amounts sometimes as JSON numbers and sometimes
// as numeric strings; both decode to a finite float64 here, and anything
// else is rejected before it can reach the reconciler.
type Amount float64

func (a *Amount) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return errInvalidAmount
		}
		s = strings.TrimSpace(str)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return errInvalidAmount
	}
	*a = Amount(f)
	return nil
}

func (a *Amount) float() float64 {
	if a == nil {
		return 0
	}
	return float64(*a)
}
