package entities

import "time"

const balanceDateLayout = "2006-01-02"

// BalancePoint is one day of coin balance history. Value is wei.
type BalancePoint struct {
	Date  string `json:"date"`
	Value string `json:"value"`
}

// Day parses the point's calendar date; false when missing or malformed.
func (p BalancePoint) Day() (time.Time, bool) {
	if p.Date == "" {
		return time.Time{}, false
	}
	d, err := time.Parse(balanceDateLayout, p.Date)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}
