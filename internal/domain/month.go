package domain

import (
	"encoding/json"
	"slices"
	"time"
)

// Months lists the canonical month names in calendar order.
var Months = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// ParseMonth maps a canonical English month name to its time.Month.
// Anything else, including different casing, is not a month.
func ParseMonth(name string) (time.Month, bool) {
	for i, m := range Months {
		if m == name {
			return time.Month(i + 1), true
		}
	}
	return 0, false
}

// MonthSet is a de-duplicated set of months kept in calendar order.
type MonthSet []time.Month

// NewMonthSet builds a MonthSet, dropping out-of-range values.
func NewMonthSet(months ...time.Month) MonthSet {
	set := make(MonthSet, 0, len(months))
	for _, m := range months {
		if m < time.January || m > time.December {
			continue
		}
		if !slices.Contains(set, m) {
			set = append(set, m)
		}
	}
	slices.Sort(set)
	return set
}

// ParseMonthSet intersects names with the canonical month names.
// Unknown names are dropped silently.
func ParseMonthSet(names ...string) MonthSet {
	months := make([]time.Month, 0, len(names))
	for _, name := range names {
		if m, ok := ParseMonth(name); ok {
			months = append(months, m)
		}
	}
	return NewMonthSet(months...)
}

// Names returns the month names in calendar order.
func (s MonthSet) Names() []string {
	names := make([]string, len(s))
	for i, m := range s {
		names[i] = m.String()
	}
	return names
}

// Contains reports whether m is in the set
func (s MonthSet) Contains(m time.Month) bool {
	return slices.Contains(s, m)
}

func (s MonthSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Names())
}
