package prescription

import (
	"fmt"
	"time"
)

// DateFilter narrows a listing to a date range or a single day. At most
// one of (Start/End, Exact) is populated; an empty filter matches every
// row.
type DateFilter struct {
	Start *Date // inclusive lower bound
	End   *Date // inclusive upper bound
	Exact *Date // equality match
}

func (f DateFilter) IsEmpty() bool {
	return f.Start == nil && f.End == nil && f.Exact == nil
}

// ParseDateFilter resolves the four listing query parameters into a
// single filter. Precedence, first match wins:
//
//	month            -> closed range covering that calendar month
//	startDate+endDate -> closed range
//	startDate        -> lower bound only
//	endDate          -> upper bound only
//	date             -> equality
//	(none)           -> empty filter
//
// A malformed value in the winning parameter is an error; parameters
// shadowed by a higher-precedence one are not validated.
func ParseDateFilter(startDate, endDate, month, date string) (DateFilter, error) {
	switch {
	case month != "":
		m, err := time.Parse("2006-01", month)
		if err != nil {
			return DateFilter{}, fmt.Errorf("invalid month %q: expected YYYY-MM", month)
		}
		first := NewDate(m.Year(), m.Month(), 1)
		// Day 0 of the next month normalizes to the last day of this
		// one, which handles 28/29/30/31-day months uniformly.
		last := NewDate(m.Year(), m.Month()+1, 0)
		return DateFilter{Start: &first, End: &last}, nil

	case startDate != "" && endDate != "":
		start, err := ParseDate(startDate)
		if err != nil {
			return DateFilter{}, err
		}
		end, err := ParseDate(endDate)
		if err != nil {
			return DateFilter{}, err
		}
		return DateFilter{Start: &start, End: &end}, nil

	case startDate != "":
		start, err := ParseDate(startDate)
		if err != nil {
			return DateFilter{}, err
		}
		return DateFilter{Start: &start}, nil

	case endDate != "":
		end, err := ParseDate(endDate)
		if err != nil {
			return DateFilter{}, err
		}
		return DateFilter{End: &end}, nil

	case date != "":
		exact, err := ParseDate(date)
		if err != nil {
			return DateFilter{}, err
		}
		return DateFilter{Exact: &exact}, nil
	}
	return DateFilter{}, nil
}

// Matches reports whether d satisfies the filter.
func (f DateFilter) Matches(d Date) bool {
	if f.Exact != nil {
		return d.Equal(*f.Exact)
	}
	if f.Start != nil && d.Before(*f.Start) {
		return false
	}
	if f.End != nil && f.End.Before(d) {
		return false
	}
	return true
}
