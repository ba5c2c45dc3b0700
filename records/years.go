package records

import (
	"sort"
	"time"
)

// dayOf reduces a time to its calendar date at UTC midnight, matching how
// record date fields parse. Day-granularity comparisons must go through this
// so the server zone cannot shift a date across a day boundary.
func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// YearMonth is one period that has at least one published record.
type YearMonth struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// YearMonths derives the available periods from an already-filtered listing.
// Records dated after today are excluded, compared at day granularity, so a
// pre-registered future record never announces a period early. The result is
// sorted newest-first.
func YearMonths(items []Item, now time.Time) []YearMonth {
	today := dayOf(now)

	seen := make(map[YearMonth]struct{})
	periods := make([]YearMonth, 0)
	for _, it := range items {
		d := it.SortKey()
		if d.After(today) {
			continue
		}
		ym := YearMonth{Year: d.Year(), Month: int(d.Month())}
		if _, ok := seen[ym]; ok {
			continue
		}
		seen[ym] = struct{}{}
		periods = append(periods, ym)
	}

	sort.Slice(periods, func(i, j int) bool {
		if periods[i].Year != periods[j].Year {
			return periods[i].Year > periods[j].Year
		}
		return periods[i].Month > periods[j].Month
	})
	return periods
}
