package leave

import "time"

// Date-range arithmetic over calendar dates. All functions are pure and
// expect dates normalized to midnight UTC, which is how parseDate and
// the repository hand them over.

// InclusiveDayCount returns the number of calendar days covered by the
// range, counting both endpoints. The caller validates start <= end.
func InclusiveDayCount(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}

// RangesOverlap reports whether two inclusive ranges share at least one
// day. Ranges touching on a single boundary day do overlap.
func RangesOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !(aEnd.Before(bStart) || bEnd.Before(aStart))
}

// YearWindow returns Jan 1 and Dec 31 of the given year.
func YearWindow(year int) (time.Time, time.Time) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	return start, end
}

// ClipToYear truncates a range to its intersection with the year window.
// Only meaningful when the range overlaps the year at all.
func ClipToYear(start, end time.Time, year int) (time.Time, time.Time) {
	yearStart, yearEnd := YearWindow(year)
	if start.Before(yearStart) {
		start = yearStart
	}
	if end.After(yearEnd) {
		end = yearEnd
	}
	return start, end
}
