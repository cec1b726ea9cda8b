package leave

import "time"

// AnnualAllowance is the fixed yearly leave entitlement in days, per
// employee per calendar year. Not prorated by joining date.
const AnnualAllowance = 30

// YearlyBalance is the derived per-year accounting for one employee.
// It is computed on demand and never persisted.
type YearlyBalance struct {
	ApprovedDays int
	PendingDays  int
}

// Remaining is the unclamped allowance left after approved days. Checks
// must use this value so an already over-allocated employee stays
// blocked; only display layers clamp it at zero.
func (b YearlyBalance) Remaining() int {
	return AnnualAllowance - b.ApprovedDays
}

// ComputeYearlyBalance sums, per status, the day-overlap of each request
// with the given calendar year. Requests straddling a year boundary are
// clipped to the year window so no day is counted twice across years.
// REJECTED requests never contribute.
func ComputeYearlyBalance(requests []LeaveRequest, year int) YearlyBalance {
	yearStart, yearEnd := YearWindow(year)

	var bal YearlyBalance
	for _, lr := range requests {
		if !RangesOverlap(lr.StartDate, lr.EndDate, yearStart, yearEnd) {
			continue
		}
		start, end := ClipToYear(lr.StartDate, lr.EndDate, year)
		days := InclusiveDayCount(start, end)

		switch lr.Status {
		case StatusApproved:
			bal.ApprovedDays += days
		case StatusPending:
			bal.PendingDays += days
		}
	}
	return bal
}

// FindOverlapping returns the first non-rejected request whose range
// overlaps [start, end], or nil. Pending requests conflict too; this is
// deliberately conservative, two pending requests for the same days are
// rejected up front rather than raced at approval time.
func FindOverlapping(requests []LeaveRequest, start, end time.Time) *LeaveRequest {
	for i := range requests {
		lr := &requests[i]
		if lr.Status == StatusRejected {
			continue
		}
		if RangesOverlap(lr.StartDate, lr.EndDate, start, end) {
			return lr
		}
	}
	return nil
}
