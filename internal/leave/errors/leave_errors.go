package leaveerrors

import (
	"fmt"
	"net/http"

	"github.com/ribukumar49/leave-management-mini/internal/shared/apperror"
)

var (
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must be before or equal end_date",
		http.StatusBadRequest,
	)
	ErrBeforeJoiningDate = apperror.New(
		apperror.CodeInvalidInput,
		"leave cannot start before the employee's joining date",
		http.StatusBadRequest,
	)
	ErrLeaveOverlap = apperror.New(
		apperror.CodeConflict,
		"an overlapping leave request already exists",
		http.StatusConflict,
	)
	ErrDuplicateRange = apperror.New(
		apperror.CodeConflict,
		"a leave request with the identical date range already exists",
		http.StatusConflict,
	)
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave request not found",
		http.StatusNotFound,
	)
	ErrAlreadyDecided = apperror.New(
		apperror.CodeInvalidState,
		"leave request has already been decided",
		http.StatusBadRequest,
	)
	ErrInvalidDecision = apperror.New(
		apperror.CodeInvalidInput,
		"decision must be APPROVE or REJECT",
		http.StatusBadRequest,
	)
	ErrInvalidStatusFilter = apperror.New(
		apperror.CodeInvalidInput,
		"invalid status filter",
		http.StatusBadRequest,
	)
)

// ErrInsufficientBalance carries the numeric remaining allowance both in
// the message and as structured details, so boundary layers never parse
// it out of a string.
func ErrInsufficientBalance(remaining int) *apperror.AppError {
	return apperror.New(
		apperror.CodeConflict,
		fmt.Sprintf("insufficient leave balance, remaining: %d days", remaining),
		http.StatusConflict,
	).WithDetails(map[string]int{"remaining": remaining})
}
