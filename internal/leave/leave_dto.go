package leave

type SubmitLeaveRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	StartDate  string `json:"start_date" binding:"required"`
	EndDate    string `json:"end_date" binding:"required"`
	Reason     string `json:"reason"`
}

type DecideLeaveRequest struct {
	Decision string `json:"decision" binding:"required,oneof=APPROVE REJECT"`
}

type LeaveResponse struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name,omitempty"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	TotalDays    int    `json:"total_days"`
	Reason       string `json:"reason,omitempty"`
	Status       string `json:"status"`
	CreatedAt    string `json:"created_at"`
}

// BalanceResponse is the display shape of a YearlyBalance. Remaining is
// clamped at zero here and only here; internal checks use the unclamped
// figure.
type BalanceResponse struct {
	EmployeeID     string `json:"employee_id"`
	Year           int    `json:"year"`
	TotalAllowance int    `json:"total_allowance"`
	ApprovedUsed   int    `json:"approved_used"`
	Pending        int    `json:"pending"`
	Remaining      int    `json:"remaining"`
}
