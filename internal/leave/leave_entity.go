package leave

import (
	"fmt"
	"time"

	"github.com/ribukumar49/leave-management-mini/internal/employee"

	"github.com/google/uuid"
)

// Status is the closed set of leave request states. Handlers and
// repositories never pass raw strings around; ParseStatus is the only
// place a string widens into a Status.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusApproved, StatusRejected:
		return Status(s), nil
	default:
		return "", fmt.Errorf("invalid leave status: %q", s)
	}
}

// IsTerminal reports whether no further transition is permitted.
func (s Status) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// Decision is the external input that moves a PENDING request to a
// terminal state.
type Decision string

const (
	DecisionApprove Decision = "APPROVE"
	DecisionReject  Decision = "REJECT"
)

func ParseDecision(s string) (Decision, error) {
	switch Decision(s) {
	case DecisionApprove, DecisionReject:
		return Decision(s), nil
	default:
		return "", fmt.Errorf("invalid decision: %q", s)
	}
}

type LeaveRequest struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_employee;uniqueIndex:uq_leave_emp_range"`

	// Inclusive calendar range, date columns at midnight UTC. The
	// composite unique index enforces duplicate-range uniqueness per
	// employee at the storage level.
	StartDate time.Time `gorm:"type:date;not null;uniqueIndex:uq_leave_emp_range"`
	EndDate   time.Time `gorm:"type:date;not null;uniqueIndex:uq_leave_emp_range"`

	Reason string `gorm:"type:text"`
	Status Status `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_leave_requests_status"`

	Employee *employee.Employee `gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
