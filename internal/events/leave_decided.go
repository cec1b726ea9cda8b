package events

import "time"

const LeaveDecidedTopic = "leave.request.lifecycle.v1"

// LeaveDecidedEvent is emitted through the outbox when a pending leave
// request reaches a terminal state.
type LeaveDecidedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	LeaveID    string    `json:"leave_id"`
	EmployeeID string    `json:"employee_id"`
	StartDate  string    `json:"start_date"`
	EndDate    string    `json:"end_date"`
	TotalDays  int       `json:"total_days"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}
