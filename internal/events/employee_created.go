package events

import "time"

const EmployeeCreatedTopic = "leave.employee.lifecycle.v1"

type EmployeeCreatedEvent struct {
	EventType   string    `json:"event_type"`
	RequestID   string    `json:"request_id,omitempty"`
	EmployeeID  string    `json:"employee_id"`
	Email       string    `json:"email"`
	Department  string    `json:"department"`
	JoiningDate string    `json:"joining_date"`
	OccurredAt  time.Time `json:"occurred_at"`
}
