package events

import "time"

const PayrollProcessedTopic = "payroll.run.processed.v1"

// PayrollProcessedEvent is published after a payroll run has been fully
// calculated and persisted. Consumers use it to generate payslip documents
// out of band.
type PayrollProcessedEvent struct {
	EventType     string    `json:"event_type"`
	PayrollID     string    `json:"payroll_id"`
	PeriodStart   time.Time `json:"period_start"`
	PeriodEnd     time.Time `json:"period_end"`
	EmployeeCount int       `json:"employee_count"`
	ProcessedBy   string    `json:"processed_by"`
	OccurredAt    time.Time `json:"occurred_at"`
}
