package events

import "time"

const SalaryConfigActivatedTopic = "payroll.salary_config.activated.v1"

type SalaryConfigActivatedEvent struct {
	EventType   string    `json:"event_type"`
	ConfigID    string    `json:"config_id"`
	ActivatedBy string    `json:"activated_by"`
	OccurredAt  time.Time `json:"occurred_at"`
}
