package schedule

type UpdateScheduleStatusRequest struct {
	Status        string `json:"status" binding:"required"`
	FailureReason string `json:"failure_reason"`
}
