package payroll

const (
	StatusDraft      = "Draft"
	StatusActive     = "Active"
	StatusProcessing = "Processing"
	StatusCompleted  = "Completed"
	StatusClosed     = "Closed"
	StatusCancelled  = "Cancelled"
)

// allowedTransitions is the full lifecycle table. Self-transitions are
// listed explicitly; anything absent is rejected.
var allowedTransitions = map[string][]string{
	StatusDraft:      {StatusDraft, StatusActive, StatusCancelled},
	StatusActive:     {StatusActive, StatusProcessing, StatusClosed},
	StatusProcessing: {StatusProcessing, StatusCompleted},
	StatusCompleted:  {StatusCompleted, StatusClosed},
	StatusClosed:     {StatusClosed},
	StatusCancelled:  {StatusCancelled},
}

func ValidStatus(status string) bool {
	_, ok := allowedTransitions[status]
	return ok
}

func CanTransition(from, to string) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func AllowedTargets(from string) []string {
	targets := allowedTransitions[from]
	out := make([]string, len(targets))
	copy(out, targets)
	return out
}
