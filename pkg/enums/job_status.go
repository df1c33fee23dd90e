package enums

import "fmt"

// JobStatus tracks the scheduling/fulfillment lifecycle of a job.
type JobStatus string

const (
	JobStatusDraft      JobStatus = "draft"
	JobStatusScheduled  JobStatus = "scheduled"
	JobStatusInProgress JobStatus = "in_progress"
	JobStatusOnHold     JobStatus = "on_hold"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusInvoiced   JobStatus = "invoiced"
	JobStatusCancelled  JobStatus = "cancelled"
)

var validJobStatuses = []JobStatus{
	JobStatusDraft,
	JobStatusScheduled,
	JobStatusInProgress,
	JobStatusOnHold,
	JobStatusCompleted,
	JobStatusInvoiced,
	JobStatusCancelled,
}

// String implements fmt.Stringer.
func (j JobStatus) String() string {
	return string(j)
}

// IsValid reports whether the value is known.
func (j JobStatus) IsValid() bool {
	for _, candidate := range validJobStatuses {
		if candidate == j {
			return true
		}
	}
	return false
}

// ParseJobStatus converts raw input into a JobStatus.
func ParseJobStatus(value string) (JobStatus, error) {
	for _, candidate := range validJobStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid job status %q", value)
}

// IsTerminal reports whether the job can no longer change status.
func (j JobStatus) IsTerminal() bool {
	return j == JobStatusInvoiced || j == JobStatusCancelled
}

// JobPriority orders jobs on the dispatch board.
type JobPriority string

const (
	JobPriorityLow    JobPriority = "low"
	JobPriorityMedium JobPriority = "medium"
	JobPriorityHigh   JobPriority = "high"
	JobPriorityUrgent JobPriority = "urgent"
)

var validJobPriorities = []JobPriority{
	JobPriorityLow,
	JobPriorityMedium,
	JobPriorityHigh,
	JobPriorityUrgent,
}

// String implements fmt.Stringer.
func (j JobPriority) String() string {
	return string(j)
}

// IsValid reports whether the value is known.
func (j JobPriority) IsValid() bool {
	for _, candidate := range validJobPriorities {
		if candidate == j {
			return true
		}
	}
	return false
}
