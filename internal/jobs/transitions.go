package jobs

import "github.com/get-hunter/hero365-app-sub002/pkg/enums"

var allowedTransitions = map[enums.JobStatus][]enums.JobStatus{
	enums.JobStatusDraft:      {enums.JobStatusScheduled, enums.JobStatusCancelled},
	enums.JobStatusScheduled:  {enums.JobStatusInProgress, enums.JobStatusOnHold, enums.JobStatusCancelled},
	enums.JobStatusInProgress: {enums.JobStatusOnHold, enums.JobStatusCompleted, enums.JobStatusCancelled},
	enums.JobStatusOnHold:     {enums.JobStatusScheduled, enums.JobStatusInProgress, enums.JobStatusCancelled},
	enums.JobStatusCompleted:  {enums.JobStatusInvoiced},
}

// CanTransition reports whether a job may move from one status to another.
// Terminal statuses allow no further movement.
func CanTransition(from, to enums.JobStatus) bool {
	if from.IsTerminal() {
		return false
	}
	for _, candidate := range allowedTransitions[from] {
		if candidate == to {
			return true
		}
	}
	return false
}
