package jobs

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/get-hunter/hero365-app-sub002/pkg/enums"
)

func TestCanTransitionHappyPath(t *testing.T) {
	path := []enums.JobStatus{
		enums.JobStatusDraft,
		enums.JobStatusScheduled,
		enums.JobStatusInProgress,
		enums.JobStatusCompleted,
		enums.JobStatusInvoiced,
	}
	for i := 0; i < len(path)-1; i++ {
		assert.True(t, CanTransition(path[i], path[i+1]), "expected %s -> %s to be allowed", path[i], path[i+1])
	}
}

func TestCanTransitionTerminalStatesAreFinal(t *testing.T) {
	for _, terminal := range []enums.JobStatus{enums.JobStatusInvoiced, enums.JobStatusCancelled} {
		for _, to := range []enums.JobStatus{
			enums.JobStatusDraft,
			enums.JobStatusScheduled,
			enums.JobStatusInProgress,
			enums.JobStatusCompleted,
		} {
			assert.False(t, CanTransition(terminal, to), "terminal status %s should not transition to %s", terminal, to)
		}
	}
}

func TestCanTransitionRejectsSkips(t *testing.T) {
	assert.False(t, CanTransition(enums.JobStatusDraft, enums.JobStatusCompleted))
	assert.False(t, CanTransition(enums.JobStatusDraft, enums.JobStatusInvoiced))
	assert.False(t, CanTransition(enums.JobStatusCompleted, enums.JobStatusInProgress))
}

func TestCanTransitionOnHoldResumes(t *testing.T) {
	assert.True(t, CanTransition(enums.JobStatusOnHold, enums.JobStatusInProgress))
	assert.True(t, CanTransition(enums.JobStatusOnHold, enums.JobStatusScheduled))
	assert.True(t, CanTransition(enums.JobStatusInProgress, enums.JobStatusCancelled))
}
