package enums

// CallDirection distinguishes inbound from outbound voice-agent calls.
type CallDirection string

const (
	CallDirectionInbound  CallDirection = "inbound"
	CallDirectionOutbound CallDirection = "outbound"
)

var validCallDirections = []CallDirection{
	CallDirectionInbound,
	CallDirectionOutbound,
}

// String implements fmt.Stringer.
func (c CallDirection) String() string {
	return string(c)
}

// IsValid reports whether the value is known.
func (c CallDirection) IsValid() bool {
	for _, candidate := range validCallDirections {
		if candidate == c {
			return true
		}
	}
	return false
}

// VoiceSessionStatus tracks a voice-agent session.
type VoiceSessionStatus string

const (
	VoiceSessionStatusInProgress VoiceSessionStatus = "in_progress"
	VoiceSessionStatusCompleted  VoiceSessionStatus = "completed"
	VoiceSessionStatusFailed     VoiceSessionStatus = "failed"
)

var validVoiceSessionStatuses = []VoiceSessionStatus{
	VoiceSessionStatusInProgress,
	VoiceSessionStatusCompleted,
	VoiceSessionStatusFailed,
}

// String implements fmt.Stringer.
func (v VoiceSessionStatus) String() string {
	return string(v)
}

// IsValid reports whether the value is known.
func (v VoiceSessionStatus) IsValid() bool {
	for _, candidate := range validVoiceSessionStatuses {
		if candidate == v {
			return true
		}
	}
	return false
}
