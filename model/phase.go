package model

// Phase is the trainer state.
type Phase string

const (
	PhaseWelcome  Phase = "welcome"
	PhaseRunning  Phase = "running"
	PhaseFeedback Phase = "feedback"
)

// Reason explains a failed Verdict.
type Reason string

const (
	ReasonWrongLength Reason = "wrongLength"
	ReasonTooEarly    Reason = "tooEarly"
	ReasonTooLate     Reason = "tooLate"
	ReasonHeldTooLong Reason = "heldTooLong"
)

// Verdict is produced by the comparator and only passed through.
type Verdict struct {
	Success   bool   `json:"success"`
	Reason    Reason `json:"reason,omitempty"`
	WrongBeat *int   `json:"wrongBeat,omitempty"`
}

// Wrong returns the index of the first wrong beat if the comparator set one.
func (v Verdict) Wrong() (int, bool) {
	if v.WrongBeat == nil {
		return 0, false
	}
	return *v.WrongBeat, true
}

// Fail builds a failed verdict pointing at beat index i.
func Fail(reason Reason, i int) Verdict {
	return Verdict{Reason: reason, WrongBeat: &i}
}
