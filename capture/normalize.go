package capture

import (
	"time"

	"github.com/jsphweid/rhythmdex/model"
)

// Normalize cleans up a history in place once, when its round closes:
// an early first press is moved to zero and an unreleased last beat is
// released at closedAt.
func Normalize(h model.BeatHistory, closedAt time.Duration) {
	if len(h) == 0 {
		return
	}
	if h[0].Press < 0 {
		h[0].Press = 0
	}
	if h.Pending() {
		h[len(h)-1].Release = closedAt
		h[len(h)-1].Released = true
	}
}
