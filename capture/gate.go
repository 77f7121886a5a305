package capture

import "github.com/jsphweid/rhythmdex/model"

// Gate is the two-state trigger flag shared by the idle and running phases.
// It remembers the type of the last signal that was let through so that a
// held key or platform auto-repeat cannot produce two presses in a row.
type Gate struct {
	last model.Signal
}

// Last is the most recent accepted signal type.
func (g *Gate) Last() model.Signal { return g.last }

// Pass is used while running. It rejects a signal of the same type as the
// previous one and otherwise records it.
func (g *Gate) Pass(s model.Signal) bool {
	if s == g.last {
		return false
	}
	g.last = s
	return true
}

// Arm is used outside the running phase and reports whether s should start
// a round. A release that belongs to a press made during the previous round
// only resets the flag.
func (g *Gate) Arm(s model.Signal) bool {
	if g.last == model.Press && s == model.Release {
		g.last = model.Release
		return false
	}
	return s == model.Release
}
