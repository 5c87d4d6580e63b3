package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseInput     Phase = iota // 0: pointer sample -> gestures
	PhaseCommand                // 1: camera, build tool, place/delete requests
	PhaseIndex                  // 2: rebuild the tile index
	PhaseInteract               // 3: click spawn, hover pickup
	PhaseMachine                // 4: machine action timers and rules
	PhaseLifecycle              // 5: pickups armed, coin timers, payouts
	PhaseCleanup                // 6: destroy queued entities, drop events

	phaseCount
)

var phaseNames = [...]string{"input", "command", "index", "interact", "machine", "lifecycle", "cleanup"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// System is the interface every tick-phase system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
