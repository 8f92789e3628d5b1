package sim

// StateMonitor records one patient's trajectory summary: the current state,
// the time of absorption into the terminal state, and the time of first
// entry into the event state. Each monitor is owned exclusively by its
// patient; nothing else writes to it.
//
// Times are in cycle units with a half-cycle correction: a transition
// observed at integer step k is recorded at k + 0.5, the midpoint of the
// interval in which it happened. The +0.5 is part of the model's definition
// and must survive any refactor.
type StateMonitor struct {
	terminal int
	event    int

	current         int
	survivalTime    float64
	survivalTimeSet bool
	timeToEvent     float64
	timeToEventSet  bool
	developedEvent  bool
}

// NewStateMonitor creates a monitor starting in the model's initial state.
func NewStateMonitor(model *Model) *StateMonitor {
	return &StateMonitor{
		terminal: model.Terminal,
		event:    model.Event,
		current:  model.Initial,
	}
}

// Update applies one observed transition at time step `step`, in this order:
//
//  1. If the patient is already in the terminal state the call is a no-op.
//     An absorbed trajectory is frozen; late updates are not an error.
//  2. A transition into the terminal state sets survivalTime to step + 0.5.
//  3. A first transition into the event state (from a non-event state, and
//     only if the event was never recorded before) sets developedEvent and
//     timeToEvent to step + 0.5. Re-entries never overwrite the record.
//  4. The current state becomes newState.
//
// Both recorded times are set at most once over a monitor's lifetime.
func (sm *StateMonitor) Update(step int, newState int) {
	if sm.current == sm.terminal {
		return
	}
	if newState == sm.terminal {
		sm.survivalTime = float64(step) + 0.5
		sm.survivalTimeSet = true
	}
	if !sm.developedEvent && sm.current != sm.event && newState == sm.event {
		sm.developedEvent = true
		sm.timeToEvent = float64(step) + 0.5
		sm.timeToEventSet = true
	}
	sm.current = newState
}

// Alive reports whether the patient has not yet entered the terminal state.
func (sm *StateMonitor) Alive() bool {
	return sm.current != sm.terminal
}

// CurrentState returns the patient's current health-state index.
func (sm *StateMonitor) CurrentState() int {
	return sm.current
}

// SurvivalTime returns the half-cycle-corrected absorption time. The second
// return is false for patients still alive at the end of the horizon.
func (sm *StateMonitor) SurvivalTime() (float64, bool) {
	return sm.survivalTime, sm.survivalTimeSet
}

// TimeToEvent returns the half-cycle-corrected time of first entry into the
// event state. The second return is false if the event never occurred.
func (sm *StateMonitor) TimeToEvent() (float64, bool) {
	return sm.timeToEvent, sm.timeToEventSet
}

// DevelopedEvent reports whether the patient ever entered the event state.
func (sm *StateMonitor) DevelopedEvent() bool {
	return sm.developedEvent
}
