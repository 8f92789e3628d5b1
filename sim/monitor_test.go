package sim

import (
	"testing"
)

func newTestMonitor() *StateMonitor {
	return NewStateMonitor(testModel(progressionMatrix()))
}

func TestStateMonitor_InitialState(t *testing.T) {
	sm := newTestMonitor()

	if sm.CurrentState() != 0 {
		t.Errorf("CurrentState() = %d, want 0", sm.CurrentState())
	}
	if !sm.Alive() {
		t.Error("new monitor not alive")
	}
	if _, ok := sm.SurvivalTime(); ok {
		t.Error("SurvivalTime set on new monitor")
	}
	if _, ok := sm.TimeToEvent(); ok {
		t.Error("TimeToEvent set on new monitor")
	}
	if sm.DevelopedEvent() {
		t.Error("DevelopedEvent true on new monitor")
	}
}

func TestStateMonitor_PlainTransition(t *testing.T) {
	sm := newTestMonitor()
	sm.Update(0, 0)

	if sm.CurrentState() != 0 || !sm.Alive() {
		t.Error("self-transition changed liveness or state")
	}
	if _, ok := sm.SurvivalTime(); ok {
		t.Error("self-transition set a survival time")
	}
}

func TestStateMonitor_TerminalEntry(t *testing.T) {
	// GIVEN a patient entering the terminal state at step 3
	sm := newTestMonitor()
	sm.Update(0, 0)
	sm.Update(1, 0)
	sm.Update(2, 0)
	sm.Update(3, 2)

	// THEN the survival time is half-cycle corrected to 3.5
	st, ok := sm.SurvivalTime()
	if !ok {
		t.Fatal("SurvivalTime not set after terminal entry")
	}
	if st != 3.5 {
		t.Errorf("SurvivalTime = %v, want 3.5", st)
	}
	if sm.Alive() {
		t.Error("Alive() true after terminal entry")
	}
	if sm.DevelopedEvent() {
		t.Error("terminal entry recorded as event")
	}
}

func TestStateMonitor_FrozenAfterAbsorption(t *testing.T) {
	// BDD: Updates after terminal entry are defined no-ops
	sm := newTestMonitor()
	sm.Update(0, 2)

	st, _ := sm.SurvivalTime()

	// Late updates must change nothing, whatever they claim happened.
	sm.Update(5, 0)
	sm.Update(6, 1)
	sm.Update(7, 2)

	if sm.CurrentState() != 2 {
		t.Errorf("state after late updates = %d, want 2", sm.CurrentState())
	}
	if got, _ := sm.SurvivalTime(); got != st {
		t.Errorf("SurvivalTime changed from %v to %v", st, got)
	}
	if sm.DevelopedEvent() {
		t.Error("late update recorded an event on an absorbed patient")
	}
}

func TestStateMonitor_FirstEventEntry(t *testing.T) {
	sm := newTestMonitor()
	sm.Update(0, 0)
	sm.Update(1, 1)

	if !sm.DevelopedEvent() {
		t.Fatal("DevelopedEvent false after event entry")
	}
	tte, ok := sm.TimeToEvent()
	if !ok || tte != 1.5 {
		t.Errorf("TimeToEvent = %v (set=%v), want 1.5", tte, ok)
	}
	if !sm.Alive() {
		t.Error("event entry killed the patient")
	}
}

func TestStateMonitor_EventRecordedOnce(t *testing.T) {
	// GIVEN a patient that enters the event state, leaves, and re-enters
	sm := newTestMonitor()
	sm.Update(0, 1) // first entry at 0.5
	sm.Update(1, 1) // stays in event
	sm.Update(2, 0) // recovers
	sm.Update(3, 1) // re-entry

	// THEN only the first passage is recorded
	tte, ok := sm.TimeToEvent()
	if !ok || tte != 0.5 {
		t.Errorf("TimeToEvent = %v (set=%v), want first-passage 0.5", tte, ok)
	}
}

func TestStateMonitor_EventThenTerminal(t *testing.T) {
	sm := newTestMonitor()
	sm.Update(0, 1)
	sm.Update(1, 1)
	sm.Update(2, 2)

	tte, _ := sm.TimeToEvent()
	st, _ := sm.SurvivalTime()
	if tte != 0.5 || st != 2.5 {
		t.Errorf("times = (%v, %v), want (0.5, 2.5)", tte, st)
	}
	if tte > st {
		t.Errorf("time to event %v exceeds survival time %v", tte, st)
	}
}

func TestStateMonitor_DirectTerminalEntrySkipsEvent(t *testing.T) {
	sm := newTestMonitor()
	sm.Update(0, 2)

	if sm.DevelopedEvent() {
		t.Error("direct death recorded an event")
	}
	if st, _ := sm.SurvivalTime(); st != 0.5 {
		t.Errorf("SurvivalTime = %v, want 0.5", st)
	}
}
