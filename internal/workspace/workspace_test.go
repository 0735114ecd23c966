package workspace

import (
	"errors"
	"testing"
	"time"

	"priority-scheduler/internal/requests"
	"priority-scheduler/internal/schedulers"
)

func newTestStore(limit int) *Store {
	s := NewStore(limit, "", "")
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return s
}

func mustAdd(t *testing.T, s *Store, id string, in ProcessInput) Session {
	t.Helper()
	session, err := s.AddProcess(id, in)
	if err != nil {
		t.Fatalf("AddProcess(%+v): %v", in, err)
	}
	return session
}

func TestAddProcessAssignsIdsAndLabels(t *testing.T) {
	s := newTestStore(0)
	id := s.Create().ID

	mustAdd(t, s, id, ProcessInput{Arrival: 0, Burst: 3, Priority: 1})
	session := mustAdd(t, s, id, ProcessInput{Label: "  editor ", Arrival: 1, Burst: 2, Priority: 0})

	if len(session.Processes) != 2 {
		t.Fatalf("processes = %d, want 2", len(session.Processes))
	}
	if p := session.Processes[0]; p.ProcessId != 1 || p.Label != "P1" {
		t.Errorf("first process = %+v, want id 1 label P1", p)
	}
	if p := session.Processes[1]; p.ProcessId != 2 || p.Label != "editor" {
		t.Errorf("second process = %+v, want id 2 label editor", p)
	}

	if _, err := s.RemoveProcess(id, 1); err != nil {
		t.Fatal(err)
	}
	session = mustAdd(t, s, id, ProcessInput{Burst: 1})
	if got := session.Processes[len(session.Processes)-1].ProcessId; got != 3 {
		t.Errorf("id after removal = %d, want 3", got)
	}
}

func TestAddProcessReusesHighestIdAfterRemoval(t *testing.T) {
	s := newTestStore(0)
	id := s.Create().ID
	mustAdd(t, s, id, ProcessInput{Burst: 1})
	mustAdd(t, s, id, ProcessInput{Burst: 1})

	if _, err := s.RemoveProcess(id, 2); err != nil {
		t.Fatal(err)
	}
	session := mustAdd(t, s, id, ProcessInput{Burst: 1})
	if p := session.Processes[len(session.Processes)-1]; p.ProcessId != 2 || p.Label != "P2" {
		t.Errorf("process after removing highest id = %+v, want id 2", p)
	}
}

func TestAddProcessRejectsZeroBurst(t *testing.T) {
	s := newTestStore(0)
	id := s.Create().ID
	_, err := s.AddProcess(id, ProcessInput{Burst: 0})
	if !errors.Is(err, schedulers.ErrInvalidProcess) {
		t.Fatalf("expected ErrInvalidProcess, got %v", err)
	}
	session, _ := s.Get(id)
	if len(session.Processes) != 0 {
		t.Fatalf("rejected process was stored: %+v", session.Processes)
	}
}

func TestUpdateAndRemoveUnknownProcess(t *testing.T) {
	s := newTestStore(0)
	id := s.Create().ID
	mustAdd(t, s, id, ProcessInput{Label: "keep", Burst: 1})

	session, err := s.UpdateProcess(id, 1, ProcessInput{Label: "ignored", Arrival: 4, Burst: 5, Priority: 2})
	if err != nil {
		t.Fatal(err)
	}
	if p := session.Processes[0]; p.Label != "keep" || p.Arrival != 4 || p.Burst != 5 || p.Priority != 2 {
		t.Errorf("updated process = %+v", p)
	}

	if _, err := s.UpdateProcess(id, 9, ProcessInput{Burst: 1}); !errors.Is(err, ErrProcessNotFound) {
		t.Errorf("update unknown: %v", err)
	}
	if _, err := s.RemoveProcess(id, 9); !errors.Is(err, ErrProcessNotFound) {
		t.Errorf("remove unknown: %v", err)
	}
	if _, err := s.Get("missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("get unknown session: %v", err)
	}
}

func TestAutoAssignPriorities(t *testing.T) {
	s := newTestStore(0)
	id := s.Create().ID
	mustAdd(t, s, id, ProcessInput{Arrival: 5, Burst: 1, Priority: 1})
	mustAdd(t, s, id, ProcessInput{Arrival: 0, Burst: 1, Priority: 1})
	session := mustAdd(t, s, id, ProcessInput{Arrival: 5, Burst: 1, Priority: 1})
	if !session.EqualPriorities {
		t.Fatal("expected equal priority hint")
	}

	session, err := s.AutoAssignPriorities(id)
	if err != nil {
		t.Fatal(err)
	}
	want := map[int]float64{1: 1, 2: 0, 3: 2}
	for i, p := range session.Processes {
		if p.ProcessId != i+1 {
			t.Errorf("process order broken at %d: %+v", i, p)
		}
		if p.Priority != want[p.ProcessId] {
			t.Errorf("P%d priority = %v, want %v", p.ProcessId, p.Priority, want[p.ProcessId])
		}
	}
	if session.EqualPriorities {
		t.Error("hint should clear after auto-assign")
	}
}

func TestModeSwitchTransitions(t *testing.T) {
	s := newTestStore(0)
	id := s.Create().ID
	mustAdd(t, s, id, ProcessInput{Burst: 2})

	if _, err := s.ConfirmModeSwitch(id, ActionKeep); !errors.Is(err, ErrNoPendingMode) {
		t.Fatalf("confirm without pending: %v", err)
	}

	// keep: nothing saved for preemptive yet, so the list is empty
	session, err := s.RequestModeSwitch(id, requests.Preemptive)
	if err != nil {
		t.Fatal(err)
	}
	if session.PendingMode != requests.Preemptive || session.Mode != requests.NonPreemptive {
		t.Fatalf("after request: mode=%s pending=%s", session.Mode, session.PendingMode)
	}
	session, err = s.ConfirmModeSwitch(id, ActionKeep)
	if err != nil {
		t.Fatal(err)
	}
	if session.Mode != requests.Preemptive || len(session.Processes) != 0 || session.PendingMode != "" {
		t.Fatalf("after keep: %+v", session)
	}

	// switching back with keep restores the saved non-preemptive list
	mustAdd(t, s, id, ProcessInput{Burst: 7})
	if _, err := s.RequestModeSwitch(id, requests.NonPreemptive); err != nil {
		t.Fatal(err)
	}
	session, err = s.ConfirmModeSwitch(id, ActionKeep)
	if err != nil {
		t.Fatal(err)
	}
	if len(session.Processes) != 1 || session.Processes[0].Burst != 2 {
		t.Fatalf("restored list = %+v", session.Processes)
	}

	// cancel leaves everything but the pending mode alone
	if _, err := s.RequestModeSwitch(id, requests.Preemptive); err != nil {
		t.Fatal(err)
	}
	session, err = s.ConfirmModeSwitch(id, ActionCancel)
	if err != nil {
		t.Fatal(err)
	}
	if session.Mode != requests.NonPreemptive || session.PendingMode != "" || len(session.Processes) != 1 {
		t.Fatalf("after cancel: %+v", session)
	}

	// clear empties the list and the target mode's saved list
	if _, err := s.RequestModeSwitch(id, requests.Preemptive); err != nil {
		t.Fatal(err)
	}
	session, err = s.ConfirmModeSwitch(id, ActionClear)
	if err != nil {
		t.Fatal(err)
	}
	if session.Mode != requests.Preemptive || len(session.Processes) != 0 || len(session.Saved[requests.Preemptive]) != 0 {
		t.Fatalf("after clear: %+v", session)
	}
	if len(session.Saved[requests.NonPreemptive]) != 1 {
		t.Fatalf("non-preemptive list should stay saved: %+v", session.Saved)
	}
}

func TestModeSwitchRejectsUnknownValues(t *testing.T) {
	s := newTestStore(0)
	id := s.Create().ID
	if _, err := s.RequestModeSwitch(id, "lottery"); !errors.Is(err, schedulers.ErrUnknownMode) {
		t.Fatalf("unknown mode: %v", err)
	}
	if _, err := s.RequestModeSwitch(id, requests.Preemptive); err != nil {
		t.Fatal(err)
	}
	if _, err := s.ConfirmModeSwitch(id, "maybe"); !errors.Is(err, ErrUnknownAction) {
		t.Fatalf("unknown action: %v", err)
	}
	if _, err := s.SetTieBreak(id, "random"); !errors.Is(err, schedulers.ErrUnknownTieBreak) {
		t.Fatalf("unknown tie-break: %v", err)
	}
}

func TestScheduleUsesSessionPolicy(t *testing.T) {
	s := newTestStore(0)
	id := s.Create().ID
	mustAdd(t, s, id, ProcessInput{Arrival: 0, Burst: 6, Priority: 3})
	mustAdd(t, s, id, ProcessInput{Arrival: 1, Burst: 4, Priority: 0})
	if _, err := s.SetTieBreak(id, requests.ShortestRemainingTime); err != nil {
		t.Fatal(err)
	}
	if _, err := s.RequestModeSwitch(id, requests.Preemptive); err != nil {
		t.Fatal(err)
	}
	if _, err := s.ConfirmModeSwitch(id, ActionCancel); err != nil {
		t.Fatal(err)
	}

	resp, err := s.Schedule(id, 0)
	if err != nil {
		t.Fatal(err)
	}
	if resp.Mode != string(requests.NonPreemptive) || resp.TieBreak != string(requests.ShortestRemainingTime) {
		t.Fatalf("policy = (%s, %s)", resp.Mode, resp.TieBreak)
	}
	if len(resp.Timeline) != 2 || resp.Timeline[0].End != 6 {
		t.Fatalf("timeline = %+v", resp.Timeline)
	}

	if _, err := s.Schedule(id, 1); !errors.Is(err, schedulers.ErrTooManyProcesses) {
		t.Fatalf("expected ErrTooManyProcesses, got %v", err)
	}
}

func TestStoreEvictsOldest(t *testing.T) {
	s := newTestStore(2)
	first := s.Create().ID
	second := s.Create().ID
	if _, err := s.Get(first); err != nil {
		t.Fatal(err)
	}
	third := s.Create().ID

	if s.Len() != 2 {
		t.Fatalf("len = %d, want 2", s.Len())
	}
	if _, err := s.Get(second); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected second session evicted, got %v", err)
	}
	for _, id := range []string{first, third} {
		if _, err := s.Get(id); err != nil {
			t.Fatalf("session %s missing: %v", id, err)
		}
	}
}

func TestReturnedSessionIsACopy(t *testing.T) {
	s := newTestStore(0)
	id := s.Create().ID
	session := mustAdd(t, s, id, ProcessInput{Burst: 1})
	session.Processes[0].Burst = 99

	fresh, _ := s.Get(id)
	if fresh.Processes[0].Burst != 1 {
		t.Fatalf("store shares memory with caller: %+v", fresh.Processes[0])
	}
}
