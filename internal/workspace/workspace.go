// Package workspace keeps editable process lists for interactive clients.
//
// A session mirrors what a user builds up in the visualizer: a process list,
// the selected mode and tie-break, and one saved list per mode. Switching
// modes is a two-step transition: RequestModeSwitch parks the target mode and
// ConfirmModeSwitch decides what the list looks like afterwards.
package workspace

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"priority-scheduler/internal/requests"
	"priority-scheduler/internal/responses"
	"priority-scheduler/internal/schedulers"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrProcessNotFound = errors.New("process not found")
	ErrNoPendingMode   = errors.New("no mode switch pending")
	ErrUnknownAction   = errors.New("unknown confirm action")
)

type ConfirmAction string

const (
	ActionClear  ConfirmAction = "clear"
	ActionKeep   ConfirmAction = "keep"
	ActionCancel ConfirmAction = "cancel"
)

// Session is a snapshot of one client's workspace. EqualPriorities hints that
// preemption cannot occur with the current list.
type Session struct {
	ID              string                               `json:"id"`
	Mode            requests.Mode                        `json:"mode"`
	TieBreak        requests.TieBreak                    `json:"tie_break"`
	Processes       []requests.Process                   `json:"processes"`
	Saved           map[requests.Mode][]requests.Process `json:"saved"`
	PendingMode     requests.Mode                        `json:"pending_mode,omitempty"`
	EqualPriorities bool                                 `json:"equal_priorities"`
	UpdatedAt       time.Time                            `json:"updated_at"`
}

// ProcessInput carries the user-editable fields of a process.
type ProcessInput struct {
	Label    string  `json:"label"`
	Arrival  float64 `json:"arrival"`
	Burst    float64 `json:"burst"`
	Priority float64 `json:"priority"`
}

// Store holds sessions in memory. The oldest session is evicted once
// maxSessions is reached.
type Store struct {
	mu          sync.Mutex
	sessions    map[string]*Session
	maxSessions int
	defaultMode requests.Mode
	defaultTie  requests.TieBreak
	now         func() time.Time
}

func NewStore(maxSessions int, mode requests.Mode, tieBreak requests.TieBreak) *Store {
	if mode == "" {
		mode = requests.NonPreemptive
	}
	if tieBreak == "" {
		tieBreak = requests.FirstComeFirstServe
	}
	return &Store{
		sessions:    make(map[string]*Session),
		maxSessions: maxSessions,
		defaultMode: mode,
		defaultTie:  tieBreak,
		now:         time.Now,
	}
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Store) Create() Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.maxSessions > 0 && len(s.sessions) >= s.maxSessions {
		s.evictOldestLocked()
	}
	session := &Session{
		ID:        uuid.New().String(),
		Mode:      s.defaultMode,
		TieBreak:  s.defaultTie,
		Processes: []requests.Process{},
		Saved:     map[requests.Mode][]requests.Process{},
		UpdatedAt: s.now(),
	}
	s.sessions[session.ID] = session
	return session.clone()
}

func (s *Store) evictOldestLocked() {
	var oldest *Session
	for _, session := range s.sessions {
		if oldest == nil || session.UpdatedAt.Before(oldest.UpdatedAt) {
			oldest = session
		}
	}
	if oldest != nil {
		delete(s.sessions, oldest.ID)
	}
}

func (s *Store) Get(id string) (Session, error) {
	return s.update(id, func(*Session) error { return nil })
}

func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	delete(s.sessions, id)
	return nil
}

// update applies fn under the lock and returns a copy of the result.
func (s *Store) update(id string, fn func(*Session) error) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return Session{}, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	if err := fn(session); err != nil {
		return Session{}, err
	}
	session.EqualPriorities = prioritiesEqual(session.Processes)
	session.UpdatedAt = s.now()
	return session.clone(), nil
}

// AddProcess appends a process with the next free id. Blank labels become P<id>.
func (s *Store) AddProcess(id string, in ProcessInput) (Session, error) {
	return s.update(id, func(session *Session) error {
		next := 1
		for _, p := range session.Processes {
			if p.ProcessId >= next {
				next = p.ProcessId + 1
			}
		}
		label := strings.TrimSpace(in.Label)
		if label == "" {
			label = requests.DefaultLabel(next)
		}
		p := requests.Process{ProcessId: next, Label: label, Arrival: in.Arrival, Burst: in.Burst, Priority: in.Priority}
		if err := schedulers.Validate(requests.ScheduleRequest{Processes: []requests.Process{p}}, 0); err != nil {
			return err
		}
		session.Processes = append(session.Processes, p)
		return nil
	})
}

// UpdateProcess edits timing fields; the label is kept.
func (s *Store) UpdateProcess(id string, processId int, in ProcessInput) (Session, error) {
	return s.update(id, func(session *Session) error {
		i := indexOf(session.Processes, processId)
		if i < 0 {
			return fmt.Errorf("%w: %d", ErrProcessNotFound, processId)
		}
		p := session.Processes[i]
		p.Arrival, p.Burst, p.Priority = in.Arrival, in.Burst, in.Priority
		if err := schedulers.Validate(requests.ScheduleRequest{Processes: []requests.Process{p}}, 0); err != nil {
			return err
		}
		session.Processes[i] = p
		return nil
	})
}

func (s *Store) RemoveProcess(id string, processId int) (Session, error) {
	return s.update(id, func(session *Session) error {
		i := indexOf(session.Processes, processId)
		if i < 0 {
			return fmt.Errorf("%w: %d", ErrProcessNotFound, processId)
		}
		session.Processes = append(session.Processes[:i], session.Processes[i+1:]...)
		return nil
	})
}

func (s *Store) Reset(id string) (Session, error) {
	return s.update(id, func(session *Session) error {
		session.Processes = []requests.Process{}
		return nil
	})
}

// AutoAssignPriorities ranks processes by arrival: earliest gets priority 0.
func (s *Store) AutoAssignPriorities(id string) (Session, error) {
	return s.update(id, func(session *Session) error {
		procs := session.Processes
		sort.SliceStable(procs, func(i, j int) bool {
			if procs[i].Arrival != procs[j].Arrival {
				return procs[i].Arrival < procs[j].Arrival
			}
			return procs[i].ProcessId < procs[j].ProcessId
		})
		for i := range procs {
			procs[i].Priority = float64(i)
		}
		sort.SliceStable(procs, func(i, j int) bool {
			return procs[i].ProcessId < procs[j].ProcessId
		})
		return nil
	})
}

func (s *Store) SetTieBreak(id string, tieBreak requests.TieBreak) (Session, error) {
	return s.update(id, func(session *Session) error {
		if err := schedulers.Validate(requests.ScheduleRequest{TieBreak: tieBreak}, 0); err != nil {
			return err
		}
		if tieBreak == "" {
			tieBreak = requests.FirstComeFirstServe
		}
		session.TieBreak = tieBreak
		return nil
	})
}

// RequestModeSwitch saves the current list under the current mode and parks
// the requested mode until it is confirmed.
func (s *Store) RequestModeSwitch(id string, mode requests.Mode) (Session, error) {
	return s.update(id, func(session *Session) error {
		if mode == "" {
			return fmt.Errorf("%w: empty mode", schedulers.ErrUnknownMode)
		}
		if err := schedulers.Validate(requests.ScheduleRequest{Mode: mode}, 0); err != nil {
			return err
		}
		session.Saved[session.Mode] = cloneProcesses(session.Processes)
		session.PendingMode = mode
		return nil
	})
}

func (s *Store) ConfirmModeSwitch(id string, action ConfirmAction) (Session, error) {
	return s.update(id, func(session *Session) error {
		if session.PendingMode == "" {
			return ErrNoPendingMode
		}
		switch action {
		case ActionClear:
			session.Saved[session.PendingMode] = []requests.Process{}
			session.Processes = []requests.Process{}
			session.Mode = session.PendingMode
		case ActionKeep:
			session.Processes = cloneProcesses(session.Saved[session.PendingMode])
			session.Mode = session.PendingMode
		case ActionCancel:
		default:
			return fmt.Errorf("%w: %q", ErrUnknownAction, action)
		}
		session.PendingMode = ""
		return nil
	})
}

// Schedule runs the simulator over the session's list. The engine runs
// outside the store lock.
func (s *Store) Schedule(id string, maxProcesses int) (responses.ScheduleResponse, error) {
	session, err := s.Get(id)
	if err != nil {
		return responses.ScheduleResponse{}, err
	}
	request := requests.ScheduleRequest{
		Processes: session.Processes,
		Mode:      session.Mode,
		TieBreak:  session.TieBreak,
	}
	if err := schedulers.Validate(request, maxProcesses); err != nil {
		return responses.ScheduleResponse{}, err
	}
	return schedulers.SchedulePriority(request)
}

func (s *Session) clone() Session {
	out := *s
	out.Processes = cloneProcesses(s.Processes)
	out.Saved = make(map[requests.Mode][]requests.Process, len(s.Saved))
	for mode, procs := range s.Saved {
		out.Saved[mode] = cloneProcesses(procs)
	}
	return out
}

func cloneProcesses(procs []requests.Process) []requests.Process {
	out := make([]requests.Process, len(procs))
	copy(out, procs)
	return out
}

func indexOf(procs []requests.Process, processId int) int {
	for i, p := range procs {
		if p.ProcessId == processId {
			return i
		}
	}
	return -1
}

func prioritiesEqual(procs []requests.Process) bool {
	if len(procs) == 0 {
		return false
	}
	for _, p := range procs[1:] {
		if p.Priority != procs[0].Priority {
			return false
		}
	}
	return true
}
