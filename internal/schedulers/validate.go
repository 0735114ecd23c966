package schedulers

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"priority-scheduler/internal/requests"
)

var (
	ErrUnknownMode      = errors.New("unknown scheduling mode")
	ErrUnknownTieBreak  = errors.New("unknown tie-break policy")
	ErrTooManyProcesses = errors.New("too many processes")
	ErrInvalidProcess   = errors.New("invalid process")
)

// FieldError describes one rejected field. Index is -1 for request-level fields.
type FieldError struct {
	Index     int    `json:"index"`
	ProcessId int    `json:"id"`
	Field     string `json:"field"`
	Message   string `json:"message"`
	Err       error  `json:"-"`
}

func (e FieldError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("processes[%d].%s: %s", e.Index, e.Field, e.Message)
}

// ValidationErrors is returned when a request is rejected before simulation.
type ValidationErrors struct {
	Fields []FieldError
}

func (e *ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Error())
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func (e *ValidationErrors) Unwrap() []error {
	errs := make([]error, 0, len(e.Fields))
	for _, f := range e.Fields {
		if f.Err != nil {
			errs = append(errs, f.Err)
		}
	}
	return errs
}

// Validate checks a request before simulation. maxProcesses <= 0 means no limit.
func Validate(request requests.ScheduleRequest, maxProcesses int) error {
	var fields []FieldError

	switch request.Mode {
	case "", requests.NonPreemptive, requests.Preemptive:
	default:
		fields = append(fields, FieldError{Index: -1, Field: "mode", Message: fmt.Sprintf("must be %q or %q, got %q", requests.NonPreemptive, requests.Preemptive, request.Mode), Err: ErrUnknownMode})
	}

	switch request.TieBreak {
	case "", requests.FirstComeFirstServe, requests.ShortestRemainingTime:
	default:
		fields = append(fields, FieldError{Index: -1, Field: "tie_break", Message: fmt.Sprintf("must be %q or %q, got %q", requests.FirstComeFirstServe, requests.ShortestRemainingTime, request.TieBreak), Err: ErrUnknownTieBreak})
	}

	if maxProcesses > 0 && len(request.Processes) > maxProcesses {
		fields = append(fields, FieldError{Index: -1, Field: "processes", Message: fmt.Sprintf("at most %d processes allowed, got %d", maxProcesses, len(request.Processes)), Err: ErrTooManyProcesses})
	}

	seen := make(map[int]int, len(request.Processes))
	for i, p := range request.Processes {
		fields = append(fields, validateProcess(i, p)...)
		if first, ok := seen[p.ProcessId]; ok {
			fields = append(fields, FieldError{Index: i, ProcessId: p.ProcessId, Field: "id", Message: fmt.Sprintf("duplicate of processes[%d]", first), Err: ErrInvalidProcess})
			continue
		}
		seen[p.ProcessId] = i
	}

	if len(fields) == 0 {
		return nil
	}
	return &ValidationErrors{Fields: fields}
}

func validateProcess(index int, p requests.Process) []FieldError {
	var fields []FieldError
	reject := func(field, message string) {
		fields = append(fields, FieldError{Index: index, ProcessId: p.ProcessId, Field: field, Message: message, Err: ErrInvalidProcess})
	}

	if !isFinite(p.Arrival) {
		reject("arrival", "must be a finite number")
	} else if p.Arrival < 0 {
		reject("arrival", "must not be negative")
	}

	// a zero burst would stall the idle-advance loop
	if !isFinite(p.Burst) {
		reject("burst", "must be a finite number")
	} else if p.Burst <= 0 {
		reject("burst", "must be greater than zero")
	}

	if !isFinite(p.Priority) {
		reject("priority", "must be a finite number")
	}
	return fields
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
