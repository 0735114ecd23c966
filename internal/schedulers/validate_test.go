package schedulers

import (
	"errors"
	"math"
	"strings"
	"testing"

	"priority-scheduler/internal/requests"
)

func TestValidateRejectsBadInput(t *testing.T) {
	tests := []struct {
		name    string
		request requests.ScheduleRequest
		field   string
		target  error
	}{
		{
			name:    "zero burst",
			request: requests.ScheduleRequest{Processes: []requests.Process{{ProcessId: 1, Burst: 0}}},
			field:   "burst",
			target:  ErrInvalidProcess,
		},
		{
			name:    "negative burst",
			request: requests.ScheduleRequest{Processes: []requests.Process{{ProcessId: 1, Burst: -2}}},
			field:   "burst",
			target:  ErrInvalidProcess,
		},
		{
			name:    "nan arrival",
			request: requests.ScheduleRequest{Processes: []requests.Process{{ProcessId: 1, Arrival: math.NaN(), Burst: 1}}},
			field:   "arrival",
			target:  ErrInvalidProcess,
		},
		{
			name:    "negative arrival",
			request: requests.ScheduleRequest{Processes: []requests.Process{{ProcessId: 1, Arrival: -1, Burst: 1}}},
			field:   "arrival",
			target:  ErrInvalidProcess,
		},
		{
			name:    "infinite priority",
			request: requests.ScheduleRequest{Processes: []requests.Process{{ProcessId: 1, Burst: 1, Priority: math.Inf(-1)}}},
			field:   "priority",
			target:  ErrInvalidProcess,
		},
		{
			name: "duplicate id",
			request: requests.ScheduleRequest{Processes: []requests.Process{
				{ProcessId: 1, Burst: 1},
				{ProcessId: 1, Burst: 2},
			}},
			field:  "id",
			target: ErrInvalidProcess,
		},
		{
			name:    "unknown mode",
			request: requests.ScheduleRequest{Mode: "roundrobin"},
			field:   "mode",
			target:  ErrUnknownMode,
		},
		{
			name:    "unknown tie-break",
			request: requests.ScheduleRequest{TieBreak: "lifo"},
			field:   "tie_break",
			target:  ErrUnknownTieBreak,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SchedulePriority(tt.request)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, tt.target) {
				t.Fatalf("error %v does not wrap %v", err, tt.target)
			}
			var verr *ValidationErrors
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationErrors, got %T", err)
			}
			if len(verr.Fields) != 1 || verr.Fields[0].Field != tt.field {
				t.Fatalf("fields = %+v, want single %q", verr.Fields, tt.field)
			}
		})
	}
}

func TestValidateReportsEveryField(t *testing.T) {
	err := Validate(requests.ScheduleRequest{
		Mode: "bogus",
		Processes: []requests.Process{
			{ProcessId: 1, Arrival: -1, Burst: 0},
			{ProcessId: 2, Burst: 3},
		},
	}, 0)

	var verr *ValidationErrors
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationErrors, got %v", err)
	}
	if len(verr.Fields) != 3 {
		t.Fatalf("fields = %+v, want 3", verr.Fields)
	}
	if !strings.Contains(err.Error(), "processes[0].burst") {
		t.Fatalf("message %q does not name the burst field", err.Error())
	}
}

func TestValidateMaxProcesses(t *testing.T) {
	request := requests.ScheduleRequest{Processes: []requests.Process{
		{ProcessId: 1, Burst: 1},
		{ProcessId: 2, Burst: 1},
	}}
	if err := Validate(request, 2); err != nil {
		t.Fatalf("unexpected error at limit: %v", err)
	}
	if err := Validate(request, 1); !errors.Is(err, ErrTooManyProcesses) {
		t.Fatalf("expected ErrTooManyProcesses, got %v", err)
	}
	if err := Validate(request, 0); err != nil {
		t.Fatalf("zero limit should be unlimited: %v", err)
	}
}
