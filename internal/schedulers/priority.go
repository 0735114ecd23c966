package schedulers

import (
	"math"
	"sort"

	"priority-scheduler/internal/core"
	"priority-scheduler/internal/requests"
	"priority-scheduler/internal/responses"
)

// rankKey orders candidates for the cpu. Smaller keys run first.
type rankKey struct {
	priority  float64
	secondary float64
	arrival   float64
	id        int
}

func newRankKey(p requests.Process, remaining float64, tieBreak requests.TieBreak) rankKey {
	key := rankKey{priority: p.Priority, arrival: p.Arrival, id: p.ProcessId}
	if tieBreak == requests.ShortestRemainingTime {
		key.secondary = remaining
	}
	return key
}

func (k rankKey) less(o rankKey) bool {
	if k.priority != o.priority {
		return k.priority < o.priority
	}
	if k.secondary != o.secondary {
		return k.secondary < o.secondary
	}
	if k.arrival != o.arrival {
		return k.arrival < o.arrival
	}
	return k.id < o.id
}

// SchedulePriority simulates priority scheduling over the request's processes.
// The request's slice is not modified.
func SchedulePriority(request requests.ScheduleRequest) (responses.ScheduleResponse, error) {
	if err := Validate(request, 0); err != nil {
		return responses.ScheduleResponse{}, err
	}
	mode, tieBreak := resolvePolicy(request)
	procs := sortedProcesses(request.Processes)

	cpu := core.NewCpu()
	var completion map[int]float64
	if mode == requests.Preemptive {
		completion = runPreemptive(cpu, procs, tieBreak)
	} else {
		completion = runNonPreemptive(cpu, procs, tieBreak)
	}

	return generateResponse(mode, tieBreak, procs, completion, cpu), nil
}

func resolvePolicy(request requests.ScheduleRequest) (requests.Mode, requests.TieBreak) {
	mode := request.Mode
	if mode == "" {
		mode = requests.NonPreemptive
	}
	tieBreak := request.TieBreak
	if tieBreak == "" {
		tieBreak = requests.FirstComeFirstServe
	}
	return mode, tieBreak
}

// sortedProcesses copies processes, fills default labels and orders them by
// arrival then id.
func sortedProcesses(processes []requests.Process) []requests.Process {
	procs := make([]requests.Process, len(processes))
	copy(procs, processes)
	for i := range procs {
		procs[i].Label = procs[i].DisplayLabel()
	}
	sort.SliceStable(procs, func(i, j int) bool {
		if procs[i].Arrival != procs[j].Arrival {
			return procs[i].Arrival < procs[j].Arrival
		}
		return procs[i].ProcessId < procs[j].ProcessId
	})
	return procs
}

func runNonPreemptive(cpu *core.Cpu, procs []requests.Process, tieBreak requests.TieBreak) map[int]float64 {
	completion := make(map[int]float64, len(procs))
	queue := make([]requests.Process, len(procs))
	copy(queue, procs)

	for len(queue) > 0 {
		next := -1
		for i, p := range queue {
			if p.Arrival > cpu.Clock() {
				continue
			}
			if next < 0 || newRankKey(p, p.Burst, tieBreak).less(newRankKey(queue[next], queue[next].Burst, tieBreak)) {
				next = i
			}
		}
		if next < 0 {
			// queue keeps arrival order, so the head arrives first
			cpu.IdleUntil(queue[0].Arrival)
			continue
		}

		p := queue[next]
		segment := cpu.Execute(p.ProcessId, p.Label, p.Burst)
		completion[p.ProcessId] = segment.End
		queue = append(queue[:next], queue[next+1:]...)
	}
	return completion
}

type runState struct {
	requests.Process
	rem float64
}

func runPreemptive(cpu *core.Cpu, procs []requests.Process, tieBreak requests.TieBreak) map[int]float64 {
	completion := make(map[int]float64, len(procs))
	states := make([]*runState, len(procs))
	for i, p := range procs {
		states[i] = &runState{Process: p, rem: p.Burst}
	}

	for {
		var run *runState
		pending := false
		nextArrival := math.Inf(1)
		for _, s := range states {
			if s.rem <= 0 {
				continue
			}
			pending = true
			if s.Arrival > cpu.Clock() {
				nextArrival = math.Min(nextArrival, s.Arrival)
				continue
			}
			if run == nil || newRankKey(s.Process, s.rem, tieBreak).less(newRankKey(run.Process, run.rem, tieBreak)) {
				run = s
			}
		}
		if !pending {
			break
		}
		if run == nil {
			cpu.IdleUntil(nextArrival)
			continue
		}

		boundary := preemptionBoundary(cpu.Clock(), run, states, tieBreak)
		finish := cpu.Clock() + run.rem
		if finish <= boundary {
			cpu.ExecuteUntil(run.ProcessId, run.Label, finish)
			run.rem = 0
			completion[run.ProcessId] = finish
			continue
		}
		segment := cpu.ExecuteUntil(run.ProcessId, run.Label, boundary)
		run.rem -= segment.Duration()
		if settleExecuted(run.Burst-run.rem, run.Burst) == run.Burst {
			run.rem = 0
			completion[run.ProcessId] = segment.End
		}
	}
	return completion
}

// preemptionBoundary returns the earliest future arrival that outranks run,
// or +Inf when nothing will.
func preemptionBoundary(now float64, run *runState, states []*runState, tieBreak requests.TieBreak) float64 {
	boundary := math.Inf(1)
	for _, s := range states {
		if s.Arrival <= now {
			continue
		}
		outranks := s.Priority < run.Priority ||
			(tieBreak == requests.ShortestRemainingTime && s.Priority == run.Priority && s.rem < run.rem)
		if outranks {
			boundary = math.Min(boundary, s.Arrival)
		}
	}
	return boundary
}
