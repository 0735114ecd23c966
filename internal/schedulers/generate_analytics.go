package schedulers

import (
	"math"
	"sort"

	"priority-scheduler/internal/core"
	"priority-scheduler/internal/requests"
	"priority-scheduler/internal/responses"
	"priority-scheduler/internal/util"
)

func generateResponse(mode requests.Mode, tieBreak requests.TieBreak, procs []requests.Process, completion map[int]float64, cpu *core.Cpu) responses.ScheduleResponse {
	timeline := mergeSegments(cpu.Timeline())
	sort.SliceStable(timeline, func(i, j int) bool {
		if timeline[i].Start != timeline[j].Start {
			return timeline[i].Start < timeline[j].Start
		}
		return timeline[i].ProcessId < timeline[j].ProcessId
	})

	details := generateProcessDetails(procs, completion, timeline)
	averageWaitingTime, averageResponseTime, averageTimeAroundTime := util.CalculateAverage(details)

	metric := cpu.Metric()
	var utilization, throughput float64
	if metric.TotalTime > 0 {
		utilization = 1 - (metric.IdleTime / metric.TotalTime)
		throughput = float64(len(details)) / metric.TotalTime
	}

	return responses.ScheduleResponse{
		Mode:                  string(mode),
		TieBreak:              string(tieBreak),
		Details:               details,
		AverageTurnAroundTime: averageTimeAroundTime,
		AverageWaitingTime:    averageWaitingTime,
		AverageResponseTime:   averageResponseTime,
		Timeline:              timeline,
		Snapshots:             generateSnapshots(procs, completion, timeline),
		TotalTime:             metric.TotalTime,
		IdleTime:              metric.IdleTime,
		CpuUtilization:        utilization,
		CpuThroughput:         throughput,
		ContextSwitches:       countContextSwitches(timeline),
	}
}

// generateProcessDetails builds one row per completed process, ordered by id.
func generateProcessDetails(procs []requests.Process, completion map[int]float64, timeline []responses.Segment) []responses.ProcessResponse {
	firstRun := make(map[int]float64, len(procs))
	for _, seg := range timeline {
		if _, ok := firstRun[seg.ProcessId]; !ok {
			firstRun[seg.ProcessId] = seg.Start
		}
	}

	details := make([]responses.ProcessResponse, 0, len(procs))
	for _, p := range procs {
		ct, ok := completion[p.ProcessId]
		if !ok {
			continue
		}
		turnAroundTime := ct - p.Arrival
		details = append(details, responses.ProcessResponse{
			ProcessId:      p.ProcessId,
			Label:          p.Label,
			Arrival:        p.Arrival,
			Burst:          p.Burst,
			Priority:       p.Priority,
			CompletionTime: ct,
			TurnAroundTime: turnAroundTime,
			WaitingTime:    turnAroundTime - p.Burst,
			ResponseTime:   firstRun[p.ProcessId] - p.Arrival,
		})
	}
	sort.Slice(details, func(i, j int) bool {
		return details[i].ProcessId < details[j].ProcessId
	})
	return details
}

// mergeSegments joins a segment onto its predecessor when both belong to the
// same process and touch.
func mergeSegments(timeline []responses.Segment) []responses.Segment {
	merged := make([]responses.Segment, 0, len(timeline))
	for _, seg := range timeline {
		if n := len(merged); n > 0 {
			last := &merged[n-1]
			if last.ProcessId == seg.ProcessId && last.End == seg.Start {
				last.End = seg.End
				if last.Label == "" {
					last.Label = seg.Label
				}
				continue
			}
		}
		merged = append(merged, seg)
	}
	return merged
}

func countContextSwitches(timeline []responses.Segment) int {
	switches := 0
	for i := 1; i < len(timeline); i++ {
		if timeline[i].ProcessId != timeline[i-1].ProcessId {
			switches++
		}
	}
	return switches
}

// timeEpsilon is the relative tolerance for comparing summed segment
// durations against a burst.
const timeEpsilon = 1e-9

// settleExecuted returns burst when executed differs from it only by
// floating point error.
func settleExecuted(executed, burst float64) float64 {
	if math.Abs(executed-burst) <= timeEpsilon*math.Max(1, burst) {
		return burst
	}
	return executed
}

// generateSnapshots records arrived processes and remaining burst at every
// arrival and at every segment boundary. Remaining is exactly 0 from the
// completion time on.
func generateSnapshots(procs []requests.Process, completion map[int]float64, timeline []responses.Segment) []responses.Snapshot {
	seen := make(map[float64]struct{})
	times := make([]float64, 0, len(procs)+2*len(timeline))
	addTime := func(t float64) {
		if _, ok := seen[t]; ok {
			return
		}
		seen[t] = struct{}{}
		times = append(times, t)
	}
	for _, p := range procs {
		addTime(p.Arrival)
	}
	for _, seg := range timeline {
		addTime(seg.Start)
		addTime(seg.End)
	}
	sort.Float64s(times)

	snapshots := make([]responses.Snapshot, 0, len(times))
	for _, t := range times {
		executed := make(map[int]float64)
		for _, seg := range timeline {
			switch {
			case seg.End <= t:
				executed[seg.ProcessId] += seg.Duration()
			case seg.Start < t:
				executed[seg.ProcessId] += t - seg.Start
			}
		}

		snapshot := responses.Snapshot{
			Time:      t,
			Arrived:   make([]string, 0),
			Remaining: make([]responses.RemainingEntry, 0),
		}
		for _, p := range procs {
			if p.Arrival > t {
				continue
			}
			rem := math.Max(0, p.Burst-executed[p.ProcessId])
			if ct, ok := completion[p.ProcessId]; ok && t >= ct {
				rem = 0
			}
			snapshot.Arrived = append(snapshot.Arrived, p.Label)
			snapshot.Remaining = append(snapshot.Remaining, responses.RemainingEntry{
				ProcessId: p.ProcessId,
				Label:     p.Label,
				Rem:       rem,
			})
		}
		snapshots = append(snapshots, snapshot)
	}
	return snapshots
}

// ProcessSolution explains how a process's completion, turnaround and waiting
// times follow from its segments on the timeline.
func ProcessSolution(response responses.ScheduleResponse, processId int) (responses.SolutionResponse, bool) {
	var solution responses.SolutionResponse
	found := false
	for _, row := range response.Details {
		if row.ProcessId == processId {
			solution.Process = row
			found = true
			break
		}
	}
	if !found {
		return solution, false
	}

	solution.Segments = make([]responses.Segment, 0)
	for _, seg := range response.Timeline {
		if seg.ProcessId != processId {
			continue
		}
		solution.Segments = append(solution.Segments, seg)
		solution.TotalExecuted += seg.Duration()
		solution.CompletionTime = math.Max(solution.CompletionTime, seg.End)
	}
	solution.TotalExecuted = settleExecuted(solution.TotalExecuted, solution.Process.Burst)
	solution.TurnAroundTime = solution.CompletionTime - solution.Process.Arrival
	solution.WaitingTime = solution.TurnAroundTime - solution.Process.Burst
	return solution, true
}
