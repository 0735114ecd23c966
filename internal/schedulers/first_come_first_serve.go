package schedulers

import (
	"priority-scheduler/internal/core"
	"priority-scheduler/internal/requests"
	"priority-scheduler/internal/responses"
)

// ScheduleFirstComeFirstServe runs every process to completion in arrival
// order, ignoring priorities.
func ScheduleFirstComeFirstServe(request requests.ScheduleRequest) (responses.ScheduleResponse, error) {
	if err := Validate(request, 0); err != nil {
		return responses.ScheduleResponse{}, err
	}

	// sort jobs by arrival time
	jobs := sortedProcesses(request.Processes)

	cpu := core.NewCpu()
	completion := make(map[int]float64, len(jobs))
	for _, job := range jobs {
		cpu.IdleUntil(job.Arrival)
		segment := cpu.Execute(job.ProcessId, job.Label, job.Burst)
		completion[job.ProcessId] = segment.End
	}

	return generateResponse(requests.NonPreemptive, requests.FirstComeFirstServe, jobs, completion, cpu), nil
}
