package schedulers

import (
	"priority-scheduler/internal/requests"
	"priority-scheduler/internal/responses"
)

// ScheduleShortestJobFirst picks the shortest burst among arrived processes.
// In preemptive mode this is shortest-remaining-time-first.
func ScheduleShortestJobFirst(request requests.ScheduleRequest) (responses.ScheduleResponse, error) {
	if err := Validate(request, 0); err != nil {
		return responses.ScheduleResponse{}, err
	}

	flattened := requests.ScheduleRequest{
		Processes: make([]requests.Process, len(request.Processes)),
		Mode:      request.Mode,
		TieBreak:  requests.ShortestRemainingTime,
	}
	priorities := make(map[int]float64, len(request.Processes))
	for i, p := range request.Processes {
		priorities[p.ProcessId] = p.Priority
		p.Priority = 0
		flattened.Processes[i] = p
	}

	response, err := SchedulePriority(flattened)
	if err != nil {
		return response, err
	}
	for i := range response.Details {
		response.Details[i].Priority = priorities[response.Details[i].ProcessId]
	}
	return response, nil
}
