package requests

type Mode string

const (
	NonPreemptive Mode = "nonpreemptive"
	Preemptive    Mode = "preemptive"
)

type TieBreak string

const (
	// FirstComeFirstServe breaks priority ties by arrival, then id.
	FirstComeFirstServe TieBreak = "fcfs"
	// ShortestRemainingTime breaks priority ties by remaining burst first.
	ShortestRemainingTime TieBreak = "srtf"
)

type Process struct {
	ProcessId int     `json:"id" yaml:"id"`
	Label     string  `json:"label,omitempty" yaml:"label,omitempty"`
	Arrival   float64 `json:"arrival" yaml:"arrival"`
	Burst     float64 `json:"burst" yaml:"burst"`
	Priority  float64 `json:"priority" yaml:"priority"`
}

// DisplayLabel returns the label, or P<id> when none was given.
func (p Process) DisplayLabel() string {
	if p.Label != "" {
		return p.Label
	}
	return DefaultLabel(p.ProcessId)
}

type ScheduleRequest struct {
	Processes []Process `json:"processes" yaml:"processes"`
	Mode      Mode      `json:"mode" yaml:"mode"`
	TieBreak  TieBreak  `json:"tie_break" yaml:"tie_break"`
}
