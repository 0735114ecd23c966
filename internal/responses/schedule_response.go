package responses

type ProcessResponse struct {
	ProcessId      int     `json:"id"`
	Label          string  `json:"label"`
	Arrival        float64 `json:"arrival"`
	Burst          float64 `json:"burst"`
	Priority       float64 `json:"priority"`
	CompletionTime float64 `json:"ct"`
	TurnAroundTime float64 `json:"tat"`
	WaitingTime    float64 `json:"wt"`
	ResponseTime   float64 `json:"rt"`
}

// Segment is one uninterrupted run of a process on the cpu.
type Segment struct {
	ProcessId int     `json:"id"`
	Label     string  `json:"label,omitempty"`
	Start     float64 `json:"start"`
	End       float64 `json:"end"`
}

func (s Segment) Duration() float64 {
	return s.End - s.Start
}

type RemainingEntry struct {
	ProcessId int     `json:"id"`
	Label     string  `json:"label"`
	Rem       float64 `json:"rem"`
}

type Snapshot struct {
	Time      float64          `json:"time"`
	Arrived   []string         `json:"arrived"`
	Remaining []RemainingEntry `json:"remaining"`
}

type ScheduleResponse struct {
	Mode                  string            `json:"mode"`
	TieBreak              string            `json:"tie_break"`
	Details               []ProcessResponse `json:"rows"`
	AverageTurnAroundTime float64           `json:"avg_tat"`
	AverageWaitingTime    float64           `json:"avg_wt"`
	AverageResponseTime   float64           `json:"avg_rt"`
	Timeline              []Segment         `json:"timeline"`
	Snapshots             []Snapshot        `json:"snapshots"`
	TotalTime             float64           `json:"total_time"`
	IdleTime              float64           `json:"idle_time"`
	CpuUtilization        float64           `json:"cpu_utilization"`
	CpuThroughput         float64           `json:"cpu_throughput"`
	ContextSwitches       int               `json:"context_switches"`
}

// SolutionResponse explains how a single process's metrics follow from its segments.
type SolutionResponse struct {
	Process        ProcessResponse `json:"process"`
	Segments       []Segment       `json:"segments"`
	TotalExecuted  float64         `json:"total_executed"`
	CompletionTime float64         `json:"ct"`
	TurnAroundTime float64         `json:"tat"`
	WaitingTime    float64         `json:"wt"`
}
