package core

import (
	"priority-scheduler/internal/responses"
)

type CpuMetric struct {
	TotalTime       float64
	UtilizationTime float64
	IdleTime        float64
}

// Cpu is a single simulated core driven by a virtual clock. The clock starts
// at 0, so time before the first arrival counts as idle.
type Cpu struct {
	clock    float64
	timeline []responses.Segment
	metric   CpuMetric
}

func NewCpu() *Cpu {
	return &Cpu{timeline: make([]responses.Segment, 0)}
}

func (c *Cpu) Clock() float64 {
	return c.clock
}

// IdleUntil advances the clock to t. The clock never moves backwards.
func (c *Cpu) IdleUntil(t float64) {
	if t <= c.clock {
		return
	}
	c.metric.IdleTime += t - c.clock
	c.clock = t
	c.metric.TotalTime = c.clock
}

// Execute runs a process for duration from the current clock and returns the
// emitted segment.
func (c *Cpu) Execute(pid int, label string, duration float64) responses.Segment {
	return c.ExecuteUntil(pid, label, c.clock+duration)
}

// ExecuteUntil runs a process from the current clock until end.
func (c *Cpu) ExecuteUntil(pid int, label string, end float64) responses.Segment {
	segment := responses.Segment{
		ProcessId: pid,
		Label:     label,
		Start:     c.clock,
		End:       end,
	}
	c.timeline = append(c.timeline, segment)
	c.metric.UtilizationTime += segment.Duration()
	c.clock = end
	c.metric.TotalTime = c.clock
	return segment
}

func (c *Cpu) Timeline() []responses.Segment {
	return c.timeline
}

func (c *Cpu) Metric() CpuMetric {
	return c.metric
}
