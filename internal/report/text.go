package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"priority-scheduler/internal/responses"
)

const idleLabel = "idle"

func Title(w io.Writer, title string) {
	_, _ = fmt.Fprintln(w, strings.Repeat("-", len(title)*2))
	_, _ = fmt.Fprintln(w, strings.Repeat(" ", len(title)/2), title)
	_, _ = fmt.Fprintln(w, strings.Repeat("-", len(title)*2))
}

type ganttCell struct {
	label      string
	start, end float64
}

// Gantt draws the timeline as a single bar, with idle gaps shown explicitly.
func Gantt(w io.Writer, timeline []responses.Segment) {
	_, _ = fmt.Fprintln(w, "Gantt schedule")
	if len(timeline) == 0 {
		_, _ = fmt.Fprint(w, "(no execution)\n\n")
		return
	}

	cells := make([]ganttCell, 0, len(timeline))
	for i, seg := range timeline {
		if i > 0 && seg.Start > timeline[i-1].End {
			cells = append(cells, ganttCell{idleLabel, timeline[i-1].End, seg.Start})
		}
		cells = append(cells, ganttCell{seg.Label, seg.Start, seg.End})
	}

	var bar, ticks strings.Builder
	bar.WriteString("|")
	for _, c := range cells {
		width := len(c.label) + 2
		if width < 8 {
			width = 8
		}
		left := (width - len(c.label)) / 2
		bar.WriteString(strings.Repeat(" ", left) + c.label + strings.Repeat(" ", width-left-len(c.label)) + "|")
		ticks.WriteString(fmt.Sprintf("%-*s", width+1, FormatNumber(c.start)))
	}
	ticks.WriteString(FormatNumber(cells[len(cells)-1].end))

	_, _ = fmt.Fprintln(w, bar.String())
	_, _ = fmt.Fprintln(w, ticks.String())
	_, _ = fmt.Fprintln(w)
}

// Table renders result rows with an averages footer.
func Table(w io.Writer, response responses.ScheduleResponse) {
	_, _ = fmt.Fprintln(w, "Schedule table")
	rows := make([][]string, 0, len(response.Details))
	for _, r := range response.Details {
		rows = append(rows, []string{
			r.Label,
			FormatNumber(r.Arrival),
			FormatNumber(r.Burst),
			FormatNumber(r.Priority),
			FormatNumber(r.CompletionTime),
			FormatNumber(r.TurnAroundTime),
			FormatNumber(r.WaitingTime),
		})
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Process", "AT", "BT", "Pr", "CT", "TAT", "WT"})
	table.AppendBulk(rows)
	table.SetFooter([]string{"Averages", "", "", "", "",
		fmt.Sprintf("%.2f", response.AverageTurnAroundTime),
		fmt.Sprintf("%.2f", response.AverageWaitingTime)})
	table.Render()
}

// Summary prints cpu-level analytics.
func Summary(w io.Writer, response responses.ScheduleResponse) {
	_, _ = fmt.Fprintf(w, "Mode: %s, tie-break: %s\n", response.Mode, response.TieBreak)
	_, _ = fmt.Fprintf(w, "Total time: %s  Idle: %s  Utilization: %.2f%%  Throughput: %.2f/t  Context switches: %d\n\n",
		FormatNumber(response.TotalTime),
		FormatNumber(response.IdleTime),
		response.CpuUtilization*100,
		response.CpuThroughput,
		response.ContextSwitches,
	)
}

func Snapshots(w io.Writer, snapshots []responses.Snapshot) {
	_, _ = fmt.Fprintln(w, "Snapshots")
	for _, s := range snapshots {
		arrived := "-"
		if len(s.Arrived) > 0 {
			arrived = strings.Join(s.Arrived, ", ")
		}
		_, _ = fmt.Fprintf(w, "  t=%s\n", FormatNumber(s.Time))
		_, _ = fmt.Fprintf(w, "    Arrived:   %s\n", arrived)
		if len(s.Remaining) == 0 {
			_, _ = fmt.Fprintln(w, "    Remaining: -")
			continue
		}
		parts := make([]string, 0, len(s.Remaining))
		for _, r := range s.Remaining {
			parts = append(parts, fmt.Sprintf("%s=%s", r.Label, FormatNumber(r.Rem)))
		}
		_, _ = fmt.Fprintf(w, "    Remaining: %s\n", strings.Join(parts, " "))
	}
	_, _ = fmt.Fprintln(w)
}

// Solution prints the step-by-step derivation of one process's metrics.
func Solution(w io.Writer, solution responses.SolutionResponse) {
	p := solution.Process
	_, _ = fmt.Fprintf(w, "Solution for %s (AT=%s, BT=%s, Pr=%s)\n", p.Label,
		FormatNumber(p.Arrival), FormatNumber(p.Burst), FormatNumber(p.Priority))
	for _, s := range solution.Segments {
		_, _ = fmt.Fprintf(w, "  runs from t=%s to t=%s (exec %s)\n",
			FormatNumber(s.Start), FormatNumber(s.End), FormatNumber(s.Duration()))
	}
	_, _ = fmt.Fprintf(w, "  total executed = %s\n", FormatNumber(solution.TotalExecuted))
	_, _ = fmt.Fprintf(w, "  CT = max(segment ends) = %s\n", FormatNumber(solution.CompletionTime))
	_, _ = fmt.Fprintf(w, "  TAT = CT - AT = %s - %s = %s\n",
		FormatNumber(solution.CompletionTime), FormatNumber(p.Arrival), FormatNumber(solution.TurnAroundTime))
	_, _ = fmt.Fprintf(w, "  WT = TAT - BT = %s - %s = %s\n",
		FormatNumber(solution.TurnAroundTime), FormatNumber(p.Burst), FormatNumber(solution.WaitingTime))
}
