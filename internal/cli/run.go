package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"priority-scheduler/internal/processfile"
	"priority-scheduler/internal/report"
	"priority-scheduler/internal/requests"
	"priority-scheduler/internal/responses"
	"priority-scheduler/internal/schedulers"
)

type runOptions struct {
	mode      string
	tieBreak  string
	csvPath   string
	snapshots bool
	compare   bool
	solution  int
}

func newRunCmd() *cobra.Command {
	opts := runOptions{solution: -1}

	cmd := &cobra.Command{
		Use:   "run <process-file>",
		Short: "Schedule a process list and print the results",
		Long: `Loads processes from a .csv, .yaml or .json file, runs the priority
scheduler and prints the Gantt chart, the result table and CPU analytics.

Flags override the mode and tie-break stored in the file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			request, err := processfile.Load(args[0])
			if err != nil {
				return err
			}
			return runSchedule(cmd.OutOrStdout(), request, opts)
		},
	}

	cmd.Flags().StringVar(&opts.mode, "mode", "", "Scheduling mode (nonpreemptive, preemptive)")
	cmd.Flags().StringVar(&opts.tieBreak, "tie-break", "", "Tie-break for equal priorities (fcfs, srtf)")
	cmd.Flags().StringVar(&opts.csvPath, "csv", "", "Write the result table as CSV to this path")
	cmd.Flags().BoolVar(&opts.snapshots, "snapshots", false, "Print remaining-time snapshots")
	cmd.Flags().BoolVar(&opts.compare, "compare", false, "Also run FCFS and SJF baselines")
	cmd.Flags().IntVar(&opts.solution, "solution", -1, "Print the metric derivation for this process id")

	return cmd
}

func runSchedule(w io.Writer, request requests.ScheduleRequest, opts runOptions) error {
	if opts.mode != "" {
		request.Mode = requests.Mode(opts.mode)
	}
	if opts.tieBreak != "" {
		request.TieBreak = requests.TieBreak(opts.tieBreak)
	}

	response, err := schedulers.SchedulePriority(request)
	if err != nil {
		return err
	}

	report.Title(w, "Priority scheduling")
	printResponse(w, response)
	if opts.snapshots {
		report.Snapshots(w, response.Snapshots)
	}
	if opts.solution >= 0 {
		solution, ok := schedulers.ProcessSolution(response, opts.solution)
		if !ok {
			return fmt.Errorf("no process with id %d", opts.solution)
		}
		report.Solution(w, solution)
	}

	if opts.compare {
		baselines := []struct {
			title string
			fn    func(requests.ScheduleRequest) (responses.ScheduleResponse, error)
		}{
			{"First come first serve", schedulers.ScheduleFirstComeFirstServe},
			{"Shortest job first", schedulers.ScheduleShortestJobFirst},
		}
		for _, b := range baselines {
			baseline, err := b.fn(request)
			if err != nil {
				return fmt.Errorf("%s: %w", b.title, err)
			}
			report.Title(w, b.title)
			printResponse(w, baseline)
		}
	}

	if opts.csvPath != "" {
		if err := writeCSVFile(opts.csvPath, response.Details); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(w, "results written to %s\n", opts.csvPath)
	}
	return nil
}

func printResponse(w io.Writer, response responses.ScheduleResponse) {
	report.Gantt(w, response.Timeline)
	report.Table(w, response)
	report.Summary(w, response)
}

func writeCSVFile(path string, rows []responses.ProcessResponse) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	if err := report.WriteCSV(f, rows); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
