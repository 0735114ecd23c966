package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"priority-scheduler/internal/requests"
	"priority-scheduler/internal/responses"
)

// CSVFilename is the suggested download name for exported results.
const CSVFilename = "priority-schedule.csv"

var csvHeader = []string{"Process", "Arrival", "Burst", "Priority", "Completion", "TAT", "WT"}

var ErrBadCSV = errors.New("malformed results csv")

// CSVRow is one parsed line of an exported results file.
type CSVRow struct {
	Process        string
	Arrival        float64
	Burst          float64
	Priority       float64
	CompletionTime float64
	TurnAroundTime float64
	WaitingTime    float64
}

// WriteCSV exports result rows, one line per process.
func WriteCSV(w io.Writer, rows []responses.ProcessResponse) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range rows {
		label := r.Label
		if label == "" {
			label = requests.DefaultLabel(r.ProcessId)
		}
		record := []string{
			label,
			FormatNumber(r.Arrival),
			FormatNumber(r.Burst),
			FormatNumber(r.Priority),
			FormatNumber(r.CompletionTime),
			FormatNumber(r.TurnAroundTime),
			FormatNumber(r.WaitingTime),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row %s: %w", label, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a file produced by WriteCSV.
func ReadCSV(r io.Reader) ([]CSVRow, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: missing header", ErrBadCSV)
	}
	for i, col := range csvHeader {
		if len(records[0]) != len(csvHeader) || records[0][i] != col {
			return nil, fmt.Errorf("%w: unexpected header %v", ErrBadCSV, records[0])
		}
	}

	rows := make([]CSVRow, 0, len(records)-1)
	for line, record := range records[1:] {
		values := make([]float64, len(record)-1)
		for i, cell := range record[1:] {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d column %s: %v", ErrBadCSV, line+2, csvHeader[i+1], err)
			}
			values[i] = v
		}
		rows = append(rows, CSVRow{
			Process:        record[0],
			Arrival:        values[0],
			Burst:          values[1],
			Priority:       values[2],
			CompletionTime: values[3],
			TurnAroundTime: values[4],
			WaitingTime:    values[5],
		})
	}
	return rows, nil
}

// FormatNumber prints the shortest representation that parses back to v.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
