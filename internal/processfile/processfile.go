// Package processfile loads process lists for the simulator from disk.
//
// Supported formats are chosen by extension:
//   - .csv: columns id,arrival,burst,priority[,label]; an optional header row
//     may reorder them by name
//   - .yaml/.yml and .json: either a bare list of processes or an object with
//     processes, mode and tie_break
package processfile

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"priority-scheduler/internal/requests"
)

var ErrUnsupportedFormat = errors.New("unsupported process file format")

var defaultColumns = []string{"id", "arrival", "burst", "priority", "label"}

// Load reads the file at path into a schedule request.
func Load(path string) (requests.ScheduleRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return requests.ScheduleRequest{}, fmt.Errorf("read process file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		procs, err := ReadCSV(bytes.NewReader(data))
		return requests.ScheduleRequest{Processes: procs}, err
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".json":
		return ParseJSON(data)
	default:
		return requests.ScheduleRequest{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// ReadCSV parses a process list. Labels are optional.
func ReadCSV(r io.Reader) ([]requests.Process, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}
	if len(rows) == 0 {
		return []requests.Process{}, nil
	}

	columns := defaultColumns
	first := 1
	if _, err := strconv.Atoi(strings.TrimSpace(rows[0][0])); err != nil {
		columns = make([]string, len(rows[0]))
		for i, name := range rows[0] {
			columns[i] = strings.ToLower(strings.TrimSpace(name))
		}
	} else {
		first = 0
	}

	procs := make([]requests.Process, 0, len(rows)-first)
	for i, row := range rows[first:] {
		line := i + first + 1
		if len(row) < 4 {
			return nil, fmt.Errorf("line %d: want at least 4 columns, got %d", line, len(row))
		}
		var p requests.Process
		for col, cell := range row {
			if col >= len(columns) {
				break
			}
			cell = strings.TrimSpace(cell)
			if err := setField(&p, columns[col], cell); err != nil {
				return nil, fmt.Errorf("line %d column %s: %w", line, columns[col], err)
			}
		}
		procs = append(procs, p)
	}
	return procs, nil
}

func setField(p *requests.Process, column, cell string) error {
	switch column {
	case "id":
		id, err := strconv.Atoi(cell)
		if err != nil {
			return err
		}
		p.ProcessId = id
	case "label":
		p.Label = cell
	case "arrival", "burst", "priority":
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return err
		}
		switch column {
		case "arrival":
			p.Arrival = v
		case "burst":
			p.Burst = v
		default:
			p.Priority = v
		}
	}
	return nil
}

// ParseYAML accepts either a sequence of processes or a full request mapping.
func ParseYAML(data []byte) (requests.ScheduleRequest, error) {
	var request requests.ScheduleRequest
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return request, fmt.Errorf("parse yaml: %w", err)
	}
	if len(doc.Content) == 0 {
		request.Processes = []requests.Process{}
		return request, nil
	}

	root := doc.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		if err := root.Decode(&request.Processes); err != nil {
			return request, fmt.Errorf("decode process list: %w", err)
		}
	case yaml.MappingNode:
		if err := root.Decode(&request); err != nil {
			return request, fmt.Errorf("decode request: %w", err)
		}
	default:
		return request, fmt.Errorf("%w: yaml root must be a list or mapping", ErrUnsupportedFormat)
	}
	return request, nil
}

func ParseJSON(data []byte) (requests.ScheduleRequest, error) {
	var request requests.ScheduleRequest
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &request.Processes); err != nil {
			return request, fmt.Errorf("decode process list: %w", err)
		}
		return request, nil
	}
	if err := json.Unmarshal(trimmed, &request); err != nil {
		return request, fmt.Errorf("decode request: %w", err)
	}
	return request, nil
}
