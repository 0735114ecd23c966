package processfile

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"priority-scheduler/internal/requests"
)

var scenario = []requests.Process{
	{ProcessId: 0, Arrival: 3, Burst: 2, Priority: 2},
	{ProcessId: 1, Arrival: 2, Burst: 4, Priority: 1, Label: "editor"},
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadCSVWithoutHeader(t *testing.T) {
	path := writeFile(t, "procs.csv", "0,3,2,2\n1,2,4,1,editor\n")
	request, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(request.Processes, scenario) {
		t.Fatalf("processes = %+v, want %+v", request.Processes, scenario)
	}
}

func TestLoadCSVHeaderReordersColumns(t *testing.T) {
	path := writeFile(t, "procs.csv", "ID, Burst, Arrival, Priority, Label\n0,2,3,2,\n1,4,2,1,editor\n")
	request, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(request.Processes, scenario) {
		t.Fatalf("processes = %+v, want %+v", request.Processes, scenario)
	}
}

func TestLoadCSVBadNumber(t *testing.T) {
	path := writeFile(t, "procs.csv", "0,3,two,2\n")
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "line 1 column burst") {
		t.Fatalf("expected error naming line and column, got %v", err)
	}
}

func TestLoadYAML(t *testing.T) {
	list := writeFile(t, "procs.yaml", strings.TrimSpace(`
- id: 0
  arrival: 3
  burst: 2
  priority: 2
- id: 1
  label: editor
  arrival: 2
  burst: 4
  priority: 1
`))
	request, err := Load(list)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(request.Processes, scenario) {
		t.Fatalf("processes = %+v, want %+v", request.Processes, scenario)
	}

	full := writeFile(t, "request.yml", strings.TrimSpace(`
mode: preemptive
tie_break: srtf
processes:
  - {id: 0, arrival: 3, burst: 2, priority: 2}
  - {id: 1, label: editor, arrival: 2, burst: 4, priority: 1}
`))
	request, err = Load(full)
	if err != nil {
		t.Fatal(err)
	}
	if request.Mode != requests.Preemptive || request.TieBreak != requests.ShortestRemainingTime {
		t.Fatalf("policy = (%s, %s)", request.Mode, request.TieBreak)
	}
	if !reflect.DeepEqual(request.Processes, scenario) {
		t.Fatalf("processes = %+v, want %+v", request.Processes, scenario)
	}
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "procs.json", `[{"id":0,"arrival":3,"burst":2,"priority":2},{"id":1,"label":"editor","arrival":2,"burst":4,"priority":1}]`)
	request, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(request.Processes, scenario) {
		t.Fatalf("processes = %+v, want %+v", request.Processes, scenario)
	}

	path = writeFile(t, "request.json", `{"mode":"preemptive","processes":[]}`)
	request, err = Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if request.Mode != requests.Preemptive || len(request.Processes) != 0 {
		t.Fatalf("request = %+v", request)
	}
}

func TestLoadUnsupportedExtension(t *testing.T) {
	path := writeFile(t, "procs.txt", "0,1,1,1")
	if _, err := Load(path); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}
