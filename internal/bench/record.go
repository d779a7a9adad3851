package bench

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"
)

type Status string

const (
	StatusOK         Status = "ok"
	StatusInfeasible Status = "infeasible"
	StatusLoadError  Status = "load_error"
)

// Header is the column set of the results file.
var Header = []string{"class", "file", "T", "tau", "var", "cost", "feasible", "elapsed_s", "status"}

// Record is the outcome of one solver run on one instance file.
type Record struct {
	Class      Class
	File       string
	Periods    int
	Cost       int
	Feasible   bool
	Elapsed    time.Duration
	Status     Status
	Seed       int64
	Iterations int
	Err        string
}

func (r Record) Row() []string {
	t, tau, v := "", "", ""
	if r.Class.Parsed {
		t = itoa(r.Class.T)
		tau = strconv.FormatFloat(r.Class.Tau, 'f', -1, 64)
		v = strconv.FormatFloat(r.Class.Var, 'f', -1, 64)
	}
	// the loaded horizon wins over the class name
	if r.Status != StatusLoadError && r.Periods > 0 {
		t = itoa(r.Periods)
	}
	cost := ""
	if r.Feasible {
		cost = itoa(r.Cost)
	}
	feasible := "0"
	if r.Feasible {
		feasible = "1"
	}
	return []string{
		r.Class.Name,
		r.File,
		t,
		tau,
		v,
		cost,
		feasible,
		strconv.FormatFloat(r.Elapsed.Seconds(), 'f', 3, 64),
		string(r.Status),
	}
}

// FormatRecord renders rec as a single CSV line including the trailing newline.
func FormatRecord(rec Record) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(rec.Row()); err != nil {
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ResultsFile appends records to a CSV file shared by concurrent workers.
// Every record reaches the file in a single write of a complete line.
type ResultsFile struct {
	mu   sync.Mutex
	f    *os.File
	path string
}

// OpenResults opens path for appending and writes the header if the file is new or empty.
func OpenResults(path string) (*ResultsFile, error) {
	if d := dirOf(path); d != "" {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return nil, err
		}
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.Size() == 0 {
		var buf bytes.Buffer
		w := csv.NewWriter(&buf)
		_ = w.Write(Header)
		w.Flush()
		if _, err := f.Write(buf.Bytes()); err != nil {
			f.Close()
			return nil, fmt.Errorf("%s: header: %w", path, err)
		}
	}
	return &ResultsFile{f: f, path: path}, nil
}

func (r *ResultsFile) Path() string { return r.path }

func (r *ResultsFile) Append(rec Record) error {
	line, err := FormatRecord(rec)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, err := r.f.Write(line); err != nil {
		return fmt.Errorf("%s: %w", r.path, err)
	}
	return nil
}

func (r *ResultsFile) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.f.Close()
}
