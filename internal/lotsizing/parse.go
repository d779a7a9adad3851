package lotsizing

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

const instanceLines = 6

// Load reads an instance file: T on the first line, then demand, setup, unit, holding
// and capacity, one whitespace separated row each. Blank lines are ignored.
func Load(path string) (*Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	inst, err := Parse(f)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
			return nil, le
		}
		return nil, &LoadError{Path: path, Err: err}
	}
	return inst, nil
}

func Parse(r io.Reader) (*Instance, error) {
	var rows [][]int
	lineNo := 0
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		lineNo++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(rows) == instanceLines {
			return nil, &LoadError{Line: lineNo, Err: fmt.Errorf("expected %d lines, found more", instanceLines)}
		}
		row := make([]int, len(fields))
		for i, tok := range fields {
			v, err := strconv.Atoi(tok)
			if err != nil {
				return nil, &LoadError{Line: lineNo, Err: fmt.Errorf("token %d: %q is not an integer", i+1, tok)}
			}
			row[i] = v
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, &LoadError{Err: err}
	}
	if len(rows) != instanceLines {
		return nil, &LoadError{Err: fmt.Errorf("expected %d lines, got %d", instanceLines, len(rows))}
	}
	if len(rows[0]) != 1 {
		return nil, &LoadError{Err: fmt.Errorf("first line must hold T alone (got %d values)", len(rows[0]))}
	}
	n := rows[0][0]
	if n <= 0 {
		return nil, &LoadError{Err: fmt.Errorf("T must be > 0 (got %d)", n)}
	}
	for i, row := range rows[1:] {
		if len(row) != n {
			return nil, &LoadError{Err: fmt.Errorf("row %d has %d values, T=%d", i+2, len(row), n)}
		}
	}

	inst, err := NewInstance(rows[1], rows[2], rows[3], rows[4], rows[5])
	if err != nil {
		return nil, &LoadError{Err: err}
	}
	return inst, nil
}

// Write renders inst in the format read by Parse.
func Write(w io.Writer, inst *Instance) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, inst.Periods); err != nil {
		return err
	}
	for _, s := range inst.series() {
		for t, v := range s.values {
			if t > 0 {
				bw.WriteByte(' ')
			}
			bw.WriteString(strconv.Itoa(v))
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
