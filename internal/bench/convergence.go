package bench

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"lotSizing/internal/opt"
)

// LogPath is <logDir>/<class>/<stem>_log.csv for the instance file.
func LogPath(logDir string, c Class, file string) string {
	stem := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	return filepath.Join(logDir, filepath.FromSlash(c.Name), stem+"_log.csv")
}

// WriteConvergence stores the incumbent history as elapsed_s,cost rows.
// The file is written next to its final name and renamed into place.
func WriteConvergence(path string, points []opt.Point) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".conv-*.csv")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write([]string{"elapsed_s", "cost"}); err != nil {
		tmp.Close()
		return err
	}
	for _, p := range points {
		row := []string{
			strconv.FormatFloat(p.Elapsed.Seconds(), 'f', 6, 64),
			itoa(p.Cost),
		}
		if err := w.Write(row); err != nil {
			tmp.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// ReadConvergence loads a log written by WriteConvergence.
func ReadConvergence(path string) ([]opt.Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	out := make([]opt.Point, 0, len(rows)-1)
	for _, row := range rows[1:] {
		sec, err := strconv.ParseFloat(row[0], 64)
		if err != nil {
			return nil, err
		}
		cost, err := strconv.Atoi(row[1])
		if err != nil {
			return nil, err
		}
		out = append(out, opt.Point{Elapsed: secondsToDuration(sec), Cost: cost})
	}
	return out, nil
}
