package bench

import (
	"path/filepath"
	"strconv"
	"strings"
)

// Class is the instance category encoded in its directory name, e.g. T50_tau1.5_var0.2.
type Class struct {
	Name   string
	T      int
	Tau    float64
	Var    float64
	Parsed bool
}

// ParseClass derives the class of the instance at path from its parent directory,
// relative to baseDir. Parsed is false when the name does not carry all three tokens.
func ParseClass(path, baseDir string) Class {
	dir := filepath.Dir(path)
	name := filepath.Base(dir)
	if baseDir != "" {
		if rel, err := filepath.Rel(baseDir, dir); err == nil && !strings.HasPrefix(rel, "..") {
			name = filepath.ToSlash(rel)
		}
	}
	c := Class{Name: name}

	var hasT, hasTau, hasVar bool
	for _, tok := range strings.Split(filepath.Base(dir), "_") {
		var err error
		switch {
		case strings.HasPrefix(tok, "tau"):
			c.Tau, err = strconv.ParseFloat(tok[3:], 64)
			hasTau = err == nil
		case strings.HasPrefix(tok, "var"):
			c.Var, err = strconv.ParseFloat(tok[3:], 64)
			hasVar = err == nil
		case strings.HasPrefix(tok, "T"):
			c.T, err = strconv.Atoi(tok[1:])
			hasT = err == nil
		}
	}
	c.Parsed = hasT && hasTau && hasVar
	if !c.Parsed {
		c.T, c.Tau, c.Var = 0, 0, 0
	}
	return c
}

// ClassName formats the directory name used by the instance generator.
func ClassName(t int, tau, v float64) string {
	return "T" + itoa(t) + "_tau" + gtoa(tau) + "_var" + gtoa(v)
}
