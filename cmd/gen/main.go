package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"lotSizing/internal/bench"
	"lotSizing/internal/config"
)

func main() {
	if err := config.LoadEnv(); err != nil {
		fmt.Fprintln(os.Stderr, "Ошибка чтения .env:", err)
		os.Exit(2)
	}
	def := bench.DefaultGrid()

	var (
		out      = flag.String("out", config.Get("BENCH_DIR", "instances"), "каталог, в который записываются классы экземпляров")
		periods  = flag.String("periods", "50,100,200,500", "горизонты планирования T (через запятую)")
		tau      = flag.String("tau", "1.5,2.0,5.0", "отношение средней мощности к среднему спросу (через запятую)")
		vars     = flag.String("var", "0.2,0.8", "коэффициент вариации спроса (через запятую)")
		perClass = flag.Int("n", def.PerClass, "количество экземпляров в классе")
		seed     = flag.Int64("seed", def.BaseSeed, "базовый сид генератора")
	)
	flag.Parse()

	g := bench.Grid{PerClass: *perClass, BaseSeed: *seed}
	var err error
	if g.Periods, err = parseInts(*periods); err != nil {
		fmt.Fprintln(os.Stderr, "Конфликт:", err)
		os.Exit(2)
	}
	if g.Tightness, err = parseFloats(*tau); err != nil {
		fmt.Fprintln(os.Stderr, "Конфликт:", err)
		os.Exit(2)
	}
	if g.Variations, err = parseFloats(*vars); err != nil {
		fmt.Fprintln(os.Stderr, "Конфликт:", err)
		os.Exit(2)
	}

	files, err := bench.Generate(*out, g)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Ошибка:", err)
		os.Exit(1)
	}
	fmt.Printf("Сгенерировано %d экземпляров в %s\n", len(files), *out)
}

// helpers

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseInts(s string) ([]int, error) {
	var out []int
	for _, p := range splitCSV(s) {
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("значение %q: %w", p, err)
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("пустой список %q", s)
	}
	return out, nil
}

func parseFloats(s string) ([]float64, error) {
	var out []float64
	for _, p := range splitCSV(s) {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("значение %q: %w", p, err)
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("пустой список %q", s)
	}
	return out, nil
}
