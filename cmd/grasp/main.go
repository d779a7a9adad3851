package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"lotSizing/internal/bench"
	"lotSizing/internal/config"
	"lotSizing/internal/grasp"
	"lotSizing/internal/opt"
)

func main() {
	os.Exit(run())
}

func run() int {
	if err := config.LoadEnv(); err != nil {
		fmt.Fprintln(os.Stderr, "Ошибка чтения .env:", err)
		return 2
	}

	build := config.BindGrasp(flag.CommandLine)
	var (
		seed     = flag.Int64("seed", config.Int64("GRASP_SEED", 1), "сид генератора случайных чисел")
		baseDir  = flag.String("base", config.Get("GRASP_BASE_DIR", ""), "корневой каталог экземпляров (для имени класса)")
		logDir   = flag.String("logdir", config.Get("GRASP_LOG_DIR", "logs"), "каталог логов сходимости (пусто — не писать)")
		results  = flag.String("results", config.Get("GRASP_RESULTS", ""), "CSV-файл, в который дописывается результат (необязательно)")
		logLevel = flag.String("log-level", config.Get("LOG_LEVEL", "info"), "уровень логирования: debug | info | warn | error")
		logJSON  = flag.Bool("log-json", false, "логи в формате JSON")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Использование: %s [флаги] <файл экземпляра>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		return 2
	}
	path := flag.Arg(0)

	log, err := config.NewLogger(os.Stderr, *logLevel, *logJSON)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Конфликт:", err)
		return 2
	}
	cfg, err := build()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Конфликт:", err)
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := bench.Runner{
		Algo: bench.Algorithm{
			Name: "GRASP",
			Factory: func(seed int64) (opt.Optimizer, error) {
				return grasp.New(cfg, bench.RandForSeed(seed))
			},
		},
		BaseDir: *baseDir,
		LogDir:  *logDir,
		Log:     log,
	}

	rec, _, err := runner.RunFile(ctx, path, *seed)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			log.Warn("прервано, результат не записан")
			return 130
		}
		log.WithError(err).Error("ошибка решения")
		return 1
	}

	line, err := bench.FormatRecord(rec)
	if err != nil {
		log.WithError(err).Error("ошибка форматирования результата")
		return 1
	}
	if _, err := os.Stdout.Write(line); err != nil {
		return 1
	}

	if *results != "" {
		rf, err := bench.OpenResults(*results)
		if err != nil {
			log.WithError(err).Error("ошибка открытия файла результатов")
			return 1
		}
		err = rf.Append(rec)
		if cerr := rf.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			log.WithError(err).Error("ошибка записи результата")
			return 1
		}
	}

	if rec.Status == bench.StatusLoadError {
		return 1
	}
	return 0
}
