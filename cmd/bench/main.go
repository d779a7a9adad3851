package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"lotSizing/internal/bench"
	"lotSizing/internal/config"
	"lotSizing/internal/grasp"
	"lotSizing/internal/opt"
	"lotSizing/internal/store"
)

// Фабрика

func newGRASPFactory(cfg grasp.Config) func(seed int64) (opt.Optimizer, error) {
	return func(seed int64) (opt.Optimizer, error) {
		return grasp.New(cfg, bench.RandForSeed(seed))
	}
}

func main() {
	os.Exit(run())
}

func run() int {
	if err := config.LoadEnv(); err != nil {
		fmt.Fprintln(os.Stderr, "Ошибка чтения .env:", err)
		return 2
	}

	// CLI флаги: параметры GRASP и политика пакетного запуска
	build := config.BindGrasp(flag.CommandLine)
	var (
		dir      = flag.String("dir", config.Get("BENCH_DIR", "instances"), "корневой каталог экземпляров (*.txt)")
		logDir   = flag.String("logdir", config.Get("BENCH_LOG_DIR", "logs"), "каталог логов сходимости (пропускается при поиске экземпляров)")
		out      = flag.String("out", config.Get("BENCH_OUT", "artifacts/results.csv"), "CSV-файл результатов (дописывается)")
		summary  = flag.String("summary", config.Get("BENCH_SUMMARY", "artifacts/summary.csv"), "CSV-файл сводки по классам (пусто — не писать)")
		workers  = flag.Int("workers", config.Int("BENCH_WORKERS", 0), "количество параллельных воркеров (0 — по числу CPU)")
		baseSeed = flag.Int64("seed", config.Int64("GRASP_SEED", 20251112), "базовый сид: экземпляр i решается с сидом seed+i")
		dbPath   = flag.String("db", config.Get("BENCH_DB", ""), "SQLite-база для сохранения результатов (пусто — не сохранять)")
		logLevel = flag.String("log-level", config.Get("LOG_LEVEL", "info"), "уровень логирования: debug | info | warn | error")
		logJSON  = flag.Bool("log-json", false, "логи в формате JSON")
	)
	flag.Parse()

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

	files, err := bench.FindInstances(*dir, *logDir)
	if err != nil {
		log.WithError(err).Error("ошибка поиска экземпляров")
		return 1
	}
	if len(files) == 0 {
		log.WithField("dir", *dir).Warn("экземпляры не найдены")
		return 0
	}

	runID := uuid.NewString()
	runLog := log.WithField("run_id", runID)

	rf, err := bench.OpenResults(*out)
	if err != nil {
		runLog.WithError(err).Error("ошибка открытия файла результатов")
		return 1
	}
	defer rf.Close()

	batch := &bench.Batch{
		Runner: bench.Runner{
			Algo:    bench.Algorithm{Name: "GRASP", Factory: newGRASPFactory(cfg)},
			BaseDir: *dir,
			LogDir:  *logDir,
			Log:     runLog,
		},
		Workers:  *workers,
		BaseSeed: *baseSeed,
		RunID:    runID,
		Results:  rf,
	}

	if *dbPath != "" {
		db, err := store.Open(*dbPath)
		if err != nil {
			runLog.WithError(err).Error("ошибка открытия базы")
			return 1
		}
		defer db.Close()
		if err := store.InitSchema(db); err != nil {
			runLog.WithError(err).Error("ошибка создания схемы")
			return 1
		}
		batch.Sink = store.NewSqliteResultStore(db)
	}

	runLog.WithFields(logrus.Fields{
		"instances": len(files),
		"workers":   *workers,
		"out":       *out,
	}).Info("запуск пакета")

	records, runErr := batch.Run(ctx, files)
	code := 0
	if runErr != nil {
		if errors.Is(runErr, context.Canceled) {
			runLog.WithField("done", len(records)).Warn("прервано, незавершённые экземпляры не записаны")
			code = 130
		} else {
			runLog.WithError(runErr).Error("ошибка пакета")
			code = 1
		}
	}

	sums := bench.Summarize(records)
	for _, s := range sums {
		fmt.Printf("%-24s запусков=%d решено=%d недопустимо=%d ошибок=%d | стоимость: лучшая=%d средняя=%.2f откл.=%.2f | время: среднее=%.2fs\n",
			s.Class.Name, s.Runs, s.Solved, s.Infeasible, s.LoadErrors,
			s.Cost.Best, s.Cost.Mean, s.Cost.Std, s.Time.Mean,
		)
	}
	if *summary != "" {
		if err := bench.WriteSummaryCSV(*summary, sums); err != nil {
			runLog.WithError(err).Error("ошибка при записи сводки")
			return 1
		}
		fmt.Println("Saved:", filepath.Clean(*summary))
	}
	fmt.Println("Saved:", filepath.Clean(rf.Path()))
	return code
}
