package grasp

import (
	"fmt"
	"time"

	"lotSizing/internal/ls"
)

type Config struct {
	// Ограничение по числу итераций (0 — без ограничения)
	Iterations int

	// Бюджет времени. Если TimeLimit == 0, бюджет = TimePerPeriod × T.
	TimeLimit     time.Duration
	TimePerPeriod time.Duration

	// Alpha — жадность RCL: 0 — чисто жадный выбор, 1 — чисто случайный.
	Alpha float64
	// MaxLot — максимальное число периодов, покрываемых одним лотом.
	MaxLot int

	LocalSearch ls.Config
}

func DefaultConfig() Config {
	return Config{
		Iterations: 200,

		TimeLimit:     30 * time.Minute,
		TimePerPeriod: 0,

		Alpha:  0.3,
		MaxLot: 10,

		LocalSearch: ls.DefaultConfig(),
	}
}

// Budget возвращает бюджет времени для горизонта из periods периодов (0 — без ограничения).
func (c Config) Budget(periods int) time.Duration {
	if c.TimeLimit > 0 {
		return c.TimeLimit
	}
	return c.TimePerPeriod * time.Duration(periods)
}

func (c Config) Validate() error {
	if c.Iterations < 0 {
		return fmt.Errorf(
			"Iterations должно быть >= 0 (получено %d)",
			c.Iterations,
		)
	}
	if c.TimeLimit < 0 || c.TimePerPeriod < 0 {
		return fmt.Errorf(
			"бюджет времени не может быть отрицательным (получено %s, %s на период)",
			c.TimeLimit, c.TimePerPeriod,
		)
	}
	if c.Iterations == 0 && c.TimeLimit == 0 && c.TimePerPeriod == 0 {
		return fmt.Errorf(
			"должно быть задано Iterations > 0, TimeLimit > 0 или TimePerPeriod > 0",
		)
	}
	if c.Alpha < 0 || c.Alpha > 1 {
		return fmt.Errorf(
			"alpha должно лежать в интервале [0,1] (получено %f)",
			c.Alpha,
		)
	}
	if c.MaxLot <= 0 {
		return fmt.Errorf(
			"MaxLot должно быть > 0 (получено %d)",
			c.MaxLot,
		)
	}
	if err := c.LocalSearch.Validate(); err != nil {
		return fmt.Errorf("локальный поиск: %w", err)
	}
	return nil
}
