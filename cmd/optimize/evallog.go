package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// evalLog writes one CSV row per evaluation and remembers the best one.
// Rows hold the clamped values that actually reached the config.
type evalLog struct {
	f     *os.File
	w     *csv.Writer
	count int

	best       Evaluation
	bestParams []float64
}

func newEvalLog(path string, specs []ParamSpec) (*evalLog, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating eval log: %w", err)
	}

	header := []string{"eval", "fitness", "quality", "survival_ticks", "max_generation"}
	for _, spec := range specs {
		header = append(header, spec.Name)
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return nil, fmt.Errorf("writing eval log header: %w", err)
	}
	return &evalLog{f: f, w: w}, nil
}

// Record appends e and reports whether it is the best so far.
func (l *evalLog) Record(e Evaluation, params []float64) (bool, error) {
	l.count++

	improved := l.bestParams == nil || e.Fitness < l.best.Fitness
	if improved {
		l.best = e
		l.bestParams = append(l.bestParams[:0], params...)
	}

	row := []string{
		strconv.Itoa(l.count),
		formatFloat(e.Fitness),
		formatFloat(e.Quality),
		formatFloat(e.SurvivalTicks),
		formatFloat(e.MaxGeneration),
	}
	for _, v := range params {
		row = append(row, formatFloat(v))
	}
	if err := l.w.Write(row); err != nil {
		return improved, err
	}
	l.w.Flush()
	return improved, l.w.Error()
}

// Count is the number of recorded evaluations.
func (l *evalLog) Count() int {
	return l.count
}

// Best returns the lowest-fitness evaluation and its parameters, or false
// when nothing was recorded.
func (l *evalLog) Best() (Evaluation, []float64, bool) {
	return l.best, l.bestParams, l.bestParams != nil
}

func (l *evalLog) Close() error {
	l.w.Flush()
	if err := l.w.Error(); err != nil {
		l.f.Close()
		return err
	}
	return l.f.Close()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
